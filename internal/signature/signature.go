// Package signature checks captured signature images.
//
// Signatures arrive as data URIs (data:image/png;base64,...) produced by a
// drawing canvas. An untouched canvas encodes to a fully transparent (or, on
// some clients, fully white) image; such a signature is treated as missing.
package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

var (
	// ErrNotDataURL means the value is not a base64 image data URI.
	ErrNotDataURL = errors.New("signature is not a base64 image data URL")
	// ErrUndecodable means the payload is not a PNG or JPEG image.
	ErrUndecodable = errors.New("signature image could not be decoded")
	// ErrBlank means nothing was drawn.
	ErrBlank = errors.New("signature is blank")
)

// MaxDimension bounds either side of a signature image. Larger images are
// rejected before their pixels are allocated.
const MaxDimension = 4096

// Decode parses a data URI and decodes the image it carries.
func Decode(dataURL string) (image.Image, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrNotDataURL
	}
	mediaType, params, _ := strings.Cut(meta, ";")
	if !strings.HasPrefix(mediaType, "image/") || !strings.Contains(";"+params+";", ";base64;") {
		return nil, ErrNotDataURL
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDataURL, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrUndecodable, cfg.Width, cfg.Height, MaxDimension, MaxDimension)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return img, nil
}

// IsBlank reports whether every pixel of img is transparent or white.
func IsBlank(img image.Image) bool {
	b := img.Bounds()
	if b.Empty() {
		return true
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if r == 0xffff && g == 0xffff && bl == 0xffff {
				continue
			}
			return false
		}
	}
	return true
}

// Check returns nil when dataURL carries a non-blank signature.
func Check(dataURL string) error {
	img, err := Decode(dataURL)
	if err != nil {
		return err
	}
	if IsBlank(img) {
		return ErrBlank
	}
	return nil
}
