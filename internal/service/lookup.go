package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_text_generator.go -package=mocks notary-ally/internal/service TextGenerator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"notary-ally/internal/contextutil"
)

// TextGenerator sends a single prompt to a text-generation model.
// This interface is defined from the service layer's perspective (consumer-first).
type TextGenerator interface {
	// Configured reports whether a credential is available.
	Configured() bool
	// Generate returns the model's reply to prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// LookupService turns free-text model answers into a county name or a
// driving distance. Each call is a single round trip with no retry.
type LookupService struct {
	generator TextGenerator
	timeout   time.Duration
}

// LookupOption configures a LookupService.
type LookupOption func(*LookupService)

// WithTimeout bounds each lookup call. Zero disables the bound.
func WithTimeout(d time.Duration) LookupOption {
	return func(s *LookupService) {
		s.timeout = d
	}
}

// NewLookupService creates a LookupService backed by generator.
func NewLookupService(generator TextGenerator, opts ...LookupOption) *LookupService {
	s := &LookupService{generator: generator}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// leadingNumber matches the numeric prefix of a reply such as "42.5 miles"
// or "1.5e2". Submatch 1 is the mantissa, 2 the exponent digits.
var leadingNumber = regexp.MustCompile(`^([+-]?(?:\d+(?:\.\d*)?|\.\d+))(?:[eE]([+-]?\d+))?`)

// maxDistanceExponent bounds the exponent accepted in a distance reply.
const maxDistanceExponent = 20

// CountyPrompt is the question sent to resolve coordinates to a county.
func CountyPrompt(lat, lon float64) string {
	return fmt.Sprintf("Based on the latitude %v and longitude %v, what is the county? "+
		"Please provide only the county name and nothing else. For example: 'Los Angeles County'", lat, lon)
}

// DistancePrompt is the question sent to resolve a driving distance.
func DistancePrompt(start, end string) string {
	return fmt.Sprintf("What is the driving distance in miles between \"%s\" and \"%s\"? "+
		"Please provide only the number, with up to one decimal place. For example: 42.5", start, end)
}

// ResolveCounty asks the model which county contains the coordinates.
func (s *LookupService) ResolveCounty(ctx context.Context, lat, lon float64) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if !s.generator.Configured() {
		return "", ErrMissingCredential
	}

	reply, err := s.generate(ctx, CountyPrompt(lat, lon))
	if err != nil {
		logger.ErrorContext(ctx, "county lookup failed", "error", err)
		return "", &LookupError{Message: CountyLookupMessage, Err: errors.Join(ErrExternalService, err)}
	}

	county := strings.TrimSpace(reply)
	if county == "" {
		logger.WarnContext(ctx, "county lookup returned an empty answer")
		return "", &LookupError{Message: CountyLookupMessage, Err: ErrCountyUndetermined}
	}

	logger.InfoContext(ctx, "county resolved", "county", county)
	return county, nil
}

// ResolveDistance asks the model for the driving distance in miles.
func (s *LookupService) ResolveDistance(ctx context.Context, start, end string) (decimal.Decimal, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if !s.generator.Configured() {
		return decimal.Zero, ErrMissingCredential
	}

	reply, err := s.generate(ctx, DistancePrompt(start, end))
	if err != nil {
		logger.ErrorContext(ctx, "distance lookup failed", "error", err)
		return decimal.Zero, &LookupError{Message: DistanceLookupMessage, Err: errors.Join(ErrExternalService, err)}
	}

	miles, err := ParseDistance(reply)
	if err != nil {
		logger.WarnContext(ctx, "distance lookup returned an unusable answer", "reply", reply)
		return decimal.Zero, &LookupError{Message: DistanceLookupMessage, Err: err}
	}

	logger.InfoContext(ctx, "distance resolved", "miles", miles.String())
	return miles, nil
}

// ParseDistance reads the leading number of a reply. "42.5" and
// "42.5 miles" both parse to 42.5; "abc" fails with ErrInvalidDistance.
func ParseDistance(reply string) (decimal.Decimal, error) {
	m := leadingNumber.FindStringSubmatch(strings.TrimSpace(reply))
	if m == nil {
		return decimal.Zero, ErrInvalidDistance
	}

	mantissa := strings.TrimSuffix(strings.TrimPrefix(m[1], "+"), ".")
	if neg, ok := strings.CutPrefix(mantissa, "-"); ok && strings.HasPrefix(neg, ".") {
		mantissa = "-0" + neg
	} else if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}

	text := mantissa
	if m[2] != "" {
		exp, err := strconv.Atoi(m[2])
		if err != nil || exp > maxDistanceExponent || exp < -maxDistanceExponent {
			return decimal.Zero, fmt.Errorf("%w: exponent %s out of range", ErrInvalidDistance, m[2])
		}
		text += "e" + strconv.Itoa(exp)
	}

	miles, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidDistance, err)
	}
	return miles, nil
}

func (s *LookupService) generate(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.generator.Generate(ctx, prompt)
}
