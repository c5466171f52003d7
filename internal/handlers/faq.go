package handlers

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"notary-ally/internal/contextutil"
)

//go:embed faq.md
var faqMarkdown []byte

// FAQItem is one question and its answer.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQHandler serves the notary FAQ as JSON and as a rendered page.
type FAQHandler struct {
	items []FAQItem
	page  []byte
}

// faqPageData holds template data for the rendered FAQ page.
type faqPageData struct {
	Title   string
	Content template.HTML
}

var faqTemplate = template.Must(template.New("faq").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 800px;
      line-height: 1.7;
      color: #1e293b;
    }
    h1 {
      margin-top: 0;
    }
    article h2 {
      font-size: 1.15rem;
      border-bottom: 1px solid #e2e8f0;
      padding-bottom: 0.5rem;
      margin-top: 2rem;
    }
    article p {
      color: #475569;
    }
    @media (prefers-color-scheme: dark) {
      body {
        background: #0f172a;
        color: #e2e8f0;
      }
      article h2 {
        border-bottom-color: #334155;
      }
      article p {
        color: #94a3b8;
      }
    }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <article>{{.Content}}</article>
</body>
</html>`))

// NewFAQHandler parses and renders the embedded FAQ.
func NewFAQHandler() (*FAQHandler, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	var body bytes.Buffer
	if err := md.Convert(faqMarkdown, &body); err != nil {
		return nil, fmt.Errorf("convert faq markdown: %w", err)
	}

	var page bytes.Buffer
	if err := faqTemplate.Execute(&page, faqPageData{
		Title:   "Notary FAQ",
		Content: template.HTML(body.String()),
	}); err != nil {
		return nil, fmt.Errorf("execute faq template: %w", err)
	}

	return &FAQHandler{
		items: parseFAQ(string(faqMarkdown)),
		page:  page.Bytes(),
	}, nil
}

// parseFAQ splits markdown into items, one per level-two heading.
func parseFAQ(md string) []FAQItem {
	var items []FAQItem
	var answer []string
	flush := func() {
		if len(items) == 0 {
			return
		}
		items[len(items)-1].Answer = strings.TrimSpace(strings.Join(answer, "\n"))
		answer = answer[:0]
	}
	for _, line := range strings.Split(md, "\n") {
		if q, ok := strings.CutPrefix(line, "## "); ok {
			flush()
			items = append(items, FAQItem{Question: strings.TrimSpace(q)})
			continue
		}
		answer = append(answer, line)
	}
	flush()
	return items
}

// Items returns the FAQ as JSON.
func (h *FAQHandler) Items(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.items)
}

// Page returns the FAQ rendered as HTML.
func (h *FAQHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(h.page); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to write faq page", "error", err)
	}
}
