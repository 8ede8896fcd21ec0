// Package render converts stored articles to exportable HTML.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
)

var md = goldmark.New()

var docTemplate = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
</head>
<body>
<article>
{{.Body}}
</article>
</body>
</html>
`))

// ToHTML converts markdown text to an HTML fragment.
func ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// Body returns the HTML body for an article. Server-rendered HTML wins
// when present; otherwise any markdown carried in the article payload
// is converted.
func Body(a *models.Article) (string, error) {
	if a.HTML != nil && strings.TrimSpace(*a.HTML) != "" {
		return *a.HTML, nil
	}
	if src := markdownSource(a); src != "" {
		return ToHTML(src)
	}
	return "", nil
}

// ExportDocument renders a complete standalone HTML document for an
// article, suitable for writing to disk.
func ExportDocument(a *models.Article) (string, error) {
	body, err := Body(a)
	if err != nil {
		return "", err
	}

	var description string
	if a.MetaDescription != nil {
		description = *a.MetaDescription
	}

	var buf bytes.Buffer
	err = docTemplate.Execute(&buf, struct {
		Title       string
		Description string
		Body        template.HTML
	}{
		Title:       a.Title,
		Description: description,
		Body:        template.HTML(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return buf.String(), nil
}

// Markdown returns the raw markdown carried in the article payload, or
// an empty string if the article only has server-rendered HTML.
func Markdown(a *models.Article) string {
	return markdownSource(a)
}

// markdownSource digs the raw markdown out of the article payload.
func markdownSource(a *models.Article) string {
	if a.Data == nil {
		return ""
	}
	for _, key := range []string{"markdown", "content", "body", "text"} {
		if s, ok := a.Data[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
