package render

import (
	"strings"
	"testing"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
)

func strPtr(s string) *string { return &s }

func TestToHTML(t *testing.T) {
	html, err := ToHTML("# Heading\n\nSome *emphasis* here.")
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(html, "<h1>Heading</h1>") {
		t.Errorf("missing heading in %q", html)
	}
	if !strings.Contains(html, "<em>emphasis</em>") {
		t.Errorf("missing emphasis in %q", html)
	}
}

func TestBody_PrefersServerHTML(t *testing.T) {
	a := &models.Article{
		Title: "Test",
		HTML:  strPtr("<p>server rendered</p>"),
		Data:  map[string]any{"markdown": "# should be ignored"},
	}
	body, err := Body(a)
	if err != nil {
		t.Fatal(err)
	}
	if body != "<p>server rendered</p>" {
		t.Errorf("body = %q", body)
	}
}

func TestBody_FallsBackToMarkdown(t *testing.T) {
	a := &models.Article{
		Title: "Test",
		Data:  map[string]any{"content": "## Section"},
	}
	body, err := Body(a)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "<h2>Section</h2>") {
		t.Errorf("body = %q", body)
	}
}

func TestBody_EmptyWhenNothingAvailable(t *testing.T) {
	body, err := Body(&models.Article{Title: "Bare"})
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
}

func TestExportDocument(t *testing.T) {
	a := &models.Article{
		Title:           "My <Great> Article",
		MetaDescription: strPtr("A \"description\""),
		Data:            map[string]any{"markdown": "Hello **world**."},
	}
	doc, err := ExportDocument(a)
	if err != nil {
		t.Fatalf("ExportDocument failed: %v", err)
	}
	if !strings.Contains(doc, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(doc, "<title>My &lt;Great&gt; Article</title>") {
		t.Errorf("title not escaped: %q", doc)
	}
	if !strings.Contains(doc, "<strong>world</strong>") {
		t.Errorf("markdown body missing: %q", doc)
	}
	if !strings.Contains(doc, `name="description"`) {
		t.Error("meta description missing")
	}
}

func TestExportDocument_NoDescription(t *testing.T) {
	doc, err := ExportDocument(&models.Article{Title: "Plain"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, `name="description"`) {
		t.Error("unexpected meta description tag")
	}
}
