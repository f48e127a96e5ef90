package types

import "testing"

func TestDocumentPlainText(t *testing.T) {
	doc := Document{
		Type: "doc",
		Content: []Node{
			{Type: "heading", Attrs: map[string]any{"level": 2}, Content: []Node{
				{Type: "text", Text: "Introduction"},
			}},
			{Type: "paragraph", Content: []Node{
				{Type: "text", Text: "Go is a compiled language."},
				{Type: "text", Text: "It has goroutines."},
			}},
			{Type: "bulletList", Content: []Node{
				{Type: "listItem", Content: []Node{
					{Type: "paragraph", Content: []Node{
						{Type: "text", Text: "Fast builds"},
					}},
				}},
			}},
		},
	}

	want := "Introduction Go is a compiled language. It has goroutines. Fast builds"
	if got := doc.PlainText(); got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestDocumentPlainTextEmpty(t *testing.T) {
	if got := (Document{Type: "doc"}).PlainText(); got != "" {
		t.Errorf("PlainText() on empty doc = %q, want empty", got)
	}
}

func TestDocumentPlainTextSkipsNonTextLeaves(t *testing.T) {
	doc := Document{
		Type: "doc",
		Content: []Node{
			{Type: "horizontalRule"},
			{Type: "paragraph", Content: []Node{{Type: "text", Text: "after the rule"}}},
		},
	}
	if got := doc.PlainText(); got != "after the rule" {
		t.Errorf("PlainText() = %q, want %q", got, "after the rule")
	}
}
