package agent

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Tetraslam/onemonth-dev/internal/clients/research"
)

func TestFormatResearchVideosInternPlaceholders(t *testing.T) {
	results := []ToolResult{
		{Tool: ToolVideoSearch, Result: []research.Video{
			{Title: "Intro to Go", URL: "https://www.youtube.com/watch?v=aaa", Channel: "GopherTV", Duration: "12:30"},
			{Title: "Advanced Go", URL: "https://www.youtube.com/watch?v=bbb", Channel: "GopherTV"},
		}},
	}
	text, placeholders := FormatResearch(results)

	if !strings.Contains(text, "[V1] Intro to Go") || !strings.Contains(text, "[V2] Advanced Go") {
		t.Fatalf("video identifiers missing from output:\n%s", text)
	}
	if strings.Contains(text, "youtube.com") {
		t.Fatalf("real video URL leaked into prompt text:\n%s", text)
	}
	if placeholders["[V1]"] != "https://www.youtube.com/watch?v=aaa" {
		t.Fatalf("placeholder map wrong: %v", placeholders)
	}
	if placeholders["[V2]"] != "https://www.youtube.com/watch?v=bbb" {
		t.Fatalf("placeholder map wrong: %v", placeholders)
	}

	// Counters reset on every call: a second invocation starts at [V1].
	_, second := FormatResearch(results)
	if second["[V1]"] != "https://www.youtube.com/watch?v=aaa" || len(second) != 2 {
		t.Fatalf("placeholder map not reset per call: %v", second)
	}
}

func TestClipKeepsRunesIntact(t *testing.T) {
	s := strings.Repeat("百科事典の要約", 300)
	got := clip(s, 500)
	if !utf8.ValidString(got) {
		t.Fatalf("clip produced invalid UTF-8: %q", got[:20])
	}
	if body := strings.TrimSuffix(got, "..."); utf8.RuneCountInString(body) != 500 {
		t.Fatalf("kept %d runes, want 500", utf8.RuneCountInString(body))
	}

	if got := clip("short", 500); got != "short" {
		t.Fatalf("clip changed a string under the limit: %q", got)
	}
}

func TestFormatResearchErrorsAndTruncation(t *testing.T) {
	long := strings.Repeat("x", 2000)
	results := []ToolResult{
		{Tool: ToolResearchSearch, Err: "boom"},
		{Tool: ToolResearchSearch, Result: []research.WebResult{
			{Title: "Page", URL: "https://example.com", Description: "desc", Markdown: long},
		}},
		{Tool: ToolEncyclopediaSearch, Result: &research.EncyclopediaPage{Title: "Topic", Summary: long}},
	}
	text, _ := FormatResearch(results)

	if !strings.Contains(text, "### research-search Error:\nboom") {
		t.Fatalf("error section missing:\n%s", text)
	}
	if !strings.Contains(text, long[:1500]+"...") {
		t.Fatalf("web content not truncated at 1500")
	}
	if strings.Contains(text, long[:1600]) {
		t.Fatalf("web content exceeds truncation limit")
	}
	if !strings.Contains(text, "### Encyclopedia: Topic\n"+long[:500]+"...") {
		t.Fatalf("encyclopedia summary not truncated at 500")
	}
}

func TestFormatResearchOrderAndLimits(t *testing.T) {
	webResults := make([]research.WebResult, 5)
	for i := range webResults {
		webResults[i] = research.WebResult{Title: "Item", URL: "https://example.com"}
	}
	results := []ToolResult{
		{Tool: ToolResearchSearch, Result: webResults},
		{Tool: ToolCodeRepoSearch, Result: []research.Repo{{Name: "go/tools", URL: "https://github.com/go/tools"}}},
	}
	text, _ := FormatResearch(results)

	if strings.Count(text, "#### Result") != 3 {
		t.Fatalf("expected top 3 web results, got:\n%s", text)
	}
	webIdx := strings.Index(text, "Web Search Results")
	repoIdx := strings.Index(text, "Code Repositories")
	if webIdx < 0 || repoIdx < 0 || webIdx > repoIdx {
		t.Fatalf("sections out of input order:\n%s", text)
	}
}

func TestFormatResearchSkipsUnknownPayloads(t *testing.T) {
	results := []ToolResult{
		{Tool: ToolResearchSearch, Result: 42},
		{Tool: ToolVideoSearch, Result: "not a slice"},
	}
	text, placeholders := FormatResearch(results)
	if strings.TrimSpace(text) != "" {
		t.Fatalf("malformed payloads should render nothing, got:\n%s", text)
	}
	if len(placeholders) != 0 {
		t.Fatalf("no placeholders expected, got %v", placeholders)
	}
}
