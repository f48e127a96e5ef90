package agent

import (
	"reflect"
	"testing"
)

func TestSelectToolsBaseSets(t *testing.T) {
	cases := []struct {
		intent Intent
		query  string
		want   []ToolName
	}{
		{IntentCreateCurriculum, "learn cooking", []ToolName{ToolResearchSearch, ToolVideoSearch}},
		{IntentExplainConcept, "tell me about photosynthesis", []ToolName{ToolEncyclopediaSearch, ToolResearchSearch, ToolVideoSearch, ToolQASearch}},
		{IntentProvidePractice, "drills please", []ToolName{ToolResearchSearch, ToolQASearch}},
		{IntentFindResources, "stuff on pottery", []ToolName{ToolVideoSearch, ToolResearchSearch, ToolCodeRepoSearch, ToolQASearch, ToolDocumentSearch}},
		{IntentGeneralHelp, "help me get organized", []ToolName{ToolResearchSearch, ToolQASearch, ToolDocumentSearch}},
		{IntentGreeting, "hi", nil},
		{IntentGeneralChat, "thanks", nil},
		{IntentRegenerateDay, "regenerate this curriculum day", nil},
	}
	for _, tc := range cases {
		got := SelectTools(tc.intent, tc.query)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SelectTools(%s, %q) = %v, want %v", tc.intent, tc.query, got, tc.want)
		}
	}
}

func TestSelectToolsAugmentations(t *testing.T) {
	got := SelectTools(IntentCreateCurriculum, "learn calculus and statistics")
	want := []ToolName{ToolResearchSearch, ToolVideoSearch, ToolQuantitativeQuery}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("math augmentation: got %v, want %v", got, want)
	}

	got = SelectTools(IntentCreateCurriculum, "learn python programming for academic research")
	want = []ToolName{ToolResearchSearch, ToolVideoSearch, ToolCodeRepoSearch, ToolPaperSearch}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("programming+academic augmentation: got %v, want %v", got, want)
	}
}

func TestClassifyAndSelectPythonCurriculum(t *testing.T) {
	query := "create a curriculum for learning Python in 5 days"

	intent := ClassifyIntent(query)
	if intent != IntentCreateCurriculum {
		t.Fatalf("intent = %q, want %q", intent, IntentCreateCurriculum)
	}

	got := SelectTools(intent, query)
	has := map[ToolName]bool{}
	for _, tool := range got {
		has[tool] = true
	}
	for _, want := range []ToolName{ToolResearchSearch, ToolVideoSearch, ToolCodeRepoSearch} {
		if !has[want] {
			t.Errorf("selection %v missing %s", got, want)
		}
	}
	for _, unwanted := range []ToolName{ToolQuantitativeQuery, ToolPaperSearch} {
		if has[unwanted] {
			t.Errorf("selection %v unexpectedly includes %s", got, unwanted)
		}
	}
}

func TestSelectToolsNoDuplicates(t *testing.T) {
	// find_resources already includes code-repo-search; a programming
	// keyword must not add it twice.
	got := SelectTools(IntentFindResources, "python coding resources")
	seen := map[ToolName]int{}
	for _, tool := range got {
		seen[tool]++
	}
	for tool, n := range seen {
		if n > 1 {
			t.Fatalf("tool %s selected %d times", tool, n)
		}
	}

	// general_help with a recency keyword keeps qa-search single.
	got = SelectTools(IntentGeneralHelp, "latest javascript news")
	count := 0
	for _, tool := range got {
		if tool == ToolQASearch {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("qa-search selected %d times, want 1", count)
	}
}
