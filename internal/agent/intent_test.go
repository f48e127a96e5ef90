package agent

import "testing"

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		query string
		want  Intent
	}{
		{"hi", IntentGreeting},
		{"  Hello  ", IntentGreeting},
		{"yo", IntentGreeting},
		{"Please regenerate this curriculum day with more examples", IntentRegenerateDay},
		{"create a curriculum for learning rust", IntentCreateCurriculum},
		{"plan a 30 day curriculum about linear algebra", IntentCreateCurriculum},
		{"explain recursion to me please", IntentExplainConcept},
		{"what is a monad and why should I care", IntentExplainConcept},
		{"give me practice problems for calculus derivatives", IntentProvidePractice},
		{"find me a video resource about guitar scales", IntentFindResources},
		{"thanks a lot", IntentGeneralChat},
		{"ok", IntentGeneralChat},
		{"I want to improve my public speaking skills over time", IntentGeneralHelp},
	}
	for _, tc := range cases {
		if got := ClassifyIntent(tc.query); got != tc.want {
			t.Errorf("ClassifyIntent(%q) = %s, want %s", tc.query, got, tc.want)
		}
	}
}

func TestClassifyIntentOrdering(t *testing.T) {
	// A bare greeting must not fall into the keyword cascade even though it
	// is shorter than four tokens.
	if got := ClassifyIntent("hey"); got != IntentGreeting {
		t.Fatalf("greeting misclassified as %s", got)
	}
	// The regeneration marker wins even when curriculum verbs are present.
	q := "regenerate this curriculum day and make it better"
	if got := ClassifyIntent(q); got != IntentRegenerateDay {
		t.Fatalf("marker phrase misclassified as %s", got)
	}
	// Curriculum creation wins over the explanation keywords that follow it.
	q = "generate a curriculum explaining how compilers work"
	if got := ClassifyIntent(q); got != IntentCreateCurriculum {
		t.Fatalf("curriculum creation misclassified as %s", got)
	}
	// Explanation keywords are checked before practice keywords.
	q = "explain this practice problem"
	if got := ClassifyIntent(q); got != IntentExplainConcept {
		t.Fatalf("cascade order broken, got %s", got)
	}
}
