package agent

import (
	"strings"
	"testing"
)

func TestAssemblePromptGreeting(t *testing.T) {
	p := AssemblePrompt(IntentGreeting, "hello", "")
	if p.User != "hello" {
		t.Fatalf("greeting user content must be the raw query, got %q", p.User)
	}
	if !strings.Contains(p.System, "greeting") {
		t.Fatalf("unexpected greeting system prompt: %s", p.System)
	}
}

func TestAssemblePromptCreateCurriculum(t *testing.T) {
	query := "Learning goal: Rust. Total duration: 30 days."
	research := "### Videos:\n- [V1] Rust in 100 Seconds by Fireship"
	p := AssemblePrompt(IntentCreateCurriculum, query, research)

	// The schema keys in the prompt are the contract the validation
	// cascade checks; all of them must be spelled out.
	for _, key := range []string{"curriculum_title", "curriculum_description", "days", "day_number", "is_project_day", "project_data", "estimated_hours"} {
		if !strings.Contains(p.System, `"`+key+`"`) {
			t.Errorf("system prompt missing schema key %q", key)
		}
	}
	if !strings.Contains(p.System, "```json") {
		t.Errorf("system prompt must demand a fenced JSON response")
	}
	if !strings.Contains(p.User, query) {
		t.Errorf("user prompt must carry the requirements verbatim")
	}
	if !strings.Contains(p.User, research) {
		t.Errorf("user prompt must include the research text")
	}
}

func TestAssemblePromptConversational(t *testing.T) {
	withResearch := AssemblePrompt(IntentExplainConcept, "explain closures", "### Web Search Results")
	if !strings.Contains(withResearch.User, "Supporting Research:") {
		t.Fatalf("research text not interpolated: %q", withResearch.User)
	}

	withoutResearch := AssemblePrompt(IntentExplainConcept, "explain closures", "  ")
	if withoutResearch.User != "explain closures" {
		t.Fatalf("blank research must leave the query alone, got %q", withoutResearch.User)
	}
}

func TestAssemblePromptRegenerateDay(t *testing.T) {
	query := "regenerate this curriculum day\nCurrent day: {...}\nInstruction: add exercises"
	p := AssemblePrompt(IntentRegenerateDay, query, "")
	if p.User != query {
		t.Fatalf("regenerate user content must carry the supplied day state verbatim")
	}
	if !strings.Contains(p.System, "same JSON structure") {
		t.Fatalf("unexpected regenerate system prompt: %s", p.System)
	}
}
