package services

import (
	"strings"
	"testing"

	"gorm.io/datatypes"

	"github.com/Tetraslam/onemonth-dev/internal/agent"
	"github.com/Tetraslam/onemonth-dev/internal/types"
)

func TestBuildGenerationQueryIncludesParameters(t *testing.T) {
	c := &types.Curriculum{
		Title:                 "Intro to Rust",
		Description:           "Systems programming from scratch",
		LearningGoal:          "Learn Rust",
		DifficultyLevel:       "intermediate",
		EstimatedDurationDays: 14,
		NumProjects:           3,
		Metadata:              datatypes.JSON([]byte(`{"prerequisites":"C basics","daily_time_commitment_minutes":90,"learning_style":"Hands-on"}`)),
	}

	query := buildGenerationQuery(c)

	for _, want := range []string{
		"Generate a 14-day curriculum",
		"Learning Goal: Learn Rust",
		"Title: Intro to Rust",
		"Difficulty: intermediate",
		"Prerequisites: C basics",
		"Daily Time: 90 minutes",
		"Learning Style: Hands-on",
		"Projects: 3",
		"Distribute 3 projects evenly across 14 days",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("query missing %q", want)
		}
	}
}

func TestBuildGenerationQueryDefaultsMetadata(t *testing.T) {
	c := &types.Curriculum{
		Title:                 "Learning Go",
		LearningGoal:          "Learn Go",
		DifficultyLevel:       "beginner",
		EstimatedDurationDays: 30,
	}

	query := buildGenerationQuery(c)

	if !strings.Contains(query, "Prerequisites: None") {
		t.Errorf("expected default prerequisites, got:\n%s", query)
	}
	if !strings.Contains(query, "Daily Time: 60 minutes") {
		t.Errorf("expected default daily time, got:\n%s", query)
	}
	if !strings.Contains(query, "Learning Style: Balanced") {
		t.Errorf("expected default learning style, got:\n%s", query)
	}
}

func TestBuildGenerationQueryClassifiesAsCurriculum(t *testing.T) {
	c := &types.Curriculum{
		LearningGoal:          "Learn Go",
		EstimatedDurationDays: 30,
	}
	intent := agent.ClassifyIntent(buildGenerationQuery(c))
	if intent != agent.IntentCreateCurriculum {
		t.Fatalf("intent = %q, want %q", intent, agent.IntentCreateCurriculum)
	}
}

func TestResolveDraftSubstitutesPlaceholders(t *testing.T) {
	draft := &types.CurriculumDraft{
		CurriculumTitle:       "Learning Go",
		CurriculumDescription: "A tour",
		Days: []types.DayDraft{
			{
				DayNumber: 1,
				Title:     "Day one",
				Content:   types.Document{Type: "doc"},
				Resources: []types.Resource{
					{Title: "Intro video", URL: "[V1]"},
					{Title: "Article", URL: "https://example.com/a"},
				},
			},
		},
	}
	placeholders := agent.PlaceholderMap{"[V1]": "https://www.youtube.com/watch?v=abc123"}

	resolved, err := resolveDraft(draft, placeholders)
	if err != nil {
		t.Fatalf("resolveDraft: %v", err)
	}
	if got := resolved.Days[0].Resources[0].URL; got != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("resource URL = %q, want resolved link", got)
	}
	if got := resolved.Days[0].Resources[1].URL; got != "https://example.com/a" {
		t.Errorf("unrelated URL changed: %q", got)
	}
}

func TestResolveDraftNoPlaceholdersReturnsSame(t *testing.T) {
	draft := &types.CurriculumDraft{CurriculumTitle: "x"}
	resolved, err := resolveDraft(draft, nil)
	if err != nil {
		t.Fatalf("resolveDraft: %v", err)
	}
	if resolved != draft {
		t.Error("expected the same draft back when there is nothing to resolve")
	}
}
