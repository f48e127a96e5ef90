package validation

import (
	"strings"
	"testing"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	v, err := NewValidator(log)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	return v
}

const validCurriculum = `{
  "curriculum_title": "Learn Go in 3 Days",
  "curriculum_description": "A short introduction to the Go programming language.",
  "days": [
    {
      "day_number": 1,
      "title": "Syntax Basics",
      "is_project_day": false,
      "content": {"type": "doc", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "Variables and types."}]}]},
      "resources": [{"title": "Tour of Go", "url": "https://go.dev/tour"}],
      "estimated_hours": 2.5
    },
    {
      "day_number": 2,
      "title": "Concurrency",
      "is_project_day": false,
      "content": {"type": "doc", "content": []},
      "resources": []
    },
    {
      "day_number": 3,
      "title": "Build a CLI",
      "is_project_day": true,
      "project_data": {"title": "CLI Tool", "description": "Build a small command line tool.", "objectives": ["ship it"], "requirements": [], "deliverables": ["binary"], "evaluation_criteria": ["works"]},
      "content": {"type": "doc", "content": []},
      "resources": []
    }
  ]
}`

func TestExtractJSON(t *testing.T) {
	inner := `{"a": 1}`
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bounded json fence", "```json\n" + inner + "\n```", inner},
		{"bounded bare fence", "```\n" + inner + "\n```", inner},
		{"prose around fence", "Here you go:\n```json\n" + inner + "\n```\nHope that helps!", inner},
		{"no fence", inner, inner},
	}
	for _, tc := range cases {
		if got := ExtractJSON(tc.raw); got != tc.want {
			t.Errorf("%s: ExtractJSON = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCleanAndValidateAcceptsWellFormed(t *testing.T) {
	v := newTestValidator(t)
	draft := v.CleanAndValidate("```json\n" + validCurriculum + "\n```")
	if draft == nil {
		t.Fatal("expected a draft, got nil")
	}
	if draft.CurriculumTitle != "Learn Go in 3 Days" || len(draft.Days) != 3 {
		t.Fatalf("draft decoded wrong: %+v", draft)
	}
	if draft.Days[2].ProjectData == nil {
		t.Fatal("project day lost its project data")
	}
}

func TestCleanAndValidateRepairsTrailingComma(t *testing.T) {
	v := newTestValidator(t)
	broken := strings.Replace(validCurriculum, `"estimated_hours": 2.5`, `"estimated_hours": 2.5,`, 1)
	if v.CleanAndValidate(broken) == nil {
		t.Fatal("trailing comma should be repaired, not fatal")
	}
}

func TestCleanAndValidateRejectsWrongTopLevelKeys(t *testing.T) {
	v := newTestValidator(t)
	wrong := strings.Replace(validCurriculum, `"curriculum_title"`, `"title"`, 1)
	if v.CleanAndValidate(wrong) != nil {
		t.Fatal("wrong key names must fail validation, not be remapped")
	}
}

func TestCleanAndValidateRejectsNonContiguousDays(t *testing.T) {
	v := newTestValidator(t)
	gap := strings.Replace(validCurriculum, `"day_number": 3`, `"day_number": 5`, 1)
	if v.CleanAndValidate(gap) != nil {
		t.Fatal("day number gap must fail")
	}
	dup := strings.Replace(validCurriculum, `"day_number": 3`, `"day_number": 2`, 1)
	if v.CleanAndValidate(dup) != nil {
		t.Fatal("duplicate day number must fail")
	}
}

func TestCleanAndValidateProjectDataRules(t *testing.T) {
	v := newTestValidator(t)

	// Project day without project data is a validation failure.
	missing := strings.Replace(validCurriculum, `"project_data": {"title": "CLI Tool", "description": "Build a small command line tool.", "objectives": ["ship it"], "requirements": [], "deliverables": ["binary"], "evaluation_criteria": ["works"]},`, "", 1)
	if v.CleanAndValidate(missing) != nil {
		t.Fatal("project day without project_data must fail")
	}

	// Project data on a non-project day is cleared, not fatal.
	stray := strings.Replace(validCurriculum,
		`"day_number": 2,
      "title": "Concurrency",
      "is_project_day": false,`,
		`"day_number": 2,
      "title": "Concurrency",
      "is_project_day": false,
      "project_data": {"title": "Oops", "description": "Should not be here."},`, 1)
	draft := v.CleanAndValidate(stray)
	if draft == nil {
		t.Fatal("stray project_data should not be fatal")
	}
	if draft.Days[1].ProjectData != nil {
		t.Fatal("stray project_data was not cleared")
	}
}

func TestCleanAndValidateSortsDays(t *testing.T) {
	v := newTestValidator(t)
	reordered := strings.Replace(validCurriculum, `"day_number": 1`, `"day_number": 3`, 1)
	reordered = strings.Replace(reordered, `"day_number": 3,
      "title": "Build a CLI"`, `"day_number": 1,
      "title": "Build a CLI"`, 1)
	draft := v.CleanAndValidate(reordered)
	if draft == nil {
		t.Fatal("reordered days should validate")
	}
	for i, day := range draft.Days {
		if day.DayNumber != i+1 {
			t.Fatalf("days not sorted: %d at index %d", day.DayNumber, i)
		}
	}
}

func TestCleanAndValidateErrorSentinel(t *testing.T) {
	v := newTestValidator(t)
	sentinel := `{ "error": "Failed to generate completion. Status: 500. Details: upstream" }`
	if v.CleanAndValidate(sentinel) != nil {
		t.Fatal("error sentinel must fail validation cleanly")
	}
}

func TestCleanAndValidateDay(t *testing.T) {
	v := newTestValidator(t)
	day := `{
      "day_number": 4,
      "title": "Testing",
      "is_project_day": false,
      "content": {"type": "doc", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "Write tests."}]}]},
      "resources": []
    }`
	got := v.CleanAndValidateDay("```json\n" + day + "\n```")
	if got == nil {
		t.Fatal("expected a day draft, got nil")
	}
	if got.DayNumber != 4 || got.Title != "Testing" {
		t.Fatalf("day decoded wrong: %+v", got)
	}

	if v.CleanAndValidateDay(`{"title": "no day number"}`) != nil {
		t.Fatal("invalid day must fail")
	}
}
