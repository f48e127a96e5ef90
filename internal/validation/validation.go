package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/xeipuuv/gojsonschema"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/types"
)

// Validator runs the repair-and-validate cascade on raw model output. Each
// stage is a fallback for the previous one: markdown fence extraction, then
// lenient structural repair, then schema validation. The cascade never
// guesses: any unrecoverable failure yields nil, not a partial result.
type Validator struct {
	log              *logger.Logger
	curriculumSchema *gojsonschema.Schema
	daySchema        *gojsonschema.Schema
}

func NewValidator(log *logger.Logger) (*Validator, error) {
	cs, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(curriculumSchema))
	if err != nil {
		return nil, fmt.Errorf("compile curriculum schema: %w", err)
	}
	ds, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(daySchema))
	if err != nil {
		return nil, fmt.Errorf("compile day schema: %w", err)
	}
	return &Validator{
		log:              log.With("service", "Validator"),
		curriculumSchema: cs,
		daySchema:        ds,
	}, nil
}

var (
	boundedFenceRe = regexp.MustCompile("(?s)\\A\\s*```(?:json)?\\s*\\n(.*?)\\n?```\\s*\\z")
	midFenceRe     = regexp.MustCompile("(?s)```(?:json)?\\s*\\n(.*?)\\n?```")
)

// ExtractJSON strips a markdown code fence from model output. A response
// with explanatory prose before or after the fenced block still parses; a
// response with no fence passes through unmodified.
func ExtractJSON(raw string) string {
	if m := boundedFenceRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := midFenceRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// repair passes the extracted text through a lenient JSON repairer that
// tolerates trailing commas, mis-quoted keys, smart quotes and truncated
// structures. It fails only when no JSON-like structure is present at all.
func (v *Validator) repair(extracted string) (string, bool) {
	repaired, err := jsonrepair.JSONRepair(extracted)
	if err != nil {
		v.log.Warn("JSON repair failed", "error", err)
		return "", false
	}
	return repaired, true
}

func (v *Validator) validate(schema *gojsonschema.Schema, repaired string) bool {
	result, err := schema.Validate(gojsonschema.NewStringLoader(repaired))
	if err != nil {
		v.log.Warn("Schema validation errored", "error", err)
		return false
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}
		v.log.Warn("Schema validation failed", "reasons", strings.Join(reasons, "; "))
		return false
	}
	return true
}

// CleanAndValidate runs the full cascade on raw curriculum output. On any
// failure it returns nil: total failure surfaces as total failure, which
// the caller maps to a failed generation status. It never drops invalid
// days to make the rest fit.
func (v *Validator) CleanAndValidate(raw string) *types.CurriculumDraft {
	extracted := ExtractJSON(raw)

	repaired, ok := v.repair(extracted)
	if !ok {
		return nil
	}
	if !v.validate(v.curriculumSchema, repaired) {
		return nil
	}

	var draft types.CurriculumDraft
	if err := json.Unmarshal([]byte(repaired), &draft); err != nil {
		v.log.Warn("Validated JSON failed to decode", "error", err)
		return nil
	}

	if !dayNumbersContiguous(draft.Days) {
		v.log.Warn("Day numbers not unique and contiguous from 1", "days", len(draft.Days))
		return nil
	}
	sort.Slice(draft.Days, func(i, j int) bool {
		return draft.Days[i].DayNumber < draft.Days[j].DayNumber
	})
	for i := range draft.Days {
		if !draft.Days[i].IsProjectDay {
			draft.Days[i].ProjectData = nil
		}
	}
	return &draft
}

// CleanAndValidateDay runs the same cascade on a single regenerated day.
func (v *Validator) CleanAndValidateDay(raw string) *types.DayDraft {
	extracted := ExtractJSON(raw)

	repaired, ok := v.repair(extracted)
	if !ok {
		return nil
	}
	if !v.validate(v.daySchema, repaired) {
		return nil
	}

	var day types.DayDraft
	if err := json.Unmarshal([]byte(repaired), &day); err != nil {
		v.log.Warn("Validated day JSON failed to decode", "error", err)
		return nil
	}
	if !day.IsProjectDay {
		day.ProjectData = nil
	}
	return &day
}

// dayNumbersContiguous reports whether day numbers form exactly 1..n with
// no duplicates, in any order.
func dayNumbersContiguous(days []types.DayDraft) bool {
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d.DayNumber < 1 || d.DayNumber > len(days) || seen[d.DayNumber] {
			return false
		}
		seen[d.DayNumber] = true
	}
	return len(seen) == len(days)
}
