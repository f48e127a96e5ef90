package agent

import "strings"

// Intent is the closed set of recognized user intents. Exactly one is
// assigned per query; it drives both tool selection and prompt assembly.
type Intent string

const (
	IntentGreeting         Intent = "greeting"
	IntentCreateCurriculum Intent = "create_curriculum"
	IntentRegenerateDay    Intent = "regenerate_day"
	IntentExplainConcept   Intent = "explain_concept"
	IntentProvidePractice  Intent = "provide_practice"
	IntentFindResources    Intent = "find_resources"
	IntentGeneralHelp      Intent = "general_help"
	IntentGeneralChat      Intent = "general_chat"
)

// regenerateDayMarker is the literal phrase the day-regeneration flow embeds
// in its synthetic query so classification is exact, not heuristic.
const regenerateDayMarker = "regenerate this curriculum day"

var greetingSet = map[string]bool{
	"hi":        true,
	"hello":     true,
	"hey":       true,
	"greetings": true,
	"sup":       true,
	"yo":        true,
}

var curriculumVerbs = []string{"create", "generate", "build", "make", "plan"}
var explainKeywords = []string{"explain", "what", "how", "why"}
var practiceKeywords = []string{"practice", "exercise", "problem", "quiz"}
var resourceKeywords = []string{"resource", "material", "link", "video"}

// ClassifyIntent maps a raw query to an Intent. Checks are ordered and the
// first match wins: the greeting and regeneration checks must run before the
// keyword cascade so that short commands are not swallowed by it.
func ClassifyIntent(query string) Intent {
	q := strings.ToLower(strings.TrimSpace(query))

	if greetingSet[q] {
		return IntentGreeting
	}
	if strings.Contains(q, regenerateDayMarker) {
		return IntentRegenerateDay
	}
	if strings.Contains(q, "curriculum") && containsAny(q, curriculumVerbs) {
		return IntentCreateCurriculum
	}
	if containsAny(q, explainKeywords) {
		return IntentExplainConcept
	}
	if containsAny(q, practiceKeywords) {
		return IntentProvidePractice
	}
	if containsAny(q, resourceKeywords) {
		return IntentFindResources
	}
	if len(strings.Fields(q)) < 4 {
		return IntentGeneralChat
	}
	return IntentGeneralHelp
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
