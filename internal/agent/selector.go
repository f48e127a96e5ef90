package agent

import "strings"

// ToolName identifies one research tool.
type ToolName string

const (
	ToolResearchSearch     ToolName = "research-search"
	ToolVideoSearch        ToolName = "video-search"
	ToolQASearch           ToolName = "qa-search"
	ToolEncyclopediaSearch ToolName = "encyclopedia-search"
	ToolCodeRepoSearch     ToolName = "code-repo-search"
	ToolPaperSearch        ToolName = "paper-search"
	ToolQuantitativeQuery  ToolName = "quantitative-query"
	ToolDocumentSearch     ToolName = "document-search"
)

var mathKeywords = []string{"math", "calculus", "algebra", "statistics"}
var programmingKeywords = []string{"programming", "coding", "python", "javascript"}
var academicKeywords = []string{"research", "academic", "paper"}
var recencyKeywords = []string{"latest", "recent", "current", "news", "today"}

// SelectTools returns the ordered tool set for an intent, augmented by
// keyword triggers scanned over the raw query. No tool appears twice; the
// augmentation order is fixed.
func SelectTools(intent Intent, query string) []ToolName {
	q := strings.ToLower(query)

	var tools []ToolName
	appendTool := func(t ToolName) {
		for _, existing := range tools {
			if existing == t {
				return
			}
		}
		tools = append(tools, t)
	}
	appendIf := func(keywords []string, t ToolName) {
		if containsAny(q, keywords) {
			appendTool(t)
		}
	}
	appendStandardAugmentations := func() {
		appendIf(mathKeywords, ToolQuantitativeQuery)
		appendIf(programmingKeywords, ToolCodeRepoSearch)
		appendIf(academicKeywords, ToolPaperSearch)
	}

	switch intent {
	case IntentCreateCurriculum:
		appendTool(ToolResearchSearch)
		appendTool(ToolVideoSearch)
		appendStandardAugmentations()
	case IntentExplainConcept:
		appendTool(ToolEncyclopediaSearch)
		appendTool(ToolResearchSearch)
		appendTool(ToolVideoSearch)
		appendTool(ToolQASearch)
		appendStandardAugmentations()
	case IntentProvidePractice:
		appendTool(ToolResearchSearch)
		appendTool(ToolQASearch)
	case IntentFindResources:
		appendTool(ToolVideoSearch)
		appendTool(ToolResearchSearch)
		appendTool(ToolCodeRepoSearch)
		appendTool(ToolQASearch)
		appendTool(ToolDocumentSearch)
	case IntentGeneralHelp:
		appendTool(ToolResearchSearch)
		appendTool(ToolQASearch)
		appendTool(ToolDocumentSearch)
		appendStandardAugmentations()
		appendIf(recencyKeywords, ToolQASearch)
	case IntentRegenerateDay, IntentGreeting, IntentGeneralChat:
		// No research needed.
	}
	return tools
}
