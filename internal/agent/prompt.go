package agent

import (
	"fmt"
	"strings"
)

// Prompt is one assembled system/user prompt pair.
type Prompt struct {
	System string
	User   string
}

// curriculumSystemPrompt fixes the exact output schema the validation
// cascade checks. The two must be changed together.
const curriculumSystemPrompt = `You are an expert curriculum designer for onemonth.dev.
Your task is to generate a structured curriculum in JSON format.

The JSON output MUST have the following top-level keys:
- "curriculum_title": A string (1-100 characters) for the overall title of the curriculum.
- "curriculum_description": A string (1-500 characters) describing the curriculum.
- "days": A non-empty list of day objects.

Each day object in the "days" list MUST have the following keys:
- "day_number": An integer day number. Day numbers must be unique and contiguous starting from 1.
- "title": A concise string title (1-80 characters) for the day's topic.
- "is_project_day": A boolean. True only for hands-on project days.
- "project_data": Required if and only if "is_project_day" is true. An object with "title", "description", "objectives" (list of strings), "requirements" (list of strings), "deliverables" (list of strings), and "evaluation_criteria" (list of strings). Omit this key entirely on non-project days.
- "content": A JSON object representing rich text content for the learning module. For example: {"type": "doc", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "Today you will learn about X..."}]}]}
- "resources": A list of JSON objects, where each object has "title" (string) and "url" (string) for relevant learning resources. Video resources must use their [V<n>] identifiers from the research as the url value.
- "estimated_hours": An optional positive number of estimated hours for the day.

Respond with ONLY the JSON object inside a ` + "```json" + ` fenced code block. Do not include any explanatory text outside the fence.`

const regenerateDaySystemPrompt = `You are an expert curriculum designer for onemonth.dev.
You will be given the current state of one curriculum day and an improvement instruction.
Regenerate the day keeping the same JSON structure and keys, applying the instruction to the content.
Respond with ONLY the day JSON object inside a ` + "```json" + ` fenced code block.`

const greetingSystemPrompt = `You are a friendly learning assistant for onemonth.dev. Reply to the greeting in one or two short, warm sentences.`

const conversationalSystemPrompt = `You are a knowledgeable learning assistant for onemonth.dev.
Help the user with their question clearly and concisely, using the supporting research when it is relevant.
Format your answer in markdown.`

// AssemblePrompt builds the system/user prompt pair for an intent. The
// query carries the caller-supplied requirements verbatim; researchText may
// be empty when no tools ran or all failed.
func AssemblePrompt(intent Intent, query string, researchText string) Prompt {
	switch intent {
	case IntentGreeting:
		return Prompt{System: greetingSystemPrompt, User: query}
	case IntentCreateCurriculum:
		user := fmt.Sprintf(`User Preferences and Goal (this was the input from the user/system that initiated the curriculum generation):
%s

Supporting Research & Tool Outputs:
%s

Based on ALL the information above, generate the curriculum in the specified JSON format.
Ensure the curriculum directly addresses the user's learning goal and preferences.
Make sure the number of days in the generated "days" list matches the requested total duration in days from the user preferences.`, query, researchText)
		return Prompt{System: curriculumSystemPrompt, User: user}
	case IntentRegenerateDay:
		return Prompt{System: regenerateDaySystemPrompt, User: query}
	default:
		user := query
		if strings.TrimSpace(researchText) != "" {
			user = fmt.Sprintf("%s\n\nSupporting Research:\n%s", query, researchText)
		}
		return Prompt{System: conversationalSystemPrompt, User: user}
	}
}
