package types

import "strings"

// Pure JSON contract between the LLM output and the persistence layer.
// Not DB models. Field names here are the schema the model is prompted
// to produce; the validation cascade enforces them.

// Node is one node of the rich-text tree (ProseMirror-style). A node is
// either a text leaf (Text set) or a container (Content set); both carry
// an open-ended type tag plus optional attrs and marks.
type Node struct {
	Type    string           `json:"type"`
	Attrs   map[string]any   `json:"attrs,omitempty"`
	Content []Node           `json:"content,omitempty"`
	Text    string           `json:"text,omitempty"`
	Marks   []map[string]any `json:"marks,omitempty"`
}

// Document is the root of a rich-text tree. Type is always "doc".
type Document struct {
	Type    string `json:"type"`
	Content []Node `json:"content"`
}

// PlainText walks the tree and concatenates text leaves, space-separated.
func (d Document) PlainText() string {
	var parts []string
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if n.Type == "text" && n.Text != "" {
				parts = append(parts, n.Text)
			}
			if len(n.Content) > 0 {
				walk(n.Content)
			}
		}
	}
	walk(d.Content)
	return strings.TrimSpace(strings.Join(parts, " "))
}

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type ProjectData struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Objectives         []string `json:"objectives"`
	Requirements       []string `json:"requirements"`
	Deliverables       []string `json:"deliverables"`
	EvaluationCriteria []string `json:"evaluation_criteria"`
}

type DayDraft struct {
	DayNumber      int          `json:"day_number"`
	Title          string       `json:"title"`
	IsProjectDay   bool         `json:"is_project_day"`
	ProjectData    *ProjectData `json:"project_data,omitempty"`
	Content        Document     `json:"content"`
	Resources      []Resource   `json:"resources"`
	EstimatedHours *float64     `json:"estimated_hours,omitempty"`
}

type CurriculumDraft struct {
	CurriculumTitle       string     `json:"curriculum_title"`
	CurriculumDescription string     `json:"curriculum_description"`
	Days                  []DayDraft `json:"days"`
}
