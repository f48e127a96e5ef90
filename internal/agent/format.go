package agent

import (
	"fmt"
	"strings"

	"github.com/Tetraslam/onemonth-dev/internal/clients/research"
)

// PlaceholderMap maps opaque video identifiers like [V1] to real URLs. It
// is scoped to one FormatResearch call and must only resolve output from
// the same generation.
type PlaceholderMap map[string]string

// FormatResearch renders tool results into prompt-ready markdown, in input
// order. Video URLs are never printed; each video gets a fresh [V<n>]
// identifier recorded in the returned map, so the model references videos
// compactly and cannot fabricate a plausible-but-wrong URL. Malformed
// payloads are skipped per tool.
func FormatResearch(results []ToolResult) (string, PlaceholderMap) {
	var out []string
	placeholders := PlaceholderMap{}
	videoCounter := 0

	for _, tr := range results {
		if tr.Err != "" {
			out = append(out, fmt.Sprintf("\n### %s Error:\n%s", tr.Tool, tr.Err))
			continue
		}

		switch payload := tr.Result.(type) {
		case []research.WebResult:
			out = append(out, "\n### Web Search Results (Full Content):")
			for i, item := range top(payload, 3) {
				out = append(out, fmt.Sprintf("\n#### Result %d: %s", i+1, orDefault(item.Title, "Untitled")))
				out = append(out, "URL: "+orDefault(item.URL, "N/A"))
				out = append(out, "Description: "+orDefault(item.Description, "N/A"))
				if item.Markdown != "" {
					out = append(out, "Content:\n"+clip(item.Markdown, 1500))
				}
				out = append(out, "")
			}
		case []research.Answer:
			for _, item := range top(payload, 3) {
				if item.Content == "" {
					continue
				}
				out = append(out, "\n### Answer Engine Result:\n"+clip(item.Content, 1000))
			}
		case []research.Video:
			out = append(out, "\n### Videos:")
			for _, video := range top(payload, 10) {
				videoCounter++
				id := fmt.Sprintf("[V%d]", videoCounter)
				placeholders[id] = video.URL
				line := fmt.Sprintf("- %s %s by %s", id, orDefault(video.Title, "Unknown"), orDefault(video.Channel, "Unknown"))
				if video.Duration != "" {
					line += " (" + video.Duration + ")"
				}
				if video.Description != "" {
					line += " - " + clip(video.Description, 150)
				}
				out = append(out, line)
			}
		case *research.EncyclopediaPage:
			if payload != nil {
				out = append(out, fmt.Sprintf("\n### Encyclopedia: %s\n%s", orDefault(payload.Title, "Unknown"), clip(payload.Summary, 500)))
			}
		case []research.Repo:
			out = append(out, "\n### Code Repositories:")
			for _, repo := range top(payload, 5) {
				out = append(out, fmt.Sprintf("- [%s](%s) - %s", orDefault(repo.Name, "Unknown"), orDefault(repo.URL, "#"), clip(orDefault(repo.Description, "No description"), 100)))
			}
		case []research.Paper:
			out = append(out, "\n### Academic Papers:")
			for _, paper := range top(payload, 3) {
				out = append(out, fmt.Sprintf("- [%s](%s) - %s", orDefault(paper.Title, "Unknown"), orDefault(paper.URL, "#"), clip(paper.Summary, 200)))
			}
		case []research.DocumentResult:
			out = append(out, "\n### Document Search Results:")
			for _, doc := range top(payload, 3) {
				out = append(out, fmt.Sprintf("- [%s](%s) - %s", orDefault(doc.Title, "Untitled"), orDefault(doc.URL, "#"), clip(doc.Text, 500)))
			}
		case *research.ComputeResult:
			if payload != nil && payload.Success {
				out = append(out, "\n### Computational Results:")
				for _, pod := range payload.Pods {
					out = append(out, fmt.Sprintf("**%s**: %s", pod.Title, strings.Join(pod.Subpods, "; ")))
				}
			}
		}
	}
	return strings.Join(out, "\n"), placeholders
}

func top[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// clip limits by rune so a cut never lands inside a multi-byte character.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
