package research

import (
	"context"
	"errors"
)

// WebResult is one web-search hit with its scraped page body.
type WebResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Markdown    string `json:"markdown"`
}

// Answer is one conversational answer-engine response.
type Answer struct {
	Content   string   `json:"content"`
	Citations []string `json:"citations"`
}

// DocumentResult is one neural document-search hit.
type DocumentResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

// SearchWeb searches the web through Firecrawl and returns results with
// full markdown page content, not just snippets.
func (c *Client) SearchWeb(ctx context.Context, query string) ([]WebResult, error) {
	if !c.WebSearchEnabled() {
		return nil, errors.New("firecrawl API key not configured")
	}

	payload := map[string]any{
		"query": query,
		"limit": 5,
		"scrapeOptions": map[string]any{
			"formats":         []string{"markdown"},
			"onlyMainContent": true,
			"includeHtml":     false,
		},
	}

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			URL      string `json:"url"`
			Markdown string `json:"markdown"`
			Metadata struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"metadata"`
		} `json:"data"`
	}
	err := c.postJSON(ctx, "https://api.firecrawl.dev/v1/search", map[string]string{
		"Authorization": "Bearer " + c.firecrawlAPIKey,
	}, payload, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success || len(resp.Data) == 0 {
		return nil, errors.New("no results found")
	}

	results := make([]WebResult, 0, len(resp.Data))
	for _, item := range resp.Data {
		results = append(results, WebResult{
			URL:         item.URL,
			Title:       item.Metadata.Title,
			Description: item.Metadata.Description,
			Markdown:    item.Markdown,
		})
	}
	return results, nil
}

// AskAnswerEngine asks Perplexity for a synthesized, up-to-date answer.
func (c *Client) AskAnswerEngine(ctx context.Context, query string) ([]Answer, error) {
	if !c.AnswerEngineEnabled() {
		return nil, errors.New("perplexity API key not configured")
	}

	payload := map[string]any{
		"model": "llama-3.1-sonar-small-128k-online",
		"messages": []map[string]string{
			{"role": "system", "content": "You are a helpful search assistant. Return comprehensive, factual information."},
			{"role": "user", "content": query},
		},
		"temperature":           0.2,
		"top_p":                 0.9,
		"return_images":         false,
		"search_recency_filter": "month",
		"stream":                false,
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Citations []string `json:"citations"`
	}
	err := c.postJSON(ctx, "https://api.perplexity.ai/chat/completions", map[string]string{
		"Authorization": "Bearer " + c.perplexityAPIKey,
	}, payload, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty answer engine response")
	}
	return []Answer{{
		Content:   resp.Choices[0].Message.Content,
		Citations: resp.Citations,
	}}, nil
}

// SearchDocuments runs a neural document search through Exa.
func (c *Client) SearchDocuments(ctx context.Context, query string) ([]DocumentResult, error) {
	if !c.DocumentsEnabled() {
		return nil, errors.New("exa API key not configured")
	}

	payload := map[string]any{
		"query":         query,
		"useAutoprompt": true,
		"numResults":    10,
		"contents": map[string]any{
			"text": true,
		},
	}

	var resp struct {
		Results []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
			Text  string `json:"text"`
		} `json:"results"`
	}
	err := c.postJSON(ctx, "https://api.exa.ai/search", map[string]string{
		"x-api-key": c.exaAPIKey,
	}, payload, &resp)
	if err != nil {
		return nil, err
	}

	results := make([]DocumentResult, 0, len(resp.Results))
	for _, item := range resp.Results {
		results = append(results, DocumentResult{
			Title: item.Title,
			URL:   item.URL,
			Text:  item.Text,
		})
	}
	return results, nil
}
