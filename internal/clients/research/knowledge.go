package research

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Video is one video-search hit.
type Video struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Duration    string `json:"duration"`
	Channel     string `json:"channel"`
	Description string `json:"description"`
}

// EncyclopediaPage is a single reference-article lookup result.
type EncyclopediaPage struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// Repo is one code-repository search hit.
type Repo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Stars       int      `json:"stars"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
}

// Paper is one academic-paper search hit.
type Paper struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Summary   string   `json:"summary"`
	URL       string   `json:"url"`
	Published string   `json:"published"`
}

// ComputePod is one titled block of a computational-knowledge answer.
type ComputePod struct {
	Title   string   `json:"title"`
	Subpods []string `json:"subpods"`
}

// ComputeResult is the full answer to a quantitative query.
type ComputeResult struct {
	Query   string       `json:"query"`
	Success bool         `json:"success"`
	Pods    []ComputePod `json:"pods"`
}

// SearchVideos searches YouTube for educational videos. Durations come from
// a second videos.list call keyed by the first call's IDs.
func (c *Client) SearchVideos(ctx context.Context, query string) ([]Video, error) {
	if !c.VideosEnabled() {
		return nil, errors.New("youtube API key not configured")
	}

	searchURL := "https://www.googleapis.com/youtube/v3/search?" + url.Values{
		"part":       {"snippet"},
		"type":       {"video"},
		"maxResults": {"10"},
		"q":          {query},
		"key":        {c.youtubeAPIKey},
	}.Encode()

	var searchResp struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				Description  string `json:"description"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, searchURL, nil, &searchResp); err != nil {
		return nil, err
	}
	if len(searchResp.Items) == 0 {
		return []Video{}, nil
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	durations := map[string]string{}
	if len(ids) > 0 {
		detailsURL := "https://www.googleapis.com/youtube/v3/videos?" + url.Values{
			"part": {"contentDetails"},
			"id":   {strings.Join(ids, ",")},
			"key":  {c.youtubeAPIKey},
		}.Encode()
		var detailsResp struct {
			Items []struct {
				ID             string `json:"id"`
				ContentDetails struct {
					Duration string `json:"duration"`
				} `json:"contentDetails"`
			} `json:"items"`
		}
		// Best effort: videos still render without durations.
		if err := c.getJSON(ctx, detailsURL, nil, &detailsResp); err == nil {
			for _, item := range detailsResp.Items {
				durations[item.ID] = formatISODuration(item.ContentDetails.Duration)
			}
		}
	}

	videos := make([]Video, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, Video{
			Title:       item.Snippet.Title,
			URL:         "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Duration:    durations[item.ID.VideoID],
			Channel:     item.Snippet.ChannelTitle,
			Description: truncate(item.Snippet.Description, 500),
		})
	}
	return videos, nil
}

// formatISODuration renders an ISO 8601 duration like PT1H2M3S as 1:02:03.
func formatISODuration(iso string) string {
	iso = strings.TrimPrefix(iso, "PT")
	if iso == "" {
		return ""
	}
	var h, m, s int
	num := 0
	for _, r := range iso {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
		case r == 'H':
			h, num = num, 0
		case r == 'M':
			m, num = num, 0
		case r == 'S':
			s, num = num, 0
		default:
			return iso
		}
	}
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// LookupEncyclopedia resolves a query to the best-matching Wikipedia article
// and returns its summary. Always enabled; the API needs no key.
func (c *Client) LookupEncyclopedia(ctx context.Context, query string) (*EncyclopediaPage, error) {
	searchURL := "https://en.wikipedia.org/w/api.php?" + url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {"5"},
	}.Encode()

	var searchResp struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, searchURL, nil, &searchResp); err != nil {
		return nil, err
	}
	if len(searchResp.Query.Search) == 0 {
		return nil, fmt.Errorf("no encyclopedia page found for: %s", query)
	}
	title := searchResp.Query.Search[0].Title

	summaryURL := "https://en.wikipedia.org/api/rest_v1/page/summary/" + url.PathEscape(title)
	var summaryResp struct {
		Title       string `json:"title"`
		Extract     string `json:"extract"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}
	if err := c.getJSON(ctx, summaryURL, nil, &summaryResp); err != nil {
		return nil, err
	}
	return &EncyclopediaPage{
		Title:   summaryResp.Title,
		Summary: summaryResp.Extract,
		URL:     summaryResp.ContentURLs.Desktop.Page,
	}, nil
}

// SearchRepos searches GitHub repositories, most-starred first. Works
// unauthenticated; a token only raises the rate limit.
func (c *Client) SearchRepos(ctx context.Context, query string) ([]Repo, error) {
	searchURL := "https://api.github.com/search/repositories?" + url.Values{
		"q":        {query},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {"10"},
	}.Encode()

	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": "onemonth-dev/1.0",
	}
	if c.githubToken != "" {
		headers["Authorization"] = "Bearer " + c.githubToken
	}

	var resp struct {
		Items []struct {
			FullName    string   `json:"full_name"`
			Description string   `json:"description"`
			HTMLURL     string   `json:"html_url"`
			Stars       int      `json:"stargazers_count"`
			Language    string   `json:"language"`
			Topics      []string `json:"topics"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, searchURL, headers, &resp); err != nil {
		return nil, err
	}

	repos := make([]Repo, 0, len(resp.Items))
	for _, item := range resp.Items {
		repos = append(repos, Repo{
			Name:        item.FullName,
			Description: item.Description,
			URL:         item.HTMLURL,
			Stars:       item.Stars,
			Language:    item.Language,
			Topics:      item.Topics,
		})
	}
	return repos, nil
}

type arxivFeed struct {
	Entries []struct {
		ID        string `xml:"id"`
		Title     string `xml:"title"`
		Summary   string `xml:"summary"`
		Published string `xml:"published"`
		Authors   []struct {
			Name string `xml:"name"`
		} `xml:"author"`
	} `xml:"entry"`
}

// SearchPapers searches arXiv. The API speaks Atom XML and needs no key.
func (c *Client) SearchPapers(ctx context.Context, query string) ([]Paper, error) {
	queryURL := "https://export.arxiv.org/api/query?" + url.Values{
		"search_query": {"all:" + query},
		"max_results":  {"10"},
		"sortBy":       {"relevance"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", queryURL, nil)
	if err != nil {
		return nil, err
	}
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	raw, readErr := io.ReadAll(httpResp.Body)
	_ = httpResp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("arxiv http %d: %s", httpResp.StatusCode, truncate(string(raw), 300))
	}

	var feed arxivFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("arxiv feed decode: %w", err)
	}

	papers := make([]Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		authors := make([]string, 0, len(entry.Authors))
		for _, a := range entry.Authors {
			authors = append(authors, strings.TrimSpace(a.Name))
		}
		papers = append(papers, Paper{
			Title:     strings.TrimSpace(entry.Title),
			Authors:   authors,
			Summary:   strings.TrimSpace(entry.Summary),
			URL:       strings.TrimSpace(entry.ID),
			Published: strings.TrimSpace(entry.Published),
		})
	}
	return papers, nil
}

// Compute queries Wolfram Alpha. The app ID is passed explicitly so callers
// decide the credential source.
func (c *Client) Compute(ctx context.Context, query string, appID string) (*ComputeResult, error) {
	if strings.TrimSpace(appID) == "" {
		return nil, errors.New("wolfram alpha app ID not configured")
	}

	queryURL := "https://api.wolframalpha.com/v2/query?" + url.Values{
		"appid":  {appID},
		"input":  {query},
		"format": {"plaintext"},
		"output": {"json"},
	}.Encode()

	var resp struct {
		QueryResult struct {
			Success bool `json:"success"`
			Pods    []struct {
				Title   string `json:"title"`
				Subpods []struct {
					Plaintext string `json:"plaintext"`
				} `json:"subpods"`
			} `json:"pods"`
		} `json:"queryresult"`
	}
	if err := c.getJSON(ctx, queryURL, nil, &resp); err != nil {
		return nil, err
	}

	result := &ComputeResult{
		Query:   query,
		Success: resp.QueryResult.Success,
	}
	for _, pod := range resp.QueryResult.Pods {
		var texts []string
		for _, sub := range pod.Subpods {
			if sub.Plaintext != "" {
				texts = append(texts, sub.Plaintext)
			}
		}
		if len(texts) > 0 {
			result.Pods = append(result.Pods, ComputePod{Title: pod.Title, Subpods: texts})
		}
	}
	return result, nil
}
