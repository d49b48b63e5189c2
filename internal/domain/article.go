package domain

import "strings"

// Article is a news article as returned by the upstream search API. Only the
// fields the feed renders are kept.
type Article struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// ArticleFilter holds the keyword rules applied to a raw article feed.
type ArticleFilter struct {
	Allowed []string
	Banned  []string
	Limit   int
}

// WildfireFilter is the fixed rule set for the wildfire news feed.
func WildfireFilter() ArticleFilter {
	return ArticleFilter{
		Allowed: []string{"forest fire", "wildfire", "bushfire"},
		Banned:  []string{"diet", "fitness", "movie", "celebrity", "fashion", "weight", "entertainment"},
		Limit:   6,
	}
}

// Apply returns the articles that mention at least one allowed keyword and no
// banned keyword in their title or description, de-duplicated by normalized
// title (first occurrence wins, feed order preserved) and capped at Limit.
func (f ArticleFilter) Apply(articles []Article) []Article {
	seen := make(map[string]struct{})
	filtered := make([]Article, 0, f.Limit)

	for _, a := range articles {
		title := strings.ToLower(strings.TrimSpace(a.Title))
		description := strings.ToLower(strings.TrimSpace(a.Description))

		if _, dup := seen[title]; dup {
			continue
		}
		if !containsAny(title, description, f.Allowed) {
			continue
		}
		if containsAny(title, description, f.Banned) {
			continue
		}

		seen[title] = struct{}{}
		filtered = append(filtered, a)
		if f.Limit > 0 && len(filtered) >= f.Limit {
			break
		}
	}
	return filtered
}

func containsAny(title, description string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(title, kw) || strings.Contains(description, kw) {
			return true
		}
	}
	return false
}
