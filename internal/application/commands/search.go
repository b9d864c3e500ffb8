package commands

import (
	"context"
	"sort"
	"strings"

	"photonotes/internal/application"
	"photonotes/internal/domain"
)

// SearchResult is a loaded photo matching a search, with a relevance score
type SearchResult struct {
	Record      *domain.ImageRecord
	MatchedText string
	Score       int
}

// SearchCommand searches the loaded photos by path, notes and camera with
// fuzzy matching
type SearchCommand struct {
	gallery *application.Gallery
	Query   string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(gallery *application.Gallery, query string) *SearchCommand {
	return &SearchCommand{
		gallery: gallery,
		Query:   query,
	}
}

// Execute runs the search command and returns scored, sorted results.
// Queries shorter than two characters match nothing.
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if len(query) < 2 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return FuzzySort(c.gallery.Records(), query), nil
}

const (
	scoreContains  = 100
	scorePrefix    = 50
	scoreAdjacent  = 10
	scoreStart     = 15
	scoreWordStart = 10
)

// FuzzyScore rates how well target matches query, case-insensitively.
// A substring match scores 100, plus 50 at the start of target. Otherwise
// every query byte must appear in order; adjacent bytes and bytes that start
// a word earn extra. Zero means no match.
func FuzzyScore(target, query string) int {
	if query == "" {
		return 0
	}
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if i := strings.Index(target, query); i >= 0 {
		if i == 0 {
			return scoreContains + scorePrefix
		}
		return scoreContains
	}
	return subsequenceScore(target, query)
}

func subsequenceScore(target, query string) int {
	score, q, last := 0, 0, -1
	for i := 0; i < len(target) && q < len(query); i++ {
		if target[i] != query[q] {
			continue
		}
		score++
		if last == i-1 {
			score += scoreAdjacent
		}
		switch {
		case i == 0:
			score += scoreStart
		case isSeparator(target[i-1]):
			score += scoreWordStart
		}
		last = i
		q++
	}
	if q < len(query) {
		return 0
	}
	return score
}

// isSeparator reports bytes that split words in paths and notes
func isSeparator(b byte) bool {
	return strings.IndexByte(" .-_/", b) >= 0
}

// FuzzySort scores records against the query and sorts the matches by
// relevance, then by identity
func FuzzySort(records []*domain.ImageRecord, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(records))

	for _, r := range records {
		best := SearchResult{Record: r}
		for _, candidate := range []string{r.Identity, r.Notes(), r.Model(), r.Make(), r.Artist()} {
			if candidate == "" || candidate == domain.Unknown {
				continue
			}
			if s := FuzzyScore(candidate, query); s > best.Score {
				best.Score = s
				best.MatchedText = candidate
			}
		}
		if best.Score > 0 {
			scored = append(scored, best)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Record.Identity < scored[j].Record.Identity
	})

	return scored
}
