package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/drinkslane/backend/internal/domain"
)

const (
	// DefaultSuggestionLimit caps a composed suggestion list.
	DefaultSuggestionLimit = 6

	// categorySuggestionCap reserves the leading slots for category
	// matches.
	categorySuggestionCap = 2

	// minQueryLength is the shortest trimmed query that triggers a fetch.
	minQueryLength = 2

	// DefaultDebounceWindow is the typing pause required before a
	// suggestion fetch is issued.
	DefaultDebounceWindow = 300 * time.Millisecond
)

// SuggestionService composes ranked search suggestions: up to two
// category matches in taxonomy order, followed by product-title matches
// in source order, capped at the limit.
type SuggestionService struct {
	searcher domain.TitleSearcher
	limit    int
}

// NewSuggestionService creates a composer over a title searcher. A
// non-positive limit falls back to the default.
func NewSuggestionService(searcher domain.TitleSearcher, limit int) *SuggestionService {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	return &SuggestionService{
		searcher: searcher,
		limit:    limit,
	}
}

// Suggest returns the composed list for a query. Queries shorter than
// two characters after trimming yield an empty list with no I/O. A
// failing title search degrades to category-only suggestions.
func (s *SuggestionService) Suggest(ctx context.Context, query string) ([]domain.SearchSuggestion, error) {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < minQueryLength {
		return []domain.SearchSuggestion{}, nil
	}

	suggestions := s.categoryMatches(trimmed)

	rows, err := s.searcher.SearchTitles(ctx, trimmed, s.limit-categorySuggestionCap)
	if err != nil {
		log.Printf("[SUGGEST] title search failed for %q: %v", trimmed, err)
		return suggestions, nil
	}

	for _, row := range rows {
		if len(suggestions) >= s.limit {
			break
		}
		suggestions = append(suggestions, domain.SearchSuggestion{
			ID:       row.ID,
			Text:     row.Title,
			Type:     domain.SuggestionTypeProduct,
			Category: row.Category,
		})
	}
	return suggestions, nil
}

// categoryMatches filters the fixed taxonomy for case-insensitive
// substring matches, in taxonomy order, capped at two.
func (s *SuggestionService) categoryMatches(query string) []domain.SearchSuggestion {
	lower := strings.ToLower(query)
	matches := make([]domain.SearchSuggestion, 0, categorySuggestionCap)
	for _, category := range canonicalCategories {
		if category == CategoryAll {
			continue
		}
		if len(matches) == categorySuggestionCap {
			break
		}
		if strings.Contains(strings.ToLower(category), lower) {
			matches = append(matches, domain.SearchSuggestion{
				ID:       "category-" + NormalizeText(category),
				Text:     category,
				Type:     domain.SuggestionTypeCategory,
				Category: category,
			})
		}
	}
	return matches
}

// Debouncer serializes keystrokes into at most one suggestion fetch per
// pause. Every call restarts the timer and bumps a generation counter;
// a completed fetch is delivered only while its generation is still
// current, so a stale in-flight result is discarded on arrival.
type Debouncer struct {
	service *SuggestionService
	window  time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
}

// NewDebouncer creates a debouncer over the composer. A non-positive
// window falls back to the 300ms default.
func NewDebouncer(service *SuggestionService, window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{
		service: service,
		window:  window,
	}
}

// Query schedules a fetch for the input once typing pauses. deliver runs
// on the timer goroutine with the composed list; it is never called for
// superseded inputs.
func (d *Debouncer) Query(ctx context.Context, input string, deliver func([]domain.SearchSuggestion)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	gen := d.generation

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		if !d.current(gen) {
			return
		}
		suggestions, err := d.service.Suggest(ctx, input)
		if err != nil {
			return
		}
		if d.current(gen) {
			deliver(suggestions)
		}
	})
}

// Cancel drops any pending fetch and invalidates in-flight results.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation == gen
}
