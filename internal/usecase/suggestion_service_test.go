package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/drinkslane/backend/internal/domain"
)

// stubSearcher records every title search and replays canned rows.
type stubSearcher struct {
	mu      sync.Mutex
	queries []string
	limits  []int
	rows    []domain.CatalogRow
	err     error
}

func (s *stubSearcher) SearchTitles(ctx context.Context, query string, limit int) ([]domain.CatalogRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	s.limits = append(s.limits, limit)
	return s.rows, s.err
}

func (s *stubSearcher) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func TestSuggestionService_ShortQueryNoIO(t *testing.T) {
	searcher := &stubSearcher{}
	svc := NewSuggestionService(searcher, 0)

	for _, query := range []string{"", "g", "  g  ", "   "} {
		got, err := svc.Suggest(context.Background(), query)
		if err != nil {
			t.Fatalf("Suggest(%q) error: %v", query, err)
		}
		if len(got) != 0 {
			t.Errorf("Suggest(%q) = %v, want empty", query, got)
		}
	}
	if calls := searcher.calls(); len(calls) != 0 {
		t.Errorf("short queries triggered searches: %v", calls)
	}
}

func TestSuggestionService_CategoriesLeadProducts(t *testing.T) {
	searcher := &stubSearcher{rows: []domain.CatalogRow{
		{ID: "41", Title: "Gilbeys Gin 750ml", Category: "Gin"},
		{ID: "42", Title: "Gordons Gin 750ml", Category: "Gin"},
	}}
	svc := NewSuggestionService(searcher, 6)

	got, err := svc.Suggest(context.Background(), "gin")
	if err != nil {
		t.Fatalf("Suggest error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(got))
	}
	if got[0].Type != domain.SuggestionTypeCategory || got[0].Text != "Gin" {
		t.Errorf("first suggestion = %+v, want the Gin category", got[0])
	}
	if got[0].ID != "category-gin" {
		t.Errorf("category suggestion ID = %q, want category-gin", got[0].ID)
	}
	if got[1].Type != domain.SuggestionTypeProduct || got[2].Type != domain.SuggestionTypeProduct {
		t.Error("product suggestions must follow the category matches")
	}

	if limit := searcher.limits[0]; limit != 4 {
		t.Errorf("search limit = %d, want limit minus the category slots", limit)
	}
}

func TestSuggestionService_CategoryMatchesCappedAtTwo(t *testing.T) {
	// "i" after trimming is too short, "in" hits Wine, Gin, and Soft
	// Drinks & Mixers in the taxonomy; only the first two survive.
	searcher := &stubSearcher{}
	svc := NewSuggestionService(searcher, 6)

	got, err := svc.Suggest(context.Background(), "in")
	if err != nil {
		t.Fatalf("Suggest error: %v", err)
	}
	categories := 0
	for _, s := range got {
		if s.Type == domain.SuggestionTypeCategory {
			categories++
		}
	}
	if categories != 2 {
		t.Errorf("got %d category suggestions, want 2", categories)
	}
	if got[0].Text != "Wine" || got[1].Text != "Gin" {
		t.Errorf("category order = %q, %q, want taxonomy order Wine, Gin", got[0].Text, got[1].Text)
	}
}

func TestSuggestionService_TotalCappedAtLimit(t *testing.T) {
	var rows []domain.CatalogRow
	for i := 0; i < 10; i++ {
		rows = append(rows, domain.CatalogRow{ID: "r", Title: "Gin Variant"})
	}
	svc := NewSuggestionService(&stubSearcher{rows: rows}, 6)

	got, err := svc.Suggest(context.Background(), "gin")
	if err != nil {
		t.Fatalf("Suggest error: %v", err)
	}
	if len(got) != 6 {
		t.Errorf("got %d suggestions, want the limit of 6", len(got))
	}
}

func TestSuggestionService_DegradesOnSearchFailure(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("backend down")}
	svc := NewSuggestionService(searcher, 6)

	got, err := svc.Suggest(context.Background(), "whisky")
	if err != nil {
		t.Fatalf("Suggest = %v, want nil (degraded)", err)
	}
	if len(got) != 1 || got[0].Type != domain.SuggestionTypeCategory {
		t.Errorf("got %+v, want the category-only fallback", got)
	}
}

func TestDebouncer_CollapsesKeystrokes(t *testing.T) {
	searcher := &stubSearcher{}
	d := NewDebouncer(NewSuggestionService(searcher, 6), 40*time.Millisecond)

	delivered := make(chan []domain.SearchSuggestion, 3)
	deliver := func(s []domain.SearchSuggestion) { delivered <- s }

	ctx := context.Background()
	d.Query(ctx, "g", deliver)
	time.Sleep(10 * time.Millisecond)
	d.Query(ctx, "gi", deliver)
	time.Sleep(10 * time.Millisecond)
	d.Query(ctx, "gin", deliver)

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("no suggestion list delivered")
	}
	// Give any superseded timers a chance to misfire.
	time.Sleep(80 * time.Millisecond)

	calls := searcher.calls()
	if len(calls) != 1 || calls[0] != "gin" {
		t.Errorf("searches = %v, want exactly one for the final input", calls)
	}
	if len(delivered) != 0 {
		t.Error("superseded inputs must not deliver")
	}
}

func TestDebouncer_CancelDropsPendingFetch(t *testing.T) {
	searcher := &stubSearcher{}
	d := NewDebouncer(NewSuggestionService(searcher, 6), 20*time.Millisecond)

	d.Query(context.Background(), "gin", func([]domain.SearchSuggestion) {
		t.Error("cancelled query must not deliver")
	})
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	if calls := searcher.calls(); len(calls) != 0 {
		t.Errorf("searches after cancel = %v, want none", calls)
	}
}
