package assetdb

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultDebounce is the quiet period a query must survive before it is
// executed against the database.
const DefaultDebounce = 300 * time.Millisecond

// SearchResponse is what a Searcher delivers for each executed query. A
// database failure is carried in Err rather than dropping the response, so
// the consumer can surface it next to the (empty) result list.
type SearchResponse struct {
	Params  SearchParams   `json:"params"`
	Results []SearchResult `json:"results"`
	Err     string         `json:"error,omitempty"`
}

// Searcher debounces keystroke-rate queries against the asset database.
// Each Search call restarts the quiet-period timer; only the query that
// survives the quiet period actually hits the database, and only the
// latest query's response is delivered.
type Searcher struct {
	db       *DB
	debounce time.Duration
	deliver  func(SearchResponse)

	seq atomic.Uint64

	mu      sync.Mutex
	pending *time.Timer
}

// SearcherOption adjusts a Searcher.
type SearcherOption func(*Searcher)

// WithDebounce overrides the quiet period. Zero disables debouncing, which
// tests use to make delivery synchronous-ish.
func WithDebounce(d time.Duration) SearcherOption {
	return func(s *Searcher) { s.debounce = d }
}

// NewSearcher creates a searcher that delivers responses through fn.
// Delivery happens on a timer goroutine; fn must be safe to call there.
func NewSearcher(db *DB, fn func(SearchResponse), opts ...SearcherOption) *Searcher {
	s := &Searcher{db: db, debounce: DefaultDebounce, deliver: fn}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search schedules params for execution after the quiet period. A newer
// Search call supersedes any still-pending one.
func (s *Searcher) Search(params SearchParams) {
	id := s.seq.Add(1)

	s.mu.Lock()
	if s.pending != nil {
		s.pending.Stop()
	}
	s.pending = time.AfterFunc(s.debounce, func() {
		s.run(id, params)
	})
	s.mu.Unlock()
}

// Flush cancels any pending timer and executes the given params
// immediately, still subject to the stale-response guard.
func (s *Searcher) Flush(params SearchParams) {
	id := s.seq.Add(1)
	s.mu.Lock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.mu.Unlock()
	s.run(id, params)
}

func (s *Searcher) run(id uint64, params SearchParams) {
	results, err := s.db.SearchAssets(params)

	// A query issued after this one makes this response stale. The check
	// sits after the database call: slow queries lose to fresh input.
	if id != s.seq.Load() {
		return
	}

	resp := SearchResponse{Params: params, Results: results}
	if err != nil {
		resp.Err = err.Error()
		resp.Results = []SearchResult{}
	}
	s.deliver(resp)
}
