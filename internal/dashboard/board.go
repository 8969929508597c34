package dashboard

import (
	"slices"
	"sync"

	"github.com/rpggio/portfolio/internal/domain/project"
)

type derivationKey struct {
	version uint64
	query   string
	status  StatusFilter
	sortKey SortKey
	sortDir Direction
}

// Board keeps the latest snapshot and view state and recomputes only what an
// input change invalidates. Changing the page reuses the cached filtered and
// sorted collection and its aggregates; changing the query, status filter or
// sort resets the page to 1; a new snapshot re-derives everything.
type Board struct {
	mu       sync.Mutex
	pageSize int
	state    State
	snapshot Snapshot
	version  uint64

	cached      bool
	key         derivationKey
	sorted      []project.Project
	summary     Summary
	derivations int
}

// NewBoard returns a board in the pending state showing DefaultState.
func NewBoard(pageSize int) *Board {
	return &Board{
		pageSize: max(pageSize, 1),
		state:    DefaultState(),
		snapshot: PendingSnapshot(),
	}
}

// SetSnapshot replaces the record snapshot.
func (b *Board) SetSnapshot(snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = snap
	b.version++
}

// State returns the current view state.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// SetState replaces the whole state. Page is reset to 1 when the query,
// status filter or sort differ from the current state.
func (b *Board) SetState(next State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	next = next.normalized()
	cur := b.state.normalized()
	if next.Query != cur.Query || next.Status != cur.Status || next.SortKey != cur.SortKey || next.SortDir != cur.SortDir {
		next.Page = 1
	}
	b.state = next
}

// SetQuery changes the search text.
func (b *Board) SetQuery(q string) {
	b.update(func(s State) State { return s.WithQuery(q) })
}

// SetStatus changes the status filter.
func (b *Board) SetStatus(f StatusFilter) {
	b.update(func(s State) State { return s.WithStatus(f) })
}

// SetSort changes the sort key and direction.
func (b *Board) SetSort(key SortKey, dir Direction) {
	b.update(func(s State) State { return s.WithSort(key, dir) })
}

// SetPage moves to page n.
func (b *Board) SetPage(n int) {
	b.update(func(s State) State { return s.WithPage(n) })
}

func (b *Board) update(fn func(State) State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = fn(b.state).normalized()
}

// View derives the current view. The stored page index is clamped so it
// never points past the last page after the collection shrinks.
func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.state.normalized()
	key := derivationKey{
		version: b.version,
		query:   state.Query,
		status:  state.Status,
		sortKey: state.SortKey,
		sortDir: state.SortDir,
	}
	if !b.cached || b.key != key {
		filtered := Filter(b.snapshot.records(), state.Query, state.Status)
		b.sorted = Sort(filtered, state.SortKey, state.SortDir)
		b.summary = Aggregate(b.sorted)
		b.key = key
		b.cached = true
		b.derivations++
	}

	// Views leave the board, so they get their own chart slices.
	summary := b.summary
	summary.Charts.StatusBreakdown = slices.Clone(b.summary.Charts.StatusBreakdown)
	summary.Charts.TopBudgets = slices.Clone(b.summary.Charts.TopBudgets)

	view := assemble(len(b.snapshot.records()), b.sorted, summary, state, b.pageSize)
	b.state.Page = view.State.Page
	return annotate(view, b.snapshot)
}
