package dashboard

import "github.com/rpggio/portfolio/internal/domain/project"

// View is the fully derived dashboard for one state and snapshot.
type View struct {
	State   State   `json:"state"`
	Total   int     `json:"total"`
	Matched int     `json:"matched"`
	Page    Page    `json:"page"`
	Summary Summary `json:"summary"`
	Loading bool    `json:"loading"`
	Error   string  `json:"error,omitempty"`
}

// Compute runs filter, sort, aggregation and pagination over records.
// The returned state carries the clamped page index.
func Compute(records []project.Project, state State, pageSize int) View {
	state = state.normalized()
	filtered := Filter(records, state.Query, state.Status)
	sorted := Sort(filtered, state.SortKey, state.SortDir)
	return assemble(len(records), sorted, Aggregate(sorted), state, pageSize)
}

// ComputeSnapshot computes the view for a snapshot. Pending and failed
// snapshots yield an empty but well-formed view flagged as loading or failed.
func ComputeSnapshot(snap Snapshot, state State, pageSize int) View {
	return annotate(Compute(snap.records(), state, pageSize), snap)
}

func assemble(total int, sorted []project.Project, summary Summary, state State, pageSize int) View {
	page := Paginate(sorted, state.Page, pageSize)
	state.Page = page.Index
	return View{
		State:   state,
		Total:   total,
		Matched: len(sorted),
		Page:    page,
		Summary: summary,
	}
}

func annotate(view View, snap Snapshot) View {
	view.Loading = snap.Status == SourcePending
	if snap.Status == SourceError && snap.Err != nil {
		view.Error = snap.Err.Error()
	}
	return view
}
