package dashboard

import (
	"context"
	"fmt"

	"github.com/rpggio/portfolio/internal/domain/project"
)

// Source supplies the full, unfiltered collection of projects.
type Source interface {
	List(ctx context.Context) ([]project.Project, error)
}

// Mutator creates and deletes projects in the record store.
type Mutator interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}

// Getter is implemented by stores that can fetch a single project.
type Getter interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// Store is a record store supporting list, create and delete.
type Store interface {
	Source
	Mutator
}

// SourceStatus is the state of the most recent fetch.
type SourceStatus string

const (
	SourcePending SourceStatus = "pending"
	SourceError   SourceStatus = "error"
	SourceReady   SourceStatus = "ready"
)

// Snapshot is an immutable view of the record source at one instant.
type Snapshot struct {
	Status  SourceStatus
	Records []project.Project
	Err     error
}

// PendingSnapshot is the snapshot before any data arrived.
func PendingSnapshot() Snapshot {
	return Snapshot{Status: SourcePending}
}

// ReadySnapshot wraps a fetched collection.
func ReadySnapshot(records []project.Project) Snapshot {
	return Snapshot{Status: SourceReady, Records: records}
}

// FailedSnapshot records a fetch failure.
func FailedSnapshot(err error) Snapshot {
	return Snapshot{Status: SourceError, Err: err}
}

// records is the collection the pipeline runs on; only ready snapshots
// contribute records.
func (s Snapshot) records() []project.Project {
	if s.Status != SourceReady {
		return nil
	}
	return s.Records
}

// Load fetches a fresh snapshot from src. Failures are captured in the
// snapshot and wrapped with ErrSourceUnavailable.
func Load(ctx context.Context, src Source) Snapshot {
	records, err := src.List(ctx)
	if err != nil {
		return FailedSnapshot(fmt.Errorf("%w: %w", ErrSourceUnavailable, err))
	}
	return ReadySnapshot(records)
}
