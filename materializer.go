package diaclass

import "context"

// RepositoryAction describes what the materializer did for one repository.
type RepositoryAction string

// RepositoryAction constants.
const (
	RepositoryCloned  RepositoryAction = "clone"
	RepositoryUpdated RepositoryAction = "pull"
	RepositorySkipped RepositoryAction = "skip"
)

// RepositoryStatus reports the outcome of materializing one repository.
// A non-nil Err means the repository's content may be missing or stale.
type RepositoryStatus struct {
	Name   string
	Dir    string
	Action RepositoryAction
	Err    error
}

// Materializer ensures each repository has an up-to-date local working copy.
type Materializer interface {
	// Materialize clones missing repositories and updates existing ones.
	// A failure for one repository does not stop the others; it is reported
	// in that repository's status.
	Materialize(ctx context.Context, repos []*Repository) []*RepositoryStatus
}
