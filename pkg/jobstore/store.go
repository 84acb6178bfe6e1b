// Package jobstore persists tuning jobs for the API server.
//
// A [Job] groups the nets submitted in one request together with their
// results once tuning has finished. Jobs expire after a TTL. Three backends
// implement [Store]:
//   - MemoryStore: in-process map for development and tests
//   - FileStore: JSON files for the CLI
//   - MongoStore: MongoDB collection for multi-instance deployments
//
// # Usage
//
//	store, err := jobstore.NewMongoStore(ctx, jobstore.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
//	job := jobstore.New(reqs, jobstore.DefaultTTL)
//	store.Put(ctx, job)
//
//	job, err = store.Get(ctx, id)
//	if errors.Is(err, jobstore.ErrNotFound) {
//	    // unknown or expired
//	}
package jobstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/meander/pkg/tuning"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a job does not exist or has expired.
	ErrNotFound = errors.New("job not found")
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// DefaultTTL is how long finished jobs are kept.
const DefaultTTL = 24 * time.Hour

// Job is one tuning submission.
type Job struct {
	ID        string           `json:"id"`
	Status    Status           `json:"status"`
	Error     string           `json:"error,omitempty"`
	Requests  []tuning.Request `json:"requests"`
	Results   []*tuning.Result `json:"results,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// New creates a pending job with a fresh ID.
func New(reqs []tuning.Request, ttl time.Duration) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Requests:  reqs,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the job has outlived its TTL.
func (j *Job) IsExpired() bool {
	return time.Now().After(j.ExpiresAt)
}

// Finish records the outcome of a run.
func (j *Job) Finish(results []*tuning.Result, err error) {
	j.UpdatedAt = time.Now().UTC()
	if err != nil {
		j.Status = StatusFailed
		j.Error = err.Error()
		return
	}
	j.Status = StatusDone
	j.Results = results
}

// Result returns the result for a net, or nil.
func (j *Job) Result(net string) *tuning.Result {
	for _, r := range j.Results {
		if r.Request.Net == net {
			return r
		}
	}
	return nil
}

// ValidID reports whether id is a job ID issued by [New].
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Store is the interface for job storage backends.
type Store interface {
	// Put creates or replaces a job.
	Put(ctx context.Context, job *Job) error

	// Get retrieves a job by ID. Unknown and expired jobs return ErrNotFound.
	Get(ctx context.Context, id string) (*Job, error)

	// Delete removes a job. Missing jobs are not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired jobs.
	Cleanup(ctx context.Context) error

	// Close releases the backend.
	Close() error
}
