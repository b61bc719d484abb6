package attendance_usecases

import (
	"context"
	"errors"
	"time"

	"clockedin.io/entities"
)

// ErrPolicyNotConfigured marks an operator-facing configuration problem
// (missing policy document, missing rotating-code secret). Controllers map it
// to a 500 CONFIG_ERROR; it is never a user-recoverable rejection.
var ErrPolicyNotConfigured = errors.New("admission policy is not configured")

// AttendanceStore is the slice of persistence the state machine needs.
// CloseLatestOpen must be atomic: it closes the newest record whose check-out
// is still null only if it is still null at write time, so two concurrent
// check-outs cannot both claim the same record. It also derives totalMinutes
// in the same write, so a closed record can never be left without its total
// by a failure between two updates.
type AttendanceStore interface {
	Insert(ctx context.Context, record entities.AttendanceRecord) (*entities.AttendanceRecord, error)
	CloseLatestOpen(ctx context.Context, userID string, at time.Time, flags []string) (*entities.AttendanceRecord, error)
	CountOpen(ctx context.Context, userID string) (int64, error)
	ListByUser(ctx context.Context, userID string, limit int64) (*[]entities.AttendanceRecord, error)
}

type ProfileStore interface {
	FindByUserID(ctx context.Context, userID string) (*entities.FaceProfile, error)
	AppendPoses(ctx context.Context, userID string, poses []entities.PoseEmbedding) (*entities.FaceProfile, error)
}

// PolicyStore loads the current admission policy with the rotating-code
// secret already decrypted. Implementations re-read on every call (behind a
// short cache) so operator edits apply without a restart.
type PolicyStore interface {
	Load(ctx context.Context) (*entities.AdmissionPolicy, string, error)
}

// ResultCache remembers admission outcomes by idempotency key so an offline
// replay of an already-processed event returns the original result instead of
// double-submitting.
type ResultCache interface {
	Find(key string) *string
	Save(key string, payload string, ttl time.Duration) bool
}

type Service struct {
	Records  AttendanceStore
	Profiles ProfileStore
	Policies PolicyStore
	Results  ResultCache
}

func NewService(records AttendanceStore, profiles ProfileStore, policies PolicyStore, results ResultCache) *Service {
	return &Service{
		Records:  records,
		Profiles: profiles,
		Policies: policies,
		Results:  results,
	}
}
