package attendance_usecases

import (
	"context"
	"errors"
	"time"

	"clockedin.io/entities"
)

var ErrPoseDimensionMismatch = errors.New("pose embedding dimensionality does not match the enrolled profile")
var ErrEmptyPose = errors.New("pose embedding cannot be empty")

// EnrollPoses appends capture poses to the caller's face profile. Append
// mode on purpose: one identity accumulates multiple angles, which is what
// buys the looser multi-pose matching bound. Every vector must agree with the
// profile's existing dimensionality.
func (service *Service) EnrollPoses(ctx context.Context, userID string, poses []entities.PoseEmbedding) (*entities.FaceProfile, error) {
	if len(poses) == 0 {
		return nil, ErrEmptyPose
	}
	dimension := len(poses[0].Vector)
	if dimension == 0 {
		return nil, ErrEmptyPose
	}
	for _, pose := range poses {
		if len(pose.Vector) != dimension {
			return nil, ErrPoseDimensionMismatch
		}
	}

	existing, err := service.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil && len(existing.Poses) > 0 && len(existing.Poses[0].Vector) != dimension {
		return nil, ErrPoseDimensionMismatch
	}

	now := time.Now()
	for i := range poses {
		if poses[i].CreatedAt.IsZero() {
			poses[i].CreatedAt = now
		}
	}
	return service.Profiles.AppendPoses(ctx, userID, poses)
}

// ProfileStatus reports how many poses an identity has enrolled.
func (service *Service) ProfileStatus(ctx context.Context, userID string) (int, error) {
	profile, err := service.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, nil
	}
	return len(profile.Poses), nil
}

// History lists the caller's attendance records, newest first.
func (service *Service) History(ctx context.Context, userID string, limit int64) (*[]entities.AttendanceRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	records, err := service.Records.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	// Records closed before the store derived totals may carry none; fill
	// the gap on the way out.
	for i := range *records {
		record := &(*records)[i]
		if record.CheckOutAt != nil && record.TotalMinutes == nil {
			minutes := ElapsedMinutes(record.CheckInAt, *record.CheckOutAt)
			record.TotalMinutes = &minutes
		}
	}
	return records, nil
}
