package attendance_usecases

import (
	"context"
	"testing"

	"clockedin.io/entities"
)

func TestEnrollPoses(t *testing.T) {
	tests := []struct {
		name     string
		existing []entities.PoseEmbedding
		poses    []entities.PoseEmbedding
		wantErr  error
		wantLen  int
	}{
		{
			name:    "first enrollment creates a profile",
			poses:   []entities.PoseEmbedding{{Label: "front", Vector: []float64{0.1, 0.2, 0.3}}},
			wantLen: 1,
		},
		{
			name: "additional poses append to the profile",
			existing: []entities.PoseEmbedding{
				{Label: "front", Vector: []float64{0.1, 0.2, 0.3}},
			},
			poses: []entities.PoseEmbedding{
				{Label: "left", Vector: []float64{0.2, 0.1, 0.3}},
				{Label: "right", Vector: []float64{0.3, 0.2, 0.1}},
			},
			wantLen: 3,
		},
		{
			name:    "empty batch is rejected",
			poses:   []entities.PoseEmbedding{},
			wantErr: ErrEmptyPose,
		},
		{
			name:    "zero-length vector is rejected",
			poses:   []entities.PoseEmbedding{{Label: "front", Vector: []float64{}}},
			wantErr: ErrEmptyPose,
		},
		{
			name: "mixed dimensionality within a batch is rejected",
			poses: []entities.PoseEmbedding{
				{Label: "front", Vector: []float64{0.1, 0.2, 0.3}},
				{Label: "left", Vector: []float64{0.1, 0.2}},
			},
			wantErr: ErrPoseDimensionMismatch,
		},
		{
			name: "dimensionality must match the existing profile",
			existing: []entities.PoseEmbedding{
				{Label: "front", Vector: []float64{0.1, 0.2, 0.3}},
			},
			poses:   []entities.PoseEmbedding{{Label: "left", Vector: []float64{0.1, 0.2}}},
			wantErr: ErrPoseDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := &fakeProfiles{profiles: map[string]*entities.FaceProfile{}}
			if len(tt.existing) > 0 {
				profiles.profiles[testUser] = &entities.FaceProfile{UserID: testUser, Poses: tt.existing}
			}
			service := NewService(&fakeRecords{}, profiles, &fakePolicies{}, &fakeResults{})

			profile, err := service.EnrollPoses(context.Background(), testUser, tt.poses)
			if err != tt.wantErr {
				t.Fatalf("EnrollPoses() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(profile.Poses) != tt.wantLen {
				t.Errorf("profile has %d poses, want %d", len(profile.Poses), tt.wantLen)
			}
			appended := profile.Poses[len(profile.Poses)-len(tt.poses):]
			for _, pose := range appended {
				if pose.CreatedAt.IsZero() {
					t.Errorf("pose %q missing a created timestamp", pose.Label)
				}
			}
		})
	}
}

func TestProfileStatus(t *testing.T) {
	profiles := &fakeProfiles{profiles: map[string]*entities.FaceProfile{
		testUser: {UserID: testUser, Poses: []entities.PoseEmbedding{
			{Label: "front", Vector: []float64{0.1, 0.2}},
			{Label: "left", Vector: []float64{0.2, 0.1}},
		}},
	}}
	service := NewService(&fakeRecords{}, profiles, &fakePolicies{}, &fakeResults{})

	count, err := service.ProfileStatus(context.Background(), testUser)
	if err != nil {
		t.Fatalf("ProfileStatus() error = %v", err)
	}
	if count != 2 {
		t.Errorf("ProfileStatus() = %d, want 2", count)
	}

	count, err = service.ProfileStatus(context.Background(), "someone-else")
	if err != nil {
		t.Fatalf("ProfileStatus() error = %v", err)
	}
	if count != 0 {
		t.Errorf("ProfileStatus() for unenrolled user = %d, want 0", count)
	}
}
