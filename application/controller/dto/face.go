package dto

import "fmt"

// PoseDTO is one enrollment capture.
type PoseDTO struct {
	Label     string    `json:"label"`
	Embedding []float64 `json:"embedding" validate:"required,min=1"`
}

// EnrollFaceDTO enrolls one or more poses for the authenticated identity.
type EnrollFaceDTO struct {
	Poses []PoseDTO `json:"poses" validate:"required,min=1,dive"`
}

// Validate enforces one dimensionality across every submitted pose so a bad
// batch cannot poison the profile.
func (dto *EnrollFaceDTO) Validate() error {
	if dto == nil {
		return fmt.Errorf("request cannot be nil")
	}
	if len(dto.Poses) == 0 {
		return fmt.Errorf("at least one pose is required")
	}
	dimension := len(dto.Poses[0].Embedding)
	if dimension == 0 {
		return fmt.Errorf("pose embedding cannot be empty")
	}
	for i, pose := range dto.Poses {
		if len(pose.Embedding) != dimension {
			return fmt.Errorf("pose %d has dimensionality %d, expected %d", i, len(pose.Embedding), dimension)
		}
	}
	return nil
}

// FaceStatusResponse reports enrollment progress to the capture flow.
type FaceStatusResponse struct {
	IsRegistered bool `json:"is_registered"`
	PoseCount    int  `json:"pose_count"`
}
