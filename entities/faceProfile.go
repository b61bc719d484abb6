package entities

import (
	"time"

	"clockedin.io/application/utils"
)

// PoseEmbedding is a single enrollment capture (center/left/right etc).
type PoseEmbedding struct {
	Label     string    `bson:"label" json:"label"`
	Vector    []float64 `bson:"vector" json:"vector"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// FaceProfile holds every enrolled pose for one identity. All vectors in a
// profile share one dimensionality; enrollment rejects anything else.
type FaceProfile struct {
	UserID string          `bson:"userID" json:"userID"`
	Poses  []PoseEmbedding `bson:"poses" json:"poses"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Vectors returns the stored pose vectors in enrollment order.
func (model FaceProfile) Vectors() [][]float64 {
	vectors := make([][]float64, len(model.Poses))
	for i, pose := range model.Poses {
		vectors[i] = pose.Vector
	}
	return vectors
}

func (model FaceProfile) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
