package biometric

import (
	"errors"
	"math"

	"clockedin.io/infrastructure/biometric/types"
)

// The stored vectors are geometric/landmark-derived rather than deep identity
// embeddings, so Euclidean distance alone is an unreliable discriminator.
// Admission therefore requires BOTH the distance and the cosine similarity of
// the closest pose to pass.
const (
	SimilarityThreshold     = 0.92
	SinglePoseDistanceBound = 0.20
	MultiPoseDistanceBound  = 0.25
)

var ErrDimensionMismatch = errors.New("probe embedding dimensionality does not match the enrolled profile")

// DistanceThreshold returns the Euclidean acceptance bound for a profile with
// poseCount enrolled poses. Multi-pose enrollment is held to a slightly looser
// bound because pose variety already reduces one source of false rejection.
func DistanceThreshold(poseCount int) float64 {
	if poseCount > 1 {
		return MultiPoseDistanceBound
	}
	return SinglePoseDistanceBound
}

// MatchEmbedding compares probe against every stored pose, selects the pose
// with minimum Euclidean distance and accepts only when that distance and its
// cosine similarity both pass. Any dimensionality disagreement fails closed.
func MatchEmbedding(probe []float64, poses [][]float64) (*types.MatchResult, error) {
	if len(probe) == 0 || len(poses) == 0 {
		return nil, ErrDimensionMismatch
	}
	for _, pose := range poses {
		if len(pose) != len(probe) {
			return nil, ErrDimensionMismatch
		}
	}

	bestIndex := 0
	bestDistance := math.MaxFloat64
	for i, pose := range poses {
		distance := euclideanDistance(probe, pose)
		if distance < bestDistance {
			bestDistance = distance
			bestIndex = i
		}
	}

	similarity := cosineSimilarity(probe, poses[bestIndex])
	threshold := DistanceThreshold(len(poses))

	return &types.MatchResult{
		Match:             bestDistance <= threshold && similarity >= SimilarityThreshold,
		Distance:          bestDistance,
		Similarity:        similarity,
		PoseIndex:         bestIndex,
		DistanceThreshold: threshold,
	}, nil
}

func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// cosineSimilarity calculates cosine similarity between two embeddings
func cosineSimilarity(a, b []float64) float64 {
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	similarity := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))

	// Clamp to valid range to handle floating point precision issues
	if similarity > 1.0 {
		similarity = 1.0
	}
	if similarity < -1.0 {
		similarity = -1.0
	}
	return similarity
}
