package dto

import (
	"fmt"

	"clockedin.io/application/constants"
)

// LocationDTO is the device coordinate attached to a submission.
type LocationDTO struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// NetworkDTO is the WiFi network the device reports being connected to.
type NetworkDTO struct {
	SSID  string `json:"ssid"`
	BSSID string `json:"bssid"`
}

// VerifyAttendanceDTO is the admission request payload. Exactly one of
// FaceEmbedding or Code must carry the proof.
type VerifyAttendanceDTO struct {
	UserID         string      `json:"user_id" validate:"required"`
	FaceEmbedding  []float64   `json:"face_embedding,omitempty"`
	Code           *string     `json:"code,omitempty"`
	Location       LocationDTO `json:"location"`
	Network        NetworkDTO  `json:"network"`
	Type           string      `json:"type" validate:"required,oneof=check_in check_out"`
	IdempotencyKey *string     `json:"idempotency_key,omitempty"`
}

// Validate covers the cross-field rules struct tags cannot express.
func (dto *VerifyAttendanceDTO) Validate() error {
	if dto == nil {
		return fmt.Errorf("request cannot be nil")
	}
	hasEmbedding := len(dto.FaceEmbedding) > 0
	hasCode := dto.Code != nil && *dto.Code != ""
	if hasEmbedding && hasCode {
		return fmt.Errorf("face_embedding and code are mutually exclusive")
	}
	if dto.Type != constants.CheckIn && dto.Type != constants.CheckOut {
		return fmt.Errorf("type must be %s or %s", constants.CheckIn, constants.CheckOut)
	}
	return nil
}
