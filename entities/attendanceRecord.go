package entities

import (
	"time"

	"clockedin.io/application/utils"
)

// LocationSnapshot is the device coordinate captured at submission time.
type LocationSnapshot struct {
	Latitude  float64 `bson:"latitude" json:"lat"`
	Longitude float64 `bson:"longitude" json:"lng"`
}

// NetworkSnapshot is the WiFi network the device was connected to at
// submission time. BSSID is kept for audit only and never gates admission.
type NetworkSnapshot struct {
	SSID  string `bson:"ssid" json:"ssid"`
	BSSID string `bson:"bssid" json:"bssid"`
}

// AttendanceRecord is one work session. Created by check-in, closed exactly
// once by the matching check-out, never deleted.
type AttendanceRecord struct {
	UserID       string           `bson:"userID" json:"userID"`
	CheckInAt    time.Time        `bson:"checkInAt" json:"checkInAt"`
	CheckOutAt   *time.Time       `bson:"checkOutAt" json:"checkOutAt"`
	TotalMinutes *int             `bson:"totalMinutes" json:"totalMinutes"`
	Status       string           `bson:"status" json:"status"`
	Location     LocationSnapshot `bson:"location" json:"location"`
	Network      NetworkSnapshot  `bson:"network" json:"network"`
	ProofMethod  string           `bson:"proofMethod" json:"proofMethod"`
	Flags        []string         `bson:"flags" json:"flags,omitempty"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

const (
	AttendanceStatusOpen   = "open"
	AttendanceStatusClosed = "closed"
)

func (model AttendanceRecord) ParseModel() any {
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
