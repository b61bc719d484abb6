package entities

import (
	"errors"
	"time"

	"clockedin.io/application/utils"
)

// OfficeCoordinate is the geofence reference point.
type OfficeCoordinate struct {
	Latitude  float64 `bson:"latitude" json:"lat" validate:"latitude"`
	Longitude float64 `bson:"longitude" json:"lng" validate:"longitude"`
}

// AdmissionPolicy is the operator-managed configuration consumed read-only by
// every admission call. Hot-reloadable: the repository re-reads it so changes
// apply to the next call without a restart. CodeSecretEncrypted holds the
// rotating-code secret encrypted at rest; it is never returned to clients.
type AdmissionPolicy struct {
	Office              *OfficeCoordinate `bson:"office" json:"office"`
	RadiusMeters        float64           `bson:"radiusMeters" json:"radiusMeters"`
	WifiAllowList       []string          `bson:"wifiAllowList" json:"wifiAllowList"`
	CodeSecretEncrypted *string           `bson:"codeSecretEncrypted" json:"-"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate enforces the typed-policy invariants once at load time rather than
// on every gate evaluation.
func (model AdmissionPolicy) Validate() error {
	if model.RadiusMeters < 0 {
		return errors.New("geofence radius cannot be negative")
	}
	if model.Office != nil {
		if model.Office.Latitude < -90 || model.Office.Latitude > 90 {
			return errors.New("office latitude out of range")
		}
		if model.Office.Longitude < -180 || model.Office.Longitude > 180 {
			return errors.New("office longitude out of range")
		}
	}
	for _, ssid := range model.WifiAllowList {
		if ssid == "" {
			return errors.New("wifi allow list cannot contain empty identifiers")
		}
	}
	return nil
}

func (model AdmissionPolicy) ParseModel() any {
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
