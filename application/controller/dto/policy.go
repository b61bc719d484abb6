package dto

// OfficeDTO is the geofence reference point.
type OfficeDTO struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// UpdatePolicyDTO replaces the admission policy. CodeSecret, when present, is
// encrypted before persistence and never echoed back.
type UpdatePolicyDTO struct {
	Office        *OfficeDTO `json:"office"`
	RadiusMeters  float64    `json:"radius_meters" validate:"gte=0"`
	WifiAllowList []string   `json:"wifi_allow_list"`
	CodeSecret    *string    `json:"code_secret,omitempty"`
}
