package attendance_usecases

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"clockedin.io/application/constants"
	"clockedin.io/entities"
	"clockedin.io/infrastructure/biometric"
	biometric_types "clockedin.io/infrastructure/biometric/types"
	"clockedin.io/infrastructure/geofence"
	"clockedin.io/infrastructure/logger"
	"clockedin.io/infrastructure/totp"
	"clockedin.io/infrastructure/wifi"
)

const (
	flagLocationOutOfRange = "location_out_of_range"
	flagWifiNotAllowed     = "wifi_not_allowed"

	idempotencyTTL = 24 * time.Hour
)

// VerifyParams is one admission request after authentication. Exactly one of
// Embedding or Code carries the proof.
type VerifyParams struct {
	UserID         string
	Kind           string
	Embedding      []float64
	Code           *string
	Location       entities.LocationSnapshot
	Network        entities.NetworkSnapshot
	IdempotencyKey *string
}

// Outcome is a tagged admission result. Tag is empty on success; it is the
// only field clients are expected to branch on.
type Outcome struct {
	Success        bool                         `json:"success"`
	Tag            constants.OutcomeTag         `json:"tag,omitempty"`
	Flags          []string                     `json:"flags,omitempty"`
	DistanceMeters *float64                     `json:"distance_meters,omitempty"`
	TotalMinutes   *int                         `json:"total_minutes,omitempty"`
	Record         *entities.AttendanceRecord   `json:"record,omitempty"`
	Match          *biometric_types.MatchResult `json:"match,omitempty"`
	Replayed       bool                         `json:"replayed,omitempty"`

	// DuplicateOpenSession marks a check-in that landed while an earlier
	// session was still open. The check-in is honored anyway.
	DuplicateOpenSession bool `json:"duplicate_open_session,omitempty"`
}

// Verify runs the full admission pipeline: replay lookup, geofence and WiFi
// gates, proof validation, then the check-in/check-out state machine. It is
// stateless per call and safe for concurrent use. Policy rejections come back
// as tagged outcomes; only storage and configuration problems return errors.
func (service *Service) Verify(ctx context.Context, params VerifyParams) (*Outcome, error) {
	if params.IdempotencyKey != nil && *params.IdempotencyKey != "" {
		if cached := service.Results.Find(idempotencyCacheKey(*params.IdempotencyKey)); cached != nil {
			var outcome Outcome
			if err := json.Unmarshal([]byte(*cached), &outcome); err == nil {
				outcome.Replayed = true
				return &outcome, nil
			}
		}
	}

	policy, codeSecret, err := service.Policies.Load(ctx)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, ErrPolicyNotConfigured
	}

	outcome, err := service.admit(ctx, params, policy, codeSecret)
	if err != nil {
		return nil, err
	}

	if params.IdempotencyKey != nil && *params.IdempotencyKey != "" {
		payload, marshalErr := json.Marshal(outcome)
		if marshalErr == nil {
			service.Results.Save(idempotencyCacheKey(*params.IdempotencyKey), string(payload), idempotencyTTL)
		}
	}
	return outcome, nil
}

func (service *Service) admit(ctx context.Context, params VerifyParams, policy *entities.AdmissionPolicy, codeSecret string) (*Outcome, error) {
	var office *geofence.Coordinate
	if policy.Office != nil {
		office = &geofence.Coordinate{Latitude: policy.Office.Latitude, Longitude: policy.Office.Longitude}
	}
	radius := policy.RadiusMeters
	if radius == 0 {
		radius = constants.DefaultGeofenceRadiusMeters
	}

	geoResult := geofence.Evaluate(geofence.Coordinate{
		Latitude:  params.Location.Latitude,
		Longitude: params.Location.Longitude,
	}, office, radius)
	wifiResult := wifi.Evaluate(params.Network.SSID, policy.WifiAllowList)

	// Check-in enforces presence hard; check-out only flags, because someone
	// who already left the permitted area must still be able to stop their
	// clock.
	flags := []string{}
	if !geoResult.Pass {
		if params.Kind == constants.CheckIn {
			return &Outcome{
				Tag:            constants.LocationInvalid,
				DistanceMeters: &geoResult.DistanceMeters,
			}, nil
		}
		flags = append(flags, flagLocationOutOfRange)
	}
	if !wifiResult.Pass {
		if params.Kind == constants.CheckIn {
			return &Outcome{Tag: constants.WifiInvalid}, nil
		}
		flags = append(flags, flagWifiNotAllowed)
	}

	proofMethod, rejection, err := service.validateProof(ctx, params, codeSecret)
	if err != nil {
		return nil, err
	}
	if rejection != nil {
		return rejection, nil
	}

	switch params.Kind {
	case constants.CheckIn:
		return service.checkIn(ctx, params, proofMethod, geoResult)
	default:
		return service.checkOut(ctx, params, flags, geoResult)
	}
}

func (service *Service) validateProof(ctx context.Context, params VerifyParams, codeSecret string) (string, *Outcome, error) {
	if len(params.Embedding) > 0 {
		profile, err := service.Profiles.FindByUserID(ctx, params.UserID)
		if err != nil {
			return "", nil, err
		}
		if profile == nil || len(profile.Poses) == 0 {
			return "", &Outcome{Tag: constants.NoFaceProfile}, nil
		}
		match, err := biometric.MatchEmbedding(params.Embedding, profile.Vectors())
		if err == biometric.ErrDimensionMismatch {
			return "", &Outcome{Tag: constants.EmbeddingMismatch}, nil
		}
		if err != nil {
			return "", nil, err
		}
		if !match.Match {
			return "", &Outcome{Tag: constants.FaceMismatch, Match: match}, nil
		}
		return constants.ProofEmbedding, nil, nil
	}

	if params.Code != nil && *params.Code != "" {
		if codeSecret == "" {
			return "", nil, ErrPolicyNotConfigured
		}
		if !totp.TOTPService.ValidateTOTP(*params.Code, codeSecret) {
			return "", &Outcome{Tag: constants.InvalidCode}, nil
		}
		return constants.ProofCode, nil, nil
	}

	return "", &Outcome{Tag: constants.MissingProof}, nil
}

func (service *Service) checkIn(ctx context.Context, params VerifyParams, proofMethod string, geoResult geofence.Result) (*Outcome, error) {
	openCount, err := service.Records.CountOpen(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if openCount > 0 {
		// Intentionally not rejected: field devices resubmit after losing an
		// ack and a hard block here would strand them. The open session is
		// closed by whichever check-out lands first.
		logger.Warning("check-in while a session is still open", logger.LoggerOptions{
			Key:  "userID",
			Data: params.UserID,
		}, logger.LoggerOptions{
			Key:  "openSessions",
			Data: openCount,
		})
	}

	record, err := service.Records.Insert(ctx, entities.AttendanceRecord{
		UserID:      params.UserID,
		CheckInAt:   time.Now(),
		Status:      entities.AttendanceStatusOpen,
		Location:    params.Location,
		Network:     params.Network,
		ProofMethod: proofMethod,
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Success: true, Record: record, DuplicateOpenSession: openCount > 0}
	if geoResult.Evaluated {
		outcome.DistanceMeters = &geoResult.DistanceMeters
	}
	return outcome, nil
}

func (service *Service) checkOut(ctx context.Context, params VerifyParams, flags []string, geoResult geofence.Result) (*Outcome, error) {
	record, err := service.Records.CloseLatestOpen(ctx, params.UserID, time.Now(), flags)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &Outcome{Tag: constants.NoActiveSession}, nil
	}

	outcome := &Outcome{
		Success:      true,
		Record:       record,
		TotalMinutes: record.TotalMinutes,
		Flags:        record.Flags,
	}
	if geoResult.Evaluated {
		outcome.DistanceMeters = &geoResult.DistanceMeters
	}
	return outcome, nil
}

// ElapsedMinutes rounds the worked span to whole minutes and never reports a
// negative value even if clocks disagree.
func ElapsedMinutes(checkIn, checkOut time.Time) int {
	seconds := checkOut.Sub(checkIn).Seconds()
	minutes := int(math.Round(seconds / 60))
	if minutes < 0 {
		return 0
	}
	return minutes
}

func idempotencyCacheKey(key string) string {
	return "attendance-idem-" + key
}
