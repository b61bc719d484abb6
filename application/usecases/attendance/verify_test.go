package attendance_usecases

import (
	"context"
	"sort"
	"testing"
	"time"

	"clockedin.io/application/constants"
	"clockedin.io/entities"
	"clockedin.io/infrastructure/totp"
)

type fakeRecords struct {
	records []entities.AttendanceRecord
	nextID  int
}

func (f *fakeRecords) Insert(_ context.Context, record entities.AttendanceRecord) (*entities.AttendanceRecord, error) {
	f.nextID++
	record.ID = time.Now().Format("20060102") + string(rune('A'+f.nextID))
	f.records = append(f.records, record)
	saved := record
	return &saved, nil
}

func (f *fakeRecords) CloseLatestOpen(_ context.Context, userID string, at time.Time, flags []string) (*entities.AttendanceRecord, error) {
	open := []*entities.AttendanceRecord{}
	for i := range f.records {
		if f.records[i].UserID == userID && f.records[i].CheckOutAt == nil {
			open = append(open, &f.records[i])
		}
	}
	if len(open) == 0 {
		return nil, nil
	}
	sort.Slice(open, func(i, j int) bool { return open[i].CheckInAt.After(open[j].CheckInAt) })
	target := open[0]
	checkOut := at
	target.CheckOutAt = &checkOut
	target.Status = entities.AttendanceStatusClosed
	target.Flags = flags
	minutes := ElapsedMinutes(target.CheckInAt, at)
	target.TotalMinutes = &minutes
	copied := *target
	return &copied, nil
}

func (f *fakeRecords) CountOpen(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, record := range f.records {
		if record.UserID == userID && record.CheckOutAt == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecords) ListByUser(_ context.Context, userID string, limit int64) (*[]entities.AttendanceRecord, error) {
	results := []entities.AttendanceRecord{}
	for _, record := range f.records {
		if record.UserID == userID {
			results = append(results, record)
		}
	}
	return &results, nil
}

type fakeProfiles struct {
	profiles map[string]*entities.FaceProfile
}

func (f *fakeProfiles) FindByUserID(_ context.Context, userID string) (*entities.FaceProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeProfiles) AppendPoses(_ context.Context, userID string, poses []entities.PoseEmbedding) (*entities.FaceProfile, error) {
	profile := f.profiles[userID]
	if profile == nil {
		profile = &entities.FaceProfile{UserID: userID}
		if f.profiles == nil {
			f.profiles = map[string]*entities.FaceProfile{}
		}
		f.profiles[userID] = profile
	}
	profile.Poses = append(profile.Poses, poses...)
	return profile, nil
}

type fakePolicies struct {
	policy *entities.AdmissionPolicy
	secret string
}

func (f *fakePolicies) Load(_ context.Context) (*entities.AdmissionPolicy, string, error) {
	return f.policy, f.secret, nil
}

type fakeResults struct {
	entries map[string]string
}

func (f *fakeResults) Find(key string) *string {
	if value, ok := f.entries[key]; ok {
		return &value
	}
	return nil
}

func (f *fakeResults) Save(key string, payload string, _ time.Duration) bool {
	if f.entries == nil {
		f.entries = map[string]string{}
	}
	f.entries[key] = payload
	return true
}

const testUser = "01HV5K4J8QZX3W2N9C7B6M5T4R"

func enrolledProfile(vectors ...[]float64) *entities.FaceProfile {
	profile := &entities.FaceProfile{UserID: testUser}
	for i, vector := range vectors {
		profile.Poses = append(profile.Poses, entities.PoseEmbedding{Label: string(rune('a' + i)), Vector: vector})
	}
	return profile
}

func newTestService(policy *entities.AdmissionPolicy, secret string, profile *entities.FaceProfile) (*Service, *fakeRecords) {
	records := &fakeRecords{}
	profiles := &fakeProfiles{profiles: map[string]*entities.FaceProfile{}}
	if profile != nil {
		profiles.profiles[profile.UserID] = profile
	}
	service := NewService(records, profiles, &fakePolicies{policy: policy, secret: secret}, &fakeResults{})
	return service, records
}

func matchingParams(kind string) VerifyParams {
	return VerifyParams{
		UserID:    testUser,
		Kind:      kind,
		Embedding: []float64{0.1, 0.2, 0.3, 0.4},
		Location:  entities.LocationSnapshot{Latitude: 25.2048, Longitude: 55.2708},
		Network:   entities.NetworkSnapshot{SSID: "HQ-Staff", BSSID: "aa:bb:cc:dd:ee:ff"},
	}
}

func officePolicy() *entities.AdmissionPolicy {
	return &entities.AdmissionPolicy{
		Office:        &entities.OfficeCoordinate{Latitude: 25.2048, Longitude: 55.2708},
		RadiusMeters:  100,
		WifiAllowList: []string{"HQ-Staff"},
	}
}

func TestVerifyCheckInGeofenceHardBlock(t *testing.T) {
	service, records := newTestService(officePolicy(), "", enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}))

	params := matchingParams(constants.CheckIn)
	params.Location = entities.LocationSnapshot{Latitude: 25.20615, Longitude: 55.2708} // ~150m away

	outcome, err := service.Verify(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Success || outcome.Tag != constants.LocationInvalid {
		t.Fatalf("expected LOCATION_INVALID, got success=%v tag=%s", outcome.Success, outcome.Tag)
	}
	if outcome.DistanceMeters == nil || *outcome.DistanceMeters < 140 || *outcome.DistanceMeters > 160 {
		t.Errorf("expected measured distance around 150m, got %v", outcome.DistanceMeters)
	}
	if len(records.records) != 0 {
		t.Error("rejected check-in must not write a record")
	}
}

func TestVerifyCheckOutGeofenceOnlyFlags(t *testing.T) {
	service, records := newTestService(officePolicy(), "", enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}))

	// open a session inside the fence
	if _, err := service.Verify(context.Background(), matchingParams(constants.CheckIn)); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	params := matchingParams(constants.CheckOut)
	params.Location = entities.LocationSnapshot{Latitude: 25.20615, Longitude: 55.2708}
	params.Network = entities.NetworkSnapshot{SSID: "CoffeeShopGuest"}

	outcome, err := service.Verify(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("check-out must not be blocked by gates, got tag %s", outcome.Tag)
	}
	wantFlags := map[string]bool{flagLocationOutOfRange: false, flagWifiNotAllowed: false}
	for _, flag := range outcome.Flags {
		wantFlags[flag] = true
	}
	for flag, seen := range wantFlags {
		if !seen {
			t.Errorf("expected flag %s on the outcome, got %v", flag, outcome.Flags)
		}
	}
	if records.records[0].CheckOutAt == nil {
		t.Error("expected the open record to be closed")
	}
}

func TestVerifyWifiHardBlockOnCheckIn(t *testing.T) {
	service, _ := newTestService(officePolicy(), "", enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}))

	params := matchingParams(constants.CheckIn)
	params.Network = entities.NetworkSnapshot{SSID: "CoffeeShopGuest"}

	outcome, err := service.Verify(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Tag != constants.WifiInvalid {
		t.Errorf("expected WIFI_INVALID, got %s", outcome.Tag)
	}
}

func TestVerifyProofOutcomes(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"
	validCode, err := totp.TOTPService.GenerateTOTPCode(secret)
	if err != nil {
		t.Fatalf("could not generate totp code: %v", err)
	}

	tests := []struct {
		name    string
		profile *entities.FaceProfile
		mutate  func(*VerifyParams)
		wantTag constants.OutcomeTag
	}{
		{
			name:    "no face profile",
			profile: nil,
			wantTag: constants.NoFaceProfile,
		},
		{
			name:    "dimension mismatch",
			profile: enrolledProfile([]float64{0.1, 0.2, 0.3}),
			wantTag: constants.EmbeddingMismatch,
		},
		{
			name:    "face mismatch",
			profile: enrolledProfile([]float64{0.9, -0.4, 0.1, 0.3}),
			wantTag: constants.FaceMismatch,
		},
		{
			name:    "missing proof",
			profile: enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}),
			mutate: func(params *VerifyParams) {
				params.Embedding = nil
				params.Code = nil
			},
			wantTag: constants.MissingProof,
		},
		{
			name:    "invalid code",
			profile: enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}),
			mutate: func(params *VerifyParams) {
				params.Embedding = nil
				code := "000000"
				if *validCode == code {
					code = "000001"
				}
				params.Code = &code
			},
			wantTag: constants.InvalidCode,
		},
		{
			name:    "valid code accepted",
			profile: enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}),
			mutate: func(params *VerifyParams) {
				params.Embedding = nil
				params.Code = validCode
			},
			wantTag: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(officePolicy(), secret, tt.profile)
			params := matchingParams(constants.CheckIn)
			if tt.mutate != nil {
				tt.mutate(&params)
			}
			outcome, err := service.Verify(context.Background(), params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if outcome.Tag != tt.wantTag {
				t.Errorf("tag = %s, want %s", outcome.Tag, tt.wantTag)
			}
			if tt.wantTag == "" && !outcome.Success {
				t.Error("expected success")
			}
		})
	}
}

func TestVerifyCodeWithoutSecretIsConfigError(t *testing.T) {
	service, _ := newTestService(officePolicy(), "", nil)
	params := matchingParams(constants.CheckIn)
	params.Embedding = nil
	code := "123456"
	params.Code = &code

	_, err := service.Verify(context.Background(), params)
	if err != ErrPolicyNotConfigured {
		t.Errorf("expected ErrPolicyNotConfigured, got %v", err)
	}
}

func TestVerifyCheckOutWithoutOpenSession(t *testing.T) {
	service, _ := newTestService(officePolicy(), "", enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}))

	outcome, err := service.Verify(context.Background(), matchingParams(constants.CheckOut))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Tag != constants.NoActiveSession {
		t.Errorf("expected NO_ACTIVE_SESSION, got %s", outcome.Tag)
	}
}

func TestVerifyCheckOutTargetsLatestOpenRecord(t *testing.T) {
	service, records := newTestService(officePolicy(), "", enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}))

	earlier := time.Now().Add(-8 * time.Hour)
	later := time.Now().Add(-125 * time.Minute)
	records.records = []entities.AttendanceRecord{
		{ID: "rec-early", UserID: testUser, CheckInAt: earlier, Status: entities.AttendanceStatusOpen},
		{ID: "rec-late", UserID: testUser, CheckInAt: later, Status: entities.AttendanceStatusOpen},
	}

	outcome, err := service.Verify(context.Background(), matchingParams(constants.CheckOut))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("expected success, got tag %s", outcome.Tag)
	}
	if outcome.Record.ID != "rec-late" {
		t.Errorf("check-out closed %s, want the record with the latest check-in", outcome.Record.ID)
	}
	if outcome.TotalMinutes == nil || *outcome.TotalMinutes != 125 {
		t.Errorf("total minutes = %v, want 125", outcome.TotalMinutes)
	}
}

func TestVerifyCheckOutStoresMinutesWithTheClose(t *testing.T) {
	service, records := newTestService(officePolicy(), "", enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}))
	records.records = []entities.AttendanceRecord{
		{ID: "rec-open", UserID: testUser, CheckInAt: time.Now().Add(-90 * time.Minute), Status: entities.AttendanceStatusOpen},
	}

	outcome, err := service.Verify(context.Background(), matchingParams(constants.CheckOut))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("expected success, got tag %s", outcome.Tag)
	}

	// The close is the only write; the stored record must already carry its
	// total, never a closed record waiting on a second update.
	stored := records.records[0]
	if stored.CheckOutAt == nil || stored.Status != entities.AttendanceStatusClosed {
		t.Fatal("expected the record to be closed")
	}
	if stored.TotalMinutes == nil || *stored.TotalMinutes != 90 {
		t.Errorf("stored totalMinutes = %v, want 90", stored.TotalMinutes)
	}
	if outcome.TotalMinutes == nil || *outcome.TotalMinutes != 90 {
		t.Errorf("outcome totalMinutes = %v, want 90", outcome.TotalMinutes)
	}
}

func TestHistoryBackfillsMinutesOnClosedRecords(t *testing.T) {
	service, records := newTestService(officePolicy(), "", nil)
	checkIn := time.Now().Add(-3 * time.Hour)
	checkOut := checkIn.Add(125 * time.Minute)
	records.records = []entities.AttendanceRecord{
		{ID: "rec-closed", UserID: testUser, CheckInAt: checkIn, CheckOutAt: &checkOut, Status: entities.AttendanceStatusClosed},
		{ID: "rec-open", UserID: testUser, CheckInAt: time.Now(), Status: entities.AttendanceStatusOpen},
	}

	history, err := service.History(context.Background(), testUser, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byID := map[string]entities.AttendanceRecord{}
	for _, record := range *history {
		byID[record.ID] = record
	}
	closed := byID["rec-closed"]
	if closed.TotalMinutes == nil || *closed.TotalMinutes != 125 {
		t.Errorf("closed record totalMinutes = %v, want 125", closed.TotalMinutes)
	}
	if open := byID["rec-open"]; open.TotalMinutes != nil {
		t.Errorf("open record must not get a total, got %v", open.TotalMinutes)
	}
}

func TestVerifyDuplicateCheckInStillInserts(t *testing.T) {
	service, records := newTestService(officePolicy(), "", enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}))

	for i := 0; i < 2; i++ {
		outcome, err := service.Verify(context.Background(), matchingParams(constants.CheckIn))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !outcome.Success {
			t.Fatalf("check-in %d failed with tag %s", i, outcome.Tag)
		}
		if outcome.DuplicateOpenSession != (i > 0) {
			t.Errorf("check-in %d: DuplicateOpenSession = %v", i, outcome.DuplicateOpenSession)
		}
	}
	if len(records.records) != 2 {
		t.Errorf("expected 2 open records, got %d", len(records.records))
	}
}

func TestVerifyIdempotentReplayReturnsOriginalOutcome(t *testing.T) {
	service, records := newTestService(officePolicy(), "", enrolledProfile([]float64{0.1, 0.2, 0.3, 0.4}))

	params := matchingParams(constants.CheckIn)
	key := "3f1a9c2e-idem"
	params.IdempotencyKey = &key

	first, err := service.Verify(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.Verify(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records.records) != 1 {
		t.Fatalf("replay must not double-submit, got %d records", len(records.records))
	}
	if !second.Replayed {
		t.Error("expected the replayed outcome to be marked as such")
	}
	if second.Record.ID != first.Record.ID {
		t.Error("replay must return the original record")
	}
}

func TestElapsedMinutes(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		checkOut time.Time
		want     int
	}{
		{"scenario 125 minutes", base.Add(125 * time.Minute), 125},
		{"rounds up at half minute", base.Add(90 * time.Second), 2},
		{"rounds down below half minute", base.Add(89 * time.Second), 1},
		{"never negative", base.Add(-5 * time.Minute), 0},
		{"zero span", base, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElapsedMinutes(base, tt.checkOut); got != tt.want {
				t.Errorf("ElapsedMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}
