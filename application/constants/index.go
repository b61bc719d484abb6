package constants

// OutcomeTag identifies why an admission request was rejected. Tags are part
// of the wire contract - clients map them to display copy and must never have
// to string-match prose.
type OutcomeTag string

const (
	LocationInvalid   OutcomeTag = "LOCATION_INVALID"
	WifiInvalid       OutcomeTag = "WIFI_INVALID"
	FaceMismatch      OutcomeTag = "FACE_MISMATCH"
	NoFaceProfile     OutcomeTag = "NO_FACE_PROFILE"
	EmbeddingMismatch OutcomeTag = "EMBEDDING_MISMATCH"
	InvalidCode       OutcomeTag = "INVALID_CODE"
	NoActiveSession   OutcomeTag = "NO_ACTIVE_SESSION"
	MissingProof      OutcomeTag = "MISSING_PROOF"
	ConfigError       OutcomeTag = "CONFIG_ERROR"
)

// clockedin response codes
// these consist of 4 digit numbers representing specific client scenarios
var (
	ATTENDANCE_QUEUED       uint = 2021 // submission accepted for background replay
	SESSION_EXPIRED         uint = 4010 // force re-authentication upstream
	IDENTITY_MISMATCH       uint = 4030 // token subject does not own the claimed identity
	POLICY_NOT_CONFIGURED   uint = 5001 // operator action required
	DUPLICATE_OPEN_SESSION  uint = 2091 // check-in while a session is still open
)

const (
	CheckIn  = "check_in"
	CheckOut = "check_out"

	ProofEmbedding = "embedding"
	ProofCode      = "code"
)

// DefaultGeofenceRadiusMeters applies when the policy sets an office
// coordinate without an explicit radius.
const DefaultGeofenceRadiusMeters = 100.0
