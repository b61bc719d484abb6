package types

// MatchResult is the outcome of comparing one probe embedding against every
// enrolled pose of a profile.
type MatchResult struct {
	Match             bool    `json:"match"`
	Distance          float64 `json:"distance"`
	Similarity        float64 `json:"similarity"`
	PoseIndex         int     `json:"pose_index"`
	DistanceThreshold float64 `json:"distance_threshold"`
}

// LivenessState is the sequential blink-check state. Verified is sticky for
// the remainder of the capture session.
type LivenessState string

const (
	LivenessStart        LivenessState = "start"
	LivenessEyesOpenSeen LivenessState = "eyes_open_seen"
	LivenessVerified     LivenessState = "verified"
)

// LivenessObservation is what the on-device detector reports for one frame.
type LivenessObservation struct {
	EyeOpenScore  float64 `json:"eye_open_score"`
	BlinkDetected bool    `json:"blink_detected"`
}

// FaceBox is a detected face bounding box in frame pixel coordinates.
type FaceBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DetectionFrame carries every face found in one camera frame plus the frame
// dimensions the boxes are relative to.
type DetectionFrame struct {
	Faces       []FaceBox `json:"faces"`
	FrameWidth  int       `json:"frame_width"`
	FrameHeight int       `json:"frame_height"`
}

// Alignment instruction codes shown to the user. Terminal-for-the-frame, not
// errors: the next frame gets a fresh evaluation.
const (
	InstructionAligned       = "aligned"
	InstructionNoFace        = "no_face"
	InstructionMultipleFaces = "multiple_faces"
	InstructionMoveCloser    = "move_closer"
	InstructionMoveBack      = "move_back"
	InstructionCenterFace    = "center_face"
)

type AlignmentResult struct {
	Aligned     bool   `json:"aligned"`
	Instruction string `json:"instruction"`
}
