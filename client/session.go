package client

import (
	"clockedin.io/infrastructure/biometric"
	biometric_types "clockedin.io/infrastructure/biometric/types"
)

// CaptureStatus is what the capture UI renders after each analyzed frame.
type CaptureStatus struct {
	Alignment biometric_types.AlignmentResult
	Liveness  biometric_types.LivenessState
	// Ready means the current frame is aligned and the session has passed
	// the blink check: the embedding from this frame may be submitted.
	Ready bool
}

// CaptureSession drives one enrollment or verification attempt: frames come
// off the FramePump, the detector annotates them, and Process folds each
// annotated frame through the alignment and liveness gates.
type CaptureSession struct {
	liveness *biometric.LivenessGate
}

func NewCaptureSession() *CaptureSession {
	return &CaptureSession{liveness: biometric.NewLivenessGate()}
}

// Process evaluates one annotated frame. Liveness only advances on aligned
// frames: an off-center or partial face cannot contribute a blink.
func (session *CaptureSession) Process(frame biometric_types.DetectionFrame, obs biometric_types.LivenessObservation) CaptureStatus {
	alignment := biometric.CheckAlignment(frame)
	state := session.liveness.State()
	if alignment.Aligned {
		state = session.liveness.Observe(obs)
	}
	return CaptureStatus{
		Alignment: alignment,
		Liveness:  state,
		Ready:     alignment.Aligned && state == biometric_types.LivenessVerified,
	}
}

// Reset starts the session over. Required between attempts so a previous
// session's liveness verification cannot be replayed.
func (session *CaptureSession) Reset() {
	session.liveness.Reset()
}
