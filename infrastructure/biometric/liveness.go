package biometric

import (
	"sync"

	"clockedin.io/infrastructure/biometric/types"
)

// Eye-open score bands. Reaching EyesOpenSeen needs a confident open-eye
// baseline; the blink itself may land on a frame where the score has already
// started recovering, so verification tolerates a slightly lower score.
const (
	eyesOpenHighWatermark = 0.8
	eyesOpenLowWatermark  = 0.7
)

// LivenessGate is the per-capture-session blink state machine:
// Start -> EyesOpenSeen -> Verified. A static photo can hold a baseline but
// cannot produce the open-then-blink transition, which is the cheapest
// defense against photo replay available without depth sensing.
type LivenessGate struct {
	mutex sync.Mutex
	state types.LivenessState
}

func NewLivenessGate() *LivenessGate {
	return &LivenessGate{state: types.LivenessStart}
}

// Observe feeds one detector frame through the state machine and returns the
// resulting state. Verified is sticky until Reset.
func (gate *LivenessGate) Observe(obs types.LivenessObservation) types.LivenessState {
	gate.mutex.Lock()
	defer gate.mutex.Unlock()

	switch gate.state {
	case types.LivenessStart:
		if obs.EyeOpenScore > eyesOpenHighWatermark {
			gate.state = types.LivenessEyesOpenSeen
		}
	case types.LivenessEyesOpenSeen:
		if obs.BlinkDetected && obs.EyeOpenScore > eyesOpenLowWatermark {
			gate.state = types.LivenessVerified
		}
	case types.LivenessVerified:
		// sticky for the session
	}
	return gate.state
}

func (gate *LivenessGate) State() types.LivenessState {
	gate.mutex.Lock()
	defer gate.mutex.Unlock()
	return gate.state
}

func (gate *LivenessGate) Verified() bool {
	return gate.State() == types.LivenessVerified
}

// Reset returns the gate to Start. Called whenever enrollment or verification
// restarts so a previous session's verification cannot be replayed.
func (gate *LivenessGate) Reset() {
	gate.mutex.Lock()
	defer gate.mutex.Unlock()
	gate.state = types.LivenessStart
}
