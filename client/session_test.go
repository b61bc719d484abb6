package client

import (
	"testing"

	biometric_types "clockedin.io/infrastructure/biometric/types"
)

func alignedFrame() biometric_types.DetectionFrame {
	return biometric_types.DetectionFrame{
		Faces:       []biometric_types.FaceBox{{X: 180, Y: 100, Width: 280, Height: 280}},
		FrameWidth:  640,
		FrameHeight: 480,
	}
}

func offCenterFrame() biometric_types.DetectionFrame {
	return biometric_types.DetectionFrame{
		Faces:       []biometric_types.FaceBox{{X: 0, Y: 0, Width: 280, Height: 280}},
		FrameWidth:  640,
		FrameHeight: 480,
	}
}

func TestCaptureSessionReadyAfterAlignedBlink(t *testing.T) {
	session := NewCaptureSession()

	status := session.Process(alignedFrame(), biometric_types.LivenessObservation{EyeOpenScore: 0.95})
	if status.Ready {
		t.Fatal("session cannot be ready before a blink")
	}
	if status.Liveness != biometric_types.LivenessEyesOpenSeen {
		t.Fatalf("Liveness = %s, want %s", status.Liveness, biometric_types.LivenessEyesOpenSeen)
	}

	status = session.Process(alignedFrame(), biometric_types.LivenessObservation{EyeOpenScore: 0.75, BlinkDetected: true})
	if !status.Ready {
		t.Fatal("aligned frame after a verified blink should be ready")
	}
	if status.Liveness != biometric_types.LivenessVerified {
		t.Fatalf("Liveness = %s, want %s", status.Liveness, biometric_types.LivenessVerified)
	}
}

func TestCaptureSessionIgnoresLivenessOnMisalignedFrames(t *testing.T) {
	session := NewCaptureSession()

	// A photo waved off-center must not build liveness progress.
	status := session.Process(offCenterFrame(), biometric_types.LivenessObservation{EyeOpenScore: 0.95})
	if status.Liveness != biometric_types.LivenessStart {
		t.Fatalf("misaligned frame advanced liveness to %s", status.Liveness)
	}
	if status.Alignment.Instruction != biometric_types.InstructionCenterFace {
		t.Errorf("Instruction = %s, want %s", status.Alignment.Instruction, biometric_types.InstructionCenterFace)
	}

	status = session.Process(offCenterFrame(), biometric_types.LivenessObservation{EyeOpenScore: 0.75, BlinkDetected: true})
	if status.Ready || status.Liveness != biometric_types.LivenessStart {
		t.Fatal("blink on a misaligned frame must not verify the session")
	}
}

func TestCaptureSessionNotReadyWhenVerifiedButMisaligned(t *testing.T) {
	session := NewCaptureSession()
	session.Process(alignedFrame(), biometric_types.LivenessObservation{EyeOpenScore: 0.95})
	session.Process(alignedFrame(), biometric_types.LivenessObservation{EyeOpenScore: 0.75, BlinkDetected: true})

	// Liveness stays verified for the session, but submission still needs an
	// aligned frame to capture from.
	status := session.Process(offCenterFrame(), biometric_types.LivenessObservation{EyeOpenScore: 0.9})
	if status.Ready {
		t.Fatal("misaligned frame cannot be submitted even after verification")
	}
	if status.Liveness != biometric_types.LivenessVerified {
		t.Fatalf("Liveness = %s, verification should be sticky", status.Liveness)
	}
}

func TestCaptureSessionReset(t *testing.T) {
	session := NewCaptureSession()
	session.Process(alignedFrame(), biometric_types.LivenessObservation{EyeOpenScore: 0.95})
	session.Process(alignedFrame(), biometric_types.LivenessObservation{EyeOpenScore: 0.75, BlinkDetected: true})
	session.Reset()

	status := session.Process(alignedFrame(), biometric_types.LivenessObservation{EyeOpenScore: 0.5})
	if status.Ready || status.Liveness != biometric_types.LivenessStart {
		t.Fatal("reset session must start the blink check over")
	}
}
