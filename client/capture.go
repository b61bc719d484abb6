package client

import (
	"sync"
	"time"

	biometric_types "clockedin.io/infrastructure/biometric/types"
)

// FramePump feeds camera frames to a single analysis consumer. The camera
// produces frames far faster than detection can consume them; the pump keeps
// at most one frame buffered and drops the rest so analysis always sees a
// recent frame instead of a growing backlog.
type FramePump struct {
	frames      chan biometric_types.DetectionFrame
	minInterval time.Duration

	mutex        sync.Mutex
	lastAccepted time.Time
	closed       bool
}

func NewFramePump(minInterval time.Duration) *FramePump {
	return &FramePump{
		frames:      make(chan biometric_types.DetectionFrame, 1),
		minInterval: minInterval,
	}
}

// Offer hands a frame to the pump without blocking the camera thread.
// Returns false when the frame was dropped, either because the consumer is
// busy or because the previous accept was under the minimum interval ago.
func (pump *FramePump) Offer(frame biometric_types.DetectionFrame) bool {
	pump.mutex.Lock()
	if pump.closed {
		pump.mutex.Unlock()
		return false
	}
	now := time.Now()
	if pump.minInterval > 0 && now.Sub(pump.lastAccepted) < pump.minInterval {
		pump.mutex.Unlock()
		return false
	}

	select {
	case pump.frames <- frame:
		pump.lastAccepted = now
		pump.mutex.Unlock()
		return true
	default:
		pump.mutex.Unlock()
		return false
	}
}

// Frames is the consumer side. Exactly one goroutine should range over it.
func (pump *FramePump) Frames() <-chan biometric_types.DetectionFrame {
	return pump.frames
}

func (pump *FramePump) Close() {
	pump.mutex.Lock()
	defer pump.mutex.Unlock()
	if !pump.closed {
		pump.closed = true
		close(pump.frames)
	}
}
