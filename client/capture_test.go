package client

import (
	"testing"
	"time"

	biometric_types "clockedin.io/infrastructure/biometric/types"
)

func testFrame() biometric_types.DetectionFrame {
	return biometric_types.DetectionFrame{
		Faces:       []biometric_types.FaceBox{{X: 160, Y: 90, Width: 280, Height: 280}},
		FrameWidth:  640,
		FrameHeight: 480,
	}
}

func TestOfferDropsWhenConsumerIsBusy(t *testing.T) {
	pump := NewFramePump(0)
	defer pump.Close()

	if !pump.Offer(testFrame()) {
		t.Fatal("first frame should be accepted into the empty buffer")
	}
	if pump.Offer(testFrame()) {
		t.Fatal("second frame should be dropped while the buffer is full")
	}

	// Consumer drains; the pump accepts again.
	<-pump.Frames()
	if !pump.Offer(testFrame()) {
		t.Fatal("frame should be accepted after the consumer drained")
	}
}

func TestOfferEnforcesMinimumInterval(t *testing.T) {
	pump := NewFramePump(250 * time.Millisecond)
	defer pump.Close()

	if !pump.Offer(testFrame()) {
		t.Fatal("first frame should be accepted")
	}
	<-pump.Frames()

	if pump.Offer(testFrame()) {
		t.Fatal("frame inside the minimum interval should be dropped")
	}

	time.Sleep(300 * time.Millisecond)
	if !pump.Offer(testFrame()) {
		t.Fatal("frame after the minimum interval should be accepted")
	}
}

func TestOfferNeverBlocksTheProducer(t *testing.T) {
	pump := NewFramePump(0)
	defer pump.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			pump.Offer(testFrame())
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Offer() blocked the producer")
	}
}

func TestOfferAfterCloseIsRejected(t *testing.T) {
	pump := NewFramePump(0)
	pump.Close()
	if pump.Offer(testFrame()) {
		t.Fatal("closed pump must reject frames")
	}
	if _, open := <-pump.Frames(); open {
		t.Fatal("frames channel should be closed")
	}
}
