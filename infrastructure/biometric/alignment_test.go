package biometric

import (
	"testing"

	"clockedin.io/infrastructure/biometric/types"
)

func TestCheckAlignment(t *testing.T) {
	// 640x480 frame; a well aligned face is ~40-60% of frame width, centered.
	tests := []struct {
		name            string
		frame           types.DetectionFrame
		wantAligned     bool
		wantInstruction string
	}{
		{
			name:            "no face",
			frame:           types.DetectionFrame{FrameWidth: 640, FrameHeight: 480},
			wantAligned:     false,
			wantInstruction: types.InstructionNoFace,
		},
		{
			name: "multiple faces",
			frame: types.DetectionFrame{
				Faces:       []types.FaceBox{{X: 10, Y: 10, Width: 100, Height: 100}, {X: 300, Y: 10, Width: 100, Height: 100}},
				FrameWidth:  640,
				FrameHeight: 480,
			},
			wantAligned:     false,
			wantInstruction: types.InstructionMultipleFaces,
		},
		{
			name: "face too small",
			frame: types.DetectionFrame{
				Faces:       []types.FaceBox{{X: 280, Y: 200, Width: 80, Height: 80}},
				FrameWidth:  640,
				FrameHeight: 480,
			},
			wantAligned:     false,
			wantInstruction: types.InstructionMoveCloser,
		},
		{
			name: "face too large",
			frame: types.DetectionFrame{
				Faces:       []types.FaceBox{{X: 40, Y: 0, Width: 560, Height: 460}},
				FrameWidth:  640,
				FrameHeight: 480,
			},
			wantAligned:     false,
			wantInstruction: types.InstructionMoveBack,
		},
		{
			name: "face off center",
			frame: types.DetectionFrame{
				Faces:       []types.FaceBox{{X: 0, Y: 100, Width: 260, Height: 260}},
				FrameWidth:  640,
				FrameHeight: 480,
			},
			wantAligned:     false,
			wantInstruction: types.InstructionCenterFace,
		},
		{
			name: "aligned",
			frame: types.DetectionFrame{
				Faces:       []types.FaceBox{{X: 190, Y: 110, Width: 260, Height: 260}},
				FrameWidth:  640,
				FrameHeight: 480,
			},
			wantAligned:     true,
			wantInstruction: types.InstructionAligned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckAlignment(tt.frame)
			if result.Aligned != tt.wantAligned {
				t.Errorf("aligned = %v, want %v", result.Aligned, tt.wantAligned)
			}
			if result.Instruction != tt.wantInstruction {
				t.Errorf("instruction = %s, want %s", result.Instruction, tt.wantInstruction)
			}
		})
	}
}
