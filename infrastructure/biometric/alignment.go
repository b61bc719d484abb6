package biometric

import (
	"clockedin.io/infrastructure/biometric/types"
)

// Tolerance bands for a usable capture. The face must fill a reasonable share
// of the frame and sit near its center; outside those bands the user gets a
// corrective instruction rather than a failed capture.
const (
	minFaceWidthRatio    = 0.30
	maxFaceWidthRatio    = 0.75
	maxCenterOffsetRatio = 0.18
)

// CheckAlignment evaluates one camera frame. It holds no state across frames;
// the instruction code is for display only and the next frame starts clean.
func CheckAlignment(frame types.DetectionFrame) types.AlignmentResult {
	if len(frame.Faces) == 0 {
		return types.AlignmentResult{Aligned: false, Instruction: types.InstructionNoFace}
	}
	if len(frame.Faces) > 1 {
		return types.AlignmentResult{Aligned: false, Instruction: types.InstructionMultipleFaces}
	}
	if frame.FrameWidth <= 0 || frame.FrameHeight <= 0 {
		return types.AlignmentResult{Aligned: false, Instruction: types.InstructionNoFace}
	}

	face := frame.Faces[0]
	widthRatio := float64(face.Width) / float64(frame.FrameWidth)
	if widthRatio < minFaceWidthRatio {
		return types.AlignmentResult{Aligned: false, Instruction: types.InstructionMoveCloser}
	}
	if widthRatio > maxFaceWidthRatio {
		return types.AlignmentResult{Aligned: false, Instruction: types.InstructionMoveBack}
	}

	faceCenterX := float64(face.X) + float64(face.Width)/2
	faceCenterY := float64(face.Y) + float64(face.Height)/2
	offsetX := faceCenterX - float64(frame.FrameWidth)/2
	offsetY := faceCenterY - float64(frame.FrameHeight)/2
	if offsetX < 0 {
		offsetX = -offsetX
	}
	if offsetY < 0 {
		offsetY = -offsetY
	}
	if offsetX > float64(frame.FrameWidth)*maxCenterOffsetRatio ||
		offsetY > float64(frame.FrameHeight)*maxCenterOffsetRatio {
		return types.AlignmentResult{Aligned: false, Instruction: types.InstructionCenterFace}
	}

	return types.AlignmentResult{Aligned: true, Instruction: types.InstructionAligned}
}
