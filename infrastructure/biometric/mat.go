package biometric

import (
	"fmt"
	"image"

	"github.com/akugone/kawayC/entities"
	"gocv.io/x/gocv"
)

func frameToMat(frame *entities.Frame) (gocv.Mat, error) {
	if frame == nil || frame.Width <= 0 || frame.Height <= 0 || len(frame.BGR) != frame.Width*frame.Height*3 {
		return gocv.NewMat(), fmt.Errorf("invalid frame")
	}
	return gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.BGR)
}

// faceRegionWithPadding widens the box by 20% on each side, clipped to img.
func faceRegionWithPadding(img gocv.Mat, face image.Rectangle) gocv.Mat {
	paddingX := int(float64(face.Dx()) * 0.2)
	paddingY := int(float64(face.Dy()) * 0.2)

	padded := image.Rect(face.Min.X-paddingX, face.Min.Y-paddingY, face.Max.X+paddingX, face.Max.Y+paddingY)
	padded = padded.Intersect(image.Rect(0, 0, img.Cols(), img.Rows()))
	if padded.Empty() {
		return gocv.NewMat()
	}
	return img.Region(padded)
}
