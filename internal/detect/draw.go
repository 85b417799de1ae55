package detect

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"wastetrack/internal/dto"
)

// Annotate draws each detection's rectangle and label onto the frame in
// place. Detections without a box are left unmarked.
func Annotate(frame *gocv.Mat, detections []dto.Detection) error {
	green := color.RGBA{G: 255}

	for _, detection := range detections {
		if detection.BBox == nil {
			continue
		}
		box := detection.BBox

		rect := image.Rect(box.X, box.Y, box.X+box.Width, box.Y+box.Height)
		if err := gocv.Rectangle(frame, rect, green, 2); err != nil {
			return fmt.Errorf("failed to draw rectangle: %w", err)
		}

		label := fmt.Sprintf("%s: %.2f", detection.TrashType, detection.Confidence)
		textY := box.Y - 10
		if textY <= 10 {
			textY = box.Y + 10
		}
		if err := gocv.PutText(frame, label, image.Pt(box.X, textY), gocv.FontHersheySimplex, 0.5, green, 2); err != nil {
			return fmt.Errorf("failed to draw label: %w", err)
		}
	}
	return nil
}
