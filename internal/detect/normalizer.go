package detect

import (
	"math"
	"sort"

	"wastetrack/internal/dto"
	"wastetrack/internal/logger"
	"wastetrack/internal/model"
	"wastetrack/internal/trash"
)

// StubConfidenceCutoff is the minimum probability a stub-mode category needs
// to become a candidate detection.
const StubConfidenceCutoff = 0.2

// Normalizer converts raw oracle output into the uniform record shape that is
// returned to callers and persisted. Output is always sorted by confidence
// descending; ties keep their input order.
type Normalizer struct {
	logger *logger.Logger
}

func NewNormalizer(logger *logger.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize dispatches on the raw output mode and sorts the candidates.
func (n *Normalizer) Normalize(raw Raw, frameWidth, frameHeight int) []dto.Detection {
	var detections []dto.Detection
	if raw.Probabilities != nil {
		detections = n.fromProbabilities(raw.Probabilities, frameWidth, frameHeight)
	} else {
		detections = n.fromBoxes(raw.Boxes, frameWidth, frameHeight)
	}

	sort.SliceStable(detections, func(i, j int) bool {
		return detections[i].Confidence > detections[j].Confidence
	})
	return detections
}

// fromProbabilities handles stub mode: every category above the cutoff
// becomes a candidate with a synthetic box clipped to the frame.
func (n *Normalizer) fromProbabilities(probabilities []float64, frameWidth, frameHeight int) []dto.Detection {
	var detections []dto.Detection
	for classID, probability := range probabilities {
		if probability <= StubConfidenceCutoff {
			continue
		}
		detections = append(detections, dto.Detection{
			TrashType:  trash.Label(classID),
			Confidence: probability,
			BBox:       syntheticBox(classID, frameWidth, frameHeight),
		})
	}
	return detections
}

// fromBoxes handles oracle mode: every reported box becomes a candidate
// regardless of confidence (the oracle already thresholds). Malformed
// individual detections are skipped with a warning, never fatal to the batch.
func (n *Normalizer) fromBoxes(boxes []RawBox, frameWidth, frameHeight int) []dto.Detection {
	var detections []dto.Detection
	for i, box := range boxes {
		detection, reason := n.parseBox(box, frameWidth, frameHeight)
		if reason != "" {
			n.logger.Warning("Skipping detection %d (%s): %+v", i, reason, box)
			continue
		}
		detections = append(detections, detection)
	}
	return detections
}

// parseBox converts one two-corner tuple to (x, y, width, height) form.
// The second return value names the skip reason for malformed tuples and is
// empty on success.
func (n *Normalizer) parseBox(box RawBox, frameWidth, frameHeight int) (dto.Detection, string) {
	if math.IsNaN(box.Confidence) || box.Confidence < 0 || box.Confidence > 1 {
		return dto.Detection{}, "confidence out of range"
	}

	x1 := clamp(box.X1, 0, frameWidth)
	y1 := clamp(box.Y1, 0, frameHeight)
	x2 := clamp(box.X2, 0, frameWidth)
	y2 := clamp(box.Y2, 0, frameHeight)

	width := x2 - x1
	height := y2 - y1
	if width <= 0 || height <= 0 {
		return dto.Detection{}, "degenerate box"
	}

	return dto.Detection{
		TrashType:  trash.Label(box.ClassID),
		Confidence: box.Confidence,
		BBox:       &model.BBox{X: x1, Y: y1, Width: width, Height: height},
	}, ""
}

// syntheticBox tiles the category index into a grid cell of the frame so
// stub-mode candidates carry a geometrically valid, deterministic box.
// Returns nil when the frame has no usable dimensions.
func syntheticBox(classID, frameWidth, frameHeight int) *model.BBox {
	const columns = 4
	cellWidth := frameWidth / columns
	cellHeight := frameHeight / columns
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil
	}

	x := (classID % columns) * cellWidth
	y := ((classID / columns) % columns) * cellHeight
	return &model.BBox{
		X:      x,
		Y:      y,
		Width:  min(cellWidth, frameWidth-x),
		Height: min(cellHeight, frameHeight-y),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
