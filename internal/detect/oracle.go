package detect

import "gocv.io/x/gocv"

// RawBox is one untranslated oracle detection: a two-corner box in pixel
// coordinates, a confidence score and the oracle's class id.
type RawBox struct {
	X1, Y1, X2, Y2 int
	Confidence     float64
	ClassID        int
}

// Raw is the oracle output for a single frame. Exactly one of the two fields
// is populated: Probabilities by stub oracles (one entry per trash category),
// Boxes by real detection models.
type Raw struct {
	Probabilities []float64
	Boxes         []RawBox
}

// Oracle classifies a single frame. Implementations must be stateless and
// safe to call repeatedly within a loop; the video pipeline invokes the same
// oracle once per frame.
type Oracle interface {
	ClassifyFrame(frame gocv.Mat) (Raw, error)
}
