package detect

import (
	"fmt"

	"gocv.io/x/gocv"

	"wastetrack/internal/dto"
	"wastetrack/internal/logger"
)

// Processor runs the single-frame detection path: decode once, classify once,
// normalize once. It serves both image uploads and live camera frames.
type Processor struct {
	oracle     Oracle
	normalizer *Normalizer
	logger     *logger.Logger
}

func NewProcessor(oracle Oracle, normalizer *Normalizer, logger *logger.Logger) *Processor {
	return &Processor{
		oracle:     oracle,
		normalizer: normalizer,
		logger:     logger,
	}
}

// DetectFile decodes an image from disk and runs one oracle pass over it.
func (p *Processor) DetectFile(path string) ([]dto.Detection, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return nil, fmt.Errorf("could not decode image: %s", path)
	}
	defer img.Close()

	return p.detect(img)
}

// DetectEncoded decodes an in-memory encoded frame (e.g. a JPEG blob posted
// by a browser camera) and runs one oracle pass over it.
func (p *Processor) DetectEncoded(data []byte) ([]dto.Detection, error) {
	img, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("could not decode frame: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("decoded frame is empty")
	}

	return p.detect(img)
}

func (p *Processor) detect(img gocv.Mat) ([]dto.Detection, error) {
	raw, err := p.oracle.ClassifyFrame(img)
	if err != nil {
		return nil, fmt.Errorf("classify frame: %w", err)
	}

	detections := p.normalizer.Normalize(raw, img.Cols(), img.Rows())
	p.logger.Info("Frame produced %d detections", len(detections))
	return detections, nil
}
