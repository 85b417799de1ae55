package detect

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"wastetrack/internal/dto"
	"wastetrack/internal/logger"
)

const (
	defaultFPS    = 25.0
	maxSaneFPS    = 120.0
	primaryCodec  = "avc1"
	fallbackCodec = "mp4v"
)

// frameSink abstracts the output video writer so the codec-fallback logic is
// testable without touching real codecs.
type frameSink interface {
	IsOpened() bool
	Write(img gocv.Mat) error
	Close() error
}

type sinkOpener func(path, codec string, fps float64, width, height int) (frameSink, error)

func gocvSink(path, codec string, fps float64, width, height int) (frameSink, error) {
	// A direct return would wrap the nil *gocv.VideoWriter in a non-nil
	// interface, so the caller could not tell the writer is unusable.
	w, err := gocv.VideoWriterFile(path, codec, fps, width, height, true)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// VideoProcessor runs the detection pipeline over every frame of a video,
// strictly sequentially, writing an annotated copy of each frame to an output
// file. Any unrecoverable per-frame error aborts the whole video; only
// within-frame per-detection anomalies are skipped.
type VideoProcessor struct {
	oracle     Oracle
	normalizer *Normalizer
	logger     *logger.Logger
	openSink   sinkOpener
}

func NewVideoProcessor(oracle Oracle, normalizer *Normalizer, logger *logger.Logger) *VideoProcessor {
	return &VideoProcessor{
		oracle:     oracle,
		normalizer: normalizer,
		logger:     logger,
		openSink:   gocvSink,
	}
}

// normalizeFPS substitutes the default output rate when the source reports a
// rate outside (0, 120], guarding against corrupt or missing metadata.
func normalizeFPS(fps float64) float64 {
	if fps <= 0 || fps > maxSaneFPS {
		return defaultFPS
	}
	return fps
}

// openWriter opens the output writer with the primary codec, retrying once
// with the fallback codec before declaring failure.
func (v *VideoProcessor) openWriter(path string, fps float64, width, height int) (frameSink, error) {
	sink, err := v.openSink(path, primaryCodec, fps, width, height)
	if err == nil && sink.IsOpened() {
		return sink, nil
	}
	if err == nil && sink != nil {
		sink.Close()
	}
	v.logger.Warning("Video writer rejected codec %s for %s, retrying with %s", primaryCodec, path, fallbackCodec)

	sink, err = v.openSink(path, fallbackCodec, fps, width, height)
	if err != nil {
		return nil, fmt.Errorf("open video writer: %w", err)
	}
	if !sink.IsOpened() {
		sink.Close()
		return nil, fmt.Errorf("video writer failed to open %s with both codecs", path)
	}
	return sink, nil
}

// Process reads srcPath frame by frame, annotates each frame with its
// detections, writes the result to outPath and returns the aggregate
// detection list. Reader and writer are released unconditionally, including
// after interior errors; no output file survives a total failure.
func (v *VideoProcessor) Process(srcPath, outPath string) ([]dto.Detection, error) {
	source, err := gocv.OpenVideoCapture(srcPath)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", srcPath, err)
	}
	defer source.Close()

	sourceFPS := source.Get(gocv.VideoCaptureFPS)
	fps := normalizeFPS(sourceFPS)
	if fps != sourceFPS {
		v.logger.Warning("Source FPS %.2f is invalid or out of range, defaulting to %.0f", sourceFPS, fps)
	}
	width := int(source.Get(gocv.VideoCaptureFrameWidth))
	height := int(source.Get(gocv.VideoCaptureFrameHeight))

	sink, err := v.openWriter(outPath, fps, width, height)
	if err != nil {
		os.Remove(outPath)
		return nil, err
	}
	defer sink.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	var all []dto.Detection
	frames := 0
	for {
		if ok := source.Read(&frame); !ok {
			break
		}
		if frame.Empty() {
			continue
		}
		frames++

		raw, err := v.oracle.ClassifyFrame(frame)
		if err != nil {
			return nil, fmt.Errorf("classify frame %d: %w", frames, err)
		}
		detections := v.normalizer.Normalize(raw, frame.Cols(), frame.Rows())

		if err := Annotate(&frame, detections); err != nil {
			return nil, fmt.Errorf("annotate frame %d: %w", frames, err)
		}
		if err := sink.Write(frame); err != nil {
			return nil, fmt.Errorf("write frame %d: %w", frames, err)
		}

		all = append(all, detections...)
	}

	v.logger.Info("Processed %d frames from %s, %d detections total", frames, srcPath, len(all))
	return all, nil
}
