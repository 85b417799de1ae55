package detect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"wastetrack/internal/logger"
)

func TestNormalizeFPS(t *testing.T) {
	cases := []struct {
		name string
		fps  float64
		want float64
	}{
		{"zero defaults", 0, defaultFPS},
		{"negative defaults", -5, defaultFPS},
		{"absurdly high defaults", 130, defaultFPS},
		{"upper bound kept", 120, 120},
		{"ntsc kept", 29.97, 29.97},
		{"common kept", 30, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeFPS(tc.fps))
		})
	}
}

type fakeSink struct {
	opened bool
	closed bool
	writes int
}

func (s *fakeSink) IsOpened() bool           { return s.opened }
func (s *fakeSink) Write(img gocv.Mat) error { s.writes++; return nil }
func (s *fakeSink) Close() error             { s.closed = true; return nil }

func TestOpenWriterPrimaryCodec(t *testing.T) {
	primary := &fakeSink{opened: true}
	v := &VideoProcessor{
		logger: logger.New(t.TempDir()),
		openSink: func(path, codec string, fps float64, width, height int) (frameSink, error) {
			require.Equal(t, primaryCodec, codec)
			return primary, nil
		},
	}

	sink, err := v.openWriter("out.mp4", 25, 640, 480)
	require.NoError(t, err)
	assert.Same(t, primary, sink.(*fakeSink))
}

func TestOpenWriterFallsBackWhenPrimaryFails(t *testing.T) {
	fallback := &fakeSink{opened: true}
	var codecs []string
	v := &VideoProcessor{
		logger: logger.New(t.TempDir()),
		openSink: func(path, codec string, fps float64, width, height int) (frameSink, error) {
			codecs = append(codecs, codec)
			if codec == primaryCodec {
				return nil, errors.New("codec not supported")
			}
			return fallback, nil
		},
	}

	sink, err := v.openWriter("out.mp4", 25, 640, 480)
	require.NoError(t, err)
	assert.Same(t, fallback, sink.(*fakeSink))
	assert.Equal(t, []string{primaryCodec, fallbackCodec}, codecs)
}

func TestOpenWriterFallsBackWhenPrimaryNotOpened(t *testing.T) {
	primary := &fakeSink{opened: false}
	fallback := &fakeSink{opened: true}
	v := &VideoProcessor{
		logger: logger.New(t.TempDir()),
		openSink: func(path, codec string, fps float64, width, height int) (frameSink, error) {
			if codec == primaryCodec {
				return primary, nil
			}
			return fallback, nil
		},
	}

	sink, err := v.openWriter("out.mp4", 25, 640, 480)
	require.NoError(t, err)
	assert.Same(t, fallback, sink.(*fakeSink))
	assert.True(t, primary.closed, "rejected primary sink must be closed")
}

func TestOpenWriterSurvivesTypedNilFromFailedOpen(t *testing.T) {
	// gocv.VideoWriterFile returns (nil, err) when the source reports zero
	// width or height. A typed-nil concrete pointer assigned to the frameSink
	// interface is not nil, so the cleanup path must never touch it.
	fallback := &fakeSink{opened: true}
	v := &VideoProcessor{
		logger: logger.New(t.TempDir()),
		openSink: func(path, codec string, fps float64, width, height int) (frameSink, error) {
			if codec == primaryCodec {
				var broken *fakeSink
				return broken, errors.New("zero frame dimensions")
			}
			return fallback, nil
		},
	}

	sink, err := v.openWriter("out.mp4", 25, 0, 0)
	require.NoError(t, err)
	assert.Same(t, fallback, sink.(*fakeSink))
}

func TestOpenWriterErrorWhenBothTypedNilFail(t *testing.T) {
	v := &VideoProcessor{
		logger: logger.New(t.TempDir()),
		openSink: func(path, codec string, fps float64, width, height int) (frameSink, error) {
			var broken *fakeSink
			return broken, errors.New("zero frame dimensions")
		},
	}

	_, err := v.openWriter("out.mp4", 25, 0, 0)
	require.Error(t, err)
}

func TestOpenWriterErrorWhenBothCodecsFail(t *testing.T) {
	v := &VideoProcessor{
		logger: logger.New(t.TempDir()),
		openSink: func(path, codec string, fps float64, width, height int) (frameSink, error) {
			return nil, errors.New("no codec available")
		},
	}

	_, err := v.openWriter("out.mp4", 25, 640, 480)
	require.Error(t, err)
}
