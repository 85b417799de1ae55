package detect

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"wastetrack/internal/logger"
)

// NetOracle runs an SSD-style detection network via the OpenCV DNN module.
// The network emits rows of 7 floats: [batch, classID, confidence, left, top,
// right, bottom] with coordinates normalized to [0,1].
type NetOracle struct {
	net       gocv.Net
	threshold float64
	logger    *logger.Logger
}

// NewNetOracle loads the detection network from the model and config files.
// A missing or unloadable model is a construction error; callers decide
// whether the application degrades or aborts.
func NewNetOracle(modelPath, configPath string, threshold float64, logger *logger.Logger) (*NetOracle, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	net := gocv.ReadNet(modelPath, configPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network from %s", modelPath)
	}

	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set preferable backend or target")
	}

	logger.Info("Detection network loaded from %s", modelPath)

	return &NetOracle{
		net:       net,
		threshold: threshold,
		logger:    logger,
	}, nil
}

// ClassifyFrame runs one forward pass and returns every detection above the
// oracle's confidence threshold as a pixel-space two-corner box.
func (o *NetOracle) ClassifyFrame(frame gocv.Mat) (Raw, error) {
	if frame.Empty() {
		return Raw{}, fmt.Errorf("frame is empty")
	}

	blob := gocv.BlobFromImage(frame, 1.0/127.5, image.Pt(300, 300), gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	o.net.SetInput(blob, "")

	output := o.net.Forward("")
	defer output.Close()

	frameWidth := float32(frame.Cols())
	frameHeight := float32(frame.Rows())

	var boxes []RawBox
	outputReshaped := output.Reshape(1, output.Total()/7)
	defer outputReshaped.Close()
	for i := 0; i < outputReshaped.Rows(); i++ {
		confidence := outputReshaped.GetFloatAt(i, 2)
		if float64(confidence) <= o.threshold {
			continue
		}
		classID := int(outputReshaped.GetFloatAt(i, 1))
		boxes = append(boxes, RawBox{
			X1:         int(outputReshaped.GetFloatAt(i, 3) * frameWidth),
			Y1:         int(outputReshaped.GetFloatAt(i, 4) * frameHeight),
			X2:         int(outputReshaped.GetFloatAt(i, 5) * frameWidth),
			Y2:         int(outputReshaped.GetFloatAt(i, 6) * frameHeight),
			Confidence: float64(confidence),
			ClassID:    classID,
		})
	}

	return Raw{Boxes: boxes}, nil
}

// Close releases the network.
func (o *NetOracle) Close() {
	o.net.Close()
}
