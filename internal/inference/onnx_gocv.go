//go:build gocv

package inference

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ironsheep/plate-ocr/internal/detection"
)

// yoloInputSize is the square input resolution of the exported model.
const yoloInputSize = 640

// ONNXDetector runs a YOLOv8 ONNX model with OpenCV's DNN module.
type ONNXDetector struct {
	mu            sync.Mutex
	net           gocv.Net
	confThreshold float32
	nmsThreshold  float32
}

// NewONNXDetector loads the model at modelPath.
func NewONNXDetector(modelPath string, confThreshold, nmsThreshold float32) (*ONNXDetector, error) {
	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("%w: could not load model from %s", ErrUnavailable, modelPath)
	}

	return &ONNXDetector{
		net:           net,
		confThreshold: confThreshold,
		nmsThreshold:  nmsThreshold,
	}, nil
}

// Detect runs the model over img.
//
// The image is resized (without letterboxing) to 640x640. The YOLOv8 output
// tensor has shape [1, 4+C, N]: for each of the N anchors, a centre-format
// box followed by C class scores. Anchors whose best score exceeds the
// confidence threshold go through non-maximum suppression; survivors are
// returned in descending score order with boxes scaled back to img.
func (d *ONNXDetector) Detect(ctx context.Context, img image.Image) ([]detection.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frame, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer frame.Close()

	blob := gocv.BlobFromImage(frame, 1.0/255.0, image.Pt(yoloInputSize, yoloInputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	d.mu.Unlock()
	defer output.Close()

	return d.postProcess(output, img.Bounds())
}

func (d *ONNXDetector) postProcess(output gocv.Mat, bounds image.Rectangle) ([]detection.Detection, error) {
	sizes := output.Size()
	if len(sizes) != 3 || sizes[1] < 5 {
		return nil, fmt.Errorf("unexpected output shape %v", sizes)
	}
	attrs, anchors := sizes[1], sizes[2]
	numClasses := attrs - 4

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}

	xFactor := float32(bounds.Dx()) / yoloInputSize
	yFactor := float32(bounds.Dy()) / yoloInputSize

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int

	for i := 0; i < anchors; i++ {
		bestClass, bestScore := -1, float32(0)
		for c := 0; c < numClasses; c++ {
			if s := data[(4+c)*anchors+i]; s > bestScore {
				bestClass, bestScore = c, s
			}
		}
		if bestScore <= d.confThreshold {
			continue
		}

		cx, cy := data[i], data[anchors+i]
		w, h := data[2*anchors+i], data[3*anchors+i]

		left := int((cx - w/2) * xFactor)
		top := int((cy - h/2) * yFactor)
		right := int((cx + w/2) * xFactor)
		bottom := int((cy + h/2) * yFactor)

		boxes = append(boxes, image.Rect(left, top, right, bottom).Add(bounds.Min))
		scores = append(scores, bestScore)
		classIDs = append(classIDs, bestClass)
	}

	if len(boxes) == 0 {
		return []detection.Detection{}, nil
	}

	indices := gocv.NMSBoxes(boxes, scores, d.confThreshold, d.nmsThreshold)
	detections := make([]detection.Detection, 0, len(indices))
	for _, idx := range indices {
		detections = append(detections, detection.Detection{
			Box:        boxes[idx],
			Confidence: float64(scores[idx]),
			Class:      className(classIDs[idx], numClasses),
		})
	}
	return detections, nil
}

// Close releases the network.
func (d *ONNXDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}
