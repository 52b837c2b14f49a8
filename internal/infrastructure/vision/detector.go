package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/disintegration/imaging"
	ort "github.com/yalue/onnxruntime_go"

	"pomelo-bot/internal/domain/entity"
)

const (
	// InputSize is the side of the square model input.
	InputSize = 640

	// anchorCount is the number of candidate boxes in a 640x640 YOLO output.
	anchorCount = 8400

	// candidateFloor drops obvious background anchors before reduction. The
	// user-facing confidence threshold is applied later by the reducer.
	candidateFloor = 0.25
)

// ONNXDetector runs an exported YOLO model through onnxruntime. Session.Run
// reuses the session's bound tensors, so inference calls are serialized with
// a mutex.
type ONNXDetector struct {
	mu         sync.Mutex
	session    *ort.AdvancedSession
	input      *ort.Tensor[float32]
	output     *ort.Tensor[float32]
	classCount int
}

// NewONNXDetector loads the model and allocates its input/output tensors.
// classCount must match the class channel count the model was trained with.
func NewONNXDetector(modelPath string, classCount int) (*ONNXDetector, error) {
	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer options.Destroy()

	inputShape := ort.NewShape(1, 3, InputSize, InputSize)
	outputShape := ort.NewShape(1, int64(4+classCount), anchorCount)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"images"},
		[]string{"output0"},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &ONNXDetector{
		session:    session,
		input:      inputTensor,
		output:     outputTensor,
		classCount: classCount,
	}, nil
}

// Destroy releases the session and its tensors.
func (d *ONNXDetector) Destroy() {
	if d.session != nil {
		d.session.Destroy()
	}
	if d.input != nil {
		d.input.Destroy()
	}
	if d.output != nil {
		d.output.Destroy()
	}
}

// Detect decodes the image, runs inference and returns raw detections.
func (d *ONNXDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	resized := imaging.Resize(img, InputSize, InputSize, imaging.Linear)
	fillInput(resized, d.input.GetData())

	if err := d.session.Run(); err != nil {
		return nil, fmt.Errorf("model inference: %w", err)
	}

	return parsePredictions(d.output.GetData(), d.classCount, img.Bounds().Dx(), img.Bounds().Dy()), nil
}

// fillInput writes the resized image into the NCHW float32 tensor buffer.
func fillInput(pic image.Image, data []float32) {
	channelSize := InputSize * InputSize
	for y := 0; y < InputSize; y++ {
		offset := y * InputSize
		for x := 0; x < InputSize; x++ {
			i := offset + x
			r, g, b, _ := pic.At(x, y).RGBA()
			data[i] = float32(r>>8) / 255.0
			data[channelSize+i] = float32(g>>8) / 255.0
			data[channelSize*2+i] = float32(b>>8) / 255.0
		}
	}
}

// parsePredictions walks the YOLO output laid out as [4+C][anchorCount]: four
// box channels followed by one score channel per class. Per anchor, the best
// class score wins.
func parsePredictions(predictions []float32, classCount, origWidth, origHeight int) []entity.Detection {
	dets := make([]entity.Detection, 0, 16)
	for i := 0; i < anchorCount; i++ {
		classID := -1
		var best float32
		for c := 0; c < classCount; c++ {
			score := predictions[(4+c)*anchorCount+i]
			if score > best {
				best = score
				classID = c
			}
		}
		if classID < 0 || best < candidateFloor {
			continue
		}

		dets = append(dets, entity.Detection{
			ClassID:    classID,
			Confidence: float64(best),
			BBox: scaleBBox(
				predictions[i],
				predictions[anchorCount+i],
				predictions[2*anchorCount+i],
				predictions[3*anchorCount+i],
				float32(origWidth),
				float32(origHeight),
			),
		})
	}
	return dets
}

// scaleBBox converts a center/size box in model input coordinates to corner
// pixels in the original image.
func scaleBBox(cx, cy, w, h, origWidth, origHeight float32) [4]int {
	scaleX := origWidth / InputSize
	scaleY := origHeight / InputSize

	x1 := (cx - w/2) * scaleX
	y1 := (cy - h/2) * scaleY
	x2 := (cx + w/2) * scaleX
	y2 := (cy + h/2) * scaleY

	return [4]int{
		int(max(0, x1)),
		int(max(0, y1)),
		int(min(origWidth, x2)),
		int(min(origHeight, y2)),
	}
}
