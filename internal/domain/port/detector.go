package port

import (
	"context"

	"pomelo-bot/internal/domain/entity"
)

// DiseaseDetector runs the detection model over raw image bytes.
type DiseaseDetector interface {
	// Detect decodes the image, runs inference and returns the model's raw
	// detections, before any per-class reduction.
	Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error)
}
