package app

import (
	"context"
	"errors"

	"pomelo-bot/internal/domain/entity"
	"pomelo-bot/internal/domain/port"
)

// ConfidenceThreshold is the minimum confidence a detection needs to appear in
// a reply. The boundary value itself passes.
const ConfidenceThreshold = 0.50

// ErrDetectorUnavailable is returned while the service runs without a loaded
// model.
var ErrDetectorUnavailable = errors.New("detection model is not loaded")

// AnalysisService turns raw image bytes into a reduced per-class result set.
type AnalysisService struct {
	detector port.DiseaseDetector
	classes  entity.ClassTable
}

// NewAnalysisService creates the service. A nil detector puts it in degraded
// mode: Ready reports false and Analyze fails fast.
func NewAnalysisService(detector port.DiseaseDetector, classes entity.ClassTable) *AnalysisService {
	return &AnalysisService{detector: detector, classes: classes}
}

// Ready reports whether the detection model is loaded.
func (s *AnalysisService) Ready() bool { return s.detector != nil }

// Analyze runs the model over the image and reduces its raw output.
func (s *AnalysisService) Analyze(ctx context.Context, imageData []byte) (*entity.ResultSet, error) {
	if s.detector == nil {
		return nil, ErrDetectorUnavailable
	}

	dets, err := s.detector.Detect(ctx, imageData)
	if err != nil {
		return nil, err
	}

	return entity.Reduce(dets, s.classes, ConfidenceThreshold)
}
