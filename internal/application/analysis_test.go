package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pomelo-bot/internal/domain/entity"
)

func TestAnalysisService_Degraded(t *testing.T) {
	svc := NewAnalysisService(nil, entity.ClassTable{"Canker"})
	require.False(t, svc.Ready())

	_, err := svc.Analyze(context.Background(), []byte("img"))
	require.ErrorIs(t, err, ErrDetectorUnavailable)
}

func TestAnalysisService_ReducesDetectorOutput(t *testing.T) {
	d := &fakeDetector{dets: []entity.Detection{
		{ClassID: 0, Confidence: 0.81},
		{ClassID: 0, Confidence: 0.62},
		{ClassID: 1, Confidence: 0.49},
	}}
	svc := NewAnalysisService(d, entity.ClassTable{"Canker", "Leaf Miner"})
	require.True(t, svc.Ready())

	set, err := svc.Analyze(context.Background(), []byte("img"))
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	conf, ok := set.Confidence("Canker")
	require.True(t, ok)
	require.Equal(t, 0.81, conf)
}

func TestAnalysisService_DetectorError(t *testing.T) {
	d := &fakeDetector{err: errors.New("inference failed")}
	svc := NewAnalysisService(d, entity.ClassTable{"Canker"})

	_, err := svc.Analyze(context.Background(), []byte("img"))
	require.Error(t, err)
}
