package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pomelo-bot/internal/domain/entity"
)

func TestPercent(t *testing.T) {
	require.Equal(t, 87, Percent(0.873))
	require.Equal(t, 50, Percent(0.50))
	require.Equal(t, 49, Percent(0.49))
	require.Equal(t, 100, Percent(1.0))
	require.Equal(t, 0, Percent(0.0))
}

func TestFormatResult_Empty(t *testing.T) {
	require.Equal(t, MsgNoDisease, FormatResult(entity.NewResultSet()))
	require.Equal(t, MsgNoDisease, FormatResult(nil))
}

func TestFormatResult_Scenario(t *testing.T) {
	classes := entity.ClassTable{"Canker", "Leaf Miner"}
	set, err := entity.Reduce([]entity.Detection{
		{ClassID: 0, Confidence: 0.62},
		{ClassID: 0, Confidence: 0.81},
		{ClassID: 1, Confidence: 0.40},
	}, classes, ConfidenceThreshold)
	require.NoError(t, err)

	text := FormatResult(set)
	require.Contains(t, text, "ผลการวิเคราะห์:")
	require.Contains(t, text, "- "+DisplayName("Canker")+" (ความมั่นใจ: 81%)")
	require.NotContains(t, text, DisplayName("Leaf Miner"))
	require.Equal(t, 1, strings.Count(text, "\n- "))
}

func TestFormatResult_SortedByConfidence(t *testing.T) {
	set := entity.NewResultSet()
	set.Add("Canker", 0.55)
	set.Add("Greening", 0.92)
	set.Add("Scab", 0.71)

	text := FormatResult(set)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[1], DisplayName("Greening"))
	require.Contains(t, lines[2], DisplayName("Scab"))
	require.Contains(t, lines[3], DisplayName("Canker"))
}

func TestDisplayName_FailOpen(t *testing.T) {
	require.Equal(t, "โรคแคงเกอร์", DisplayName("Canker"))
	// Classes missing from the table pass through unchanged.
	require.Equal(t, "Citrus Rust", DisplayName("Citrus Rust"))
}

func TestFormatResult_UnmappedClassRendered(t *testing.T) {
	set := entity.NewResultSet()
	set.Add("Citrus Rust", 0.66)

	text := FormatResult(set)
	require.Contains(t, text, "- Citrus Rust (ความมั่นใจ: 66%)")
}
