package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var testClasses = ClassTable{"Canker", "Leaf Miner", "Greening"}

func TestReduce_ThresholdBoundary(t *testing.T) {
	set, err := Reduce([]Detection{
		{ClassID: 0, Confidence: 0.50},
		{ClassID: 1, Confidence: 0.499},
	}, testClasses, 0.50)
	require.NoError(t, err)

	require.Equal(t, 1, set.Len())
	conf, ok := set.Confidence("Canker")
	require.True(t, ok)
	require.Equal(t, 0.50, conf)

	_, ok = set.Confidence("Leaf Miner")
	require.False(t, ok)
}

func TestReduce_MaxPerClass(t *testing.T) {
	set, err := Reduce([]Detection{
		{ClassID: 0, Confidence: 0.62},
		{ClassID: 0, Confidence: 0.81},
		{ClassID: 1, Confidence: 0.40},
	}, testClasses, 0.50)
	require.NoError(t, err)

	require.Equal(t, 1, set.Len())
	conf, ok := set.Confidence("Canker")
	require.True(t, ok)
	require.Equal(t, 0.81, conf)
}

func TestReduce_KeepsMaxWhenLowerComesLater(t *testing.T) {
	set, err := Reduce([]Detection{
		{ClassID: 2, Confidence: 0.93},
		{ClassID: 2, Confidence: 0.55},
	}, testClasses, 0.50)
	require.NoError(t, err)

	conf, ok := set.Confidence("Greening")
	require.True(t, ok)
	require.Equal(t, 0.93, conf)
}

func TestReduce_EmptyInput(t *testing.T) {
	set, err := Reduce(nil, testClasses, 0.50)
	require.NoError(t, err)
	require.True(t, set.Empty())

	set, err = Reduce([]Detection{
		{ClassID: 0, Confidence: 0.10},
		{ClassID: 1, Confidence: 0.49},
	}, testClasses, 0.50)
	require.NoError(t, err)
	require.True(t, set.Empty())
}

func TestReduce_FirstSeenOrder(t *testing.T) {
	set, err := Reduce([]Detection{
		{ClassID: 2, Confidence: 0.60},
		{ClassID: 0, Confidence: 0.90},
		{ClassID: 2, Confidence: 0.95},
	}, testClasses, 0.50)
	require.NoError(t, err)

	entries := set.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "Greening", entries[0].ClassName)
	require.Equal(t, "Canker", entries[1].ClassName)
}

func TestReduce_Idempotent(t *testing.T) {
	set, err := Reduce([]Detection{
		{ClassID: 0, Confidence: 0.62},
		{ClassID: 0, Confidence: 0.81},
		{ClassID: 2, Confidence: 0.71},
	}, testClasses, 0.50)
	require.NoError(t, err)

	// Feed the reduced result back through as single detections.
	var again []Detection
	for _, e := range set.Entries() {
		for id, name := range testClasses {
			if name == e.ClassName {
				again = append(again, Detection{ClassID: id, Confidence: e.Confidence})
			}
		}
	}

	set2, err := Reduce(again, testClasses, 0.50)
	require.NoError(t, err)
	require.Equal(t, set.Entries(), set2.Entries())
}

func TestReduce_ClassIndexError(t *testing.T) {
	_, err := Reduce([]Detection{{ClassID: 3, Confidence: 0.90}}, testClasses, 0.50)
	require.Error(t, err)

	var classErr *ClassIndexError
	require.True(t, errors.As(err, &classErr))
	require.Equal(t, 3, classErr.ClassID)
	require.Equal(t, 3, classErr.Size)
}

func TestReduce_ClassIndexErrorBeforeThreshold(t *testing.T) {
	// Resolution happens before thresholding: a bad index fails even when the
	// detection would have been discarded anyway.
	_, err := Reduce([]Detection{{ClassID: -1, Confidence: 0.01}}, testClasses, 0.50)
	var classErr *ClassIndexError
	require.True(t, errors.As(err, &classErr))
}

func TestClassTable_Name(t *testing.T) {
	name, err := testClasses.Name(1)
	require.NoError(t, err)
	require.Equal(t, "Leaf Miner", name)

	_, err = testClasses.Name(3)
	require.Error(t, err)
	_, err = testClasses.Name(-1)
	require.Error(t, err)
}

func TestResultSet_Best(t *testing.T) {
	set := NewResultSet()
	_, ok := set.Best()
	require.False(t, ok)

	set.Add("Canker", 0.62)
	set.Add("Greening", 0.81)
	set.Add("Canker", 0.70)

	best, ok := set.Best()
	require.True(t, ok)
	require.Equal(t, "Greening", best.ClassName)
	require.Equal(t, 0.81, best.Confidence)
}
