package entity

import "fmt"

// Detection is one raw bounding box produced by the detection model.
type Detection struct {
	ClassID    int     // index into the model's class table
	Confidence float64 // model-reported probability, 0..1
	BBox       [4]int  // x1, y1, x2, y2 in original image pixels
}

// ClassTable is the ordered list of class names fixed by the model's
// training configuration.
type ClassTable []string

// ClassIndexError reports a class index outside the configured table. It means
// the deployed model and the class table disagree, which is a configuration
// fault rather than a per-request failure.
type ClassIndexError struct {
	ClassID int
	Size    int
}

func (e *ClassIndexError) Error() string {
	return fmt.Sprintf("class id %d out of range for table of %d classes", e.ClassID, e.Size)
}

// Name resolves a class index to its name.
func (t ClassTable) Name(id int) (string, error) {
	if id < 0 || id >= len(t) {
		return "", &ClassIndexError{ClassID: id, Size: len(t)}
	}
	return t[id], nil
}

// ResultEntry is one reduced per-class result.
type ResultEntry struct {
	ClassName  string
	Confidence float64
}

// ResultSet holds at most one entry per class name, in first-seen order.
type ResultSet struct {
	entries []ResultEntry
	index   map[string]int
}

// NewResultSet creates an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{index: make(map[string]int)}
}

// Add inserts a class or raises its confidence to the maximum seen.
func (s *ResultSet) Add(className string, confidence float64) {
	if i, ok := s.index[className]; ok {
		if confidence > s.entries[i].Confidence {
			s.entries[i].Confidence = confidence
		}
		return
	}
	s.index[className] = len(s.entries)
	s.entries = append(s.entries, ResultEntry{ClassName: className, Confidence: confidence})
}

// Len returns the number of distinct classes in the set.
func (s *ResultSet) Len() int { return len(s.entries) }

// Empty reports whether no class cleared the threshold.
func (s *ResultSet) Empty() bool { return len(s.entries) == 0 }

// Entries returns a copy of the entries in first-seen order.
func (s *ResultSet) Entries() []ResultEntry {
	out := make([]ResultEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Confidence returns the reduced confidence for a class.
func (s *ResultSet) Confidence(className string) (float64, bool) {
	i, ok := s.index[className]
	if !ok {
		return 0, false
	}
	return s.entries[i].Confidence, true
}

// Best returns the entry with the highest confidence.
func (s *ResultSet) Best() (ResultEntry, bool) {
	if len(s.entries) == 0 {
		return ResultEntry{}, false
	}
	best := s.entries[0]
	for _, e := range s.entries[1:] {
		if e.Confidence > best.Confidence {
			best = e
		}
	}
	return best, true
}

// Reduce collapses raw detections into a per-class result set. Class names are
// resolved before thresholding, so an out-of-range class id aborts with
// ClassIndexError even when its confidence is below threshold. Detections
// below threshold are dropped; the boundary value itself passes.
func Reduce(dets []Detection, classes ClassTable, threshold float64) (*ResultSet, error) {
	set := NewResultSet()
	for _, d := range dets {
		name, err := classes.Name(d.ClassID)
		if err != nil {
			return nil, err
		}
		if d.Confidence < threshold {
			continue
		}
		set.Add(name, d.Confidence)
	}
	return set, nil
}
