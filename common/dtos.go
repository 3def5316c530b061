package common

// Datapoint is one (value, timestamp) sample returned by the backend. The
// backend reports empty time slots as null, so a missing value is carried
// through the Present flag instead of being folded into 0.
type Datapoint struct {
	Value     float64
	Present   bool
	Timestamp int64
}

// Series is one concrete named time sequence returned for a target. The
// datapoints are ordered chronologically, the last one being the most recent
// (usually an in-progress bucket).
type Series struct {
	Name       string
	Datapoints []Datapoint
}

// NonNullValues returns the values of all datapoints that carry a sample
func (s Series) NonNullValues() []float64 {
	values := make([]float64, 0, len(s.Datapoints))
	for _, dp := range s.Datapoints {
		if dp.Present {
			values = append(values, dp.Value)
		}
	}

	return values
}

// LastNonNullValues returns the values of the most recent n datapoints that
// carry a sample, in chronological order. Fewer than n may be returned.
func (s Series) LastNonNullValues(n int) []float64 {
	if n <= 0 {
		return nil
	}

	values := make([]float64, 0, n)
	for i := len(s.Datapoints) - 1; i >= 0 && len(values) < n; i-- {
		dp := s.Datapoints[i]
		if dp.Present {
			values = append(values, dp.Value)
		}
	}

	// collected newest-first, restore chronological order
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}

	return values
}

// LatestNonNullTimestamp returns the timestamp of the most recent datapoint
// carrying a sample. The second return value is false when the whole series
// is null.
func (s Series) LatestNonNullTimestamp() (int64, bool) {
	for i := len(s.Datapoints) - 1; i >= 0; i-- {
		if s.Datapoints[i].Present {
			return s.Datapoints[i].Timestamp, true
		}
	}

	return 0, false
}
