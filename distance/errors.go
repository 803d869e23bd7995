package distance

import "errors"

var (
	// ErrUnknownMetric is returned for a metric name missing from both registries.
	ErrUnknownMetric = errors.New("distance: unknown metric")
	// ErrBadParam is returned for a metric parameter that cannot be used.
	ErrBadParam = errors.New("distance: invalid metric parameter")
	// ErrMetricCount is returned when a per-group metric list does not match the group count.
	ErrMetricCount = errors.New("distance: metric list length does not match group count")
)
