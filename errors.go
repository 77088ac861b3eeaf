package msdf

import "errors"

// Sentinel errors for msdf package.
var (
	// ErrOpenContour is returned by Shape.Validate when an edge does not
	// start where the previous edge ends.
	ErrOpenContour = errors.New("msdf: contour is not closed")

	// ErrChannelCount is returned when an output bitmap does not have the
	// number of channels the requested field kind produces.
	ErrChannelCount = errors.New("msdf: bitmap channel count does not match field kind")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "msdf: invalid config." + e.Field + ": " + e.Reason
}
