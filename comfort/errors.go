package comfort

import "errors"

var (
	// ErrMissingField is returned when a mandatory field (T, U, p_rgh) is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidParameter is returned for clo/met/wme/RH values outside their physical range.
	ErrInvalidParameter = errors.New("invalid comfort parameter")

	// ErrInvalidCell is returned for a cell that violates volume > 0.
	ErrInvalidCell = errors.New("invalid cell")

	// ErrZeroVolume is returned when the domain has no volume to average over.
	ErrZeroVolume = errors.New("zero total volume")

	// ErrNoWallArea is returned when no wall patch has a nonzero area.
	ErrNoWallArea = errors.New("no wall patch with nonzero area")
)
