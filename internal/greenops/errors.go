package greenops

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, compared with errors.Is().
var (
	// ErrInvalidThresholds indicates an electric threshold above the hybrid threshold.
	ErrInvalidThresholds = constError("electric threshold exceeds hybrid threshold")

	// ErrNegativeOffset indicates a negative emission offset.
	ErrNegativeOffset = constError("negative emission offset")
)
