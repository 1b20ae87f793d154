package pixel

import "errors"

// Construction errors.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("pixel: invalid dimensions")

	// ErrInvalidFormat is returned when a format description is malformed.
	ErrInvalidFormat = errors.New("pixel: invalid format")

	// ErrUnknownFormat is returned by FormatByName for unknown names.
	ErrUnknownFormat = errors.New("pixel: unknown format")

	// ErrInvalidStride is returned when stride is less than the row size.
	ErrInvalidStride = errors.New("pixel: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("pixel: data buffer too small")
)

// Availability errors, wrapped by BufferUnavailableError.
var (
	// ErrNilBuffer is returned when the buffer or its data is absent.
	ErrNilBuffer = errors.New("pixel: buffer is nil")

	// ErrBufferLocked is returned when another owner holds the buffer.
	ErrBufferLocked = errors.New("pixel: buffer is locked")
)

// BufferUnavailableError is returned when a buffer cannot be accessed for
// reading or writing. The operation it guards has not modified the buffer.
type BufferUnavailableError struct {
	Op  string
	Err error
}

func (e *BufferUnavailableError) Error() string {
	return "pixel: " + e.Op + ": buffer unavailable: " + e.Err.Error()
}

func (e *BufferUnavailableError) Unwrap() error {
	return e.Err
}
