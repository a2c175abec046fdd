package ocr

import "errors"

var (
	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("image has no pixels")
	// ErrUnknownEngine is returned for an OCR engine name that is not supported.
	ErrUnknownEngine = errors.New("unknown ocr engine")
)
