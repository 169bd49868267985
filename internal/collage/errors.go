package collage

import (
	"errors"
	"fmt"
)

const (
	// ErrCodeInputNotFound reports a source directory that is missing,
	// unreadable or not a directory.
	ErrCodeInputNotFound = "input_not_found"
	// ErrCodeNoImages reports a scan that found no .png/.jpg/.jpeg files.
	ErrCodeNoImages = "no_images_found"
	// ErrCodeDecode reports a candidate file that could not be opened or decoded.
	ErrCodeDecode = "decode_failed"
	// ErrCodeWrite reports a canvas that could not be built, encoded, written
	// or released.
	ErrCodeWrite = "write_failed"
)

// Error is a pipeline failure tagged with the stage that produced it.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNoImages:
		return fmt.Sprintf("%s: no images found in %q", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %q: %v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s: %q", e.Code, e.Path)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the error code from err, or "" if err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
