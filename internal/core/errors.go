package core

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned by Apply and Export before any image is loaded.
var ErrInvalidState = errors.New("no image loaded")

// LoadError reports a path that could not be turned into an original image.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SaveError reports a failed export of the processed image.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
