package ink

import (
	"errors"

	"github.com/vellumnote/ink/store"
)

// Engine errors. All of them are recoverable: they are reported to the
// immediate caller and never terminate a drawing session.
var (
	// ErrInvalidBrushConfig is returned when a brush configuration fails
	// validation (for example MinWidth > MaxWidth, or a field outside its
	// range). The previous configuration stays in effect.
	ErrInvalidBrushConfig = errors.New("ink: invalid brush config")

	// ErrNoHistory is returned by Undo when the undo stack is empty and by
	// Redo when the redo stack is empty. The surface is left untouched.
	ErrNoHistory = errors.New("ink: no history")

	// ErrSerialization is returned when a surface snapshot cannot be encoded
	// or decoded. A failed load leaves the current surface unchanged.
	ErrSerialization = errors.New("ink: serialization failure")

	// ErrStorageUnavailable is returned when the persistence store cannot be
	// reached. It aliases store.ErrUnavailable so callers can match with
	// either name. Missing keys are store.ErrNotFound, not this.
	ErrStorageUnavailable = store.ErrUnavailable

	// ErrUnsupportedFormat is returned by Export for a format the engine
	// does not produce.
	ErrUnsupportedFormat = errors.New("ink: unsupported export format")
)
