package serhex

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error kinds.
var (
	// ErrBadSize indicates hex text whose length is incompatible with the
	// target size. Strict decoding rejects anything other than exactly two
	// characters per byte; compact decoding rejects empty bodies and bodies
	// longer than the maximum.
	ErrBadSize = errors.New("invalid hex size")

	// ErrBadChar indicates a character outside [0-9a-fA-F] was encountered
	// during decoding.
	ErrBadChar = errors.New("invalid hex character")

	// ErrBadByte indicates a nibble value greater than 15 was passed to the
	// encoder. This is a defensive check; if it fires, the calling binding
	// is broken, not the input.
	ErrBadByte = errors.New("invalid nibble value")

	// ErrIO indicates the caller-supplied sink failed while hex output was
	// being written. The underlying error is preserved on the chain.
	ErrIO = errors.New("hex write failed")

	// ErrBadType indicates a container type that cannot be bound to the
	// codec (zero-length array, non-byte elements, unsupported kind).
	// Like ErrBadByte this signals a caller bug rather than bad input.
	ErrBadType = errors.New("unsupported container type")
)

// SizeError reports hex text of an unusable length.
type SizeError struct {
	Size int // length of the hex body, after any prefix was stripped
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("invalid hex size: %d", e.Size)
}

func (e *SizeError) Unwrap() error {
	return ErrBadSize
}

// CharError reports a non-hexadecimal character.
type CharError struct {
	Char byte
}

func (e *CharError) Error() string {
	return fmt.Sprintf("invalid hex character: %q", e.Char)
}

func (e *CharError) Unwrap() error {
	return ErrBadChar
}

// ByteError reports a value outside the nibble range 0x0-0xf.
type ByteError struct {
	Value byte
}

func (e *ByteError) Error() string {
	return fmt.Sprintf("invalid nibble value: %#x", e.Value)
}

func (e *ByteError) Unwrap() error {
	return ErrBadByte
}

// IOError wraps a failure from the caller-supplied sink. Both ErrIO and the
// original sink error are on the unwrap chain, so errors.Is works against
// either.
type IOError struct {
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("hex write failed: %v", e.Cause)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Cause}
}

// TypeError reports a container type the codec cannot bind.
type TypeError struct {
	Type string // Go type name of the rejected container
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unsupported container type: %s", e.Type)
}

func (e *TypeError) Unwrap() error {
	return ErrBadType
}

// newSizeError creates a SizeError for a hex body of n characters.
func newSizeError(n int) error {
	return &SizeError{Size: n}
}

// newCharError creates a CharError for the offending character.
func newCharError(c byte) error {
	return &CharError{Char: c}
}

// newByteError creates a ByteError for an out-of-range nibble value.
func newByteError(v byte) error {
	return &ByteError{Value: v}
}

// newIOError wraps a sink failure.
func newIOError(cause error) error {
	return &IOError{Cause: cause}
}
