package solabi

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrTooManyArguments indicates more values were supplied than parameters declared.
	ErrTooManyArguments = errors.New("solabi: too many arguments")

	// ErrMissingArgument indicates fewer values were supplied than an operation requires.
	ErrMissingArgument = errors.New("solabi: missing argument")

	// ErrTypeMismatch indicates a value's shape doesn't match its declared type.
	ErrTypeMismatch = errors.New("solabi: type mismatch")

	// ErrDecodeOutOfBounds indicates an offset or pointer resolved outside the buffer.
	ErrDecodeOutOfBounds = errors.New("solabi: decode out of bounds")

	// ErrMalformedWord indicates a 32-byte word that is not a valid encoding of its type.
	ErrMalformedWord = errors.New("solabi: malformed word")

	// ErrUnknownEntryType indicates an ABI description entry with an unrecognized type.
	ErrUnknownEntryType = errors.New("solabi: unknown entry type")

	// ErrMalformedDescription indicates a structurally invalid ABI description.
	ErrMalformedDescription = errors.New("solabi: malformed ABI description")

	// ErrEntryNotFound indicates no ABI entry matched a lookup.
	ErrEntryNotFound = errors.New("solabi: entry not found")
)

// TypeMismatchError indicates a value's type doesn't match the expected parameter type.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("solabi: type mismatch: expected %s, got %s", e.Expected, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// OutOfBoundsError indicates a read of Length bytes at Offset in a buffer of Size bytes.
type OutOfBoundsError struct {
	Offset uint64
	Length uint64
	Size   int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("solabi: decode out of bounds: %d bytes at offset %d exceed buffer of %d bytes",
		e.Length, e.Offset, e.Size)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrDecodeOutOfBounds
}

// ArgumentError indicates an issue with a single parameter of an entry.
type ArgumentError struct {
	Entry string
	Index int
	Err   error
}

func (e *ArgumentError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("solabi: argument %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("solabi: argument %d of %q: %v", e.Index, e.Entry, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// EntryNotFoundError indicates the ABI has no entry for the requested key.
type EntryNotFoundError struct {
	Kind EntryType
	Key  string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("solabi: %s %s not found", e.Kind, e.Key)
}

func (e *EntryNotFoundError) Unwrap() error {
	return ErrEntryNotFound
}
