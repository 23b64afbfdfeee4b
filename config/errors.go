// Package config provides a layered configuration view over an ordered sequence of sources.
package config

import "fmt"

var (
	// errNoConfigFileLoaded is returned when none of the requested configuration files could be loaded.
	errNoConfigFileLoaded = fmt.Errorf("no configuration files could be loaded")
)

type (
	// ListTypeError indicates a merged list element could not be converted to the requested type.
	ListTypeError struct {
		Key   string
		Index int
		Value any
	}

	// SourceIndexError indicates an indexed source access was out of range.
	SourceIndexError struct {
		Index int
		Count int
	}

	// FileCantExtendError indicates a file couldn't be merged with already loaded configuration.
	FileCantExtendError struct {
		File string
		Err  error
	}

	// FileCantParseError indicates a file couldn't be parsed.
	FileCantParseError struct {
		File string
		Err  error
	}
)

func (e ListTypeError) Error() string {
	return fmt.Sprintf("list value for key %s has non-string element %v (type %T) at index %d", e.Key, e.Value, e.Value, e.Index)
}

func (e SourceIndexError) Error() string {
	return fmt.Sprintf("source index %d out of range, composite holds %d sources", e.Index, e.Count)
}

func (e FileCantExtendError) Error() string {
	return fmt.Sprintf("can't extend file %s: %s", e.File, e.Err)
}

func (e FileCantExtendError) Unwrap() error {
	return e.Err
}

func (e FileCantParseError) Error() string {
	return fmt.Sprintf("can't parse file %s: %s", e.File, e.Err)
}

func (e FileCantParseError) Unwrap() error {
	return e.Err
}
