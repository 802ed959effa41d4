// Package diag defines the failures a binding generation run can end with.
//
// None of them are recovered inside the pipeline: each one aborts the run
// and surfaces to the caller, which can tell them apart with errors.As.
package diag

import "fmt"

// AnalysisError is an I/O or parser failure while reading a source file.
type AnalysisError struct {
	Path string
	Err  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyzing %s: %v", e.Path, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// ProjectError reports a directory that is not a usable Cargo project.
type ProjectError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ProjectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("project %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("project %s: %s", e.Path, e.Msg)
}

func (e *ProjectError) Unwrap() error { return e.Err }

// ConfigError reports an export attribute that is missing a required
// argument. Symbol is the struct or function carrying the attribute.
type ConfigError struct {
	Symbol string
	Msg    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("illegal export attribute on %s: %s", e.Symbol, e.Msg)
}

// EmissionError reports a code emission failure: an unbalanced scope stack
// or a wrapper class generated twice. Scope is empty for duplicates.
type EmissionError struct {
	Class string
	Scope string
	Msg   string
}

func (e *EmissionError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("generating class %s: %s (scope %s)", e.Class, e.Msg, e.Scope)
	}
	return fmt.Sprintf("generating class %s: %s", e.Class, e.Msg)
}

// Duplicate returns the error raised when two exported structs claim the
// same wrapper class name.
func Duplicate(class string) *EmissionError {
	return &EmissionError{Class: class, Msg: "class was already created"}
}

// UnresolvedTypeError reports an exported item whose type reference could
// not be resolved to any known struct or import.
type UnresolvedTypeError struct {
	Symbol string
	Type   string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("%s: unresolved type %s (no import and no local definition)", e.Symbol, e.Type)
}
