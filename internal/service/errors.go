package service

import "strings"

// ValidationError reports one or more rejected input fields. Handlers map
// it to a client error; the bot reads it back to the operator.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// StorageError reports a failure of the underlying patient store. Handlers
// map it to a server error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage failure during " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
