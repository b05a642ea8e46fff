// Package errors provides custom errors for types implementing storage interfaces.
package errors

import (
	"fmt"
)

type (
	NotFoundError struct {
		ID  string
		Err error
	}
	AlreadyExistsError struct {
		ID  string
		Err error
	}
	ContextTimeoutExceededError struct {
		Err error
	}
	StatementPSQLError struct {
		Err error
	}
	ScanningPSQLError struct {
		Err error
	}
	ExecutionPSQLError struct {
		Err error
	}
)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found in storage", e.ID)
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: already exists in storage", e.ID)
}

func (e *ContextTimeoutExceededError) Error() string {
	return "context timeout exceeded"
}

func (e *StatementPSQLError) Error() string {
	return fmt.Sprintf("%s: could not compile statement", e.Err.Error())
}

func (e *ScanningPSQLError) Error() string {
	return fmt.Sprintf("%s: could not scan rows", e.Err.Error())
}

func (e *ExecutionPSQLError) Error() string {
	return fmt.Sprintf("%s: could not execute statement", e.Err.Error())
}
