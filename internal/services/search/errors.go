package search

import "fmt"

type SearchError struct {
	Type      string
	Operation string
	Message   string
	Code      int
	Cause     error
}

func (e *SearchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search %s error in %s: %s: %v", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("search %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *SearchError) Unwrap() error {
	return e.Cause
}
