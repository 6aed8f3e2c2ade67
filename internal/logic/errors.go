package logic

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures so the HTTP layer can map each one
// to a fixed status code
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindNotFound: a requested id is not in the catalog
	KindNotFound
	// KindInference: the classifier failed or returned an unusable distribution
	KindInference
	// KindStartup: the catalog or model could not be loaded
	KindStartup
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInference:
		return "inference_failure"
	case KindStartup:
		return "startup_failure"
	default:
		return "unknown"
	}
}

// Error is returned by every PredictionService method
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StartupError marks a failure to load a startup dependency.
func StartupError(op string, err error) error {
	return &Error{Kind: KindStartup, Op: op, Err: err}
}
