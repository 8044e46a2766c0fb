// Package guard provides a small defensive-programming helper that detects
// whether a struct was created through its designated constructor function
// rather than as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied, so that validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into commands and value objects to enforce
// construction through factory functions. The zero value fails validation;
// only NewConstructorGuard produces a passing guard.
//
// Example:
//
//	type TrackParcelQuery struct {
//	    trackingCode string
//	    guard        guard.ConstructorGuard
//	}
//
//	func NewTrackParcelQuery(code string) (TrackParcelQuery, error) {
//	    if code == "" {
//	        return TrackParcelQuery{}, errs.NewValueIsRequiredError("trackingCode")
//	    }
//	    return TrackParcelQuery{trackingCode: code, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (q *TrackParcelQuery) Validate() error {
//	    return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the enclosing object was built through its
// constructor, otherwise the supplied error (or ErrDefaultConstructorGuard
// when err is nil).
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
