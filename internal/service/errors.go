package service

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both truly absent resources and resources owned
// by someone else, so existence is never leaked across students.
var ErrNotFound = errors.New("not found")

// ErrAlreadyApplied is returned both by the pre-check and by the
// commit-time unique violation, so races surface the same way.
var ErrAlreadyApplied = errors.New("already applied for this drive")

// Rejection is a business-rule rejection carrying a human-readable
// reason. Handlers map it to a client error; it is never logged as a
// system failure.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

func reject(reason string) error {
	return &Rejection{Reason: reason}
}

func rejectf(format string, args ...interface{}) error {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

// IsRejection reports whether err is a business-rule rejection and, if
// so, returns its reason.
func IsRejection(err error) (string, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason, true
	}
	return "", false
}
