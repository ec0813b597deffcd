package model

import (
	"errors"
	"fmt"
)

// ErrPolicyGap is matched by every PolicyGapError via errors.Is.
var ErrPolicyGap = errors.New("policy gap")

// GapKind tells which closed set a lookup fell outside of.
type GapKind string

const (
	GapRole       GapKind = "role"
	GapPermission GapKind = "permission"
)

// PolicyGapError reports a role or permission value outside the closed sets.
// It signals a broken policy table or unvalidated input, never an access denial.
type PolicyGapError struct {
	Kind  GapKind
	Value string
}

func (e *PolicyGapError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

// Is makes errors.Is(err, ErrPolicyGap) hold for any PolicyGapError.
func (e *PolicyGapError) Is(target error) bool {
	return target == ErrPolicyGap
}
