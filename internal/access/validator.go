package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datavault-fs/accessd/internal/audit"
)

// Validator answers "may this user perform this action on this resource".
// Every call, allowed or denied, appends exactly one audit record before
// the decision is returned. A failed audit write aborts the decision: the
// caller gets an error and must not proceed.
type Validator struct {
	matrix   Matrix
	recorder audit.Recorder
	observer DecisionObserver
	now      func() time.Time
}

// DecisionObserver receives every evaluated decision, typically for metrics.
type DecisionObserver interface {
	RecordDecision(role string, allowed bool)
}

// NewValidator constructs a Validator over an immutable matrix.
func NewValidator(matrix Matrix, recorder audit.Recorder) *Validator {
	return &Validator{matrix: matrix, recorder: recorder, now: time.Now}
}

// Observe registers an observer notified after each audited decision.
func (v *Validator) Observe(obs DecisionObserver) {
	v.observer = obs
}

// ValidateAccess evaluates the permission matrix for the request. Unknown
// roles and actions resolve to an empty permission set and are denied; they
// are never an error. The audit write is not optional: a missing recorder
// or a failed write aborts the decision.
func (v *Validator) ValidateAccess(ctx context.Context, userID string, action Action, resource string, role Role) (audit.Decision, error) {
	if v.recorder == nil {
		return audit.Decision{}, errors.New("access: audit recorder not configured")
	}

	allowed, reason := v.evaluate(role, action, resource)

	decision := audit.Decision{
		UserID:     userID,
		Role:       string(role),
		Action:     string(action),
		Resource:   resource,
		Allowed:    allowed,
		Reason:     reason,
		OccurredAt: v.now().UTC(),
	}
	if err := v.recorder.Record(ctx, decision); err != nil {
		return audit.Decision{}, fmt.Errorf("access: record decision: %w", err)
	}
	if v.observer != nil {
		v.observer.RecordDecision(string(role), allowed)
	}
	return decision, nil
}

func (v *Validator) evaluate(role Role, action Action, resource string) (bool, string) {
	entries := v.matrix.Lookup(role, action)

	// Sentinels take precedence over the ordered scan.
	for _, entry := range entries {
		if entry.Kind() == PatternAll {
			return true, fmt.Sprintf("role %s has universal %s access", role, action)
		}
	}
	for _, entry := range entries {
		if entry.Kind() == PatternNone {
			return false, fmt.Sprintf("role %s is explicitly denied %s access", role, action)
		}
	}

	// Ordered scan, first match wins.
	for _, entry := range entries {
		if !entry.Matches(resource) {
			continue
		}
		if entry.Kind() == PatternPrefix {
			return true, fmt.Sprintf("resource matches pattern %s", entry)
		}
		return true, fmt.Sprintf("resource explicitly allowed for %s", role)
	}
	return false, fmt.Sprintf("no matching permission for %s on %s", action, resource)
}
