package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fulfillment/internal/pkg/errs"
)

// maxNumberAttempts bounds the collision-retry loop of GenerateUnique.
const maxNumberAttempts = 10

// ExistsFunc reports whether a candidate sequence number is already taken.
type ExistsFunc func(ctx context.Context, number string) (bool, error)

// NumberSequence generates human-facing sequence numbers of the form
// PREFIX-YYMM-NNNN (for example QUO-2608-0042). Candidates are random within
// the month, so uniqueness is enforced by probing storage and retrying a
// bounded number of times.
type NumberSequence struct {
	prefix string
	now    func() time.Time
	digits func() int
}

// NewNumberSequence creates a sequence for the given prefix (QUO, ORD).
func NewNumberSequence(prefix string) NumberSequence {
	return NumberSequence{
		prefix: prefix,
		now:    time.Now,
		digits: func() int { return rand.Intn(10000) },
	}
}

// NewNumberSequenceWithSource creates a sequence with an injected clock and
// digit source, used by tests and anywhere determinism matters.
func NewNumberSequenceWithSource(prefix string, now func() time.Time, digits func() int) NumberSequence {
	return NumberSequence{prefix: prefix, now: now, digits: digits}
}

// Candidate produces one candidate number for the current month.
func (s NumberSequence) Candidate() string {
	return fmt.Sprintf("%s-%s-%04d", s.prefix, s.now().Format("0601"), s.digits())
}

// GenerateUnique produces a number no existing record holds, probing with
// exists. After 10 colliding attempts it gives up with Conflict rather than
// blocking the caller's transition.
func (s NumberSequence) GenerateUnique(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		candidate := s.Candidate()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errs.NewConflictError(fmt.Sprintf("%s sequence exhausted after %d attempts", s.prefix, maxNumberAttempts))
}
