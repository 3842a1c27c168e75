// Package rules holds the pure validation predicates applied to events at
// creation and transition time. Every function is stateless and performs no
// I/O; callers supply the current time and any live counts.
package rules

import (
	"fmt"
	"strings"
	"time"

	"example.com/gatherly/services/planning/internal/models"
)

// Rule identifiers carried by violations
const (
	RuleAdvanceScheduling  = "advance_scheduling"
	RuleMinParticipants    = "min_participants"
	RuleBudgetFloor        = "budget_floor"
	RuleTimeOverlap        = "time_overlap"
	RuleRsvpDeadlinePassed = "rsvp_deadline_passed"
	RuleStatusNotInvitable = "status_not_invitable"
)

// Violation is a named business rule failure. Messages are safe to show to
// end users.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error implements the error interface
func (v *Violation) Error() string {
	return v.Message
}

// NewViolation creates a violation for the given rule
func NewViolation(rule, format string, args ...interface{}) *Violation {
	return &Violation{
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidateAdvanceScheduling fails unless the event is scheduled strictly more
// than the minimum advance window from now
func ValidateAdvanceScheduling(event *models.Event, now time.Time) error {
	earliest := now.AddDate(0, 0, models.MinAdvanceDays)
	if !event.ScheduledDate.After(earliest) {
		return NewViolation(RuleAdvanceScheduling,
			"Events must be scheduled at least %d days in advance", models.MinAdvanceDays)
	}
	return nil
}

// ValidateMinimumParticipants fails unless the event plans for at least the
// minimum group size
func ValidateMinimumParticipants(event *models.Event) error {
	if event.ExpectedAttendees < models.MinExpectedAttendees {
		return NewViolation(RuleMinParticipants,
			"Events must expect at least %d attendees", models.MinExpectedAttendees)
	}
	return nil
}

// ValidateBudgetFloor fails when a total budget is set but falls below the
// per-person floor
func ValidateBudgetFloor(event *models.Event) error {
	if event.BudgetTotal == nil {
		return nil
	}
	floor := float64(event.ExpectedAttendees * models.MinBudgetPerAttendee)
	if *event.BudgetTotal < floor {
		return NewViolation(RuleBudgetFloor,
			"Budget must be at least %.0f (%d per attendee)", floor, models.MinBudgetPerAttendee)
	}
	return nil
}

// MeetsAcceptanceThreshold reports whether enough participants accepted.
// A nil threshold falls back to the default.
func MeetsAcceptanceThreshold(accepted, expected int, threshold *float64) bool {
	t := models.DefaultAcceptanceThreshold
	if threshold != nil && *threshold > 0 {
		t = *threshold
	}
	return float64(accepted) >= float64(expected)*t
}

// AutoCancelEligible reports whether an event should be auto-cancelled: the
// invitation deadline has passed and fewer than max(2, floor(expected/2))
// participants accepted
func AutoCancelEligible(now time.Time, deadline *time.Time, accepted, expected int) bool {
	if deadline == nil || !now.After(*deadline) {
		return false
	}
	minRequired := expected / 2
	if minRequired < 2 {
		minRequired = 2
	}
	return accepted < minRequired
}

// AutoFinalizeEligible reports whether voting should be closed out
func AutoFinalizeEligible(now time.Time, votingDeadline *time.Time) bool {
	return votingDeadline != nil && now.After(*votingDeadline)
}

// ValidateNoTimeOverlap fails when any overlapping event exists, citing the
// first one's title and time window
func ValidateNoTimeOverlap(overlapping []models.Event) error {
	if len(overlapping) == 0 {
		return nil
	}
	first := overlapping[0]
	start, end := first.TimeWindow()
	return NewViolation(RuleTimeOverlap,
		"Event overlaps with %q (%s - %s)",
		first.Title, start.Format(time.RFC3339), end.Format(time.RFC3339))
}

// ValidateInvitationDeadline fails when the RSVP deadline is set and already past
func ValidateInvitationDeadline(event *models.Event, now time.Time) error {
	if event.RsvpDeadline != nil && now.After(*event.RsvpDeadline) {
		return NewViolation(RuleRsvpDeadlinePassed, "The RSVP deadline for this event has passed")
	}
	return nil
}

// invitableStatuses are the statuses during which invitations may be sent
var invitableStatuses = []models.EventStatus{
	models.StatusDraft,
	models.StatusPlanning,
	models.StatusInviting,
	models.StatusGatheringPreferences,
}

// ValidateInvitableStatus fails unless the event is in a status that still
// accepts invitations. The comparison is case-insensitive.
func ValidateInvitableStatus(event *models.Event) error {
	for _, s := range invitableStatuses {
		if strings.EqualFold(string(event.Status), string(s)) {
			return nil
		}
	}
	return NewViolation(RuleStatusNotInvitable,
		"Invitations cannot be sent while the event is %s", event.Status)
}
