package rules

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/gatherly/services/planning/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestValidateAdvanceScheduling(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	event := &models.Event{ScheduledDate: now.AddDate(0, 0, 4)}
	require.NoError(t, ValidateAdvanceScheduling(event, now))

	// Exactly three days out is not strictly more than the minimum
	event.ScheduledDate = now.AddDate(0, 0, 3)
	err := ValidateAdvanceScheduling(event, now)
	require.Error(t, err)

	var violation *Violation
	require.True(t, errors.As(err, &violation))
	require.Equal(t, RuleAdvanceScheduling, violation.Rule)
}

func TestValidateMinimumParticipants(t *testing.T) {
	require.NoError(t, ValidateMinimumParticipants(&models.Event{ExpectedAttendees: 2}))

	err := ValidateMinimumParticipants(&models.Event{ExpectedAttendees: 1})
	require.Error(t, err)

	var violation *Violation
	require.True(t, errors.As(err, &violation))
	require.Equal(t, RuleMinParticipants, violation.Rule)
}

func TestValidateBudgetFloor(t *testing.T) {
	// No budget set means no floor applies
	require.NoError(t, ValidateBudgetFloor(&models.Event{ExpectedAttendees: 10}))

	require.NoError(t, ValidateBudgetFloor(&models.Event{
		ExpectedAttendees: 10,
		BudgetTotal:       floatPtr(50),
	}))

	err := ValidateBudgetFloor(&models.Event{
		ExpectedAttendees: 10,
		BudgetTotal:       floatPtr(49),
	})
	require.Error(t, err)

	var violation *Violation
	require.True(t, errors.As(err, &violation))
	require.Equal(t, RuleBudgetFloor, violation.Rule)
}

func TestMeetsAcceptanceThreshold(t *testing.T) {
	// Default threshold of 0.7
	require.True(t, MeetsAcceptanceThreshold(7, 10, nil))
	require.False(t, MeetsAcceptanceThreshold(6, 10, nil))

	// Per-event override
	require.True(t, MeetsAcceptanceThreshold(5, 10, floatPtr(0.5)))
	require.False(t, MeetsAcceptanceThreshold(4, 10, floatPtr(0.5)))
}

func TestAutoCancelEligible(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	passed := now.Add(-time.Hour)
	upcoming := now.Add(time.Hour)

	// min required = max(2, 5) = 5
	require.True(t, AutoCancelEligible(now, &passed, 4, 10))
	require.False(t, AutoCancelEligible(now, &passed, 5, 10))

	// Small groups bottom out at 2
	require.True(t, AutoCancelEligible(now, &passed, 1, 3))
	require.False(t, AutoCancelEligible(now, &passed, 2, 3))

	// Deadline not passed or absent
	require.False(t, AutoCancelEligible(now, &upcoming, 0, 10))
	require.False(t, AutoCancelEligible(now, nil, 0, 10))
}

func TestAutoFinalizeEligible(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	passed := now.Add(-time.Minute)
	upcoming := now.Add(time.Minute)

	require.True(t, AutoFinalizeEligible(now, &passed))
	require.False(t, AutoFinalizeEligible(now, &upcoming))
	require.False(t, AutoFinalizeEligible(now, nil))
}

func TestValidateNoTimeOverlap(t *testing.T) {
	require.NoError(t, ValidateNoTimeOverlap(nil))

	duration := 60
	conflict := models.Event{
		Title:             "Team offsite",
		ScheduledDate:     time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC),
		EstimatedDuration: &duration,
	}
	err := ValidateNoTimeOverlap([]models.Event{conflict})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Team offsite")

	var violation *Violation
	require.True(t, errors.As(err, &violation))
	require.Equal(t, RuleTimeOverlap, violation.Rule)
}

func TestValidateNoTimeOverlapDefaultsDuration(t *testing.T) {
	conflict := models.Event{
		Title:         "Dinner",
		ScheduledDate: time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC),
	}
	err := ValidateNoTimeOverlap([]models.Event{conflict})
	require.Error(t, err)
	// End defaults to start + 120 minutes
	require.Contains(t, err.Error(), "21:00")
}

func TestValidateInvitationDeadline(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	passed := now.Add(-time.Hour)
	upcoming := now.Add(time.Hour)

	require.NoError(t, ValidateInvitationDeadline(&models.Event{}, now))
	require.NoError(t, ValidateInvitationDeadline(&models.Event{RsvpDeadline: &upcoming}, now))

	err := ValidateInvitationDeadline(&models.Event{RsvpDeadline: &passed}, now)
	require.Error(t, err)

	var violation *Violation
	require.True(t, errors.As(err, &violation))
	require.Equal(t, RuleRsvpDeadlinePassed, violation.Rule)
}

func TestValidateInvitableStatus(t *testing.T) {
	for _, status := range []models.EventStatus{
		models.StatusDraft,
		models.StatusPlanning,
		models.StatusInviting,
		models.StatusGatheringPreferences,
	} {
		require.NoError(t, ValidateInvitableStatus(&models.Event{Status: status}))
	}

	// Case-insensitive match
	require.NoError(t, ValidateInvitableStatus(&models.Event{Status: "DRAFT"}))

	for _, status := range []models.EventStatus{
		models.StatusAiRecommending,
		models.StatusVoting,
		models.StatusConfirmed,
		models.StatusCompleted,
		models.StatusCancelled,
	} {
		err := ValidateInvitableStatus(&models.Event{Status: status})
		require.Error(t, err)

		var violation *Violation
		require.True(t, errors.As(err, &violation))
		require.Equal(t, RuleStatusNotInvitable, violation.Rule)
	}
}
