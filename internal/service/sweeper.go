package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/repository"
	"example.com/gatherly/services/planning/internal/rules"
)

// Sweeper applies the deadline-driven transitions the worker runs on a
// schedule: cancelling under-subscribed events past their RSVP deadline and
// confirming events whose voting window has closed
type Sweeper struct {
	eventRepo repository.EventRepository
	lifecycle LifecycleService
	log       *logrus.Logger
	now       func() time.Time
}

// NewSweeper creates a new sweeper
func NewSweeper(eventRepo repository.EventRepository, lifecycle LifecycleService, log *logrus.Logger) *Sweeper {
	return &Sweeper{
		eventRepo: eventRepo,
		lifecycle: lifecycle,
		log:       log,
		now:       time.Now,
	}
}

// Run performs one sweep. A failure on one event is logged and does not stop
// the rest of the sweep.
func (s *Sweeper) Run(ctx context.Context) error {
	if err := s.sweepAutoCancel(ctx); err != nil {
		return err
	}
	return s.sweepAutoFinalize(ctx)
}

func (s *Sweeper) sweepAutoCancel(ctx context.Context) error {
	events, err := s.eventRepo.FindByStatus(ctx, models.StatusInviting)
	if err != nil {
		return err
	}

	now := s.now()
	for _, event := range events {
		accepted, err := s.eventRepo.CountAccepted(ctx, event.UUID)
		if err != nil {
			s.log.WithError(err).WithField("event_id", event.UUID).Warn("Failed to count accepted participants")
			continue
		}

		if !rules.AutoCancelEligible(now, event.RsvpDeadline, accepted, event.ExpectedAttendees) {
			continue
		}

		_, err = s.lifecycle.TransitionTo(ctx, event.UUID, models.StatusCancelled,
			"Not enough accepted participants by the RSVP deadline")
		if err != nil {
			s.log.WithError(err).WithField("event_id", event.UUID).Warn("Failed to auto-cancel event")
			continue
		}

		s.log.WithFields(logrus.Fields{
			"event_id": event.UUID,
			"accepted": accepted,
			"expected": event.ExpectedAttendees,
		}).Info("Auto-cancelled under-subscribed event")
	}
	return nil
}

func (s *Sweeper) sweepAutoFinalize(ctx context.Context) error {
	events, err := s.eventRepo.FindByStatus(ctx, models.StatusVoting)
	if err != nil {
		return err
	}

	now := s.now()
	for _, event := range events {
		if !rules.AutoFinalizeEligible(now, event.VotingDeadline) {
			continue
		}

		_, err := s.lifecycle.TransitionTo(ctx, event.UUID, models.StatusConfirmed, "Voting deadline reached")
		if err != nil {
			s.log.WithError(err).WithField("event_id", event.UUID).Warn("Failed to auto-finalize event")
			continue
		}

		s.log.WithField("event_id", event.UUID).Info("Auto-finalized event after voting deadline")
	}
	return nil
}
