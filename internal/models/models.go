package models

import (
	"time"

	"gorm.io/gorm"
)

// Base model fields shared by all models
type Base struct {
	UUID      string    `json:"uuid" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Planning defaults shared across rules, lifecycle, and recommendation code
const (
	// DefaultAcceptanceThreshold is the fraction of expected attendees that
	// must accept before preference gathering can start
	DefaultAcceptanceThreshold = 0.7
	// DefaultDurationMinutes is assumed when an event has no duration set
	DefaultDurationMinutes = 120
	// DefaultDistanceRadiusKm is assumed when no participant set a radius
	DefaultDistanceRadiusKm = 10.0
	// DefaultBudgetPerPerson is assumed when no participant set a budget
	DefaultBudgetPerPerson = 30
	// VotingWindowDays is how long voting stays open after it begins
	VotingWindowDays = 3
	// MinAdvanceDays is the minimum scheduling lead time for a new event
	MinAdvanceDays = 3
	// MinBudgetPerAttendee is the per-person floor applied when a total
	// budget is set on an event
	MinBudgetPerAttendee = 5
	// MinExpectedAttendees is the smallest group an event may plan for
	MinExpectedAttendees = 2
)

// EventStatus defines the lifecycle status of an event
type EventStatus string

const (
	// StatusDraft represents a newly created, unscheduled event
	StatusDraft EventStatus = "draft"
	// StatusPlanning represents an event being fleshed out by its organizer
	StatusPlanning EventStatus = "planning"
	// StatusInviting represents an event whose invitations are out
	StatusInviting EventStatus = "inviting"
	// StatusGatheringPreferences represents an event collecting participant preferences
	StatusGatheringPreferences EventStatus = "gathering_preferences"
	// StatusAiRecommending represents an event whose venue shortlist is being generated
	StatusAiRecommending EventStatus = "ai_recommending"
	// StatusVoting represents an event whose participants are voting on venues
	StatusVoting EventStatus = "voting"
	// StatusConfirmed represents an event with a locked-in venue
	StatusConfirmed EventStatus = "confirmed"
	// StatusCompleted represents an event that has taken place
	StatusCompleted EventStatus = "completed"
	// StatusCancelled represents a cancelled event
	StatusCancelled EventStatus = "cancelled"
)

// AllEventStatuses lists every defined lifecycle status
var AllEventStatuses = []EventStatus{
	StatusDraft,
	StatusPlanning,
	StatusInviting,
	StatusGatheringPreferences,
	StatusAiRecommending,
	StatusVoting,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// StatusFromString converts a string to an EventStatus
func StatusFromString(status string) EventStatus {
	for _, s := range AllEventStatuses {
		if string(s) == status {
			return s
		}
	}
	return ""
}

// ParticipantStatus defines the invitation response state of a participant
type ParticipantStatus string

const (
	// ParticipantPending represents an unanswered invitation
	ParticipantPending ParticipantStatus = "pending"
	// ParticipantAccepted represents an accepted invitation
	ParticipantAccepted ParticipantStatus = "accepted"
	// ParticipantDeclined represents a declined invitation
	ParticipantDeclined ParticipantStatus = "declined"
)

// Event represents a planned group gathering progressing through a fixed lifecycle
type Event struct {
	Base
	Title               string      `json:"title"`
	EventType           string      `json:"event_type"`
	OrganizerID         string      `json:"organizer_id" gorm:"column:organizer_id;type:uuid;index"`
	Status              EventStatus `json:"status" gorm:"index"`
	ScheduledDate       time.Time   `json:"scheduled_date"`
	ScheduledTime       string      `json:"scheduled_time"`
	EstimatedDuration   *int        `json:"estimated_duration"`
	ExpectedAttendees   int         `json:"expected_attendees"`
	BudgetTotal         *float64    `json:"budget_total"`
	AcceptanceThreshold *float64    `json:"acceptance_threshold"`
	RsvpDeadline        *time.Time  `json:"rsvp_deadline"`
	VotingDeadline      *time.Time  `json:"voting_deadline"`
	AiAnalysisStartedAt *time.Time  `json:"ai_analysis_started_at"`
	ConfirmedAt         *time.Time  `json:"confirmed_at"`
	CancelledAt         *time.Time  `json:"cancelled_at"`
	CancellationReason  string      `json:"cancellation_reason"`
	CompletedAt         *time.Time  `json:"completed_at"`
}

// DurationMinutes returns the estimated duration, falling back to the default
func (e *Event) DurationMinutes() int {
	if e.EstimatedDuration == nil || *e.EstimatedDuration <= 0 {
		return DefaultDurationMinutes
	}
	return *e.EstimatedDuration
}

// Threshold returns the acceptance threshold, falling back to the default
func (e *Event) Threshold() float64 {
	if e.AcceptanceThreshold == nil || *e.AcceptanceThreshold <= 0 {
		return DefaultAcceptanceThreshold
	}
	return *e.AcceptanceThreshold
}

// TimeWindow returns the start and end of the event's scheduled window
func (e *Event) TimeWindow() (time.Time, time.Time) {
	start := e.ScheduledDate
	end := start.Add(time.Duration(e.DurationMinutes()) * time.Minute)
	return start, end
}

// EventParticipant associates a user with an event and tracks their response
type EventParticipant struct {
	Base
	EventID     string            `json:"event_id" gorm:"column:event_id;type:uuid;index"`
	Event       *Event            `json:"-" gorm:"foreignKey:EventID"`
	UserID      string            `json:"user_id" gorm:"column:user_id;type:uuid;index"`
	Status      ParticipantStatus `json:"status" gorm:"index"`
	RespondedAt *time.Time        `json:"responded_at"`
}

// UserPreference holds a user's dining preferences used during aggregation
type UserPreference struct {
	Base
	UserID string `json:"user_id" gorm:"column:user_id;type:uuid;uniqueIndex"`
	// CuisinePreferences is free-form comma-separated cuisine tags
	CuisinePreferences string   `json:"cuisine_preferences"`
	BudgetPerPerson    *float64 `json:"budget_per_person"`
	MaxDistanceKm      *float64 `json:"max_distance_km"`
	// DietaryRestrictions is reserved; aggregation does not read it yet
	DietaryRestrictions string   `json:"dietary_restrictions"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
}

// Venue represents a candidate gathering place
type Venue struct {
	Base
	Name      string         `json:"name"`
	Category  string         `json:"category" gorm:"index"`
	Rating    float64        `json:"rating" gorm:"index"`
	PriceTier float64        `json:"price_tier"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Address   string         `json:"address"`
	Verified  bool           `json:"verified" gorm:"index"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// SuggestedByAI marks recommendation records produced by the selector
const SuggestedByAI = "AI"

// EventPlaceOption is a scored venue suggestion attached to an event.
// Options are immutable once created.
type EventPlaceOption struct {
	Base
	EventID                string  `json:"event_id" gorm:"column:event_id;type:uuid;index"`
	VenueID                string  `json:"venue_id" gorm:"column:venue_id;type:uuid"`
	Venue                  *Venue  `json:"venue,omitempty" gorm:"foreignKey:VenueID"`
	SuggestedBy            string  `json:"suggested_by"`
	AiScore                float64 `json:"ai_score"`
	AiReasoning            string  `json:"ai_reasoning"`
	Pros                   []byte  `json:"pros" gorm:"type:jsonb"`
	Cons                   []byte  `json:"cons" gorm:"type:jsonb"`
	EstimatedCostPerPerson float64 `json:"estimated_cost_per_person"`
}

// EventAuditLog is an append-only record of one lifecycle transition
type EventAuditLog struct {
	Base
	EventID   string      `json:"event_id" gorm:"column:event_id;type:uuid;index"`
	OldStatus EventStatus `json:"old_status"`
	NewStatus EventStatus `json:"new_status"`
	Reason    string      `json:"reason"`
	Details   []byte      `json:"details" gorm:"type:jsonb"`
}

// Coordinate is a latitude/longitude pair used as scoring input
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AggregatedPreferences is the derived consensus profile for an event.
// It is computed fresh per aggregation call and never persisted.
type AggregatedPreferences struct {
	ParticipantIDs      []string       `json:"participant_ids"`
	CuisineTypes        []string       `json:"cuisine_types"`
	PreferenceWeights   map[string]int `json:"preference_weights"`
	AverageBudget       int            `json:"average_budget"`
	MaxDistanceRadius   float64        `json:"max_distance_radius"`
	DietaryRestrictions []string       `json:"dietary_restrictions"`
}
