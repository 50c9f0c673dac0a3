package moodtrack

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// ResponseType is the user's preferred reply style.
type ResponseType string

const (
	ResponseEmpathy ResponseType = "共感"
	ResponseAdvice  ResponseType = "アドバイス"
)

var (
	// ValidDepartments lists the departments a profile may name.
	ValidDepartments = []string{
		"営業部", "設計部", "IC部", "積算部", "工事部",
		"木材部", "Re:eiwa", "走る大工", "不動産部", "管理統括部",
	}
	// ValidAgeGroups lists the age brackets a profile may name.
	ValidAgeGroups = []string{"10代", "20代", "30代", "40代", "50代", "60代以上"}
	// ValidResponseTypes lists the accepted reply styles.
	ValidResponseTypes = []ResponseType{ResponseEmpathy, ResponseAdvice}
)

// Profile is the user-supplied metadata attached to a session.
type Profile struct {
	Department   string       `json:"department,omitempty"`
	AgeGroup     string       `json:"age_group,omitempty"`
	ResponseType ResponseType `json:"response_type,omitempty"`
}

// Complete reports whether department and age group are set.
func (p Profile) Complete() bool {
	return p.Department != "" && p.AgeGroup != ""
}

// Validate checks every field against the fixed lists.
func (p Profile) Validate() error {
	if p.Department == "" || p.AgeGroup == "" || p.ResponseType == "" {
		return fmt.Errorf("%w: department, age group and response type are required", ErrInvalidProfile)
	}
	if !slices.Contains(ValidDepartments, p.Department) {
		return fmt.Errorf("%w: unknown department %q", ErrInvalidProfile, p.Department)
	}
	if !slices.Contains(ValidAgeGroups, p.AgeGroup) {
		return fmt.Errorf("%w: unknown age group %q", ErrInvalidProfile, p.AgeGroup)
	}
	if !slices.Contains(ValidResponseTypes, p.ResponseType) {
		return fmt.Errorf("%w: unknown response type %q", ErrInvalidProfile, p.ResponseType)
	}
	return nil
}

// SessionContext is the rolling per-conversation state.
type SessionContext struct {
	SessionID    string    `json:"session_id"`
	StressCount  int       `json:"stress_count"`
	LastMood     MoodLabel `json:"last_mood"`
	PreviousMood MoodLabel `json:"previous_mood"`
	Profile      Profile   `json:"profile"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSessionContext returns the state of a session that has never spoken.
func NewSessionContext(sessionID string) *SessionContext {
	return &SessionContext{
		SessionID:    sessionID,
		LastMood:     MoodNeutral,
		PreviousMood: MoodNeutral,
		Profile:      Profile{ResponseType: ResponseEmpathy},
	}
}

// Validate rejects states the core cannot reason about.
func (s *SessionContext) Validate() error {
	if s.StressCount < 0 {
		return fmt.Errorf("%w: negative stress count %d", ErrInvalidSessionState, s.StressCount)
	}
	if !s.LastMood.Valid() || !s.PreviousMood.Valid() {
		return fmt.Errorf("%w: unknown mood %q/%q", ErrInvalidSessionState, s.LastMood, s.PreviousMood)
	}
	return nil
}

// Advance records mood as the newest classification and updates the streak.
func (s *SessionContext) Advance(mood MoodLabel, now time.Time) {
	s.StressCount = UpdateStreak(s.StressCount, mood)
	s.PreviousMood = s.LastMood
	s.LastMood = mood
	s.UpdatedAt = now
}

// Turn is one exchange in a session's history.
type Turn struct {
	UserMessage    string    `json:"user_message"`
	BotResponse    string    `json:"bot_response"`
	Mood           MoodLabel `json:"mood"`
	HarassmentFlag bool      `json:"harassment_flag"`
	SensitiveFlag  bool      `json:"sensitive_flag"`
	Department     string    `json:"department,omitempty"`
	AgeGroup       string    `json:"age_group,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// SessionRepository persists session contexts and their history.
// Implementations must be safe for concurrent use; serializing updates to a
// single session is the caller's job (see Assistant).
type SessionRepository interface {
	// Load returns ErrSessionNotFound for unknown sessions.
	Load(ctx context.Context, sessionID string) (*SessionContext, error)
	Save(ctx context.Context, s *SessionContext) error
	AppendTurn(ctx context.Context, sessionID string, turn Turn) error
	// RecentTurns returns at most limit turns, oldest first.
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error)
}
