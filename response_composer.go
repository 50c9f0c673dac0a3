package moodtrack

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// ──────────────────────────────────────────────
// Response Composer — escalation ladder + annotations
// ──────────────────────────────────────────────

// Streak thresholds.
const (
	DefaultCheckInStreak    = 3
	DefaultEscalationStreak = 4
)

// Topic-consistency thresholds.
const (
	TopicDriftThreshold      = 0.2
	TopicContinuityThreshold = 0.7
)

// ResponseBundle is the composed output for one message.
type ResponseBundle struct {
	Reply      string    `json:"response"`
	Mood       MoodLabel `json:"state"`
	Advice     string    `json:"advice,omitempty"`
	Support    string    `json:"support,omitempty"`
	Harassment bool      `json:"harassment"`
	Sensitive  bool      `json:"sensitive"`
	TopicScore float64   `json:"topic_score"`
}

// ComposeInput carries everything the composer looks at.
type ComposeInput struct {
	Mood               MoodLabel
	ResponseType       ResponseType
	StreakCount        int
	PreviousMood       MoodLabel
	RecentBotResponses []string // oldest first
	Harassment         bool
	Sensitive          bool
	TopicScore         float64
}

// ComposerConfig controls the escalation ladder.
type ComposerConfig struct {
	CheckInStreak    int `yaml:"checkInStreak"`    // soft check-in at exactly this streak, default 3
	EscalationStreak int `yaml:"escalationStreak"` // escalate at or above this streak, default 4
}

// DefaultComposerConfig returns the standard ladder.
func DefaultComposerConfig() ComposerConfig {
	return ComposerConfig{
		CheckInStreak:    DefaultCheckInStreak,
		EscalationStreak: DefaultEscalationStreak,
	}
}

// ResponseComposer builds replies. Template, question and advice picks are
// uniform random draws; no repetition guarantee.
type ResponseComposer struct {
	config ComposerConfig
	mu     sync.Mutex
	rng    *rand.Rand
}

// NewResponseComposer creates a composer. A nil rng seeds one from the clock.
func NewResponseComposer(config ComposerConfig, rng *rand.Rand) *ResponseComposer {
	if config.CheckInStreak <= 0 {
		config.CheckInStreak = DefaultCheckInStreak
	}
	if config.EscalationStreak <= 0 {
		config.EscalationStreak = DefaultEscalationStreak
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ResponseComposer{config: config, rng: rng}
}

func (c *ResponseComposer) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return options[c.rng.Intn(len(options))]
}

// Compose assembles the reply for one turn.
func (c *ResponseComposer) Compose(in ComposeInput) ResponseBundle {
	if in.Sensitive {
		return ResponseBundle{
			Reply:      sensitiveReply,
			Mood:       in.Mood,
			Support:    SupportCrisisLine,
			Sensitive:  true,
			TopicScore: in.TopicScore,
		}
	}

	var b strings.Builder
	var support string
	switch {
	case in.StreakCount >= c.config.EscalationStreak:
		b.WriteString(escalationReply)
		support = SupportMentalHealth
	case in.StreakCount == c.config.CheckInStreak:
		b.WriteString(checkInReply)
	default:
		b.WriteString(c.templateReply(in.Mood, in.ResponseType))
	}

	if in.PreviousMood != "" && in.PreviousMood != in.Mood {
		fmt.Fprintf(&b, stateChangedNote, in.PreviousMood.DisplayName())
	}

	b.WriteString(trendNote(in.RecentBotResponses, in.Mood))

	if in.Harassment {
		b.WriteString(harassmentNote)
		if support == "" {
			support = SupportHarassmentDesk
		}
	}

	advice, adviceSupport := c.ProvideAdvice(in.Mood)

	switch {
	case in.TopicScore < TopicDriftThreshold:
		b.WriteString(topicDriftNote)
	case in.TopicScore > TopicContinuityThreshold:
		b.WriteString(topicContinueNote)
	}

	if support == "" {
		support = adviceSupport
	}
	return ResponseBundle{
		Reply:      b.String(),
		Mood:       in.Mood,
		Advice:     advice,
		Support:    support,
		Harassment: in.Harassment,
		TopicScore: in.TopicScore,
	}
}

// templateReply picks a template for mood × response type and, for Positive
// and Neutral moods, appends a follow-up question.
func (c *ResponseComposer) templateReply(mood MoodLabel, rt ResponseType) string {
	byType, ok := replyTemplates[mood]
	if !ok {
		byType = replyTemplates[MoodNeutral]
	}
	options, ok := byType[rt]
	if !ok {
		options = replyTemplates[MoodNeutral][ResponseEmpathy]
	}
	base := c.pick(options)
	if mood == MoodPositive || mood == MoodNeutral {
		return base + " " + c.pick(followUpQuestions)
	}
	return base
}

// ProvideAdvice returns an advice line for mood and, for Stressed, a support resource.
func (c *ResponseComposer) ProvideAdvice(mood MoodLabel) (string, string) {
	switch mood {
	case MoodStressed:
		return c.pick(adviceByMood[MoodStressed]), SupportMentalHealth
	case MoodPositive:
		return c.pick(adviceByMood[MoodPositive]), ""
	default:
		return c.pick(adviceByMood[MoodNeutral]), ""
	}
}

// trendNote inspects the two most recent prior bot responses.
func trendNote(recent []string, mood MoodLabel) string {
	if len(recent) < 2 || mood != MoodStressed {
		return ""
	}
	last := recent[len(recent)-1]
	secondLast := recent[len(recent)-2]
	switch {
	case strings.Contains(secondLast, stressMarker) && strings.Contains(last, stressMarker):
		return sustainedNote
	case strings.Contains(secondLast, positiveMarker):
		return moodDroppedNote
	}
	return ""
}
