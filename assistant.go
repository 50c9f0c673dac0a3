package moodtrack

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Assistant — classification + context + composition for one message
// ──────────────────────────────────────────────

// AdminNoticeSessionID is the pseudo-session that receives harassment notices.
const AdminNoticeSessionID = "admin-notice"

// AssistantOption customizes NewAssistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	tokenizer Tokenizer
	emotion   EmotionModel
	logger    *zap.Logger
	rng       *rand.Rand
	now       func() time.Time
}

// WithTokenizer replaces the kagome tokenizer.
func WithTokenizer(t Tokenizer) AssistantOption {
	return func(o *assistantOptions) { o.tokenizer = t }
}

// WithEmotionModel replaces the lexicon emotion model.
func WithEmotionModel(m EmotionModel) AssistantOption {
	return func(o *assistantOptions) { o.emotion = m }
}

// WithLogger sets the logger (default: no-op).
func WithLogger(l *zap.Logger) AssistantOption {
	return func(o *assistantOptions) { o.logger = l }
}

// WithRand fixes the random source used for template picks.
func WithRand(r *rand.Rand) AssistantOption {
	return func(o *assistantOptions) { o.rng = r }
}

// WithClock overrides time.Now for turn timestamps.
func WithClock(now func() time.Time) AssistantOption {
	return func(o *assistantOptions) { o.now = now }
}

// Assistant runs the full pipeline against a SessionRepository.
// Messages for the same session are processed one at a time.
type Assistant struct {
	config     Config
	repo       SessionRepository
	normalizer *Normalizer
	lexicon    *Lexicon
	features   *FeatureExtractor
	classifier *MoodClassifier
	safety     *SafetyDetector
	tracker    *ContextTracker
	composer   *ResponseComposer
	logger     *zap.Logger
	now        func() time.Time
	locks      *keyedMutex
	pipeline   *MiddlewarePipeline
}

// NewAssistant wires every component from config.
func NewAssistant(config Config, repo SessionRepository, opts ...AssistantOption) (*Assistant, error) {
	config.Defaults()
	o := assistantOptions{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tokenizer == nil {
		kt, err := NewKagomeTokenizer()
		if err != nil {
			return nil, err
		}
		o.tokenizer = kt
	}
	if o.emotion == nil {
		spec, err := LoadEmotionLexiconSpec(config.Lexicon.EmotionsPath)
		if err != nil {
			return nil, err
		}
		o.emotion = NewLexiconEmotionModel(spec)
	}
	lexSpec, err := LoadLexiconSpec(config.Lexicon.KeywordsPath)
	if err != nil {
		return nil, err
	}

	logger := o.logger.Named("moodtrack")
	normalizer := NewNormalizer(o.tokenizer, logger)
	lexicon := CompileLexicon(lexSpec, normalizer)
	features := NewFeatureExtractor(o.tokenizer, o.emotion)

	return &Assistant{
		config:     config,
		repo:       repo,
		normalizer: normalizer,
		lexicon:    lexicon,
		features:   features,
		classifier: NewMoodClassifier(normalizer, lexicon, features, logger),
		safety:     NewSafetyDetector(normalizer, lexicon, logger),
		tracker:    NewContextTracker(normalizer, features, config.Tracking.TopicLimit, logger),
		composer:   NewResponseComposer(config.Composer, o.rng),
		logger:     logger,
		now:        o.now,
		locks:      newKeyedMutex(),
		pipeline:   NewMiddlewarePipeline(),
	}, nil
}

// Classifier exposes the mood classifier.
func (a *Assistant) Classifier() *MoodClassifier { return a.classifier }

// Safety exposes the harassment/sensitive detector.
func (a *Assistant) Safety() *SafetyDetector { return a.safety }

// Tracker exposes the context tracker.
func (a *Assistant) Tracker() *ContextTracker { return a.tracker }

// Lexicon exposes the compiled keyword sets.
func (a *Assistant) Lexicon() *Lexicon { return a.lexicon }

// ClassifyMood classifies one message without touching any session.
func (a *Assistant) ClassifyMood(message string) (MoodLabel, error) {
	return a.classifier.Classify(message)
}

// Session loads a session context; unknown sessions yield a fresh context.
func (a *Assistant) Session(ctx context.Context, sessionID string) (*SessionContext, error) {
	sess, err := a.repo.Load(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return NewSessionContext(sessionID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return sess, nil
}

// SetProfile validates and stores the session's profile.
func (a *Assistant) SetProfile(ctx context.Context, sessionID string, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	unlock := a.locks.Lock(sessionID)
	defer unlock()

	sess, err := a.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.Profile = p
	sess.UpdatedAt = a.now()
	if err := a.repo.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	a.logger.Info("profile updated",
		zap.String("session_id", sessionID),
		zap.String("department", p.Department),
		zap.String("age_group", p.AgeGroup),
		zap.String("response_type", string(p.ResponseType)),
	)
	return nil
}

// Use registers a middleware around HandleMessage. Not safe to call
// concurrently with HandleMessage.
func (a *Assistant) Use(mw MiddlewareFunc) {
	a.pipeline.Use(mw)
}

// HandleMessage processes one user message end to end and persists the turn.
// A middleware that skips next() without setting a bundle yields ErrIntercepted.
func (a *Assistant) HandleMessage(ctx context.Context, sessionID, message string) (*ResponseBundle, error) {
	mc := &MiddlewareContext{
		Ctx:       ctx,
		SessionID: sessionID,
		Message:   message,
		Extra:     make(map[string]any),
	}
	a.pipeline.Execute(mc, func() {
		mc.Handled = true
		mc.Bundle, mc.Err = a.handleMessage(mc.Ctx, mc.SessionID, mc.Message)
	})
	if mc.Err != nil {
		return nil, mc.Err
	}
	if mc.Bundle == nil {
		return nil, ErrIntercepted
	}
	return mc.Bundle, nil
}

func (a *Assistant) handleMessage(ctx context.Context, sessionID, message string) (*ResponseBundle, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	unlock := a.locks.Lock(sessionID)
	defer unlock()

	sess, err := a.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if a.config.RequireProfile && !sess.Profile.Complete() {
		return nil, ErrProfileIncomplete
	}

	cls, err := a.classifier.ClassifyDetailed(message)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	now := a.now()
	sess.Advance(cls.Mood, now)
	if err := a.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session %s: %w", sessionID, err)
	}

	sensitive := a.safety.DetectSensitive(message)
	in := ComposeInput{
		Mood:         cls.Mood,
		ResponseType: sess.Profile.ResponseType,
		StreakCount:  sess.StressCount,
		PreviousMood: sess.PreviousMood,
		Sensitive:    sensitive,
	}
	if !sensitive {
		history, err := a.repo.RecentTurns(ctx, sessionID, a.config.Tracking.HistoryWindow)
		if err != nil {
			return nil, fmt.Errorf("load history %s: %w", sessionID, err)
		}
		in.RecentBotResponses = RecentTrend(history, a.config.Tracking.TrendWindow)
		in.Harassment = a.safety.DetectHarassment(message)
		in.TopicScore, err = a.tracker.TopicConsistencyFor(cls.Nouns, history)
		if err != nil {
			return nil, fmt.Errorf("topic consistency: %w", err)
		}
	}

	bundle := a.composer.Compose(in)

	turn := Turn{
		UserMessage:    message,
		BotResponse:    bundle.Reply,
		Mood:           cls.Mood,
		HarassmentFlag: bundle.Harassment,
		SensitiveFlag:  bundle.Sensitive,
		Department:     sess.Profile.Department,
		AgeGroup:       sess.Profile.AgeGroup,
		Timestamp:      now,
	}
	if err := a.repo.AppendTurn(ctx, sessionID, turn); err != nil {
		return nil, fmt.Errorf("append turn %s: %w", sessionID, err)
	}
	if bundle.Harassment {
		a.notifyAdmin(ctx, sess, message, now)
	}

	a.logger.Info("message handled",
		zap.String("session_id", sessionID),
		zap.String("mood", string(cls.Mood)),
		zap.String("rule", cls.Rule),
		zap.Int("stress_count", sess.StressCount),
		zap.Bool("sensitive", bundle.Sensitive),
		zap.Bool("harassment", bundle.Harassment),
		zap.Float64("topic_score", bundle.TopicScore),
	)
	return &bundle, nil
}

// notifyAdmin records a harassment notice. Failures are logged, not returned:
// the user's turn has already been stored.
func (a *Assistant) notifyAdmin(ctx context.Context, sess *SessionContext, message string, now time.Time) {
	notice := Turn{
		UserMessage: fmt.Sprintf("[通知] セッション %s にてハラスメント疑いの発言: %s", sess.SessionID, message),
		BotResponse: "管理統括部に通知されました。",
		Mood:        MoodStressed,
		Department:  sess.Profile.Department,
		AgeGroup:    sess.Profile.AgeGroup,
		Timestamp:   now,
	}
	if err := a.repo.AppendTurn(ctx, AdminNoticeSessionID, notice); err != nil {
		a.logger.Warn("admin notice failed", zap.String("session_id", sess.SessionID), zap.Error(err))
	}
}

// TopicConsistency scores message against the session's recent user messages.
func (a *Assistant) TopicConsistency(ctx context.Context, sessionID, message string) (float64, error) {
	nouns, err := a.features.ExtractNouns(message)
	if err != nil {
		return 0, err
	}
	history, err := a.repo.RecentTurns(ctx, sessionID, a.config.Tracking.TopicLimit)
	if err != nil {
		return 0, fmt.Errorf("load history %s: %w", sessionID, err)
	}
	return a.tracker.TopicConsistencyFor(nouns, history)
}

// KeywordTrend yields keyword-hit counts for the session's recent messages,
// oldest first. limit <= 0 uses the configured default.
func (a *Assistant) KeywordTrend(ctx context.Context, sessionID string, keywords []string, limit int) (iter.Seq[int], error) {
	if limit <= 0 {
		limit = a.config.Tracking.KeywordTrendLimit
	}
	history, err := a.repo.RecentTurns(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", sessionID, err)
	}
	return a.tracker.KeywordTrend(history, keywords, limit), nil
}

// keyedMutex serializes work per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock blocks until key is free and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
