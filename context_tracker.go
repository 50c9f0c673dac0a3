package moodtrack

import (
	"iter"

	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Context Tracker — streaks, recent trend, topic consistency
// ──────────────────────────────────────────────

const (
	DefaultTrendWindow       = 3
	DefaultTopicLimit        = 5
	DefaultKeywordTrendLimit = 10
)

// UpdateStreak returns the new consecutive-stress count.
func UpdateStreak(previous int, mood MoodLabel) int {
	if mood != MoodStressed {
		return 0
	}
	if previous < 0 {
		previous = 0
	}
	return previous + 1
}

// RecentTrend returns the bot responses of the last window turns, oldest first.
func RecentTrend(history []Turn, window int) []string {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}
	out := make([]string, 0, len(history))
	for _, t := range history {
		out = append(out, t.BotResponse)
	}
	return out
}

// TopicConsistency averages the Jaccard overlap between current and each of
// the last limit past noun sets (past is ordered oldest first). An empty past
// set scores 0. Returns 0 when current is empty or there is no past.
func TopicConsistency(current NounSet, past []NounSet, limit int) float64 {
	if len(current) == 0 {
		return 0
	}
	if limit <= 0 {
		limit = DefaultTopicLimit
	}
	if len(past) > limit {
		past = past[len(past)-limit:]
	}
	if len(past) == 0 {
		return 0
	}
	var sum float64
	for _, p := range past {
		sum += jaccard(current, p)
	}
	return sum / float64(len(past))
}

func jaccard(a, b NounSet) float64 {
	if len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// ContextTracker derives multi-turn signals from a session's history.
type ContextTracker struct {
	normalizer *Normalizer
	features   *FeatureExtractor
	topicLimit int
	logger     *zap.Logger
}

// NewContextTracker creates a tracker. topicLimit <= 0 uses DefaultTopicLimit.
func NewContextTracker(normalizer *Normalizer, features *FeatureExtractor, topicLimit int, logger *zap.Logger) *ContextTracker {
	if topicLimit <= 0 {
		topicLimit = DefaultTopicLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContextTracker{
		normalizer: normalizer,
		features:   features,
		topicLimit: topicLimit,
		logger:     logger,
	}
}

// TopicConsistencyFor scores current nouns against the user messages of
// the most recent turns of history.
func (t *ContextTracker) TopicConsistencyFor(current NounSet, history []Turn) (float64, error) {
	if len(current) == 0 {
		return 0, nil
	}
	if len(history) > t.topicLimit {
		history = history[len(history)-t.topicLimit:]
	}
	past := make([]NounSet, 0, len(history))
	for _, turn := range history {
		nouns, err := t.features.ExtractNouns(turn.UserMessage)
		if err != nil {
			return 0, err
		}
		past = append(past, nouns)
	}
	score := TopicConsistency(current, past, t.topicLimit)
	t.logger.Debug("topic consistency",
		zap.Strings("nouns", current.Sorted()),
		zap.Int("past", len(past)),
		zap.Float64("score", score),
	)
	return score, nil
}

// KeywordTrend yields, oldest to newest, how many keywords each of the last
// limit user messages contains. Messages are folded lazily as the sequence
// is consumed.
func (t *ContextTracker) KeywordTrend(history []Turn, keywords []string, limit int) iter.Seq[int] {
	if limit <= 0 {
		limit = DefaultKeywordTrendLimit
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	folded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if f := t.normalizer.FoldKeyword(kw); f != "" {
			folded = append(folded, f)
		}
	}
	set := KeywordSet{Name: "trend", Folded: folded}
	return func(yield func(int) bool) {
		for _, turn := range history {
			if !yield(set.Hits(t.normalizer.Normalize(turn.UserMessage))) {
				return
			}
		}
	}
}
