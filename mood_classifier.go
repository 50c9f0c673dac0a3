package moodtrack

import (
	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Mood Classifier — ordered rule list, first match wins
// ──────────────────────────────────────────────

// moodSignals are the inputs every rule may inspect.
type moodSignals struct {
	text         NormalizedText
	stressWord   bool
	positiveWord bool
	verdict      EmotionVerdict
}

// MoodRule is one entry of the decision sequence.
type MoodRule struct {
	Name  string
	Mood  MoodLabel
	match func(s *moodSignals) bool
}

// Rule names, in evaluation order.
const (
	RuleStressKeyword   = "stress-keyword"
	RulePositiveKeyword = "positive-keyword"
	RuleStressEmotion   = "stress-emotion"
	RuleJoyOnly         = "joy-only"
	RulePositiveEmotion = "positive-emotion"
	RuleDefault         = "default"
)

// moodRules encodes the fusion policy: lexical cues override the emotion
// model. A verdict of exactly {joy} is kept Neutral; joy alone is too weak a
// signal to call the user positive.
var moodRules = []MoodRule{
	{Name: RuleStressKeyword, Mood: MoodStressed, match: func(s *moodSignals) bool { return s.stressWord }},
	{Name: RulePositiveKeyword, Mood: MoodPositive, match: func(s *moodSignals) bool { return s.positiveWord }},
	{Name: RuleStressEmotion, Mood: MoodStressed, match: func(s *moodSignals) bool { return s.verdict.Intersects(StressAligned) }},
	{Name: RuleJoyOnly, Mood: MoodNeutral, match: func(s *moodSignals) bool { return s.verdict.Only(EmotionJoy) }},
	{Name: RulePositiveEmotion, Mood: MoodPositive, match: func(s *moodSignals) bool { return s.verdict.Intersects(PositiveAligned) }},
	{Name: RuleDefault, Mood: MoodNeutral, match: func(*moodSignals) bool { return true }},
}

// MoodRules returns the decision sequence in evaluation order.
func MoodRules() []MoodRule {
	out := make([]MoodRule, len(moodRules))
	copy(out, moodRules)
	return out
}

// Classification is the detailed result of one classification pass.
type Classification struct {
	Mood       MoodLabel
	Rule       string
	Verdict    EmotionVerdict
	Nouns      NounSet
	Normalized NormalizedText
}

// MoodClassifier fuses lexicon hits with the emotion model.
// It holds no mutable state; Classify is a pure function of its input.
type MoodClassifier struct {
	normalizer *Normalizer
	lexicon    *Lexicon
	features   *FeatureExtractor
	logger     *zap.Logger
}

// NewMoodClassifier wires the classifier. A nil logger disables logging.
func NewMoodClassifier(normalizer *Normalizer, lexicon *Lexicon, features *FeatureExtractor, logger *zap.Logger) *MoodClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MoodClassifier{
		normalizer: normalizer,
		lexicon:    lexicon,
		features:   features,
		logger:     logger,
	}
}

// Classify returns the mood of text. The only error is a *TokenizationError.
func (c *MoodClassifier) Classify(text string) (MoodLabel, error) {
	res, err := c.ClassifyDetailed(text)
	if err != nil {
		return "", err
	}
	return res.Mood, nil
}

// ClassifyDetailed also reports which rule fired and the extracted features.
// The emotion model runs for every message, even when a keyword decides,
// so tokenizer failures always surface.
func (c *MoodClassifier) ClassifyDetailed(text string) (*Classification, error) {
	nouns, verdict, err := c.features.Extract(text)
	if err != nil {
		return nil, err
	}
	nt := c.normalizer.Normalize(text)
	sig := &moodSignals{
		text:         nt,
		stressWord:   c.lexicon.Stress.Matches(nt),
		positiveWord: c.lexicon.Positive.Matches(nt),
		verdict:      verdict,
	}

	res := &Classification{Verdict: verdict, Nouns: nouns, Normalized: nt}
	for _, r := range moodRules {
		if r.match(sig) {
			res.Mood = r.Mood
			res.Rule = r.Name
			break
		}
	}

	c.logger.Debug("mood classified",
		zap.String("folded", nt.Folded),
		zap.Stringer("emotions", verdict),
		zap.Bool("stress_keyword", sig.stressWord),
		zap.Bool("positive_keyword", sig.positiveWord),
		zap.String("rule", res.Rule),
		zap.String("mood", string(res.Mood)),
	)
	return res, nil
}
