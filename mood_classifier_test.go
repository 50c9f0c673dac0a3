package moodtrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		verdict  EmotionVerdict
		wantMood MoodLabel
		wantRule string
	}{
		{"stress keyword beats joy", "つかれた", NewEmotionVerdict(EmotionJoy, EmotionLike), MoodStressed, RuleStressKeyword},
		{"positive keyword beats anger", "うれしい", NewEmotionVerdict(EmotionAnger), MoodPositive, RulePositiveKeyword},
		{"stress emotion", "かいぎ", NewEmotionVerdict(EmotionFear), MoodStressed, RuleStressEmotion},
		{"stress emotion beats positive emotion", "かいぎ", NewEmotionVerdict(EmotionJoy, EmotionSadness), MoodStressed, RuleStressEmotion},
		{"joy alone stays neutral", "かいぎ", NewEmotionVerdict(EmotionJoy), MoodNeutral, RuleJoyOnly},
		{"joy with like", "かいぎ", NewEmotionVerdict(EmotionJoy, EmotionLike), MoodPositive, RulePositiveEmotion},
		{"relief", "かいぎ", NewEmotionVerdict(EmotionRelief), MoodPositive, RulePositiveEmotion},
		{"unaligned emotion", "かいぎ", NewEmotionVerdict(EmotionSurprise), MoodNeutral, RuleDefault},
		{"nothing", "かいぎ", NewEmotionVerdict(), MoodNeutral, RuleDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newFakeClassifier(t, &spaceTokenizer{}, &fixedEmotionModel{verdict: tt.verdict})
			res, err := c.ClassifyDetailed(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMood, res.Mood)
			assert.Equal(t, tt.wantRule, res.Rule)
		})
	}
}

func TestClassify_EveryStressKeywordWins(t *testing.T) {
	model := &fixedEmotionModel{verdict: NewEmotionVerdict(EmotionJoy, EmotionLike, EmotionRelief)}
	c, lex := newFakeClassifier(t, &spaceTokenizer{}, model)

	for _, kw := range lex.Stress.Raw {
		if lex.Positive.Matches(NormalizedText{Folded: kw}) {
			continue
		}
		mood, err := c.Classify(kw)
		require.NoError(t, err)
		assert.Equal(t, MoodStressed, mood, kw)
	}
}

func TestClassify_EmptyIsNeutral(t *testing.T) {
	model := &fixedEmotionModel{verdict: NewEmotionVerdict(EmotionAnger)}
	c, _ := newFakeClassifier(t, &spaceTokenizer{}, model)

	mood, err := c.Classify("")
	require.NoError(t, err)
	assert.Equal(t, MoodNeutral, mood)
	assert.Zero(t, model.calls.Load())
}

func TestClassify_Idempotent(t *testing.T) {
	c, _ := newFakeClassifier(t, &spaceTokenizer{}, &fixedEmotionModel{verdict: NewEmotionVerdict(EmotionFear)})
	first, err := c.Classify("あした の かいぎ")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := c.Classify("あした の かいぎ")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassify_TokenizerFailure(t *testing.T) {
	c, _ := newFakeClassifier(t, &spaceTokenizer{err: errTokenizerDown}, &fixedEmotionModel{})
	_, err := c.Classify("つかれた")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenization)
}

func TestClassify_ReportsFeatures(t *testing.T) {
	c, _ := newFakeClassifier(t, &spaceTokenizer{}, &fixedEmotionModel{verdict: NewEmotionVerdict(EmotionFear)})
	res, err := c.ClassifyDetailed("かいぎ しりょう")
	require.NoError(t, err)
	assert.Equal(t, []string{"かいぎ", "しりょう"}, res.Nouns.Sorted())
	assert.Equal(t, "かいぎしりょう", res.Normalized.Folded)
	assert.True(t, res.Verdict.Has(EmotionFear))
}

func TestClassify_Kagome(t *testing.T) {
	spec, err := DefaultLexiconSpec()
	require.NoError(t, err)
	emo, err := DefaultEmotionLexiconSpec()
	require.NoError(t, err)
	k := newKagome(t)
	n := NewNormalizer(k, nil)
	c := NewMoodClassifier(n, CompileLexicon(spec, n), NewFeatureExtractor(k, NewLexiconEmotionModel(emo)), nil)

	tests := []struct {
		text string
		want MoodLabel
	}{
		{"今日は本当に疲れた", MoodStressed},
		{"ストレスがたまっています", MoodStressed},
		{"上司に褒められた", MoodPositive},
		{"明日は会議があります", MoodNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			mood, err := c.Classify(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mood)
		})
	}
}

func TestMoodRules_Order(t *testing.T) {
	var names []string
	for _, r := range MoodRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		RuleStressKeyword, RulePositiveKeyword, RuleStressEmotion,
		RuleJoyOnly, RulePositiveEmotion, RuleDefault,
	}, names)
}
