package moodtrack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNouns_Kagome(t *testing.T) {
	f := NewFeatureExtractor(newKagome(t), nil)

	nouns, err := f.ExtractNouns("会議の資料")
	require.NoError(t, err)
	assert.Equal(t, []string{"会議", "資料"}, nouns.Sorted())
}

func TestExtractNouns_SkipsNonCommonNouns(t *testing.T) {
	tok := &spaceTokenizer{pos: map[string][]string{
		"東京": {"名詞", "固有名詞", "地域"},
		"私":  {"名詞", "代名詞", "一般"},
		"へ":  {"助詞", "格助詞"},
	}}
	f := NewFeatureExtractor(tok, nil)

	nouns, err := f.ExtractNouns("私 東京 へ 出張")
	require.NoError(t, err)
	assert.Equal(t, []string{"出張"}, nouns.Sorted())
}

func TestExtract_BlankInput(t *testing.T) {
	model := &fixedEmotionModel{verdict: NewEmotionVerdict(EmotionJoy)}
	f := NewFeatureExtractor(&spaceTokenizer{err: errTokenizerDown}, model)

	nouns, v, err := f.Extract("  \n")
	require.NoError(t, err)
	assert.Empty(t, nouns)
	assert.Equal(t, 0, v.Len())
	assert.Zero(t, model.calls.Load())
}

func TestExtract_Errors(t *testing.T) {
	f := NewFeatureExtractor(&spaceTokenizer{err: errTokenizerDown}, nil)
	_, _, err := f.Extract("会議")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenization)
	assert.ErrorIs(t, err, errTokenizerDown)

	var te *TokenizationError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "tokenize", te.Stage)

	modelErr := errors.New("model down")
	f = NewFeatureExtractor(&spaceTokenizer{}, &fixedEmotionModel{err: modelErr})
	_, err = f.ExtractEmotionVerdict("会議")
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "emotion", te.Stage)
	assert.ErrorIs(t, err, modelErr)
}
