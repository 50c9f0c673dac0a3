package moodtrack

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// spaceTokenizer splits on whitespace and attaches readings from a fixed table.
type spaceTokenizer struct {
	readings map[string]string
	pos      map[string][]string
	err      error
}

func (s *spaceTokenizer) Tokenize(text string) ([]Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []Token
	for _, w := range strings.Fields(text) {
		pos := s.pos[w]
		if pos == nil {
			pos = []string{"名詞", "一般"}
		}
		out = append(out, Token{Surface: w, BaseForm: w, Reading: s.readings[w], POS: pos})
	}
	return out, nil
}

// fixedEmotionModel returns the same verdict for every input.
type fixedEmotionModel struct {
	verdict EmotionVerdict
	err     error
	calls   atomic.Int32
}

func (f *fixedEmotionModel) Analyze([]Token) (EmotionVerdict, error) {
	f.calls.Add(1)
	return f.verdict, f.err
}

var errTokenizerDown = errors.New("tokenizer down")

func newKagome(t *testing.T) *KagomeTokenizer {
	t.Helper()
	k, err := NewKagomeTokenizer()
	require.NoError(t, err)
	return k
}

// newFakeClassifier wires a classifier over the default lexicon with fakes.
func newFakeClassifier(t *testing.T, tok Tokenizer, model EmotionModel) (*MoodClassifier, *Lexicon) {
	t.Helper()
	spec, err := DefaultLexiconSpec()
	require.NoError(t, err)
	n := NewNormalizer(tok, nil)
	lex := CompileLexicon(spec, n)
	return NewMoodClassifier(n, lex, NewFeatureExtractor(tok, model), nil), lex
}
