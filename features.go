package moodtrack

import (
	"sort"
	"strings"
)

// NounSet is a set of noun surface forms.
type NounSet map[string]struct{}

// NewNounSet builds a set from words.
func NewNounSet(words ...string) NounSet {
	s := make(NounSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Sorted returns the nouns in sorted order.
func (s NounSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// commonNounSubclasses are the IPA noun subclasses treated as topic-bearing.
// Proper nouns, pronouns, numbers, suffixes and dependent nouns are excluded.
var commonNounSubclasses = map[string]bool{
	"一般":      true,
	"サ変接続":    true,
	"形容動詞語幹":  true,
	"ナイ形容詞語幹": true,
	"副詞可能":    true,
}

// FeatureExtractor derives nouns and an emotion verdict from raw text.
type FeatureExtractor struct {
	tok   Tokenizer
	model EmotionModel
}

// NewFeatureExtractor wires a tokenizer and an emotion model.
func NewFeatureExtractor(tok Tokenizer, model EmotionModel) *FeatureExtractor {
	return &FeatureExtractor{tok: tok, model: model}
}

// ExtractNouns returns the common nouns of text. Blank text yields an empty set.
func (f *FeatureExtractor) ExtractNouns(text string) (NounSet, error) {
	tokens, err := f.tokenize(text)
	if err != nil {
		return nil, err
	}
	return nounsOf(tokens), nil
}

// ExtractEmotionVerdict runs the emotion model over the tokens of text.
func (f *FeatureExtractor) ExtractEmotionVerdict(text string) (EmotionVerdict, error) {
	tokens, err := f.tokenize(text)
	if err != nil {
		return EmotionVerdict{}, err
	}
	return f.verdictOf(tokens)
}

// Extract tokenizes once and returns both features.
func (f *FeatureExtractor) Extract(text string) (NounSet, EmotionVerdict, error) {
	tokens, err := f.tokenize(text)
	if err != nil {
		return nil, EmotionVerdict{}, err
	}
	v, err := f.verdictOf(tokens)
	if err != nil {
		return nil, EmotionVerdict{}, err
	}
	return nounsOf(tokens), v, nil
}

func (f *FeatureExtractor) tokenize(text string) ([]Token, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	tokens, err := f.tok.Tokenize(text)
	if err != nil {
		return nil, &TokenizationError{Stage: "tokenize", Err: err}
	}
	return tokens, nil
}

func (f *FeatureExtractor) verdictOf(tokens []Token) (EmotionVerdict, error) {
	if len(tokens) == 0 || f.model == nil {
		return NewEmotionVerdict(), nil
	}
	v, err := f.model.Analyze(tokens)
	if err != nil {
		return EmotionVerdict{}, &TokenizationError{Stage: "emotion", Err: err}
	}
	return v, nil
}

func nounsOf(tokens []Token) NounSet {
	nouns := NewNounSet()
	for _, t := range tokens {
		if !t.IsNoun() || strings.TrimSpace(t.Surface) == "" {
			continue
		}
		if len(t.POS) > 1 && !commonNounSubclasses[t.POS[1]] {
			continue
		}
		nouns[t.Surface] = struct{}{}
	}
	return nouns
}
