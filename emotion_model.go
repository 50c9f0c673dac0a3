package moodtrack

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ──────────────────────────────────────────────
// Emotion model — ML-Ask style expression lexicon over token base forms
// ──────────────────────────────────────────────

// EmotionCategory is one of the ten emotion classes of the emotion model.
type EmotionCategory string

const (
	EmotionJoy        EmotionCategory = "joy"
	EmotionAnger      EmotionCategory = "anger"
	EmotionSadness    EmotionCategory = "sadness"
	EmotionFear       EmotionCategory = "fear"
	EmotionShame      EmotionCategory = "shame"
	EmotionLike       EmotionCategory = "like"
	EmotionDislike    EmotionCategory = "dislike"
	EmotionExcitement EmotionCategory = "excitement"
	EmotionRelief     EmotionCategory = "relief"
	EmotionSurprise   EmotionCategory = "surprise"
)

var (
	// StressAligned categories push the classifier towards Stressed.
	StressAligned = []EmotionCategory{EmotionAnger, EmotionFear, EmotionDislike, EmotionSadness}
	// PositiveAligned categories push the classifier towards Positive.
	PositiveAligned = []EmotionCategory{EmotionJoy, EmotionRelief, EmotionLike}
)

// EmotionVerdict is the set of categories detected in one message.
// The zero value is an empty verdict.
type EmotionVerdict struct {
	cats map[EmotionCategory]struct{}
}

// NewEmotionVerdict builds a verdict from categories.
func NewEmotionVerdict(cats ...EmotionCategory) EmotionVerdict {
	v := EmotionVerdict{cats: make(map[EmotionCategory]struct{}, len(cats))}
	for _, c := range cats {
		v.cats[c] = struct{}{}
	}
	return v
}

func (v EmotionVerdict) Len() int { return len(v.cats) }

func (v EmotionVerdict) Has(c EmotionCategory) bool {
	_, ok := v.cats[c]
	return ok
}

// Intersects reports whether any of cats is in the verdict.
func (v EmotionVerdict) Intersects(cats []EmotionCategory) bool {
	for _, c := range cats {
		if v.Has(c) {
			return true
		}
	}
	return false
}

// Only reports whether the verdict is exactly {c}.
func (v EmotionVerdict) Only(c EmotionCategory) bool {
	return v.Len() == 1 && v.Has(c)
}

// Categories returns the categories in sorted order.
func (v EmotionVerdict) Categories() []EmotionCategory {
	out := make([]EmotionCategory, 0, len(v.cats))
	for c := range v.cats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (v EmotionVerdict) String() string {
	cats := v.Categories()
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// EmotionModel maps a token sequence to an EmotionVerdict.
// Implementations must be deterministic and safe for concurrent use.
type EmotionModel interface {
	Analyze(tokens []Token) (EmotionVerdict, error)
}

//go:embed lexicon/emotions.yaml
var defaultEmotionYAML []byte

// EmotionLexiconSpec is the on-disk form of the emotion lexicon.
type EmotionLexiconSpec struct {
	Categories map[EmotionCategory][]string        `yaml:"categories"`
	Negation   map[EmotionCategory]EmotionCategory `yaml:"negation"`
	Negators   []string                            `yaml:"negators"`
}

var (
	defaultEmotionOnce sync.Once
	defaultEmotionSpec EmotionLexiconSpec
	defaultEmotionErr  error
)

// DefaultEmotionLexiconSpec returns the built-in emotion lexicon.
func DefaultEmotionLexiconSpec() (EmotionLexiconSpec, error) {
	defaultEmotionOnce.Do(func() {
		defaultEmotionErr = yaml.Unmarshal(defaultEmotionYAML, &defaultEmotionSpec)
		if defaultEmotionErr != nil {
			defaultEmotionErr = fmt.Errorf("parse emotion lexicon: %w", defaultEmotionErr)
		}
	})
	return defaultEmotionSpec, defaultEmotionErr
}

// LoadEmotionLexiconSpec reads an emotion lexicon file; "" means built-in.
func LoadEmotionLexiconSpec(path string) (EmotionLexiconSpec, error) {
	if path == "" {
		return DefaultEmotionLexiconSpec()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return EmotionLexiconSpec{}, fmt.Errorf("read emotion lexicon: %w", err)
	}
	var spec EmotionLexiconSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return EmotionLexiconSpec{}, fmt.Errorf("parse emotion lexicon: %w", err)
	}
	return spec, nil
}

// negationWindow is how many tokens after an expression are searched for a negator.
const negationWindow = 3

// LexiconEmotionModel detects emotion expressions by base form and applies
// contextual valence shifting when an expression is negated.
type LexiconEmotionModel struct {
	expressions map[string]EmotionCategory
	negation    map[EmotionCategory]EmotionCategory
	negators    map[string]bool
}

// NewLexiconEmotionModel compiles an emotion lexicon.
func NewLexiconEmotionModel(spec EmotionLexiconSpec) *LexiconEmotionModel {
	m := &LexiconEmotionModel{
		expressions: make(map[string]EmotionCategory),
		negation:    spec.Negation,
		negators:    make(map[string]bool, len(spec.Negators)),
	}
	for cat, words := range spec.Categories {
		for _, w := range words {
			m.expressions[w] = cat
		}
	}
	for _, n := range spec.Negators {
		m.negators[n] = true
	}
	return m
}

// Analyze never fails; the error return satisfies EmotionModel.
func (m *LexiconEmotionModel) Analyze(tokens []Token) (EmotionVerdict, error) {
	v := NewEmotionVerdict()
	for i, t := range tokens {
		cat, ok := m.lookup(t)
		if !ok {
			continue
		}
		if m.negatedAt(tokens, i) {
			shifted, ok := m.negation[cat]
			if !ok || shifted == "" {
				continue
			}
			cat = shifted
		}
		v.cats[cat] = struct{}{}
	}
	return v, nil
}

func (m *LexiconEmotionModel) lookup(t Token) (EmotionCategory, bool) {
	if cat, ok := m.expressions[t.BaseForm]; ok {
		return cat, true
	}
	cat, ok := m.expressions[t.Surface]
	return cat, ok
}

func (m *LexiconEmotionModel) negatedAt(tokens []Token, i int) bool {
	for j := i + 1; j < len(tokens) && j <= i+negationWindow; j++ {
		t := tokens[j]
		if len(t.POS) > 0 && t.POS[0] == "記号" {
			return false
		}
		if m.negators[t.BaseForm] && isAuxiliaryOrAdjective(t) {
			return true
		}
	}
	return false
}

func isAuxiliaryOrAdjective(t Token) bool {
	if len(t.POS) == 0 {
		return true
	}
	switch t.POS[0] {
	case "助動詞", "形容詞":
		return true
	}
	return false
}
