package moodtrack

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ──────────────────────────────────────────────
// Lexicon Matcher — static keyword sets
// ──────────────────────────────────────────────

//go:embed lexicon/default.yaml
var defaultLexiconYAML []byte

// LexiconSpec is the on-disk form of the four keyword sets.
type LexiconSpec struct {
	Stress     []string `yaml:"stress"`
	Positive   []string `yaml:"positive"`
	Harassment []string `yaml:"harassment"`
	Sensitive  []string `yaml:"sensitive"`
}

var (
	defaultSpecOnce sync.Once
	defaultSpec     LexiconSpec
	defaultSpecErr  error
)

// DefaultLexiconSpec returns the built-in keyword sets, parsed once per process.
func DefaultLexiconSpec() (LexiconSpec, error) {
	defaultSpecOnce.Do(func() {
		defaultSpec, defaultSpecErr = ParseLexiconSpec(defaultLexiconYAML)
	})
	return defaultSpec, defaultSpecErr
}

// ParseLexiconSpec decodes a YAML keyword file.
func ParseLexiconSpec(data []byte) (LexiconSpec, error) {
	var spec LexiconSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return LexiconSpec{}, fmt.Errorf("parse lexicon: %w", err)
	}
	if len(spec.Stress) == 0 || len(spec.Positive) == 0 {
		return LexiconSpec{}, errors.New("parse lexicon: stress and positive sets must not be empty")
	}
	return spec, nil
}

// LoadLexiconSpec reads a YAML keyword file. An empty path returns the built-in sets.
func LoadLexiconSpec(path string) (LexiconSpec, error) {
	if path == "" {
		return DefaultLexiconSpec()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return LexiconSpec{}, fmt.Errorf("read lexicon: %w", err)
	}
	return ParseLexiconSpec(b)
}

// KeywordSet is one compiled keyword list. Raw keeps the keywords as written,
// Folded holds them folded the way messages are.
type KeywordSet struct {
	Name   string
	Raw    []string
	Folded []string
}

// Matches reports whether the folded message contains any folded keyword.
func (s KeywordSet) Matches(text NormalizedText) bool {
	return MatchAny(text.Folded, s.Folded)
}

// Hits counts the folded keywords contained in the folded message.
func (s KeywordSet) Hits(text NormalizedText) int {
	n := 0
	for _, kw := range s.Folded {
		if kw != "" && strings.Contains(text.Folded, kw) {
			n++
		}
	}
	return n
}

// MatchAny reports whether folded contains any of the keywords.
func MatchAny(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// Lexicon holds the compiled keyword sets. It is immutable after CompileLexicon
// and shared read-only.
type Lexicon struct {
	Stress     KeywordSet
	Positive   KeywordSet
	Harassment KeywordSet
	Sensitive  KeywordSet
}

// CompileLexicon folds every keyword with n.
func CompileLexicon(spec LexiconSpec, n *Normalizer) *Lexicon {
	compile := func(name string, raw []string) KeywordSet {
		set := KeywordSet{Name: name, Raw: make([]string, 0, len(raw)), Folded: make([]string, 0, len(raw))}
		for _, kw := range raw {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			set.Raw = append(set.Raw, kw)
			set.Folded = append(set.Folded, n.FoldKeyword(kw))
		}
		return set
	}
	return &Lexicon{
		Stress:     compile("stress", spec.Stress),
		Positive:   compile("positive", spec.Positive),
		Harassment: compile("harassment", spec.Harassment),
		Sensitive:  compile("sensitive", spec.Sensitive),
	}
}

// MatchSensitive checks the folded message against the folded keywords and,
// additionally, the lower-cased canonical text against the raw keywords.
// The second check catches keywords whose kanji fold ambiguously.
func (l *Lexicon) MatchSensitive(text NormalizedText) (string, bool) {
	canonical := strings.ToLower(text.Canonical)
	for i, kw := range l.Sensitive.Raw {
		if strings.Contains(canonical, strings.ToLower(kw)) {
			return kw, true
		}
		if f := l.Sensitive.Folded[i]; f != "" && strings.Contains(text.Folded, f) {
			return kw, true
		}
	}
	return "", false
}
