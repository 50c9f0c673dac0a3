package moodtrack

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// ──────────────────────────────────────────────
// Text Normalizer — NFKC + phonetic folding to hiragana
// ──────────────────────────────────────────────

// NormalizedText is the per-call normalized form of a message.
//
// Canonical is the NFKC form of the input. Folded is lower-cased, has every
// kanji/katakana run replaced by its hiragana reading and contains no
// whitespace; all keyword matching runs against it.
type NormalizedText struct {
	Canonical string
	Folded    string
}

// Normalizer folds text for lexicon matching.
// It is safe for concurrent use when its Tokenizer is.
type Normalizer struct {
	tok    Tokenizer
	logger *zap.Logger
}

// NewNormalizer creates a normalizer. A nil tokenizer limits folding to
// katakana→hiragana; kanji are then left as-is.
func NewNormalizer(tok Tokenizer, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{tok: tok, logger: logger}
}

// Normalize never fails. If the tokenizer errors, kanji readings are skipped
// and only kana folding is applied.
func (n *Normalizer) Normalize(text string) NormalizedText {
	if text == "" {
		return NormalizedText{}
	}
	canonical := norm.NFKC.String(text)
	return NormalizedText{
		Canonical: canonical,
		Folded:    stripSpace(n.fold(strings.ToLower(canonical))),
	}
}

// FoldKeyword folds a lexicon keyword the same way message text is folded.
// Pure hiragana/latin keywords are only lower-cased so that the tokenizer
// cannot re-segment them.
func (n *Normalizer) FoldKeyword(keyword string) string {
	canonical := strings.ToLower(norm.NFKC.String(keyword))
	if !containsKanji(canonical) && !containsKatakana(canonical) {
		return stripSpace(canonical)
	}
	return stripSpace(n.fold(canonical))
}

func (n *Normalizer) fold(lower string) string {
	if n.tok == nil || !containsKanji(lower) {
		return katakanaToHiragana(lower)
	}
	tokens, err := n.tok.Tokenize(lower)
	if err != nil {
		n.logger.Debug("fold: tokenizer failed, using kana-only folding", zap.Error(err))
		return katakanaToHiragana(lower)
	}
	var b strings.Builder
	b.Grow(len(lower))
	for _, t := range tokens {
		if containsKanji(t.Surface) && t.Reading != "" {
			b.WriteString(katakanaToHiragana(t.Reading))
			continue
		}
		b.WriteString(katakanaToHiragana(t.Surface))
	}
	return b.String()
}

func katakanaToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x30A1 && r <= 0x30F6 {
			return r - 0x60
		}
		return r
	}, s)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func containsKanji(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func containsKatakana(s string) bool {
	for _, r := range s {
		if r >= 0x30A1 && r <= 0x30FA {
			return true
		}
	}
	return false
}
