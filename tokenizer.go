package moodtrack

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is a single morpheme produced by a Tokenizer.
type Token struct {
	Surface  string
	BaseForm string   // dictionary form; equals Surface for unknown words
	Reading  string   // katakana reading, "" when the dictionary has none
	POS      []string // part-of-speech hierarchy, e.g. ["名詞", "一般"]
}

// IsNoun reports whether the token is a noun of any subclass.
func (t Token) IsNoun() bool {
	return len(t.POS) > 0 && t.POS[0] == "名詞"
}

// Tokenizer splits Japanese text into morphemes.
// Implementations must be safe for concurrent use.
type Tokenizer interface {
	Tokenize(text string) ([]Token, error)
}

var (
	kagomeOnce sync.Once
	kagomeTok  *tokenizer.Tokenizer
	kagomeErr  error
)

// KagomeTokenizer is a Tokenizer backed by kagome with the IPA dictionary.
// The dictionary is loaded once per process and shared read-only.
type KagomeTokenizer struct {
	t *tokenizer.Tokenizer
}

// NewKagomeTokenizer returns a tokenizer sharing the process-wide IPA dictionary.
func NewKagomeTokenizer() (*KagomeTokenizer, error) {
	kagomeOnce.Do(func() {
		kagomeTok, kagomeErr = tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	})
	if kagomeErr != nil {
		return nil, fmt.Errorf("init kagome: %w", kagomeErr)
	}
	return &KagomeTokenizer{t: kagomeTok}, nil
}

// Tokenize runs kagome in normal mode. Blank input yields no tokens.
func (k *KagomeTokenizer) Tokenize(text string) (tokens []Token, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if k == nil || k.t == nil {
		return nil, errors.New("kagome tokenizer not initialized")
	}
	defer func() {
		if r := recover(); r != nil {
			tokens = nil
			err = fmt.Errorf("kagome panic: %v", r)
		}
	}()

	ktoks := k.t.Tokenize(text)
	tokens = make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		base, ok := kt.BaseForm()
		if !ok || base == "" || base == "*" {
			base = kt.Surface
		}
		reading, ok := kt.Reading()
		if !ok || reading == "*" {
			reading = ""
		}
		tokens = append(tokens, Token{
			Surface:  kt.Surface,
			BaseForm: base,
			Reading:  reading,
			POS:      kt.POS(),
		})
	}
	return tokens, nil
}
