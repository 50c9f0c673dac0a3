package moodtrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Empty(t *testing.T) {
	n := NewNormalizer(newKagome(t), nil)
	assert.Equal(t, NormalizedText{}, n.Normalize(""))
}

func TestNormalize_NFKCAndLowercase(t *testing.T) {
	n := NewNormalizer(nil, nil)
	got := n.Normalize("ＯＫ　ｶﾀｶﾅ")
	assert.Equal(t, "OK カタカナ", got.Canonical)
	assert.Equal(t, "okかたかな", got.Folded)
}

func TestNormalize_KatakanaFolds(t *testing.T) {
	n := NewNormalizer(nil, nil)
	assert.Equal(t, "すとれすがたまる", n.Normalize("ストレスがたまる").Folded)
}

func TestNormalize_StripsWhitespace(t *testing.T) {
	n := NewNormalizer(nil, nil)
	assert.Equal(t, "もうむり", n.Normalize(" もう \t むり\n").Folded)
}

func TestNormalize_KanjiUsesReading(t *testing.T) {
	n := NewNormalizer(newKagome(t), nil)
	assert.Contains(t, n.Normalize("今日は疲れた").Folded, "つかれた")
	assert.Contains(t, n.Normalize("死にたい").Folded, "しにたい")
}

func TestNormalize_TokenizerFailureFallsBack(t *testing.T) {
	n := NewNormalizer(&spaceTokenizer{err: errTokenizerDown}, nil)
	got := n.Normalize("疲れたストレス")
	assert.Equal(t, "疲れたすとれす", got.Folded)
}

func TestFoldKeyword(t *testing.T) {
	n := NewNormalizer(newKagome(t), nil)
	assert.Equal(t, "つかれ", n.FoldKeyword("つかれ"))
	assert.Equal(t, "ぱわはら", n.FoldKeyword("パワハラ"))
	assert.Equal(t, "ぼうりょく", n.FoldKeyword("暴力"))
}
