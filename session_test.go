package moodtrack

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoodLabel(t *testing.T) {
	tests := []struct {
		in   string
		want MoodLabel
	}{
		{"", MoodNeutral},
		{"stressed", MoodStressed},
		{"ストレスが高い", MoodStressed},
		{"気分が良い", MoodPositive},
		{"普通", MoodNeutral},
	}
	for _, tt := range tests {
		got, err := ParseMoodLabel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseMoodLabel("angry")
	assert.Error(t, err)
	assert.Equal(t, "普通", MoodLabel("angry").DisplayName())
}

func TestProfileValidate(t *testing.T) {
	ok := Profile{Department: "営業部", AgeGroup: "20代", ResponseType: ResponseEmpathy}
	require.NoError(t, ok.Validate())
	assert.True(t, ok.Complete())

	bad := []Profile{
		{AgeGroup: "20代", ResponseType: ResponseEmpathy},
		{Department: "総務部", AgeGroup: "20代", ResponseType: ResponseEmpathy},
		{Department: "営業部", AgeGroup: "70代", ResponseType: ResponseEmpathy},
		{Department: "営業部", AgeGroup: "20代", ResponseType: "雑談"},
	}
	for _, p := range bad {
		assert.ErrorIs(t, p.Validate(), ErrInvalidProfile, "%+v", p)
	}
	assert.False(t, Profile{Department: "営業部"}.Complete())
}

func TestSessionContextAdvance(t *testing.T) {
	s := NewSessionContext("s1")
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	s.Advance(MoodStressed, now)
	s.Advance(MoodStressed, now)
	assert.Equal(t, 2, s.StressCount)
	assert.Equal(t, MoodStressed, s.PreviousMood)

	s.Advance(MoodPositive, now.Add(time.Minute))
	assert.Zero(t, s.StressCount)
	assert.Equal(t, MoodStressed, s.PreviousMood)
	assert.Equal(t, MoodPositive, s.LastMood)
	assert.Equal(t, now.Add(time.Minute), s.UpdatedAt)
}

func TestSessionContextValidate(t *testing.T) {
	s := NewSessionContext("s1")
	require.NoError(t, s.Validate())

	s.StressCount = -1
	assert.ErrorIs(t, s.Validate(), ErrInvalidSessionState)

	s = NewSessionContext("s1")
	s.LastMood = "angry"
	assert.ErrorIs(t, s.Validate(), ErrInvalidSessionState)
}

func TestInMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemorySessionRepository(3)

	_, err := repo.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	s := NewSessionContext("s1")
	s.StressCount = 2
	require.NoError(t, repo.Save(ctx, s))

	loaded, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.StressCount)

	loaded.StressCount = 9
	again, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.StressCount)

	bad := NewSessionContext("s1")
	bad.StressCount = -3
	assert.ErrorIs(t, repo.Save(ctx, bad), ErrInvalidSessionState)

	for _, msg := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.AppendTurn(ctx, "s1", Turn{UserMessage: msg}))
	}
	turns, err := repo.RecentTurns(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "b", turns[0].UserMessage)

	turns, err = repo.RecentTurns(ctx, "s1", 2)
	require.NoError(t, err)
	assert.Equal(t, "c", turns[0].UserMessage)
	assert.Equal(t, "d", turns[1].UserMessage)

	turns, err = repo.RecentTurns(ctx, "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, turns)
}
