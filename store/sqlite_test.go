package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	moodtrack "github.com/cyberFlowTech/moodtrack-go"
)

func newSQLiteRepo(t *testing.T) *SQLiteSessionRepository {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	repo, err := NewSQLiteSessionRepository(db)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteSessionRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	_, err := repo.Load(ctx, "s1")
	assert.ErrorIs(t, err, moodtrack.ErrSessionNotFound)

	now := time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)
	sess := moodtrack.NewSessionContext("s1")
	sess.Advance(moodtrack.MoodStressed, now)
	sess.Advance(moodtrack.MoodStressed, now)
	require.NoError(t, repo.Save(ctx, sess))

	loaded, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.StressCount)
	assert.Equal(t, moodtrack.MoodStressed, loaded.PreviousMood)
	assert.Equal(t, moodtrack.ResponseEmpathy, loaded.Profile.ResponseType)
	assert.Empty(t, loaded.Profile.Department)
	assert.True(t, now.Equal(loaded.UpdatedAt))

	sess.Profile = moodtrack.Profile{Department: "木材部", AgeGroup: "50代", ResponseType: moodtrack.ResponseAdvice}
	sess.Advance(moodtrack.MoodPositive, now.Add(time.Hour))
	require.NoError(t, repo.Save(ctx, sess))

	loaded, err = repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, loaded.StressCount)
	assert.Equal(t, moodtrack.MoodPositive, loaded.LastMood)
	assert.Equal(t, sess.Profile, loaded.Profile)
}

func TestSQLiteSessionRepository_Turns(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)
	base := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	for i, msg := range []string{"a", "b", "c"} {
		require.NoError(t, repo.AppendTurn(ctx, "s1", moodtrack.Turn{
			UserMessage:    msg,
			BotResponse:    "re:" + msg,
			Mood:           moodtrack.MoodStressed,
			HarassmentFlag: msg == "b",
			Department:     "営業部",
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.AppendTurn(ctx, "s2", moodtrack.Turn{UserMessage: "other", Timestamp: base}))

	turns, err := repo.RecentTurns(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "a", turns[0].UserMessage)
	assert.Equal(t, "re:c", turns[2].BotResponse)
	assert.True(t, turns[1].HarassmentFlag)
	assert.Equal(t, "営業部", turns[0].Department)
	assert.Equal(t, moodtrack.MoodStressed, turns[0].Mood)
	assert.True(t, base.Add(2*time.Minute).Equal(turns[2].Timestamp))

	turns, err = repo.RecentTurns(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "b", turns[0].UserMessage)

	turns, err = repo.RecentTurns(ctx, "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSQLiteSessionRepository_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chat.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	repo, err := NewSQLiteSessionRepository(db, SQLiteStoreConfig{Prefix: "mt_", AutoMigrate: true})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, moodtrack.NewSessionContext("s1")))
	require.NoError(t, repo.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	repo, err = NewSQLiteSessionRepository(db, SQLiteStoreConfig{Prefix: "mt_", AutoMigrate: true})
	require.NoError(t, err)
	defer repo.Close()

	loaded, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, moodtrack.MoodNeutral, loaded.LastMood)
}

func TestSQLiteSessionRepository_WithAssistant(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)
	a, err := moodtrack.NewAssistant(moodtrack.DefaultConfig(), repo)
	require.NoError(t, err)

	b, err := a.HandleMessage(ctx, "s1", "上司にパワハラを受けています")
	require.NoError(t, err)
	assert.True(t, b.Harassment)

	notices, err := repo.RecentTurns(ctx, moodtrack.AdminNoticeSessionID, 0)
	require.NoError(t, err)
	assert.Len(t, notices, 1)
}
