package moodtrack

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddlewarePipeline_Order(t *testing.T) {
	p := NewMiddlewarePipeline()
	var order []string
	p.Use(func(mc *MiddlewareContext, next NextFunc) {
		order = append(order, "a-before")
		next()
		order = append(order, "a-after")
	})
	p.Use(func(mc *MiddlewareContext, next NextFunc) {
		order = append(order, "b-before")
		next()
		order = append(order, "b-after")
	})
	assert.Equal(t, 2, p.Len())

	p.Execute(&MiddlewareContext{}, func() { order = append(order, "core") })
	assert.Equal(t, []string{"a-before", "b-before", "core", "b-after", "a-after"}, order)
}

func TestMiddlewarePipeline_Empty(t *testing.T) {
	called := false
	NewMiddlewarePipeline().Execute(&MiddlewareContext{}, func() { called = true })
	assert.True(t, called)
}

func TestAssistant_MiddlewareRewritesMessage(t *testing.T) {
	a, _ := newTestAssistant(t, DefaultConfig(), &spaceTokenizer{})
	a.Use(func(mc *MiddlewareContext, next NextFunc) {
		mc.Message = "つかれた"
		next()
	})

	b, err := a.HandleMessage(context.Background(), "s1", "こんにちは")
	require.NoError(t, err)
	assert.Equal(t, MoodStressed, b.Mood)
}

func TestAssistant_MiddlewareIntercepts(t *testing.T) {
	a, repo := newTestAssistant(t, DefaultConfig(), &spaceTokenizer{})
	a.Use(func(mc *MiddlewareContext, next NextFunc) {
		if mc.SessionID == "blocked" {
			return
		}
		next()
	})

	_, err := a.HandleMessage(context.Background(), "blocked", "つかれた")
	assert.ErrorIs(t, err, ErrIntercepted)
	_, err = repo.Load(context.Background(), "blocked")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = a.HandleMessage(context.Background(), "open", "つかれた")
	assert.NoError(t, err)
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	a, _ := newTestAssistant(t, DefaultConfig(), &spaceTokenizer{})
	a.Use(LoggingMiddleware(zap.New(core)))

	_, err := a.HandleMessage(context.Background(), "s1", "つかれた")
	require.NoError(t, err)
	_, err = a.HandleMessage(context.Background(), "s1", "  ")
	require.ErrorIs(t, err, ErrEmptyMessage)

	require.Equal(t, 1, logs.FilterMessage("message done").Len())
	failed := logs.FilterMessage("message failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "s1", failed[0].ContextMap()["session_id"])
}
