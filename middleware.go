package moodtrack

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Middleware — Onion-model pipeline around HandleMessage
// ──────────────────────────────────────────────
//
// Each middleware wraps the next layer. Call next() to proceed;
// skip it to intercept the message.
//
// Usage:
//
//	assistant.Use(func(mc *moodtrack.MiddlewareContext, next moodtrack.NextFunc) {
//	    start := time.Now()
//	    next()
//	    log.Println(mc.SessionID, time.Since(start))
//	})

// NextFunc proceeds to the next middleware or the core handler.
type NextFunc func()

// MiddlewareFunc is the signature for all middleware functions.
type MiddlewareFunc func(mc *MiddlewareContext, next NextFunc)

// MiddlewareContext is the shared state flowing through the pipeline.
type MiddlewareContext struct {
	Ctx       context.Context
	SessionID string
	// Message may be rewritten before next() is called.
	Message string
	// Bundle and Err hold the outcome once the core handler has run.
	Bundle *ResponseBundle
	Err    error
	// Extra is an arbitrary map for middleware to attach/read data.
	Extra map[string]any
	// Handled is set to true when the core handler has been reached.
	Handled bool
}

// MiddlewarePipeline builds and executes an onion-model call chain.
type MiddlewarePipeline struct {
	middlewares []MiddlewareFunc
}

// NewMiddlewarePipeline creates an empty pipeline.
func NewMiddlewarePipeline() *MiddlewarePipeline {
	return &MiddlewarePipeline{}
}

// Use appends a middleware to the pipeline.
func (p *MiddlewarePipeline) Use(mw MiddlewareFunc) {
	p.middlewares = append(p.middlewares, mw)
}

// Len returns the number of registered middlewares.
func (p *MiddlewarePipeline) Len() int {
	return len(p.middlewares)
}

// Execute runs the full pipeline ending with coreHandler:
//
//	mw[0].before → mw[1].before → core → mw[1].after → mw[0].after
func (p *MiddlewarePipeline) Execute(mc *MiddlewareContext, coreHandler func()) {
	chain := coreHandler
	for i := len(p.middlewares) - 1; i >= 0; i-- {
		mw := p.middlewares[i]
		next := chain
		chain = func() {
			mw(mc, next)
		}
	}
	chain()
}

// LoggingMiddleware logs each handled message with its latency.
func LoggingMiddleware(logger *zap.Logger) MiddlewareFunc {
	return func(mc *MiddlewareContext, next NextFunc) {
		start := time.Now()
		next()
		fields := []zap.Field{
			zap.String("session_id", mc.SessionID),
			zap.Duration("elapsed", time.Since(start)),
		}
		if mc.Err != nil {
			logger.Warn("message failed", append(fields, zap.Error(mc.Err))...)
			return
		}
		if mc.Bundle != nil {
			fields = append(fields, zap.String("mood", string(mc.Bundle.Mood)))
		}
		logger.Debug("message done", fields...)
	}
}
