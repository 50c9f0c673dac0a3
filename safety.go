package moodtrack

import (
	"fmt"

	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Safety detectors — sensitive (crisis) and harassment signals
// ──────────────────────────────────────────────

// SensitiveContentDetected describes a sensitive-keyword hit.
type SensitiveContentDetected struct {
	Keyword string
}

func (e *SensitiveContentDetected) Error() string {
	return fmt.Sprintf("sensitive content detected: %s", e.Keyword)
}

// SafetyDetector runs the harassment and sensitive keyword checks.
// Harassment only matches the folded text; sensitive content also matches
// the canonical text.
type SafetyDetector struct {
	normalizer *Normalizer
	lexicon    *Lexicon
	logger     *zap.Logger
}

// NewSafetyDetector creates a detector over a compiled lexicon.
func NewSafetyDetector(normalizer *Normalizer, lexicon *Lexicon, logger *zap.Logger) *SafetyDetector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SafetyDetector{normalizer: normalizer, lexicon: lexicon, logger: logger}
}

// DetectHarassment reports whether the message contains a harassment keyword.
func (d *SafetyDetector) DetectHarassment(message string) bool {
	return d.lexicon.Harassment.Matches(d.normalizer.Normalize(message))
}

// DetectSensitive reports whether the message contains a crisis keyword.
func (d *SafetyDetector) DetectSensitive(message string) bool {
	return d.CheckSensitive(message) != nil
}

// CheckSensitive returns a *SensitiveContentDetected naming the matched keyword, or nil.
func (d *SafetyDetector) CheckSensitive(message string) error {
	kw, ok := d.lexicon.MatchSensitive(d.normalizer.Normalize(message))
	if !ok {
		return nil
	}
	d.logger.Info("sensitive keyword detected", zap.String("keyword", kw))
	return &SensitiveContentDetected{Keyword: kw}
}
