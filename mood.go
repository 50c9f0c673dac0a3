package moodtrack

import "fmt"

// MoodLabel is the three-way psychological state assigned to every message.
type MoodLabel string

const (
	MoodStressed MoodLabel = "stressed"
	MoodPositive MoodLabel = "positive"
	MoodNeutral  MoodLabel = "neutral"
)

var moodDisplayNames = map[MoodLabel]string{
	MoodStressed: "ストレスが高い",
	MoodPositive: "気分が良い",
	MoodNeutral:  "普通",
}

// DisplayName returns the Japanese label shown to users and embedded in replies.
func (m MoodLabel) DisplayName() string {
	if s, ok := moodDisplayNames[m]; ok {
		return s
	}
	return moodDisplayNames[MoodNeutral]
}

// Valid reports whether m is one of the three labels.
func (m MoodLabel) Valid() bool {
	_, ok := moodDisplayNames[m]
	return ok
}

// ParseMoodLabel accepts either the identifier or the Japanese display name.
// The empty string parses as Neutral, the default state of a new session.
func ParseMoodLabel(s string) (MoodLabel, error) {
	if s == "" {
		return MoodNeutral, nil
	}
	if m := MoodLabel(s); m.Valid() {
		return m, nil
	}
	for m, name := range moodDisplayNames {
		if name == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mood label %q", s)
}
