package chatanalysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

// A ChatMessage represents one ingested transcript row. Messages are
// immutable: they are created once by the ingestion collaborator and
// never mutated by the pipeline.
type ChatMessage struct {
	SenderIsSelf bool      `json:"is_sender"`
	Text         string    `json:"content"`
	Timestamp    time.Time `json:"time"`
}

// A Token is either a content keyword or an emoji tag produced by the
// tokenizer. Emoji tokens carry the resolved tag name in Text and, when
// the tag could be matched against the symbol table, a canonical symbol.
type Token struct {
	Text    string // keyword text, or the emoji tag name
	IsEmoji bool   // true for bracket-tag emoji tokens
	Symbol  string // canonical emoji symbol; empty when unresolved
}

// Cohort partitions messages by participant.
type Cohort int

const (
	CohortAll Cohort = iota
	CohortSender
	CohortReceiver
)

// String returns the cohort's report key.
func (c Cohort) String() string {
	switch c {
	case CohortSender:
		return "sender"
	case CohortReceiver:
		return "receiver"
	default:
		return "all"
	}
}

// Emotion enumerates the closed category set. The set is fixed: scoring
// never adds or removes categories.
type Emotion int

const (
	Joy Emotion = iota
	Love
	Surprise
	Sadness
	Anger
	Fear
	numEmotions
)

var emotionNames = [numEmotions]string{"joy", "love", "surprise", "sadness", "anger", "fear"}

// String returns the category's canonical name.
func (e Emotion) String() string {
	if e < 0 || e >= numEmotions {
		return fmt.Sprintf("emotion(%d)", int(e))
	}
	return emotionNames[e]
}

// Emotions lists all categories in canonical order.
func Emotions() []Emotion {
	return []Emotion{Joy, Love, Surprise, Sadness, Anger, Fear}
}

// positiveEmotions and negativeEmotions split the category set for
// polarity adjustments and the summary tone classification.
var (
	positiveEmotions = []Emotion{Joy, Love, Surprise}
	negativeEmotions = []Emotion{Sadness, Anger, Fear}
)

// EmotionScores holds one nonnegative value per category. The fixed
// array representation guarantees every category is always present.
type EmotionScores [numEmotions]float64

// Get returns the score for a category.
func (s EmotionScores) Get(e Emotion) float64 {
	return s[e]
}

// Max returns the largest category value.
func (s EmotionScores) Max() float64 {
	return floats.Max(s[:])
}

// Sum returns the total across all categories.
func (s EmotionScores) Sum() float64 {
	return floats.Sum(s[:])
}

// MarshalJSON emits a fixed-order object keyed by category name.
func (s EmotionScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range Emotions() {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", e.String())
		v, err := json.Marshal(s[e])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the same object form. Unknown keys are ignored;
// missing categories stay zero.
func (s *EmotionScores) UnmarshalJSON(data []byte) error {
	raw := make(map[string]float64, numEmotions)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, e := range Emotions() {
		if v, ok := raw[e.String()]; ok {
			s[e] = v
		}
	}
	return nil
}

// A WordFreq is one row of a ranked frequency table.
type WordFreq struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SentimentResult is the scorer's final output: the normalized emotion
// vector plus a human-readable narrative. It is derived per analysis
// request and never persisted.
type SentimentResult struct {
	Emotions EmotionScores `json:"emotions"`
	Summary  string        `json:"summary"`
}
