package chatanalysis

import (
	"math"
	"strings"
	"testing"
)

func TestNormalizeEmotions(t *testing.T) {
	var raw rawEmotions
	raw.add(Joy, 2.088)

	got := normalizeEmotions(raw, 1)
	if math.Abs(got[Joy]-3.0) > 0.01 {
		t.Errorf("Joy = %.4f, want 3.0", got[Joy])
	}
	for _, e := range []Emotion{Love, Surprise, Sadness, Anger, Fear} {
		if math.Abs(got[e]-0.287) > 0.01 {
			t.Errorf("%s = %.4f, want ≈0.287 (floored then rescaled)", e, got[e])
		}
	}
}

func TestNormalizeSentenceDivisor(t *testing.T) {
	var raw rawEmotions
	raw.add(Joy, 4.0)
	raw.add(Sadness, 2.0)

	// Ten sentences divide by 5; the 2:1 ratio survives rescaling.
	got := normalizeEmotions(raw, 10)
	if math.Abs(got[Joy]-3.0) > 1e-9 {
		t.Errorf("Joy = %.4f, want ceiling 3.0", got[Joy])
	}
	if math.Abs(got[Sadness]-1.5) > 1e-9 {
		t.Errorf("Sadness = %.4f, want 1.5", got[Sadness])
	}
}

func TestNormalizeAllUntouched(t *testing.T) {
	var raw rawEmotions
	got := normalizeEmotions(raw, 0)
	// Every category floors at 0.2 and rescales to the ceiling.
	for _, e := range Emotions() {
		if math.Abs(got[e]-3.0) > 1e-9 {
			t.Errorf("%s = %.4f, want 3.0", e, got[e])
		}
	}
}

func TestNormalizeNegativeClamped(t *testing.T) {
	var raw rawEmotions
	raw.add(Joy, 1.0)
	raw.add(Anger, -0.5)

	got := normalizeEmotions(raw, 1)
	if got[Anger] != 0 {
		t.Errorf("Anger = %.4f, want 0 after clamping", got[Anger])
	}
	if math.Abs(got[Joy]-3.0) > 1e-9 {
		t.Errorf("Joy = %.4f, want 3.0", got[Joy])
	}
}

func TestFallbackResult(t *testing.T) {
	res := fallbackResult()
	if res.Summary != insufficientDataSummary {
		t.Errorf("Fallback summary = %q, want %q", res.Summary, insufficientDataSummary)
	}
	for _, e := range Emotions() {
		if res.Emotions[e] != 1.0 {
			t.Errorf("Fallback %s = %.4f, want 1.0", e, res.Emotions[e])
		}
	}
}

func TestBuildSummaryToneBands(t *testing.T) {
	neutralWords := []WordFreq{{Word: "天气", Count: 3}, {Word: "电影", Count: 2}}

	tests := []struct {
		scores   EmotionScores
		contains string
		desc     string
	}{
		{
			EmotionScores{Joy: 3.0, Love: 1.0, Surprise: 0.5, Sadness: 0.2, Anger: 0.2, Fear: 0.2},
			"积极愉快",
			"clearly positive",
		},
		{
			EmotionScores{Joy: 1.5, Love: 0.5, Surprise: 0.2, Sadness: 0.8, Anger: 0.5, Fear: 0.2},
			"较为积极",
			"moderately positive",
		},
		{
			EmotionScores{Joy: 0.2, Love: 0.2, Surprise: 0.2, Sadness: 3.0, Anger: 1.0, Fear: 0.5},
			"消极低落",
			"clearly negative",
		},
		{
			EmotionScores{Joy: 0.8, Love: 0.5, Surprise: 0.2, Sadness: 1.5, Anger: 0.3, Fear: 0.2},
			"略显消极",
			"slightly negative",
		},
		{
			EmotionScores{Joy: 1.0, Love: 0.5, Surprise: 0.5, Sadness: 1.0, Anger: 0.5, Fear: 0.5},
			"情感平衡",
			"balanced",
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := buildSummary(tt.scores, neutralWords)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Summary %q does not contain %q", got, tt.contains)
			}
			if !strings.Contains(got, "天气, 电影") {
				t.Errorf("Summary %q does not list the top keywords", got)
			}
		})
	}
}

func TestBuildSummaryOverrides(t *testing.T) {
	positive := EmotionScores{Joy: 3.0, Love: 1.0, Surprise: 0.5, Sadness: 0.2, Anger: 0.2, Fear: 0.2}
	negativeDominant := EmotionScores{Joy: 0.5, Love: 0.5, Surprise: 0.2, Sadness: 3.0, Anger: 1.0, Fear: 0.5}

	tests := []struct {
		scores   EmotionScores
		words    []WordFreq
		contains string
		desc     string
	}{
		{
			positive,
			[]WordFreq{{Word: "哈哈", Count: 5}, {Word: "宝贝", Count: 3}},
			"亲密活跃",
			"teasing and intimacy",
		},
		{
			positive,
			[]WordFreq{{Word: "哈哈", Count: 5}, {Word: "天气", Count: 3}},
			"轻松幽默",
			"teasing only",
		},
		{
			positive,
			[]WordFreq{{Word: "宝贝", Count: 3}, {Word: "天气", Count: 2}},
			"亲密温馨",
			"intimacy with positive lead",
		},
		{
			negativeDominant,
			[]WordFreq{{Word: "宝贝", Count: 3}, {Word: "天气", Count: 2}},
			"小摩擦",
			"intimacy with negative lead",
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := buildSummary(tt.scores, tt.words)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Summary %q does not contain %q", got, tt.contains)
			}
		})
	}
}

func TestBuildSummaryIntensity(t *testing.T) {
	words := []WordFreq{{Word: "天气", Count: 1}}
	tests := []struct {
		scores   EmotionScores
		contains string
		desc     string
	}{
		{
			EmotionScores{Joy: 3.0, Love: 3.0, Surprise: 2.5, Sadness: 1.5, Anger: 1.5, Fear: 1.0},
			"十分强烈",
			"very intense",
		},
		{
			EmotionScores{Joy: 3.0, Love: 2.0, Surprise: 2.0, Sadness: 1.0, Anger: 1.0, Fear: 1.0},
			"较为强烈",
			"relatively intense",
		},
		{
			EmotionScores{Joy: 3.0, Love: 1.0, Surprise: 1.0, Sadness: 0.5, Anger: 0.5, Fear: 0.5},
			"情感表达适中",
			"moderate",
		},
		{
			EmotionScores{Joy: 3.0, Love: 0.5, Surprise: 0.5, Sadness: 0.2, Anger: 0.2, Fear: 0.2},
			"较为平淡",
			"mild",
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := buildSummary(tt.scores, words)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Summary %q does not contain %q", got, tt.contains)
			}
		})
	}
}

func TestBuildSummaryUndertone(t *testing.T) {
	scores := EmotionScores{Joy: 3.0, Love: 2.5, Surprise: 0.2, Sadness: 0.2, Anger: 0.2, Fear: 0.2}
	got := buildSummary(scores, []WordFreq{{Word: "天气", Count: 1}})
	if !strings.Contains(got, "带有亲密友好色彩") {
		t.Errorf("Summary %q missing the second-emotion undertone clause", got)
	}
}
