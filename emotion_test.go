package chatanalysis

import (
	"context"
	"math"
	"testing"
	"time"
)

func TestSigmoid(t *testing.T) {
	if got := sigmoid(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("sigmoid(0.5) = %v, want 0.5", got)
	}
	if !(sigmoid(0.0) < sigmoid(0.3) && sigmoid(0.3) < sigmoid(0.7) && sigmoid(0.7) < sigmoid(1.0)) {
		t.Error("sigmoid is not monotonically increasing on [0,1]")
	}
	if sigmoid(1.0) >= 1.0 || sigmoid(0.0) <= 0.0 {
		t.Error("sigmoid left the open interval (0,1)")
	}
}

func TestScoreSentenceSignals(t *testing.T) {
	ac := newTestContext()
	neutral := FixedPolarity(0.5)

	// With p=0.5 both polarity factors are 0.5, so every touched
	// category is multiplied by 1.5.
	tests := []struct {
		sentence string
		emotion  Emotion
		expected float64
		delta    float64
		desc     string
	}{
		{"开心", Joy, 1.2 * 1.5, 0.001, "lexicon word"},
		{"今天 😂", Joy, 1.5 * 1.5, 0.001, "emoji glyph"},
		{"今天 😂😂", Joy, 2 * 1.5 * 1.5, 0.001, "repeated emoji glyph"},
		{"不错 :)", Joy, 0.8 * 1.5, 0.001, "text emoticon"},
		{"好 ！！", Joy, 2 * 0.3 * 1.5, 0.001, "double exclamation run"},
		{"什么 ？？", Surprise, 2 * 0.3 * 1.5, 0.001, "double question run"},
		{"！！！", Anger, 3 * 0.3 * 1.5, 0.001, "triple exclamation reaches anger"},
		{"！！！！！！！", Joy, 1.5 * 1.5, 0.001, "long run capped at 1.5"},
		{"晚安 宝贝", Love, (1.3 + 1.2) * 1.5, 0.001, "lexicon word plus intimacy phrase"},
		{"害怕 吗", Fear, 0.7 * 1.5, 0.001, "negative lexicon word"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ss := ac.scoreSentence(context.Background(), tt.sentence, neutral, time.Second)
			got := ss.scores[tt.emotion]
			if math.Abs(got-tt.expected) > tt.delta {
				t.Errorf("Sentence %q: %s = %.4f, want %.4f ± %.4f",
					tt.sentence, tt.emotion, got, tt.expected, tt.delta)
			}
			if !ss.touched[tt.emotion] {
				t.Errorf("Sentence %q: %s not marked as touched", tt.sentence, tt.emotion)
			}
		})
	}
}

func TestScoreSentenceUntouched(t *testing.T) {
	ac := newTestContext()
	ss := ac.scoreSentence(context.Background(), "中性 内容", FixedPolarity(0.5), time.Second)
	for e := Emotion(0); e < numEmotions; e++ {
		if ss.touched[e] {
			t.Errorf("Neutral sentence touched %s with %.4f", e, ss.scores[e])
		}
	}
}

func TestTeasingDampensAnger(t *testing.T) {
	ac := newTestContext()
	neutral := FixedPolarity(0.5)

	plain := ac.scoreSentence(context.Background(), "生气", neutral, time.Second)
	teased := ac.scoreSentence(context.Background(), "生气 哈哈", neutral, time.Second)

	if plain.scores[Anger] <= 0 {
		t.Fatal("Expected anger contribution from 生气")
	}
	if teased.scores[Anger] > plain.scores[Anger]*0.5+1e-9 {
		t.Errorf("Teased anger %.4f exceeds half of plain anger %.4f",
			teased.scores[Anger], plain.scores[Anger])
	}
	if !teased.touched[Joy] || !teased.touched[Surprise] {
		t.Error("Teasing phrase should add joy and surprise")
	}
}

func TestPolarityAdjustment(t *testing.T) {
	ac := newTestContext()

	positive := ac.scoreSentence(context.Background(), "开心", FixedPolarity(1.0), time.Second)
	negative := ac.scoreSentence(context.Background(), "开心", FixedPolarity(0.0), time.Second)
	if positive.scores[Joy] <= negative.scores[Joy] {
		t.Errorf("Joy with positive polarity (%.4f) should exceed joy with negative polarity (%.4f)",
			positive.scores[Joy], negative.scores[Joy])
	}

	posSad := ac.scoreSentence(context.Background(), "伤心", FixedPolarity(1.0), time.Second)
	negSad := ac.scoreSentence(context.Background(), "伤心", FixedPolarity(0.0), time.Second)
	if negSad.scores[Sadness] <= posSad.scores[Sadness] {
		t.Errorf("Sadness with negative polarity (%.4f) should exceed sadness with positive polarity (%.4f)",
			negSad.scores[Sadness], posSad.scores[Sadness])
	}
}

func TestRelationshipBonuses(t *testing.T) {
	ac := newTestContext()
	topWords := []WordFreq{
		{Word: "哈哈", Count: 3},
		{Word: "宝贝", Count: 2},
	}

	raw := ac.scoreEmotions(context.Background(), topWords, nil, FixedPolarity(0.5), time.Second, 1)

	// 宝贝 is a love lexicon word: 1.3 × min(2,5)/5 × base 1.3, plus
	// the 0.5 intimacy bonus.
	wantLove := 1.3*0.4*1.3 + 0.5
	if math.Abs(raw.scores[Love]-wantLove) > 0.001 {
		t.Errorf("Love = %.4f, want %.4f", raw.scores[Love], wantLove)
	}
	if math.Abs(raw.scores[Joy]-0.3) > 0.001 {
		t.Errorf("Joy = %.4f, want 0.3 teasing bonus", raw.scores[Joy])
	}
	if math.Abs(raw.scores[Surprise]-0.2) > 0.001 {
		t.Errorf("Surprise = %.4f, want 0.2 teasing bonus", raw.scores[Surprise])
	}
	if raw.touched[Anger] || raw.touched[Sadness] || raw.touched[Fear] {
		t.Error("Negative categories should stay untouched")
	}
}

func TestEmojiKeywordBonus(t *testing.T) {
	ac := newTestContext()
	topWords := []WordFreq{
		{Word: "😂", Count: 5},
		{Word: "😭", Count: 2},
	}

	raw := ac.scoreEmotions(context.Background(), topWords, nil, FixedPolarity(0.5), time.Second, 1)
	if math.Abs(raw.scores[Joy]-0.4) > 0.001 {
		t.Errorf("Joy emoji bonus = %.4f, want 0.4", raw.scores[Joy])
	}
	if math.Abs(raw.scores[Sadness]-0.4) > 0.001 {
		t.Errorf("Sadness emoji bonus = %.4f, want 0.4", raw.scores[Sadness])
	}
}

func TestFrequencyCap(t *testing.T) {
	ac := newTestContext()

	capped := ac.scoreEmotions(context.Background(), []WordFreq{{Word: "开心", Count: 50}}, nil, FixedPolarity(0.5), time.Second, 1)
	atCap := ac.scoreEmotions(context.Background(), []WordFreq{{Word: "开心", Count: 5}}, nil, FixedPolarity(0.5), time.Second, 1)
	if math.Abs(capped.scores[Joy]-atCap.scores[Joy]) > 1e-9 {
		t.Errorf("Frequency above 5 should score the same as 5: %.4f vs %.4f",
			capped.scores[Joy], atCap.scores[Joy])
	}
}

func BenchmarkScoreSentence(b *testing.B) {
	ac := newTestContext()
	neutral := NeutralPolarity()
	sentence := "今天 真的 很 开心 哈哈 😂 ！！"
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ac.scoreSentence(ctx, sentence, neutral, time.Second)
	}
}
