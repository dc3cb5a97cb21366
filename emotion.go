package chatanalysis

import (
	"context"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Scoring constants. The ceiling is what the dominant category is
// rescaled to after normalization; the floor is assigned to categories
// the scorer never touched so downstream charts are never degenerate.
const (
	scoreCeiling   = 3.0
	untouchedFloor = 0.2
)

// baseAdjustment damps the volatile negative categories and amplifies
// joy/love, so noisy single-word matches in the document pass don't
// dominate the profile.
var baseAdjustment = [numEmotions]float64{
	Joy:      1.2,
	Love:     1.3,
	Surprise: 1.0,
	Sadness:  0.7,
	Anger:    0.7,
	Fear:     0.6,
}

// Per-signal weights for the sentence pass.
const (
	emojiGlyphWeight     = 1.5
	emoticonWeight       = 0.8
	punctuationStep      = 0.3
	punctuationCap       = 1.5
	intimacySentBonus    = 1.2
	teasingJoyBonus      = 0.8
	teasingSurpriseBonus = 0.4
)

// emojiGlyphs are the per-category glyph sets matched inside sentences.
var emojiGlyphs = [numEmotions][]string{
	Joy:      {"😄", "😊", "😀", "😁", "😆", "😂", "🤣", "😃", "😅"},
	Love:     {"❤️", "😍", "😘", "🥰", "💕", "💓", "💗", "💖", "💘", "💝"},
	Surprise: {"😲", "😮", "😯", "😱", "🙀", "😨", "😧"},
	Sadness:  {"😢", "😭", "😥", "😓", "😔", "😞", "😟"},
	Anger:    {"😠", "😡", "🤬", "💢", "👿"},
	Fear:     {"😰", "😱", "😨", "😧", "😦"},
}

// emoticonPatterns match ASCII-art emoticons such as parenthesis smiles
// and <3 hearts.
var emoticonPatterns = [numEmotions][]*regexp.Regexp{
	Joy: {
		regexp.MustCompile(`\(\s*\^\s*\^\s*\)`),
		regexp.MustCompile(`\(\s*:\s*\)`),
		regexp.MustCompile(`\^\s*_\s*\^`),
		regexp.MustCompile(`:\s*\)`),
		regexp.MustCompile(`:\s*D`),
		regexp.MustCompile(`=\s*\)`),
	},
	Love: {
		regexp.MustCompile(`<\s*3`),
		regexp.MustCompile(`\(\s*>\s*<\s*\)`),
		regexp.MustCompile(`\(\s*\^\s*3\s*\^\s*\)`),
	},
	Surprise: {
		regexp.MustCompile(`:\s*o`),
		regexp.MustCompile(`:\s*O`),
		regexp.MustCompile(`=\s*o`),
		regexp.MustCompile(`=\s*O`),
	},
	Sadness: {
		regexp.MustCompile(`:\s*\(`),
		regexp.MustCompile(`:\s*-\s*\(`),
		regexp.MustCompile(`:\s*<`),
		regexp.MustCompile(`=\s*\(`),
	},
	Anger: {
		regexp.MustCompile(`>\s*:\s*\(`),
		regexp.MustCompile(`>\s*<`),
	},
	Fear: {
		regexp.MustCompile(`:\s*S`),
		regexp.MustCompile(`:\s*s`),
	},
}

// punctuationPatterns attribute repeated terminal punctuation to
// categories. Both halfwidth and fullwidth marks are recognized.
var punctuationPatterns = [numEmotions][]*regexp.Regexp{
	Joy: {
		regexp.MustCompile(`[!！]{2,}`),
		regexp.MustCompile(`[?？][!！]+`),
	},
	Surprise: {
		regexp.MustCompile(`[?？]{2,}`),
		regexp.MustCompile(`[!！]+[?？]+`),
	},
	Anger: {
		regexp.MustCompile(`[!！]{3,}`),
	},
}

// intimacySentencePhrases trigger the per-sentence love bonus.
var intimacySentencePhrases = []string{
	"宝贝", "亲爱的", "老婆", "老公", "媳妇", "爱人",
	"想你", "思念", "想念", "爱你", "亲亲", "么么哒",
}

// teasingSentencePatterns trigger the per-sentence joy/surprise bonus
// and halve the sentence's accumulated anger and sadness: a teasing
// context defeats negative-keyword false positives.
var teasingSentencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`哈哈+`),
	regexp.MustCompile(`呵呵+`),
	regexp.MustCompile(`嘿嘿+`),
	regexp.MustCompile(`嘻嘻+`),
	regexp.MustCompile(`逗你`),
	regexp.MustCompile(`开玩笑`),
	regexp.MustCompile(`玩笑`),
	regexp.MustCompile(`调侃`),
	regexp.MustCompile(`搞笑`),
}

// Relationship keyword lists matched by substring containment over the
// top-N keyword table.
var (
	intimacyKeywords = []string{"宝", "宝贝", "宝宝", "亲亲", "爱", "想你", "想念", "思念", "老婆", "老公", "媳妇", "爱人"}
	teasingKeywords  = []string{"哈哈", "笑死", "逗", "调侃", "开玩笑", "玩笑", "搞笑", "好笑", "笑话"}
)

// emojiKeywordBonus holds the per-category glyph sets counted over the
// top-N words for the flat 0.4 bonus.
var emojiKeywordBonus = [numEmotions][]string{
	Joy:      {"😄", "😊", "😀", "😁", "😆", "😂", "🤣", "😃", "😅"},
	Love:     {"😘", "❤️", "💕", "😊", "🥰", "💓", "💗", "💖"},
	Surprise: {"😲", "😮", "😯", "😱", "🙀", "😨", "😧", "😳"},
	Sadness:  {"😢", "😭", "😥", "😓", "😔", "😞", "😟", "💔"},
	Anger:    {"😠", "😡", "🤬", "💢", "👿", "😤"},
	Fear:     {"😰", "😱", "😨", "😧", "😦", "🥶"},
}

// sigmoid amplifies the distance of a polarity score from the neutral
// center.
func sigmoid(x float64) float64 {
	const (
		center    = 0.5
		steepness = 5.0
	)
	return 1.0 / (1.0 + math.Exp(-steepness*(x-center)))
}

// sentenceScore is one sentence's contribution before accumulation.
type sentenceScore struct {
	scores  EmotionScores
	touched [numEmotions]bool
}

func (s *sentenceScore) add(e Emotion, v float64) {
	s.scores[e] += v
	s.touched[e] = true
}

// scoreSentence runs the lexicon match, the rule-based signal detectors
// and the polarity adjustment for a single sentence.
func (ac *AnalysisContext) scoreSentence(ctx context.Context, sentence string, scorer PolarityScorer, timeout time.Duration) sentenceScore {
	var ss sentenceScore

	// Lexicon pass over the segmented, stopword-filtered sentence.
	for _, w := range ac.segmenter.Segment(sentence) {
		w = strings.TrimSpace(w)
		if w == "" || ac.isStopword(w) {
			continue
		}
		for _, e := range ac.lexicon.Categories(w) {
			ss.add(e, ac.lexicon.Weight(e))
		}
	}

	// Emoji glyphs.
	for e := Emotion(0); e < numEmotions; e++ {
		for _, glyph := range emojiGlyphs[e] {
			if n := strings.Count(sentence, glyph); n > 0 {
				ss.add(e, float64(n)*emojiGlyphWeight)
			}
		}
	}

	// Text emoticons.
	for e := Emotion(0); e < numEmotions; e++ {
		for _, re := range emoticonPatterns[e] {
			if n := len(re.FindAllString(sentence, -1)); n > 0 {
				ss.add(e, float64(n)*emoticonWeight)
			}
		}
	}

	// Repeated terminal punctuation, scaled by run length.
	for e := Emotion(0); e < numEmotions; e++ {
		for _, re := range punctuationPatterns[e] {
			for _, m := range re.FindAllString(sentence, -1) {
				runLen := len([]rune(m))
				ss.add(e, math.Min(float64(runLen)*punctuationStep, punctuationCap))
			}
		}
	}

	// Intimacy phrases.
	for _, phrase := range intimacySentencePhrases {
		if strings.Contains(sentence, phrase) {
			ss.add(Love, intimacySentBonus)
		}
	}

	// Teasing phrases. Each matching pattern adds joy/surprise and
	// halves whatever anger/sadness the sentence accumulated so far.
	for _, re := range teasingSentencePatterns {
		if re.MatchString(sentence) {
			ss.add(Joy, teasingJoyBonus)
			ss.add(Surprise, teasingSurpriseBonus)
			if ss.scores[Anger] > 0 {
				ss.scores[Anger] *= 0.5
			}
			if ss.scores[Sadness] > 0 {
				ss.scores[Sadness] *= 0.5
			}
		}
	}

	// Whole-sentence polarity adjustment.
	p := scorePolarity(ctx, scorer, sentence, timeout)
	posFactor := sigmoid(p)
	negFactor := sigmoid(1 - p)
	for _, e := range positiveEmotions {
		if ss.touched[e] {
			ss.scores[e] *= 1.0 + posFactor
		}
	}
	for _, e := range negativeEmotions {
		if ss.touched[e] {
			ss.scores[e] *= 1.0 + negFactor
		}
	}
	return ss
}

// rawEmotions holds document totals plus the touched flags the
// normalizer needs to apply the floor.
type rawEmotions struct {
	scores  EmotionScores
	touched [numEmotions]bool
}

func (r *rawEmotions) add(e Emotion, v float64) {
	r.scores[e] += v
	r.touched[e] = true
}

// scoreEmotions runs the full scoring algorithm: the document-level
// lexicon pass with base adjustment, the per-sentence pass, the
// relationship-keyword bonuses and the emoji bonus. The returned totals
// are raw: normalization and rescaling happen in the summarizer.
func (ac *AnalysisContext) scoreEmotions(ctx context.Context, topWords []WordFreq, sents []string, scorer PolarityScorer, timeout time.Duration, workers int) rawEmotions {
	var raw rawEmotions

	// Document-level lexicon pass, weighted by capped frequency.
	for _, wf := range topWords {
		for _, e := range ac.lexicon.Categories(wf.Word) {
			weight := math.Min(float64(wf.Count), 5) / 5.0
			raw.add(e, ac.lexicon.Weight(e)*weight)
		}
	}
	for e := Emotion(0); e < numEmotions; e++ {
		raw.scores[e] *= baseAdjustment[e]
	}

	// Per-sentence pass. Sentences are independent; results land in an
	// indexed slice and are folded in order so totals stay byte-stable.
	perSentence := ac.scoreSentences(ctx, sents, scorer, timeout, workers)
	for _, ss := range perSentence {
		for e := Emotion(0); e < numEmotions; e++ {
			if ss.touched[e] {
				raw.add(e, ss.scores[e])
			}
		}
	}

	// Relationship-keyword bonuses over the top-N words.
	intimacyCount := countContaining(topWords, intimacyKeywords)
	teasingCount := countContaining(topWords, teasingKeywords)
	if intimacyCount > 0 {
		raw.add(Love, float64(intimacyCount)*0.5)
	}
	if teasingCount > 0 {
		raw.add(Joy, float64(teasingCount)*0.3)
		raw.add(Surprise, float64(teasingCount)*0.2)
		damp := math.Max(0.1, 1.0-0.1*float64(teasingCount))
		if raw.scores[Anger] > 0 {
			raw.scores[Anger] *= damp
		}
		if raw.scores[Sadness] > 0 {
			raw.scores[Sadness] *= damp
		}
	}

	// Emoji-category bonus over the top-N words.
	for e := Emotion(0); e < numEmotions; e++ {
		n := countContaining(topWords, emojiKeywordBonus[e])
		if n > 0 {
			raw.add(e, float64(n)*0.4)
		}
	}
	return raw
}

// scoreSentences scores every sentence, fanning out across workers.
// Each worker writes into its own slots of the result slice, so the
// caller's sequential fold is independent of scheduling.
func (ac *AnalysisContext) scoreSentences(ctx context.Context, sents []string, scorer PolarityScorer, timeout time.Duration, workers int) []sentenceScore {
	out := make([]sentenceScore, len(sents))
	if workers < 1 {
		workers = 1
	}
	if workers > len(sents) {
		workers = len(sents)
	}
	if workers <= 1 {
		for i, s := range sents {
			out[i] = ac.scoreSentence(ctx, s, scorer, timeout)
		}
		return out
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = ac.scoreSentence(ctx, sents[i], scorer, timeout)
			}
		}()
	}
	for i := range sents {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

// countContaining counts top-N words containing any of the needles.
func countContaining(words []WordFreq, needles []string) int {
	n := 0
	for _, wf := range words {
		for _, needle := range needles {
			if strings.Contains(wf.Word, needle) {
				n++
				break
			}
		}
	}
	return n
}
