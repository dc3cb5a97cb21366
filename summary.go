package chatanalysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const insufficientDataSummary = "无足够数据进行情感分析。(Insufficient data for sentiment analysis.)"

// fallbackResult is returned when no keywords survive filtering:
// a flat profile and a fixed narrative, so collaborators always have
// something to render.
func fallbackResult() *SentimentResult {
	var scores EmotionScores
	for e := Emotion(0); e < numEmotions; e++ {
		scores[e] = 1.0
	}
	return &SentimentResult{
		Emotions: scores,
		Summary:  insufficientDataSummary,
	}
}

// normalizeEmotions turns raw document totals into the final profile:
// average over half the sentence count, floor untouched categories,
// clamp, then rescale so the dominant category sits at the ceiling.
func normalizeEmotions(raw rawEmotions, sentenceCount int) EmotionScores {
	div := math.Max(1, float64(sentenceCount)/2)
	var out EmotionScores
	for e := Emotion(0); e < numEmotions; e++ {
		out[e] = raw.scores[e] / div
		if !raw.touched[e] {
			out[e] = untouchedFloor
		}
		if out[e] < 0 {
			out[e] = 0
		}
	}
	if max := floats.Max(out[:]); max > 0 {
		floats.Scale(scoreCeiling/max, out[:])
	}
	return out
}

// emotionDescriptions are the bilingual labels used in the narrative.
var emotionDescriptions = [numEmotions]struct{ zh, en string }{
	Joy:      {"喜悦", "joy"},
	Love:     {"亲密友好", "intimate and friendly"},
	Surprise: {"惊讶好奇", "surprised and curious"},
	Sadness:  {"低落忧伤", "sad and melancholic"},
	Anger:    {"烦躁不满", "irritated and dissatisfied"},
	Fear:     {"担忧焦虑", "worried and anxious"},
}

// The narrative's relationship checks use slightly wider keyword lists
// than the scorer's bonus lists.
var (
	summaryTeasingKeywords  = []string{"哈哈", "笑死", "逗", "调侃", "开玩笑", "玩笑", "搞笑", "好笑", "笑话", "逗乐"}
	summaryIntimacyKeywords = []string{"宝", "亲", "爱", "想你", "想念", "思念", "宝贝", "老婆", "老公", "媳妇", "爱人"}
)

func isNegativeEmotion(e Emotion) bool {
	for _, n := range negativeEmotions {
		if e == n {
			return true
		}
	}
	return false
}

// buildSummary renders the bilingual narrative from a normalized
// profile and the ranked keyword table.
func buildSummary(scores EmotionScores, topWords []WordFreq) string {
	topN := 5
	if len(topWords) < topN {
		topN = len(topWords)
	}
	names := make([]string, 0, topN)
	for _, wf := range topWords[:topN] {
		names = append(names, wf.Word)
	}
	keywords := strings.Join(names, ", ")

	var positive, negative float64
	for _, e := range positiveEmotions {
		positive += scores[e]
	}
	for _, e := range negativeEmotions {
		negative += scores[e]
	}
	avgIntensity := scores.Sum() / float64(numEmotions)

	// Rank categories by score; ties keep canonical order.
	ranked := Emotions()
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	first, second := ranked[0], ranked[1]

	var moodZH, moodEN string
	switch {
	case positive > negative*2:
		moodZH, moodEN = "积极愉快", "positive and cheerful"
	case positive > negative*1.2:
		moodZH, moodEN = "较为积极", "moderately positive"
	case negative > positive*2:
		moodZH, moodEN = "消极低落", "negative and downbeat"
	case negative > positive*1.2:
		moodZH, moodEN = "略显消极", "slightly negative"
	default:
		moodZH, moodEN = "情感平衡", "emotionally balanced"
	}

	descZH := emotionDescriptions[first].zh
	descEN := emotionDescriptions[first].en
	if scores[second] > scores[first]*0.7 && second != first {
		descZH += fmt.Sprintf("，带有%s色彩", emotionDescriptions[second].zh)
		descEN += fmt.Sprintf(", with %s undertones", second.String())
	}

	hasTeasing := countContaining(topWords, summaryTeasingKeywords) > 0
	hasIntimacy := countContaining(topWords, summaryIntimacyKeywords) > 0

	var summary string
	switch {
	case hasTeasing && hasIntimacy:
		summary = fmt.Sprintf("对话氛围亲密活跃，互相调侃中透露着感情。主要话题包括%s。(The conversation atmosphere is intimate and lively, showing affection through playful teasing. Main topics include %s.)", keywords, keywords)
	case hasTeasing:
		summary = fmt.Sprintf("对话氛围轻松幽默，有互相调侃的成分。主要话题包括%s。(The conversation atmosphere is relaxed and humorous, with elements of teasing. Main topics include %s.)", keywords, keywords)
	case hasIntimacy && isNegativeEmotion(first):
		summary = fmt.Sprintf("对话氛围亲密但略有情绪波动，可能是亲近关系中的小摩擦。主要话题包括%s。(The conversation atmosphere is intimate but with some emotional fluctuations, possibly minor friction in a close relationship. Main topics include %s.)", keywords, keywords)
	case hasIntimacy:
		summary = fmt.Sprintf("对话氛围亲密温馨，表达了彼此的关心。主要话题包括%s。(The conversation atmosphere is intimate and warm, expressing mutual care. Main topics include %s.)", keywords, keywords)
	default:
		summary = fmt.Sprintf("对话氛围%s，主要体现为%s。主要话题包括%s。(The conversation atmosphere is %s, mainly characterized by %s. Main topics include %s.)", moodZH, descZH, keywords, moodEN, descEN, keywords)
	}

	switch {
	case avgIntensity > 2.0:
		summary += "情感表达十分强烈。(Emotional expression is very intense.)"
	case avgIntensity > 1.5:
		summary += "情感表达较为强烈。(Emotional expression is relatively intense.)"
	case avgIntensity > 1.0:
		summary += "情感表达适中。(Emotional expression is moderate.)"
	default:
		summary += "情感表达较为平淡。(Emotional expression is relatively mild.)"
	}
	return summary
}
