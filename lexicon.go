package chatanalysis

import (
	"encoding/json"
	"fmt"
	"os"
)

// EmotionLexicon maps each emotion category to a weighted trigger-word
// set. The category set is closed: external overrides may add words or
// change weights for the six fixed categories, but never introduce new
// ones. A lexicon is built once at context construction and is
// read-only afterwards.
type EmotionLexicon struct {
	entries [numEmotions]lexiconEntry
}

type lexiconEntry struct {
	words  map[string]struct{}
	weight float64
}

// builtinLexicon returns the embedded minimal lexicon used when no
// external lexicon file is available.
func builtinLexicon() *EmotionLexicon {
	lex := &EmotionLexicon{}
	seed := [numEmotions]struct {
		words  []string
		weight float64
	}{
		Joy:      {[]string{"高兴", "快乐", "喜悦", "开心", "欢喜", "欣喜", "欢乐"}, 1.2},
		Love:     {[]string{"爱", "喜欢", "爱慕", "宝贝", "亲爱", "亲密", "宝宝"}, 1.3},
		Surprise: {[]string{"惊讶", "震惊", "吃惊", "意外", "惊喜", "惊奇"}, 0.9},
		Sadness:  {[]string{"伤心", "难过", "悲伤", "悲痛", "忧伤", "哀伤"}, 0.8},
		Anger:    {[]string{"生气", "愤怒", "恼火", "发火", "气愤", "恼怒"}, 0.8},
		Fear:     {[]string{"害怕", "恐惧", "担心", "忧虑", "焦虑", "惶恐"}, 0.7},
	}
	for e := Emotion(0); e < numEmotions; e++ {
		entry := lexiconEntry{
			words:  make(map[string]struct{}, len(seed[e].words)),
			weight: seed[e].weight,
		}
		for _, w := range seed[e].words {
			entry.words[w] = struct{}{}
		}
		lex.entries[e] = entry
	}
	return lex
}

// Weight returns the category's lexicon weight.
func (l *EmotionLexicon) Weight(e Emotion) float64 {
	return l.entries[e].weight
}

// Contains reports whether word is a trigger word for the category.
func (l *EmotionLexicon) Contains(e Emotion, word string) bool {
	_, ok := l.entries[e].words[word]
	return ok
}

// Categories returns every category whose word set contains word, in
// canonical category order.
func (l *EmotionLexicon) Categories(word string) []Emotion {
	var out []Emotion
	for _, e := range Emotions() {
		if l.Contains(e, word) {
			out = append(out, e)
		}
	}
	return out
}

// Words calls fn for each trigger word across all categories. Used to
// register lexicon words with the segmenter's user dictionary.
func (l *EmotionLexicon) Words(fn func(word string)) {
	for e := Emotion(0); e < numEmotions; e++ {
		for w := range l.entries[e].words {
			fn(w)
		}
	}
}

// externalLexicon is the JSON shape of an external lexicon override
// file: {"emotions": {"joy": {"words": [...], "weight": 1.2}, ...}}.
type externalLexicon struct {
	Emotions map[string]externalLexiconEntry `json:"emotions"`
}

type externalLexiconEntry struct {
	Words  []string `json:"words"`
	Weight *float64 `json:"weight,omitempty"`
}

// mergeExternal loads an external lexicon file and merges it into l:
// words are added to the matching category's set, and an explicit
// weight replaces the built-in one. Categories outside the fixed six
// are ignored.
func (l *EmotionLexicon) mergeExternal(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading lexicon file: %w", err)
	}
	var external externalLexicon
	if err := json.Unmarshal(data, &external); err != nil {
		return fmt.Errorf("parsing lexicon JSON: %w", err)
	}
	for _, e := range Emotions() {
		entry, ok := external.Emotions[e.String()]
		if !ok {
			continue
		}
		for _, w := range entry.Words {
			if w != "" {
				l.entries[e].words[w] = struct{}{}
			}
		}
		if entry.Weight != nil {
			l.entries[e].weight = *entry.Weight
		}
	}
	return nil
}
