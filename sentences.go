package chatanalysis

import (
	"strings"
	"sync"
	"unicode"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// SplitSentences segments text on Chinese terminal punctuation (。！？),
// keeping a run of terminal marks attached to the sentence it ends, so
// repeated-punctuation cues like ！！！ survive for the signal detectors.
// Text with no CJK terminals but Latin sentence punctuation falls back
// to a Punkt tokenizer; anything else is a single sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if strings.ContainsAny(text, "。！？") {
		return splitCJK(text)
	}
	if hasLatinSentenceBreak(text) {
		if sents := splitLatin(text); len(sents) > 0 {
			return sents
		}
	}
	return []string{text}
}

func isTerminal(r rune) bool {
	return r == '。' || r == '！' || r == '？'
}

func splitCJK(text string) []string {
	var out []string
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if !isTerminal(runes[i]) {
			continue
		}
		// absorb the rest of the punctuation run
		for i+1 < len(runes) && isTerminal(runes[i+1]) {
			i++
			b.WriteRune(runes[i])
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}

func hasLatinSentenceBreak(text string) bool {
	if !strings.ContainsAny(text, ".!?") {
		return false
	}
	for _, r := range text {
		if unicode.In(r, unicode.Latin) {
			return true
		}
	}
	return false
}

var (
	punktOnce sync.Once
	punktTok  *sentences.DefaultSentenceTokenizer
)

func splitLatin(text string) []string {
	punktOnce.Do(func() {
		tok, err := english.NewSentenceTokenizer(nil)
		if err == nil {
			punktTok = tok
		}
	})
	if punktTok == nil {
		return nil
	}
	var out []string
	for _, s := range punktTok.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}
