package chatanalysis

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-ego/gse"
	"golang.org/x/text/width"
)

// A Segmenter splits raw message text into words. The pipeline treats
// segmentation as a pluggable external capability; the default is
// backed by gse with the lexicon's trigger words registered as
// user-dictionary tokens so they never get split apart.
type Segmenter interface {
	Segment(text string) []string
}

// SegmenterFunc adapts a plain function to the Segmenter interface.
type SegmenterFunc func(text string) []string

// Segment implements Segmenter.
func (f SegmenterFunc) Segment(text string) []string { return f(text) }

type gseSegmenter struct {
	seg gse.Segmenter
}

func newGseSegmenter(lex *EmotionLexicon, userDict string, logger *slog.Logger) Segmenter {
	gs := &gseSegmenter{}
	if err := gs.seg.LoadDict(); err != nil {
		logger.Warn("loading embedded segmenter dictionary", "err", err)
	}
	if userDict != "" {
		if err := gs.seg.LoadDict(userDict); err != nil {
			logger.Warn("user dictionary unavailable", "file", userDict, "err", err)
		}
	}
	lex.Words(func(w string) {
		// High frequency keeps lexicon words unsplit.
		_ = gs.seg.AddToken(w, 10000)
	})
	return gs
}

// Segment implements Segmenter using HMM-assisted cutting.
func (g *gseSegmenter) Segment(text string) []string {
	return g.seg.Cut(text, true)
}

// keywordRE keeps words containing at least one CJK ideograph, Latin
// letter, digit or bracket. numberRE drops bare integers and decimals.
var (
	keywordRE   = regexp.MustCompile(`[\[\]一-龟a-zA-Z0-9]`)
	numberRE    = regexp.MustCompile(`^\d+$|^\d+\.\d+$`)
	systemMsgRE = regexp.MustCompile(`<.+`)
	pureCodeRE  = regexp.MustCompile(`^\d+$`)
)

// dropMessage reports whether a raw row should be excluded before the
// core sees it: empty content, XML/system payloads, and bare numeric
// codes such as verification numbers.
func dropMessage(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || systemMsgRE.MatchString(t) || pureCodeRE.MatchString(t)
}

// TokenizeMessage converts one message into its ordered token sequence:
// stopword-filtered keywords first, then any emoji tokens extracted
// from bracket runs. A message yielding no tokens contributes nothing
// downstream.
func (ac *AnalysisContext) TokenizeMessage(msg ChatMessage) []Token {
	words := ac.segmenter.Segment(msg.Text)

	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || ac.isStopword(w) {
			continue
		}
		w = width.Narrow.String(w)
		if !keywordRE.MatchString(w) || numberRE.MatchString(w) || isSingleLatinLetter(w) {
			continue
		}
		if t, ok := ac.transform[w]; ok {
			w = t
		}
		kept = append(kept, w)
	}

	keywords, emoji := ac.extractEmoji(kept)

	tokens := make([]Token, 0, len(keywords)+len(emoji))
	for _, w := range keywords {
		tokens = append(tokens, Token{Text: w})
	}
	tokens = append(tokens, emoji...)
	return tokens
}

// extractEmoji removes `[`, tag, `]` runs from the keyword stream and
// resolves each into an emoji token. English tag codes are translated
// to their Chinese names via the eng→cn table; unrecognized purely
// alphanumeric codes are noise and the whole run is discarded.
func (ac *AnalysisContext) extractEmoji(words []string) ([]string, []Token) {
	var keywords []string
	var emoji []Token

	for i := 0; i < len(words); i++ {
		if words[i] != "[" || i+2 >= len(words) || words[i+2] != "]" {
			keywords = append(keywords, words[i])
			continue
		}
		tag := words[i+1]
		i += 2

		name := tag
		if cn, ok := ac.engToCn[tag]; ok {
			name = cn
		} else if isAlphanumeric(tag) {
			continue
		}
		emoji = append(emoji, Token{
			Text:    name,
			IsEmoji: true,
			Symbol:  ac.resolveSymbol(name),
		})
	}
	return keywords, emoji
}

func isSingleLatinLetter(s string) bool {
	return len(s) == 1 && (s[0] >= 'a' && s[0] <= 'z' || s[0] >= 'A' && s[0] <= 'Z')
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
