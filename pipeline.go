package chatanalysis

import (
	"context"
	"runtime"
	"sync"
	"time"
)

const (
	// scorerTopN is the depth of the ranked keyword table fed to the
	// emotion scorer and the summarizer.
	scorerTopN = 200
	// cloudTopN is the depth of the ranked views exposed for word and
	// emoji clouds.
	cloudTopN = 150

	defaultPolarityTimeout  = 3 * time.Second
	defaultTranslateTimeout = 5 * time.Second
)

// Report is the full analysis output for one transcript.
type Report struct {
	Stats    ChatStats         `json:"stats"`
	Keywords CohortFrequencies `json:"keywords"`
	Emoji    CohortFrequencies `json:"emoji"`

	// TopWords is the ranked keyword table across both participants,
	// at scorer depth.
	TopWords []WordFreq `json:"top_words"`

	// TranslatedWords mirrors the word-cloud view with each word run
	// through the configured translator. Nil unless a translator was
	// injected.
	TranslatedWords []WordFreq `json:"translated_words,omitempty"`

	Sentiment *SentimentResult `json:"sentiment"`
}

// WordCloud returns the cohort's ranked keywords at cloud depth.
func (r *Report) WordCloud(c Cohort) []WordFreq {
	return r.Keywords.Table(c).TopN(cloudTopN)
}

// An EmojiFreq is one row of a ranked emoji view, with the English
// display name collaborators use for labels.
type EmojiFreq struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// EmojiCloud returns the cohort's ranked emoji symbols at cloud depth.
func (r *Report) EmojiCloud(c Cohort) []EmojiFreq {
	top := r.Emoji.Table(c).TopN(cloudTopN)
	out := make([]EmojiFreq, len(top))
	for i, wf := range top {
		out[i] = EmojiFreq{
			Symbol: wf.Word,
			Name:   EmojiEnglishName(wf.Word),
			Count:  wf.Count,
		}
	}
	return out
}

type analyzeConfig struct {
	scorer          PolarityScorer
	workers         int
	polarityTimeout time.Duration
	translator      Translator
	translateSource string
	translateTarget string
}

// AnalyzeOption configures a single Analyze run.
type AnalyzeOption func(*analyzeConfig)

// UsingPolarityScorer injects the external sentence-polarity scorer.
// Without one, every sentence is treated as neutral.
func UsingPolarityScorer(s PolarityScorer) AnalyzeOption {
	return func(cfg *analyzeConfig) { cfg.scorer = s }
}

// UsingWorkers caps the number of goroutines used for tokenization and
// sentence scoring. Values below one fall back to GOMAXPROCS.
func UsingWorkers(n int) AnalyzeOption {
	return func(cfg *analyzeConfig) { cfg.workers = n }
}

// UsingPolarityTimeout bounds each call to the polarity scorer. A call
// exceeding the bound scores neutral.
func UsingPolarityTimeout(d time.Duration) AnalyzeOption {
	return func(cfg *analyzeConfig) { cfg.polarityTimeout = d }
}

// UsingTranslator injects a translator and target language for the
// translated word-cloud view.
func UsingTranslator(tr Translator, source, target string) AnalyzeOption {
	return func(cfg *analyzeConfig) {
		cfg.translator = tr
		cfg.translateSource = source
		cfg.translateTarget = target
	}
}

// Analyze runs the whole pipeline over a transcript: prefilter,
// tokenize, aggregate per cohort, timing stats, then emotion scoring
// and the narrative. Messages tokenize independently across workers;
// counter folds and score accumulation are sequential over the original
// message order, so output is identical regardless of scheduling.
func (ac *AnalysisContext) Analyze(ctx context.Context, msgs []ChatMessage, opts ...AnalyzeOption) (*Report, error) {
	cfg := analyzeConfig{
		workers:         runtime.GOMAXPROCS(0),
		polarityTimeout: defaultPolarityTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	kept := make([]ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		if dropMessage(m.Text) {
			continue
		}
		kept = append(kept, m)
	}
	if dropped := len(msgs) - len(kept); dropped > 0 {
		ac.logger.Debug("dropped system and code messages", "count", dropped)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := ac.tokenizeAll(kept, cfg.workers)

	// A message yielding no keyword and no emoji token leaves the
	// pipeline here: it must not reach the counters, the stats, or the
	// sentence pass.
	contributing := make([]ChatMessage, 0, len(kept))
	contribTokens := make([][]Token, 0, len(tokens))
	for i, ts := range tokens {
		if len(ts) == 0 {
			continue
		}
		contributing = append(contributing, kept[i])
		contribTokens = append(contribTokens, ts)
	}

	keywords := newCohortFrequencies()
	emoji := newCohortFrequencies()
	for i, m := range contributing {
		fold(keywords, emoji, i, m.SenderIsSelf, contribTokens[i])
	}

	report := &Report{
		Stats:    ComputeStats(contributing),
		Keywords: keywords,
		Emoji:    emoji,
	}
	report.TopWords = keywords.All.TopN(scorerTopN)
	if len(report.TopWords) == 0 {
		report.Sentiment = fallbackResult()
		return report, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sents []string
	for _, m := range contributing {
		sents = append(sents, SplitSentences(m.Text)...)
	}
	raw := ac.scoreEmotions(ctx, report.TopWords, sents, cfg.scorer, cfg.polarityTimeout, cfg.workers)
	scores := normalizeEmotions(raw, len(sents))
	report.Sentiment = &SentimentResult{
		Emotions: scores,
		Summary:  buildSummary(scores, report.TopWords),
	}

	if cfg.translator != nil {
		cloud := report.WordCloud(CohortAll)
		translated := make([]WordFreq, len(cloud))
		for i, wf := range cloud {
			translated[i] = WordFreq{
				Word:  translate(ctx, cfg.translator, wf.Word, cfg.translateSource, cfg.translateTarget, defaultTranslateTimeout),
				Count: wf.Count,
			}
		}
		report.TranslatedWords = translated
	}
	return report, nil
}

// tokenizeAll tokenizes messages across workers into an
// index-addressed slice.
func (ac *AnalysisContext) tokenizeAll(msgs []ChatMessage, workers int) [][]Token {
	out := make([][]Token, len(msgs))
	if workers > len(msgs) {
		workers = len(msgs)
	}
	if workers <= 1 {
		for i, m := range msgs {
			out[i] = ac.TokenizeMessage(m)
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
				out[i] = ac.TokenizeMessage(msgs[i])
			}
		}()
	}
	for i := range msgs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}
