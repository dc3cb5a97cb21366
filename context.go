package chatanalysis

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bbalet/stopwords"
)

// AnalysisContext bundles every process-lifetime resource the pipeline
// needs: the emotion lexicon, stopword set, transform dictionary, emoji
// tables and the word segmenter. It is constructed once at startup and
// read-only afterwards, so a single context may be shared by any number
// of concurrent Analyze calls.
//
// Every resource file is optional. A missing or corrupt file is logged
// and replaced by the built-in default; construction never fails.
type AnalysisContext struct {
	lexicon   *EmotionLexicon
	stopwords map[string]struct{}
	transform map[string]string
	engToCn   map[string]string
	symbols   []emojiSymbol
	symbolIdx map[string]string
	segmenter Segmenter
	logger    *slog.Logger
}

type contextConfig struct {
	stopwordFile  string
	transformFile string
	emojiFile     string
	lexiconFile   string
	userDictFile  string
	segmenter     Segmenter
	logger        *slog.Logger
}

// A ContextOption adjusts AnalysisContext construction.
type ContextOption func(*contextConfig)

// WithStopwordFile sets the newline-delimited stopword file.
func WithStopwordFile(path string) ContextOption {
	return func(c *contextConfig) { c.stopwordFile = path }
}

// WithTransformFile sets the tab-separated transform dictionary file
// (original<TAB>transformed per line).
func WithTransformFile(path string) ContextOption {
	return func(c *contextConfig) { c.transformFile = path }
}

// WithEmojiFile sets the tab-separated English→Chinese emoji tag file
// (eng<TAB>cn per line).
func WithEmojiFile(path string) ContextOption {
	return func(c *contextConfig) { c.emojiFile = path }
}

// WithLexiconFile sets an external lexicon JSON file merged over the
// built-in lexicon at load time.
func WithLexiconFile(path string) ContextOption {
	return func(c *contextConfig) { c.lexiconFile = path }
}

// WithUserDictFile sets an extra segmenter user dictionary.
func WithUserDictFile(path string) ContextOption {
	return func(c *contextConfig) { c.userDictFile = path }
}

// WithSegmenter replaces the default gse-backed segmenter.
func WithSegmenter(s Segmenter) ContextOption {
	return func(c *contextConfig) { c.segmenter = s }
}

// WithLogger sets the logger used for load-fallback warnings.
func WithLogger(l *slog.Logger) ContextOption {
	return func(c *contextConfig) { c.logger = l }
}

// NewAnalysisContext builds a context from the given options. Resource
// load failures degrade to built-in defaults and are logged, never
// returned: the pipeline must stay usable without any data files.
func NewAnalysisContext(opts ...ContextOption) *AnalysisContext {
	var cfg contextConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	ac := &AnalysisContext{
		logger:  cfg.logger,
		symbols: builtinEmojiSymbols,
	}
	ac.symbolIdx = make(map[string]string, len(ac.symbols))
	for _, e := range ac.symbols {
		if _, ok := ac.symbolIdx[e.Name]; !ok {
			ac.symbolIdx[e.Name] = e.Symbol
		}
	}

	ac.lexicon = builtinLexicon()
	if cfg.lexiconFile != "" {
		if err := ac.lexicon.mergeExternal(cfg.lexiconFile); err != nil {
			cfg.logger.Warn("using built-in lexicon", "file", cfg.lexiconFile, "err", err)
		}
	}

	ac.stopwords = loadStopwords(cfg.stopwordFile, cfg.logger)
	ac.transform = loadPairTable(cfg.transformFile, "transform dictionary", cfg.logger)
	ac.engToCn = loadPairTable(cfg.emojiFile, "emoji dictionary", cfg.logger)

	ac.segmenter = cfg.segmenter
	if ac.segmenter == nil {
		ac.segmenter = newGseSegmenter(ac.lexicon, cfg.userDictFile, cfg.logger)
	}
	return ac
}

// Lexicon returns the context's read-only emotion lexicon.
func (ac *AnalysisContext) Lexicon() *EmotionLexicon {
	return ac.lexicon
}

// fallbackStopwords covers the most common Chinese function words so
// the pipeline degrades sensibly when the stopword file is absent.
var fallbackStopwords = []string{
	"一个", "吧", "吗", "我", "你", "的", "了", "在", "是", "有", "和",
	"不", "这", "我们", "你们", "他们", "那", "就", "也", "都", "很",
	"到", "说",
}

func loadStopwords(path string, logger *slog.Logger) map[string]struct{} {
	set := make(map[string]struct{})
	if path != "" {
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				if w := strings.TrimSpace(scanner.Text()); w != "" {
					set[w] = struct{}{}
				}
			}
			if err := scanner.Err(); err == nil && len(set) > 0 {
				return set
			}
			err = scanner.Err()
			logger.Warn("stopword file unusable, using built-in set", "file", path, "err", err)
		} else {
			logger.Warn("stopword file unavailable, using built-in set", "file", path, "err", err)
		}
	}
	for _, w := range fallbackStopwords {
		set[w] = struct{}{}
	}
	return set
}

// loadPairTable reads a two-column tab-separated file into a map. A
// header row repeating the column names is skipped. Missing files yield
// an empty table.
func loadPairTable(path, what string, logger *slog.Logger) map[string]string {
	table := make(map[string]string)
	if path == "" {
		return table
	}
	f, err := os.Open(path)
	if err != nil {
		logger.Warn(fmt.Sprintf("%s unavailable", what), "file", path, "err", err)
		return table
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), "\t", 2)
		if len(parts) != 2 {
			continue
		}
		key, val := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if first {
			first = false
			// header rows like "eng\tcn" or "original\ttransformed"
			if key == "eng" || key == "original" {
				continue
			}
		}
		if key != "" && val != "" {
			table[key] = val
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Warn(fmt.Sprintf("%s truncated", what), "file", path, "err", err)
	}
	return table
}

// isStopword checks the loaded Chinese stopword set, and for pure
// Latin-letter words additionally consults the bbalet English stopword
// list, so English function words in mixed-language chats are dropped
// even when the stopword file only covers Chinese.
func (ac *AnalysisContext) isStopword(word string) bool {
	if _, ok := ac.stopwords[word]; ok {
		return true
	}
	if len(word) > 1 && isASCIILetters(word) {
		return strings.TrimSpace(stopwords.CleanString(word, "en", false)) == ""
	}
	return false
}

func isASCIILetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return len(s) > 0
}

// resolveSymbol maps a Chinese tag name to its canonical symbol. An
// exact hit wins; otherwise the first table entry where either name
// contains the other is taken. Unresolvable names return "".
func (ac *AnalysisContext) resolveSymbol(name string) string {
	if sym, ok := ac.symbolIdx[name]; ok {
		return sym
	}
	for _, e := range ac.symbols {
		if strings.Contains(name, e.Name) || strings.Contains(e.Name, name) {
			return e.Symbol
		}
	}
	return ""
}
