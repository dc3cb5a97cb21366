package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	chatanalysis "github.com/YuetongLU7/WeChat-Conversation-Analysis-Visualization"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chatanalysis [transcript.jsonl]",
	Short: "Analyze an exported one-on-one chat transcript",
	Long: `Chatanalysis reads an exported chat transcript (one JSON object per
line with is_sender, content and time fields) and produces keyword and
emoji frequencies per participant, timing statistics, and an emotion
profile with a narrative summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chatanalysis.yaml)")
	rootCmd.Flags().String("stopwords", "", "path to a stopword list, one word per line")
	rootCmd.Flags().String("transform", "", "path to a TSV word-transform dictionary")
	rootCmd.Flags().String("emoji", "", "path to a TSV eng→cn emoji name table")
	rootCmd.Flags().String("lexicon", "", "path to an emotion lexicon JSON file")
	rootCmd.Flags().String("user-dict", "", "path to a segmenter user dictionary")
	rootCmd.Flags().StringP("output", "o", "", "write the JSON report to a file instead of stdout")
	rootCmd.Flags().Int("workers", 0, "worker goroutines for tokenization and scoring (0 = GOMAXPROCS)")
	rootCmd.Flags().Bool("debug", false, "enable debug logging")

	viper.BindPFlag("stopwords", rootCmd.Flags().Lookup("stopwords"))
	viper.BindPFlag("transform", rootCmd.Flags().Lookup("transform"))
	viper.BindPFlag("emoji", rootCmd.Flags().Lookup("emoji"))
	viper.BindPFlag("lexicon", rootCmd.Flags().Lookup("lexicon"))
	viper.BindPFlag("user_dict", rootCmd.Flags().Lookup("user-dict"))
	viper.BindPFlag("workers", rootCmd.Flags().Lookup("workers"))
	viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".chatanalysis")
		}
	}

	viper.SetEnvPrefix("CHATANALYSIS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("debug") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if viper.GetBool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var in io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening transcript: %w", err)
		}
		defer f.Close()
		in = f
	}

	msgs, err := readTranscript(in, logger)
	if err != nil {
		return err
	}

	ac := chatanalysis.NewAnalysisContext(
		chatanalysis.WithStopwordFile(viper.GetString("stopwords")),
		chatanalysis.WithTransformFile(viper.GetString("transform")),
		chatanalysis.WithEmojiFile(viper.GetString("emoji")),
		chatanalysis.WithLexiconFile(viper.GetString("lexicon")),
		chatanalysis.WithUserDictFile(viper.GetString("user_dict")),
		chatanalysis.WithLogger(logger),
	)

	report, err := ac.Analyze(cmd.Context(), msgs,
		chatanalysis.UsingWorkers(viper.GetInt("workers")),
	)
	if err != nil {
		return fmt.Errorf("analyzing transcript: %w", err)
	}

	var out io.Writer = os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// transcriptRow is one exported chat record. Timestamps come in
// several export formats, so the time field is parsed leniently.
type transcriptRow struct {
	SenderIsSelf bool   `json:"is_sender"`
	Text         string `json:"content"`
	Time         string `json:"time"`
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// readTranscript decodes a JSONL transcript. Malformed rows are logged
// and skipped rather than failing the run.
func readTranscript(r io.Reader, logger *slog.Logger) ([]chatanalysis.ChatMessage, error) {
	var msgs []chatanalysis.ChatMessage
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var row transcriptRow
		if err := json.Unmarshal(raw, &row); err != nil {
			logger.Warn("skipping malformed row", "line", line, "err", err)
			continue
		}
		ts, err := parseTime(row.Time)
		if err != nil {
			logger.Warn("skipping row with unparseable time", "line", line, "time", row.Time)
			continue
		}
		msgs = append(msgs, chatanalysis.ChatMessage{
			SenderIsSelf: row.SenderIsSelf,
			Text:         row.Text,
			Timestamp:    ts,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	return msgs, nil
}
