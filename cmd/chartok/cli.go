package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/born-ml/chartok/tokenizer"
)

const version = "v0.1.0"

// configEnv overrides the default vocabulary location.
const configEnv = "CHARTOK_CONFIG"

// NewCLI builds the chartok command tree.
func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chartok",
		Short: "Character-level tokenizer",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Vocabulary artifact (defaults to $"+configEnv+", then "+tokenizer.DefaultConfigName+" next to the binary)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	encodeCmd := &cobra.Command{
		Use:   "encode TEXT...",
		Short: "Convert text to token IDs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  EncodeHandler,
	}
	encodeCmd.Flags().String("padding", string(tokenizer.PaddingMaxLength), "Padding mode (max_length, none)")
	encodeCmd.Flags().Int("max-length", tokenizer.DefaultMaxLength, "Sequence length")

	decodeCmd := &cobra.Command{
		Use:   "decode ID...",
		Short: "Convert token IDs to text",
		Args:  cobra.MinimumNArgs(1),
		RunE:  DecodeHandler,
	}
	decodeCmd.Flags().Bool("keep-special", false, "Render pad, bos and unk markers instead of dropping them")

	exportCmd := &cobra.Command{
		Use:   "export OUTPUT",
		Short: "Write the vocabulary artifact (JSON, or YAML for .yaml/.yml)",
		Args:  cobra.ExactArgs(1),
		RunE:  ExportHandler,
	}

	vocabCmd := &cobra.Command{
		Use:   "vocab",
		Short: "List the vocabulary",
		Args:  cobra.NoArgs,
		RunE:  VocabHandler,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chartok %s\n", version)
		},
	}

	rootCmd.AddCommand(
		encodeCmd,
		decodeCmd,
		exportCmd,
		vocabCmd,
		versionCmd,
	)

	return rootCmd
}

func EncodeHandler(cmd *cobra.Command, args []string) error {
	tok, logger, err := loadTokenizer(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	padding, _ := cmd.Flags().GetString("padding")
	maxLength, _ := cmd.Flags().GetInt("max-length")
	if maxLength < 1 {
		return fmt.Errorf("--max-length must be positive, got %d", maxLength)
	}

	w := cmd.OutOrStdout()
	for _, text := range args {
		ids := tok.Tokenize(text, tokenizer.PaddingMode(padding), maxLength)
		logger.Debug("encoded", zap.Int("chars", utf8.RuneCountInString(text)), zap.Int("ids", len(ids)))
		fmt.Fprintln(w, formatIDs(ids))
	}
	return nil
}

func DecodeHandler(cmd *cobra.Command, args []string) error {
	tok, logger, err := loadTokenizer(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	keep, _ := cmd.Flags().GetBool("keep-special")
	fmt.Fprintln(cmd.OutOrStdout(), tok.Decode(ids, !keep))
	return nil
}

func ExportHandler(cmd *cobra.Command, args []string) error {
	tok, logger, err := loadTokenizer(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if err := tokenizer.Save(tok, args[0]); err != nil {
		return err
	}
	logger.Info("exported vocabulary", zap.String("path", args[0]), zap.Int("vocab_size", tok.VocabSize()))
	return nil
}

func VocabHandler(cmd *cobra.Command, args []string) error {
	tok, logger, err := loadTokenizer(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	writeVocabTable(cmd.OutOrStdout(), tok.Entries())
	return nil
}

func writeVocabTable(w io.Writer, entries []tokenizer.Entry) {
	var data [][]string
	for _, e := range entries {
		kind, codepoint := "char", ""
		if e.Special {
			kind = "special"
		} else {
			r, _ := utf8.DecodeRuneInString(e.Token)
			codepoint = fmt.Sprintf("U+%04X", r)
		}
		data = append(data, []string{strconv.Itoa(int(e.ID)), strconv.Quote(e.Token), codepoint, kind})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "TOKEN", "CODEPOINT", "KIND"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

func loadTokenizer(cmd *cobra.Command) (*tokenizer.CharTokenizer, *zap.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := newLogger(level)
	if err != nil {
		return nil, nil, err
	}

	path, _ := cmd.Flags().GetString("config")
	resolve := tokenizer.EnvResolver(configEnv, tokenizer.ExecutableDirResolver())

	tok, err := tokenizer.LoadWithResolver(path, resolve, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return tok, logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

func formatIDs(ids []int32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return strings.Join(parts, " ")
}

// parseIDs accepts IDs as separate arguments, comma separated, or both.
func parseIDs(args []string) ([]int32, error) {
	var ids []int32
	for _, arg := range args {
		fields := strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ' ' || r == '[' || r == ']'
		})
		for _, field := range fields {
			id, err := strconv.ParseInt(field, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid token ID %q", field)
			}
			ids = append(ids, int32(id))
		}
	}
	return ids, nil
}
