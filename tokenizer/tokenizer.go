// Package tokenizer provides character-level text tokenization.
//
// This package wraps the internal tokenizer implementation and provides
// a clean public API for tokenization tasks.
//
// Example usage:
//
//	import "github.com/born-ml/chartok/tokenizer"
//
//	// Load a vocabulary artifact
//	tok, err := tokenizer.Load("tokenizer_config_v2.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text into a fixed-length sequence
//	ids := tok.Tokenize("Hello", tokenizer.PaddingMaxLength, tokenizer.DefaultMaxLength)
//
//	// Decode tokens, dropping special tokens
//	text := tok.Decode(ids, true)
//
//	// Write the vocabulary back out
//	if err := tokenizer.Save(tok, "exported.json"); err != nil {
//	    log.Fatal(err)
//	}
package tokenizer

import (
	"github.com/born-ml/chartok/internal/tokenizer"
	"go.uber.org/zap"
)

// Tokenizer is the core interface for text tokenization.
type Tokenizer = tokenizer.Tokenizer

// CharTokenizer maps every character to its own token ID.
type CharTokenizer = tokenizer.CharTokenizer

// Config is the persisted shape of a vocabulary.
type Config = tokenizer.Config

// Vocab maps artifact labels to token IDs.
type Vocab = tokenizer.Vocab

// SpecialTokens holds the pad, unk, bos and eos marker strings.
type SpecialTokens = tokenizer.SpecialTokens

// Entry is a single vocabulary item.
type Entry = tokenizer.Entry

// PaddingMode selects how short sequences are filled up.
type PaddingMode = tokenizer.PaddingMode

// Resolver locates the default vocabulary artifact.
type Resolver = tokenizer.Resolver

// Padding modes.
const (
	PaddingMaxLength = tokenizer.PaddingMaxLength
	PaddingNone      = tokenizer.PaddingNone
)

// DefaultMaxLength is the sequence length used when callers have no
// preference.
const DefaultMaxLength = tokenizer.DefaultMaxLength

// DefaultConfigName is the artifact file name looked up next to the
// executable.
const DefaultConfigName = tokenizer.DefaultConfigName

// Errors returned while building a tokenizer.
var (
	ErrConfigNotFound      = tokenizer.ErrConfigNotFound
	ErrInvalidConfig       = tokenizer.ErrInvalidConfig
	ErrMalformedLabel      = tokenizer.ErrMalformedLabel
	ErrMissingSpecialToken = tokenizer.ErrMissingSpecialToken
	ErrDuplicateTokenID    = tokenizer.ErrDuplicateTokenID
	ErrDuplicateToken      = tokenizer.ErrDuplicateToken
)

// New builds a tokenizer from an in-memory config.
func New(cfg *Config) (*CharTokenizer, error) {
	return tokenizer.NewCharTokenizer(cfg)
}

// NewConfig creates a config with the default special tokens.
func NewConfig(vocab Vocab) *Config {
	return tokenizer.NewConfig(vocab)
}

// Load builds a tokenizer from the artifact at path.
//
// An empty path loads tokenizer_config_v2.json next to the executable.
func Load(path string) (*CharTokenizer, error) {
	return tokenizer.LoadFromFile(path)
}

// LoadWithResolver builds a tokenizer from the artifact at path, falling
// back to the location returned by resolve when path is empty.
func LoadWithResolver(path string, resolve Resolver, logger *zap.Logger) (*CharTokenizer, error) {
	return tokenizer.NewLoader(
		tokenizer.WithResolver(resolve),
		tokenizer.WithLogger(logger),
	).Load(path)
}

// Save writes the tokenizer's vocabulary to path as JSON, or YAML for
// .yaml/.yml paths.
func Save(t *CharTokenizer, path string) error {
	return tokenizer.SaveConfigFile(t, path)
}

// StaticResolver always resolves to path.
func StaticResolver(path string) Resolver {
	return tokenizer.StaticResolver(path)
}

// EnvResolver resolves to the value of the environment variable name, or
// defers to fallback.
func EnvResolver(name string, fallback Resolver) Resolver {
	return tokenizer.EnvResolver(name, fallback)
}

// ExecutableDirResolver resolves to DefaultConfigName next to the running
// binary.
func ExecutableDirResolver() Resolver {
	return tokenizer.ExecutableDirResolver()
}

// EncodeLabel converts a character or special token into its artifact
// label.
func EncodeLabel(token string, specials SpecialTokens) string {
	return tokenizer.EncodeLabel(token, specials)
}

// DecodeLabel converts an artifact label into a character or special token.
func DecodeLabel(label string, specials SpecialTokens) (string, error) {
	return tokenizer.DecodeLabel(label, specials)
}

// ExampleConfig returns a minimal vocabulary for testing and examples.
func ExampleConfig() *Config {
	return tokenizer.ExampleCharConfig()
}
