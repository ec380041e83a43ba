package tokenizer

// Tokenizer is the core interface for text tokenization.
type Tokenizer interface {
	// Tokenize converts text to a fixed-length sequence of token IDs.
	Tokenize(text string, padding PaddingMode, maxLength int) []int32

	// Decode converts token IDs back to text.
	Decode(tokens []int32, skipSpecialTokens bool) string

	// VocabSize returns the total vocabulary size.
	VocabSize() int

	// BosToken returns the beginning-of-sequence token ID.
	BosToken() int32

	// EosToken returns the end-of-sequence token ID.
	EosToken() int32

	// PadToken returns the padding token ID.
	PadToken() int32

	// UnkToken returns the unknown token ID.
	UnkToken() int32

	// IsSpecialToken checks if a token ID is a special token.
	IsSpecialToken(token int32) bool
}

// PaddingMode selects how short sequences are filled up.
type PaddingMode string

const (
	// PaddingMaxLength right-pads sequences to the requested length.
	PaddingMaxLength PaddingMode = "max_length"

	// PaddingNone leaves short sequences as they are. Unknown modes behave
	// the same way.
	PaddingNone PaddingMode = "none"
)

// DefaultMaxLength is the sequence length used when callers have no
// preference.
const DefaultMaxLength = 128
