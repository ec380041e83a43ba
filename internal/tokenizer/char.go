package tokenizer

import (
	"fmt"
	"strings"
)

// CharTokenizer maps every Unicode character to its own token ID.
//
// It is immutable after construction and safe for concurrent use.
type CharTokenizer struct {
	vocab    *vocabulary
	specials SpecialTokens
	padToken int32
	unkToken int32
	bosToken int32
	eosToken int32
}

var _ Tokenizer = (*CharTokenizer)(nil)

// NewCharTokenizer builds a tokenizer from a vocabulary config.
//
// Construction fails as a whole: a malformed label, a missing special token
// or a duplicate ID or character yields an error and no tokenizer.
func NewCharTokenizer(cfg *Config) (*CharTokenizer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	specials := cfg.SpecialTokens()
	vocab, err := buildVocabulary(cfg, specials)
	if err != nil {
		return nil, err
	}

	t := &CharTokenizer{
		vocab:    vocab,
		specials: specials,
	}

	// Resolve special token IDs once.
	for _, s := range []struct {
		token string
		dst   *int32
	}{
		{specials.Pad, &t.padToken},
		{specials.Unk, &t.unkToken},
		{specials.Bos, &t.bosToken},
		{specials.Eos, &t.eosToken},
	} {
		id, ok := vocab.forward[s.token]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingSpecialToken, s.token)
		}
		*s.dst = id
	}

	return t, nil
}

// Tokenize converts text to a sequence of IDs: BOS, one ID per character
// and EOS. With PaddingMaxLength short sequences are right-padded with the
// pad ID. Sequences longer than maxLength are always cut to the first
// maxLength IDs, which may drop EOS.
//
// Characters missing from the vocabulary map to the unk ID.
func (t *CharTokenizer) Tokenize(text string, padding PaddingMode, maxLength int) []int32 {
	ids := t.encode(text)

	if len(ids) < maxLength && padding == PaddingMaxLength {
		for len(ids) < maxLength {
			ids = append(ids, t.padToken)
		}
	} else if len(ids) > maxLength {
		ids = ids[:max(maxLength, 0)]
	}

	return ids
}

func (t *CharTokenizer) encode(text string) []int32 {
	ids := make([]int32, 0, len(text)+2)
	ids = append(ids, t.bosToken)
	for _, r := range text {
		id, ok := t.vocab.forward[string(r)]
		if !ok {
			id = t.unkToken
		}
		ids = append(ids, id)
	}
	return append(ids, t.eosToken)
}

// Decode converts IDs back to text.
//
// Decoding stops at the first EOS whether or not special tokens are
// skipped. Pad, BOS and unk are dropped when skipSpecialTokens is set and
// rendered as their marker strings otherwise. IDs outside the vocabulary
// decode as unk.
func (t *CharTokenizer) Decode(tokens []int32, skipSpecialTokens bool) string {
	var sb strings.Builder

	for _, id := range tokens {
		token, ok := t.vocab.reverse[id]
		if !ok {
			token = t.specials.Unk
		}
		if token == t.specials.Eos {
			break
		}
		if skipSpecialTokens && (token == t.specials.Pad || token == t.specials.Bos || token == t.specials.Unk) {
			continue
		}
		sb.WriteString(token)
	}

	return sb.String()
}

// ExportConfig re-derives the artifact form of the vocabulary.
func (t *CharTokenizer) ExportConfig() *Config {
	return t.vocab.config(t.specials)
}

// VocabSize returns the number of entries including special tokens.
func (t *CharTokenizer) VocabSize() int {
	return len(t.vocab.forward)
}

// BosToken returns the beginning-of-sequence token ID.
func (t *CharTokenizer) BosToken() int32 {
	return t.bosToken
}

// EosToken returns the end-of-sequence token ID.
func (t *CharTokenizer) EosToken() int32 {
	return t.eosToken
}

// PadToken returns the padding token ID.
func (t *CharTokenizer) PadToken() int32 {
	return t.padToken
}

// UnkToken returns the unknown token ID.
func (t *CharTokenizer) UnkToken() int32 {
	return t.unkToken
}

// IsSpecialToken checks if a token ID is a special token.
func (t *CharTokenizer) IsSpecialToken(token int32) bool {
	return token == t.padToken || token == t.unkToken || token == t.bosToken || token == t.eosToken
}

// SpecialTokens returns the special token strings.
func (t *CharTokenizer) SpecialTokens() SpecialTokens {
	return t.specials
}

// TokenID looks up the ID of a character or special token.
func (t *CharTokenizer) TokenID(token string) (int32, bool) {
	id, ok := t.vocab.forward[token]
	return id, ok
}

// Token looks up the character or special token for an ID.
func (t *CharTokenizer) Token(id int32) (string, bool) {
	token, ok := t.vocab.reverse[id]
	return token, ok
}

// Entries lists the vocabulary ordered by ID.
func (t *CharTokenizer) Entries() []Entry {
	return t.vocab.entries(t.specials)
}

// ExampleCharConfig returns a minimal vocabulary for testing and examples:
// the four default special tokens at IDs 0-3 followed by "a" and "b".
func ExampleCharConfig() *Config {
	return NewConfig(Vocab{
		DefaultPadToken: 0,
		DefaultUnkToken: 1,
		DefaultBosToken: 2,
		DefaultEosToken: 3,
		"a (0x0061)":    4,
		"b (0x0062)":    5,
	})
}
