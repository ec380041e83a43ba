package tokenizer

import (
	"fmt"
	"math"
	"sort"
)

// maxTokenID keeps IDs representable as int32.
const maxTokenID = math.MaxInt32

// vocabulary is the runtime form of a Config: a character (or special token)
// to ID mapping and its exact inverse.
type vocabulary struct {
	forward map[string]int32 // token -> ID
	reverse map[int32]string // ID -> token
}

// buildVocabulary decodes every label of cfg. The config must already be
// validated, so IDs are unique and in range.
func buildVocabulary(cfg *Config, specials SpecialTokens) (*vocabulary, error) {
	v := &vocabulary{
		forward: make(map[string]int32, len(cfg.Vocab)),
		reverse: make(map[int32]string, len(cfg.Vocab)),
	}

	// Sorted so that the reported collision does not depend on map order.
	for _, e := range cfg.Vocab.sorted() {
		token, err := DecodeLabel(e.label, specials)
		if err != nil {
			return nil, err
		}
		if _, exists := v.forward[token]; exists {
			return nil, fmt.Errorf("%w: label %q resolves to %q which is already mapped", ErrDuplicateToken, e.label, token)
		}

		id := int32(e.id) //nolint:gosec // G115: range checked by Config.Validate.
		v.forward[token] = id
		v.reverse[id] = token
	}

	return v, nil
}

// Entry is a single vocabulary item in runtime form.
type Entry struct {
	ID      int32
	Token   string // Character or special token string
	Label   string // Artifact label
	Special bool
}

func (v *vocabulary) entries(specials SpecialTokens) []Entry {
	out := make([]Entry, 0, len(v.reverse))
	for id, token := range v.reverse {
		out = append(out, Entry{
			ID:      id,
			Token:   token,
			Label:   EncodeLabel(token, specials),
			Special: specials.Contains(token),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *vocabulary) config(specials SpecialTokens) *Config {
	vocab := make(Vocab, len(v.forward))
	for token, id := range v.forward {
		vocab[EncodeLabel(token, specials)] = int(id)
	}
	cfg := NewConfig(vocab)
	cfg.PadToken = specials.Pad
	cfg.UnkToken = specials.Unk
	cfg.BosToken = specials.Bos
	cfg.EosToken = specials.Eos
	return cfg
}
