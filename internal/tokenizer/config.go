package tokenizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default special token strings.
const (
	DefaultPadToken = "<pad>"
	DefaultUnkToken = "<unk>"
	DefaultBosToken = "<bos>"
	DefaultEosToken = "<eos>"
)

// SpecialTokens holds the four reserved marker strings.
type SpecialTokens struct {
	Pad string
	Unk string
	Bos string
	Eos string
}

// DefaultSpecialTokens returns <pad>, <unk>, <bos>, <eos>.
func DefaultSpecialTokens() SpecialTokens {
	return SpecialTokens{
		Pad: DefaultPadToken,
		Unk: DefaultUnkToken,
		Bos: DefaultBosToken,
		Eos: DefaultEosToken,
	}
}

// Contains reports whether s is one of the special tokens.
func (s SpecialTokens) Contains(token string) bool {
	return token == s.Pad || token == s.Unk || token == s.Bos || token == s.Eos
}

// All returns the tokens in pad, unk, bos, eos order.
func (s SpecialTokens) All() []string {
	return []string{s.Pad, s.Unk, s.Bos, s.Eos}
}

func (s SpecialTokens) validate() error {
	seen := make(map[string]bool, 4)
	for _, tok := range s.All() {
		if tok == "" {
			return fmt.Errorf("%w: special tokens must not be empty", ErrInvalidConfig)
		}
		if seen[tok] {
			return fmt.Errorf("%w: special token %q used more than once", ErrInvalidConfig, tok)
		}
		seen[tok] = true
	}
	return nil
}

// Vocab maps artifact labels to token IDs.
//
// It marshals with entries ordered by ID so exported artifacts diff cleanly.
type Vocab map[string]int

type vocabEntry struct {
	label string
	id    int
}

func (v Vocab) sorted() []vocabEntry {
	entries := make([]vocabEntry, 0, len(v))
	for label, id := range v {
		entries = append(entries, vocabEntry{label: label, id: id})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].id != entries[j].id {
			return entries[i].id < entries[j].id
		}
		return entries[i].label < entries[j].label
	})
	return entries
}

// MarshalJSON implements json.Marshaler.
func (v Vocab) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, e := range v.sorted() {
		if i > 0 {
			buf.WriteByte(',')
		}
		// Encoder.Encode appends a newline; it is dropped when the
		// surrounding encoder compacts and re-indents the output.
		if err := enc.Encode(e.label); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.id))
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Vocab) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range v.sorted() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.label, Style: yaml.DoubleQuotedStyle},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(e.id)},
		)
	}
	return node, nil
}

// Config is the persisted shape of a character vocabulary.
type Config struct {
	Vocab    Vocab  `json:"vocab" yaml:"vocab"`
	PadToken string `json:"pad_token" yaml:"pad_token"`
	UnkToken string `json:"unk_token" yaml:"unk_token"`
	BosToken string `json:"bos_token" yaml:"bos_token"`
	EosToken string `json:"eos_token" yaml:"eos_token"`
}

// NewConfig creates a config with the default special tokens.
func NewConfig(vocab Vocab) *Config {
	return &Config{
		Vocab:    vocab,
		PadToken: DefaultPadToken,
		UnkToken: DefaultUnkToken,
		BosToken: DefaultBosToken,
		EosToken: DefaultEosToken,
	}
}

// SpecialTokens returns the configured special tokens.
func (c *Config) SpecialTokens() SpecialTokens {
	return SpecialTokens{
		Pad: c.PadToken,
		Unk: c.UnkToken,
		Bos: c.BosToken,
		Eos: c.EosToken,
	}
}

// Validate checks the config shape. Label syntax is checked when the
// vocabulary is built.
func (c *Config) Validate() error {
	if len(c.Vocab) == 0 {
		return fmt.Errorf("%w: vocab is empty", ErrInvalidConfig)
	}
	if err := c.SpecialTokens().validate(); err != nil {
		return err
	}

	owners := make(map[int]string, len(c.Vocab))
	for _, e := range c.Vocab.sorted() {
		if e.id < 0 {
			return fmt.Errorf("%w: label %q has negative ID %d", ErrInvalidConfig, e.label, e.id)
		}
		if e.id > maxTokenID {
			return fmt.Errorf("%w: label %q has ID %d out of range", ErrInvalidConfig, e.label, e.id)
		}
		if prev, ok := owners[e.id]; ok {
			return fmt.Errorf("%w: %d is assigned to both %q and %q", ErrDuplicateTokenID, e.id, prev, e.label)
		}
		owners[e.id] = e.label
	}
	return nil
}

// applyDefaults fills special tokens the artifact left out.
func (c *Config) applyDefaults() {
	if c.PadToken == "" {
		c.PadToken = DefaultPadToken
	}
	if c.UnkToken == "" {
		c.UnkToken = DefaultUnkToken
	}
	if c.BosToken == "" {
		c.BosToken = DefaultBosToken
	}
	if c.EosToken == "" {
		c.EosToken = DefaultEosToken
	}
}

// Format identifies the encoding of a config artifact.
type Format string

const (
	// FormatJSON is the canonical artifact encoding.
	FormatJSON Format = "json"

	// FormatYAML is accepted for hand-edited vocabularies.
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the artifact format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseConfig decodes a config artifact. Unknown fields are rejected and
// absent special tokens take their defaults.
func ParseConfig(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse yaml: %v", ErrInvalidConfig, err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse json: %v", ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, format)
	}

	if cfg.Vocab == nil {
		return nil, fmt.Errorf("%w: missing required field \"vocab\"", ErrInvalidConfig)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// Encode writes the config as an artifact. JSON output is tab indented
// and keeps non-ASCII characters and angle brackets literal.
func (c *Config) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "\t")
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
