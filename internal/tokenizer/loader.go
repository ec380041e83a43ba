package tokenizer

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultConfigName is the artifact file name looked up by
// ExecutableDirResolver.
const DefaultConfigName = "tokenizer_config_v2.json"

// Resolver returns the location of the default config artifact. An empty
// path means there is no default.
type Resolver func() (string, error)

// StaticResolver always resolves to path.
func StaticResolver(path string) Resolver {
	return func() (string, error) {
		return path, nil
	}
}

// ExecutableDirResolver resolves to DefaultConfigName next to the running
// binary.
func ExecutableDirResolver() Resolver {
	return func() (string, error) {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		return filepath.Join(filepath.Dir(exe), DefaultConfigName), nil
	}
}

// EnvResolver resolves to the value of the environment variable name, or
// defers to fallback when it is unset or empty.
func EnvResolver(name string, fallback Resolver) Resolver {
	return func() (string, error) {
		if path := os.Getenv(name); path != "" {
			return path, nil
		}
		if fallback == nil {
			return "", nil
		}
		return fallback()
	}
}

// Loader reads config artifacts and builds tokenizers from them.
type Loader struct {
	resolve   Resolver
	readFile  func(name string) ([]byte, error)
	writeFile func(name string, data []byte) error
	logger    *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithResolver sets how the default artifact is located when Load is called
// without a path. A nil resolver disables the default.
func WithResolver(r Resolver) LoaderOption {
	return func(l *Loader) {
		l.resolve = r
	}
}

// WithFS reads artifacts from fsys instead of the operating system. Paths
// are then interpreted as fs.FS paths. Saving is not supported on an fs.FS.
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		l.readFile = func(name string) ([]byte, error) {
			return fs.ReadFile(fsys, name)
		}
		l.writeFile = func(name string, _ []byte) error {
			return &fs.PathError{Op: "write", Path: name, Err: errors.ErrUnsupported}
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader that falls back to ExecutableDirResolver.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		resolve:   ExecutableDirResolver(),
		readFile:  readOSFile,
		writeFile: writeOSFile,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func readOSFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // G304: Loading config from user-specified path is intentional.
}

func writeOSFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0o644) //nolint:gosec // G306: Config artifacts are meant to be shared.
}

// Load builds a tokenizer from the artifact at path. An empty path falls
// back to the loader's resolver. ErrConfigNotFound is returned when neither
// names an existing artifact.
func (l *Loader) Load(path string) (*CharTokenizer, error) {
	cfg, err := l.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	tok, err := NewCharTokenizer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokenizer: %w", err)
	}
	return tok, nil
}

// LoadConfig reads and parses the artifact without building a tokenizer.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	if path == "" {
		resolved, err := l.resolveDefault()
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	data, err := l.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read tokenizer config: %w", err)
	}

	cfg, err := ParseConfig(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.logger.Debug("loaded tokenizer config",
		zap.String("path", path),
		zap.Int("vocab_size", len(cfg.Vocab)),
	)
	return cfg, nil
}

func (l *Loader) resolveDefault() (string, error) {
	if l.resolve == nil {
		return "", fmt.Errorf("%w: no path given and no default location configured", ErrConfigNotFound)
	}
	path, err := l.resolve()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfigNotFound, err)
	}
	if path == "" {
		return "", fmt.Errorf("%w: no path given and no default location configured", ErrConfigNotFound)
	}

	l.logger.Debug("using default tokenizer config", zap.String("path", path))
	return path, nil
}

// Save writes the tokenizer's vocabulary to path. The format follows the
// file extension.
func (l *Loader) Save(t *CharTokenizer, path string) error {
	var buf bytes.Buffer
	if err := t.ExportConfig().Encode(&buf, FormatFromPath(path)); err != nil {
		return err
	}
	if err := l.writeFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write tokenizer config: %w", err)
	}

	l.logger.Debug("saved tokenizer config",
		zap.String("path", path),
		zap.Int("vocab_size", t.VocabSize()),
	)
	return nil
}

// LoadFromFile builds a tokenizer from the artifact at path, or from the
// artifact next to the executable when path is empty.
func LoadFromFile(path string) (*CharTokenizer, error) {
	return NewLoader().Load(path)
}

// SaveConfigFile writes the tokenizer's vocabulary to path.
func SaveConfigFile(t *CharTokenizer, path string) error {
	return NewLoader().Save(t, path)
}
