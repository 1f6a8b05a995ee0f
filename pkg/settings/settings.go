// Package settings persists the shell preferences the CLI reuses between
// runs: canvas size, default output file, clipping, the last shape library
// manifest and the preferred store.
//
// Settings live in a TOML file, by default ~/.config/isostack/settings.toml.
// A missing file yields [Defaults]; unknown keys are rejected so typos do
// not silently fall back to defaults.
package settings

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/render"
)

// FileName is the settings file inside the config directory.
const FileName = "settings.toml"

// Settings are the persisted shell preferences.
type Settings struct {
	Canvas render.Canvas `toml:"canvas"`

	// Output is the default file for compile when -o is omitted.
	Output string `toml:"output"`

	// Clip fits exported documents around their contents.
	Clip bool `toml:"clip"`

	// Library is the last shape library manifest loaded. Empty means the
	// embedded default library.
	Library string `toml:"library,omitempty"`

	Store    string `toml:"store,omitempty"`
	StoreDSN string `toml:"store_dsn,omitempty"`
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{
		Canvas: render.DefaultCanvas,
		Output: "diagram.svg",
	}
}

// DefaultPath returns ~/.config/isostack/settings.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "get home dir")
	}
	return filepath.Join(home, ".config", "isostack", FileName), nil
}

// Load reads settings from path. A missing file returns Defaults.
// Fields absent from the file keep their default values.
func Load(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Wrap(errors.ErrCodeInternal, err, "read settings")
	}

	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return Defaults(), errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Defaults(), errors.New(errors.ErrCodeInvalidFormat, "%s: unknown setting %q", path, undecoded[0].String())
	}
	if err := s.Validate(); err != nil {
		return Defaults(), err
	}
	return s, nil
}

// Save writes s to path, creating parent directories.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode settings")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create settings dir")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write settings")
	}
	return nil
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Canvas.Width <= 0 || s.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must be positive, got %gx%g", s.Canvas.Width, s.Canvas.Height)
	}
	if s.Output != "" {
		if err := errors.ValidateFileName(filepath.Base(s.Output)); err != nil {
			return err
		}
	}
	return nil
}
