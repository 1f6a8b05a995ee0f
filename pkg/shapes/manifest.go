package shapes

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/isostack/pkg/errors"
)

// ManifestName is the file name of the manifest inside a library directory.
const ManifestName = "library.toml"

//go:embed library/*.svg library/library.toml
var embedded embed.FS

type manifest struct {
	Shapes []manifestEntry `toml:"shape"`
}

type manifestEntry struct {
	Name     string `toml:"name"`
	Type     *Kind  `toml:"type"`
	AttachTo string `toml:"attachTo"`
	SVGFile  string `toml:"svgFile"`
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the embedded default library.
// It panics if the embedded manifest is broken, which is a build defect.
func Default() *Library {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "library")
		if err != nil {
			panic(err)
		}
		f, err := sub.Open(ManifestName)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		lib, err := ReadManifest(f, sub)
		if err != nil {
			panic(fmt.Sprintf("embedded shape library: %v", err))
		}
		defaultLib = lib
	})
	return defaultLib
}

// LoadManifest reads a TOML manifest from path and loads every referenced
// SVG file from the manifest's directory. If path is a directory, the
// manifest is expected at path/library.toml.
func LoadManifest(path string) (*Library, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ManifestName)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open manifest %s", path)
	}
	defer f.Close()
	return ReadManifest(f, os.DirFS(filepath.Dir(path)))
}

// ReadManifest decodes a TOML manifest from r and reads SVG files from fsys.
//
// Every entry must have name, type and svgFile. Unknown keys are rejected
// so that misspelled columns (e.g. "attach_to") do not silently drop data.
func ReadManifest(r io.Reader, fsys fs.FS) (*Library, error) {
	var m manifest
	md, err := toml.NewDecoder(r).Decode(&m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown manifest key %q", undecoded[0].String())
	}

	defs := make([]Definition, 0, len(m.Shapes))
	for i, e := range m.Shapes {
		if e.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "shape %d: missing name", i)
		}
		if e.Type == nil {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "shape %s: missing type", e.Name)
		}
		if err := errors.ValidateFileName(e.SVGFile); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "shape %s", e.Name)
		}
		data, err := fs.ReadFile(fsys, e.SVGFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "shape %s: read %s", e.Name, e.SVGFile)
		}
		defs = append(defs, Definition{
			Name:     e.Name,
			Kind:     *e.Type,
			AttachTo: e.AttachTo,
			SVGFile:  e.SVGFile,
			Markup:   string(data),
		})
	}
	return NewLibrary(defs)
}
