package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/render"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Defaults(), s); diff != "" {
		t.Errorf("Load(missing) mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	want := Settings{
		Canvas:   render.Canvas{Width: 1024, Height: 768},
		Output:   "network.png",
		Clip:     true,
		Library:  "/srv/shapes/library.toml",
		Store:    "sqlite",
		StoreDSN: "diagrams.db",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	os.WriteFile(path, []byte("clip = true\n"), 0o600)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Clip || s.Canvas != render.DefaultCanvas || s.Output != "diagram.svg" {
		t.Errorf("Load = %+v, want defaults with clip", s)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    errors.Code
	}{
		{"not toml", "clip = = true", errors.ErrCodeInvalidFormat},
		{"unknown key", "colour = \"red\"\n", errors.ErrCodeInvalidFormat},
		{"wrong type", "clip = \"yes\"\n", errors.ErrCodeInvalidFormat},
		{"zero canvas", "[canvas]\nwidth = 0\nheight = 600\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			os.WriteFile(path, []byte(tt.content), 0o600)
			s, err := Load(path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load() error = %v, want %s", err, tt.want)
			}
			if diff := cmp.Diff(Defaults(), s); diff != "" {
				t.Errorf("failed Load should return defaults (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s := Defaults()
	s.Canvas.Height = -1
	if err := Save(path, s); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save() error = %v, want INVALID_INPUT", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid settings should not be written")
	}
}
