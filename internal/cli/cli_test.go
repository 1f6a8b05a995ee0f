package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/settings"
)

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// env is an isolated CLI environment: settings, cache and store live in a
// temp dir and stdout and log output are captured.
type env struct {
	t        *testing.T
	dir      string
	settings string
	out      bytes.Buffer
	logs     bytes.Buffer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	e := &env{t: t, dir: dir, settings: filepath.Join(dir, "settings.toml")}

	old := stdout
	stdout = &e.out
	t.Cleanup(func() { stdout = old })
	captureStderr(t)
	return e
}

func (e *env) path(name string) string { return filepath.Join(e.dir, name) }

// run executes one command line with a fresh CLI.
func (e *env) run(args ...string) error {
	e.t.Helper()
	e.out.Reset()
	e.logs.Reset()
	c := New(&e.logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--settings", e.settings}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SilenceErrors = true
	return root.ExecuteContext(context.Background())
}

func (e *env) mustRun(args ...string) {
	e.t.Helper()
	if err := e.run(args...); err != nil {
		e.t.Fatalf("isostack %s: %v", strings.Join(args, " "), err)
	}
}

func (e *env) read(name string) []diagram.Component {
	e.t.Helper()
	list, err := readDiagram(e.path(name))
	if err != nil {
		e.t.Fatalf("read %s: %v", name, err)
	}
	return list
}

func TestResolveID(t *testing.T) {
	list := []diagram.Component{
		{ID: "shape-abc123"},
		{ID: "shape-abd456"},
		{ID: "shape-f00"},
	}
	tests := []struct {
		ref  string
		want string
		code errors.Code
	}{
		{"", "", ""},
		{"shape-abc123", "shape-abc123", ""},
		{"abc123", "shape-abc123", ""},
		{"abc", "shape-abc123", ""},
		{"shape-f", "shape-f00", ""},
		{"ab", "", errors.ErrCodeInvalidInput},
		{"zzz", "", errors.ErrCodeComponentNotFound},
	}
	for _, tt := range tests {
		got, err := resolveID(list, tt.ref)
		if tt.code != "" {
			if !errors.Is(err, tt.code) {
				t.Errorf("resolveID(%q) err = %v, want %s", tt.ref, err, tt.code)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("resolveID(%q) = %q, %v; want %q", tt.ref, got, err, tt.want)
		}
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 12.5, -3")
	if err != nil || p != (diagram.Point{X: 12.5, Y: -3}) {
		t.Errorf("parsePoint = %v, %v", p, err)
	}
	for _, bad := range []string{"", "1", "a,b", "1;2"} {
		if _, err := parsePoint(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("parsePoint(%q) err = %v", bad, err)
		}
	}
}

func TestSetSetting(t *testing.T) {
	s := settings.Defaults()
	for _, kv := range [][2]string{{"width", "1024"}, {"height", "768"}, {"clip", "true"}, {"output", "out.png"}, {"store", "sqlite"}} {
		if err := setSetting(&s, kv[0], kv[1]); err != nil {
			t.Fatalf("setSetting(%s): %v", kv[0], err)
		}
	}
	if s.Canvas.Width != 1024 || s.Canvas.Height != 768 || !s.Clip || s.Output != "out.png" || s.Store != "sqlite" {
		t.Errorf("settings = %+v", s)
	}

	for _, kv := range [][2]string{{"width", "-1"}, {"clip", "yes please"}, {"store", "floppy"}, {"colour", "red"}} {
		if err := setSetting(&s, kv[0], kv[1]); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("setSetting(%s=%s) err = %v", kv[0], kv[1], err)
		}
	}
}

func TestEditCommands(t *testing.T) {
	e := newEnv(t)
	file := e.path("d.json")

	e.mustRun("new", file)
	if err := e.run("new", file); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("new over existing file err = %v", err)
	}

	e.mustRun("add", file, "layer4x3")
	root := e.read("d.json")[0].ID

	e.mustRun("add", file, "microservice", "--on", root, "--at", "top")
	e.mustRun("add", file, "database", "--on", root, "--at", "front-left")
	list := e.read("d.json")
	if len(list) != 3 {
		t.Fatalf("got %d components, want 3", len(list))
	}
	service, db := list[1].ID, list[2].ID
	if list[1].Parent() != root || list[1].Position != "top" {
		t.Errorf("service = %+v", list[1])
	}
	if len(list[1].AttachmentPoints) == 0 || list[0].AbsolutePosition == (diagram.Point{}) {
		t.Error("edits should store compiled positions and anchors")
	}

	e.mustRun("decorate", file, "process", "--on", service)
	if diff := cmp.Diff([]diagram.Attached2DShape{{Name: "process", AttachedTo: "top"}}, e.read("d.json")[1].Attached2DShapes); diff != "" {
		t.Errorf("decorations mismatch (-want +got):\n%s", diff)
	}
	e.mustRun("undecorate", file, service, "0")
	if n := len(e.read("d.json")[1].Attached2DShapes); n != 0 {
		t.Errorf("%d decorations left", n)
	}

	// Move the database onto the service.
	e.mustRun("cut", file, db)
	if !e.read("d.json")[2].Cut {
		t.Error("cut should mark the component")
	}
	e.mustRun("paste", file, "--on", service)
	moved, _ := diagram.Find(e.read("d.json"), db)
	if moved.Parent() != service || moved.Cut {
		t.Errorf("pasted = %+v", moved)
	}

	e.mustRun("remove", file, service)
	if n := len(e.read("d.json")); n != 1 {
		t.Errorf("remove left %d components, want 1", n)
	}

	e.mustRun("check", file)
	if !strings.Contains(e.out.String(), "valid") {
		t.Errorf("check output = %q", e.out.String())
	}
}

func TestEditRejectionsLeaveFileUntouched(t *testing.T) {
	e := newEnv(t)
	file := e.path("d.json")
	e.mustRun("new", file)
	e.mustRun("add", file, "layer4x3")
	before, _ := os.ReadFile(file)
	root := e.read("d.json")[0].ID

	tests := []struct {
		args []string
		code errors.Code
	}{
		{[]string{"cut", file, root}, errors.ErrCodeRootCut},
		{[]string{"add", file, "microservice"}, errors.ErrCodeNoSelection},
		{[]string{"add", file, "unicorn", "--on", root}, errors.ErrCodeShapeNotFound},
		{[]string{"paste", file, "--on", root}, errors.ErrCodeNothingCut},
		{[]string{"undecorate", file, root, "x"}, errors.ErrCodeInvalidIndex},
		{[]string{"remove", file, "nobody"}, errors.ErrCodeComponentNotFound},
	}
	for _, tt := range tests {
		if err := e.run(tt.args...); !errors.Is(err, tt.code) {
			t.Errorf("%v err = %v, want %s", tt.args, err, tt.code)
		}
	}

	after, _ := os.ReadFile(file)
	if !bytes.Equal(before, after) {
		t.Error("rejected edits must not rewrite the file")
	}
}

func TestCheckWarnsOnBadSettings(t *testing.T) {
	e := newEnv(t)
	file := e.path("d.json")
	e.mustRun("new", file)
	e.mustRun("add", file, "layer4x3")

	if err := os.WriteFile(e.settings, []byte("width = \"wide\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e.mustRun("check", file)
	if !strings.Contains(e.logs.String(), "ignoring settings") {
		t.Errorf("check should warn about unreadable settings, logs:\n%s", e.logs.String())
	}
	if !strings.Contains(e.out.String(), "valid") {
		t.Errorf("check output = %q", e.out.String())
	}
}

func TestCompileCommand(t *testing.T) {
	e := newEnv(t)
	file := e.path("d.json")
	e.mustRun("new", file)
	e.mustRun("add", file, "layer4x3")

	out := e.path("d.svg")
	e.mustRun("compile", file, "-o", out, "--width", "400", "--height", "300")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(data, []byte(`width="400"`)) {
		t.Errorf("output = %.120s", data)
	}

	jsonOut := e.path("d.out.json")
	e.mustRun("compile", file, "-o", jsonOut)
	if data, _ := os.ReadFile(jsonOut); !bytes.Contains(data, []byte(`"components"`)) {
		t.Errorf("json output = %.120s", data)
	}

	if err := e.run("compile", e.path("missing.json")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing input err = %v", err)
	}
}

func TestTreeCommand(t *testing.T) {
	e := newEnv(t)
	file := e.path("d.json")
	e.mustRun("new", file)
	e.mustRun("add", file, "layer4x3")
	root := e.read("d.json")[0].ID
	e.mustRun("add", file, "microservice", "--on", root)

	e.mustRun("tree", file)
	if !strings.Contains(e.out.String(), "digraph") {
		t.Errorf("tree output = %q", e.out.String())
	}
}

func TestStoreCommands(t *testing.T) {
	e := newEnv(t)
	file := e.path("d.json")
	e.mustRun("new", file)
	e.mustRun("add", file, "layer4x3")

	for _, backend := range []string{"file", "sqlite"} {
		dsn := e.path("store-" + backend)
		if backend == "sqlite" {
			dsn += ".db"
		}
		flags := []string{"--store", backend, "--store-dsn", dsn}

		e.mustRun(append([]string{"save", file, "net"}, flags...)...)
		e.mustRun(append([]string{"store", "list"}, flags...)...)
		if strings.TrimSpace(e.out.String()) != "net" {
			t.Errorf("%s: store list = %q", backend, e.out.String())
		}

		copyPath := e.path("copy-" + backend + ".json")
		e.mustRun(append([]string{"load", "net", copyPath}, flags...)...)
		if diff := cmp.Diff(e.read("d.json"), e.read(filepath.Base(copyPath))); diff != "" {
			t.Errorf("%s: loaded diagram mismatch (-want +got):\n%s", backend, diff)
		}

		e.mustRun(append([]string{"store", "delete", "net"}, flags...)...)
		if err := e.run(append([]string{"load", "net", e.path("gone.json")}, flags...)...); !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("%s: load after delete err = %v", backend, err)
		}
	}

	if err := e.run("store", "list", "--store", "memory"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("memory store err = %v", err)
	}
}

func TestConfigCommands(t *testing.T) {
	e := newEnv(t)
	e.mustRun("config", "set", "width", "1200")
	e.mustRun("config", "set", "clip", "true")

	s, err := settings.Load(e.settings)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Canvas.Width != 1200 || !s.Clip {
		t.Errorf("settings = %+v", s)
	}

	e.mustRun("config", "show")
	if !strings.Contains(e.out.String(), "1200x600") {
		t.Errorf("config show = %q", e.out.String())
	}
	e.mustRun("config", "path")
	if strings.TrimSpace(e.out.String()) != e.settings {
		t.Errorf("config path = %q", e.out.String())
	}
}

func TestShapesList(t *testing.T) {
	e := newEnv(t)
	e.mustRun("shapes", "list")
	for _, name := range []string{"layer4x3", "microservice", "process"} {
		if !strings.Contains(e.out.String(), name) {
			t.Errorf("shapes list missing %s", name)
		}
	}
}

func TestAnchorsCommand(t *testing.T) {
	e := newEnv(t)
	file := e.path("d.json")
	e.mustRun("new", file)
	e.mustRun("add", file, "layer4x3")
	root := e.read("d.json")[0]

	e.mustRun("anchors", file, root.ID)
	if !strings.Contains(e.out.String(), "top") {
		t.Errorf("anchors = %q", e.out.String())
	}

	top, ok := root.Anchor("top")
	if !ok {
		t.Fatal("layer4x3 has no top anchor")
	}
	e.mustRun("anchors", file, root.ID, "--near="+ftoa(top.X)+","+ftoa(top.Y))
	if !strings.Contains(e.out.String(), "top") {
		t.Errorf("closest anchor = %q", e.out.String())
	}
}

func ftoa(f float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(f, 'f', 3, 64), "0"), ".")
}
