package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/isostack/pkg/buildinfo"
	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/pipeline"
	"github.com/matzehuels/isostack/pkg/shapes"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// diagramResponse is returned by every route that stores a diagram.
type diagramResponse struct {
	Key         string               `json:"key"`
	Components  []diagram.Component  `json:"components"`
	ID          string               `json:"id,omitempty"`
	Affected    []string             `json:"affected,omitempty"`
	Diagnostics []diagram.Diagnostic `json:"diagnostics,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// listShapes returns the library. ?type=3D or ?type=2D filters by kind.
func (s *Server) listShapes(w http.ResponseWriter, r *http.Request) {
	lib := s.runner.Library
	switch strings.ToUpper(r.URL.Query().Get("type")) {
	case "":
		writeJSON(w, http.StatusOK, lib.Shapes())
	case shapes.Solid.String():
		writeJSON(w, http.StatusOK, lib.Solids())
	case shapes.Flat.String():
		writeJSON(w, http.StatusOK, lib.Flats())
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "type must be 3D or 2D"))
	}
}

func (s *Server) compile(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	list, err := diagram.Deserialize(data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.render(w, r, list)
}

func (s *Server) listDiagrams(w http.ResponseWriter, r *http.Request) {
	keys, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if r.URL.Query().Get("minted") == "true" {
		var minted []string
		for _, k := range keys {
			if isMintedKey(k) {
				minted = append(minted, k)
			}
		}
		keys = minted
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, keys)
}

// createDiagram stores the body, or an empty diagram when the body is
// empty, under a freshly minted key.
func (s *Server) createDiagram(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var list []diagram.Component
	if len(strings.TrimSpace(string(data))) > 0 {
		if list, err = diagram.Deserialize(data); err != nil {
			s.writeError(w, err)
			return
		}
	}
	key := newKey()
	if err := s.save(r, key, list); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/diagrams/"+key)
	writeJSON(w, http.StatusCreated, diagramResponse{Key: key, Components: nonNil(list)})
}

func (s *Server) getDiagram(w http.ResponseWriter, r *http.Request) {
	key, list, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, diagramResponse{Key: key, Components: list})
}

func (s *Server) putDiagram(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := validateKey(key); err != nil {
		s.writeError(w, err)
		return
	}
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	list, err := diagram.Deserialize(data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	defer s.locks.lock(key)()
	if err := s.save(r, key, list); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, diagramResponse{Key: key, Components: nonNil(list)})
}

func (s *Server) deleteDiagram(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := validateKey(key); err != nil {
		s.writeError(w, err)
		return
	}
	defer s.locks.lock(key)()
	if err := s.store.Delete(r.Context(), key); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) diagramSVG(w http.ResponseWriter, r *http.Request) {
	_, list, ok := s.load(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	q.Set("format", pipeline.FormatSVG)
	r.URL.RawQuery = q.Encode()
	s.render(w, r, list)
}

// render compiles list and writes the requested document. Query parameters:
// format, width, height, anchors, clip, padding, background, scale.
func (s *Server) render(w http.ResponseWriter, r *http.Request, list []diagram.Component) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := opts.Formats[0]
	res, err := s.runner.Execute(r.Context(), list, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Diagram-Hash", res.DiagramHash)
	w.Header().Set("X-Diagnostics", strconv.Itoa(res.Stats.Diagnostics))
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	canvas := s.cfg.Canvas()
	opts := pipeline.Options{
		Width:      canvas.Width,
		Height:     canvas.Height,
		Formats:    []string{pipeline.FormatSVG},
		Background: q.Get("background"),
		Logger:     s.logger,
	}
	if f := q.Get("format"); f != "" {
		if err := pipeline.ValidateFormat(f); err != nil {
			return opts, err
		}
		opts.Formats = []string{f}
	}

	var err error
	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"padding", &opts.Padding},
		{"scale", &opts.Scale},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		if *f.dst, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", f.name, v)
		}
	}
	bools := []struct {
		name string
		dst  *bool
	}{
		{"anchors", &opts.ShowAnchors},
		{"clip", &opts.Clip},
		{"refresh", &opts.Refresh},
	}
	for _, b := range bools {
		v := q.Get(b.name)
		if v == "" {
			continue
		}
		if *b.dst, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be true or false, got %q", b.name, v)
		}
	}
	return opts, nil
}

// load reads and decodes the diagram named by the key URL parameter,
// writing the error response itself on failure.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (string, []diagram.Component, bool) {
	key := chi.URLParam(r, "key")
	if err := validateKey(key); err != nil {
		s.writeError(w, err)
		return key, nil, false
	}
	text, err := s.store.Load(r.Context(), key)
	if err != nil {
		s.writeError(w, err)
		return key, nil, false
	}
	list, err := diagram.Deserialize([]byte(text))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "stored diagram %s is corrupt", key))
		return key, nil, false
	}
	return key, nonNil(list), true
}

func (s *Server) save(r *http.Request, key string, list []diagram.Component) error {
	data, err := diagram.Serialize(nonNil(list))
	if err != nil {
		return err
	}
	return s.store.Save(r.Context(), key, string(data))
}

func nonNil(list []diagram.Component) []diagram.Component {
	if list == nil {
		return []diagram.Component{}
	}
	return list
}
