package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/diagram/editor"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/observability"
	"github.com/matzehuels/isostack/pkg/render"
	"github.com/matzehuels/isostack/pkg/shapes"
)

// opRequest carries the parameters of every editor operation. Each
// operation reads only the fields it needs.
type opRequest struct {
	Shape  string `json:"shape"`
	On     string `json:"on"`
	At     string `json:"at"`
	Anchor string `json:"anchor"`
	Face   string `json:"face"`
	ID     string `json:"id"`
	Index  *int   `json:"index"`
	Cut    string `json:"cut"`
}

// Ops lists the operation names accepted by POST /diagrams/{key}/ops/{op}.
var Ops = []string{"add", "decorate", "remove", "undecorate", "cut", "cancel", "paste"}

// runOp dispatches one editor operation.
func runOp(op string, list []diagram.Component, lib *shapes.Library, req opRequest) ([]diagram.Component, editor.Outcome, error) {
	switch op {
	case "add":
		out, o := editor.Add3D(list, lib, req.Shape, req.At, req.Anchor, req.On)
		return out, o, nil
	case "decorate":
		out, o := editor.Add2D(list, lib, req.Shape, req.Face, req.On)
		return out, o, nil
	case "remove":
		out, o := editor.Remove3D(list, req.ID)
		return out, o, nil
	case "undecorate":
		if req.Index == nil {
			return list, editor.Outcome{}, errors.New(errors.ErrCodeInvalidIndex, "undecorate needs an index")
		}
		out, o := editor.Remove2D(list, req.ID, *req.Index)
		return out, o, nil
	case "cut":
		out, o := editor.Cut(list, req.ID)
		return out, o, nil
	case "cancel":
		out, o := editor.CancelCut(list, req.ID)
		return out, o, nil
	case "paste":
		out, o := editor.Paste(list, req.Cut, req.On, req.At, req.Anchor)
		return out, o, nil
	}
	return list, editor.Outcome{}, errors.New(errors.ErrCodeUnsupported, "unknown operation %q (want one of %s)", op, strings.Join(Ops, ", "))
}

// applyOp loads a stored diagram, applies one operation, recompiles it so
// stored positions and anchors are current, and saves it. A rejected
// operation leaves the stored diagram untouched.
func (s *Server) applyOp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	op := chi.URLParam(r, "op")

	var req opRequest
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s parameters", op))
			return
		}
	}

	defer s.locks.lock(chi.URLParam(r, "key"))()
	key, list, ok := s.load(w, r)
	if !ok {
		return
	}

	out, o, err := runOp(op, list, s.runner.Library, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	observability.Editor().OnEdit(ctx, op, len(o.Affected), o.Err)
	if o.Err != nil {
		s.writeError(w, o.Err, o.Diagnostics...)
		return
	}

	res := s.runner.Compile(ctx, out, render.Options{Canvas: s.cfg.Canvas()})
	if err := s.save(r, key, res.Components); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("applied operation", "key", key, "op", op, "affected", len(o.Affected))

	writeJSON(w, http.StatusOK, diagramResponse{
		Key:         key,
		Components:  nonNil(res.Components),
		ID:          o.ID,
		Affected:    o.Affected,
		Diagnostics: append(o.Diagnostics, res.Diagnostics...),
	})
}
