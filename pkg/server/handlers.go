package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/planarfaces/pkg/buildinfo"
	"github.com/matzehuels/planarfaces/pkg/errors"
	"github.com/matzehuels/planarfaces/pkg/ids"
	pio "github.com/matzehuels/planarfaces/pkg/io"
	"github.com/matzehuels/planarfaces/pkg/planar"
	"github.com/matzehuels/planarfaces/pkg/render"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"capabilities": planar.Capabilities()})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// handleFaces runs the pipeline for the posted document and returns one
// artifact, selected by ?format= (default json).
func (s *Server) handleFaces(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := s.defOpts
	opts.Logger = loggerFrom(r.Context(), s.logger)
	q := r.URL.Query()
	if v := q.Get("strategy"); v != "" {
		opts.Strategy = v
	}
	if opts.AllowParallelEdges, err = s.parallelEdges(r); err != nil {
		writeError(w, r, err)
		return
	}
	format := render.FormatJSON
	if v := q.Get("format"); v != "" {
		if format, err = render.ParseFormat(v); err != nil {
			writeError(w, r, err)
			return
		}
	}
	opts.Formats = []string{string(format)}

	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Run-ID", res.RunID)
	w.Header().Set("X-Face-Count", strconv.Itoa(res.Stats.FaceCount))
	if res.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[string(format)])
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pio.NewBoundsRecord(g.Bounds()))
}

func (s *Server) handleAdjacent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "faceID"), 10, 64)
	if err != nil {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "face id must be an integer"))
		return
	}
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := g.AdjacentFaces(ids.Handle(id)); err != nil {
		writeError(w, r, err)
		return
	}
	writeError(w, r, errors.New(errors.ErrCodeInternal, "adjacent faces returned no result"))
}

func (s *Server) handleHitTest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "x and y query parameters must be numbers"))
		return
	}
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := g.HitTest(x, y); err != nil {
		writeError(w, r, err)
		return
	}
	writeError(w, r, errors.New(errors.ErrCodeInternal, "hit test returned no result"))
}

// readDocument decodes the request body, enforcing the body size limit.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (planar.Document, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	defer body.Close()
	return pio.ReadDocument(body)
}

// readGraph builds a graph from the request body, honouring
// ?allow_parallel_edges=.
func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (*planar.Graph, error) {
	parallel, err := s.parallelEdges(r)
	if err != nil {
		return nil, err
	}
	doc, err := s.readDocument(w, r)
	if err != nil {
		return nil, err
	}
	var opts []planar.Option
	if parallel {
		opts = append(opts, planar.WithParallelEdges())
	}
	return planar.New(doc, opts...)
}

// parallelEdges reads ?allow_parallel_edges=, falling back to the server
// default when it is absent.
func (s *Server) parallelEdges(r *http.Request) (bool, error) {
	q := r.URL.Query()
	if !q.Has("allow_parallel_edges") {
		return s.defOpts.AllowParallelEdges, nil
	}
	v, err := strconv.ParseBool(q.Get("allow_parallel_edges"))
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "allow_parallel_edges must be a boolean, got %q", q.Get("allow_parallel_edges"))
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
