package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/caugraph/caugraph/pkg/engine"
	cgerrors "github.com/caugraph/caugraph/pkg/errors"
	"github.com/caugraph/caugraph/pkg/graph"
	"github.com/caugraph/caugraph/pkg/graphio"
	"github.com/caugraph/caugraph/pkg/store"
)

// createGraphRequest is the body of POST /v1/graphs.
type createGraphRequest struct {
	Name     string           `json:"name"`
	Document graphio.Document `json:"document"`
}

// recordSummary is the list/detail representation of a stored graph.
type recordSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Nodes     int    `json:"nodes"`
	Edges     int    `json:"edges"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func summarize(rec *store.Record) recordSummary {
	return recordSummary{
		ID:        rec.ID,
		Name:      rec.Name,
		Kind:      rec.Document.Kind,
		Nodes:     len(rec.Document.Nodes),
		Edges:     len(rec.Document.Edges),
		CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req createGraphRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}

	// Validate the document by rebuilding the graph it describes.
	switch req.Document.Kind {
	case graphio.KindDAG:
		if _, err := graphio.ToDAG(req.Document); err != nil {
			writeError(w, err)
			return
		}
	case graphio.KindPDAG:
		if _, err := graphio.ToPDAG(req.Document); err != nil {
			writeError(w, err)
			return
		}
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("unknown graph kind %q", req.Document.Kind),
			Code:  cgerrors.ErrCodeInvalidDocument,
		})
		return
	}

	rec := store.NewRecord(req.Name, req.Document)
	if err := s.store.Save(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, summarize(rec))
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]recordSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, summarize(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadDAG fetches a stored record and rebuilds it as a DAG.
func (s *Server) loadDAG(r *http.Request) (*graph.DAG, error) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return graphio.ToDAG(rec.Document)
}

// loadPDAG fetches a stored record and rebuilds it as a PDAG.
func (s *Server) loadPDAG(r *http.Request) (*graph.PDAG, error) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return graphio.ToPDAG(rec.Document)
}

func (s *Server) handleTrails(w http.ResponseWriter, r *http.Request) {
	g, err := s.loadDAG(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var q engine.TrailsQuery
	if err := decodeBody(r, &q); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}

	res, hit, err := s.runner.ActiveTrailsWithCacheInfo(r.Context(), g, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		*engine.TrailsResult
		CacheHit bool `json:"cache_hit"`
	}{res, hit})
}

func (s *Server) handleDSep(w http.ResponseWriter, r *http.Request) {
	g, err := s.loadDAG(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var q engine.DSepQuery
	if err := decodeBody(r, &q); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}

	res, hit, err := s.runner.IsDConnectedWithCacheInfo(r.Context(), g, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		*engine.DSepResult
		CacheHit bool `json:"cache_hit"`
	}{res, hit})
}

func (s *Server) handleSeparator(w http.ResponseWriter, r *http.Request) {
	g, err := s.loadDAG(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var q engine.SeparatorQuery
	if err := decodeBody(r, &q); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}

	res, hit, err := s.runner.MinimalSeparatorWithCacheInfo(r.Context(), g, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		*engine.SeparatorResult
		CacheHit bool `json:"cache_hit"`
	}{res, hit})
}

// orientRequest is the body of POST /v1/graphs/{id}/orient.
type orientRequest struct {
	ApplyR4 bool `json:"apply_r4"`
}

func (s *Server) handleOrient(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadPDAG(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req orientRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
			return
		}
	}

	oriented, hit, err := s.runner.OrientWithCacheInfo(r.Context(), p, req.ApplyR4)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Document graphio.Document `json:"document"`
		CacheHit bool             `json:"cache_hit"`
	}{graphio.FromPDAG(oriented), hit})
}

func (s *Server) handleExtend(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadPDAG(r)
	if err != nil {
		writeError(w, err)
		return
	}

	extended, hit, err := s.runner.ExtendWithCacheInfo(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Document graphio.Document `json:"document"`
		CacheHit bool             `json:"cache_hit"`
	}{graphio.FromDAG(extended), hit})
}

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	engine.FormatDOT: "text/vnd.graphviz",
	engine.FormatSVG: "image/svg+xml",
	engine.FormatPNG: "image/png",
	engine.FormatPDF: "application/pdf",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts := engine.RenderOptions{
		Format:      r.URL.Query().Get("format"),
		ShowWeights: r.URL.Query().Get("weights") == "true",
	}
	if opts.Format == "" {
		opts.Format = engine.FormatSVG
	}
	if scale := r.URL.Query().Get("scale"); scale != "" {
		f, err := strconv.ParseFloat(scale, 64)
		if err != nil || f <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid scale", Code: cgerrors.ErrCodeInvalidQuery})
			return
		}
		opts.Scale = f
	}
	if !engine.ValidFormats[opts.Format] {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("unsupported format %q", opts.Format),
			Code:  cgerrors.ErrCodeInvalidFormat,
		})
		return
	}

	var data []byte
	switch rec.Document.Kind {
	case graphio.KindDAG:
		g, err := graphio.ToDAG(rec.Document)
		if err != nil {
			writeError(w, err)
			return
		}
		data, err = s.runner.RenderDAG(r.Context(), g, opts)
		if err != nil {
			writeError(w, err)
			return
		}
	case graphio.KindPDAG:
		p, err := graphio.ToPDAG(rec.Document)
		if err != nil {
			writeError(w, err)
			return
		}
		data, err = s.runner.RenderPDAG(r.Context(), p, opts)
		if err != nil {
			writeError(w, err)
			return
		}
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("unknown graph kind %q", rec.Document.Kind),
			Code:  cgerrors.ErrCodeInvalidDocument,
		})
		return
	}

	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
