package api

import (
	"net/http"

	cgerrors "github.com/caugraph/caugraph/pkg/errors"
	"github.com/caugraph/caugraph/pkg/independence"
)

// assertionPayload is the wire form of a conditional independence assertion.
type assertionPayload struct {
	Event1 []string `json:"event1"`
	Event2 []string `json:"event2"`
	Event3 []string `json:"event3,omitempty"`
}

func toPayload(a *independence.Assertion) assertionPayload {
	return assertionPayload{
		Event1: a.Event1().Sorted(),
		Event2: a.Event2().Sorted(),
		Event3: a.Event3().Sorted(),
	}
}

func buildIndependencies(payloads []assertionPayload) (*independence.Independencies, error) {
	ind := independence.New()
	for _, p := range payloads {
		a, err := independence.NewAssertion(p.Event1, p.Event2, p.Event3)
		if err != nil {
			return nil, err
		}
		ind.Add(a)
	}
	return ind, nil
}

func payloadList(ind *independence.Independencies) []assertionPayload {
	out := make([]assertionPayload, 0, ind.Len())
	for _, a := range ind.Assertions() {
		out = append(out, toPayload(a))
	}
	return out
}

// closureRequest is the body of POST /v1/independencies/closure and /reduce.
type closureRequest struct {
	Assertions []assertionPayload `json:"assertions"`
}

func (s *Server) handleClosure(w http.ResponseWriter, r *http.Request) {
	var req closureRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}
	ind, err := buildIndependencies(req.Assertions)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}

	closed, hit, err := s.runner.ClosureWithCacheInfo(r.Context(), ind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Assertions []assertionPayload `json:"assertions"`
		CacheHit   bool               `json:"cache_hit"`
	}{payloadList(closed), hit})
}

func (s *Server) handleReduce(w http.ResponseWriter, r *http.Request) {
	var req closureRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}
	ind, err := buildIndependencies(req.Assertions)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}

	reduced := ind.Reduce(false)
	writeJSON(w, http.StatusOK, struct {
		Assertions []assertionPayload `json:"assertions"`
	}{payloadList(reduced)})
}

// entailsRequest is the body of POST /v1/independencies/entails.
type entailsRequest struct {
	Assertions []assertionPayload `json:"assertions"`
	Other      []assertionPayload `json:"other"`
}

func (s *Server) handleEntails(w http.ResponseWriter, r *http.Request) {
	var req entailsRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}
	ind, err := buildIndependencies(req.Assertions)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}
	other, err := buildIndependencies(req.Other)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: cgerrors.ErrCodeInvalidQuery})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Entails bool `json:"entails"`
	}{ind.Entails(other)})
}
