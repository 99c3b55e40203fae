package api

import (
	"encoding/json"
	"net/http"
)

const maxSimulateBody = 1 << 12

// simulateRequest mirrors the OpenAPI schema for POST /simulate.
type simulateRequest struct {
	CompanyID string  `json:"company_id" validate:"required"`
	NewPrice  float64 `json:"new_price" validate:"gt=0"`
}

// handleSimulate handles POST /simulate.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_simulate"

	var req simulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSimulateBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.fail(w, r, NewKind(op, ErrBadRequest, "invalid JSON body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.fail(w, r, NewKind(op, ErrBadRequest, validationMessage(err)))
		return
	}

	sim, err := s.deps.Simulate(r.Context(), req.CompanyID, req.NewPrice)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sim)
}
