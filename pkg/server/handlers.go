package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tablekit/sortstate/pkg/observability/metrics"
	"github.com/tablekit/sortstate/pkg/orderby"
	"github.com/tablekit/sortstate/pkg/sortstate"
)

// fieldStatus is the per-field rendering payload the client uses to
// toggle its visual indicators.
type fieldStatus struct {
	Field  string                  `json:"field"`
	Label  string                  `json:"label"`
	Status sortstate.DisplayStatus `json:"status"`
}

// sortResponse mirrors everything the view layer reads after a mutation:
// the persisted state shape, per-field display status, and the derived
// ordering keys in signed form.
type sortResponse struct {
	State  sortstate.State `json:"state"`
	Fields []fieldStatus   `json:"fields"`
	Keys   []string        `json:"keys"`
}

// errorResponse is the consistent error payload.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleGetSort(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.acquire(w, r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "session_error", err)
		return
	}
	defer sess.mu.Unlock()

	s.writeJSON(w, http.StatusOK, buildSortResponse(sess.ctrl))
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	field := mux.Vars(r)["field"]

	sess, err := s.sessions.acquire(w, r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "session_error", err)
		return
	}
	defer sess.mu.Unlock()

	before, wasActive := sess.ctrl.FieldState(field)
	if err := sess.ctrl.Toggle(field); err != nil {
		metrics.RecordToggle(field, metrics.OutcomeRejected)
		var unknown *sortstate.UnknownFieldError
		if errors.As(err, &unknown) {
			s.writeError(w, http.StatusNotFound, "unknown_field", err)
			return
		}
		// An invalid direction on a managed criterion is a defect, not a
		// client mistake.
		s.log.Error("toggle failed", "field", field, "error", err)
		s.writeError(w, http.StatusInternalServerError, "invalid_state", err)
		return
	}

	after, isActive := sess.ctrl.FieldState(field)
	metrics.RecordToggle(field, toggleOutcome(wasActive, isActive, before, after))

	s.writeJSON(w, http.StatusOK, buildSortResponse(sess.ctrl))
}

func (s *Server) handleReplaceSort(w http.ResponseWriter, r *http.Request) {
	var state sortstate.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed_body", err)
		return
	}

	sess, err := s.sessions.acquire(w, r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "session_error", err)
		return
	}
	defer sess.mu.Unlock()

	if err := sess.ctrl.Replace(state); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_state", err)
		return
	}
	s.writeJSON(w, http.StatusOK, buildSortResponse(sess.ctrl))
}

func (s *Server) handleResetSort(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.acquire(w, r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "session_error", err)
		return
	}
	defer sess.mu.Unlock()

	if err := sess.ctrl.Replace(nil); err != nil {
		s.writeError(w, http.StatusInternalServerError, "invalid_state", err)
		return
	}
	s.writeJSON(w, http.StatusOK, buildSortResponse(sess.ctrl))
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.acquire(w, r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "session_error", err)
		return
	}
	keys := sess.ctrl.OrderingKeys()
	sess.mu.Unlock()

	records, err := s.source.Records(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "source_error", err)
		return
	}
	orderby.Sort(records, keys, orderby.MapGetter)

	s.writeJSON(w, http.StatusOK, map[string]any{"items": records})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func buildSortResponse(ctrl *sortstate.Controller) sortResponse {
	fields := ctrl.Fields()
	statuses := make([]fieldStatus, 0, len(fields))
	for _, f := range fields {
		statuses = append(statuses, fieldStatus{
			Field:  f.Field,
			Label:  f.Label,
			Status: ctrl.DisplayStatus(f.Field),
		})
	}
	keys := ctrl.OrderingKeys()
	signed := make([]string, 0, len(keys))
	for _, k := range keys {
		if k.Kind == sortstate.KindField {
			signed = append(signed, k.Signed())
		}
	}
	state := ctrl.State()
	if state == nil {
		state = sortstate.State{}
	}
	return sortResponse{State: state, Fields: statuses, Keys: signed}
}

func toggleOutcome(wasActive, isActive bool, before, after sortstate.Criterion) string {
	switch {
	case !wasActive && isActive:
		return metrics.OutcomeActivated
	case wasActive && !isActive:
		return metrics.OutcomeDeactivated
	case wasActive && isActive && before.Order != after.Order:
		return metrics.OutcomeFlipped
	default:
		return metrics.OutcomeActivated
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("response encoding failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code string, err error) {
	s.writeJSON(w, status, errorResponse{Error: code, Message: err.Error()})
}
