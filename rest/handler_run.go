package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/persistence"
)

func (s *Server) HandleStartRun(w http.ResponseWriter, r *http.Request) {
	var req model.RunTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid run request")
		return
	}
	defer r.Body.Close()
	record, err := s.submissionService.StartRun(req.Workflow)
	if err != nil {
		logger.Error("error starting run", zap.String("workflow", req.Workflow), zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "error starting run")
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

func (s *Server) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	runId, values, ok := s.transitionArgs(w, r)
	if !ok {
		return
	}
	record, err := s.submissionService.Advance(runId, values)
	if err != nil {
		s.respondTransitionError(w, runId, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

func (s *Server) HandleBack(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runId, ok := vars["id"]
	if !ok {
		respondWithError(w, http.StatusBadRequest, "run id is required")
		return
	}
	record, err := s.submissionService.Back(runId)
	if err != nil {
		s.respondTransitionError(w, runId, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

func (s *Server) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	runId, values, ok := s.transitionArgs(w, r)
	if !ok {
		return
	}
	result, err := s.submissionService.Submit(runId, values)
	if err != nil {
		s.respondTransitionError(w, runId, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (s *Server) transitionArgs(w http.ResponseWriter, r *http.Request) (string, map[string]any, bool) {
	vars := mux.Vars(r)
	runId, ok := vars["id"]
	if !ok {
		respondWithError(w, http.StatusBadRequest, "run id is required")
		return "", nil, false
	}
	var req model.RunTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid transition request")
		return "", nil, false
	}
	defer r.Body.Close()
	return runId, req.Values, true
}

func (s *Server) respondTransitionError(w http.ResponseWriter, runId string, err error) {
	if _, ok := err.(persistence.NotFoundError); ok {
		respondWithError(w, http.StatusNotFound, "run does not exist")
		return
	}
	logger.Error("error in run transition", zap.String("id", runId), zap.Error(err))
	respondWithError(w, http.StatusBadRequest, err.Error())
}
