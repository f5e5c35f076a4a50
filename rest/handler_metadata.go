package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/model"
)

func (s *Server) HandleCreateDefinition(w http.ResponseWriter, r *http.Request) {
	var def model.WorkflowDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid workflow definition payload")
		return
	}
	defer r.Body.Close()
	if err := s.submissionService.CreateDefinition(def); err != nil {
		logger.Error("error creating workflow definition", zap.String("workflow", def.Name), zap.Error(err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(w, "created")
}

func (s *Server) HandleGetDefinition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name, ok := vars["name"]
	if !ok {
		respondWithError(w, http.StatusBadRequest, "workflow name is required")
		return
	}
	def, err := s.submissionService.GetDefinition(name)
	if err != nil {
		logger.Info("workflow definition does not exist", zap.String("workflow", name))
		respondWithError(w, http.StatusNotFound, "workflow definition does not exist")
		return
	}
	respondWithJSON(w, http.StatusOK, def)
}

func (s *Server) HandleDeleteDefinition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name, ok := vars["name"]
	if !ok {
		respondWithError(w, http.StatusBadRequest, "workflow name is required")
		return
	}
	if err := s.submissionService.DeleteDefinition(name); err != nil {
		logger.Error("error deleting workflow definition", zap.String("workflow", name), zap.Error(err))
		respondWithError(w, http.StatusBadRequest, "error deleting workflow definition")
		return
	}
	respondOK(w, "deleted")
}
