package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/service"
	"go.uber.org/zap"
)

type Server struct {
	http.Server
	Port              int
	submissionService *service.SubmissionService
}

func NewServer(httpPort int, submissionService *service.SubmissionService) (*Server, error) {
	s := &Server{
		Server: http.Server{
			Addr: fmt.Sprintf(":%d", httpPort),
		},
		Port:              httpPort,
		submissionService: submissionService,
	}

	router := mux.NewRouter()
	router.HandleFunc("/definition", s.HandleCreateDefinition).Methods(http.MethodPost)
	router.HandleFunc("/definition/{name}", s.HandleGetDefinition).Methods(http.MethodGet)
	router.HandleFunc("/definition/{name}", s.HandleDeleteDefinition).Methods(http.MethodDelete)
	router.HandleFunc("/run", s.HandleStartRun).Methods(http.MethodPost)
	router.HandleFunc("/run/{id}/advance", s.HandleAdvance).Methods(http.MethodPost)
	router.HandleFunc("/run/{id}/back", s.HandleBack).Methods(http.MethodPost)
	router.HandleFunc("/run/{id}/submit", s.HandleSubmit).Methods(http.MethodPost)
	router.Use(loggingMiddleware)
	s.Handler = router
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("starting http server on", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server")
	}
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info(r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondOK(w http.ResponseWriter, message string) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
