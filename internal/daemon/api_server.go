package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"soundguard/internal/api"
	"soundguard/internal/config"
	"soundguard/internal/logging"
	"soundguard/internal/services"
)

const multipartMemory = 8 << 20

type apiServer struct {
	bind      string
	logger    *slog.Logger
	daemon    *Daemon
	engine    api.Verifier
	artistSvc *api.ArtistService

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, engine api.Verifier, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:      cfg.Paths.APIBind,
		logger:    logging.NewComponentLogger(logger, "api-server"),
		daemon:    d,
		engine:    engine,
		artistSvc: api.NewArtistService(d.store),
	}
	srv.server = &http.Server{
		Handler:           srv.routes(cfg.Paths.APIToken),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) routes(token string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/verify", authMiddleware(token, s.handleVerify))
	mux.HandleFunc("/api/artists", authMiddleware(token, s.handleArtists))
	return s.withRequestID(mux)
}

func (s *apiServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(services.WithRequestID(r.Context(), requestID)))
	})
}

func (s *apiServer) listen() error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	return nil
}

func (s *apiServer) serve() error {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener == nil {
		return errors.New("api server not listening")
	}
	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api serve: %w", err)
	}
	return nil
}

func (s *apiServer) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
	s.mu.Lock()
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
	s.mu.Unlock()
}

func (s *apiServer) address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	payload := api.HealthResponse{
		Status:        "ok",
		DirectoryPath: status.DirectoryPath,
	}
	for _, check := range status.Checks {
		payload.Checks = append(payload.Checks, api.CheckStatus{Name: check.Name, Passed: check.Passed, Detail: check.Detail})
		if !check.Passed {
			payload.Status = "degraded"
		}
	}
	if items, err := s.artistSvc.List(r.Context(), true); err == nil {
		payload.Artists = len(items)
	} else {
		payload.Status = "degraded"
	}
	code := http.StatusOK
	if payload.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, payload)
}

func (s *apiServer) handleArtists(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	verifiedOnly := r.URL.Query().Get("verified") == "1" || strings.EqualFold(r.URL.Query().Get("verified"), "true")
	items, err := s.artistSvc.List(r.Context(), verifiedOnly)
	if err != nil {
		s.writeError(w, services.HTTPStatus(err), err.Error())
		return
	}
	if items == nil {
		items = []api.ArtistItem{}
	}
	s.writeJSON(w, http.StatusOK, api.ArtistListResponse{Artists: items})
}

func (s *apiServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, api.MaxAudioBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("audio")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	audio, err := io.ReadAll(io.LimitReader(file, api.MaxAudioBytes+1))
	_ = file.Close()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("read audio: %v", err))
		return
	}

	adminOnBehalf, _ := strconv.ParseBool(strings.TrimSpace(r.FormValue("admin_on_behalf")))
	req := api.VerifyUploadRequest{
		Title:         r.FormValue("title"),
		FileName:      header.Filename,
		Audio:         audio,
		UploaderID:    r.FormValue("uploader_id"),
		AdminOnBehalf: adminOnBehalf,
		Featured:      r.MultipartForm.Value["featured"],
	}
	if requestID, ok := services.RequestIDFromContext(r.Context()); ok {
		req.UploadID = requestID
	}

	resp, verdict, err := api.VerifyUpload(r.Context(), s.engine, s.daemon.store, req)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(r.Context(), s.logger), "verification request failed", "verify_request_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "see error message returned to the client"),
			logging.String(logging.FieldImpact, "upload not verified"),
		)
		s.writeError(w, services.HTTPStatus(err), err.Error())
		return
	}
	s.writeJSON(w, api.VerdictStatus(verdict.Outcome), resp)
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}
