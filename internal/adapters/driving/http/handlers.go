package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/DevWael/semantiq-search/internal/core/domain"
	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response
type StatusResponse struct {
	Status string `json:"status"`
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports readiness, checking the backing stores
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Search endpoint

// SearchRequest is the body of a search call
type SearchRequest struct {
	Query string   `json:"query"`
	Limit int      `json:"limit,omitempty"`
	Types []string `json:"types,omitempty"`
}

// SearchResponse wraps the grouped search results
type SearchResponse struct {
	Query   string                `json:"query"`
	Results domain.GroupedResults `json:"results"`
}

// handleSearch answers a semantic search query with results grouped by
// content type
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results, err := s.searchService.Search(r.Context(), req.Query, req.Limit, req.Types)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "query is required")
		case errors.Is(err, domain.ErrConfig):
			writeError(w, http.StatusServiceUnavailable, "search is not configured")
		case errors.Is(err, domain.ErrEmbedding):
			writeError(w, http.StatusBadGateway, "embedding service unavailable")
		case errors.Is(err, domain.ErrVectorStore):
			writeError(w, http.StatusBadGateway, "vector store unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Query: req.Query, Results: results})
}

// Bulk sync endpoints

// handleSyncStart begins a fresh bulk sync session
func (s *Server) handleSyncStart(w http.ResponseWriter, r *http.Request) {
	session, err := s.syncOrchestrator.StartBulkSync(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConfig), errors.Is(err, domain.ErrInvalidProvider):
			writeError(w, http.StatusBadRequest, "sync settings are incomplete")
		default:
			writeError(w, http.StatusInternalServerError, "failed to start sync")
		}
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// BatchResponse carries the outcome of one batch tick plus the updated
// session snapshot
type BatchResponse struct {
	Batch    *domain.BatchResult `json:"batch"`
	Progress *domain.SyncSession `json:"progress,omitempty"`
}

// handleSyncBatch performs one batch tick of the running session
func (s *Server) handleSyncBatch(w http.ResponseWriter, r *http.Request) {
	result, err := s.syncOrchestrator.ProcessBatch(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoActiveSession):
			writeError(w, http.StatusBadRequest, "no active sync session")
		case errors.Is(err, domain.ErrSyncInProgress):
			writeError(w, http.StatusConflict, "a batch is already being processed")
		default:
			writeError(w, http.StatusInternalServerError, "batch processing failed")
		}
		return
	}

	resp := BatchResponse{Batch: result}
	if progress, err := s.syncOrchestrator.Progress(r.Context()); err == nil {
		resp.Progress = progress
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSyncStatus returns the current session snapshot
func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	session, err := s.syncOrchestrator.Progress(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			writeError(w, http.StatusNotFound, "no active sync session")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to read sync status")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// handleSyncCancel abandons the current session
func (s *Server) handleSyncCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.syncOrchestrator.CancelSync(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to cancel sync")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// Single item endpoints

// handlePostSync syncs one item immediately
func (s *Server) handlePostSync(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || postID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := s.syncOrchestrator.SyncPost(r.Context(), postID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "post not found")
		case errors.Is(err, domain.ErrConfig):
			writeError(w, http.StatusServiceUnavailable, "sync is not configured")
		case errors.Is(err, domain.ErrEmbedding):
			writeError(w, http.StatusBadGateway, "embedding service unavailable")
		case errors.Is(err, domain.ErrVectorStore):
			writeError(w, http.StatusBadGateway, "vector store unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "sync failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "synced", "post_id": postID})
}

// handlePostQueue enqueues one item for the background worker
func (s *Server) handlePostQueue(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || postID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	task := &driven.SyncTask{
		ID:        uuid.NewString(),
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	if err := s.taskQueue.Enqueue(r.Context(), task); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to enqueue task")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"status": "queued", "task_id": task.ID})
}

// Settings endpoints

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsStore.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := settings.Validate(); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidProvider):
			writeError(w, http.StatusBadRequest, "unknown embedding provider")
		default:
			writeError(w, http.StatusBadRequest, "invalid settings")
		}
		return
	}

	if err := s.settingsStore.Save(r.Context(), &settings); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Admin diagnostics

// EmbeddingTestResponse describes the configured embedding backend
type EmbeddingTestResponse struct {
	Status     string `json:"status"`
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions"`
}

// handleTestEmbedding verifies the embedding backend is reachable
func (s *Server) handleTestEmbedding(w http.ResponseWriter, r *http.Request) {
	if err := s.embedder.TestConnection(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "embedding service unreachable")
		return
	}

	writeJSON(w, http.StatusOK, EmbeddingTestResponse{
		Status:     "ok",
		Model:      s.embedder.Model(),
		Dimensions: s.embedder.Dimensions(),
	})
}

// handleListCollections lists the vector store's collections
func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.vectorStore.ListCollections(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "vector store unreachable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"collections": collections})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
