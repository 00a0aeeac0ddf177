package drive

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler exposes a small HTTP surface for the seed tool's watch mode so
// operators can inspect the Drive folder and trigger a sync remotely.
type Handler struct {
	service *Service
	syncer  *Syncer
}

func NewHandler(service *Service, syncer *Syncer) *Handler {
	return &Handler{
		service: service,
		syncer:  syncer,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods("GET")
	router.HandleFunc("/api/drive/workbooks", h.ListWorkbooks).Methods("GET")
	router.HandleFunc("/api/drive/sync", h.Sync).Methods("POST")
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) ListWorkbooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	folderID := query.Get("folderId")
	folderPath := query.Get("path")

	var err error
	if folderPath != "" {
		folderID, err = h.service.FindFolderByPath(folderPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}

	files, err := h.service.ListWorkbooks(folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	opts := SyncOptions{
		FolderID:   r.URL.Query().Get("folderId"),
		FolderPath: r.URL.Query().Get("path"),
	}

	name, err := h.syncer.SyncLatest(r.Context(), opts)
	if err != nil {
		http.Error(w, fmt.Sprintf("sync failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success", "file": name})
}
