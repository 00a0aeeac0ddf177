package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/kmonkmol38/DashNew1/internal/service"
)

// maxWorkbookBytes caps uploads; real report workbooks are a few MB.
const maxWorkbookBytes = 50 << 20

type SessionHandler struct {
	dashboard *service.DashboardService
}

func NewSessionHandler(dashboard *service.DashboardService) *SessionHandler {
	return &SessionHandler{dashboard: dashboard}
}

// Upload accepts one workbook file and replaces the session on success.
// A failed parse leaves the prior session untouched.
func (h *SessionHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no workbook file provided"})
		return
	}
	if fileHeader.Size > maxWorkbookBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "workbook too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}

	info, err := h.dashboard.Upload(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		log.Error().Err(err).Str("file", fileHeader.Filename).Msg("workbook upload failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

// Info returns the current session summary.
func (h *SessionHandler) Info(c *gin.Context) {
	info, ok := h.dashboard.Info()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no session loaded"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// Archives lists the archived workbook binaries.
func (h *SessionHandler) Archives(c *gin.Context) {
	objects, err := h.dashboard.Archives(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list archived workbooks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list archived workbooks"})
		return
	}
	c.JSON(http.StatusOK, objects)
}

// Reset clears the session in memory and in the durable store.
func (h *SessionHandler) Reset(c *gin.Context) {
	if err := h.dashboard.Reset(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("failed to reset session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
