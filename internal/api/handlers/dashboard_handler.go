package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kmonkmol38/DashNew1/internal/domain"
	"github.com/kmonkmol38/DashNew1/internal/service"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

type sharedFilterRequest struct {
	Month        string `json:"month"`
	Year         string `json:"year"`
	BusinessUnit string `json:"business_unit"`
}

// SetSharedFilter pushes the top-level month/year/business-unit filter into
// every view.
func (h *DashboardHandler) SetSharedFilter(c *gin.Context) {
	var req sharedFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter payload"})
		return
	}

	h.dashboard.SetShared(domain.SharedFilter{
		Month:        strings.TrimSpace(req.Month),
		Year:         strings.TrimSpace(req.Year),
		BusinessUnit: strings.TrimSpace(req.BusinessUnit),
	})

	c.JSON(http.StatusOK, h.dashboard.Shared())
}

// GetSharedFilter returns the current shared filter.
func (h *DashboardHandler) GetSharedFilter(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Shared())
}

type viewFilterRequest struct {
	Dimension string   `json:"dimension"`
	Value     string   `json:"value"`
	Values    []string `json:"values"`
}

// SetViewFilter updates one dimension of one view. Multi-select dimensions
// send "values", single-select dimensions send "value".
func (h *DashboardHandler) SetViewFilter(c *gin.Context) {
	kind, ok := h.sheetKind(c)
	if !ok {
		return
	}

	var req viewFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter payload"})
		return
	}

	dim := domain.Dimension(strings.TrimSpace(req.Dimension))
	if dim == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dimension is required"})
		return
	}

	if req.Values != nil {
		h.dashboard.SetViewFilterMulti(kind, dim, dedupeTrimmed(req.Values))
	} else {
		h.dashboard.SetViewFilter(kind, dim, strings.TrimSpace(req.Value))
	}

	h.respondView(c, kind)
}

// GetView recomputes and returns one sheet view model.
func (h *DashboardHandler) GetView(c *gin.Context) {
	kind, ok := h.sheetKind(c)
	if !ok {
		return
	}
	h.respondView(c, kind)
}

// GetVehicleCards returns the internal-fleet printable cards for the
// current filter state.
func (h *DashboardHandler) GetVehicleCards(c *gin.Context) {
	if !h.requireSession(c) {
		return
	}
	c.JSON(http.StatusOK, h.dashboard.VehicleCards())
}

// GetEmployeeCards returns the driver/operator printable cards for the
// current filter state.
func (h *DashboardHandler) GetEmployeeCards(c *gin.Context) {
	if !h.requireSession(c) {
		return
	}
	c.JSON(http.StatusOK, h.dashboard.EmployeeCards())
}

func (h *DashboardHandler) respondView(c *gin.Context, kind domain.SheetKind) {
	if !h.requireSession(c) {
		return
	}
	c.JSON(http.StatusOK, h.dashboard.View(kind))
}

func (h *DashboardHandler) sheetKind(c *gin.Context) (domain.SheetKind, bool) {
	kind, ok := domain.ParseSheetKind(c.Param("sheet"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown sheet"})
		return "", false
	}
	return kind, true
}

func (h *DashboardHandler) requireSession(c *gin.Context) bool {
	if !h.dashboard.HasSession() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no session loaded"})
		return false
	}
	return true
}

func dedupeTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || v == domain.AllOption {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
