package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parkgrid/parkgrid-api/internal/models"
	"github.com/parkgrid/parkgrid-api/internal/service"
	"github.com/parkgrid/parkgrid-api/pkg/response"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs an audit handler.
func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// List godoc
// @Summary List audit logs
// @Description List audit records with pagination and filtering
// @Tags Audit
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param userId query string false "Acting user filter"
// @Param action query string false "Action filter"
// @Param resource query string false "Resource filter"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /audit/logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	var filter models.AuditFilter

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}

	filter.UserID = c.Query("userId")
	filter.Action = c.Query("action")
	filter.Resource = c.Query("resource")

	logs, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, logs, pagination)
}
