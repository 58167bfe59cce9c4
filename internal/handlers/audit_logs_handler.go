package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/drivebook/car-rental-api/internal/authz"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/httpresp"
	"github.com/drivebook/car-rental-api/internal/middleware"
	"github.com/drivebook/car-rental-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can read the audit trail.")
		return
	}

	params := httpresp.ParsePageParams(c)

	q := h.db.Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_count_audit_logs", "Could not count audit entries.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit entries.")
		return
	}

	httpresp.Paginated(c, len(logs), httpresp.NewPagination(params, total), logs)
}
