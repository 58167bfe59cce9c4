package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/drivebook/car-rental-api/internal/authz"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/httpresp"
	"github.com/drivebook/car-rental-api/internal/middleware"
	"github.com/drivebook/car-rental-api/internal/models"
	uccontact "github.com/drivebook/car-rental-api/internal/usecase/contact"
)

type ContactHandler struct {
	db     *gorm.DB
	saveUC *uccontact.Save
}

func NewContactHandler(db *gorm.DB, saveUC *uccontact.Save) *ContactHandler {
	return &ContactHandler{db: db, saveUC: saveUC}
}

// --------- Requests ---------

type CreateContactRequest struct {
	Type   string `json:"type" binding:"required"`
	Value  string `json:"value" binding:"required"`
	IsMain bool   `json:"isMain"`
}

type UpdateContactRequest struct {
	Value  string `json:"value"`
	IsMain *bool  `json:"isMain,omitempty"`
}

// --------- Handlers ---------

func (h *ContactHandler) List(c *gin.Context) {
	var contacts []models.Contact
	if err := h.db.Order("type ASC").Find(&contacts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_contacts", "Could not list contacts.")
		return
	}

	httpresp.List(c, len(contacts), contacts)
}

func (h *ContactHandler) ListByType(c *gin.Context) {
	contactType := c.Param("type")

	if !models.IsValidContactType(contactType) {
		httperr.BadRequest(c, "invalid_contact_type", "Unknown contact type.")
		return
	}

	var contacts []models.Contact
	if err := h.db.
		Where("type = ?", contactType).
		Order("created_at ASC").
		Find(&contacts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_contacts", "Could not list contacts.")
		return
	}

	httpresp.List(c, len(contacts), contacts)
}

func (h *ContactHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var contact models.Contact
	if err := h.db.First(&contact, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "contact_not_found", "Contact not found.")
		return
	}

	httpresp.OK(c, contact)
}

func (h *ContactHandler) Create(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can manage contacts.")
		return
	}

	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	contact, err := h.saveUC.Create(c.Request.Context(), req.Type, req.Value, req.IsMain)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_contact_type") {
			httperr.BadRequest(c, "invalid_contact_type", "Unknown contact type.")
			return
		}
		httperr.Internal(c, "failed_to_create_contact", "Could not create the contact.")
		return
	}

	httpresp.Created(c, contact)
}

func (h *ContactHandler) Update(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can manage contacts.")
		return
	}

	id := c.Param("id")

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	contact, err := h.saveUC.Update(c.Request.Context(), id, req.Value, req.IsMain)
	if err != nil {
		if httperr.IsBusiness(err, "contact_not_found") {
			httperr.NotFound(c, "contact_not_found", "Contact not found.")
			return
		}
		httperr.Internal(c, "failed_to_update_contact", "Could not update the contact.")
		return
	}

	httpresp.OK(c, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can manage contacts.")
		return
	}

	id := c.Param("id")

	var contact models.Contact
	if err := h.db.First(&contact, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "contact_not_found", "Contact not found.")
		return
	}

	if err := h.db.Delete(&contact).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_contact", "Could not delete the contact.")
		return
	}

	c.Status(204)
}
