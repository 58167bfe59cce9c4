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

type RateHandler struct {
	db *gorm.DB
}

func NewRateHandler(db *gorm.DB) *RateHandler {
	return &RateHandler{db: db}
}

// --------- Requests ---------

type CreateRateRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	ValidFrom     string  `json:"validFrom"`
	ValidTo       string  `json:"validTo"`
	Conditions    string  `json:"conditions"`
	CatalogItemID string  `json:"catalogItemId" binding:"required"`
}

type UpdateRateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ValidFrom   *string  `json:"validFrom,omitempty"`
	ValidTo     *string  `json:"validTo,omitempty"`
	Conditions  *string  `json:"conditions,omitempty"`
}

var rateSortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"name":      "name",
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDateTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// --------- Handlers ---------

func (h *RateHandler) List(c *gin.Context) {
	params := httpresp.ParsePageParams(c)

	q := h.db.Model(&models.Rate{})

	if itemID := c.Query("catalogItemId"); itemID != "" {
		q = q.Where("catalog_item_id = ?", itemID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_rates", "Could not list rates.")
		return
	}

	var rates []models.Rate
	if err := q.
		Preload("CatalogItem").
		Order(sortClause(c.Query("sortBy"), c.Query("order"), rateSortColumns, "created_at")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rates).Error; err != nil {
		httperr.Internal(c, "failed_to_list_rates", "Could not list rates.")
		return
	}

	httpresp.Paginated(c, len(rates), httpresp.NewPagination(params, total), rates)
}

func (h *RateHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var rate models.Rate
	if err := h.db.Preload("CatalogItem").First(&rate, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "rate_not_found", "Rate not found.")
		return
	}

	httpresp.OK(c, rate)
}

func (h *RateHandler) Create(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can manage rates.")
		return
	}

	var req CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var item models.CatalogItem
	if err := h.db.First(&item, "id = ?", req.CatalogItemID).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Catalog item not found.")
		return
	}

	validFrom, err := parseOptionalDate(req.ValidFrom)
	if err != nil {
		httperr.BadRequest(c, "invalid_valid_from", "validFrom is not a valid date.")
		return
	}

	validTo, err := parseOptionalDate(req.ValidTo)
	if err != nil {
		httperr.BadRequest(c, "invalid_valid_to", "validTo is not a valid date.")
		return
	}

	rate := models.Rate{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		ValidFrom:     validFrom,
		ValidTo:       validTo,
		Conditions:    req.Conditions,
		CatalogItemID: req.CatalogItemID,
	}

	if err := h.db.Create(&rate).Error; err != nil {
		httperr.Internal(c, "failed_to_create_rate", "Could not create the rate.")
		return
	}

	httpresp.Created(c, rate)
}

func (h *RateHandler) Update(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can manage rates.")
		return
	}

	id := c.Param("id")

	var rate models.Rate
	if err := h.db.First(&rate, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "rate_not_found", "Rate not found.")
		return
	}

	var req UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		rate.Name = *req.Name
	}
	if req.Description != nil {
		rate.Description = *req.Description
	}
	if req.Price != nil {
		rate.Price = *req.Price
	}
	if req.Conditions != nil {
		rate.Conditions = *req.Conditions
	}
	if req.ValidFrom != nil {
		t, err := parseOptionalDate(*req.ValidFrom)
		if err != nil {
			httperr.BadRequest(c, "invalid_valid_from", "validFrom is not a valid date.")
			return
		}
		rate.ValidFrom = t
	}
	if req.ValidTo != nil {
		t, err := parseOptionalDate(*req.ValidTo)
		if err != nil {
			httperr.BadRequest(c, "invalid_valid_to", "validTo is not a valid date.")
			return
		}
		rate.ValidTo = t
	}

	if err := h.db.Save(&rate).Error; err != nil {
		httperr.Internal(c, "failed_to_update_rate", "Could not update the rate.")
		return
	}

	httpresp.OK(c, rate)
}

func (h *RateHandler) Delete(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can manage rates.")
		return
	}

	id := c.Param("id")

	var rate models.Rate
	if err := h.db.First(&rate, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "rate_not_found", "Rate not found.")
		return
	}

	if err := h.db.Delete(&rate).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_rate", "Could not delete the rate.")
		return
	}

	c.Status(204)
}
