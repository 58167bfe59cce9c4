package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/drivebook/car-rental-api/internal/authz"
	"github.com/drivebook/car-rental-api/internal/cache"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/httpresp"
	"github.com/drivebook/car-rental-api/internal/images"
	"github.com/drivebook/car-rental-api/internal/middleware"
	"github.com/drivebook/car-rental-api/internal/models"
	"github.com/drivebook/car-rental-api/internal/storage"
)

const maxImageUpload = 10 << 20 // 10 MiB

type CatalogHandler struct {
	db      *gorm.DB
	ratings *cache.RatingsCache
	storage *storage.S3Storage
}

func NewCatalogHandler(db *gorm.DB, ratings *cache.RatingsCache, st *storage.S3Storage) *CatalogHandler {
	return &CatalogHandler{db: db, ratings: ratings, storage: st}
}

// --------- Requests ---------

type CreateCatalogItemRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"imageUrl"`
	IsAvailable *bool   `json:"isAvailable"`
	Category    string  `json:"category"`
}

type UpdateCatalogItemRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

type catalogItemDTO struct {
	models.CatalogItem
	ReviewsCount  int64   `json:"reviewsCount"`
	AverageRating float64 `json:"averageRating"`
}

var catalogSortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"title":     "title",
	"category":  "category",
}

// --------- Handlers ---------

func (h *CatalogHandler) List(c *gin.Context) {
	params := httpresp.ParsePageParams(c)

	q := h.db.Model(&models.CatalogItem{})

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	if avail := c.Query("isAvailable"); avail != "" {
		q = q.Where("is_available = ?", avail == "true")
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_catalog", "Could not list catalog items.")
		return
	}

	var items []models.CatalogItem
	if err := q.
		Order(sortClause(c.Query("sortBy"), c.Query("order"), catalogSortColumns, "created_at")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_catalog", "Could not list catalog items.")
		return
	}

	data := make([]catalogItemDTO, 0, len(items))
	for _, item := range items {
		stats := h.ratingStats(c, item.ID)
		data = append(data, catalogItemDTO{
			CatalogItem:   item,
			ReviewsCount:  stats.ReviewsCount,
			AverageRating: stats.AverageRating,
		})
	}

	httpresp.Paginated(c, len(data), httpresp.NewPagination(params, total), data)
}

func (h *CatalogHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var item models.CatalogItem
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Catalog item not found.")
		return
	}

	var rates []models.Rate
	if err := h.db.
		Where("catalog_item_id = ?", id).
		Order("created_at DESC").
		Find(&rates).Error; err != nil {
		httperr.Internal(c, "failed_to_load_rates", "Could not load the item's rates.")
		return
	}

	// latest reviews for the detail-page preview
	var reviews []models.Review
	if err := h.db.Preload("User").
		Where("catalog_item_id = ?", id).
		Order("created_at DESC").
		Limit(5).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_load_reviews", "Could not load the item's reviews.")
		return
	}

	stats := h.ratingStats(c, id)

	httpresp.OK(c, gin.H{
		"item": catalogItemDTO{
			CatalogItem:   item,
			ReviewsCount:  stats.ReviewsCount,
			AverageRating: stats.AverageRating,
		},
		"rates":   rates,
		"reviews": reviews,
	})
}

func (h *CatalogHandler) Create(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can manage the catalog.")
		return
	}

	var req CreateCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Category != "" && !models.IsValidCategory(req.Category) {
		httperr.BadRequest(c, "invalid_category", "Unknown vehicle category.")
		return
	}

	item := models.CatalogItem{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
		Category:    req.Category,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if item.Category == "" {
		item.Category = models.CategoryEconomy
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_item", "Could not create the catalog item.")
		return
	}

	httpresp.Created(c, item)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can manage the catalog.")
		return
	}

	id := c.Param("id")

	var item models.CatalogItem
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Catalog item not found.")
		return
	}

	var req UpdateCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Category != nil && !models.IsValidCategory(*req.Category) {
		httperr.BadRequest(c, "invalid_category", "Unknown vehicle category.")
		return
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.Category != nil {
		item.Category = *req.Category
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", "Could not update the catalog item.")
		return
	}

	httpresp.OK(c, item)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can manage the catalog.")
		return
	}

	id := c.Param("id")

	var item models.CatalogItem
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Catalog item not found.")
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_item", "Could not delete the catalog item.")
		return
	}

	c.Status(204)
}

// UploadImage converts the uploaded picture to webp, stores it in S3 and
// points the item at the new URL.
func (h *CatalogHandler) UploadImage(c *gin.Context) {
	if !authz.CanManageCatalog(middleware.PrincipalFrom(c)) {
		httperr.Forbidden(c, "admin_only", "Only administrators can manage the catalog.")
		return
	}

	if h.storage == nil {
		httperr.Write(c, 503, "storage_unavailable", "Image storage is not configured.")
		return
	}

	id := c.Param("id")

	var item models.CatalogItem
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Catalog item not found.")
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Multipart field 'image' is required.")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxImageUpload))
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read the upload.")
		return
	}

	converted, err := images.ToWebP(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Upload must be a jpeg or png image.")
		return
	}

	key := fmt.Sprintf("catalog/%s.webp", item.ID)
	url, err := h.storage.Upload(c.Request.Context(), key, converted, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_store_image", "Could not store the image.")
		return
	}

	item.ImageURL = url
	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", "Could not update the catalog item.")
		return
	}

	httpresp.OK(c, item)
}

// --------- Aggregates ---------

func (h *CatalogHandler) ratingStats(c *gin.Context, itemID string) cache.RatingStats {
	ctx := c.Request.Context()

	if stats, ok := h.ratings.Get(ctx, itemID); ok {
		return stats
	}

	var stats cache.RatingStats
	h.db.Model(&models.Review{}).
		Where("catalog_item_id = ?", itemID).
		Count(&stats.ReviewsCount)

	if stats.ReviewsCount > 0 {
		h.db.Model(&models.Review{}).
			Where("catalog_item_id = ?", itemID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&stats.AverageRating)
	}

	h.ratings.Set(ctx, itemID, stats)
	return stats
}
