package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/drivebook/car-rental-api/internal/authz"
	"github.com/drivebook/car-rental-api/internal/cache"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/httpresp"
	"github.com/drivebook/car-rental-api/internal/metrics"
	"github.com/drivebook/car-rental-api/internal/middleware"
	"github.com/drivebook/car-rental-api/internal/models"
	ucreview "github.com/drivebook/car-rental-api/internal/usecase/review"
)

type ReviewHandler struct {
	db       *gorm.DB
	createUC *ucreview.CreateReview
	ratings  *cache.RatingsCache
}

func NewReviewHandler(db *gorm.DB, createUC *ucreview.CreateReview, ratings *cache.RatingsCache) *ReviewHandler {
	return &ReviewHandler{db: db, createUC: createUC, ratings: ratings}
}

// --------- Requests ---------

type CreateReviewRequest struct {
	CatalogItemID string `json:"catalogItemId" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

var reviewSortColumns = map[string]string{
	"createdAt": "created_at",
	"rating":    "rating",
}

// --------- Handlers ---------

func (h *ReviewHandler) List(c *gin.Context) {
	params := httpresp.ParsePageParams(c)

	q := h.db.Model(&models.Review{})

	if rating := c.Query("rating"); rating != "" {
		if n, err := strconv.Atoi(rating); err == nil {
			q = q.Where("rating = ?", n)
		}
	}

	if userID := c.Query("userId"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	if itemID := c.Query("catalogItemId"); itemID != "" {
		q = q.Where("catalog_item_id = ?", itemID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	var reviews []models.Review
	if err := q.
		Preload("User").
		Preload("CatalogItem").
		Order(sortClause(c.Query("sortBy"), c.Query("order"), reviewSortColumns, "created_at")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	httpresp.Paginated(c, len(reviews), httpresp.NewPagination(params, total), reviews)
}

func (h *ReviewHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var review models.Review
	if err := h.db.
		Preload("User").
		Preload("CatalogItem").
		First(&review, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	httpresp.OK(c, review)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	review, err := h.createUC.Execute(c.Request.Context(), ucreview.CreateReviewInput{
		UserID:        p.ID,
		CatalogItemID: req.CatalogItemID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_rating"):
			httperr.BadRequest(c, "invalid_rating", "Rating must be between 1 and 5.")
		case httperr.IsBusiness(err, "no_completed_booking"):
			httperr.BadRequest(c, "no_completed_booking", "You can only review items you rented to completion.")
		case httperr.IsBusiness(err, "already_reviewed"):
			httperr.BadRequest(c, "already_reviewed", "You already reviewed this booking.")
		default:
			httperr.Internal(c, "failed_to_create_review", "Could not create the review.")
		}
		return
	}

	metrics.IncReviewCreated()
	h.ratings.Invalidate(c.Request.Context(), req.CatalogItemID)

	httpresp.Created(c, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	id := c.Param("id")

	var review models.Review
	if err := h.db.First(&review, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	if !authz.CanEditReview(p, review.UserID) {
		httperr.Forbidden(c, "review_access_denied", "You may only edit your own reviews.")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			httperr.BadRequest(c, "invalid_rating", "Rating must be between 1 and 5.")
			return
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := h.db.Save(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_update_review", "Could not update the review.")
		return
	}

	h.ratings.Invalidate(c.Request.Context(), review.CatalogItemID)

	httpresp.OK(c, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	id := c.Param("id")

	var review models.Review
	if err := h.db.First(&review, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	if !authz.CanEditReview(p, review.UserID) {
		httperr.Forbidden(c, "review_access_denied", "You may only delete your own reviews.")
		return
	}

	if err := h.db.Delete(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_review", "Could not delete the review.")
		return
	}

	h.ratings.Invalidate(c.Request.Context(), review.CatalogItemID)

	c.Status(204)
}
