package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/drivebook/car-rental-api/internal/audit"
	"github.com/drivebook/car-rental-api/internal/authz"
	domain "github.com/drivebook/car-rental-api/internal/domain/booking"
	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/httpresp"
	"github.com/drivebook/car-rental-api/internal/metrics"
	"github.com/drivebook/car-rental-api/internal/middleware"
	"github.com/drivebook/car-rental-api/internal/models"
	"github.com/drivebook/car-rental-api/internal/notify"
	"github.com/drivebook/car-rental-api/internal/payments"
	ucbooking "github.com/drivebook/car-rental-api/internal/usecase/booking"
)

type BookingHandler struct {
	db       *gorm.DB
	createUC *ucbooking.CreateBooking
	statusUC *ucbooking.UpdateBookingStatus
	availUC  *ucbooking.CheckAvailability
	payments *payments.Provider
	mail     *notify.Dispatcher
	audit    *audit.Dispatcher
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucbooking.CreateBooking,
	statusUC *ucbooking.UpdateBookingStatus,
	availUC *ucbooking.CheckAvailability,
	pay *payments.Provider,
	mail *notify.Dispatcher,
	auditDispatcher *audit.Dispatcher,
) *BookingHandler {
	return &BookingHandler{
		db:       db,
		createUC: createUC,
		statusUC: statusUC,
		availUC:  availUC,
		payments: pay,
		mail:     mail,
		audit:    auditDispatcher,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	StartDate     string `json:"startDate" binding:"required"`
	EndDate       string `json:"endDate" binding:"required"`
	CatalogItemID string `json:"catalogItemId" binding:"required"`
	Notes         string `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CheckAvailabilityRequest struct {
	CatalogItemID string `json:"catalogItemId" binding:"required"`
	StartDate     string `json:"startDate" binding:"required"`
	EndDate       string `json:"endDate" binding:"required"`
}

var bookingSortColumns = map[string]string{
	"createdAt":  "created_at",
	"startDate":  "start_date",
	"endDate":    "end_date",
	"totalPrice": "total_price",
	"status":     "status",
}

// --------- Handlers ---------

func (h *BookingHandler) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := parseDateTime(req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "startDate is not a valid date.")
		return
	}

	end, err := parseDateTime(req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_date", "endDate is not a valid date.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucbooking.CreateBookingInput{
		UserID:        p.ID,
		CatalogItemID: req.CatalogItemID,
		StartDate:     start,
		EndDate:       end,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "item_not_found"):
			httperr.NotFound(c, "item_not_found", "Catalog item not found.")
		case httperr.IsBusiness(err, "item_unavailable"):
			httperr.BadRequest(c, "item_unavailable", "This catalog item is not available for booking.")
		case httperr.IsBusiness(err, "invalid_date_range"):
			httperr.BadRequest(c, "invalid_date_range", "endDate must be after startDate.")
		case httperr.IsBusiness(err, "booking_conflict"):
			metrics.IncBookingConflict()
			httperr.BadRequest(c, "booking_conflict", "The selected dates are already booked.")
		default:
			httperr.Internal(c, "failed_to_create_booking", "Could not create the booking.")
		}
		return
	}

	metrics.IncBookingCreated()

	h.mail.Dispatch(notify.Email{
		To:      p.Email,
		Subject: "Booking received",
		Body: fmt.Sprintf(
			"Your booking %s is pending confirmation.\nDates: %s to %s\nTotal: %.2f",
			b.ID,
			b.StartDate.Format("2006-01-02"),
			b.EndDate.Format("2006-01-02"),
			b.TotalPrice,
		),
	})

	httpresp.Created(c, b)
}

func (h *BookingHandler) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	params := httpresp.ParsePageParams(c)

	q := h.db.Model(&models.Booking{})

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if from := c.Query("startDate"); from != "" {
		if t, err := parseDateTime(from); err == nil {
			q = q.Where("start_date >= ?", t)
		}
	}

	if to := c.Query("endDate"); to != "" {
		if t, err := parseDateTime(to); err == nil {
			q = q.Where("end_date <= ?", t)
		}
	}

	if hasReview := c.Query("hasReview"); hasReview != "" {
		q = q.Where("has_review = ?", hasReview == "true")
	}

	// non-admins only ever see their own bookings
	if p.IsAdmin() {
		if userID := c.Query("userId"); userID != "" {
			q = q.Where("user_id = ?", userID)
		}
	} else {
		q = q.Where("user_id = ?", p.ID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	var bookings []models.Booking
	if err := q.
		Preload("User").
		Preload("CatalogItem").
		Order(sortClause(c.Query("sortBy"), c.Query("order"), bookingSortColumns, "created_at")).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.Paginated(c, len(bookings), httpresp.NewPagination(params, total), bookings)
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	id := c.Param("id")

	var b models.Booking
	if err := h.db.
		Preload("User").
		Preload("CatalogItem").
		First(&b, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if !authz.CanReadBooking(p, b.UserID) {
		httperr.Forbidden(c, "booking_access_denied", "You do not have access to this booking.")
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	id := c.Param("id")

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.statusUC.Execute(c.Request.Context(), p, id, req.Status)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "booking_access_denied"):
			httperr.Forbidden(c, "booking_access_denied", "You do not have access to this booking.")
		case httperr.IsBusiness(err, "status_forbidden"):
			httperr.Forbidden(c, "status_forbidden", "You may only cancel your own booking.")
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
		default:
			httperr.Internal(c, "failed_to_update_booking", "Could not update the booking.")
		}
		return
	}

	metrics.IncBookingStatusChanged(b.Status)
	h.notifyStatusChange(c, b)

	resp := gin.H{"booking": b}

	// a freshly confirmed booking gets a checkout link when payments are on
	if b.Status == domain.StatusConfirmed && h.payments != nil {
		var item models.CatalogItem
		if err := h.db.First(&item, "id = ?", b.CatalogItemID).Error; err == nil {
			if link, err := h.payments.CheckoutLink(c.Request.Context(), b, item.Title); err == nil {
				resp["paymentUrl"] = link
			}
		}
	}

	httpresp.OK(c, resp)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	if !authz.CanDeleteBooking(p) {
		httperr.Forbidden(c, "admin_only", "Only administrators can delete bookings.")
		return
	}

	id := c.Param("id")

	var b models.Booking
	if err := h.db.First(&b, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if err := h.db.Delete(&b).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_booking", "Could not delete the booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &p.ID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	c.Status(204)
}

// CheckAvailability answers whether an item can be booked for a range,
// without creating anything.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := parseDateTime(req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "startDate is not a valid date.")
		return
	}

	end, err := parseDateTime(req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_date", "endDate is not a valid date.")
		return
	}

	available, err := h.availUC.Execute(c.Request.Context(), req.CatalogItemID, start, end)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "item_not_found"):
			httperr.NotFound(c, "item_not_found", "Catalog item not found.")
		case httperr.IsBusiness(err, "item_unavailable"):
			httperr.BadRequest(c, "item_unavailable", "This catalog item is not available for booking.")
		default:
			httperr.Internal(c, "failed_to_check_availability", "Could not check availability.")
		}
		return
	}

	message := "The item is available for the selected dates."
	if !available {
		message = "The selected dates are already booked."
	}

	httpresp.OK(c, gin.H{
		"available": available,
		"message":   message,
	})
}

func (h *BookingHandler) notifyStatusChange(c *gin.Context, b *models.Booking) {
	var owner models.User
	if err := h.db.First(&owner, "id = ?", b.UserID).Error; err != nil {
		return
	}

	h.mail.Dispatch(notify.Email{
		To:      owner.Email,
		Subject: "Booking " + b.Status,
		Body: fmt.Sprintf(
			"The status of your booking %s changed to %s.",
			b.ID, b.Status,
		),
	})
}
