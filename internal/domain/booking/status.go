package booking

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// ActiveStatuses are the statuses that occupy a date range. CANCELLED and
// COMPLETED bookings free their range immediately.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func InitialStatus() string {
	return StatusPending
}
