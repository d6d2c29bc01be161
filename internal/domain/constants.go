package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes     = 30
	DefaultServiceDurationMinutes  = 30
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
	DefaultWorkStart               = "07:30"
	DefaultWorkEnd                 = "18:00"
)

// Business validation constants
const (
	MinSlotIntervalMinutes    = 5
	MaxSlotIntervalMinutes    = 240
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxAdvanceBookingDays     = 365
	MaxBookingNoticeMinutes   = 10080 // 1 week
	MaxClientNameLength       = 200
	MaxServiceNameLength      = 200
)

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // local wall clock, no zone
)

// DefaultWorkingDays Monday to Friday
var DefaultWorkingDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// CanceledStatuses statuses that release the booked interval
var CanceledStatuses = []BookingStatus{
	StatusCanceledByClient,
	StatusCanceledByStaff,
}

// OccupyingStatuses statuses that keep the booked interval busy
var OccupyingStatuses = []BookingStatus{
	StatusRequested,
	StatusConfirmed,
	StatusCheckedIn,
	StatusCompleted,
}
