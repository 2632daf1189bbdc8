package domain

import "time"

// Bed is a bookable unit of a hospital.
//
// BookedBy and BookingTime are both nil while Available is true and both set
// once the bed has been booked.
type Bed struct {
	ID          int64
	HospitalID  int64
	BedType     string
	Available   bool
	BookedBy    *int64
	BookingTime *time.Time
	CreatedAt   time.Time
}

// Consistent reports whether the availability flag agrees with the booking fields.
func (b Bed) Consistent() bool {
	if b.Available {
		return b.BookedBy == nil && b.BookingTime == nil
	}
	return b.BookedBy != nil && b.BookingTime != nil
}
