package dto

import (
	"time"

	"github.com/spec-kit/bedbook/internal/domain"
)

// BedResponse is the public view of a bed.
type BedResponse struct {
	ID          int64      `json:"id"`
	HospitalID  int64      `json:"hospital_id"`
	BedType     string     `json:"bed_type"`
	Available   bool       `json:"available"`
	BookedBy    *int64     `json:"booked_by,omitempty"`
	BookingTime *time.Time `json:"booking_time,omitempty"`
}

// BookingResponse reports a successful booking.
type BookingResponse struct {
	MessageResponse
	Bed BedResponse `json:"bed"`
}

// NewBedResponse maps a bed.
func NewBedResponse(b domain.Bed) BedResponse {
	return BedResponse{
		ID:          b.ID,
		HospitalID:  b.HospitalID,
		BedType:     b.BedType,
		Available:   b.Available,
		BookedBy:    b.BookedBy,
		BookingTime: b.BookingTime,
	}
}

// NewBedResponses maps a list of beds.
func NewBedResponses(beds []domain.Bed) []BedResponse {
	out := make([]BedResponse, 0, len(beds))
	for _, b := range beds {
		out = append(out, NewBedResponse(b))
	}
	return out
}
