package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bedbook/internal/api/dto"
	"github.com/spec-kit/bedbook/internal/observability"
	"github.com/spec-kit/bedbook/internal/service"
	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

const msgBooked = "Bed booked successfully!"

// BookingHandler exposes bed booking endpoints.
type BookingHandler struct {
	booking *service.BookingService
	metrics *observability.Metrics
}

// NewBookingHandler constructs handler.
func NewBookingHandler(booking *service.BookingService, metrics *observability.Metrics) *BookingHandler {
	return &BookingHandler{booking: booking, metrics: metrics}
}

// Book handles POST /beds/:id/book.
func (h *BookingHandler) Book(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewNotFound("bed", map[string]any{"bed_id": c.Params("id")})
	}

	result, err := h.booking.BookBed(c.UserContext(), identityFrom(c), int64(id))
	h.metrics.RecordBooking(bookingOutcome(err))
	if err != nil {
		return err
	}

	return data(c, fiber.StatusOK, dto.BookingResponse{
		MessageResponse: dto.MessageResponse{
			Message:  msgBooked,
			Redirect: fmt.Sprintf("/hospitals/%d", result.HospitalID),
		},
		Bed: dto.NewBedResponse(result.Bed),
	})
}

// MyBookings handles GET /bookings.
func (h *BookingHandler) MyBookings(c *fiber.Ctx) error {
	beds, err := h.booking.ListUserBookings(c.UserContext(), identityFrom(c))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.NewBedResponses(beds))
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return observability.BookingBooked
	case errors.Is(err, apperrors.ErrAlreadyBooked):
		return observability.BookingUnavailable
	case errors.Is(err, apperrors.ErrNotFound):
		return observability.BookingNotFound
	default:
		return observability.BookingFailed
	}
}
