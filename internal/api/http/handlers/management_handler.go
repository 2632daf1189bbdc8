package handlers

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bedbook/internal/api/dto"
	"github.com/spec-kit/bedbook/internal/observability"
	"github.com/spec-kit/bedbook/internal/service"
	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

// ManagementHandler exposes the management dashboard and catalog edits.
type ManagementHandler struct {
	management *service.ManagementService
	metrics    *observability.Metrics
}

// NewManagementHandler constructs handler.
func NewManagementHandler(management *service.ManagementService, metrics *observability.Metrics) *ManagementHandler {
	return &ManagementHandler{management: management, metrics: metrics}
}

// Dashboard handles GET and POST /management.
func (h *ManagementHandler) Dashboard(c *fiber.Ctx) error {
	city, err := cityFilter(c)
	if err != nil {
		return err
	}
	overview, err := h.management.Dashboard(c.UserContext(), identityFrom(c), city)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.NewCatalogResponse(overview.Hospitals, overview.Cities, overview.SelectedCity))
}

// AddHospital handles POST /management/hospitals.
func (h *ManagementHandler) AddHospital(c *fiber.Ctx) error {
	var req dto.CreateHospitalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	if req.City == "" {
		req.City = c.Query("city")
	}

	hospital, err := h.management.AddHospital(c.UserContext(), identityFrom(c), req.Name, req.City)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, fiber.Map{
		"hospital": dto.NewHospitalResponse(*hospital),
		"redirect": "/management?city=" + url.QueryEscape(hospital.City),
	})
}

// AddBeds handles POST /management/hospitals/:id/beds.
func (h *ManagementHandler) AddBeds(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewNotFound("hospital", map[string]any{"hospital_id": c.Params("id")})
	}
	var req dto.AddBedsRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	beds, err := h.management.AddBeds(c.UserContext(), identityFrom(c), int64(id), req.BedType, req.Count())
	if err != nil {
		return err
	}
	h.metrics.RecordBedsAdded(len(beds))
	return data(c, fiber.StatusCreated, fiber.Map{
		"beds":     dto.NewBedResponses(beds),
		"redirect": fmt.Sprintf("/hospitals/%d", id),
	})
}
