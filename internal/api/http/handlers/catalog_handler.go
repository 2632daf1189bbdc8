package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bedbook/internal/api/dto"
	"github.com/spec-kit/bedbook/internal/service"
	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

// CatalogHandler serves the hospital listing and detail pages.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Beds handles GET and POST /beds. Management users are sent to their dashboard.
func (h *CatalogHandler) Beds(c *fiber.Ctx) error {
	if identity := identityFrom(c); identity != nil && identity.IsManagement {
		return c.Redirect("/management", fiber.StatusSeeOther)
	}

	city, err := cityFilter(c)
	if err != nil {
		return err
	}
	overview, err := h.catalog.Overview(c.UserContext(), city)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.NewCatalogResponse(overview.Hospitals, overview.Cities, overview.SelectedCity))
}

// Hospital handles GET /hospitals/:id.
func (h *CatalogHandler) Hospital(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewNotFound("hospital", map[string]any{"hospital_id": c.Params("id")})
	}

	hospital, err := h.catalog.GetHospital(c.UserContext(), int64(id))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.NewHospitalDetailResponse(*hospital))
}

// cityFilter reads the city from the query string, or from the body on POST.
func cityFilter(c *fiber.Ctx) (*string, error) {
	var req dto.CityFilterRequest
	if c.Method() == fiber.MethodPost && len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return nil, invalidPayload()
		}
	}
	if req.City == "" {
		req.City = c.Query("city")
	}
	if req.City == "" {
		return nil, nil
	}
	return &req.City, nil
}
