package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/bedbook/internal/domain"
)

// CityFilterRequest selects hospitals of one city.
type CityFilterRequest struct {
	City string `json:"city" form:"city" query:"city"`
}

// CreateHospitalRequest is the add-hospital payload.
type CreateHospitalRequest struct {
	Name string `json:"name" form:"name"`
	City string `json:"city" form:"city"`
}

// BedCount is the raw num_beds value. JSON numbers and JSON strings both
// decode into it, so a non-numeric value reaches Count instead of failing
// the body parse.
type BedCount string

// UnmarshalJSON keeps the literal text of a number or the contents of a string.
func (b *BedCount) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = BedCount(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*b = ""
		return nil
	}
	*b = BedCount(data)
	return nil
}

// AddBedsRequest is the add-beds payload.
type AddBedsRequest struct {
	BedType string   `json:"bed_type" form:"bed_type"`
	NumBeds BedCount `json:"num_beds" form:"num_beds"`
}

// Count returns NumBeds as an int, or zero when it is not an integer.
func (r AddBedsRequest) Count() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(r.NumBeds)))
	if err != nil {
		return 0
	}
	return n
}

// HospitalResponse is a hospital without its beds.
type HospitalResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

// HospitalDetailResponse is a hospital with all of its beds; beds is always a list.
type HospitalDetailResponse struct {
	HospitalResponse
	Beds []BedResponse `json:"beds"`
}

// CatalogResponse is the hospital listing with its city filter options.
type CatalogResponse struct {
	Hospitals    []HospitalResponse `json:"hospitals"`
	Cities       []string           `json:"cities"`
	SelectedCity *string            `json:"selected_city"`
}

// NewHospitalResponse maps a hospital.
func NewHospitalResponse(h domain.Hospital) HospitalResponse {
	return HospitalResponse{ID: h.ID, Name: h.Name, City: h.City, CreatedAt: h.CreatedAt}
}

// NewHospitalDetailResponse maps a hospital and its beds.
func NewHospitalDetailResponse(h domain.Hospital) HospitalDetailResponse {
	return HospitalDetailResponse{HospitalResponse: NewHospitalResponse(h), Beds: NewBedResponses(h.Beds)}
}

// NewCatalogResponse maps a listing.
func NewCatalogResponse(hospitals []domain.Hospital, cities []string, selected *string) CatalogResponse {
	resp := CatalogResponse{
		Hospitals:    make([]HospitalResponse, 0, len(hospitals)),
		Cities:       cities,
		SelectedCity: selected,
	}
	if resp.Cities == nil {
		resp.Cities = []string{}
	}
	for _, h := range hospitals {
		resp.Hospitals = append(resp.Hospitals, NewHospitalResponse(h))
	}
	return resp
}
