package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bedbook/internal/domain"
)

func TestAddBedsRequest_Count(t *testing.T) {
	cases := map[string]int{"3": 3, " 12 ": 12, "-1": -1, "abc": 0, "": 0, "2.5": 0}
	for raw, want := range cases {
		assert.Equal(t, want, AddBedsRequest{NumBeds: BedCount(raw)}.Count(), raw)
	}

	bodies := map[string]int{
		`{"bed_type":"ICU","num_beds":4}`:     4,
		`{"bed_type":"ICU","num_beds":"5"}`:   5,
		`{"bed_type":"ICU","num_beds":"abc"}`: 0,
		`{"bed_type":"ICU","num_beds":2.5}`:   0,
		`{"bed_type":"ICU","num_beds":null}`:  0,
	}
	for body, want := range bodies {
		var req AddBedsRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, req.Count(), body)
	}
}

func TestNewBedResponse_OmitsBookingFieldsWhenAvailable(t *testing.T) {
	raw, err := json.Marshal(NewBedResponse(domain.Bed{ID: 1, HospitalID: 2, BedType: "ICU", Available: true}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"hospital_id":2,"bed_type":"ICU","available":true}`, string(raw))

	user := int64(9)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, err = json.Marshal(NewBedResponse(domain.Bed{ID: 1, HospitalID: 2, BedType: "ICU", BookedBy: &user, BookingTime: &at}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"hospital_id":2,"bed_type":"ICU","available":false,"booked_by":9,"booking_time":"2024-03-01T10:00:00Z"}`, string(raw))
}

func TestNewCatalogResponse_NeverNull(t *testing.T) {
	raw, err := json.Marshal(NewCatalogResponse(nil, nil, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"hospitals":[],"cities":[],"selected_city":null}`, string(raw))
}

func TestNewHospitalDetailResponse_AlwaysListsBeds(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(NewHospitalDetailResponse(domain.Hospital{ID: 3, Name: "GenCity Hospital", City: "Metropolis", CreatedAt: created}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"GenCity Hospital","city":"Metropolis","created_at":"2024-03-01T10:00:00Z","beds":[]}`, string(raw))

	raw, err = json.Marshal(NewHospitalResponse(domain.Hospital{ID: 3, Name: "GenCity Hospital", City: "Metropolis", CreatedAt: created}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "beds")
}
