package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bedbook/internal/domain"
)

var hospitalColumns = []string{"id", "name", "city", "created_at"}

func TestHospitalRepository_Create(t *testing.T) {
	mock := setupMockPool(t)
	repo := NewHospitalRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO hospitals`).
		WithArgs("GenCity Hospital", "Metropolis").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

	hospital := &domain.Hospital{Name: "GenCity Hospital", City: "Metropolis"}
	require.NoError(t, repo.Create(context.Background(), hospital))
	assert.Equal(t, int64(5), hospital.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalRepository_CreateDuplicateName(t *testing.T) {
	mock := setupMockPool(t)
	repo := NewHospitalRepository(mock)

	mock.ExpectQuery(`ON CONFLICT \(name\) DO NOTHING`).
		WithArgs("GenCity Hospital", "Metropolis").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}))

	err := repo.Create(context.Background(), &domain.Hospital{Name: "GenCity Hospital", City: "Metropolis"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestHospitalRepository_ListFiltersByCity(t *testing.T) {
	mock := setupMockPool(t)
	repo := NewHospitalRepository(mock)
	now := time.Now()
	city := "Metropolis"

	mock.ExpectQuery(`FROM hospitals WHERE city=\$1 ORDER BY name, id`).
		WithArgs("Metropolis").
		WillReturnRows(pgxmock.NewRows(hospitalColumns).
			AddRow(int64(1), "A General", "Metropolis", now).
			AddRow(int64(2), "B Clinic", "Metropolis", now))

	hospitals, err := repo.List(context.Background(), &city)
	require.NoError(t, err)
	require.Len(t, hospitals, 2)
	assert.Equal(t, "A General", hospitals[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalRepository_ListAll(t *testing.T) {
	mock := setupMockPool(t)
	repo := NewHospitalRepository(mock)

	mock.ExpectQuery(`FROM hospitals ORDER BY name, id`).
		WillReturnRows(pgxmock.NewRows(hospitalColumns))

	hospitals, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, hospitals)
	assert.NotNil(t, hospitals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalRepository_ListCities(t *testing.T) {
	mock := setupMockPool(t)
	repo := NewHospitalRepository(mock)

	mock.ExpectQuery(`SELECT DISTINCT city`).
		WillReturnRows(pgxmock.NewRows([]string{"city"}).AddRow("Gotham").AddRow("Metropolis"))

	cities, err := repo.ListCities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Gotham", "Metropolis"}, cities)
	assert.NoError(t, mock.ExpectationsWereMet())
}
