package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/donaciones-api/internal/domain"
)

func TestMonthRange_Limites(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	start, end := domain.MonthRange(time.Date(2025, time.March, 15, 13, 42, 0, 0, loc))

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, loc), start,
		"el inicio debe ser el primer instante del mes en la zona de t")
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, loc), end,
		"el fin debe ser exclusivo: el primer instante del mes siguiente")
}

func TestMonthRange_DiciembreCruzaAno(t *testing.T) {
	start, end := domain.MonthRange(time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC))

	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthRange_PrimerInstanteDelMes(t *testing.T) {
	first := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	start, end := domain.MonthRange(first)

	assert.Equal(t, first, start, "el primer instante del mes pertenece a su propio período")
	assert.True(t, first.Before(end))
}
