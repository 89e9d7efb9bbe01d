package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

func TestParseStatementText(t *testing.T) {
	text := `Bank of Examples
Statement period 01/03/2025 to 31/03/2025

05/03/2025  SUPERMARKET PAYLESS  -152,30
10/03/2025  SALARY MARCH  4.500,00
12/03/2025  COFFEE CORNER  -8.50
Closing balance 4339,20
`

	candidates, skipped := parseStatementText(text)
	require.Len(t, candidates, 3)
	assert.Equal(t, 3, skipped)

	assert.Equal(t, models.EntryExpense, candidates[0].Kind)
	assert.Equal(t, "SUPERMARKET PAYLESS", candidates[0].Description)
	assert.Equal(t, int64(15230), candidates[0].AmountCents)
	assert.Equal(t, 5, candidates[0].Date.Day())

	assert.Equal(t, models.EntryGain, candidates[1].Kind)
	assert.Equal(t, int64(450000), candidates[1].AmountCents)

	assert.Equal(t, models.EntryExpense, candidates[2].Kind)
	assert.Equal(t, int64(850), candidates[2].AmountCents)
}

func TestParseStatementTextEmptyInput(t *testing.T) {
	candidates, skipped := parseStatementText("")
	assert.Empty(t, candidates)
	assert.Zero(t, skipped)
}

func TestParseAmountCents(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{"1234.56", 123456},
		{"1234,56", 123456},
		{"1.234,56", 123456},
		{"1,234.56", 123456},
		{"-8.50", -850},
		{"0.01", 1},
	}
	for _, tc := range cases {
		got, err := parseAmountCents(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestMatchCategory(t *testing.T) {
	categories := []*models.Category{
		{ID: "cat-food", Name: "Food", Keywords: []string{"supermarket", "restaurant"}},
		{ID: "cat-income", Name: "Income", Keywords: []string{"salary"}},
	}

	assert.Equal(t, "cat-food", matchCategory("SUPERMARKET PAYLESS", categories))
	assert.Equal(t, "cat-income", matchCategory("Salary March", categories))
	assert.Equal(t, "", matchCategory("PHARMACY", categories))
}
