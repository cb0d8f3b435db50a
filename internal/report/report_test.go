package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/payroll/internal/models"
)

func TestHeader(t *testing.T) {
	assert.Equal(t,
		"ID    FirstName  LastName       Income KiwiSaver%   HourlyWage FortnightlyPayroll",
		Header())
}

func TestRow(t *testing.T) {
	e := models.Employee{
		ID:             1,
		FirstName:      "Aroha",
		LastName:       "Ngata",
		AnnualIncome:   15600,
		KiwiSaverRate:  0.03,
		FortnightlyPay: 519,
		HourlyWage:     7.5,
	}

	assert.Equal(t,
		"1     Aroha      Ngata        15600.00          3         7.50             519.00",
		Row(e))
}

func TestRowAlignsWithHeader(t *testing.T) {
	e := models.Employee{ID: 12345, FirstName: "Firstname1", LastName: "Lastname12", AnnualIncome: 1234567.89, KiwiSaverRate: 0.1}
	assert.Len(t, Row(e), len(Header()))
}

func TestRowLongNamesAreNotTruncated(t *testing.T) {
	e := models.Employee{ID: 3, FirstName: "Bartholomew", LastName: "X"}
	assert.Contains(t, Row(e), "Bartholomew X")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	employees := []models.Employee{
		{ID: 2, FirstName: "B", LastName: "Two"},
		{ID: 1, FirstName: "A", LastName: "One"},
	}

	require.NoError(t, WriteTable(&buf, employees))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header(), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2 "))
	assert.True(t, strings.HasPrefix(lines[2], "1 "))
}
