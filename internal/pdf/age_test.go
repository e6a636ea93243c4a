package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearsMonthsBorrowsDay(t *testing.T) {
	years, months := YearsMonths(date(2010, time.May, 20), date(2024, time.May, 19))
	assert.Equal(t, 13, years)
	assert.Equal(t, 11, months)
}

func TestYearsMonthsExactBirthday(t *testing.T) {
	years, months := YearsMonths(date(2010, time.May, 20), date(2024, time.May, 20))
	assert.Equal(t, 14, years)
	assert.Equal(t, 0, months)
}

func TestYearsMonthsBorrowsYear(t *testing.T) {
	years, months := YearsMonths(date(2010, time.November, 5), date(2024, time.March, 5))
	assert.Equal(t, 13, years)
	assert.Equal(t, 4, months)
}

func TestYearsMonthsClampsNonNegative(t *testing.T) {
	years, months := YearsMonths(date(2030, time.January, 1), date(2024, time.January, 1))
	assert.Equal(t, 0, years)
	assert.Equal(t, 0, months)
}

func TestWholeYearsBeforeBirthday(t *testing.T) {
	assert.Equal(t, 13, WholeYears(date(2010, time.May, 20), date(2024, time.May, 19)))
}

func TestWholeYearsOnBirthday(t *testing.T) {
	assert.Equal(t, 14, WholeYears(date(2010, time.May, 20), date(2024, time.May, 20)))
}
