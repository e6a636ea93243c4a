package pdf

import "time"

// WholeYears returns the age in completed years at the reference date,
// subtracting one when the reference month/day precedes the birthday.
func WholeYears(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	if (int(at.Month()) < int(birth.Month())) ||
		(at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// YearsMonths returns the age as calendar years and months at the reference
// date. A negative day difference borrows a month, a negative month difference
// then borrows a year, and the result is clamped to non-negative.
func YearsMonths(birth, at time.Time) (years, months int) {
	years = at.Year() - birth.Year()
	months = int(at.Month()) - int(birth.Month())
	days := at.Day() - birth.Day()

	if days < 0 {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}
	if years < 0 {
		years, months = 0, 0
	}
	if months < 0 {
		months = 0
	}
	return years, months
}
