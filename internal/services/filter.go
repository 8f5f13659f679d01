package services

import "bikeshare-dashboard/internal/models"

// Filter returns the records matching every active constraint of c, in
// input order. The input slice is not modified.
func Filter(records []models.Rental, c models.Criteria) []models.Rental {
	out := make([]models.Rental, 0, len(records))
	for _, r := range records {
		if Matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether r satisfies c. Records without a date never
// match a date bound.
func Matches(r models.Rental, c models.Criteria) bool {
	if c.HasDateRange() {
		if !r.HasDate() {
			return false
		}
		if !c.From.IsZero() && r.Date.Before(c.From) {
			return false
		}
		if !c.To.IsZero() && r.Date.After(c.To) {
			return false
		}
	}
	if c.Season != "" && c.Season != models.AllSeasons && r.Season != c.Season {
		return false
	}
	if c.Year != "" && r.Year != c.Year {
		return false
	}
	return true
}
