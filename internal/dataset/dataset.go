package dataset

import (
	"slices"
	"strconv"
	"time"

	"bikeshare-dashboard/internal/models"
)

// Column names of the cleaned daily rentals file.
const (
	ColDate       = "date"
	ColSeason     = "season"
	ColYear       = "year"
	ColMonth      = "month"
	ColWeekday    = "weekday"
	ColHoliday    = "holiday"
	ColWorkingDay = "workingday"
	ColWeather    = "weather"
	ColTotalUser  = "total_user"
)

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{
	ColDate, ColSeason, ColYear, ColMonth, ColWeekday,
	ColHoliday, ColWorkingDay, ColWeather, ColTotalUser,
}

// CategoricalColumns get an ordered set of allowed values.
var CategoricalColumns = []string{
	ColSeason, ColYear, ColMonth, ColWeekday, ColHoliday, ColWorkingDay, ColWeather,
}

// Dataset is a loaded and normalized rentals file. It is never mutated
// after Normalize returns it.
type Dataset struct {
	Columns    []string
	Records    []models.Rental
	Categories map[string][]string
	MinDate    time.Time
	MaxDate    time.Time
}

// Values returns the allowed values of a categorical column in group order.
func (d *Dataset) Values(column string) []string {
	return d.Categories[column]
}

// Distinct returns the values of a categorical column in order of first
// appearance, which is the order selection widgets list them in.
func (d *Dataset) Distinct(column string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.Records {
		v := Field(r, column)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// HasValue reports whether value is an allowed value of column.
func (d *Dataset) HasValue(column, value string) bool {
	return slices.Contains(d.Categories[column], value)
}

// Field returns the value of column in r as it would appear in the file.
// A missing date is empty.
func Field(r models.Rental, column string) string {
	switch column {
	case ColDate:
		if !r.HasDate() {
			return ""
		}
		return r.Date.Format(time.DateOnly)
	case ColTotalUser:
		return strconv.Itoa(r.TotalUser)
	case ColSeason:
		return r.Season
	case ColYear:
		return r.Year
	case ColMonth:
		return r.Month
	case ColWeekday:
		return r.Weekday
	case ColHoliday:
		return r.Holiday
	case ColWorkingDay:
		return r.WorkingDay
	case ColWeather:
		return r.Weather
	default:
		return r.Extra[column]
	}
}
