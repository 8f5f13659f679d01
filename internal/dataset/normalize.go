package dataset

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	"bikeshare-dashboard/internal/models"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
}

var nullMarkers = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "NaN": {}, "nan": {},
	"null": {}, "NULL": {}, "None": {}, "<nil>": {},
}

// Normalize converts a string-typed frame into rentals. Unparsable dates
// become missing, rows without a year are dropped.
func Normalize(df dataframe.DataFrame) (*Dataset, error) {
	names := df.Names()
	for _, required := range RequiredColumns {
		if !slices.Contains(names, required) {
			return nil, &SchemaError{Column: required, Reason: "missing column"}
		}
	}

	cols := make(map[string][]string, len(names))
	for _, name := range names {
		cols[name] = df.Col(name).Records()
	}

	var extra []string
	for _, name := range names {
		if !slices.Contains(RequiredColumns, name) {
			extra = append(extra, name)
		}
	}

	n := df.Nrow()
	records := make([]models.Rental, 0, n)
	for i := 0; i < n; i++ {
		year := nullable(cols[ColYear][i])
		if year == "" {
			continue
		}

		raw := cols[ColTotalUser][i]
		total, err := parseCount(raw)
		if err != nil {
			return nil, &SchemaError{Column: ColTotalUser, Line: i + 2, Value: raw, Reason: err.Error()}
		}

		rec := models.Rental{
			Date:       ParseDate(cols[ColDate][i]),
			Season:     nullable(cols[ColSeason][i]),
			Year:       year,
			Month:      nullable(cols[ColMonth][i]),
			Weekday:    nullable(cols[ColWeekday][i]),
			Holiday:    nullable(cols[ColHoliday][i]),
			WorkingDay: nullable(cols[ColWorkingDay][i]),
			Weather:    nullable(cols[ColWeather][i]),
			TotalUser:  total,
		}
		if len(extra) > 0 {
			rec.Extra = make(map[string]string, len(extra))
			for _, name := range extra {
				rec.Extra[name] = cols[name][i]
			}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{
		Columns:    names,
		Records:    records,
		Categories: make(map[string][]string, len(CategoricalColumns)),
	}
	for _, column := range CategoricalColumns {
		ds.Categories[column] = sortCategories(ds.Distinct(column))
	}
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		if ds.MinDate.IsZero() || r.Date.Before(ds.MinDate) {
			ds.MinDate = r.Date
		}
		if r.Date.After(ds.MaxDate) {
			ds.MaxDate = r.Date
		}
	}
	return ds, nil
}

// ParseDate returns the calendar day of value in UTC, or the zero time when
// no known layout matches.
func ParseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

func nullable(value string) string {
	value = strings.TrimSpace(value)
	if _, ok := nullMarkers[value]; ok {
		return ""
	}
	return value
}

func parseCount(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("missing value")
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil || math.IsNaN(f) || f != math.Trunc(f) {
			return 0, fmt.Errorf("not an integer")
		}
		n = int(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count")
	}
	return n, nil
}

// sortCategories orders numerically when every value is a number and
// lexically otherwise.
func sortCategories(values []string) []string {
	out := slices.Clone(values)
	numbers := make(map[string]float64, len(out))
	for _, v := range out {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slices.Sort(out)
			return out
		}
		numbers[v] = f
	}
	slices.SortFunc(out, func(a, b string) int {
		return cmp.Compare(numbers[a], numbers[b])
	})
	return out
}
