package services

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"bikeshare-dashboard/internal/models"
)

// DefaultTopN is the length of the RFM ranking tables.
const DefaultTopN = 5

const secondsPerDay = 24 * 60 * 60

// SeasonalTotals sums total users for every (year, season) pair of the
// given category orders, pairs without rows included as zero. Observed
// pairs outside the categories are appended in order of appearance.
func SeasonalTotals(records []models.Rental, years, seasons []string) []models.SeasonTotal {
	if len(records) == 0 {
		return []models.SeasonTotal{}
	}

	type key struct{ year, season string }
	sums := make(map[key]int)
	var observed []key
	for _, r := range records {
		if r.Year == "" || r.Season == "" {
			continue
		}
		k := key{r.Year, r.Season}
		if _, ok := sums[k]; !ok {
			observed = append(observed, k)
		}
		sums[k] += r.TotalUser
	}

	result := make([]models.SeasonTotal, 0, len(years)*len(seasons))
	emitted := make(map[key]bool, len(years)*len(seasons))
	for _, y := range years {
		for _, s := range seasons {
			k := key{y, s}
			emitted[k] = true
			result = append(result, models.SeasonTotal{Year: y, Season: s, TotalUser: sums[k]})
		}
	}
	for _, k := range observed {
		if !emitted[k] {
			result = append(result, models.SeasonTotal{Year: k.year, Season: k.season, TotalUser: sums[k]})
		}
	}
	return result
}

// WeatherImpact averages total users per observed weather code.
func WeatherImpact(records []models.Rental, weathers []string) []models.WeatherImpact {
	groups, order := groupValues(records, weathers, func(r models.Rental) (string, bool) {
		return r.Weather, r.Weather != ""
	})

	result := make([]models.WeatherImpact, 0, len(order))
	for _, w := range order {
		values := groups[w]
		result = append(result, models.WeatherImpact{
			Weather:  w,
			MeanUser: stat.Mean(values, nil),
			Days:     len(values),
		})
	}
	return result
}

// MonthlyTrend averages total users per observed (year, month).
func MonthlyTrend(records []models.Rental, years, months []string) []models.MonthlyTrend {
	var order []string
	for _, y := range years {
		for _, m := range months {
			order = append(order, y+"\x00"+m)
		}
	}
	groups, keys := groupValues(records, order, func(r models.Rental) (string, bool) {
		return r.Year + "\x00" + r.Month, r.Year != "" && r.Month != ""
	})

	result := make([]models.MonthlyTrend, 0, len(keys))
	for _, k := range keys {
		values := groups[k]
		year, month, _ := strings.Cut(k, "\x00")
		result = append(result, models.MonthlyTrend{
			Year:     year,
			Month:    month,
			MeanUser: stat.Mean(values, nil),
			Days:     len(values),
		})
	}
	return result
}

// RFM groups records by date in ascending date order. Recency is measured
// in days from the latest date of the input.
func RFM(records []models.Rental) []models.RFM {
	groups := make(map[time.Time]*models.RFM)
	var latest time.Time
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		g, ok := groups[r.Date]
		if !ok {
			g = &models.RFM{Date: r.Date}
			groups[r.Date] = g
		}
		g.Frequency++
		g.Monetary += r.TotalUser
		if r.Date.After(latest) {
			latest = r.Date
		}
	}

	result := make([]models.RFM, 0, len(groups))
	for _, g := range groups {
		g.Recency = daysBetween(g.Date, latest)
		result = append(result, *g)
	}
	slices.SortFunc(result, func(a, b models.RFM) int {
		return a.Date.Compare(b.Date)
	})
	return result
}

// daysBetween counts whole days from a to b. It uses Unix seconds since
// time.Duration overflows for spans over about 292 years.
func daysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

// TopRecency returns the n most recent days. Ties keep input order.
func TopRecency(rfm []models.RFM, n int) []models.RFM {
	return top(rfm, n, func(a, b models.RFM) int { return cmp.Compare(a.Recency, b.Recency) })
}

// TopFrequency returns the n days with the most records.
func TopFrequency(rfm []models.RFM, n int) []models.RFM {
	return top(rfm, n, func(a, b models.RFM) int { return cmp.Compare(b.Frequency, a.Frequency) })
}

// TopMonetary returns the n days with the most rentals.
func TopMonetary(rfm []models.RFM, n int) []models.RFM {
	return top(rfm, n, func(a, b models.RFM) int { return cmp.Compare(b.Monetary, a.Monetary) })
}

// Head returns at most the first n rows.
func Head[T any](rows []T, n int) []T {
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}

// Describe summarizes total users. StdDev is the sample deviation, zero
// for fewer than two records.
func Describe(records []models.Rental) models.Summary {
	if len(records) == 0 {
		return models.Summary{}
	}

	values := make([]float64, len(records))
	s := models.Summary{Count: len(records), Min: records[0].TotalUser, Max: records[0].TotalUser}
	for i, r := range records {
		values[i] = float64(r.TotalUser)
		s.Sum += r.TotalUser
		s.Min = min(s.Min, r.TotalUser)
		s.Max = max(s.Max, r.TotalUser)
	}
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	return s
}

func top(rfm []models.RFM, n int, compare func(a, b models.RFM) int) []models.RFM {
	sorted := slices.Clone(rfm)
	slices.SortStableFunc(sorted, compare)
	return Head(sorted, n)
}

// groupValues collects total users per key. Keys are returned in the given
// order first, then any remaining observed keys in order of appearance.
func groupValues(records []models.Rental, order []string, keyOf func(models.Rental) (string, bool)) (map[string][]float64, []string) {
	groups := make(map[string][]float64)
	var observed []string
	for _, r := range records {
		k, ok := keyOf(r)
		if !ok {
			continue
		}
		if _, seen := groups[k]; !seen {
			observed = append(observed, k)
		}
		groups[k] = append(groups[k], float64(r.TotalUser))
	}

	keys := make([]string, 0, len(groups))
	for _, k := range order {
		if _, ok := groups[k]; ok {
			keys = append(keys, k)
		}
	}
	for _, k := range observed {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	return groups, keys
}
