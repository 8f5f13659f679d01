package templates

import (
	"fmt"

	"bikeshare-dashboard/internal/models"
)

type bar struct {
	Label  string
	Series string
	Value  string
	Pct    string
}

type chart struct {
	ID         string
	Title      string
	ValueLabel string
	Bars       []bar
}

type point struct {
	label  string
	series string
	value  float64
	text   string
}

func newChart(id, title, valueLabel string, points []point) chart {
	var peak float64
	for _, p := range points {
		peak = max(peak, p.value)
	}

	c := chart{ID: id, Title: title, ValueLabel: valueLabel, Bars: make([]bar, 0, len(points))}
	for _, p := range points {
		pct := 0.0
		if peak > 0 {
			pct = p.value / peak * 100
		}
		c.Bars = append(c.Bars, bar{
			Label:  p.label,
			Series: p.series,
			Value:  p.text,
			Pct:    fmt.Sprintf("%.1f", pct),
		})
	}
	return c
}

func seasonalChart(rows []models.SeasonTotal) chart {
	points := make([]point, 0, len(rows))
	for _, r := range rows {
		points = append(points, point{label: r.Season, series: r.Year, value: float64(r.TotalUser), text: formatCount(r.TotalUser)})
	}
	return newChart("seasonal-chart", "Total Rentals by Season per Year", "Total rentals", points)
}

func weatherChart(rows []models.WeatherImpact) chart {
	points := make([]point, 0, len(rows))
	for _, r := range rows {
		points = append(points, point{label: r.Weather, value: r.MeanUser, text: formatMean(r.MeanUser)})
	}
	return newChart("weather-chart", "Weather Impact on Rentals", "Average rentals", points)
}

func monthlyChart(rows []models.MonthlyTrend) chart {
	points := make([]point, 0, len(rows))
	for _, r := range rows {
		points = append(points, point{label: r.Month, series: r.Year, value: r.MeanUser, text: formatMean(r.MeanUser)})
	}
	return newChart("monthly-chart", "Average Daily Rentals per Month", "Average rentals", points)
}

func rfmChart(id, title string, rows []models.RFM, metric func(models.RFM) int) chart {
	points := make([]point, 0, len(rows))
	for _, r := range rows {
		v := metric(r)
		points = append(points, point{label: formatDate(r.Date), value: float64(v), text: formatCount(v)})
	}
	return newChart(id, title, "", points)
}
