package models

import "time"

// AllSeasons is the season selection that disables the season constraint.
const AllSeasons = "All"

// Rental is one day of bike rentals.
type Rental struct {
	Date       time.Time
	Season     string
	Year       string
	Month      string
	Weekday    string
	Holiday    string
	WorkingDay string
	Weather    string
	TotalUser  int
	Extra      map[string]string
}

// HasDate reports whether the date column parsed.
func (r Rental) HasDate() bool {
	return !r.Date.IsZero()
}

// Criteria selects a filtered view. Zero bounds are open; an empty Season
// or AllSeasons and an empty Year leave that column unconstrained.
type Criteria struct {
	From   time.Time
	To     time.Time
	Season string
	Year   string
}

func (c Criteria) HasDateRange() bool {
	return !c.From.IsZero() || !c.To.IsZero()
}

type SeasonTotal struct {
	Year      string `json:"year"`
	Season    string `json:"season"`
	TotalUser int    `json:"total_user"`
}

type WeatherImpact struct {
	Weather  string  `json:"weather"`
	MeanUser float64 `json:"mean_user"`
	Days     int     `json:"days"`
}

type MonthlyTrend struct {
	Year     string  `json:"year"`
	Month    string  `json:"month"`
	MeanUser float64 `json:"mean_user"`
	Days     int     `json:"days"`
}

type RFM struct {
	Date      time.Time `json:"date"`
	Recency   int       `json:"recency"`
	Frequency int       `json:"frequency"`
	Monetary  int       `json:"monetary"`
}

type Summary struct {
	Count  int     `json:"count"`
	Sum    int     `json:"sum"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}
