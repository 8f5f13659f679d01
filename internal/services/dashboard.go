package services

import (
	"errors"
	"fmt"
	"time"

	"bikeshare-dashboard/internal/dataset"
	"bikeshare-dashboard/internal/models"
)

var ErrInvalidCriteria = errors.New("invalid filter selection")

// FilterOptions are the values offered by the selection widgets.
type FilterOptions struct {
	MinDate time.Time
	MaxDate time.Time
	Seasons []string
	Years   []string
}

// View is everything one render pass of a variant needs. It is built from
// scratch for every interaction.
type View struct {
	Variant  Variant
	Criteria models.Criteria
	Options  FilterOptions
	Columns  []string
	Rows     []models.Rental
	Empty    bool

	Seasonal     []models.SeasonTotal
	Weather      []models.WeatherImpact
	Monthly      []models.MonthlyTrend
	RFM          []models.RFM
	TopRecency   []models.RFM
	TopFrequency []models.RFM
	TopMonetary  []models.RFM
	Summary      models.Summary
}

// Options lists widget choices for a dataset. Seasons are prefixed with
// the wildcard.
func Options(ds *dataset.Dataset) FilterOptions {
	return FilterOptions{
		MinDate: ds.MinDate,
		MaxDate: ds.MaxDate,
		Seasons: append([]string{models.AllSeasons}, ds.Distinct(dataset.ColSeason)...),
		Years:   ds.Distinct(dataset.ColYear),
	}
}

// Resolve applies the variant defaults to c and checks that every selected
// value exists in the dataset. A variant with a year widget always selects
// exactly one year.
func Resolve(ds *dataset.Dataset, v Variant, c models.Criteria) (models.Criteria, error) {
	opts := Options(ds)

	// Only a range given in full can be reversed. A single bound outside
	// the data span is a valid selection that matches nothing.
	if !c.From.IsZero() && !c.To.IsZero() && c.From.After(c.To) {
		return c, fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidCriteria,
			c.From.Format(time.DateOnly), c.To.Format(time.DateOnly))
	}
	if v.DateRange {
		if c.From.IsZero() {
			c.From = opts.MinDate
		}
		if c.To.IsZero() {
			c.To = opts.MaxDate
		}
	}

	if v.SeasonFilter && c.Season == "" {
		c.Season = models.AllSeasons
	}
	if c.Season != "" && c.Season != models.AllSeasons && !ds.HasValue(dataset.ColSeason, c.Season) {
		return c, fmt.Errorf("%w: unknown season %q", ErrInvalidCriteria, c.Season)
	}

	if v.YearFilter && c.Year == "" && len(opts.Years) > 0 {
		c.Year = opts.Years[0]
	}
	if c.Year != "" && !ds.HasValue(dataset.ColYear, c.Year) {
		return c, fmt.Errorf("%w: unknown year %q", ErrInvalidCriteria, c.Year)
	}

	return c, nil
}

// Build runs filter and aggregation for one render pass. An empty
// selection yields a View with Empty set and no panel data.
func Build(ds *dataset.Dataset, v Variant, c models.Criteria) (*View, error) {
	c, err := Resolve(ds, v, c)
	if err != nil {
		return nil, err
	}

	view := &View{
		Variant:  v,
		Criteria: c,
		Options:  Options(ds),
		Columns:  ds.Columns,
		Rows:     Filter(ds.Records, c),
	}
	if len(view.Rows) == 0 {
		view.Empty = true
		return view, nil
	}

	years := ds.Values(dataset.ColYear)
	if c.Year != "" {
		years = []string{c.Year}
	}

	if v.Shows(PanelSeasonal) {
		view.Seasonal = SeasonalTotals(view.Rows, years, ds.Values(dataset.ColSeason))
	}
	if v.Shows(PanelWeather) {
		view.Weather = WeatherImpact(view.Rows, ds.Values(dataset.ColWeather))
	}
	if v.Shows(PanelMonthly) {
		view.Monthly = MonthlyTrend(view.Rows, years, ds.Values(dataset.ColMonth))
	}
	if v.Shows(PanelRFM) {
		view.RFM = RFM(view.Rows)
		view.TopRecency = TopRecency(view.RFM, DefaultTopN)
		view.TopFrequency = TopFrequency(view.RFM, DefaultTopN)
		view.TopMonetary = TopMonetary(view.RFM, DefaultTopN)
	}
	if v.Shows(PanelSummary) {
		view.Summary = Describe(view.Rows)
	}
	return view, nil
}
