package services

import "slices"

type Panel string

const (
	PanelSeasonal Panel = "seasonal"
	PanelWeather  Panel = "weather"
	PanelMonthly  Panel = "monthly"
	PanelRFM      Panel = "rfm"
	PanelSummary  Panel = "summary"
)

// Variant is one screen configuration of the dashboard: which widgets are
// offered and which panels are rendered. All variants share one pipeline.
type Variant struct {
	Name         string
	Title        string
	DateRange    bool
	SeasonFilter bool
	YearFilter   bool
	Panels       []Panel
}

func (v Variant) Shows(p Panel) bool {
	return slices.Contains(v.Panels, p)
}

const DefaultVariant = "main"

var variants = []Variant{
	{
		Name:         "main",
		Title:        "Bike Rental Analysis",
		DateRange:    true,
		SeasonFilter: true,
		Panels:       []Panel{PanelSeasonal, PanelWeather, PanelRFM},
	},
	{
		Name:       "yearly",
		Title:      "Bike Rentals per Year",
		DateRange:  true,
		YearFilter: true,
		Panels:     []Panel{PanelSummary, PanelMonthly, PanelSeasonal, PanelWeather, PanelRFM},
	},
	{
		Name:         "compact",
		Title:        "Bike Rentals by Season and Weather",
		DateRange:    true,
		SeasonFilter: true,
		Panels:       []Panel{PanelSummary, PanelSeasonal, PanelWeather},
	},
}

func LookupVariant(name string) (Variant, bool) {
	if name == "" {
		name = DefaultVariant
	}
	for _, v := range variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

func Variants() []Variant {
	return slices.Clone(variants)
}

// tableVariant backs the JSON and export endpoints: every panel, no year
// default.
var tableVariant = Variant{
	Name:         "tables",
	DateRange:    true,
	SeasonFilter: true,
	Panels:       []Panel{PanelSeasonal, PanelWeather, PanelMonthly, PanelRFM, PanelSummary},
}
