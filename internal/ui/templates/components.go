package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"

	"bikeshare-dashboard/internal/models"
	"bikeshare-dashboard/internal/services"
)

const rfmPreviewRows = 5

type link struct {
	Href   string
	Title  string
	Active bool
}

type option struct {
	Value    string
	Selected bool
}

type filters struct {
	DateRange bool
	Min, Max  string
	From, To  string
	Seasons   []option
	Years     []option
}

type pageData struct {
	Title    string
	Variants []link
	Signals  string
	Filters  *filters
	Refresh  string
	Content  contentData
}

type summaryData struct {
	Count, Sum, Mean, StdDev, Min, Max string
}

type rfmRow struct {
	Date, Recency, Frequency, Monetary string
}

type rfmData struct {
	Rows      []rfmRow
	Charts    []chart
	CSV, XLSX string
}

type panelData struct {
	Chart   *chart
	Summary *summaryData
	RFM     *rfmData
}

type contentData struct {
	Error   string
	Warning string
	Days    string
	Panels  []panelData
}

// Signals is the client state bound to the filter widgets.
type Signals struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Season string `json:"season"`
	Year   string `json:"year"`
}

// SignalsFor reports the resolved selection of a view.
func SignalsFor(view *services.View) Signals {
	return Signals{
		From:   formatDate(view.Criteria.From),
		To:     formatDate(view.Criteria.To),
		Season: view.Criteria.Season,
		Year:   view.Criteria.Year,
	}
}

// Dashboard renders the full page of a variant.
func Dashboard(view *services.View) templ.Component {
	return page(pageDataFor(view))
}

// ErrorPage renders a page that shows only msg, used when the dataset
// could not be loaded or the variant does not exist.
func ErrorPage(variant services.Variant, msg string) templ.Component {
	title := variant.Title
	if title == "" {
		title = "Bike Rental Dashboard"
	}
	return page(pageData{
		Title:    title,
		Variants: variantLinks(variant.Name),
		Content:  contentData{Error: msg},
	})
}

// Content renders the patchable panel area for a view.
func Content(view *services.View) templ.Component {
	return content(contentDataFor(view))
}

// Message renders the panel area carrying only an error or warning.
func Message(kind, msg string) templ.Component {
	data := contentData{Error: msg}
	if kind == "warning" {
		data = contentData{Warning: msg}
	}
	return content(data)
}

func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func pageDataFor(view *services.View) pageData {
	v := view.Variant
	signals, _ := json.Marshal(SignalsFor(view))

	f := &filters{
		DateRange: v.DateRange,
		Min:       formatDate(view.Options.MinDate),
		Max:       formatDate(view.Options.MaxDate),
		From:      formatDate(view.Criteria.From),
		To:        formatDate(view.Criteria.To),
	}
	if v.SeasonFilter {
		f.Seasons = options(view.Options.Seasons, view.Criteria.Season)
	}
	if v.YearFilter {
		f.Years = options(view.Options.Years, view.Criteria.Year)
	}

	return pageData{
		Title:    v.Title,
		Variants: variantLinks(v.Name),
		Signals:  string(signals),
		Filters:  f,
		Refresh:  fmt.Sprintf("@get('/sse/v/%s/refresh')", v.Name),
		Content:  contentDataFor(view),
	}
}

func contentDataFor(view *services.View) contentData {
	if view.Empty {
		return contentData{Warning: "No data available for the selected filters."}
	}

	data := contentData{Days: formatCount(len(view.Rows))}
	for _, p := range view.Variant.Panels {
		switch p {
		case services.PanelSummary:
			s := view.Summary
			data.Panels = append(data.Panels, panelData{Summary: &summaryData{
				Count:  formatCount(s.Count),
				Sum:    formatCount(s.Sum),
				Mean:   formatMean(s.Mean),
				StdDev: formatMean(s.StdDev),
				Min:    formatCount(s.Min),
				Max:    formatCount(s.Max),
			}})
		case services.PanelSeasonal:
			c := seasonalChart(view.Seasonal)
			data.Panels = append(data.Panels, panelData{Chart: &c})
		case services.PanelWeather:
			c := weatherChart(view.Weather)
			data.Panels = append(data.Panels, panelData{Chart: &c})
		case services.PanelMonthly:
			c := monthlyChart(view.Monthly)
			data.Panels = append(data.Panels, panelData{Chart: &c})
		case services.PanelRFM:
			data.Panels = append(data.Panels, panelData{RFM: rfmPanel(view)})
		}
	}
	return data
}

func rfmPanel(view *services.View) *rfmData {
	head := services.Head(view.RFM, rfmPreviewRows)
	rows := make([]rfmRow, 0, len(head))
	for _, r := range head {
		rows = append(rows, rfmRow{
			Date:      formatDate(r.Date),
			Recency:   formatCount(r.Recency),
			Frequency: formatCount(r.Frequency),
			Monetary:  formatCount(r.Monetary),
		})
	}

	query := exportQuery(view.Criteria)
	return &rfmData{
		Rows: rows,
		Charts: []chart{
			rfmChart("rfm-recency", "By Recency (days)", view.TopRecency, func(r models.RFM) int { return r.Recency }),
			rfmChart("rfm-frequency", "By Frequency", view.TopFrequency, func(r models.RFM) int { return r.Frequency }),
			rfmChart("rfm-monetary", "By Monetary", view.TopMonetary, func(r models.RFM) int { return r.Monetary }),
		},
		CSV:  "/export/rfm.csv" + query,
		XLSX: "/export/rfm.xlsx" + query,
	}
}

func exportQuery(c models.Criteria) string {
	q := url.Values{}
	if !c.From.IsZero() {
		q.Set("from", c.From.Format(time.DateOnly))
	}
	if !c.To.IsZero() {
		q.Set("to", c.To.Format(time.DateOnly))
	}
	if c.Season != "" && c.Season != models.AllSeasons {
		q.Set("season", c.Season)
	}
	if c.Year != "" {
		q.Set("year", c.Year)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func options(values []string, selected string) []option {
	out := make([]option, 0, len(values))
	for _, v := range values {
		out = append(out, option{Value: v, Selected: v == selected})
	}
	return out
}

func variantLinks(active string) []link {
	vs := services.Variants()
	links := make([]link, 0, len(vs))
	for _, v := range vs {
		href := "/v/" + v.Name
		if v.Name == services.DefaultVariant {
			href = "/"
		}
		links = append(links, link{Href: href, Title: v.Title, Active: v.Name == active})
	}
	return links
}
