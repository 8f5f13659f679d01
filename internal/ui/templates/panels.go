package templates

import (
	"context"

	"github.com/a-h/templ"
)

func chartPanel(c chart) templ.Component {
	return component("chart", func(_ context.Context, m *markup) {
		m.raw(`<section class="panel"`)
		m.attr("id", c.ID)
		m.raw(">\n<h2>")
		m.text(c.Title)
		m.raw("</h2>\n")
		if len(c.Bars) == 0 {
			m.raw("<p class=\"empty\">No data for this selection.</p>\n</section>")
			return
		}
		m.raw(`<div class="bar-chart">`)
		if c.ValueLabel != "" {
			m.raw(`<p class="axis">`)
			m.text(c.ValueLabel)
			m.raw("</p>")
		}
		m.raw("\n")
		for _, b := range c.Bars {
			m.raw(`<div class="bar-row"><span class="bar-label">`)
			m.text(b.Label)
			if b.Series != "" {
				m.raw(" <small>")
				m.text(b.Series)
				m.raw("</small>")
			}
			m.raw(`</span><span class="bar-track"><span class="bar"`)
			m.attr("style", "width: "+b.Pct+"%")
			m.raw(`></span></span><span class="bar-value">`)
			m.text(b.Value)
			m.raw("</span></div>\n")
		}
		m.raw("</div>\n</section>")
	})
}

func summaryTable(s summaryData) templ.Component {
	return component("summary", func(_ context.Context, m *markup) {
		m.raw("<section class=\"panel\" id=\"summary-table\">\n<h2>Daily Rentals Summary</h2>\n<table>\n",
			"<thead><tr><th>Days</th><th>Total</th><th>Mean</th><th>Std</th><th>Min</th><th>Max</th></tr></thead>\n<tbody><tr>")
		for _, v := range []string{s.Count, s.Sum, s.Mean, s.StdDev, s.Min, s.Max} {
			m.raw("<td>")
			m.text(v)
			m.raw("</td>")
		}
		m.raw("</tr></tbody>\n</table>\n</section>")
	})
}

func rfmSection(r rfmData) templ.Component {
	return component("rfm", func(ctx context.Context, m *markup) {
		m.raw("<section class=\"panel\" id=\"rfm-table\">\n<h2>RFM Analysis (Recency, Frequency, Monetary)</h2>\n<table>\n",
			"<thead><tr><th>Date</th><th>Recency</th><th>Frequency</th><th>Monetary</th></tr></thead>\n<tbody>")
		for _, row := range r.Rows {
			m.raw("<tr>")
			for _, v := range []string{row.Date, row.Recency, row.Frequency, row.Monetary} {
				m.raw("<td>")
				m.text(v)
				m.raw("</td>")
			}
			m.raw("</tr>\n")
		}
		m.raw("</tbody>\n</table>\n<p><a")
		m.href(templ.URL(r.CSV))
		m.raw(">Download CSV</a> · <a")
		m.href(templ.URL(r.XLSX))
		m.raw(">Download XLSX</a></p>\n</section>\n<section class=\"panel\" id=\"rfm-charts\">\n<h2>RFM Visualization</h2>\n<div class=\"rfm-charts\">")
		for _, c := range r.Charts {
			m.child(ctx, chartPanel(c))
		}
		m.raw("</div>\n</section>")
	})
}
