package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

const styles = `
body{font-family:system-ui,sans-serif;margin:0;color:#1f2933;background:#f5f7fa}
header{display:flex;justify-content:space-between;align-items:center;padding:1rem 2rem;background:#fff;border-bottom:1px solid #e4e7eb}
header nav a{margin-left:1rem;color:#52606d;text-decoration:none}
header nav a.active{color:#0b6e99;font-weight:600}
.layout{display:flex;gap:2rem;padding:2rem}
.sidebar{min-width:14rem}
.sidebar label{display:block;margin-bottom:1rem}
.sidebar input,.sidebar select{display:block;width:100%;margin-top:.25rem}
main{flex:1}
.panel{background:#fff;border-radius:6px;padding:1rem 1.5rem;margin-bottom:1.5rem}
.bar-row{display:flex;align-items:center;gap:.5rem;margin:.25rem 0}
.bar-label{width:9rem}
.bar-track{flex:1;background:#e4e7eb;height:1rem;border-radius:3px}
.bar{display:block;height:100%;background:#72BCD4;border-radius:3px}
.bar-value{width:6rem;text-align:right}
.rfm-charts{display:grid;grid-template-columns:repeat(3,1fr);gap:1rem}
.alert{padding:1rem;border-radius:6px}
.alert.error{background:#fde8e8;color:#9b1c1c}
.alert.warning{background:#fdf6b2;color:#723b13}
table{border-collapse:collapse;width:100%}
th,td{text-align:left;padding:.35rem .5rem;border-bottom:1px solid #e4e7eb}
`

// markup writes a component's HTML. Static parts go through raw, every
// dynamic value through text or attr. The first write error sticks.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(parts ...string) {
	for _, s := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, s)
	}
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

func (m *markup) attr(name, value string) {
	m.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (m *markup) href(u templ.SafeURL) {
	m.attr("href", string(u))
}

func (m *markup) child(ctx context.Context, c templ.Component) {
	if m.err != nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

func component(name string, body func(ctx context.Context, m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := &markup{w: w}
		body(ctx, m)
		if m.err != nil {
			return fmt.Errorf("render %s: %w", name, m.err)
		}
		return nil
	})
}

func page(d pageData) templ.Component {
	return component("page", func(ctx context.Context, m *markup) {
		m.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n",
			"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n<title>")
		m.text(d.Title)
		m.raw("</title>\n<script type=\"module\" src=\"", datastarScript, "\"></script>\n<style>", styles, "</style>\n</head>\n<body")
		if d.Signals != "" {
			m.attr("data-signals", d.Signals)
		}
		m.raw(">\n<header>\n<h1>")
		m.text(d.Title)
		m.raw("</h1>\n<nav>")
		for _, l := range d.Variants {
			m.raw("<a")
			m.href(templ.URL(l.Href))
			if l.Active {
				m.raw(` class="active"`)
			}
			m.raw(">")
			m.text(l.Title)
			m.raw("</a>")
		}
		m.raw("</nav>\n</header>\n<div class=\"layout\">\n")
		if d.Filters != nil {
			m.child(ctx, sidebar(*d.Filters, d.Refresh))
		}
		m.child(ctx, content(d.Content))
		m.raw("\n</div>\n</body>\n</html>")
	})
}

func sidebar(f filters, refresh string) templ.Component {
	return component("sidebar", func(_ context.Context, m *markup) {
		m.raw("<aside class=\"sidebar\">\n<h2>Filter</h2>\n")
		if f.DateRange {
			dateInput(m, "Start date", "from", f, f.From, refresh)
			dateInput(m, "End date", "to", f, f.To, refresh)
		}
		if len(f.Seasons) > 0 {
			selectInput(m, "Season", "season", f.Seasons, refresh)
		}
		if len(f.Years) > 0 {
			selectInput(m, "Year", "year", f.Years, refresh)
		}
		m.raw("</aside>\n")
	})
}

func dateInput(m *markup, label, signal string, f filters, value, refresh string) {
	m.raw("<label>")
	m.text(label)
	m.raw(`<input type="date" data-bind:`, signal)
	m.attr("min", f.Min)
	m.attr("max", f.Max)
	m.attr("value", value)
	m.attr("data-on:change", refresh)
	m.raw("></label>\n")
}

func selectInput(m *markup, label, signal string, opts []option, refresh string) {
	m.raw("<label>")
	m.text(label)
	m.raw("<select data-bind:", signal)
	m.attr("data-on:change", refresh)
	m.raw(">")
	for _, o := range opts {
		m.raw("<option")
		m.attr("value", o.Value)
		if o.Selected {
			m.raw(" selected")
		}
		m.raw(">")
		m.text(o.Value)
		m.raw("</option>")
	}
	m.raw("</select></label>\n")
}

func content(d contentData) templ.Component {
	return component("content", func(ctx context.Context, m *markup) {
		m.raw("<main id=\"dashboard-content\">\n")
		switch {
		case d.Error != "":
			alert(m, "error", d.Error)
		case d.Warning != "":
			alert(m, "warning", d.Warning)
		default:
			m.raw("<p class=\"meta\">")
			m.text(d.Days)
			m.raw(" days selected.</p>\n")
			for _, p := range d.Panels {
				if p.Summary != nil {
					m.child(ctx, summaryTable(*p.Summary))
				}
				if p.Chart != nil {
					m.child(ctx, chartPanel(*p.Chart))
				}
				if p.RFM != nil {
					m.child(ctx, rfmSection(*p.RFM))
				}
			}
		}
		m.raw("</main>")
	})
}

func alert(m *markup, kind, msg string) {
	m.raw(`<div class="alert `, kind, `" role="alert">`)
	m.text(msg)
	m.raw("</div>\n")
}
