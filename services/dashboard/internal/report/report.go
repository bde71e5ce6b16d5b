// Package report renders a dashboard view as plain text for terminals.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gigdash/services/dashboard/internal/dashboard"
)

const ruleWidth = 72

// Write renders view to w: headline metrics, then one table per chart
// followed by its interpretation.
func Write(w io.Writer, view *dashboard.View) error {
	p := &printer{w: w}

	p.line(view.Title)
	p.line(view.Subtitle)
	p.rule()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, m := range view.Metrics {
		fmt.Fprintf(tw, "%s\t%s\n", m.Label, m.Display)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	p.rule()

	p.line("Filter: " + view.Selection)
	if view.ViewingLabel != "" {
		p.line(view.ViewingLabel)
	}
	p.blank()

	charts := []*dashboard.ChartConfig{view.Scatter, view.Bar, view.Pie}
	for _, chart := range charts {
		if err := p.chart(chart); err != nil {
			return err
		}
		for _, in := range view.Insights {
			if chart != nil && in.Chart == chart.ChartType {
				p.line(in.Heading)
				p.line(in.Body)
			}
		}
		p.rule()
	}

	p.line(view.Footer)
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) blank() { p.line("") }

func (p *printer) rule() { p.line(strings.Repeat("-", ruleWidth)) }

func (p *printer) chart(c *dashboard.ChartConfig) error {
	if c == nil {
		return nil
	}
	p.line(c.Title)
	if c.IsEmpty() {
		p.line("(no data for this selection)")
		return p.err
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	switch c.ChartType {
	case dashboard.ChartScatter:
		fmt.Fprintln(tw, "Skill Category\tMean Friction\tMean Price (USD)\t")
		for _, s := range c.Series {
			for _, pt := range s.Data {
				fmt.Fprintf(tw, "%s\t%.2f\t%s\t\n", pt.Label, pt.X, dashboard.FormatDollars(pt.Y))
			}
		}
	case dashboard.ChartPie:
		fmt.Fprintln(tw, "Job Type\tJobs\tShare\t")
		for _, s := range c.Series {
			for _, pt := range s.Data {
				fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t\n", pt.Label, dashboard.FormatInt(int(pt.Value)), pt.Percent)
			}
		}
	default:
		fmt.Fprintf(tw, "%s\t%s\t\n", c.YAxis, c.XAxis)
		for _, s := range c.Series {
			for _, pt := range s.Data {
				fmt.Fprintf(tw, "%s\t%s\t\n", pt.Label, dashboard.FormatInt(int(pt.Value)))
			}
		}
	}
	return tw.Flush()
}
