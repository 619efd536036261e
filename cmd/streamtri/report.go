package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-streamtri/pkg/algorithms"
	"github.com/dd0wney/cluso-streamtri/pkg/pipeline"
	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(22)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)
)

// reportView is everything printed at the end of a run.
type reportView struct {
	Report pipeline.Report
	Config triangles.Config
	Exact  *pipeline.Baseline
	Trials *pipeline.TrialsSummary
}

func (v reportView) Render() string {
	s := v.Report.Snapshot
	sections := []string{
		section("Estimate",
			row("Run", v.Report.RunID),
			row("Source", v.Report.Source),
			row("Edges read", fmt.Sprint(v.Report.Accepted)),
			row("Self-loops skipped", fmt.Sprint(v.Report.SelfLoops)),
			row("Lines skipped", fmt.Sprint(v.Report.Skipped)),
			row("Edge sample", fmt.Sprintf("%d / %d", s.EdgeSampleSize, v.Config.EdgeCapacity)),
			row("Wedge sample", fmt.Sprintf("%d / %d", s.SampledWedges, v.Config.WedgeCapacity)),
			row("Closed wedges", fmt.Sprint(s.ClosedWedges)),
			row("Total wedges", fmt.Sprint(s.TotalWedges)),
			row("Vertices", fmt.Sprint(s.Vertices)),
			row("Transitivity", fmt.Sprintf("%.6f", s.Transitivity)),
			row("Triangles", fmt.Sprintf("%.1f", s.Triangles)),
			row("Elapsed", v.Report.Elapsed.String()),
		),
	}

	if v.Exact != nil {
		sections = append(sections, section("Exact",
			row("Triangles", fmt.Sprint(v.Exact.GlobalCount)),
			row("Wedges", fmt.Sprint(v.Exact.Wedges)),
			row("Transitivity", fmt.Sprintf("%.6f", v.Exact.Transitivity)),
			row("Avg clustering", fmt.Sprintf("%.6f", v.Exact.AverageClustering)),
			row("Components", fmt.Sprint(len(v.Exact.Components.Components))),
			row("Largest component", largestComponent(v.Exact.Components)),
			row("Top corner", topCorner(v.Exact.TopNodes)),
			row("Relative error", relativeError(s.Triangles, float64(v.Exact.GlobalCount))),
		))
	}

	if v.Trials != nil {
		t := v.Trials
		sections = append(sections, section(fmt.Sprintf("Trials (%d)", t.Trials),
			row("Transitivity", fmt.Sprintf("%.6f ± %.6f", t.MeanTransitivity, t.StdTransitivity)),
			row("Triangles", fmt.Sprintf("%.1f ± %.1f", t.MeanTriangles, t.StdTriangles)),
		))
	}

	return strings.Join(sections, "\n")
}

func section(title string, rows ...string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{titleStyle.Render(title)}, rows...)...,
	))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func largestComponent(r *algorithms.ComponentsResult[uint64]) string {
	c := r.Largest()
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%d vertices, %d edges", c.Size, c.Edges)
}

func topCorner(nodes []algorithms.RankedNode[uint64]) string {
	if len(nodes) == 0 || nodes[0].Score == 0 {
		return "-"
	}
	return fmt.Sprintf("%d (%.0f triangles)", nodes[0].NodeID, nodes[0].Score)
}

func relativeError(estimate, exact float64) string {
	if exact == 0 {
		if estimate == 0 {
			return "0.00%"
		}
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", 100*(estimate-exact)/exact)
}
