package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-streamtri/pkg/pipeline"
	"github.com/dd0wney/cluso-streamtri/pkg/pubsub"
	"github.com/dd0wney/cluso-streamtri/pkg/triangles"
)

const (
	dashboardRefresh = 250 * time.Millisecond
	gaugeWidth       = 30
)

var (
	gaugeFullStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	gaugeEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

type dashboardKeyMap struct {
	Quit key.Binding
}

var dashboardKeys = dashboardKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

// dashboardInfo is what the dashboard shows besides the progress stream.
type dashboardInfo struct {
	RunID    string
	Source   string
	Config   triangles.Config
	Snapshot func() triangles.Snapshot
}

type (
	progressMsg      pipeline.Progress
	doneMsg          pipeline.Progress
	dashboardTickMsg time.Time
)

// dashboard is the live view of one ingestion. Progress and completion come
// from the broker; between messages it polls the estimator snapshot.
type dashboard struct {
	info     dashboardInfo
	progress <-chan pipeline.Progress
	done     <-chan pipeline.Progress
	stop     context.CancelFunc

	started  time.Time
	snap     triangles.Snapshot
	elapsed  time.Duration
	updates  int
	finished bool
	err      error

	stats table.Model
	help  help.Model
	keys  dashboardKeyMap
}

func newDashboard(info dashboardInfo, progress, done <-chan pipeline.Progress, stop context.CancelFunc) dashboard {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Metric", Width: 18},
			{Title: "Value", Width: 22},
		}),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)

	d := dashboard{
		info:     info,
		progress: progress,
		done:     done,
		stop:     stop,
		started:  time.Now(),
		stats:    t,
		help:     help.New(),
		keys:     dashboardKeys,
	}
	d.refresh()
	return d
}

func waitProgress(ch <-chan pipeline.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg(p)
	}
}

func waitDone(ch <-chan pipeline.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return doneMsg(p)
	}
}

func dashboardTick() tea.Cmd {
	return tea.Tick(dashboardRefresh, func(t time.Time) tea.Msg {
		return dashboardTickMsg(t)
	})
}

func (d dashboard) Init() tea.Cmd {
	return tea.Batch(waitProgress(d.progress), waitDone(d.done), dashboardTick())
}

func (d dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.help.Width = msg.Width

	case dashboardTickMsg:
		if d.finished {
			return d, nil
		}
		if d.info.Snapshot != nil {
			d.snap = d.info.Snapshot()
		}
		d.elapsed = time.Since(d.started)
		d.refresh()
		return d, dashboardTick()

	case progressMsg:
		d.updates++
		d.snap = msg.Snapshot
		d.elapsed = msg.Elapsed
		d.refresh()
		return d, waitProgress(d.progress)

	case doneMsg:
		d.finished = true
		d.snap = msg.Snapshot
		d.elapsed = msg.Elapsed
		d.err = msg.Err
		d.refresh()
		return d, nil

	case tea.KeyMsg:
		if key.Matches(msg, d.keys.Quit) {
			if !d.finished && d.stop != nil {
				d.stop()
			}
			return d, tea.Quit
		}
	}
	return d, nil
}

func (d *dashboard) refresh() {
	s := d.snap
	d.stats.SetRows([]table.Row{
		{"Edges seen", fmt.Sprint(s.EdgesSeen)},
		{"Distinct edges", fmt.Sprint(s.DistinctEdges)},
		{"Vertices", fmt.Sprint(s.Vertices)},
		{"Closed wedges", fmt.Sprintf("%d / %d", s.ClosedWedges, s.SampledWedges)},
		{"Total wedges", fmt.Sprint(s.TotalWedges)},
		{"Transitivity", fmt.Sprintf("%.6f", s.Transitivity)},
		{"Triangles", fmt.Sprintf("%.1f", s.Triangles)},
		{"Elapsed", d.elapsed.Round(time.Millisecond).String()},
		{"Progress updates", fmt.Sprint(d.updates)},
	})
}

func (d dashboard) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("streamtri  %s", d.info.Source)))
	b.WriteString("\n")
	b.WriteString(row("Run", d.info.RunID))
	b.WriteString("\n")
	b.WriteString(row("Edge sample", gauge(d.snap.EdgeSampleSize, d.info.Config.EdgeCapacity)))
	b.WriteString("\n")
	b.WriteString(row("Wedge sample", gauge(d.snap.SampledWedges, d.info.Config.WedgeCapacity)))
	b.WriteString("\n\n")
	b.WriteString(d.stats.View())
	b.WriteString("\n\n")

	switch {
	case d.err != nil:
		b.WriteString(errorStyle.Render("✗ " + d.err.Error()))
	case d.finished:
		b.WriteString(successStyle.Render("✓ Stream complete"))
	default:
		b.WriteString(valueStyle.Render("Ingesting..."))
	}

	b.WriteString(helpStyle.Render(d.help.ShortHelpView(d.keys.ShortHelp())))
	return boxStyle.Render(b.String())
}

// gauge renders n out of capacity as a bar followed by the count.
func gauge(n, capacity int) string {
	frac := 0.0
	if capacity > 0 {
		frac = min(1, float64(n)/float64(capacity))
	}
	full := int(frac*gaugeWidth + 0.5)
	return gaugeFullStyle.Render(strings.Repeat("█", full)) +
		gaugeEmptyStyle.Render(strings.Repeat("░", gaugeWidth-full)) +
		fmt.Sprintf(" %d / %d", n, capacity)
}

// runWithDashboard runs ingest while a dashboard on out follows it through
// broker. Quitting before the stream ends cancels the ingestion; the
// dashboard stays open after the stream ends until the user quits.
func runWithDashboard(ctx context.Context, broker *pubsub.PubSub[pipeline.Progress], info dashboardInfo, in io.Reader, out io.Writer, ingest func(context.Context) (pipeline.Report, error)) (pipeline.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progress, err := broker.Subscribe(ctx, pipeline.TopicProgress)
	if err != nil {
		return pipeline.Report{}, err
	}
	defer progress.Unsubscribe()
	done, err := broker.Subscribe(ctx, pipeline.TopicDone)
	if err != nil {
		return pipeline.Report{}, err
	}
	defer done.Unsubscribe()

	type outcome struct {
		report pipeline.Report
		err    error
	}
	finished := make(chan outcome, 1)
	go func() {
		report, err := ingest(ctx)
		finished <- outcome{report: report, err: err}
	}()

	program := tea.NewProgram(
		newDashboard(info, progress.Channel(), done.Channel(), cancel),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		cancel()
		<-finished
		return pipeline.Report{}, fmt.Errorf("dashboard: %w", err)
	}

	o := <-finished
	return o.report, o.err
}
