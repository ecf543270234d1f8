package regression

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Logger reports the outcome of an evaluated test.
type Logger interface {
	Log(t *Test)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	passStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// ConsoleLogger prints a pass/fail report, listing the failing sample
// points when a test does not clear its thresholds.
type ConsoleLogger struct {
	Out io.Writer
	// MaxFailures limits the failure table. Zero means 20.
	MaxFailures int
}

// NewConsoleLogger reports to stdout.
func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{Out: os.Stdout}
}

func (l *ConsoleLogger) Log(t *Test) {
	out := l.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "\n%s\n", headerStyle.Render(fmt.Sprintf("_______Test name: %s_______", t.Name)))

	if t.Results == nil {
		fmt.Fprintf(out, "\t%s\n", failStyle.Render("NOT EVALUATED"))
		return
	}
	if t.Results.AllPassed {
		fmt.Fprintf(out, "\t%s\n", passStyle.Render("PASSED"))
		return
	}

	limit := l.MaxFailures
	if limit <= 0 {
		limit = 20
	}
	fmt.Fprintf(out, "\t%s\n", failStyle.Render("FAILED at the following values of the independent variable:"))
	fmt.Fprintf(out, "\t\t%-14s%-14s%-14s%s\n", "x", "ref", "sim", "metric")
	for n, i := range t.Results.Failures {
		if n == limit {
			fmt.Fprintf(out, "\t\t%s\n",
				dimStyle.Render(fmt.Sprintf("... %d more", len(t.Results.Failures)-limit)))
			break
		}
		fmt.Fprintf(out, "\t\t%-14.5g%-14.5g%-14.5g%.5g\n",
			t.Sim.X[i], t.Ref.Y[i], t.Sim.Y[i], t.Results.Values[i])
	}
}
