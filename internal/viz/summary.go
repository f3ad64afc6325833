package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/escapetime/internal/render"
	"github.com/san-kum/escapetime/internal/storage"
)

// Summary formats a finished render for the terminal.
func Summary(res *render.Result) string {
	var sb strings.Builder

	p := res.Params
	row := func(label, value string) {
		sb.WriteString(MetricLabel.Render(label))
		sb.WriteString(MetricValue.Render(value))
		sb.WriteString("\n")
	}

	if res.Path != "" {
		row("file", res.Path)
	}
	row("size", fmt.Sprintf("%dx%d", p.Width, p.Height))
	row("plane", fmt.Sprintf("[%g, %g] x [%g, %g]", p.XMin, p.XMax, p.YMin, p.YMax))
	row("max iterations", fmt.Sprintf("%d", p.MaxIterations))
	row("bytes", fmt.Sprintf("%d", res.BytesWritten))
	row("in set", fmt.Sprintf("%d of %d", res.InSet, res.Pixels))
	if total := p.Pixels(); res.Pixels < total {
		row("partial", fmt.Sprintf("%d of %d pixels written", res.Pixels, total))
	}
	row("elapsed", res.Elapsed.String())

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		row(name, fmt.Sprintf("%.6f", res.Metrics[name]))
	}

	return Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

// EntryStatus is the status column for a catalog entry.
func EntryStatus(e storage.Entry) string {
	if e.Complete {
		return StatusOK.Render("ok")
	}
	return StatusWarn.Render(e.Problem)
}
