package sink

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rodaine/table"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/planner"
	"github.com/theoremus-urban-solutions/gtfsrt-commute/utils"
)

type ConsoleFormat string

const (
	FormatLines ConsoleFormat = "lines"
	FormatTable ConsoleFormat = "table"
)

// Console writes a human readable block per cycle.
type Console struct {
	w      io.Writer
	loc    *time.Location
	format ConsoleFormat
}

// NewConsole returns a console sink. Clock times are rendered in loc (local time when nil).
func NewConsole(w io.Writer, loc *time.Location, format ConsoleFormat) *Console {
	if format == "" {
		format = FormatLines
	}
	return &Console{w: w, loc: loc, format: format}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Publish(_ context.Context, o planner.Outcome) error {
	if _, err := fmt.Fprintf(c.w, "=== %s ===\n", utils.ClockSeconds(o.Now, c.loc)); err != nil {
		return err
	}

	switch c.format {
	case FormatTable:
		c.printTable(o)
	default:
		for _, r := range o.Results {
			if _, err := fmt.Fprintln(c.w, c.line(r)); err != nil {
				return err
			}
		}
	}

	best := o.BestRoute()
	if best == "" {
		best = "none"
	}
	_, err := fmt.Fprintf(c.w, "BEST: %s\n", best)
	return err
}

func (c *Console) line(r planner.Result) string {
	if !r.Available {
		return fmt.Sprintf("%s: %s", r.Route, unavailableText(r))
	}
	leave, _ := r.LeaveInMinutes()
	total, _ := r.TotalMinutes()
	return fmt.Sprintf("%s: leave in %dm, board %s → arrive %s (%d min)",
		r.Route, leave, utils.Clock(r.Board, c.loc), utils.Clock(r.OfficeArrival, c.loc), total)
}

func (c *Console) printTable(o planner.Outcome) {
	tbl := table.New("Route", "Leave in", "Board", "Arrive", "Total").WithWriter(c.w)
	for _, r := range o.Results {
		if !r.Available {
			tbl.AddRow(r.Route, "-", "-", "-", unavailableText(r))
			continue
		}
		leave, _ := r.LeaveInMinutes()
		total, _ := r.TotalMinutes()
		tbl.AddRow(r.Route, fmt.Sprintf("%dm", leave), utils.Clock(r.Board, c.loc), utils.Clock(r.OfficeArrival, c.loc), fmt.Sprintf("%d min", total))
	}
	tbl.Print()
}
