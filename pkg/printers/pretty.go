package printers

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"

	"tableflip.dev/opsdeck/pkg/board"
	"tableflip.dev/opsdeck/pkg/record"
)

type PrettyPrint struct {
	ShowKeys bool
}

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" record")
	default:
		_, _ = c.Println(" records")
	}
}

// View prints a reconciled view: the primary rows, then the history rows
// dimmed under a "done" rule, if any exist.
func (pp *PrettyPrint) View(v *board.View) {
	pp.TitleWithCount(v.Title, len(v.Rows())+len(v.History()))
	pp.rows(v.Columns, v.Rows(), false)
	if len(v.History()) > 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" done")
		pp.rows(v.Columns, v.History(), true)
	}
	pp.NewLine()
}

func (pp *PrettyPrint) rows(columns []string, rows []board.Row, faint bool) {
	if len(rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" none")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "

	header := make([]interface{}, 0, len(columns)+1)
	if pp.ShowKeys {
		header = append(header, bold("KEY"))
	}
	for _, c := range columns {
		header = append(header, bold(c))
	}
	tbl.AddRow(header...)

	for _, r := range rows {
		cells := make([]interface{}, 0, len(r.Cells)+1)
		if pp.ShowKeys {
			cells = append(cells, key(r.Key))
		}
		for _, c := range r.Cells {
			cells = append(cells, paint(c, r.Highlight, faint))
		}
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Emergency prints the banner line for the current record, or nothing.
func (pp *PrettyPrint) Emergency(e record.Emergency, active bool) {
	if !active {
		return
	}
	banner := color.New(color.BgRed, color.FgWhite, color.Bold)
	_, _ = banner.Printf(" EMERGENCY  %s ", strings.ToUpper(e.String()))
	fmt.Println("")
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}

func key(s string) string {
	return color.New(color.FgHiYellow, color.Italic, color.Faint).Sprint(s)
}

func paint(s string, highlight, faint bool) string {
	switch {
	case highlight:
		return color.New(color.FgHiGreen).Sprint(s)
	case faint:
		return color.New(color.Faint).Sprint(s)
	}
	return s
}
