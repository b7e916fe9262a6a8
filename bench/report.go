package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	scorecardHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	scorecardCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	scorecardTitleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

// RenderScorecard draws the pivot grid as a console table
func RenderScorecard(rep Report, strategyOrder []string) string {
	types, grid := rep.Pivot(strategyOrder)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return scorecardHeaderStyle
			}
			return scorecardCellStyle
		}).
		Headers(append([]string{"Type"}, strategyOrder...)...)

	for _, qt := range types {
		row := []string{qt}
		for _, score := range grid[qt] {
			row = append(row, strconv.Itoa(score))
		}
		tbl.Row(row...)
	}

	var b strings.Builder
	b.WriteString(scorecardTitleStyle.Render("FINAL SCORECARD (0-10)"))
	b.WriteString("\n")
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	b.WriteString(scorecardTitleStyle.Render("OVERALL RANKING (avg score)"))
	b.WriteString("\n")
	for i, avg := range rep.Averages() {
		fmt.Fprintf(&b, "%d. %-16s %.2f\n", i+1, avg.Strategy, avg.Average)
	}
	return b.String()
}

// WriteCSV writes every graded answer as one row
func WriteCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Question", "Type", "Model", "Score", "Answer"}); err != nil {
		return err
	}
	for _, res := range rep.Results {
		row := []string{res.Question, res.Type, res.Strategy, strconv.Itoa(res.Score), res.Answer}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkdown writes the pivot grid as a markdown table, the shape that
// goes into a README
func WriteMarkdown(w io.Writer, rep Report, strategyOrder []string) error {
	types, grid := rep.Pivot(strategyOrder)

	var b strings.Builder
	b.WriteString("| Type | " + strings.Join(strategyOrder, " | ") + " |\n")
	b.WriteString("|---" + strings.Repeat("|---", len(strategyOrder)) + "|\n")
	for _, qt := range types {
		b.WriteString("| " + qt)
		for _, score := range grid[qt] {
			b.WriteString(" | " + strconv.Itoa(score))
		}
		b.WriteString(" |\n")
	}

	b.WriteString("\n**Overall ranking (avg score)**\n\n")
	for i, avg := range rep.Averages() {
		fmt.Fprintf(&b, "%d. %s: %.2f\n", i+1, avg.Strategy, avg.Average)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
