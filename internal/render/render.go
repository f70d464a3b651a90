// Package render draws endpoint records for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/pretty"

	"github.com/shohag/airegistry/internal/models"
	"github.com/shohag/airegistry/internal/validation"
)

const EmptyMessage = "No endpoints have been added yet."

const (
	dateLayout        = "Jan 2, 2006"
	maxDescriptionLen = 48
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	badgeStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

var methodColors = map[models.Method]lipgloss.Color{
	models.MethodGet:    lipgloss.Color("#22C55E"),
	models.MethodPost:   lipgloss.Color("#3B82F6"),
	models.MethodPut:    lipgloss.Color("#EAB308"),
	models.MethodDelete: lipgloss.Color("#EF4444"),
}

const otherMethodColor = lipgloss.Color("#6B7280")

func MethodColor(m models.Method) lipgloss.Color {
	if c, ok := methodColors[m]; ok {
		return c
	}
	return otherMethodColor
}

func MethodBadge(m models.Method) string {
	return badgeStyle.Background(MethodColor(m)).Render(string(m))
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

type TableOptions struct {
	// RelativeDates shows "3 days ago" instead of the calendar date.
	RelativeDates bool
	Now           time.Time
}

// Table writes the list view: position, method, endpoint id, description,
// creator, created date and record id.
func Table(w io.Writer, eps []models.Endpoint, opts TableOptions) error {
	if len(eps) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	headers := []string{"#", "Method", "Endpoint", "Description", "Creator", "Created", "ID"}
	rows := make([][]string, 0, len(eps))
	for i, ep := range eps {
		created := FormatDate(ep.CreatedAt)
		if opts.RelativeDates {
			created = humanize.RelTime(ep.CreatedAt, opts.Now, "ago", "from now")
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			MethodBadge(ep.Method),
			ep.EndpointID,
			truncate(ep.Description, maxDescriptionLen),
			ep.Creator,
			created,
			ep.ID,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	writeRow(&b, headers, widths, headerStyle)
	for _, row := range rows {
		writeRow(&b, row, widths, lipgloss.NewStyle())
	}
	fmt.Fprintf(&b, "\n%s endpoint(s)\n", humanize.Comma(int64(len(eps))))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, cells []string, widths []int, style lipgloss.Style) {
	for i, cell := range cells {
		pad := widths[i] - lipgloss.Width(cell)
		b.WriteString(style.Render(cell))
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", pad+2))
		}
	}
	b.WriteString("\n")
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Detail writes one record as labelled lines.
func Detail(w io.Writer, ep models.Endpoint) error {
	lines := [][2]string{
		{"ID", ep.ID},
		{"Endpoint", ep.EndpointID},
		{"Method", MethodBadge(ep.Method)},
		{"URL", ep.URL},
		{"Description", ep.Description},
		{"Creator", ep.Creator},
		{"Created", fmt.Sprintf("%s (%s)", FormatDate(ep.CreatedAt), humanize.Time(ep.CreatedAt))},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s %s\n", headerStyle.Render(fmt.Sprintf("%-12s", l[0]+":")), l[1]); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}

// ValidationErrors writes one "field: message" line per error.
func ValidationErrors(w io.Writer, errs *validation.Errors) {
	for _, f := range errs.Fields {
		fmt.Fprintf(w, "  %s %s\n", errorStyle.Render(f.Field+":"), f.Message)
	}
}
