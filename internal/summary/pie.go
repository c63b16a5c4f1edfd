package summary

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// minSliceShare folds parties below this share of the vote into "Other"
// so their labels do not overlap.
const minSliceShare = 0.02

// VoteSharePie writes an SVG pie of national vote share.
func VoteSharePie(w io.Writer, s Summary) error {
	if s.TotalVotes == 0 {
		return errors.New("no votes to chart")
	}

	var (
		vals  []chart.Value
		other int
	)
	for _, v := range s.Votes {
		if float64(v.Votes)/float64(s.TotalVotes) < minSliceShare {
			other += v.Votes
			continue
		}
		val := chart.Value{Value: float64(v.Votes), Label: v.Party}
		if v.Colour != "" {
			val.Style = chart.Style{FillColor: drawing.ColorFromHex(strings.TrimPrefix(v.Colour, "#"))}
		}
		vals = append(vals, val)
	}
	if other > 0 {
		vals = append(vals, chart.Value{Value: float64(other), Label: "Other"})
	}

	pie := chart.PieChart{
		Title:  fmt.Sprintf("Vote share, %s", s.Year),
		Width:  512,
		Height: 512,
		Values: vals,
	}
	if err := pie.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("rendering vote share pie for %s: %w", s.Year, err)
	}
	return nil
}
