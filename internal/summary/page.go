package summary

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// SeatChart builds a bar chart of seats won per party, each bar in the
// party colour.
func SeatChart(s Summary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Seats won, %s", s.Year),
			Subtitle: fmt.Sprintf("%d constituencies", s.Constituencies),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Election summary",
			ChartID:   "seats" + s.Year,
		}),
	)

	parties := make([]string, len(s.Seats))
	data := make([]opts.BarData, len(s.Seats))
	for i, p := range s.Seats {
		parties[i] = p.Party
		data[i] = opts.BarData{Name: p.Party, Value: p.Seats, ItemStyle: &opts.ItemStyle{Color: p.Colour}}
	}
	bar.SetXAxis(parties).AddSeries("Seats", data)
	return bar
}

// RenderPage writes an HTML page with one seat chart per summary.
func RenderPage(w io.Writer, summaries ...Summary) error {
	page := components.NewPage()
	page.PageTitle = "Election summary"
	for _, s := range summaries {
		page.AddCharts(SeatChart(s))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering summary page: %w", err)
	}
	return nil
}
