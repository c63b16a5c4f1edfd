// Package chart builds the per-constituency votes bar chart shown in the
// info panel.
package chart

import (
	"slices"

	"github.com/robinmackenzie/uk-election-map/internal/locale"
	"github.com/robinmackenzie/uk-election-map/internal/results"
)

// Chart geometry, in SVG user units.
const (
	EntryHeight = 30
	PlotWidth   = 150
	MarginTop   = 5
	MarginLeft  = 40
	// extra room under the plot for the last label
	bottomPad = 20
	labelGap  = 4
	padding   = 0.1
)

// Entry is one bar: a party and its total votes in the constituency.
type Entry struct {
	Party string
	Votes int
	Color string
}

// Entries collapses candidate votes by party abbreviation, summing votes
// for repeated abbreviations and keeping the colour of the first one seen,
// then sorts ascending by votes. Equal totals keep first-seen order.
func Entries(votes []results.CandidateVote) []Entry {
	out := make([]Entry, 0, len(votes))
	pos := make(map[string]int, len(votes))
	for _, v := range votes {
		if i, ok := pos[v.PartyAbbrevTransformed]; ok {
			out[i].Votes += v.Votes
			continue
		}
		pos[v.PartyAbbrevTransformed] = len(out)
		out = append(out, Entry{Party: v.PartyAbbrevTransformed, Votes: v.Votes, Color: v.PartyColour})
	}
	slices.SortStableFunc(out, func(a, b Entry) int { return a.Votes - b.Votes })
	return out
}

// Bar is a laid-out entry.
type Bar struct {
	Entry
	Y      float64
	Height float64
	Width  float64
	LabelX float64
	LabelY float64
	Label  string
}

// BarChart is a fully laid-out horizontal bar chart. Bars are listed in
// ascending vote order; the largest bar is drawn at the top.
type BarChart struct {
	PlotHeight float64
	SVGHeight  float64
	Bars       []Bar
}

// Layout positions entries on a band scale whose extent grows by
// EntryHeight per entry. Bar widths are proportional to the largest vote
// count among the entries.
func Layout(entries []Entry) BarChart {
	n := len(entries)
	height := float64(n * EntryHeight)
	c := BarChart{PlotHeight: height, SVGHeight: height + bottomPad}
	if n == 0 {
		return c
	}

	maxVotes := 0
	for _, e := range entries {
		maxVotes = max(maxVotes, e.Votes)
	}

	// Band scale over [height, 0] with equal inner and outer padding.
	step := height / (float64(n) - padding + 2*padding)
	start := (height - step*(float64(n)-padding)) / 2
	band := step * (1 - padding)

	c.Bars = make([]Bar, n)
	for i, e := range entries {
		y := start + step*float64(n-1-i)
		w := 0.0
		if maxVotes > 0 {
			w = float64(e.Votes) / float64(maxVotes) * PlotWidth
		}
		c.Bars[i] = Bar{
			Entry:  e,
			Y:      y,
			Height: band,
			Width:  w,
			LabelX: w + labelGap,
			LabelY: y + band/2,
			Label:  locale.Count(e.Votes),
		}
	}
	return c
}
