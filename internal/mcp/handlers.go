package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/robinmackenzie/uk-election-map/internal/chart"
	"github.com/robinmackenzie/uk-election-map/internal/locale"
	"github.com/robinmackenzie/uk-election-map/internal/results"
	"github.com/robinmackenzie/uk-election-map/internal/summary"
)

func (s *Server) handleListYears(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, year := range s.state.Years {
		fmt.Fprintf(&b, "- %s (%s constituencies)", year, locale.Count(s.state.Datasets[year].Len()))
		if year == s.state.DefaultYear {
			b.WriteString(" [default]")
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetConstituency(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("constituency")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: constituency"), nil
	}
	year := s.state.ResolveYear(request.GetString("year", ""))
	ds, err := s.state.Dataset(year)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, ok := s.find(ds, query)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no %s result for %q", year, query)), nil
	}
	return mcp.NewToolResultText(formatRecord(year, rec)), nil
}

func (s *Server) handleSeatSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year := s.state.ResolveYear(request.GetString("year", ""))
	ds, err := s.state.Dataset(year)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSummary(summary.Compute(ds))), nil
}

// find looks a constituency up by code, then by feature or result name.
// Codes match exactly; names ignore case.
func (s *Server) find(ds *results.Dataset, query string) (*results.Record, bool) {
	if rec, ok := ds.Find(query); ok {
		return rec, true
	}
	for _, f := range s.state.Features.Features {
		if strings.EqualFold(f.Name, query) {
			if rec, ok := ds.Find(f.ID); ok {
				return rec, true
			}
		}
	}
	for i := range ds.Records {
		if strings.EqualFold(ds.Records[i].Summary.Constituency, query) {
			return &ds.Records[i], true
		}
	}
	return nil, false
}

func formatRecord(year string, rec *results.Record) string {
	sm := rec.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s), %s\n\n", sm.Constituency, rec.ID, year)
	fmt.Fprintf(&b, "Winner: %s (%s)\n", sm.WinningCandidate, sm.WinningPartyName)
	fmt.Fprintf(&b, "Electorate: %s\n", locale.Count(sm.Electorate))
	fmt.Fprintf(&b, "Turnout: %s\n", locale.Count(sm.ValidVotes))
	fmt.Fprintf(&b, "Votes for winner: %s\n", locale.Count(sm.WinningVoteCount))
	fmt.Fprintf(&b, "Winning share: %s\n", locale.Percent(sm.ValidVotePercent))
	if sm.TheyWorkForYouLink != "" {
		fmt.Fprintf(&b, "Profile: %s\n", sm.TheyWorkForYouLink)
	}

	entries := chart.Entries(rec.CandidateVoteInfo)
	if len(entries) > 0 {
		b.WriteString("\nVotes by party:\n")
		for i := len(entries) - 1; i >= 0; i-- {
			fmt.Fprintf(&b, "- %s: %s\n", entries[i].Party, locale.Count(entries[i].Votes))
		}
	}
	return b.String()
}

func formatSummary(sum summary.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s general election\n\n", sum.Year)
	fmt.Fprintf(&b, "Constituencies: %s\n\nSeats:\n", locale.Count(sum.Constituencies))
	for _, p := range sum.Seats {
		fmt.Fprintf(&b, "- %s: %d\n", p.Party, p.Seats)
	}
	b.WriteString("\nVotes:\n")
	for _, p := range sum.Votes {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", p.Party, locale.Count(p.Votes), locale.Percent(sum.Share(p.Party)))
	}
	return b.String()
}
