package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listYearsTool defines the list_years MCP tool.
var listYearsTool = mcp.NewTool("list_years",
	mcp.WithDescription("List the election years with loaded results and the default year."),
)

// getConstituencyTool defines the get_constituency MCP tool.
var getConstituencyTool = mcp.NewTool("get_constituency",
	mcp.WithDescription("Get the result for one constituency: winner, party, electorate, turnout and votes per party."),
	mcp.WithString("constituency",
		mcp.Required(),
		mcp.Description("Constituency code (e.g. E14000530) or name (e.g. Aldershot)"),
	),
	mcp.WithString("year",
		mcp.Description("Election year; defaults to the map's default year"),
	),
)

// seatSummaryTool defines the seat_summary MCP tool.
var seatSummaryTool = mcp.NewTool("seat_summary",
	mcp.WithDescription("Get seats won and national vote totals per party for an election year."),
	mcp.WithString("year",
		mcp.Description("Election year; defaults to the map's default year"),
	),
)
