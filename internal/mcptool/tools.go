// Package mcptool exposes recap generation as Model Context Protocol tools.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/albapepper/fantasy-recap/internal/pipeline"
	"github.com/albapepper/fantasy-recap/internal/recap"
)

// Service is what the tools call into.
type Service interface {
	Generate(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
	LeagueInfo(ctx context.Context, year int) (recap.League, error)
}

// GenerateRecapArgs are the generate_recap tool arguments.
type GenerateRecapArgs struct {
	Year        int    `json:"year,omitempty" jsonschema:"Season year (0 = configured season)"`
	Week        int    `json:"week,omitempty" jsonschema:"Week to recap (0 = last completed week)"`
	Personality string `json:"personality,omitempty" jsonschema:"Commentator voice: hype, roast or analyst (empty = template recap)"`
}

// LeagueInfoArgs are the league_info tool arguments.
type LeagueInfoArgs struct {
	Year int `json:"year,omitempty" jsonschema:"Season year (0 = configured season)"`
}

type recapOutput struct {
	Year     int          `json:"year"`
	Week     int          `json:"week"`
	Text     string       `json:"text"`
	Filename string       `json:"filename"`
	Awards   recap.Awards `json:"awards"`
}

type leagueOutput struct {
	LeagueName  string `json:"league_name"`
	Year        int    `json:"year"`
	CurrentWeek int    `json:"current_week"`
	TargetWeek  *int   `json:"target_week"`
}

// NewServer creates an MCP server with every recap tool registered.
func NewServer(svc Service, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fantasy-recap",
			Version: version,
		},
		nil,
	)
	Register(server, svc)
	return server
}

// Register adds the recap tools to server.
func Register(server *mcp.Server, svc Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_recap",
		Description: "Generate the weekly fantasy football recap, render it to audio and return the text and audio file name",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GenerateRecapArgs) (*mcp.CallToolResult, any, error) {
		if args.Year < 0 || args.Week < 0 {
			return toolError(fmt.Errorf("year and week must not be negative")), nil, nil
		}
		p, err := recap.ParsePersonality(args.Personality)
		if err != nil {
			return toolError(err), nil, nil
		}
		res, err := svc.Generate(ctx, pipeline.Request{Year: args.Year, Week: args.Week, Personality: p})
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.MarshalIndent(recapOutput{
			Year:     res.Year,
			Week:     res.Week,
			Text:     res.Text,
			Filename: res.Filename,
			Awards:   res.Awards,
		}, "", "  "))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "league_info",
		Description: "League name, current week and the week the next recap covers",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeagueInfoArgs) (*mcp.CallToolResult, any, error) {
		lg, err := svc.LeagueInfo(ctx, args.Year)
		if err != nil {
			return toolError(err), nil, nil
		}
		out := leagueOutput{LeagueName: lg.Name, Year: lg.Year, CurrentWeek: lg.CurrentWeek}
		if t := lg.TargetWeek(); t > 0 {
			out.TargetWeek = &t
		}
		return toolJSON(json.MarshalIndent(out, "", "  "))
	})
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
