// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Exposes office configuration and visit analysis to AI agents

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harper/officetime/internal/models"
	"github.com/harper/officetime/internal/storage"
	"github.com/harper/officetime/internal/timeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerAnalyzeVisitsTool()
	s.registerGetOfficeTool()
	s.registerSetOfficeTool()
	s.registerDatasetInfoTool()
}

// AnalyzeVisitsInput defines input for the analyze_visits tool.
type AnalyzeVisitsInput struct {
	Year     int  `json:"year"`
	Month    *int `json:"month,omitempty"`
	FullYear bool `json:"full_year,omitempty"`
	ByDay    bool `json:"by_day,omitempty"`
}

// VisitOutput is one visit row in tool output.
type VisitOutput struct {
	Date     string `json:"date"`
	Visits   int    `json:"visits"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Duration string `json:"duration"`
}

// MonthOutput is one monthly rollup row in tool output.
type MonthOutput struct {
	Month    string `json:"month"`
	Days     int    `json:"days"`
	Visits   int    `json:"visits"`
	Duration string `json:"duration"`
}

// AnalyzeVisitsOutput defines output for the analyze_visits tool.
type AnalyzeVisitsOutput struct {
	Office     string        `json:"office"`
	Year       int           `json:"year"`
	UniqueDays int           `json:"unique_days"`
	Visits     []VisitOutput `json:"visits"`
	Monthly    []MonthOutput `json:"monthly,omitempty"`
	TotalTime  string        `json:"total_time,omitempty"`
}

func (s *Server) registerAnalyzeVisitsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "analyze_visits",
		Description: "Analyze the loaded location history for office visits. Returns per-visit rows for one month, or a monthly breakdown for a full year.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"year": map[string]interface{}{
					"type":        "integer",
					"description": "Target calendar year (e.g., 2024)",
				},
				"month": map[string]interface{}{
					"type":        "integer",
					"description": "Target month 1-12; omit with full_year for a whole-year analysis",
				},
				"full_year": map[string]interface{}{
					"type":        "boolean",
					"description": "Analyze all twelve months with a monthly breakdown",
				},
				"by_day": map[string]interface{}{
					"type":        "boolean",
					"description": "Fold same-day visits into one row per day",
				},
			},
			"required": []string{"year"},
		},
	}, s.handleAnalyzeVisits)
}

func (s *Server) handleAnalyzeVisits(_ context.Context, req *mcp.CallToolRequest, input AnalyzeVisitsInput) (*mcp.CallToolResult, AnalyzeVisitsOutput, error) {
	office, err := s.repo.GetOffice()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, AnalyzeVisitsOutput{}, fmt.Errorf("no office configured; use set_office first")
		}
		return nil, AnalyzeVisitsOutput{}, fmt.Errorf("load office: %w", err)
	}

	ds, err := s.repo.GetDataset()
	if err != nil {
		if errors.Is(err, storage.ErrNoDataset) {
			return nil, AnalyzeVisitsOutput{}, fmt.Errorf("no location history loaded")
		}
		return nil, AnalyzeVisitsOutput{}, fmt.Errorf("load dataset: %w", err)
	}

	records, err := timeline.Parse(ds.Data)
	if err != nil {
		return nil, AnalyzeVisitsOutput{}, fmt.Errorf("parse dataset: %w", err)
	}

	opts := timeline.Options{
		Office:       office.Location(),
		RadiusMeters: office.RadiusMeters,
		Year:         input.Year,
		FullYear:     input.FullYear,
	}
	if input.ByDay {
		opts.Aggregation = timeline.AggregatePerDay
	}
	if !input.FullYear {
		if input.Month == nil || *input.Month < 1 || *input.Month > 12 {
			return nil, AnalyzeVisitsOutput{}, fmt.Errorf("month 1-12 required unless full_year is set")
		}
		opts.Month = time.Month(*input.Month)
	}

	result := timeline.Analyze(records, opts)

	output := AnalyzeVisitsOutput{
		Office:     office.Name,
		Year:       input.Year,
		UniqueDays: result.UniqueDays,
		Visits:     make([]VisitOutput, 0, len(result.Summaries)),
	}

	for _, v := range result.Summaries {
		row := VisitOutput{
			Date:     v.Date.Format("2006-01-02"),
			Visits:   v.Visits,
			Duration: models.FormatDuration(v.Duration),
		}
		if !v.FirstVisit.Date.IsZero() {
			row.Start = v.FirstVisit.Date.Local().Format("3:04 PM")
		}
		if !v.LastVisit.Date.IsZero() {
			row.End = timeline.VisitEnd(v).Local().Format("3:04 PM")
		}
		output.Visits = append(output.Visits, row)
	}

	if input.FullYear {
		for _, m := range result.Monthly {
			output.Monthly = append(output.Monthly, MonthOutput{
				Month:    m.Month.String(),
				Days:     m.UniqueDays,
				Visits:   m.Visits,
				Duration: models.FormatDuration(m.Duration),
			})
		}
		output.TotalTime = models.FormatDuration(result.Totals.Duration)
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// OfficeOutput defines output for office tools.
type OfficeOutput struct {
	Name         string  `json:"name"`
	Address      string  `json:"address,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

// GetOfficeInput is empty but required for type.
type GetOfficeInput struct{}

func (s *Server) registerGetOfficeTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_office",
		Description: "Get the configured office location and proximity radius.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleGetOffice)
}

func (s *Server) handleGetOffice(_ context.Context, req *mcp.CallToolRequest, input GetOfficeInput) (*mcp.CallToolResult, OfficeOutput, error) {
	office, err := s.repo.GetOffice()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, OfficeOutput{}, fmt.Errorf("no office configured")
		}
		return nil, OfficeOutput{}, fmt.Errorf("load office: %w", err)
	}

	output := OfficeOutput{
		Name:         office.Name,
		Address:      office.Address,
		Latitude:     office.Lat,
		Longitude:    office.Lng,
		RadiusMeters: office.RadiusMeters,
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// SetOfficeInput defines input for the set_office tool.
type SetOfficeInput struct {
	Name         string   `json:"name"`
	Address      *string  `json:"address,omitempty"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	RadiusMeters *float64 `json:"radius_meters,omitempty"`
}

func (s *Server) registerSetOfficeTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "set_office",
		Description: "Set the office location used for visit analysis. Replaces any previous office.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Display name for the office (e.g., 'HQ')",
				},
				"address": map[string]interface{}{
					"type":        "string",
					"description": "Optional street address",
				},
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Latitude coordinate (-90 to 90)",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Longitude coordinate (-180 to 180)",
				},
				"radius_meters": map[string]interface{}{
					"type":        "number",
					"description": "Proximity radius in meters (default 100)",
				},
			},
			"required": []string{"name", "latitude", "longitude"},
		},
	}, s.handleSetOffice)
}

func (s *Server) handleSetOffice(_ context.Context, req *mcp.CallToolRequest, input SetOfficeInput) (*mcp.CallToolResult, OfficeOutput, error) {
	if err := models.ValidateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, OfficeOutput{}, err
	}
	if err := models.ValidateName(input.Name); err != nil {
		return nil, OfficeOutput{}, err
	}

	address := ""
	if input.Address != nil {
		address = *input.Address
	}
	radius := 0.0
	if input.RadiusMeters != nil {
		radius = *input.RadiusMeters
	}

	office := models.NewOffice(input.Name, address, input.Latitude, input.Longitude, radius)
	if err := s.repo.SaveOffice(office); err != nil {
		return nil, OfficeOutput{}, fmt.Errorf("save office: %w", err)
	}

	output := OfficeOutput{
		Name:         office.Name,
		Address:      office.Address,
		Latitude:     office.Lat,
		Longitude:    office.Lng,
		RadiusMeters: office.RadiusMeters,
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}

// DatasetInfoInput is empty but required for type.
type DatasetInfoInput struct{}

// DatasetInfoOutput defines output for the dataset_info tool.
type DatasetInfoOutput struct {
	FileName    string  `json:"file_name"`
	RecordCount int     `json:"record_count"`
	SizeMB      float64 `json:"size_mb"`
	UploadedAt  string  `json:"uploaded_at"`
}

func (s *Server) registerDatasetInfoTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "dataset_info",
		Description: "Describe the currently loaded location history dataset.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleDatasetInfo)
}

func (s *Server) handleDatasetInfo(_ context.Context, req *mcp.CallToolRequest, input DatasetInfoInput) (*mcp.CallToolResult, DatasetInfoOutput, error) {
	ds, err := s.repo.GetDataset()
	if err != nil {
		if errors.Is(err, storage.ErrNoDataset) {
			return nil, DatasetInfoOutput{}, fmt.Errorf("no location history loaded")
		}
		return nil, DatasetInfoOutput{}, fmt.Errorf("load dataset: %w", err)
	}

	output := DatasetInfoOutput{
		FileName:    ds.FileName,
		RecordCount: ds.RecordCount,
		SizeMB:      ds.SizeMB(),
		UploadedAt:  ds.UploadedAt.Format(time.RFC3339),
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, output, nil
}
