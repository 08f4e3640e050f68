// ABOUTME: MCP resource definitions
// ABOUTME: Provides read-only views for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/officetime/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        "officetime://office",
		Description: "The configured office location and proximity radius",
		URI:         "officetime://office",
		MIMEType:    "application/json",
	}, s.handleOfficeResource)
}

func (s *Server) handleOfficeResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	office, err := s.repo.GetOffice()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("no office configured")
		}
		return nil, fmt.Errorf("load office: %w", err)
	}

	output := OfficeOutput{
		Name:         office.Name,
		Address:      office.Address,
		Latitude:     office.Lat,
		Longitude:    office.Lng,
		RadiusMeters: office.RadiusMeters,
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "officetime://office",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
