// ABOUTME: Tests for MCP server, tools, and resources
// ABOUTME: Verifies MCP integration with the repository interface

package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/harper/officetime/internal/models"
	"github.com/harper/officetime/internal/storage"
)

// mockRepo implements storage.Repository for testing.
type mockRepo struct {
	dataset *models.Dataset
	office  *models.Office

	saveDatasetErr error
	getDatasetErr  error
	saveOfficeErr  error
	getOfficeErr   error
}

func newMockRepo() *mockRepo {
	return &mockRepo{}
}

func (m *mockRepo) SaveDataset(ds *models.Dataset) error {
	if m.saveDatasetErr != nil {
		return m.saveDatasetErr
	}
	m.dataset = ds
	return nil
}

func (m *mockRepo) GetDataset() (*models.Dataset, error) {
	if m.getDatasetErr != nil {
		return nil, m.getDatasetErr
	}
	if m.dataset == nil {
		return nil, storage.ErrNoDataset
	}
	return m.dataset, nil
}

func (m *mockRepo) DeleteDataset() error {
	if m.dataset == nil {
		return storage.ErrNoDataset
	}
	m.dataset = nil
	return nil
}

func (m *mockRepo) SaveOffice(office *models.Office) error {
	if m.saveOfficeErr != nil {
		return m.saveOfficeErr
	}
	m.office = office
	return nil
}

func (m *mockRepo) GetOffice() (*models.Office, error) {
	if m.getOfficeErr != nil {
		return nil, m.getOfficeErr
	}
	if m.office == nil {
		return nil, storage.ErrNotFound
	}
	return m.office, nil
}

func (m *mockRepo) DeleteOffice() error {
	if m.office == nil {
		return storage.ErrNotFound
	}
	m.office = nil
	return nil
}

func (m *mockRepo) Close() error {
	return nil
}

// Tests

func TestNewServer(t *testing.T) {
	repo := newMockRepo()
	server, err := NewServer(repo)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil server")
	}
	if server.repo == nil {
		t.Error("expected non-nil repo")
	}
	if server.mcp == nil {
		t.Error("expected non-nil mcp server")
	}
}

func TestNewServer_NilRepo(t *testing.T) {
	_, err := NewServer(nil)
	if err == nil {
		t.Error("expected error for nil repo")
	}
}

func TestHandleSetOffice(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo)

	radius := 150.0
	input := SetOfficeInput{
		Name:         "HQ",
		Latitude:     41.8781,
		Longitude:    -87.6298,
		RadiusMeters: &radius,
	}

	result, output, err := server.handleSetOffice(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleSetOffice failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if output.Name != "HQ" {
		t.Errorf("expected name HQ, got %q", output.Name)
	}
	if output.RadiusMeters != 150 {
		t.Errorf("expected radius 150, got %f", output.RadiusMeters)
	}
	if repo.office == nil {
		t.Fatal("expected office to be saved")
	}
}

func TestHandleSetOffice_DefaultRadius(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo)

	input := SetOfficeInput{Name: "HQ", Latitude: 41.8781, Longitude: -87.6298}

	_, output, err := server.handleSetOffice(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleSetOffice failed: %v", err)
	}
	if output.RadiusMeters != models.DefaultRadiusMeters {
		t.Errorf("expected default radius, got %f", output.RadiusMeters)
	}
}

func TestHandleSetOffice_InvalidCoordinates(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo)

	input := SetOfficeInput{Name: "HQ", Latitude: 91, Longitude: 0}

	if _, _, err := server.handleSetOffice(context.Background(), nil, input); err == nil {
		t.Error("expected error for invalid latitude")
	}
}

func TestHandleGetOffice(t *testing.T) {
	repo := newMockRepo()
	repo.office = models.NewOffice("HQ", "123 Main St", 41.8781, -87.6298, 100)
	server, _ := NewServer(repo)

	_, output, err := server.handleGetOffice(context.Background(), nil, GetOfficeInput{})
	if err != nil {
		t.Fatalf("handleGetOffice failed: %v", err)
	}
	if output.Name != "HQ" {
		t.Errorf("expected name HQ, got %q", output.Name)
	}
	if output.Address != "123 Main St" {
		t.Errorf("expected address, got %q", output.Address)
	}
}

func TestHandleGetOffice_NotConfigured(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo)

	_, _, err := server.handleGetOffice(context.Background(), nil, GetOfficeInput{})
	if err == nil {
		t.Error("expected error when no office configured")
	}
}

func TestHandleDatasetInfo(t *testing.T) {
	repo := newMockRepo()
	repo.dataset = models.NewDataset("timeline.json", 42, []byte(`[]`))
	server, _ := NewServer(repo)

	_, output, err := server.handleDatasetInfo(context.Background(), nil, DatasetInfoInput{})
	if err != nil {
		t.Fatalf("handleDatasetInfo failed: %v", err)
	}
	if output.FileName != "timeline.json" {
		t.Errorf("expected file name, got %q", output.FileName)
	}
	if output.RecordCount != 42 {
		t.Errorf("expected 42 records, got %d", output.RecordCount)
	}
}

func TestHandleDatasetInfo_NoDataset(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo)

	_, _, err := server.handleDatasetInfo(context.Background(), nil, DatasetInfoInput{})
	if err == nil {
		t.Error("expected error when no dataset loaded")
	}
}

func TestHandleAnalyzeVisits(t *testing.T) {
	repo := newMockRepo()
	repo.office = models.NewOffice("HQ", "", 37.0, -122.0, 100)
	repo.dataset = models.NewDataset("timeline.json", 2, []byte(`[
		{"startTime":"2024-03-15T12:00:00Z","endTime":"2024-03-15T20:00:00Z","latitudeE7":370000000,"longitudeE7":-1220000000},
		{"startTime":"2024-03-16T12:00:00Z","latitudeE7":380000000,"longitudeE7":-1220000000}
	]`))
	server, _ := NewServer(repo)

	month := 3
	input := AnalyzeVisitsInput{Year: 2024, Month: &month}

	_, output, err := server.handleAnalyzeVisits(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleAnalyzeVisits failed: %v", err)
	}
	if output.Office != "HQ" {
		t.Errorf("expected office HQ, got %q", output.Office)
	}
	// Only the first record is inside the radius
	if len(output.Visits) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(output.Visits))
	}
	if output.Visits[0].Date != "2024-03-15" {
		t.Errorf("expected visit on 2024-03-15, got %q", output.Visits[0].Date)
	}
	if output.Visits[0].Duration != "8h 0m" {
		t.Errorf("expected 8h 0m duration, got %q", output.Visits[0].Duration)
	}
	// End comes from the record's endTime, not the visit's start instant
	wantEnd := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC).Local().Format("3:04 PM")
	if output.Visits[0].End != wantEnd {
		t.Errorf("expected end %q, got %q", wantEnd, output.Visits[0].End)
	}
	if output.Visits[0].End == output.Visits[0].Start {
		t.Error("end time should differ from start time")
	}
}

func TestHandleAnalyzeVisits_FullYear(t *testing.T) {
	repo := newMockRepo()
	repo.office = models.NewOffice("HQ", "", 37.0, -122.0, 100)
	repo.dataset = models.NewDataset("timeline.json", 2, []byte(`[
		{"startTime":"2024-03-15T12:00:00Z","latitudeE7":370000000,"longitudeE7":-1220000000},
		{"startTime":"2024-07-01T12:00:00Z","latitudeE7":370000000,"longitudeE7":-1220000000}
	]`))
	server, _ := NewServer(repo)

	input := AnalyzeVisitsInput{Year: 2024, FullYear: true}

	_, output, err := server.handleAnalyzeVisits(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleAnalyzeVisits failed: %v", err)
	}
	if len(output.Monthly) != 2 {
		t.Fatalf("expected 2 monthly rows, got %d", len(output.Monthly))
	}
	if output.TotalTime == "" {
		t.Error("expected total time in full-year output")
	}
}

func TestHandleAnalyzeVisits_MissingMonth(t *testing.T) {
	repo := newMockRepo()
	repo.office = models.NewOffice("HQ", "", 37.0, -122.0, 100)
	repo.dataset = models.NewDataset("timeline.json", 0, []byte(`[]`))
	server, _ := NewServer(repo)

	_, _, err := server.handleAnalyzeVisits(context.Background(), nil, AnalyzeVisitsInput{Year: 2024})
	if err == nil {
		t.Error("expected error when month missing without full_year")
	}
}

func TestHandleAnalyzeVisits_NoOffice(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo)

	month := 3
	_, _, err := server.handleAnalyzeVisits(context.Background(), nil, AnalyzeVisitsInput{Year: 2024, Month: &month})
	if err == nil {
		t.Error("expected error when no office configured")
	}
}

func TestHandleOfficeResource(t *testing.T) {
	repo := newMockRepo()
	repo.office = models.NewOffice("HQ", "", 41.8781, -87.6298, 100)
	server, _ := NewServer(repo)

	result, err := server.handleOfficeResource(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleOfficeResource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(result.Contents))
	}
	if !strings.Contains(result.Contents[0].Text, "HQ") {
		t.Errorf("expected office name in resource, got %q", result.Contents[0].Text)
	}
}

func TestHandleOfficeResource_NotConfigured(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo)

	if _, err := server.handleOfficeResource(context.Background(), nil); err == nil {
		t.Error("expected error when no office configured")
	}
}
