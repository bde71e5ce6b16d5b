package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gigdash/services/dashboard/internal/analytics"
	"gigdash/services/dashboard/internal/errors"
	"gigdash/services/dashboard/internal/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const jobsCSV = `Job_Title,Price_USD,client_country,Skill_Category,Freelancer_Friction_Index,Job_Type
Blog posts,100,US,Writing,0.8,Fixed
API backend,"$1,300.50",US,Dev,0.2,Hourly
Landing page,200,IN,Dev,0.3,Fixed
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		row := row
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestFileSourceCSV(t *testing.T) {
	path := writeFile(t, "jobs.csv", jobsCSV)

	ds, err := NewFileSource(path, "", zap.NewNop()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if ds.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ds.Len())
	}

	got := ds.Postings[1]
	if got.Price != 1300.50 || got.ClientCountry != "US" || got.SkillCategory != "Dev" || got.FrictionIndex != 0.2 || got.JobType != "Hourly" {
		t.Errorf("second posting = %+v", got)
	}
	if got.Row != 3 {
		t.Errorf("Row = %d, want 3", got.Row)
	}
	if got.ID != models.PostingID(path, 3) {
		t.Errorf("ID = %q, want stable id derived from source and row", got.ID)
	}
}

func TestFileSourceXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Job_Type", "Freelancer_Friction_Index", "Skill_Category", "client_country", "Price_USD"},
		{"Fixed", 0.8, "Writing", "US", 100},
		{"Hourly", 0.2, "Dev", "US", 300},
		{"Fixed", 0.3, "Dev", "IN", 200},
	})

	ds, err := NewFileSource(path, "", zap.NewNop()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if ds.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ds.Len())
	}
	first := ds.Postings[0]
	if first.Price != 100 || first.ClientCountry != "US" || first.SkillCategory != "Writing" || first.FrictionIndex != 0.8 || first.JobType != "Fixed" {
		t.Errorf("first posting = %+v", first)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freelance_dashboard_data.xlsx")

	_, err := NewFileSource(path, "", zap.NewNop()).Load(context.Background())
	if !errors.IsType(err, errors.ErrTypeDataUnavailable) {
		t.Fatalf("Load error = %v, want DATA_UNAVAILABLE", err)
	}
}

func TestFileSourceDataUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"missing column", "jobs.csv", "Price_USD,client_country,Skill_Category,Job_Type\n10,US,Dev,Fixed\n"},
		{"header only", "jobs.csv", "Price_USD,client_country,Skill_Category,Freelancer_Friction_Index,Job_Type\n"},
		{"empty file", "jobs.csv", ""},
		{"unsupported extension", "jobs.json", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := NewFileSource(path, "", zap.NewNop()).Load(context.Background())
			if !errors.IsType(err, errors.ErrTypeDataUnavailable) {
				t.Errorf("Load error = %v, want DATA_UNAVAILABLE", err)
			}
		})
	}
}

func TestFileSourceKeepsRowsWithMissingValues(t *testing.T) {
	path := writeFile(t, "jobs.csv", `Price_USD,client_country,Skill_Category,Freelancer_Friction_Index,Job_Type
100,US,Writing,0.8,Fixed
,US,Dev,0.2,Hourly
,,,,
200,,Dev,,Fixed
n/a,IN,Dev,0.4,
`)

	ds, err := NewFileSource(path, "", zap.NewNop()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if ds.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (only the fully blank row is dropped)", ds.Len())
	}
	if ds.MissingValues != 3 {
		t.Errorf("MissingValues = %d, want 3", ds.MissingValues)
	}

	if p := ds.Postings[1]; !p.PriceMissing || p.FrictionMissing || p.FrictionIndex != 0.2 {
		t.Errorf("blank price posting = %+v", p)
	}
	if p := ds.Postings[2]; p.PriceMissing || !p.FrictionMissing || p.Price != 200 || p.ClientCountry != "" {
		t.Errorf("blank friction posting = %+v", p)
	}
	if p := ds.Postings[3]; !p.PriceMissing || p.JobType != "" || p.Row != 6 {
		t.Errorf("unreadable price posting = %+v", p)
	}

	overview := analytics.Overview(ds)
	if overview.TotalJobs != 4 || overview.AvgPrice != 150 || overview.UniqueCountries != 2 {
		t.Errorf("Overview() = %+v, want {4 150 2}", overview)
	}

	jobTypes := analytics.JobTypeCounts(ds)
	if len(jobTypes) != 2 || jobTypes["Fixed"] != 2 || jobTypes["Hourly"] != 1 {
		t.Errorf("JobTypeCounts() = %v, want map[Fixed:2 Hourly:1]", jobTypes)
	}

	dev := analytics.CategoryMetrics(ds)["Dev"]
	if dev.Jobs != 3 || dev.MeanPrice != 200 || dev.PriceSamples != 1 || dev.FrictionSamples != 2 {
		t.Errorf("Dev = %+v", dev)
	}
	if got := dev.MeanFrictionIndex; got < 0.2999 || got > 0.3001 {
		t.Errorf("Dev mean friction = %v, want 0.3", got)
	}
}

func TestFileSourceFingerprintChangesWithContent(t *testing.T) {
	path := writeFile(t, "jobs.csv", jobsCSV)
	src := NewFileSource(path, "", zap.NewNop())

	before, err := src.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint returned error: %v", err)
	}

	if err := os.WriteFile(path, []byte(jobsCSV+"Extra,1,US,Dev,0.1,Fixed\n"), 0o644); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}

	after, err := src.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint returned error: %v", err)
	}
	if before == after {
		t.Error("fingerprint did not change after the file grew")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"42", 42, false},
		{"$1,250.75", 1250.75, false},
		{" 0.35 ", 0.35, false},
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseNumber(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
