package formatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/dren-arifi/isrcfind/internal/models"
)

func sampleReport() *models.LookupReport {
	return &models.LookupReport{
		Results: []models.LookupResult{
			{
				Input: "dQw4w9WgXcQ",
				Video: &models.VideoMetadata{
					VideoID:           "dQw4w9WgXcQ",
					Title:             "Rick Astley - Never Gonna Give You Up (Official Video)",
					DurationFormatted: "00:03:33",
				},
				Query: "Rick Astley - Never Gonna Give You Up",
				Candidates: []models.SearchCandidate{
					{
						ID:              "4PTG3Z6ehGkBFwjybzWkR8",
						Name:            "Never Gonna Give You Up",
						ArtistName:      "Rick Astley",
						AlbumName:       "Whenever You Need Somebody",
						ISRC:            "GBARL9300135",
						SimilarityScore: 0.842,
					},
				},
				MaxScore: 0.842,
			},
			{
				Input: "badlink",
				Err:   errors.New("invalid link"),
			},
		},
		SuccessCount: 1,
		FailedCount:  1,
		TotalItems:   2,
	}
}

func TestFormatISODuration(t *testing.T) {
	tc := []struct {
		iso  string
		want string
	}{
		{"PT1H2M10S", "01:02:10"},
		{"PT45S", "00:00:45"},
		{"PT3M33S", "00:03:33"},
		{"PT2H", "02:00:00"},
		{"PT0S", "00:00:00"},
		{"garbage", "00:00:00"},
		{"", "00:00:00"},
	}

	for _, tt := range tc {
		t.Run(tt.iso, func(t *testing.T) {
			if got := FormatISODuration(tt.iso); got != tt.want {
				t.Errorf("FormatISODuration(%q) = %q, want %q", tt.iso, got, tt.want)
			}
		})
	}
}

func TestFormatMillis(t *testing.T) {
	if got := FormatMillis(213000); got != "3:33" {
		t.Errorf("FormatMillis(213000) = %q, want 3:33", got)
	}
	if got := FormatMillis(955); got != "0:00" {
		t.Errorf("FormatMillis(955) = %q, want 0:00", got)
	}
}

func TestExporters(t *testing.T) {
	report := sampleReport()

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(report)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Input,Query,Candidate,Artist,Album,ISRC,Score") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "GBARL9300135") {
			t.Error("CSV missing ISRC value")
		}
		if !strings.Contains(output, "0.842") {
			t.Error("CSV missing similarity score")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(report, true)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if !strings.Contains(string(data), `"success_count": 1`) {
			t.Errorf("JSON missing success count: %s", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(report)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Lookup Report") {
			t.Error("Markdown missing title")
		}
		if !strings.Contains(output, "## dQw4w9WgXcQ") {
			t.Error("Markdown missing input section")
		}
		if !strings.Contains(output, "Error: invalid link") {
			t.Error("Markdown missing failed item")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(report)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Rick Astley - Never Gonna Give You Up") {
			t.Error("text missing best match")
		}
		if !strings.Contains(output, "error: invalid link") {
			t.Error("text missing failed item")
		}
	})

	t.Run("WriteCSVExport", func(t *testing.T) {
		tmpDir := t.TempDir()
		base := tmpDir + "/out"

		result, err := WriteCSVExport(report, base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		if result.ResultsFile != base+"_results.csv" {
			t.Errorf("unexpected results file: %s", result.ResultsFile)
		}
		if result.ReportFile != base+"_report.json" {
			t.Errorf("unexpected report file: %s", result.ReportFile)
		}
	})
}
