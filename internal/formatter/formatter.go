// package formatter exports lookup reports to various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/shared"
)

// ExportToCSV converts a LookupReport to CSV with one row per candidate:
// Input, Query, Candidate, Artist, Album, ISRC, Score.
func ExportToCSV(report *models.LookupReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Input", "Query", "Candidate", "Artist", "Album", "ISRC", "Score"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, result := range report.Results {
		if result.Err != nil {
			record := []string{result.Input, result.Query, "", "", "", "", ""}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
			continue
		}

		for _, c := range result.Candidates {
			record := []string{
				result.Input,
				result.Query,
				c.Name,
				c.ArtistName,
				c.AlbumName,
				c.ISRC,
				fmt.Sprintf("%.3f", c.SimilarityScore),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a LookupReport to JSON, optionally indented.
func ExportToJSON(report *models.LookupReport, pretty bool) ([]byte, error) {
	return shared.MarshalJSON(report, pretty)
}

// ExportToMarkdown converts a LookupReport to a Markdown summary with one
// section per input.
func ExportToMarkdown(report *models.LookupReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Lookup Report\n\n")
	buf.WriteString(fmt.Sprintf("**Items**: %d (%d matched, %d failed)\n\n",
		report.TotalItems, report.SuccessCount, report.FailedCount))

	for _, result := range report.Results {
		buf.WriteString(fmt.Sprintf("## %s\n\n", result.Input))

		if result.Err != nil {
			buf.WriteString(fmt.Sprintf("Error: %v\n\n", result.Err))
			continue
		}

		if result.Video != nil {
			buf.WriteString(fmt.Sprintf("**Video**: %s [%s]\n", result.Video.Title, result.Video.DurationFormatted))
		}
		buf.WriteString(fmt.Sprintf("**Query**: %s\n\n", result.Query))

		if len(result.Candidates) == 0 {
			buf.WriteString("No matches.\n\n")
			continue
		}

		for i, c := range result.Candidates {
			buf.WriteString(fmt.Sprintf("%d. %s - %s (%s) | ISRC %s, score %.3f\n",
				i+1, c.ArtistName, c.Name, c.AlbumName, c.ISRC, c.SimilarityScore))
		}
		if result.FallbackAvailable {
			buf.WriteString(fmt.Sprintf("\nLow confidence; fallback query: %s\n", result.FallbackQuery))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a LookupReport to a compact plain-text listing of the
// best match per input.
func ExportToText(report *models.LookupReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Lookups: %d (%d matched, %d failed)\n\n",
		report.TotalItems, report.SuccessCount, report.FailedCount))

	for i, result := range report.Results {
		if result.Err != nil {
			buf.WriteString(fmt.Sprintf("%d. %s: error: %v\n", i+1, result.Input, result.Err))
			continue
		}

		best := result.Best()
		if best == nil {
			buf.WriteString(fmt.Sprintf("%d. %s: no matches\n", i+1, result.Input))
			continue
		}

		buf.WriteString(fmt.Sprintf("%d. %s: %s - %s [ISRC %s, %.3f]\n",
			i+1, result.Input, best.ArtistName, best.Name, best.ISRC, best.SimilarityScore))
	}

	return buf.Bytes(), nil
}

// CSVExportResult contains the paths of files created by WriteCSVExport.
type CSVExportResult struct {
	ResultsFile string
	ReportFile  string
}

// WriteCSVExport writes a report as {base}_results.csv plus {base}_report.json.
//
// The base path defaults to "lookup" when empty.
func WriteCSVExport(report *models.LookupReport, basePath string) (*CSVExportResult, error) {
	if basePath == "" {
		basePath = "lookup"
	}

	csvData, err := ExportToCSV(report)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	resultsFile := basePath + "_results.csv"
	if err := os.WriteFile(resultsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	jsonData, err := ExportToJSON(report, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report JSON: %w", err)
	}

	reportFile := basePath + "_report.json"
	if err := os.WriteFile(reportFile, jsonData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write report file: %w", err)
	}

	return &CSVExportResult{
		ResultsFile: resultsFile,
		ReportFile:  reportFile,
	}, nil
}
