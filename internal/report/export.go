// Package report exports analysis results to CSV, Excel and JSON files.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"gapscan/internal/models"
)

// ExportFormat defines the export file format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatJSON ExportFormat = "json"
)

var opportunityColumns = []string{
	"keyword", "intent", "source", "frequency", "difficulty",
	"opportunity_score", "volume_score", "relevance_score", "difficulty_score",
	"intent_match_score", "competition_score", "priority", "priority_reasoning",
	"competitor_visibility", "estimated_monthly_traffic", "effort_hours",
	"recommended_actions", "top_competitor_urls",
}

// Exporter writes gap analysis results to disk.
type Exporter struct {
	format ExportFormat
	path   string
}

func NewExporter(format ExportFormat, path string) *Exporter {
	return &Exporter{format: format, path: path}
}

// Export writes the result in the configured format.
func (e *Exporter) Export(result *models.AnalysisResult) error {
	switch e.format {
	case FormatCSV:
		return e.exportCSV(result)
	case FormatXLSX:
		return e.exportXLSX(result)
	case FormatJSON:
		return e.exportJSON(result)
	default:
		return fmt.Errorf("unsupported export format: %s", e.format)
	}
}

func (e *Exporter) exportCSV(result *models.AnalysisResult) error {
	file, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// UTF-8 BOM for Excel compatibility with Persian text
	file.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(opportunityColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, opp := range result.GapOpportunities {
		if err := writer.Write(opportunityRow(opp)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (e *Exporter) exportXLSX(result *models.AnalysisResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Opportunities"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1565C0"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	for i, col := range opportunityColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(col) + 5)
		if width < 12 {
			width = 12
		}
		if width > 40 {
			width = 40
		}
		f.SetColWidth(sheetName, colName, colName, width)
	}

	for rowIdx, opp := range result.GapOpportunities {
		for i, val := range opportunityRow(opp) {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(opportunityColumns))
	f.AutoFilter(sheetName, fmt.Sprintf("A1:%s%d", lastCol, len(result.GapOpportunities)+1), nil)
	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	e.addSummarySheet(f, result)

	return f.SaveAs(e.path)
}

func (e *Exporter) addSummarySheet(f *excelize.File, result *models.AnalysisResult) {
	const sheetName = "Summary"
	f.NewSheet(sheetName)

	rows := [][]string{
		{"Own Website", result.OwnWebsiteURL},
		{"Competitors", strings.Join(result.CompetitorURLs, ", ")},
		{"Gaps Found", strconv.Itoa(result.TotalGapsFound)},
		{"Quick Wins", strconv.Itoa(len(result.QuickWins))},
		{"Estimated Monthly Traffic", strconv.Itoa(result.TotalOpportunityValue)},
		{"Average Difficulty", fmt.Sprintf("%.2f", result.AvgDifficulty)},
		{"Average Relevance", fmt.Sprintf("%.1f", result.AvgRelevance)},
		{"Analysis Date", result.AnalysisDate.Format(time.RFC3339)},
	}
	for i, row := range rows {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", i+1), row[1])
	}
	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 60)
}

func (e *Exporter) exportJSON(result *models.AnalysisResult) error {
	file, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}

func opportunityRow(opp models.KeywordGapOpportunity) []string {
	return []string{
		opp.Query.QueryText,
		string(opp.Query.SearchIntent),
		string(opp.Query.Source),
		strconv.Itoa(opp.Query.Frequency),
		string(opp.Query.Difficulty),
		fmt.Sprintf("%.1f", opp.OpportunityScore),
		fmt.Sprintf("%.1f", opp.VolumeScore),
		fmt.Sprintf("%.1f", opp.RelevanceScore),
		fmt.Sprintf("%.1f", opp.DifficultyScore),
		fmt.Sprintf("%.1f", opp.IntentMatchScore),
		fmt.Sprintf("%.1f", opp.CompetitionScore),
		string(opp.PriorityTier),
		opp.PriorityReasoning,
		fmt.Sprintf("%.2f", opp.CompetitorVisibility),
		strconv.Itoa(opp.EstimatedMonthlyTraffic),
		fmt.Sprintf("%.0f", opp.EffortEstimateHours),
		strings.Join(opp.RecommendedActions, "; "),
		strings.Join(opp.TopCompetitorURLs, ", "),
	}
}
