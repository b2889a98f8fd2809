package services

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	intconfig "github.com/dedekindkali/FFF/internal/config"
	"github.com/dedekindkali/FFF/internal/domain"
	"github.com/dedekindkali/FFF/internal/domain/models"
	"github.com/dedekindkali/FFF/internal/metrics"
	"github.com/dedekindkali/FFF/internal/repositories"
	"github.com/dedekindkali/FFF/internal/utils"
	"github.com/phpdave11/gofpdf"
)

// ExportService renders the admin exports: CSV per report type and a PDF
// summary of the aggregate stats. One data row per participant that has an
// attendance record; users who never saved one are skipped.
type ExportService struct {
	UserRepo  repositories.UserRepository
	DB        *sql.DB
	RequestID string
}

func (s ExportService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ExportService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

var csvHeaders = map[string][]string{
	"attendance": {
		"Username",
		"Day1 Breakfast", "Day1 Lunch", "Day1 Dinner", "Day1 Night",
		"Day2 Breakfast", "Day2 Lunch", "Day2 Dinner", "Day2 Night",
		"Day3 Breakfast", "Day3 Lunch", "Day3 Dinner", "Day3 Night",
	},
	"rides":   {"Username", "Transportation Status", "Transportation Details"},
	"dietary": {"Username", "Vegetarian", "Vegan", "Gluten Free", "Dairy Free", "Allergies"},
}

// BuildCSV renders one of the CSV report types. Booleans are written as their
// literal stringified form.
func (s ExportService) BuildCSV(exportType string) ([]byte, error) {
	header, ok := csvHeaders[exportType]
	if !ok {
		return nil, domain.ValidationError{Field: "type", Msg: "unknown export type"}
	}

	participants, err := s.users().ListParticipants()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, domain.InternalError{Err: err}
	}

	for _, p := range participants {
		if p.Attendance == nil {
			continue
		}
		a := p.Attendance
		var row []string
		switch exportType {
		case "attendance":
			row = append([]string{p.Username},
				fmtBool(a.Day1Breakfast), fmtBool(a.Day1Lunch), fmtBool(a.Day1Dinner), fmtBool(a.Day1Night),
				fmtBool(a.Day2Breakfast), fmtBool(a.Day2Lunch), fmtBool(a.Day2Dinner), fmtBool(a.Day2Night),
				fmtBool(a.Day3Breakfast), fmtBool(a.Day3Lunch), fmtBool(a.Day3Dinner), fmtBool(a.Day3Night),
			)
		case "rides":
			row = []string{p.Username, a.TransportationStatus, a.TransportationDetails}
		case "dietary":
			row = []string{p.Username,
				fmtBool(a.Vegetarian), fmtBool(a.Vegan), fmtBool(a.GlutenFree), fmtBool(a.DairyFree),
				a.Allergies,
			}
		}
		if err := w.Write(row); err != nil {
			return nil, domain.InternalError{Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, domain.InternalError{Err: err}
	}

	metrics.ExportsGenerated.Inc()
	utils.LogEvent(s.RequestID, "export", "csv", fmt.Sprintf("type=%s", exportType))
	return buf.Bytes(), nil
}

// BuildSummaryPDF renders the aggregate stats as a one-page PDF.
func (s ExportService) BuildSummaryPDF(stats models.AttendanceStats) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "FroForForno - Attendance Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s - %d participants", time.Now().Format("2006-01-02 15:04"), stats.TotalParticipants))
	pdf.Ln(12)

	writeDay := func(title string, d models.DayStats) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Breakfast: %d    Lunch: %d    Dinner: %d    Overnight: %d",
			d.Breakfast, d.Lunch, d.Dinner, d.Night))
		pdf.Ln(9)
	}
	writeDay("Day 1 - August 28", stats.Day1)
	writeDay("Day 2 - August 29", stats.Day2)
	writeDay("Day 3 - August 30", stats.Day3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Transportation")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Offering: %d    Needed: %d    Own: %d",
		stats.Transportation.Offering, stats.Transportation.Needed, stats.Transportation.Own))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Dietary")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Vegetarian: %d    Vegan: %d    Gluten-free: %d    Dairy-free: %d    Allergies: %d",
		stats.Dietary.Vegetarian, stats.Dietary.Vegan, stats.Dietary.GlutenFree,
		stats.Dietary.DairyFree, stats.Dietary.WithAllergies))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, domain.InternalError{Err: err}
	}

	metrics.ExportsGenerated.Inc()
	utils.LogEvent(s.RequestID, "export", "pdf", "type=summary")
	return buf.Bytes(), nil
}

func fmtBool(b bool) string {
	return strconv.FormatBool(b)
}
