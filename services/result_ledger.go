package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/campuskit/portal-api/model"
	"github.com/ledongthuc/pdf"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LedgerRow is one parsed line of a university result ledger.
type LedgerRow struct {
	PRN    string  `json:"prn"`
	SGPA   float64 `json:"sgpa"`
	Status string  `json:"status"`
	Line   string  `json:"line"`
}

// ImportSummary reports what a ledger import did.
type ImportSummary struct {
	Imported    int      `json:"imported"`
	UnknownPRNs []string `json:"unknownPrns"`
	Skipped     int      `json:"skipped"`
}

// ledgerLine matches "<PRN> <SGPA> <STATUS>" with arbitrary spacing, e.g.
// "ARC2024001 8.40 PASS". Header and footer lines fail the match and are
// skipped.
var ledgerLine = regexp.MustCompile(`^([A-Z]{2,5}\d{4,12})\s+(\d+(?:\.\d+)?)\s+(PASS|FAIL)$`)

// ResultLedgerService imports university result ledgers. The ledger arrives
// as a PDF; each parseable row becomes an ExamResult carrying the SGPA the
// university computed.
type ResultLedgerService struct {
	db *gorm.DB
}

// NewResultLedgerService creates a new ledger service.
func NewResultLedgerService(db *gorm.DB) *ResultLedgerService {
	return &ResultLedgerService{db: db}
}

// ImportPDF parses a ledger PDF and stores one ExamResult per recognized
// row, all in one transaction. Rows naming a PRN no student holds are
// reported back, not silently dropped.
func (s *ResultLedgerService) ImportPDF(examSession string, content []byte) (*ImportSummary, error) {
	text, err := extractPDFText(content)
	if err != nil {
		return nil, err
	}

	rows, skipped := parseLedgerText(text)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result rows recognized in ledger")
	}
	return s.importRows(examSession, rows, skipped)
}

func (s *ResultLedgerService) importRows(examSession string, rows []LedgerRow, skipped int) (*ImportSummary, error) {
	summary := &ImportSummary{Skipped: skipped}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, row := range rows {
			var student model.Student
			if err := tx.Where("prn = ?", row.PRN).First(&student).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					summary.UnknownPRNs = append(summary.UnknownPRNs, row.PRN)
					continue
				}
				return fmt.Errorf("failed to look up PRN %s: %w", row.PRN, err)
			}

			source, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("failed to encode source row: %w", err)
			}

			result := model.ExamResult{
				StudentID:   student.ID,
				SGPA:        row.SGPA,
				Status:      row.Status,
				ResultDate:  &now,
				ExamSession: examSession,
				SourceRow:   datatypes.JSON(source),
			}
			if err := tx.Create(&result).Error; err != nil {
				return fmt.Errorf("failed to store result for %s: %w", row.PRN, err)
			}
			summary.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// parseLedgerText scans extracted ledger text line by line. Returns the
// recognized rows plus the count of non-empty lines that did not match.
func parseLedgerText(text string) ([]LedgerRow, int) {
	var rows []LedgerRow
	skipped := 0

	for _, raw := range strings.Split(text, "\n") {
		line := strings.Join(strings.Fields(raw), " ")
		if line == "" {
			continue
		}
		m := ledgerLine.FindStringSubmatch(line)
		if m == nil {
			skipped++
			continue
		}
		sgpa, err := strconv.ParseFloat(m[2], 64)
		if err != nil || sgpa > 10 {
			skipped++
			continue
		}
		rows = append(rows, LedgerRow{
			PRN:    m[1],
			SGPA:   sgpa,
			Status: m[3],
			Line:   line,
		})
	}
	return rows, skipped
}

// extractPDFText pulls row-structured text out of a PDF. Trailing garbage
// after the %%EOF marker is trimmed first; web-served PDFs often carry it.
func extractPDFText(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty PDF content")
	}
	content = trimAfterEOF(content)

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}
	if reader.NumPage() == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			text, plainErr := page.GetPlainText(nil)
			if plainErr != nil {
				continue
			}
			b.WriteString(text)
			b.WriteString("\n")
			continue
		}

		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			if trimmed := strings.TrimSpace(line.String()); trimmed != "" {
				b.WriteString(trimmed)
				b.WriteString("\n")
			}
		}
	}

	extracted := strings.TrimSpace(b.String())
	if extracted == "" {
		return "", fmt.Errorf("no text extracted; ledger may be a scanned image")
	}
	return extracted, nil
}

func trimAfterEOF(content []byte) []byte {
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return content
	}
	lastEOF := bytes.LastIndex(content, []byte("%%EOF"))
	if lastEOF == -1 {
		return content
	}
	end := lastEOF + len("%%EOF")
	for end < len(content) && (content[end] == '\n' || content[end] == '\r') {
		end++
	}
	if len(content)-end > 10 {
		return content[:end]
	}
	return content
}
