package services

import (
	"bytes"
	"testing"
)

func TestParseLedgerText(t *testing.T) {
	text := `Savitribai Phule University
Result Ledger WINTER-2025
PRN SGPA RESULT
ARC2024001 8.40 PASS
ARC2024002  6.05  PASS
ARC2024003 3.10 FAIL
Page 1 of 1`

	rows, skipped := parseLedgerText(text)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Title, session, column-header, and footer lines are skipped.
	if skipped != 4 {
		t.Errorf("skipped = %d, want 4", skipped)
	}

	cases := []struct {
		prn    string
		sgpa   float64
		status string
	}{
		{"ARC2024001", 8.40, "PASS"},
		{"ARC2024002", 6.05, "PASS"},
		{"ARC2024003", 3.10, "FAIL"},
	}
	for i, c := range cases {
		if rows[i].PRN != c.prn || rows[i].SGPA != c.sgpa || rows[i].Status != c.status {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], c)
		}
	}
}

func TestParseLedgerTextRejectsMalformedRows(t *testing.T) {
	text := `ARC2024001 8.40 MAYBE
ARC2024002 11.20 PASS
notaprn 8.00 PASS
ARC2024003 7.5 PASS`

	rows, skipped := parseLedgerText(text)
	if len(rows) != 1 {
		t.Fatalf("expected 1 valid row, got %d", len(rows))
	}
	if rows[0].PRN != "ARC2024003" {
		t.Errorf("surviving row = %+v", rows[0])
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}
}

func TestTrimAfterEOF(t *testing.T) {
	pdf := []byte("%PDF-1.4\ncontent here\n%%EOF\n")
	garbage := append(append([]byte{}, pdf...), []byte("<html>trailing junk from a proxy</html>")...)

	trimmed := trimAfterEOF(garbage)
	if !bytes.Equal(trimmed, pdf) {
		t.Errorf("expected garbage trimmed, got %d bytes (want %d)", len(trimmed), len(pdf))
	}

	// Clean files and non-PDFs pass through untouched.
	if got := trimAfterEOF(pdf); !bytes.Equal(got, pdf) {
		t.Error("clean PDF should be unchanged")
	}
	notPDF := []byte("just text %%EOF more text")
	if got := trimAfterEOF(notPDF); !bytes.Equal(got, notPDF) {
		t.Error("non-PDF content should be unchanged")
	}
}

func TestExtractPDFTextRejectsEmpty(t *testing.T) {
	if _, err := extractPDFText(nil); err == nil {
		t.Error("expected error for empty content")
	}
}
