package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"mcq-creator/internal/domain"
)

const (
	// QuizCSVFileName is the fixed name of the downloaded file.
	QuizCSVFileName = "quiz.csv"
	// CSVContentType is sent with downloads.
	CSVContentType = "text/csv; charset=utf-8"
)

// ExportCSV serializes rows with a header line and no index column.
func ExportCSV(rows []domain.QuizTableRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(domain.QuizTableHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(row.Record()); err != nil {
			return nil, fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
