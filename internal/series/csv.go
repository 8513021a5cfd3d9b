package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/domain"
)

// CSV parsing errors.
var (
	ErrMissingHeader = errors.New("csv: missing header row")
	ErrMissingColumn = errors.New("csv: required column not found")
)

// ParseCSV reads a daily-history CSV into a validated price series.
// The header must contain "Date" and "Close" columns (case-insensitive);
// extra columns such as Open/High/Low/Volume are ignored. This matches the
// Stooq daily export format.
func ParseCSV(r io.Reader, symbol string) ([]domain.PricePoint, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	dateIdx, closeIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "date":
			dateIdx = i
		case "close":
			closeIdx = i
		}
	}
	if dateIdx < 0 || closeIdx < 0 {
		return nil, fmt.Errorf("%w: need Date and Close, got %v", ErrMissingColumn, header)
	}

	var points []domain.PricePoint
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		date, err := time.ParseInLocation(dateLayout, record[dateIdx], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: parse date %q: %w", line, record[dateIdx], err)
		}

		closePx, err := decimal.NewFromString(record[closeIdx])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: parse close %q: %w", line, record[closeIdx], err)
		}

		points = append(points, domain.PricePoint{
			Symbol: symbol,
			Date:   date,
			Close:  closePx,
		})
	}

	if err := Validate(points); err != nil {
		return nil, err
	}
	return points, nil
}

// LoadCSVFile parses a daily-history CSV from disk.
func LoadCSVFile(path, symbol string) ([]domain.PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series file: %w", err)
	}
	defer f.Close()

	return ParseCSV(f, symbol)
}
