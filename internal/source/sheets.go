package source

import (
	"context"
	"fmt"
	"strings"

	"codename_board/internal/csvtext"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsService creates an authenticated Sheets API client from a
// service-account credentials file.
func NewSheetsService(ctx context.Context, credentialsFile string) (*sheets.Service, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return service, nil
}

// APIRange reads one range of the spreadsheet through the Sheets API
// instead of the CSV export. Server-side deployments with credentials
// avoid the CORS relay entirely this way.
type APIRange struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
}

// NewAPIRange builds a range reader for the given A1-notation range,
// e.g. "Leaderboard!A1:Z1000".
func NewAPIRange(service *sheets.Service, spreadsheetID, readRange string) *APIRange {
	return &APIRange{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}
}

func (r *APIRange) values(ctx context.Context) ([][]interface{}, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range: %w", err)
	}
	return resp.Values, nil
}

// Document reads the range and projects it into the same header-keyed
// shape the CSV export path produces: first row is the header line,
// short rows pad with empty strings, extra cells are dropped.
func (r *APIRange) Document(ctx context.Context) (csvtext.Document, error) {
	values, err := r.values(ctx)
	if err != nil {
		return csvtext.Document{}, err
	}

	log.Debug().
		Str("range", r.readRange).
		Int("rows", len(values)).
		Msg("Read range via sheets API")

	return documentFromValues(values), nil
}

// Rows reads the range as positional cells, for unheaded key/value
// ranges.
func (r *APIRange) Rows(ctx context.Context) ([][]string, error) {
	values, err := r.values(ctx)
	if err != nil {
		return nil, err
	}
	return rowsFromValues(values), nil
}

func documentFromValues(values [][]interface{}) csvtext.Document {
	if len(values) < 2 {
		return csvtext.Document{}
	}

	headers := make([]string, 0, len(values[0]))
	for _, cell := range values[0] {
		headers = append(headers, strings.ReplaceAll(strings.TrimSpace(cellString(cell)), `"`, ""))
	}

	doc := csvtext.Document{
		Headers: headers,
		Records: make([]csvtext.Record, 0, len(values)-1),
	}

	for i, row := range values[1:] {
		if len(row) != len(headers) {
			doc.Issues = append(doc.Issues, csvtext.RowIssue{
				Line:    i + 2,
				Fields:  len(row),
				Headers: len(headers),
			})
		}

		record := make(csvtext.Record, len(headers))
		for j, header := range headers {
			if j < len(row) {
				record[header] = strings.TrimSpace(cellString(row[j]))
			} else {
				record[header] = ""
			}
		}
		doc.Records = append(doc.Records, record)
	}

	return doc
}

func rowsFromValues(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, strings.TrimSpace(cellString(cell)))
		}
		rows = append(rows, cells)
	}
	return rows
}

// cellString safely renders an API cell value; the Sheets API returns
// untyped interface{} cells.
func cellString(cell interface{}) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprintf("%v", cell)
}
