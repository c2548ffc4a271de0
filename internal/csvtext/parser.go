// Package csvtext parses the single-line CSV dialect produced by the
// spreadsheet's CSV export. It is deliberately not an RFC 4180 parser:
// a quote character toggles quoted mode and is never part of a field,
// so quoted fields cannot span lines and cannot contain a literal quote.
package csvtext

import "strings"

// Record maps a header token to the cell value in the same column
// position. Repeated headers keep the last value.
type Record map[string]string

// RowIssue describes a data row whose field count did not match the
// header count. The row is still projected best-effort (short rows pad
// with empty strings, long rows drop the extras); the issue is reported
// so callers can surface the mismatch instead of losing it silently.
type RowIssue struct {
	Line    int // 1-based line number within the trimmed input
	Fields  int
	Headers int
}

// Document is the outcome of parsing one CSV payload.
type Document struct {
	Headers []string
	Records []Record
	Issues  []RowIssue
}

// Parse converts raw CSV text into header-keyed records. Inputs with
// fewer than two lines after trimming produce no records: there is
// nothing below the header line to project.
func Parse(text string) Document {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return Document{}
	}

	headerTokens := strings.Split(lines[0], ",")
	headers := make([]string, 0, len(headerTokens))
	for _, token := range headerTokens {
		headers = append(headers, strings.ReplaceAll(strings.TrimSpace(token), `"`, ""))
	}

	doc := Document{
		Headers: headers,
		Records: make([]Record, 0, len(lines)-1),
	}

	for i, line := range lines[1:] {
		fields := ScanLine(line)
		if len(fields) != len(headers) {
			doc.Issues = append(doc.Issues, RowIssue{
				Line:    i + 2,
				Fields:  len(fields),
				Headers: len(headers),
			})
		}

		record := make(Record, len(headers))
		for j, header := range headers {
			if j < len(fields) {
				record[header] = fields[j]
			} else {
				record[header] = ""
			}
		}
		doc.Records = append(doc.Records, record)
	}

	return doc
}

// ScanLine splits a single line into trimmed field values. A quote
// toggles quoted mode and is dropped; a comma outside quoted mode ends
// the current field; everything else accumulates. The trailing buffer
// is always flushed as the final field.
func ScanLine(line string) []string {
	var fields []string
	var buf strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(buf.String()))

	return fields
}

// Rows runs every line of the input through the field scanner, the
// first line included. Ranges that carry positional key/value pairs
// instead of headed columns go through here so the first pair is not
// consumed as a header line.
func Rows(text string) [][]string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	lines := strings.Split(trimmed, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, ScanLine(line))
	}
	return rows
}
