package source

import (
	"reflect"
	"testing"
)

func TestDocumentFromValuesZipsHeaders(t *testing.T) {
	doc := documentFromValues([][]interface{}{
		{" Codename ", `"Current Rank"`, "Shamed"},
		{"Fox", 1, "TRUE"},
		{"Badger", "2", false},
	})

	expected := []string{"Codename", "Current Rank", "Shamed"}
	if !reflect.DeepEqual(doc.Headers, expected) {
		t.Errorf("Headers = %v, expected %v", doc.Headers, expected)
	}
	if len(doc.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(doc.Records))
	}
	if doc.Records[0]["Current Rank"] != "1" || doc.Records[0]["Shamed"] != "TRUE" {
		t.Errorf("Untyped cells not stringified: %v", doc.Records[0])
	}
	if doc.Records[1]["Shamed"] != "false" {
		t.Errorf("Boolean cell not stringified: %v", doc.Records[1])
	}
	if len(doc.Issues) != 0 {
		t.Errorf("Expected no issues, got %v", doc.Issues)
	}
}

func TestDocumentFromValuesPadsAndDrops(t *testing.T) {
	doc := documentFromValues([][]interface{}{
		{"a", "b", "c"},
		{"1", "2"},
		{"1", "2", "3", "4"},
	})

	short := doc.Records[0]
	if short["a"] != "1" || short["b"] != "2" || short["c"] != "" {
		t.Errorf("Short row not padded with empty strings: %v", short)
	}

	long := doc.Records[1]
	if len(long) != 3 || long["c"] != "3" {
		t.Errorf("Long row did not drop extra cells: %v", long)
	}

	if len(doc.Issues) != 2 {
		t.Fatalf("Expected 2 row issues, got %d", len(doc.Issues))
	}
	if doc.Issues[0].Line != 2 || doc.Issues[0].Fields != 2 || doc.Issues[0].Headers != 3 {
		t.Errorf("Unexpected first issue: %+v", doc.Issues[0])
	}
}

func TestDocumentFromValuesTooFewRows(t *testing.T) {
	inputs := [][][]interface{}{
		nil,
		{},
		{{"Codename", "Current Rank"}},
	}
	for _, values := range inputs {
		doc := documentFromValues(values)
		if len(doc.Records) != 0 {
			t.Errorf("documentFromValues(%v) returned %d records, expected 0", values, len(doc.Records))
		}
	}
}

func TestRowsFromValuesKeepsFirstRow(t *testing.T) {
	rows := rowsFromValues([][]interface{}{
		{"deadline", " 2025-12-31 "},
		{"current_week", 7},
	})

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "deadline" || rows[0][1] != "2025-12-31" {
		t.Errorf("First row lost or untrimmed: %v", rows[0])
	}
	if rows[1][1] != "7" {
		t.Errorf("Numeric cell not stringified: %v", rows[1])
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		cell     interface{}
		expected string
	}{
		{nil, ""},
		{"x", "x"},
		{3, "3"},
		{2.5, "2.5"},
		{true, "true"},
	}
	for _, test := range tests {
		if got := cellString(test.cell); got != test.expected {
			t.Errorf("cellString(%v) = %q, expected %q", test.cell, got, test.expected)
		}
	}
}
