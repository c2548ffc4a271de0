package board

import "testing"

func TestComputeMovement(t *testing.T) {
	tests := []struct {
		currentRank  int
		previousRank int
		symbol       string
		direction    string
	}{
		{1, 3, "↑2", DirectionUp},
		{5, 2, "↓3", DirectionDown},
		{4, 4, "–", DirectionSame},
		{1, 1, "–", DirectionSame},
		{2, 10, "↑8", DirectionUp},
		{10, 2, "↓8", DirectionDown},
	}

	for _, test := range tests {
		got := ComputeMovement(test.currentRank, test.previousRank)
		if got.Symbol != test.symbol || got.Direction != test.direction {
			t.Errorf("ComputeMovement(%d, %d) = %+v, expected {%s %s}",
				test.currentRank, test.previousRank, got, test.symbol, test.direction)
		}
	}
}

func TestComputeMovementSameSymbolIsEnDash(t *testing.T) {
	symbol := ComputeMovement(1, 1).Symbol
	if symbol == "-" {
		t.Error("Same-rank symbol is a hyphen; it must be an en dash")
	}
	if symbol != "–" {
		t.Errorf("Same-rank symbol = %q, expected en dash", symbol)
	}
}
