package board

import "strconv"

// Movement direction classifications.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionSame = "same"
)

// symbolSame is an en dash, not a hyphen.
const symbolSame = "–"

// Movement decorates a rank pair for presentation.
type Movement struct {
	Symbol    string `json:"symbol"`
	Direction string `json:"direction"`
}

// ComputeMovement classifies the change from previousRank to
// currentRank. Lower rank numbers are better, so a positive difference
// means the contestant moved up the board.
func ComputeMovement(currentRank, previousRank int) Movement {
	diff := previousRank - currentRank
	switch {
	case diff > 0:
		return Movement{Symbol: "↑" + strconv.Itoa(diff), Direction: DirectionUp}
	case diff < 0:
		return Movement{Symbol: "↓" + strconv.Itoa(-diff), Direction: DirectionDown}
	default:
		return Movement{Symbol: symbolSame, Direction: DirectionSame}
	}
}
