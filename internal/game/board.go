package game

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// Board is a 3x3 grid of cells, each holding EmptyCell, PlayerX or PlayerO.
// It is a plain array type, so assignment copies the whole grid.
type Board [3][3]string

// NewBoard returns a board with all nine cells empty.
func NewBoard() Board {
	return Board{}
}

// Copy returns an independent duplicate of the board.
func (that Board) Copy() Board {
	return that
}

// Position converts a position number (1-9) to row and column indices.
//
// Position mapping:
//
//	1 -> (0,0), 2 -> (0,1), 3 -> (0,2)
//	4 -> (1,0), 5 -> (1,1), 6 -> (1,2)
//	7 -> (2,0), 8 -> (2,1), 9 -> (2,2)
//
// The caller validates the range first.
func Position(num int) (int, int) {
	num--
	return num / 3, num % 3
}

// PositionNum converts row and column indices (0-2) to a position number (1-9).
func PositionNum(row, col int) int {
	return row*3 + col + 1
}
