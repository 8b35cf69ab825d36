package game

// WinLines are the 8 position triples that finish a game: 3 rows,
// 3 columns and both diagonals.
var WinLines = [8][3]int{
	{1, 2, 3},
	{4, 5, 6},
	{7, 8, 9},
	{1, 4, 7},
	{2, 5, 8},
	{3, 6, 9},
	{1, 5, 9},
	{3, 5, 7},
}

// IsValidMove reports whether position is in 1-9 and the cell is empty.
// An out-of-range position is simply invalid, never an error.
func IsValidMove(board Board, position int) bool {
	if position < 1 || position > 9 {
		return false
	}

	row, col := Position(position)

	return board[row][col] == EmptyCell
}

// MakeMove places mark at position. The caller must have checked
// IsValidMove first; MakeMove does not re-validate.
func MakeMove(board *Board, position int, mark string) {
	row, col := Position(position)
	board[row][col] = mark
}

// CheckWinner reports whether mark occupies all three cells of any line.
func CheckWinner(board Board, mark string) bool {
	_, ok := WinningLine(board, mark)
	return ok
}

// WinningLine returns the three positions of a completed line for mark,
// for the front end to highlight. ok is false when mark has no line.
func WinningLine(board Board, mark string) ([3]int, bool) {
	for _, line := range WinLines {
		completed := true
		for _, pos := range line {
			row, col := Position(pos)
			if board[row][col] != mark {
				completed = false
				break
			}
		}

		if completed {
			return line, true
		}
	}

	return [3]int{}, false
}

// IsBoardFull reports whether no empty cell remains.
func IsBoardFull(board Board) bool {
	for _, row := range board {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// AvailableMoves returns the empty positions in ascending order. The bot
// relies on the order for its deterministic first-available fallback.
func AvailableMoves(board Board) []int {
	moves := make([]int, 0, 9)
	for pos := 1; pos <= 9; pos++ {
		if IsValidMove(board, pos) {
			moves = append(moves, pos)
		}
	}

	return moves
}

// FindWinningMove returns the first available position that completes a
// line for mark, trying moves on a copy so the caller's board is never
// touched. ok is false when no single move wins.
func FindWinningMove(board Board, mark string) (int, bool) {
	for _, move := range AvailableMoves(board) {
		test := board.Copy()
		MakeMove(&test, move, mark)

		if CheckWinner(test, mark) {
			return move, true
		}
	}

	return 0, false
}
