package game

import (
	"math/rand"
	"time"
)

const (
	DifficultyEasy = "easy"
	DifficultyHard = "hard"
)

// Minimax terminal scores. A win counts the same at any depth: the search
// prefers any win over a draw over a loss, not a faster win over a slower one.
const (
	scoreWin  = 10
	scoreLoss = -10
	scoreDraw = 0
)

// smartMoveChance is how often the easy bot plays its one-ply win/block check.
const smartMoveChance = 0.3

// openingMoves are the four corners and the center. Each is a non-losing
// first move, so the empty-board search is skipped.
var openingMoves = []int{1, 3, 5, 7, 9}

// Bot picks moves for the computer side. Each call is a pure function of
// the board and the two marks; the random source is injectable so games
// can be replayed under test.
type Bot struct {
	rng *rand.Rand
}

// NewBot returns a bot using rng for its random choices. A nil rng falls
// back to a time-seeded source.
func NewBot(rng *rand.Rand) *Bot {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok
	}

	return &Bot{rng: rng}
}

// Move returns a currently available position (1-9) for botMark.
func (that *Bot) Move(board Board, botMark, humanMark, difficulty string) int {
	if difficulty == DifficultyEasy {
		return that.moveEasy(board, botMark, humanMark)
	}

	return that.moveHard(board, botMark, humanMark)
}

// moveHard scores every available move with minimax and keeps the first
// maximum. It never loses.
func (that *Bot) moveHard(board Board, botMark, humanMark string) int {
	available := AvailableMoves(board)

	if len(available) == 9 {
		return openingMoves[that.rng.Intn(len(openingMoves))]
	}

	bestScore := scoreLoss - 1
	bestMove := available[0]

	for _, move := range available {
		MakeMove(&board, move, botMark)
		score := minimax(&board, false, botMark, humanMark)
		undoMove(&board, move)

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}

	return bestMove
}

// moveEasy plays the one-ply win/block check about 30% of the time and a
// uniformly random available move otherwise, so the bot stays beatable.
func (that *Bot) moveEasy(board Board, botMark, humanMark string) int {
	available := AvailableMoves(board)

	if that.rng.Float64() < smartMoveChance {
		if move, ok := FindWinningMove(board, botMark); ok {
			return move
		}

		if move, ok := FindWinningMove(board, humanMark); ok {
			return move
		}
	}

	return available[that.rng.Intn(len(available))]
}

// minimax exhaustively scores the position for botMark, alternating
// maximizing and minimizing turns. Every simulated move is undone, so the
// board is unchanged when the top-level call returns.
func minimax(board *Board, maximizing bool, botMark, humanMark string) int {
	switch {
	case CheckWinner(*board, humanMark):
		return scoreLoss
	case CheckWinner(*board, botMark):
		return scoreWin
	case IsBoardFull(*board):
		return scoreDraw
	}

	if maximizing {
		best := scoreLoss - 1
		for _, move := range AvailableMoves(*board) {
			MakeMove(board, move, botMark)
			if score := minimax(board, false, botMark, humanMark); score > best {
				best = score
			}
			undoMove(board, move)
		}

		return best
	}

	best := scoreWin + 1
	for _, move := range AvailableMoves(*board) {
		MakeMove(board, move, humanMark)
		if score := minimax(board, true, botMark, humanMark); score < best {
			best = score
		}
		undoMove(board, move)
	}

	return best
}

func undoMove(board *Board, position int) {
	row, col := Position(position)
	board[row][col] = EmptyCell
}
