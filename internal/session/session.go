package session

import (
	"fmt"

	"github.com/gameroomdev/tictactoe/internal/apperror"
	"github.com/gameroomdev/tictactoe/internal/game"
)

// Session states. Turn sequencing is an explicit state machine driven by
// discrete events (cell selected, computer move computed, new game),
// not by any toolkit's callbacks.
const (
	StateAwaitingHumanMove    = "awaiting_human_move"
	StateAwaitingComputerMove = "awaiting_computer_move"
	StateGameOver             = "game_over"
)

// Game modes.
const (
	ModeEasy      = "easy"
	ModeHard      = "hard"
	ModeTwoPlayer = "two_player"
)

// Session is one seat at the table: the current game, its state and the
// running scoreboard. The human plays X and moves first; in two-player
// mode both marks are human and the bot never gets a turn.
type Session struct {
	ID          string           `json:"id"`
	Mode        string           `json:"mode"`
	State       string           `json:"state"`
	Board       game.Board       `json:"board"`
	Turn        string           `json:"turn"`
	HumanMark   string           `json:"human_mark"`
	BotMark     string           `json:"bot_mark"`
	Winner      string           `json:"winner,omitempty"`
	WinningLine [3]int           `json:"winning_line"`
	Scoreboard  *game.Scoreboard `json:"scoreboard"`
}

// New starts a session in mode. A nil scoreboard gets a fresh one with
// names matching the mode.
func New(id, mode string, scoreboard *game.Scoreboard) (*Session, error) {
	if err := validateMode(mode); err != nil {
		return nil, err
	}

	if scoreboard == nil {
		player1, player2 := DefaultNames(mode)
		scoreboard = game.NewScoreboard(player1, player2)
	}

	return &Session{
		ID:         id,
		Mode:       mode,
		State:      StateAwaitingHumanMove,
		Board:      game.NewBoard(),
		Turn:       game.PlayerX,
		HumanMark:  game.PlayerX,
		BotMark:    game.PlayerO,
		Scoreboard: scoreboard,
	}, nil
}

// DefaultNames returns the scoreboard side names for mode.
func DefaultNames(mode string) (string, string) {
	if mode == ModeTwoPlayer {
		return "Player 1", "Player 2"
	}

	return "You", "Computer"
}

func validateMode(mode string) error {
	switch mode {
	case ModeEasy, ModeHard, ModeTwoPlayer:
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownMode, mode)
	}
}

// SelectCell applies a human move at position.
func (that *Session) SelectCell(position int) error {
	if that.State == StateGameOver {
		return apperror.ErrGameFinished
	}

	if that.State != StateAwaitingHumanMove {
		return apperror.ErrNotYourTurn
	}

	if position < 1 || position > 9 {
		return fmt.Errorf("%w: got %d", apperror.ErrInvalidPosition, position)
	}

	if !game.IsValidMove(that.Board, position) {
		return apperror.ErrCellOccupied
	}

	mark := that.Turn
	game.MakeMove(&that.Board, position, mark)

	if that.finishIfOver(mark) {
		return nil
	}

	that.advanceTurn(mark)

	return nil
}

// ApplyComputerMove applies the move computed for the bot's turn.
func (that *Session) ApplyComputerMove(position int) error {
	if that.State == StateGameOver {
		return apperror.ErrGameFinished
	}

	if that.State != StateAwaitingComputerMove {
		return apperror.ErrNotYourTurn
	}

	if !game.IsValidMove(that.Board, position) {
		return apperror.ErrCellOccupied
	}

	game.MakeMove(&that.Board, position, that.BotMark)

	if that.finishIfOver(that.BotMark) {
		return nil
	}

	that.State = StateAwaitingHumanMove
	that.Turn = that.HumanMark

	return nil
}

// NewGame clears the board for another round in the same mode.
func (that *Session) NewGame() {
	that.Board = game.NewBoard()
	that.Turn = game.PlayerX
	that.State = StateAwaitingHumanMove
	that.Winner = ""
	that.WinningLine = [3]int{}
}

// ChangeMode switches the game mode and starts a fresh game. The
// scoreboard keeps counting; resetting it stays the caller's decision.
func (that *Session) ChangeMode(mode string) error {
	if err := validateMode(mode); err != nil {
		return err
	}

	that.Mode = mode
	that.Scoreboard.Player1Name, that.Scoreboard.Player2Name = DefaultNames(mode)
	that.NewGame()

	return nil
}

// ResetScores zeroes the scoreboard counters.
func (that *Session) ResetScores() {
	that.Scoreboard.Reset()
}

func (that *Session) IsOver() bool {
	return that.State == StateGameOver
}

func (that *Session) AwaitsComputer() bool {
	return that.State == StateAwaitingComputerMove
}

// Difficulty maps the session mode to a bot difficulty.
func (that *Session) Difficulty() string {
	if that.Mode == ModeEasy {
		return game.DifficultyEasy
	}

	return game.DifficultyHard
}

// advanceTurn flips the mark and decides who the next event must come from.
func (that *Session) advanceTurn(mark string) {
	next := game.PlayerX
	if mark == game.PlayerX {
		next = game.PlayerO
	}

	that.Turn = next

	if that.Mode != ModeTwoPlayer && next == that.BotMark {
		that.State = StateAwaitingComputerMove
		return
	}

	that.State = StateAwaitingHumanMove
}

// finishIfOver settles the game when mark's move ended it. The result is
// recorded exactly once, here.
func (that *Session) finishIfOver(mark string) bool {
	if line, ok := game.WinningLine(that.Board, mark); ok {
		that.State = StateGameOver
		that.Turn = ""
		that.Winner = mark
		that.WinningLine = line
		that.Scoreboard.RecordResult(that.resultFor(mark))

		return true
	}

	if game.IsBoardFull(that.Board) {
		that.State = StateGameOver
		that.Turn = ""
		that.Scoreboard.RecordResult(game.ResultDraw)

		return true
	}

	return false
}

func (that *Session) resultFor(mark string) string {
	if that.Mode == ModeTwoPlayer {
		if mark == game.PlayerX {
			return game.ResultPlayer1Win
		}

		return game.ResultPlayer2Win
	}

	if mark == that.HumanMark {
		return game.ResultPlayer1Win
	}

	return game.ResultPlayer2Win
}
