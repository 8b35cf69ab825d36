package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gameroomdev/tictactoe/internal/game"
	"github.com/gameroomdev/tictactoe/internal/session"
)

// Post-game menu choices.
const (
	choiceReplay      = "1"
	choiceChangeMode  = "2"
	choiceResetScores = "3"
	choiceQuit        = "4"
)

var errInputClosed = errors.New("input closed")

// Console runs the interactive game loop over plain text I/O. All input
// validation happens here; the game core never sees malformed input.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	bot *game.Bot
}

func New(in io.Reader, out io.Writer, bot *game.Bot) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
		bot: bot,
	}
}

// Run plays games until the player quits. A closed input stream ends the
// session cleanly rather than as a failure.
func (that *Console) Run() error {
	if err := that.run(); err != nil && !errors.Is(err, errInputClosed) {
		return err
	}

	return nil
}

func (that *Console) run() error {
	that.printBanner()

	mode, err := that.selectGameMode()
	if err != nil {
		return err
	}

	sess, err := session.New("console", mode, nil)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	var lastPlayedMode string

	for {
		if err = that.playRound(sess); err != nil {
			return err
		}

		// a mode switch earns a reset offer once a game has been
		// played in the new mode
		if lastPlayedMode != "" && lastPlayedMode != sess.Mode && sess.Scoreboard.GamesPlayed > 1 {
			if err = that.offerScoreReset(sess); err != nil {
				return err
			}
		}
		lastPlayedMode = sess.Mode

		quit, err := that.postGameMenu(sess)
		if err != nil {
			return err
		}

		if quit {
			return nil
		}
	}
}

// offerScoreReset asks whether the tally should survive the mode change.
func (that *Console) offerScoreReset(sess *session.Session) error {
	answer, err := that.readLine("\nGame mode changed. Reset scores? (y/n): ")
	if err != nil {
		return err
	}

	if strings.EqualFold(answer, "y") {
		sess.ResetScores()
		fmt.Fprintln(that.out, "Scores have been reset!")
	}

	return nil
}

// playRound plays one game to completion and shows the scoreboard.
func (that *Console) playRound(sess *session.Session) error {
	sess.NewGame()

	fmt.Fprintf(that.out, "\n=== TIC TAC TOE (%s) ===\n", modeTitle(sess.Mode))
	if sess.Mode == session.ModeTwoPlayer {
		fmt.Fprintln(that.out, "Player 1 is X, Player 2 is O")
	} else {
		fmt.Fprintln(that.out, "You are X, Computer is O")
	}
	that.printPositions()

	for !sess.IsOver() {
		that.printBoard(sess.Board)

		if sess.AwaitsComputer() {
			fmt.Fprintln(that.out, "Computer is thinking...")

			move := that.bot.Move(sess.Board, sess.BotMark, sess.HumanMark, sess.Difficulty())
			if err := sess.ApplyComputerMove(move); err != nil {
				return fmt.Errorf("bot failed to make turn: %w", err)
			}

			fmt.Fprintf(that.out, "Computer plays position %d\n", move)
			continue
		}

		move, err := that.promptMove(sess)
		if err != nil {
			return err
		}

		if err = sess.SelectCell(move); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}
	}

	that.printBoard(sess.Board)
	that.announceResult(sess)
	that.printScoreboard(sess.Scoreboard)

	return nil
}

// postGameMenu loops on the 1-4 menu until the player replays, changes
// mode or quits. Returns true when the player quits.
func (that *Console) postGameMenu(sess *session.Session) (bool, error) {
	for {
		fmt.Fprintln(that.out, "\nWhat would you like to do?")
		fmt.Fprintln(that.out, "1. Play again (same mode)")
		fmt.Fprintln(that.out, "2. Change game mode")
		fmt.Fprintln(that.out, "3. Reset scores")
		fmt.Fprintln(that.out, "4. Quit")

		choice, err := that.readLine("\nEnter your choice (1-4): ")
		if err != nil {
			return false, err
		}

		switch choice {
		case choiceReplay:
			return false, nil
		case choiceChangeMode:
			if err = that.changeMode(sess); err != nil {
				return false, err
			}
			return false, nil
		case choiceResetScores:
			sess.ResetScores()
			fmt.Fprintln(that.out, "Scores have been reset!")
			that.printScoreboard(sess.Scoreboard)
		case choiceQuit:
			fmt.Fprintln(that.out, "\n"+strings.Repeat("=", 40))
			fmt.Fprintln(that.out, "        FINAL SCORES")
			that.printScoreboard(sess.Scoreboard)
			fmt.Fprintln(that.out, "\nThanks for playing!")
			return true, nil
		default:
			fmt.Fprintln(that.out, "Please enter 1, 2, 3, or 4.")
		}
	}
}

// changeMode re-runs mode selection and applies it to the session.
func (that *Console) changeMode(sess *session.Session) error {
	mode, err := that.selectGameMode()
	if err != nil {
		return err
	}

	if err = sess.ChangeMode(mode); err != nil {
		return fmt.Errorf("failed to change mode: %w", err)
	}

	return nil
}

// selectGameMode shows the 1-3 menu and re-prompts until a valid choice.
func (that *Console) selectGameMode() (string, error) {
	fmt.Fprintln(that.out, "\n=== SELECT GAME MODE ===")
	fmt.Fprintln(that.out, "1. Easy Mode (vs Computer - beatable)")
	fmt.Fprintln(that.out, "2. Hard Mode (vs Computer - unbeatable)")
	fmt.Fprintln(that.out, "3. Two Player Mode")

	for {
		choice, err := that.readLine("\nEnter your choice (1-3): ")
		if err != nil {
			return "", err
		}

		switch choice {
		case "1":
			return session.ModeEasy, nil
		case "2":
			return session.ModeHard, nil
		case "3":
			return session.ModeTwoPlayer, nil
		default:
			fmt.Fprintln(that.out, "Please enter 1, 2, or 3.")
		}
	}
}

// promptMove asks for a position until it gets a number naming an empty cell.
func (that *Console) promptMove(sess *session.Session) (int, error) {
	name := that.turnLabel(sess)

	for {
		input, err := that.readLine(fmt.Sprintf("%s, enter your move (1-9): ", name))
		if err != nil {
			return 0, err
		}

		move, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(that.out, "Please enter a number between 1 and 9.")
			continue
		}

		if !game.IsValidMove(sess.Board, move) {
			fmt.Fprintln(that.out, "Invalid move. Position is either taken or out of range.")
			continue
		}

		return move, nil
	}
}

func (that *Console) turnLabel(sess *session.Session) string {
	if sess.Mode != session.ModeTwoPlayer {
		return "You"
	}

	if sess.Turn == game.PlayerX {
		return "Player 1 (X)"
	}

	return "Player 2 (O)"
}

func (that *Console) announceResult(sess *session.Session) {
	if sess.Winner == game.EmptyCell {
		fmt.Fprintln(that.out, "It's a draw!")
		return
	}

	if sess.Mode == session.ModeTwoPlayer {
		if sess.Winner == game.PlayerX {
			fmt.Fprintln(that.out, "Player 1 (X) wins!")
		} else {
			fmt.Fprintln(that.out, "Player 2 (O) wins!")
		}
		return
	}

	if sess.Winner == sess.HumanMark {
		fmt.Fprintln(that.out, "Congratulations! You win!")
	} else {
		fmt.Fprintln(that.out, "Computer wins! Better luck next time.")
	}
}

func (that *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(that.out, prompt)

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", errInputClosed
	}

	return strings.TrimSpace(that.in.Text()), nil
}

func (that *Console) printBanner() {
	fmt.Fprintln(that.out, "\n"+strings.Repeat("=", 40))
	fmt.Fprintln(that.out, "       WELCOME TO TIC TAC TOE")
	fmt.Fprintln(that.out, strings.Repeat("=", 40))
}

func (that *Console) printBoard(board game.Board) {
	fmt.Fprintln(that.out)
	for i, row := range board {
		fmt.Fprintf(that.out, " %s | %s | %s \n", cellOrSpace(row[0]), cellOrSpace(row[1]), cellOrSpace(row[2]))
		if i < 2 {
			fmt.Fprintln(that.out, "-----------")
		}
	}
	fmt.Fprintln(that.out)
}

func (that *Console) printPositions() {
	fmt.Fprintln(that.out, "\nPosition numbers:")
	fmt.Fprintln(that.out, " 1 | 2 | 3 ")
	fmt.Fprintln(that.out, "-----------")
	fmt.Fprintln(that.out, " 4 | 5 | 6 ")
	fmt.Fprintln(that.out, "-----------")
	fmt.Fprintln(that.out, " 7 | 8 | 9 ")
	fmt.Fprintln(that.out)
}

func (that *Console) printScoreboard(scoreboard *game.Scoreboard) {
	fmt.Fprintln(that.out, "\n"+strings.Repeat("=", 40))
	fmt.Fprintln(that.out, "            SCOREBOARD")
	fmt.Fprintln(that.out, strings.Repeat("=", 40))
	fmt.Fprintf(that.out, "  %s: %d\n", scoreboard.Player1Name, scoreboard.Player1Wins)
	fmt.Fprintf(that.out, "  %s: %d\n", scoreboard.Player2Name, scoreboard.Player2Wins)
	fmt.Fprintf(that.out, "  Draws: %d\n", scoreboard.Draws)
	fmt.Fprintf(that.out, "  Games Played: %d\n", scoreboard.GamesPlayed)
	fmt.Fprintln(that.out, strings.Repeat("=", 40))
}

func cellOrSpace(cell string) string {
	if cell == game.EmptyCell {
		return " "
	}

	return cell
}

func modeTitle(mode string) string {
	switch mode {
	case session.ModeEasy:
		return "Easy Mode"
	case session.ModeHard:
		return "Hard Mode"
	default:
		return "Two Player Mode"
	}
}
