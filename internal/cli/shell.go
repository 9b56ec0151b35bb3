package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"TD_growth_tracker/internal/model"
	"TD_growth_tracker/internal/service"
	"TD_growth_tracker/pkg/logger"

	"go.uber.org/zap"
)

const banner = "======================="

// Shell runs the numbered-menu loop on a line-oriented terminal. All
// state mutations happen through the service layer; the shell only holds
// the id of the logged-in user.
type Shell struct {
	svc          *service.Service
	in           *bufio.Reader
	out          io.Writer
	maxAnswerLen int
}

func New(svc *service.Service, in io.Reader, out io.Writer, maxAnswerLen int) *Shell {
	return &Shell{
		svc:          svc,
		in:           bufio.NewReader(in),
		out:          out,
		maxAnswerLen: maxAnswerLen,
	}
}

// Run drives login and the main menu until the user exits. End of input
// counts as a normal exit so piped sessions terminate cleanly.
func (sh *Shell) Run(ctx context.Context) error {
	err := sh.run(ctx)
	if err != nil && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (sh *Shell) run(ctx context.Context) error {
	userID, err := sh.loginLoop(ctx)
	if err != nil {
		return err
	}
	if userID == "" {
		fmt.Fprintln(sh.out, "Goodbye!")
		return nil
	}

	if _, err := sh.svc.ResetDailyStatus(ctx, userID); err != nil {
		return fmt.Errorf("failed to apply daily reset: %w", err)
	}

	for {
		user, err := sh.svc.Profile(ctx, userID)
		if err != nil {
			return err
		}

		sh.printBanner("Truth or Dare")
		fmt.Fprintln(sh.out, "1. Truth (today's question)")
		fmt.Fprintln(sh.out, "2. Dare (today's challenge)")
		fmt.Fprintln(sh.out, "3. View history")
		fmt.Fprintln(sh.out, "4. Coin ranking")
		fmt.Fprintln(sh.out, "0. Exit")
		fmt.Fprintln(sh.out, "-----------------------")
		fmt.Fprintf(sh.out, "Current coins: %d\n", user.Coins)

		choice, err := sh.menuChoice()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = sh.truthRound(ctx, userID)
		case 2:
			err = sh.dareRound(ctx, userID)
		case 3:
			err = sh.showHistory(ctx, userID)
		case 4:
			err = sh.showRanking(ctx, userID)
		case 0:
			fmt.Fprintln(sh.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(sh.out, "Invalid selection. Please try again.")
			err = sh.pause()
		}
		if err != nil {
			return err
		}
	}
}

// loginLoop returns the authenticated user id, or "" when the user chose
// to exit.
func (sh *Shell) loginLoop(ctx context.Context) (string, error) {
	for {
		sh.printBanner("Truth or Dare")
		fmt.Fprintln(sh.out, "1. Log in")
		fmt.Fprintln(sh.out, "2. Register")
		fmt.Fprintln(sh.out, "0. Exit")

		choice, err := sh.menuChoice()
		if err != nil {
			return "", err
		}

		switch choice {
		case 0:
			return "", nil
		case 1, 2:
		default:
			fmt.Fprintln(sh.out, "Invalid selection. Please try again.")
			continue
		}

		id, err := sh.readLine("Enter ID: ")
		if err != nil {
			return "", err
		}
		password, err := sh.readLine("Enter password: ")
		if err != nil {
			return "", err
		}

		if choice == 1 {
			user, err := sh.svc.Login(ctx, id, password)
			switch {
			case err == nil:
				fmt.Fprintln(sh.out, "Login successful!")
				return user.ID, nil
			case errors.Is(err, service.ErrInvalidCredentials):
				fmt.Fprintln(sh.out, "ID or password does not match. Please try again.")
			default:
				logger.Logger().Error("login failed", zap.Error(err))
				fmt.Fprintln(sh.out, "Something went wrong. Please try again.")
			}
			if err := sh.pause(); err != nil {
				return "", err
			}
			continue
		}

		err = sh.svc.Register(ctx, id, password)
		switch {
		case err == nil:
			fmt.Fprintln(sh.out, "Registration successful! Please log in.")
		case errors.Is(err, service.ErrUserExists):
			fmt.Fprintln(sh.out, "That ID already exists. Please pick another one.")
		case errors.Is(err, service.ErrUserCapReached):
			fmt.Fprintln(sh.out, "No more users can be registered.")
		case errors.Is(err, service.ErrEmptyCredentials):
			fmt.Fprintln(sh.out, "ID and password must not be empty.")
		case errors.Is(err, service.ErrInvalidUserID):
			fmt.Fprintln(sh.out, "IDs must not contain spaces.")
		default:
			logger.Logger().Error("registration failed", zap.Error(err))
			fmt.Fprintln(sh.out, "Something went wrong. Please try again.")
		}
		if err := sh.pause(); err != nil {
			return "", err
		}
	}
}

func (sh *Shell) truthRound(ctx context.Context, userID string) error {
	user, err := sh.svc.Profile(ctx, userID)
	if err != nil {
		return err
	}

	prompt, err := sh.svc.DrawTruthPrompt(ctx, user)
	switch {
	case errors.Is(err, service.ErrTruthAlreadyAnswered):
		fmt.Fprintln(sh.out, "You already answered today's Truth. Come back tomorrow!")
		return sh.pause()
	case errors.Is(err, service.ErrNoPrompts):
		fmt.Fprintln(sh.out, "There are no Truth questions to show.")
		return sh.pause()
	case err != nil:
		return err
	}

	sh.printBanner("Today's Truth")
	fmt.Fprintf(sh.out, "Question: %s\n", prompt.Question)

	answer, err := sh.readLine(fmt.Sprintf("Your answer (up to %d characters): ", sh.maxAnswerLen))
	if err != nil {
		return err
	}
	if runes := []rune(answer); len(runes) > sh.maxAnswerLen {
		answer = string(runes[:sh.maxAnswerLen])
	}

	if err := sh.svc.SubmitTruth(ctx, userID, prompt, answer); err != nil {
		return err
	}

	fmt.Fprintln(sh.out, "\nYour answer has been saved. You can review it any time under View history.")
	return sh.pause()
}

// dareRound loops category selection, challenge presentation and outcome
// recording until the daily cap is hit or the user backs out.
func (sh *Shell) dareRound(ctx context.Context, userID string) error {
	for {
		remaining, err := sh.svc.BeginDareRound(ctx, userID)
		if errors.Is(err, service.ErrDareCapReached) {
			sh.printBanner("Dare complete!")
			fmt.Fprintln(sh.out, "No more Dare attempts today.")
			fmt.Fprintln(sh.out, "You used all of today's attempts. Well done!")
			return sh.pause()
		}
		if err != nil {
			return err
		}

		sh.printBanner("Dare categories")
		fmt.Fprintln(sh.out, "1. Body")
		fmt.Fprintln(sh.out, "2. Learning")
		fmt.Fprintln(sh.out, "3. Emotional")
		fmt.Fprintln(sh.out, "0. Back")
		fmt.Fprintln(sh.out, "-----------------------")
		fmt.Fprintf(sh.out, "Attempts left today: %d\n", remaining)

		choice, err := sh.menuChoice()
		if err != nil {
			return err
		}
		if choice == 0 {
			return nil
		}

		var category model.Category
		switch choice {
		case 1:
			category = model.CategoryBody
		case 2:
			category = model.CategoryLearning
		case 3:
			category = model.CategoryEmotional
		default:
			fmt.Fprintln(sh.out, "Invalid category.")
			if err := sh.pause(); err != nil {
				return err
			}
			continue
		}

		challenge, err := sh.svc.DrawDareChallenge(ctx, category)
		if errors.Is(err, service.ErrNoChallenges) {
			fmt.Fprintln(sh.out, "That category has no challenges.")
			if err := sh.pause(); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		sh.printBanner("Today's Dare")
		fmt.Fprintf(sh.out, "Category: %s\n", challenge.Category)
		fmt.Fprintf(sh.out, "Challenge: %s\n", challenge.Challenge)
		fmt.Fprintln(sh.out)
		fmt.Fprintln(sh.out, "1. Challenge complete")
		fmt.Fprintln(sh.out, "2. Challenge failed")

		outcome, err := sh.menuChoice()
		if err != nil {
			return err
		}

		result, err := sh.svc.ResolveDare(ctx, userID, challenge, outcome)
		if err != nil {
			return err
		}

		switch result.Outcome {
		case model.OutcomeComplete:
			fmt.Fprintf(sh.out, "\nCongratulations! You earned %d coins!\n", result.CoinsEarned)
		case model.OutcomeFail:
			fmt.Fprintln(sh.out, "\nBetter luck next time! Your coins are unchanged.")
		default:
			fmt.Fprintln(sh.out, "\nInvalid selection. The attempt is recorded without a result.")
		}

		if result.Remaining > 0 {
			fmt.Fprintln(sh.out, "\nYou can pick another challenge.")
			if err := sh.pause(); err != nil {
				return err
			}
			continue
		}

		sh.printBanner("Dare complete!")
		fmt.Fprintln(sh.out, "You finished all of today's Dare attempts. Well done!")
		return sh.pause()
	}
}

func (sh *Shell) showHistory(ctx context.Context, userID string) error {
	entries, err := sh.svc.History(ctx, userID)
	if err != nil {
		return err
	}

	sh.printBanner("My history")
	if len(entries) == 0 {
		fmt.Fprintln(sh.out, "Nothing recorded yet.")
		return sh.pause()
	}

	for _, e := range entries {
		fmt.Fprintf(sh.out, "\nDate: %s\n", e.Date)
		if e.Kind == model.KindTruth {
			fmt.Fprintln(sh.out, "Kind: Truth")
			fmt.Fprintf(sh.out, "Question: %s\n", e.Content)
			fmt.Fprintf(sh.out, "Answer: %s\n", e.Response)
		} else {
			fmt.Fprintln(sh.out, "Kind: Dare")
			fmt.Fprintf(sh.out, "Category: %s\n", e.Category)
			fmt.Fprintf(sh.out, "Challenge: %s\n", e.Content)
			fmt.Fprintf(sh.out, "Result: %s (coins earned: %d)\n", e.Response, e.CoinsEarned)
		}
		fmt.Fprintln(sh.out, "-----------------------")
	}
	return sh.pause()
}

func (sh *Shell) showRanking(ctx context.Context, userID string) error {
	ranking, err := sh.svc.CoinRanking(ctx, userID)
	if err != nil {
		return err
	}

	sh.printBanner("Coin ranking")
	fmt.Fprintln(sh.out, "--- TOP 3 ---")
	for _, u := range ranking.Top {
		fmt.Fprintf(sh.out, "#%d: %s - %d coins\n", u.Rank, u.ID, u.Coins)
	}

	fmt.Fprintln(sh.out, "\n--- My rank ---")
	fmt.Fprintf(sh.out, "#%d: %s - %d coins\n", ranking.Self.Rank, ranking.Self.ID, ranking.Self.Coins)
	return sh.pause()
}

func (sh *Shell) printBanner(title string) {
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, banner)
	fmt.Fprintf(sh.out, "  %s\n", title)
	fmt.Fprintln(sh.out, banner)
}

func (sh *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(sh.out, prompt)
	line, err := sh.in.ReadString('\n')
	if err != nil && (line == "" || err != io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// menuChoice reads one line and parses it as a selection. Anything
// non-numeric comes back as -1, which no menu accepts.
func (sh *Shell) menuChoice() (int, error) {
	line, err := sh.readLine("Choice: ")
	if err != nil {
		return 0, err
	}
	choice, convErr := strconv.Atoi(line)
	if convErr != nil {
		return -1, nil
	}
	return choice, nil
}

func (sh *Shell) pause() error {
	_, err := sh.readLine("\nPress Enter to continue...")
	return err
}
