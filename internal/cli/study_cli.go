package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mcqdeck/mcqdeck/internal/deck"
	"github.com/mcqdeck/mcqdeck/internal/srs"
	"github.com/mcqdeck/mcqdeck/internal/storage"
	"github.com/mcqdeck/mcqdeck/internal/study"
)

// StudyCLI runs an interactive study session over one deck.
type StudyCLI struct {
	*InteractiveCLI
	controller *study.Controller
}

// NewStudyCLI starts a session for the deck and wraps it in a terminal
// frontend. A missing deck surfaces storage.ErrDeckNotFound unchanged so
// the command layer can report it cleanly.
func NewStudyCLI(
	ctx context.Context,
	store storage.Store,
	deckID string,
	input io.Reader,
	output io.Writer,
	opts ...study.Option,
) (*StudyCLI, error) {
	controller, err := study.Start(ctx, store, deckID, opts...)
	if err != nil {
		return nil, err
	}
	return &StudyCLI{
		InteractiveCLI: NewInteractiveCLI(input, output),
		controller:     controller,
	}, nil
}

// Controller exposes the underlying session controller.
func (cli *StudyCLI) Controller() *study.Controller {
	return cli.controller
}

// Session advances the interactive session by one interaction: the resume
// prompt, or one question answered and rated.
func (cli *StudyCLI) Session(ctx context.Context) error {
	switch cli.controller.State() {
	case study.StateCompleted:
		cli.printSummary()
		return EndSession()
	case study.StateAwaitingResumeChoice:
		return cli.promptResumeChoice(ctx)
	case study.StatePresenting:
		return cli.stepQuestion(ctx)
	}
	return fmt.Errorf("unexpected session state %s", cli.controller.State())
}

func (cli *StudyCLI) promptResumeChoice(ctx context.Context) error {
	fmt.Fprintf(cli.stdoutWriter, "An unfinished session was found for %s.\n",
		cli.bold.Sprint(cli.controller.Deck().Name))
	fmt.Fprint(cli.stdoutWriter, "Resume where you left off, or restart? [resume/restart]: ")

	input, err := cli.readLine()
	if err != nil {
		return err
	}

	switch strings.ToLower(input) {
	case "resume", "r", "":
		return cli.controller.Resume(ctx)
	case "restart":
		return cli.controller.Restart(ctx)
	}
	fmt.Fprintf(cli.stdoutWriter, "Please answer resume or restart.\n\n")
	return nil
}

func (cli *StudyCLI) stepQuestion(ctx context.Context) error {
	controller := cli.controller
	question, ok := controller.CurrentQuestion()
	if !ok {
		return fmt.Errorf("no question at position %d", controller.Position())
	}

	fmt.Fprintf(cli.stdoutWriter, "Question %d of %d (%.0f%% done)\n",
		controller.Position()+1, controller.QueueLength(), controller.Progress()*100)
	fmt.Fprintf(cli.stdoutWriter, "%s\n", cli.bold.Sprint(question.Question))
	for i, option := range question.Options {
		fmt.Fprintf(cli.stdoutWriter, "  %s. %s\n", deck.OptionLetter(i), option)
	}

	letter, err := cli.promptAnswer(question)
	if err != nil {
		return err
	}
	if letter == "" {
		// User asked to quit; leave committed state as is.
		return EndSession()
	}

	if err := controller.SelectAnswer(letter); err != nil {
		return fmt.Errorf("controller.SelectAnswer(%s) > %w", letter, err)
	}

	if controller.WasCorrect() {
		fmt.Fprint(cli.stdoutWriter, "✅ ")
		fmt.Fprintln(cli.stdoutWriter, color.GreenString("Correct, the answer is %s.", question.Answer))
	} else {
		fmt.Fprint(cli.stdoutWriter, "❌ ")
		fmt.Fprintln(cli.stdoutWriter, color.RedString("Wrong, the answer is %s.", question.Answer))
	}

	rating, err := cli.promptRating()
	if err != nil {
		return err
	}
	if err := controller.RateCurrent(ctx, rating); err != nil {
		return fmt.Errorf("controller.RateCurrent(%s) > %w", rating, err)
	}
	fmt.Fprintln(cli.stdoutWriter)
	return nil
}

func (cli *StudyCLI) promptAnswer(question deck.Question) (string, error) {
	for {
		fmt.Fprintf(cli.stdoutWriter, "Your answer [A-%s, q to quit]: ",
			deck.OptionLetter(len(question.Options)-1))

		input, err := cli.readLine()
		if err != nil {
			return "", err
		}
		switch strings.ToLower(input) {
		case "q", "quit":
			return "", nil
		}

		letter := strings.ToUpper(input)
		for i := range question.Options {
			if letter == deck.OptionLetter(i) {
				return letter, nil
			}
		}
		fmt.Fprintln(cli.stdoutWriter, "Not a valid option.")
	}
}

func (cli *StudyCLI) promptRating() (srs.Rating, error) {
	for {
		fmt.Fprintf(cli.stdoutWriter, "How hard was it? %s: ",
			cli.italic.Sprint("1=again 2=hard 3=good 4=easy"))

		input, err := cli.readLine()
		if err != nil {
			return "", err
		}

		rating, err := srs.ParseRating(strings.ToLower(input))
		if err == nil {
			return rating, nil
		}
		fmt.Fprintln(cli.stdoutWriter, "Not a valid rating.")
	}
}

func (cli *StudyCLI) printSummary() {
	session := cli.controller.Session()
	fmt.Fprintf(cli.stdoutWriter, "\nSession complete for %s!\n",
		cli.bold.Sprint(cli.controller.Deck().Name))
	fmt.Fprintf(cli.stdoutWriter, "Correct: %d  Incorrect: %d\n",
		session.CorrectAnswers, session.IncorrectAnswers)
	if session.TotalQuestions > 0 {
		accuracy := float64(session.CorrectAnswers) / float64(session.TotalQuestions) * 100
		fmt.Fprintf(cli.stdoutWriter, "Accuracy: %.0f%%\n", accuracy)
	}
}

// IsDeckNotFound reports whether err is the deck-not-found condition.
func IsDeckNotFound(err error) bool {
	return errors.Is(err, storage.ErrDeckNotFound)
}
