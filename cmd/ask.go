package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmaster/internal/lifecycle"
	"github.com/abhisek/mathmaster/internal/questiongen"
	"github.com/abhisek/mathmaster/internal/quiz"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Run a quiz in plain line mode on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, topic, err := gradeAndTopic(cmd)
		if err != nil {
			return err
		}
		rounds, _ := cmd.Flags().GetInt("rounds")
		if rounds < 0 {
			return fmt.Errorf("--rounds must not be negative")
		}

		ctx := cmd.Context()
		gen, cleanup := buildGenerator(ctx, cmd)
		defer cleanup()

		lq := &lineQuiz{
			ctrl:   lifecycle.New(lifecycle.WithLogger(slog.Default())),
			gen:    gen,
			in:     bufio.NewScanner(cmd.InOrStdin()),
			out:    cmd.OutOrStdout(),
			rounds: rounds,
		}
		_, err = lq.run(ctx, grade, topic)
		return err
	},
}

func init() {
	addSessionFlags(askCmd)
	askCmd.Flags().IntP("rounds", "n", 10, "Stop after this many answers (0 = until you quit)")
}

// lineQuiz drives the controller synchronously: each request is fetched
// and resolved before the next prompt.
type lineQuiz struct {
	ctrl   *lifecycle.Controller
	gen    questiongen.Generator
	in     *bufio.Scanner
	out    io.Writer
	rounds int
}

// run plays until the round limit, a quit or end of input, prints the
// summary and returns the final session.
func (lq *lineQuiz) run(ctx context.Context, grade quiz.Grade, topic quiz.Topic) (quiz.Session, error) {
	req, err := lq.ctrl.Start(grade, topic)
	if err != nil {
		return quiz.Session{}, err
	}
	fmt.Fprintf(lq.out, "%s · %s\n", grade.Label(), topic)
	if notice := questiongen.Notice(lq.gen, topic); notice != "" {
		fmt.Fprintln(lq.out, notice)
	}

	answered := 0
	for ctx.Err() == nil {
		lq.ctrl.Resolve(lifecycle.Fetch(ctx, lq.gen, req))
		snap := lq.ctrl.Snapshot()

		if snap.State == lifecycle.StateFailed {
			fmt.Fprintf(lq.out, "\nCouldn't get a question: %s\n", snap.Round.Error)
			if !lq.confirm("Try again? [Y/n] ") {
				break
			}
			if req, err = lq.ctrl.Retry(); err != nil {
				return quiz.Session{}, err
			}
			continue
		}

		lq.printQuestion(snap)
		idx, ok := lq.readChoice()
		if !ok {
			break
		}
		if err := lq.ctrl.SelectOption(idx); err != nil {
			return quiz.Session{}, err
		}
		if err := lq.ctrl.Confirm(); err != nil {
			return quiz.Session{}, err
		}
		lq.printFeedback(lq.ctrl.Snapshot())

		if req, err = lq.ctrl.Advance(); err != nil {
			return quiz.Session{}, err
		}
		answered++
		if lq.rounds > 0 && answered >= lq.rounds {
			break
		}
	}

	session := lq.ctrl.Session()
	lq.ctrl.Abort()
	printSummary(lq.out, session)
	return session, nil
}

func (lq *lineQuiz) printQuestion(snap lifecycle.Snapshot) {
	q := snap.Round.Question
	fmt.Fprintf(lq.out, "\nProblem #%d  (difficulty %d, score %d)\n%s\n",
		snap.Session.HistoryLength+1, snap.Session.Difficulty, snap.Session.Score, q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(lq.out, "  %s) %s\n", quiz.OptionLabel(i), opt)
	}
}

func (lq *lineQuiz) printFeedback(snap lifecycle.Snapshot) {
	q := snap.Round.Question
	if snap.Round.AnsweredCorrectly() {
		fmt.Fprintln(lq.out, "Correct!")
	} else {
		fmt.Fprintf(lq.out, "Not quite. The answer is %s) %s\n", quiz.OptionLabel(q.CorrectIndex), q.CorrectOption())
	}
	if q.Explanation != "" {
		fmt.Fprintln(lq.out, q.Explanation)
	}
}

// readChoice prompts until it gets A-D or 1-4. It reports false on quit
// or end of input.
func (lq *lineQuiz) readChoice() (int, bool) {
	for {
		fmt.Fprint(lq.out, "Answer (A-D, q to quit): ")
		if !lq.in.Scan() {
			fmt.Fprintln(lq.out)
			return 0, false
		}
		s := strings.ToLower(strings.TrimSpace(lq.in.Text()))
		if s == "q" || s == "quit" {
			return 0, false
		}
		if len(s) == 1 {
			switch c := s[0]; {
			case c >= 'a' && c < 'a'+quiz.NumOptions:
				return int(c - 'a'), true
			case c >= '1' && c < '1'+quiz.NumOptions:
				return int(c - '1'), true
			}
		}
		fmt.Fprintln(lq.out, "Please enter A, B, C or D.")
	}
}

func (lq *lineQuiz) confirm(prompt string) bool {
	fmt.Fprint(lq.out, prompt)
	if !lq.in.Scan() {
		fmt.Fprintln(lq.out)
		return false
	}
	s := strings.ToLower(strings.TrimSpace(lq.in.Text()))
	return s == "" || s == "y" || s == "yes"
}

func printSummary(w io.Writer, s quiz.Session) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 32))
	fmt.Fprintf(w, "Questions answered: %d\n", len(s.History))
	fmt.Fprintf(w, "Correct:            %d\n", s.CorrectCount())
	fmt.Fprintf(w, "Final score:        %d\n", s.Score)
	fmt.Fprintf(w, "Final difficulty:   %d\n", s.Difficulty)
}
