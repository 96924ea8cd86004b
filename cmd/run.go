package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmaster/internal/app"
	"github.com/abhisek/mathmaster/internal/llm"
	"github.com/abhisek/mathmaster/internal/questiongen"
	"github.com/abhisek/mathmaster/internal/quiz"
	"github.com/abhisek/mathmaster/internal/store"
)

// runApp builds the question generator and launches the TUI. A preset
// grade and topic skip the setup screen.
func runApp(cmd *cobra.Command, grade quiz.Grade, topic quiz.Topic) error {
	ctx := cmd.Context()

	gen, cleanup := buildGenerator(ctx, cmd)
	defer cleanup()

	return app.Run(ctx, app.Options{
		Generator: gen,
		Logger:    slog.Default(),
		Grade:     grade,
		Topic:     topic,
	})
}

// buildGenerator picks the question source. Offline mode uses the
// procedural generator. Otherwise the configured LLM provider is used,
// with calls recorded in the request log when the store opens. A missing
// credential is not fatal: the generator fails every request with the
// configuration error, which the quiz shows with a retry option.
func buildGenerator(ctx context.Context, cmd *cobra.Command) (questiongen.Generator, func()) {
	offline, _ := cmd.Flags().GetBool("offline")
	if offline || strings.EqualFold(os.Getenv("MATHMASTER_LLM_PROVIDER"), "offline") {
		slog.Info("using offline question generator")
		return questiongen.NewProcedural(uint64(time.Now().UnixNano())), func() {}
	}

	cleanup := func() {}
	var repo store.EventRepo
	if dbPath, err := resolveDBPath(cmd); err != nil {
		slog.Warn("request log disabled", "error", err)
	} else if st, err := store.Open(dbPath); err != nil {
		slog.Warn("request log disabled", "path", dbPath, "error", err)
	} else {
		repo = st.EventRepo()
		cleanup = func() { st.Close() }
	}

	provider, err := llm.NewProviderFromEnv(ctx, repo)
	if err != nil {
		slog.Warn("question provider not configured", "error", err)
		return questiongen.Unavailable(err), cleanup
	}
	return questiongen.New(provider, questiongen.DefaultConfig()), cleanup
}
