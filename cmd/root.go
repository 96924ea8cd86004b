package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathmaster/internal/store"
)

// tuiAnnotation marks commands that take over the terminal; their logs
// must not be written to stderr.
const tuiAnnotation = "tui"

var rootCmd = &cobra.Command{
	Use:   "mathmaster",
	Short: "Adaptive multiple-choice math practice",
	Long: "MathMaster serves one multiple-choice question at a time for a chosen grade and topic,\n" +
		"raising the difficulty after correct answers and lowering it after mistakes.",
	Annotations:       map[string]string{tuiAnnotation: "true"},
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "", "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to the request log database (overrides MATHMASTER_DB)")
	pf.String("env-file", ".env", "Load environment variables from this file if it exists")
	pf.String("log-file", "", "Write logs to this file")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides MATHMASTER_LOG_LEVEL)")
	pf.Bool("offline", false, "Generate questions locally instead of calling an LLM")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// prepare loads the env file and configures logging before any command
// runs.
func prepare(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := loadEnvFile(envFile); err != nil {
		return err
	}
	return configureLogging(cmd)
}

// loadEnvFile loads path without overriding variables already set. A
// missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

var logCloser io.Closer

// configureLogging installs the default slog logger. TUI commands log
// only to --log-file; the rest log to stderr when no file is given.
func configureLogging(cmd *cobra.Command) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	if levelName == "" {
		levelName = os.Getenv("MATHMASTER_LOG_LEVEL")
	}
	var level slog.Level
	if levelName != "" {
		if err := level.UnmarshalText([]byte(levelName)); err != nil {
			return fmt.Errorf("invalid log level %q", levelName)
		}
	}

	var w io.Writer = os.Stderr
	logFile, _ := cmd.Flags().GetString("log-file")
	switch {
	case logFile != "":
		if err := store.EnsureDir(logFile); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logCloser = f
		w = f
	case isTUI(cmd):
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(os.Getenv("MATHMASTER_LOG_FORMAT"), "json") {
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

func isTUI(cmd *cobra.Command) bool {
	return cmd.Annotations[tuiAnnotation] == "true"
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHMASTER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
