package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmaster/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:         "play",
	Short:       "Start a session for a grade and topic, skipping setup",
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, topic, err := gradeAndTopic(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, grade, topic)
	},
}

func init() {
	addSessionFlags(playCmd)
}

// addSessionFlags registers the required --grade and --topic flags.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("grade", "g", "", `Grade: 1-8, "high school" or "college"`)
	cmd.Flags().StringP("topic", "t", "", "Topic, e.g. algebra or number-systems")
	cmd.MarkFlagRequired("grade")
	cmd.MarkFlagRequired("topic")
}

func gradeAndTopic(cmd *cobra.Command) (quiz.Grade, quiz.Topic, error) {
	g, _ := cmd.Flags().GetString("grade")
	t, _ := cmd.Flags().GetString("topic")

	grade, err := quiz.ParseGrade(g)
	if err != nil {
		return "", "", fmt.Errorf("--grade: %w", err)
	}
	topic, err := quiz.ParseTopic(t)
	if err != nil {
		return "", "", fmt.Errorf("--topic: %w", err)
	}
	return grade, topic, nil
}
