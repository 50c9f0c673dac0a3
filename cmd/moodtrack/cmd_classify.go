package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [message]",
	Short: "Classify a single message without touching any session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeRepo, err := newAssistant(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRepo()

		message := strings.Join(args, " ")
		res, err := a.Classifier().ClassifyDetailed(message)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mood:       %s (%s)\n", res.Mood, res.Mood.DisplayName())
		fmt.Fprintf(out, "rule:       %s\n", res.Rule)
		fmt.Fprintf(out, "emotions:   %s\n", res.Verdict)
		fmt.Fprintf(out, "nouns:      %s\n", strings.Join(res.Nouns.Sorted(), ", "))
		fmt.Fprintf(out, "folded:     %s\n", res.Normalized.Folded)
		fmt.Fprintf(out, "sensitive:  %t\n", a.Safety().DetectSensitive(message))
		fmt.Fprintf(out, "harassment: %t\n", a.Safety().DetectHarassment(message))
		return nil
	},
}
