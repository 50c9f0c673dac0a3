package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	moodtrack "github.com/cyberFlowTech/moodtrack-go"
)

var (
	sessionID    string
	trendLimit   int
	trendWords   []string
	department   string
	ageGroup     string
	responseType string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat interactively; one message per line, Ctrl+D to quit",
	RunE:  runChat,
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Print keyword hit counts for a session's recent messages",
	RunE:  runTrend,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Set a session's department, age group and response type",
	RunE:  runProfile,
}

func init() {
	for _, c := range []*cobra.Command{chatCmd, trendCmd, profileCmd} {
		c.Flags().StringVarP(&sessionID, "session", "s", "", "session ID (chat generates one when empty)")
	}
	trendCmd.Flags().StringSliceVarP(&trendWords, "keywords", "k", nil, "keywords to count (default: stress keywords)")
	trendCmd.Flags().IntVarP(&trendLimit, "limit", "n", 0, "number of recent messages")
	profileCmd.Flags().StringVar(&department, "department", "", "department")
	profileCmd.Flags().StringVar(&ageGroup, "age-group", "", "age group")
	profileCmd.Flags().StringVar(&responseType, "response-type", string(moodtrack.ResponseEmpathy), "共感 or アドバイス")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, closeRepo, err := newAssistant(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session: %s\n", sessionID)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		bundle, err := a.HandleMessage(ctx, sessionID, line)
		if errors.Is(err, moodtrack.ErrProfileIncomplete) {
			fmt.Fprintln(out, "プロフィール（部署・年代）を先に設定してください。")
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "[%s] %s\n", bundle.Mood.DisplayName(), bundle.Reply)
		if bundle.Advice != "" {
			fmt.Fprintf(out, "  advice:  %s\n", bundle.Advice)
		}
		if bundle.Support != "" {
			fmt.Fprintf(out, "  support: %s\n", bundle.Support)
		}
	}
	return scanner.Err()
}

func runTrend(cmd *cobra.Command, args []string) error {
	if sessionID == "" {
		return errors.New("--session is required")
	}
	ctx := cmd.Context()
	a, closeRepo, err := newAssistant(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	keywords := trendWords
	if len(keywords) == 0 {
		keywords = a.Lexicon().Stress.Raw
	}
	seq, err := a.KeywordTrend(ctx, sessionID, keywords, trendLimit)
	if err != nil {
		return err
	}
	var counts []string
	for n := range seq {
		counts = append(counts, fmt.Sprint(n))
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(counts, " "))
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	if sessionID == "" {
		return errors.New("--session is required")
	}
	ctx := cmd.Context()
	a, closeRepo, err := newAssistant(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	p := moodtrack.Profile{
		Department:   department,
		AgeGroup:     ageGroup,
		ResponseType: moodtrack.ResponseType(responseType),
	}
	if err := a.SetProfile(ctx, sessionID, p); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "プロフィールを更新しました。")
	return nil
}
