package form

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/agent-form-bridge/internal/providers"
)

// NewRootCmd creates the form client command tree.
func NewRootCmd() *cobra.Command {
	var (
		apiURL  string
		timeout time.Duration
		debug   bool
	)

	newClient := func() *Client {
		return NewClient(apiURL, timeout)
	}

	rootCmd := &cobra.Command{
		Use:   "agentform",
		Short: "Interactive form for the AI agent service",
		Long: `agentform collects a system prompt, a provider and model, tool toggles and a query,
sends them to the agent service and prints the agent's final answer.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), newClient(), NewUI(cmd.OutOrStdout()))
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", envOr("AGENT_API_URL", DefaultAPIURL), "Agent service base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newAskCmd(newClient))
	rootCmd.AddCommand(newModelsCmd(newClient))

	return rootCmd
}

func newAskCmd(newClient func() *Client) *cobra.Command {
	var f Form
	var provider string

	cmd := &cobra.Command{
		Use:   "ask [QUERY...]",
		Short: "Send one query without prompts",
		Example: `  agentform ask --provider Groq --model llama-3.3-70b-versatile --reasoning "Is 17 prime?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := providers.Parse(provider)
			if err != nil {
				return err
			}
			f.Provider = p
			f.Query = strings.Join(args, " ")
			return Submit(cmd.Context(), newClient(), NewUI(cmd.OutOrStdout()), f)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", string(providers.Groq), "Model provider (Groq or OpenAI)")
	cmd.Flags().StringVar(&f.Model, "model", "llama-3.3-70b-versatile", "Model name")
	cmd.Flags().StringVar(&f.SystemPrompt, "system", "", "System prompt")
	cmd.Flags().BoolVar(&f.AllowSearch, "search", false, "Allow web search")
	cmd.Flags().BoolVar(&f.AllowReasoning, "reasoning", false, "Enable reasoning tools")

	return cmd
}

func newModelsCmd(newClient func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the selectable models per provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := newClient().ModelsOrDefault(cmd.Context())
			names := make([]string, 0, len(catalog))
			for p := range catalog {
				names = append(names, string(p))
			}
			sort.Strings(names)
			for _, p := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", p)
				for _, m := range catalog[providers.Provider(p)] {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", m)
				}
			}
			return nil
		},
	}
}

func runInteractive(ctx context.Context, c *Client, ui *UI) error {
	ui.Title()
	catalog := c.ModelsOrDefault(ctx)

	var f Form
	for {
		next, err := PromptForm(catalog, f)
		if errors.Is(err, terminal.InterruptErr) {
			return nil
		}
		if err != nil {
			return err
		}
		f = next

		// errors are already rendered; the form stays open
		_ = Submit(ctx, c, ui, f)

		again, err := PromptAgain()
		if err != nil || !again {
			return nil
		}
	}
}

func setupLogger(debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
