package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/grounded/internal/gemini"
	"github.com/jackzampolin/grounded/internal/tools"
)

var (
	askInteraction string
	askMaxTokens   int

	thinkInteraction string
	thinkMaxTokens   int

	searchMaxResults int
	searchMaxTokens  int

	followupInteraction string
	followupLevel       string
	followupMaxTokens   int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Quick web search with minimal thinking",
	Long: `Quick web search with minimal thinking. Returns structured results
with titles, URLs, and snippets.

Use this to find sources before asking follow-up questions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		maxTokens := searchMaxTokens
		if maxTokens <= 0 {
			maxTokens = cfg.Tools.SearchMaxTokens
		}
		req := tools.SearchRequest(args[0], searchMaxResults, maxTokens)
		return printResult(cmd, client.CreateInteraction(cmd.Context(), req))
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Get a grounded answer with balanced reasoning",
	Long: `Get a grounded answer with balanced reasoning. The model automatically
searches the web when needed for current information.

To follow up on a previous response, pass its interaction id:

  grounded ask "and its population?" --interaction <id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		maxTokens := askMaxTokens
		if maxTokens <= 0 {
			maxTokens = cfg.Tools.AskMaxTokens
		}
		req := tools.AskRequest(args[0], askInteraction, maxTokens)
		return printResult(cmd, client.CreateInteraction(cmd.Context(), req))
	},
}

var thinkCmd = &cobra.Command{
	Use:   "think [query]",
	Short: "Deep reasoning for complex problems",
	Long: `Get an answer with deep reasoning for complex, multi-step problems.

To follow up on a previous response, pass its interaction id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		maxTokens := thinkMaxTokens
		if maxTokens <= 0 {
			maxTokens = cfg.Tools.ThinkingMaxTokens
		}
		req := tools.ThinkingRequest(args[0], thinkInteraction, maxTokens)
		return printResult(cmd, client.CreateInteraction(cmd.Context(), req))
	},
}

var followupCmd = &cobra.Command{
	Use:   "followup [query]",
	Short: "Continue a previous conversation",
	Long: `Continue a previous conversation at a chosen thinking level.

The interaction id comes from the footer of a previous ask/think response.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := gemini.ParseThinkingLevel(followupLevel)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		maxTokens := followupMaxTokens
		if maxTokens <= 0 {
			maxTokens = cfg.Tools.AskMaxTokens
		}
		req := tools.FollowUpRequest(args[0], followupInteraction, level, maxTokens)
		return printResult(cmd, client.CreateInteraction(cmd.Context(), req))
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchMaxResults, "max-results", 10, "Maximum number of results to return")
	searchCmd.Flags().IntVar(&searchMaxTokens, "max-tokens", 0, "Maximum response length in tokens")

	askCmd.Flags().StringVarP(&askInteraction, "interaction", "i", "", "Interaction id from a previous response")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 0, "Maximum response length in tokens")

	thinkCmd.Flags().StringVarP(&thinkInteraction, "interaction", "i", "", "Interaction id from a previous response")
	thinkCmd.Flags().IntVar(&thinkMaxTokens, "max-tokens", 0, "Maximum response length in tokens")

	followupCmd.Flags().StringVarP(&followupInteraction, "interaction", "i", "", "Interaction id to continue (required)")
	followupCmd.Flags().StringVar(&followupLevel, "thinking-level", "medium", "Thinking level: minimal, low, medium, or high")
	followupCmd.Flags().IntVar(&followupMaxTokens, "max-tokens", 0, "Maximum response length in tokens")
	followupCmd.MarkFlagRequired("interaction")
}
