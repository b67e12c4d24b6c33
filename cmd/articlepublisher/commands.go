package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ArticlesPublisher/internal/app"
	"ArticlesPublisher/internal/config"
	"ArticlesPublisher/internal/content/title"
	"ArticlesPublisher/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "articlepublisher",
		Short: "Generate and publish location/category SEO articles to WordPress",
		Long: `articlepublisher picks an unposted (country, city, category) combination,
asks Gemini for an article, derives slug, title and meta description,
cross-links related articles and publishes the result to WordPress.

Configuration comes from defaults, the YAML file named by
ARTICLE_PUBLISHER_CONFIG, a .env file and environment variables.`,
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd(), newOnceCmd(), newSlugCmd(), newTitleCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Publish articles in a loop until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.Logging.Level)

			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("startup failed", "error", err)
				return err
			}
			defer func() {
				if err := application.Close(); err != nil {
					logger.Error("shutdown failed", "error", err)
				}
			}()

			if err := application.Run(cmd.Context()); err != nil {
				logger.Error("application stopped", "error", err)
				return err
			}
			return nil
		},
	}
}

func newOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Produce and publish a single article",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.Logging.Level)

			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("startup failed", "error", err)
				return err
			}
			defer func() { _ = application.Close() }()

			result, err := application.RunOnce(cmd.Context())
			if err != nil {
				logger.Error("run failed", "error", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", result.Draft.Title, result.Published.Link)
			return nil
		},
	}
}

func newSlugCmd() *cobra.Command {
	var (
		maxLength int
		strategy  string
	)

	cmd := &cobra.Command{
		Use:   "slug <text>",
		Short: "Print the slug generated for a text",
		Example: `  articlepublisher slug "Ремонт квартир у Варшаві"
  articlepublisher slug --max 20 --translit slug "Туризм у Празі"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := app.NewSlugBuilder(strategy)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, using table\n", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), builder.Generate(strings.Join(args, " "), maxLength))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxLength, "max", 0, "maximum slug length (0 for default)")
	cmd.Flags().StringVar(&strategy, "translit", config.DefaultTransliterator, "transliterator strategy (table, slug)")
	return cmd
}

func newTitleCmd() *cobra.Command {
	var maxLength int

	cmd := &cobra.Command{
		Use:   "title <text>",
		Short: "Print the optimized title and both case variants",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := title.Optimize(strings.Join(args, " "), maxLength)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chosen:        %s\n", res.Chosen)
			fmt.Fprintf(out, "title case:    %s\n", res.TitleCase)
			fmt.Fprintf(out, "sentence case: %s\n", res.SentenceCase)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxLength, "max", 0, "maximum title length in characters (0 for default)")
	return cmd
}
