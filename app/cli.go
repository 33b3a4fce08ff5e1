package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/config"
	"github.com/htol/bookshop/logger"
	"github.com/htol/bookshop/view"
)

// CLI runs the bookshop command line and returns the process exit code
func CLI(args []string) int {
	cmd := newRootCmd(config.Load(), os.Stdout)
	cmd.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error("Runtime error", "error", err)
		return 1
	}
	return 0
}

func newRootCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "bookshop",
		Short:         "Bookstore storefront server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		},
	}
	root.SetOut(out)

	// CLI flags override environment variables
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	root.PersistentFlags().StringVar(&cfg.Store.SeedPath, "seed", cfg.Store.SeedPath, "YAML catalog to seed the store with")

	root.AddCommand(newServeCmd(cfg), newCatalogCmd(cfg), newRecommendCmd(cfg))
	return root
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			srv, err := NewServer(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				logger.Info("Closing store...")
				if err := srv.Close(); err != nil {
					logger.Error("Error closing storage", "error", err)
				}
			}()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().IntVarP(&cfg.Server.Port, "port", "p", cfg.Server.Port, "Port number")
	return cmd
}

func newCatalogCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the seeded catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer storage.Close()

			books, err := storage.ListBooks(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tPRICE\tGENRE\tFEATURED")
			for _, b := range books {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n", b.ID, b.Title, b.Author, view.PriceLabel(b.Price), b.Genre, b.Featured)
			}
			return tw.Flush()
		},
	}
}

func newRecommendCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <book-id>",
		Short: "Ask for recommendations for one catalog book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Recommend.APIKey == "" {
				return fmt.Errorf("GEMINI_API_KEY is not set")
			}
			ctx := cmd.Context()

			storage, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer storage.Close()

			b, err := storage.FindBook(ctx, args[0])
			if err != nil {
				return err
			}

			rec, err := newRecommender(ctx, cfg.Recommend)
			if err != nil {
				return err
			}
			return printRecommendations(cmd.OutOrStdout(), b.Title, rec.Recommend(ctx, b))
		},
	}
	cmd.Flags().IntVar(&cfg.Recommend.Timeout, "timeout", cfg.Recommend.Timeout, "Seconds to wait for the model")
	return cmd
}

func printRecommendations(w io.Writer, title string, items []book.PartialBook) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, view.NoRecommendations)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Because you viewed %q:\n", title)
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Title, it.Author, it.Tagline)
	}
	return tw.Flush()
}
