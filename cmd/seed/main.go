package main

import (
	"fmt"
	"os"
	"path/filepath"

	"support-bot/pkg/config"
	"support-bot/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := prepareOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Clean raw intent and FAQ datasets into the catalogs the bot loads",
		Long: `seed reads the raw intents and FAQ datasets, trims and lowercases tags,
removes duplicate patterns, responses and questions, drops incomplete entries
and writes the processed catalogs. Unchanged raw files are skipped unless
--force is given.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			if opts.outIntents == "" {
				opts.outIntents = cfg.Catalog.IntentsPath
			}
			if opts.outFaqs == "" {
				opts.outFaqs = cfg.Catalog.FaqsPath
			}
			return prepareCatalogs(opts, logger.Component("seed"))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.rawIntents, "raw-intents", filepath.Join("data", "raw", "intents.json"), "raw intents dataset")
	flags.StringVar(&opts.rawFaqs, "raw-faqs", filepath.Join("data", "raw", "Ecommerce_FAQ_Chatbot_dataset.json"), "raw FAQ dataset")
	flags.StringVar(&opts.outIntents, "out-intents", "", "processed intents catalog (default CATALOG_INTENTS_PATH)")
	flags.StringVar(&opts.outFaqs, "out-faqs", "", "processed FAQ catalog (default CATALOG_FAQS_PATH)")
	flags.StringVar(&opts.cacheFile, "cache", filepath.Join("data", ".seed_cache.json"), "file hash cache")
	flags.BoolVar(&opts.force, "force", false, "reprocess files even if unchanged")

	return cmd
}
