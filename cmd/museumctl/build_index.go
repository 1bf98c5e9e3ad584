package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/museum-search/internal/app"
)

func newBuildIndexCmd(c *cli) *cobra.Command {
	var corpusPath, modelPath, indexPath string

	cmd := &cobra.Command{
		Use:   "build-index",
		Short: "Build the nearest-neighbor index from the topic model",
		Long: `build-index reads the corpus and the topic model's per-document topic
distributions, checks that they are aligned row for row, L2-normalizes every
distribution and writes the index blob. Nothing is written on failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := app.OptionsFromConfig(&c.cfg)
			opts.Logger = c.logger
			if corpusPath != "" {
				opts.CorpusPath = corpusPath
			}
			if modelPath != "" {
				opts.TopicModelPath = modelPath
			}
			if indexPath != "" {
				opts.IndexPath = indexPath
			}

			f, err := app.BuildIndex(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d rows, %d topics\n", opts.IndexPath, f.Len(), f.Dim())
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "override data.corpus_path")
	cmd.Flags().StringVar(&modelPath, "topic-model", "", "override data.topic_model_path")
	cmd.Flags().StringVar(&indexPath, "index", "", "override data.index_path")
	return cmd
}
