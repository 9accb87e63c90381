package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/feat-weaver/internal/config"
	"github.com/KirkDiggler/feat-weaver/internal/orchestrators/compiler"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate spells, boosts and wiring for every installed feat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			output, err := a.compiler.Compile(cmd.Context(), &compiler.CompileInput{
				InstallPaths: cfg.InstallPaths,
				OutputDir:    cfg.OutputDir,
			})
			a.writeMetrics(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s\n", output.RunID)
			fmt.Fprintf(out, "packages: %d read, %d skipped (%d from cache)\n",
				output.Load.PackagesRead, output.Load.PackagesSkipped, output.Load.CacheHits)
			fmt.Fprintf(out, "modules: %d\n", len(output.LoadOrder))
			fmt.Fprintf(out, "feats: %d (%d without generated spells)\n",
				output.Weave.Feats, output.Weave.FeatsUnsupported)
			fmt.Fprintf(out, "spells: %d, boosts: %d\n", output.Weave.Spells, output.Weave.Boosts)
			for _, path := range output.Files.Written {
				fmt.Fprintf(out, "wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory, overrides output_dir")

	return cmd
}
