package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/feat-weaver/internal/config"
	"github.com/KirkDiggler/feat-weaver/internal/errors"
	"github.com/KirkDiggler/feat-weaver/internal/repositories/snapshot"
)

func newCacheCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the package snapshot cache",
	}

	cmd.AddCommand(newCachePurgeCmd(root))

	return cmd
}

func newCachePurgeCmd(root *rootOptions) *cobra.Command {
	var (
		corruptOnly bool
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete cached package snapshots",
		Long: `purge scans the snapshot cache and deletes its entries. With --corrupt
only the entries that no longer decode are removed, which is useful after a
format change left stale records behind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			if a.snapshots == nil {
				return errors.FailedPrecondition("snapshot cache is not configured (cache.redis_addr)")
			}

			out := cmd.OutOrStdout()
			found, err := a.snapshots.Purge(cmd.Context(), snapshot.PurgeInput{
				CorruptOnly: corruptOnly,
				DryRun:      true,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "checked %d snapshots, %d selected\n", found.Checked, len(found.Keys))
			if len(found.Keys) == 0 {
				return nil
			}
			for _, key := range found.Keys {
				fmt.Fprintf(out, "  - %s\n", key)
			}

			if !yes {
				fmt.Fprint(out, "delete these entries? (yes/no): ")
				response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && err != io.EOF {
					return errors.Wrap(err, "failed to read confirmation")
				}
				if strings.TrimSpace(response) != "yes" {
					fmt.Fprintln(out, "aborted, no changes made")
					return nil
				}
			}

			purged, err := a.snapshots.Purge(cmd.Context(), snapshot.PurgeInput{CorruptOnly: corruptOnly})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted %d snapshots\n", len(purged.Keys))
			return nil
		},
	}

	cmd.Flags().BoolVar(&corruptOnly, "corrupt", false, "only delete entries that fail to decode")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
