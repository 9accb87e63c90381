package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/feat-weaver/internal/config"
	"github.com/KirkDiggler/feat-weaver/internal/orchestrators/compiler"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newModulesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "Print the merged modules in load order",
		Args:  cobra.NoArgs,
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

			output, err := a.compiler.ListModules(cmd.Context(), &compiler.ListModulesInput{
				InstallPaths: cfg.InstallPaths,
			})
			a.writeMetrics(cmd.Context())
			if err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				}).
				Headers("#", "MODULE", "VERSION", "FEATS", "DEPENDENCIES")

			for i, module := range output.LoadOrder {
				deps := make([]string, 0, len(module.Dependencies))
				for _, dep := range module.Dependencies {
					deps = append(deps, dep.Name)
				}
				t.Row(
					strconv.Itoa(i+1),
					module.Name,
					module.Version.String(),
					strconv.Itoa(len(module.Feats)),
					strings.Join(deps, ", "),
				)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
