package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dshills/padkeys/internal/config"
)

func newConfigCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as TOML",
			Long: `Print the configuration after defaults, the config file and PADKEYS_*
environment variables have been applied.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				data, err := config.Encode(e.cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config and keymap locations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path := e.configPath
				if path == "" {
					path = config.DefaultPath()
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "config   %s\n", path)
				fmt.Fprintf(out, "keymaps  %s\n", e.cfg.Keyboard.KeymapDir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "env",
			Short: "List the supported environment variables",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				vars := config.EnvVars()
				names := make([]string, 0, len(vars))
				for name := range vars {
					names = append(names, name)
				}
				sort.Strings(names)

				rows := make([][]string, 0, len(names)+1)
				rows = append(rows, []string{config.EnvConfigPath, "(config file)"})
				for _, name := range names {
					rows = append(rows, []string{name, vars[name]})
				}
				fmt.Fprintln(cmd.OutOrStdout(), newTable([]string{"Variable", "Setting"}, rows, 1))
				return nil
			},
		},
	)
	return cmd
}
