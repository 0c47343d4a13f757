package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrsinham/medintel/internal/config"
	"github.com/mrsinham/medintel/internal/nav"
)

// newRoutesCmd prints where the back action leads from every screen.
func newRoutesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the back navigation table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := nav.NewRouter(nav.WithLogger(o.logger))
			if err != nil {
				return err
			}
			table := r.Table()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCREEN\tBACK")
			for _, s := range nav.AllScreens() {
				fmt.Fprintf(tw, "%s\t%s\n", s, table[s])
			}
			return tw.Flush()
		},
	}
}

func newConfigCmd(o *options) *cobra.Command {
	var force bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Long: `Writes the configuration currently in effect (defaults, file, environment
and flags) to the path given by --config. An existing file is kept unless
--force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(o.configPath); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", o.configPath)
				}
			}
			if err := config.SaveToYAML(o.cfg, o.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", o.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(initCmd)
	return configCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "medintel %s\n", version)
		},
	}
}
