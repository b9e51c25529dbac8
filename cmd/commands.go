package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/gridfit/internal/config"
	"github.com/oakwood-commons/gridfit/pkg/settings"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print " + settings.CliBinaryName + " version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the merged configuration as YAML",
	Long: `Print the configuration in effect: the built-in defaults overlaid with
--config-file, or $XDG_CONFIG_HOME/gridfit/config.yaml when present.

Use --defaults to print the annotated default file, a starting point for
your own config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if showDefaults, _ := cmd.Flags().GetBool("defaults"); showDefaults {
			_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
			return err
		}
		cfg, err := config.Load(config.ResolvePath(configFile))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var explainCmd = &cobra.Command{
	Use:         "explain [file]",
	Short:       "Show the solver passes that produced each column width",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{outputAnnotation: outputExplain},
	RunE: func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if errors.Is(err, errShowHelp) {
			return cmd.Help()
		}
		return err
	},
}

func init() { //nolint:gochecknoinits
	configCmd.Flags().Bool("defaults", false, "print the built-in default config file")
}

// cliVersionString builds the version line for `version` and --version.
func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}
