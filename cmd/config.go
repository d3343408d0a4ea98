package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/zugferd/config"
)

var (
	configInitSink  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the zugferd configuration file",
	Long: `Manage $HOME/.zugferd/config.yaml (or config.yaml in the --config directory).

Environment variables ZUGFERD_SINK_DIR and LOG_LEVEL override the file.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file",
	Long: `Write the current settings to the configuration file.

Examples:
  zugferd config init --sink ~/invoices/attachments
  zugferd --config ./conf config init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		if configInitSink != "" {
			c.SinkDir = configInitSink
		}
		path, err := initConfig(&c, configInitForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	configInitCmd.Flags().StringVarP(&configInitSink, "sink", "d", "", "Sink directory for extracted attachments")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing configuration file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

// initConfig saves c unless a configuration file already exists and force
// is not set. It returns the path written.
func initConfig(c *config.Config, force bool) (string, error) {
	path, err := config.Path()
	if err != nil {
		return "", err
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
	}
	if err := c.Save(); err != nil {
		return "", err
	}
	return path, nil
}

func showConfig(w io.Writer, c *config.Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
