package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sestinj/amicable/internal/config"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long:  "Writes the default configuration to --config (default ~/.config/amicable/config.yaml) and prints its path.",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return errors.New("cannot determine home directory; pass --config")
	}
	// No newEnv: the existing file may be the broken one being replaced.
	e := &env{stdout: cmd.OutOrStdout()}
	return e.doConfigInit(path, configForce)
}

func (e *env) doConfigInit(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, path)
	return nil
}
