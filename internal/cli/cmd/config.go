package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/bnema/tiler/internal/cli/styles"
	"github.com/bnema/tiler/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show the effective configuration, locate the config file, or create one with default settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	Long:  `Write the default configuration to the config file. An existing file is never overwritten.`,
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	return toml.NewEncoder(os.Stdout).Encode(a.Config)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewLayoutRenderer(a.Theme)

	if used := a.ConfigManager.GetConfigFile(); used != "" {
		fmt.Println(renderer.RenderPath("Config file", used))
		return nil
	}

	path := configFile
	if path == "" {
		if path, err = config.GetConfigFile(); err != nil {
			fmt.Println(renderer.RenderError(err))
			return nil
		}
	}
	fmt.Println(renderer.RenderPath("No config file, defaults in use. Expected at", path))
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewLayoutRenderer(a.Theme)

	path := configFile
	if path == "" {
		if path, err = config.GetConfigFile(); err != nil {
			return err
		}
	}
	if _, statErr := os.Stat(path); statErr == nil {
		fmt.Println(renderer.RenderPath("Config file already exists at", path))
		return nil
	}

	if err := config.WriteDefault(path); err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	fmt.Println(renderer.RenderSuccess("Default configuration written"))
	fmt.Println(renderer.RenderPath("Config file", path))
	return nil
}
