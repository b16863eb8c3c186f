package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/urbanform/nearby/configs"
	"github.com/urbanform/nearby/internal/config"
	"github.com/urbanform/nearby/internal/output"
)

func newConfigCmd() *cobra.Command {
	var initConfig bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize nearby configuration",
		Long: `Config prints the effective configuration: built-in defaults, merged
with .nearby.yaml from the current directory if present, merged with
NEARBY_* environment overrides.

With --init it writes a default .nearby.yaml instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if initConfig {
				return runConfigInit(cmd)
			}
			return runConfigShow(cmd)
		},
	}

	cmd.Flags().BoolVar(&initConfig, "init", false, "Write a default .nearby.yaml in the current directory")

	return cmd
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command) error {
	out := output.New(cmd.OutOrStdout())

	path := filepath.Join(".", config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := os.WriteFile(path, []byte(configs.ProjectConfigTemplate), 0o644); err != nil {
		return err
	}
	out.Successf("wrote %s", path)
	return nil
}
