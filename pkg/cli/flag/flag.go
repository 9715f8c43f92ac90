// Package flag defines the global flags shared by all subcommands and loads
// the configuration file they point to.
package flag

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/config"
	"github.com/urfave/cli/v3"
)

type GlobalFlags struct {
	LogLevel string
	Config   string
}

func (gf *GlobalFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level",
			Sources:     cli.EnvVars("CIMATURITY_LOG_LEVEL"),
			Destination: &gf.LogLevel,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "configuration file path",
			Sources:     cli.EnvVars("CIMATURITY_CONFIG"),
			Destination: &gf.Config,
		},
	}
}

// ReadConfig finds and reads the configuration file.
// If no file is found, the default configuration is returned.
func ReadConfig(fs afero.Fs, configFilePath string) (*config.Config, error) {
	p, err := config.NewFinder(fs).Find(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("find a configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := config.NewReader(fs).Read(cfg, p); err != nil {
		return nil, fmt.Errorf("read a configuration file: %w", err)
	}
	return cfg, nil
}
