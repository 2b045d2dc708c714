package cli

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"blogd/internal/app/errors"
	"blogd/internal/config"
)

// CLI prints the output of the commands that do not start the server
type CLI interface {
	Execute(opts *Options, cfg *config.Config) error
}

// cli writes command output to a single writer
type cli struct {
	out io.Writer
}

// NewCLI creates a new cli instance
func NewCLI(out io.Writer) CLI {
	return &cli{out: out}
}

// Execute prints help, version or the effective config; cfg is only read by the config command
func (c *cli) Execute(opts *Options, cfg *config.Config) error {
	switch opts.Type {
	case CommandHelp:
		_, err := fmt.Fprint(c.out, RenderHelp())
		return err
	case CommandVersion:
		_, err := fmt.Fprintf(c.out, "%s\n\n", RenderTitle())
		return err
	case CommandConfig:
		out, err := RenderConfig(cfg)
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(c.out, out)

		return err
	default:
		return fmt.Errorf("%w: %d", errors.ErrUnknownCommand, opts.Type)
	}
}

// RenderConfig renders the configuration as YAML in the layout accepted by the config file
func RenderConfig(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return string(data), nil
}
