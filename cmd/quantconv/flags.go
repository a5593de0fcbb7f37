package main

import (
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/quantconv/internal/convert"
)

const (
	envTool   = "QUANTCONV_TOOL"
	envConfig = "QUANTCONV_CONFIG"
)

type options struct {
	src   string
	out   string
	quant string

	tool     string
	toolArgs []string
	json     bool

	configPath string

	logLevel  string
	logFormat string
	debug     bool
}

func (o *options) conversionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "src",
			Usage:       "path to original model file (required)",
			Destination: &o.src,
		},
		&cli.StringFlag{
			Name:        "out",
			Usage:       "path to output quantized model (required)",
			Destination: &o.out,
		},
		&cli.StringFlag{
			Name:        "q",
			Aliases:     []string{"quant"},
			Usage:       "quantization mode label, passed through as-is",
			Value:       convert.DefaultQuant,
			Destination: &o.quant,
		},
		&cli.StringFlag{
			Name:        "tool",
			Usage:       "external converter to run as <tool> <src> <out> --quant <q>",
			Sources:     cli.EnvVars(envTool),
			Destination: &o.tool,
		},
		&cli.StringSliceFlag{
			Name:        "tool-arg",
			Usage:       "extra argument placed before <src> when running --tool (repeatable)",
			Destination: &o.toolArgs,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print the result as JSON",
			Destination: &o.json,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config file",
			Value:       configPath(),
			Sources:     cli.EnvVars(envConfig),
			Destination: &o.configPath,
		},
	}
}

func (o *options) loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &o.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, plain, json, text)",
			Value:       "pretty",
			Destination: &o.logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &o.debug,
		},
	}
}

// converter returns the external tool when one is configured, the stub
// otherwise.
func (o *options) converter() convert.Converter {
	if o.tool == "" {
		return convert.Stub{}
	}
	return convert.Tool{Command: o.tool, Args: o.toolArgs}
}
