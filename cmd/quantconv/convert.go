package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/quantconv/internal/convert"
	"github.com/samcharles93/quantconv/internal/logger"
)

func runConvert(ctx context.Context, cmd *cli.Command, opts *options) error {
	cfg, cfgErr := loadConfig(opts.configPath)
	applyConfig(cmd.IsSet, cfg, opts)

	level := logger.ParseLevel(opts.logLevel)
	if opts.debug {
		level = slog.LevelDebug
	}
	log := logger.ForFormat(cmd.Root().ErrWriter, opts.logFormat, level).
		With("run_id", uuid.NewString())
	if cfgErr != nil {
		log.Warn("ignoring config file", "path", opts.configPath, "err", cfgErr)
	}
	ctx = logger.WithContext(ctx, log)

	req := convert.Request{Src: opts.src, Out: opts.out, Quant: opts.quant}
	conv := opts.converter()
	log.Debug("conversion requested",
		"src", req.Src,
		"out", req.Out,
		"quant", req.Quant,
		"converter", conv.Name(),
	)

	res, err := conv.Convert(ctx, req)
	if err != nil {
		return err
	}
	if !res.Stub {
		log.Info("conversion complete", "artifact", res.Artifact)
	}

	w := cmd.Root().Writer
	if opts.json {
		return writeJSON(w, res)
	}
	return convert.Report(w, res)
}

func writeJSON(w io.Writer, res convert.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
