package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/toyz/decorator/internal/cli"
	"github.com/toyz/decorator/internal/utils"
)

// newLogger builds the structured logger: human-readable console output, or
// JSON lines for machine consumption
func newLogger(level, format string, out io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if format == "json" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		config := zap.NewDevelopmentEncoderConfig()
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(config)
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(out), lvl)), nil
}

// newDiagnostics picks the console verbosity from the configuration
func newDiagnostics(config *cli.Config, stdout, stderr io.Writer, redirected bool) *utils.DiagnosticSystem {
	var diagnostics *utils.DiagnosticSystem
	switch {
	case config.Quiet:
		diagnostics = utils.NewQuietDiagnostics()
	case config.Verbose:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if redirected {
		diagnostics.SetOutput(stdout, stderr)
	}
	return diagnostics
}
