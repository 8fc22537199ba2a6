// Where: cli/internal/infra/logging/logging.go
// What: Diagnostic logger construction.
// Why: Keep request tracing out of normal output unless --verbose is given.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a no-op logger unless verbose is set, in which case debug
// records are written to out in console format.
func New(out io.Writer, verbose bool) *zap.Logger {
	if !verbose || out == nil {
		return zap.NewNop()
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(out),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}
