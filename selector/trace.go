package selector

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

// Tracer follows the parser through the grammar: each production entered
// and left, each token consumed and each failure.
type Tracer interface {
	Enter(string)
	Leave(string)
	Consume(Token)
	Error(string, error)
}

func NoopTracer() Tracer {
	return discardTracer{}
}

type discardTracer struct{}

func (_ discardTracer) Enter(_ string)          {}
func (_ discardTracer) Leave(_ string)          {}
func (_ discardTracer) Consume(_ Token)         {}
func (_ discardTracer) Error(_ string, _ error) {}

type stdioTracer struct {
	logger *slog.Logger
	depth  int
}

func TraceStdout() Tracer {
	return TraceWriter(os.Stdout)
}

func TraceStderr() Tracer {
	return TraceWriter(os.Stderr)
}

func TraceWriter(w io.Writer) Tracer {
	tracer := stdioTracer{
		logger: stdioLogger(w),
	}
	return &tracer
}

func stdioLogger(w io.Writer) *slog.Logger {
	opts := slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return slog.New(slog.NewTextHandler(w, &opts))
}

func (t *stdioTracer) Enter(rule string) {
	t.depth++
	t.logger.Debug("start production", "rule", rule, "depth", t.depth)
}

func (t *stdioTracer) Leave(rule string) {
	t.logger.Debug("done production", "rule", rule, "depth", t.depth)
	t.depth--
}

func (t *stdioTracer) Consume(tok Token) {
	t.logger.Debug("token consumed", "token", tok.String(), "pos", tok.Pos, "depth", t.depth)
}

func (t *stdioTracer) Error(rule string, err error) {
	attrs := []any{"rule", rule, "depth", t.depth, "err", err.Error()}
	var serr *SyntaxError
	if errors.As(err, &serr) {
		attrs = append(attrs, "pos", serr.Pos)
	}
	t.logger.Error("production failed", attrs...)
}
