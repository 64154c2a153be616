package logger

import (
	"context"
	"io"
	log "log/slog"
	"os"
)

// TraceIDKey 请求链路 ID 在 Context 与 gin.Keys 中的键名
const TraceIDKey = "trace_id"

var LogWriter io.Writer

// traceHandler 在每条日志上附加 ctx 携带的链路 ID
type traceHandler struct {
	next log.Handler
}

func (h *traceHandler) Enabled(ctx context.Context, level log.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *traceHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if id, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String(TraceIDKey, id))
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &traceHandler{next: h.next.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) log.Handler {
	return &traceHandler{next: h.next.WithGroup(name)}
}

func InitLogger() {
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})
	LogWriter = os.Stdout

	log.SetDefault(log.New(&traceHandler{next: hStdout}))
}
