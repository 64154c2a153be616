package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTraceHandlerAttachesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &traceHandler{next: log.NewJSONHandler(&buf, nil)}
	l := log.New(h)

	ctx := context.WithValue(context.Background(), TraceIDKey, "abc-123")
	l.InfoContext(ctx, "hello")
	require.Contains(t, buf.String(), `"trace_id":"abc-123"`)

	buf.Reset()
	l.InfoContext(context.Background(), "no trace")
	require.False(t, strings.Contains(buf.String(), "trace_id"))
}
