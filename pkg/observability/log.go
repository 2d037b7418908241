package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// PipelineHooks, CacheHooks and IntrospectHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, schemaPath string) {
	h.logger.Debug("parse started", "schema", schemaPath)
}

func (h *LogHooks) OnParseComplete(_ context.Context, schemaPath string, tableCount int, d time.Duration, err error) {
	h.done("parse", err, "schema", schemaPath, "tables", tableCount, "took", d)
}

func (h *LogHooks) OnBuildStart(_ context.Context, tableCount int) {
	h.logger.Debug("build started", "tables", tableCount)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, nodeCount, edgeCount int, d time.Duration, err error) {
	h.done("build", err, "nodes", nodeCount, "edges", edgeCount, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render started", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.done("render", err, "format", format, "bytes", size, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnIntrospectStart(_ context.Context, dialect string) {
	h.logger.Debug("introspect started", "driver", dialect)
}

func (h *LogHooks) OnIntrospectComplete(_ context.Context, dialect string, tableCount int, d time.Duration, err error) {
	h.done("introspect", err, "driver", dialect, "tables", tableCount, "took", d)
}

func (h *LogHooks) done(stage string, err error, kv ...any) {
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" complete", kv...)
}

var (
	_ PipelineHooks   = (*LogHooks)(nil)
	_ CacheHooks      = (*LogHooks)(nil)
	_ IntrospectHooks = (*LogHooks)(nil)
)
