package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, "schema.yaml")
	p.OnParseComplete(ctx, "schema.yaml", 3, time.Second, nil)
	p.OnBuildStart(ctx, 3)
	p.OnBuildComplete(ctx, 3, 2, time.Second, nil)
	p.OnRenderStart(ctx, "png")
	p.OnRenderComplete(ctx, "png", 1024, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	i := NoopIntrospectHooks{}
	i.OnIntrospectStart(ctx, "mysql")
	i.OnIntrospectComplete(ctx, "mysql", 12, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Introspect().(NoopIntrospectHooks); !ok {
		t.Error("Introspect() should return NoopIntrospectHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customIntrospect := &testIntrospectHooks{}
	SetIntrospectHooks(customIntrospect)
	if Introspect() != customIntrospect {
		t.Error("SetIntrospectHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnParseComplete(ctx, "shop.yaml", 4, time.Millisecond, nil)
	h.OnRenderComplete(ctx, "svg", 0, time.Millisecond, errors.New("boom"))
	h.OnCacheHit(ctx, "artifact")

	out := buf.String()
	for _, want := range []string{"parse complete", "shop.yaml", "render failed", "boom", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnBuildStart(context.Background(), 2)
	if buf.Len() != 0 {
		t.Errorf("LogHooks should log at debug level only, got %q", buf.String())
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testIntrospectHooks struct{ NoopIntrospectHooks }
