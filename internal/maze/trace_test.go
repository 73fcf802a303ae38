package maze

import (
	"context"
	"mazepath/internal/grid"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestPathFindSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	m, _ := newTestMaze(t, []string{
		"....",
		"##.#",
		"....",
	})
	_, err := m.PathFindCoords(context.Background(), grid.Coord{Col: 0, Row: 0}, grid.Coord{Col: 0, Row: 2})
	require.NoError(t, err)
	_, err = m.PathFindCoords(context.Background(), grid.Coord{Col: 0, Row: 1}, grid.Coord{Col: 0, Row: 2})
	require.Error(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "maze.PathFind", ok.Name())
	attrs := spanAttrs(ok)
	assert.True(t, attrs["search.found"].AsBool())
	assert.Equal(t, int64(6), attrs["search.steps"].AsInt64())
	assert.Equal(t, int64(4), attrs["maze.width"].AsInt64())

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Len(t, failed.Events(), 1, "error should be recorded on the span")
}
