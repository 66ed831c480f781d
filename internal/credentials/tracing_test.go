package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/2beens/prtracker/internal/telemetry/tracing"
)

func newRecordingTracer(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() {
		assert.NoError(t, tp.Shutdown(context.Background()))
	})
	return tp, recorder
}

func spanNames(spans []sdktrace.ReadOnlySpan) []string {
	var names []string
	for _, s := range spans {
		names = append(names, s.Name())
	}
	return names
}

func findSpan(t *testing.T, spans []sdktrace.ReadOnlySpan, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, s := range spans {
		if s.Name() == name {
			return s
		}
	}
	require.Failf(t, "span not found", "%s not in %v", name, spanNames(spans))
	return nil
}

func TestSQLiteStore_Spans(t *testing.T) {
	ctx := context.Background()
	tp, recorder := newRecordingTracer(t)

	store, err := OpenSQLiteStore(":memory:", testOrigin, tracing.NewStorageTracer(true, tp.Tracer("test")))
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "tkn"))
	_, ok := store.Get(ctx)
	assert.True(t, ok)
	require.NoError(t, store.Clear(ctx))
	// an empty table is not an error
	_, ok = store.Get(ctx)
	assert.False(t, ok)

	spans := recorder.Ended()
	assert.Equal(t, []string{"storage.set", "storage.get", "storage.clear", "storage.get"}, spanNames(spans))
	for _, s := range spans {
		assert.Contains(t, s.Attributes(), attribute.String("storage.backend", "sqlite"))
		assert.Equal(t, codes.Unset, s.Status().Code, s.Name())
	}

	require.NoError(t, store.Close())
	assert.Error(t, store.Set(ctx, "tkn"))
	failed := recorder.Ended()[len(spans)]
	assert.Equal(t, "storage.set", failed.Name())
	assert.Equal(t, codes.Error, failed.Status().Code)
}

func TestRedisStore_Spans(t *testing.T) {
	ctx := context.Background()
	tp, recorder := newRecordingTracer(t)
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := NewRedisStore(testOrigin, db, tracing.NewStorageTracer(true, tp.Tracer("test")))
	key := storageKeyPrefix + testOrigin + "||" + TokenKey

	mock.ExpectGet(key).RedisNil()
	_, ok := store.Get(ctx)
	assert.False(t, ok)

	mock.ExpectGet(key).SetErr(errors.New("connection refused"))
	_, ok = store.Get(ctx)
	assert.False(t, ok)

	mock.ExpectDel(key).SetVal(1)
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, mock.ExpectationsWereMet())

	spans := recorder.Ended()
	require.Equal(t, []string{"storage.get", "storage.get", "storage.clear"}, spanNames(spans))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "connection refused", spans[1].Status().Description)
	assert.Contains(t, spans[2].Attributes(), attribute.String("storage.backend", "redis"))
}

func TestRedisStore_DisabledTracing(t *testing.T) {
	ctx := context.Background()
	tp, recorder := newRecordingTracer(t)
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := NewRedisStore(testOrigin, db, tracing.NewStorageTracer(false, tp.Tracer("test")))
	mock.ExpectDel(storageKeyPrefix + testOrigin + "||" + TokenKey).SetVal(1)
	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, recorder.Ended())
}

func TestNewRedisClient_CommandSpans(t *testing.T) {
	ctx := context.Background()
	tp, recorder := newRecordingTracer(t)
	otel.SetTracerProvider(tp)

	// nothing listens there, every command fails fast
	redisClient := NewRedisClient("127.0.0.1:1", "")
	defer redisClient.Close()

	store := NewRedisStore(testOrigin, redisClient, tracing.NewStorageTracer(true, tp.Tracer("test")))
	_, ok := store.Get(ctx)
	assert.False(t, ok)

	spans := recorder.Ended()
	storageSpan := findSpan(t, spans, "storage.get")
	assert.Equal(t, codes.Error, storageSpan.Status().Code)

	commandSpan := findSpan(t, spans, "get")
	assert.Equal(t, storageSpan.SpanContext().SpanID(), commandSpan.Parent().SpanID())
	assert.Equal(t, codes.Error, commandSpan.Status().Code)
}
