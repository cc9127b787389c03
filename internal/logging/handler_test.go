// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("aweblog", "1.0.0", "json", &buf)

	logger.Info("test message", "key", "value")

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "aweblog", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "value", entry["key"])
}

func TestSetup_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("aweblog", "1.0.0", "text", &buf)

	logger.Info("test message")

	output := buf.String()
	assert.Contains(t, output, "msg=\"test message\"")
	assert.Contains(t, output, "service=aweblog")
	assert.Contains(t, output, "version=1.0.0")
}

func TestSetup_DefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("aweblog", "1.0.0", "", &buf)

	logger.Info("test")

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "empty format should produce JSON output")
}

func TestServiceHandler_TraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("aweblog", "1.0.0", "json", &buf)

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	logger.InfoContext(ctx, "with trace")

	var entry map[string]any
	err = json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Equal(t, traceID.String(), entry["trace_id"])
	assert.Equal(t, spanID.String(), entry["span_id"])
}

func TestServiceHandler_NoTraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("aweblog", "1.0.0", "json", &buf)

	logger.InfoContext(context.Background(), "without trace")

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	_, hasTrace := entry["trace_id"]
	assert.False(t, hasTrace)
	_, hasSpan := entry["span_id"]
	assert.False(t, hasSpan)
}

func TestServiceHandler_WithAttrsPreservesIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("aweblog", "1.0.0", "json", &buf)

	logger.With("component", "web").Info("attached")

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Equal(t, "web", entry["component"])
	assert.Equal(t, "aweblog", entry["service"])
}

func TestServiceHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("aweblog", "1.0.0", "json", &buf)

	logger.WithGroup("request").Info("grouped", "method", "GET")

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	group, ok := entry["request"].(map[string]any)
	require.True(t, ok, "expected request group in output")
	assert.Equal(t, "GET", group["method"])
}

func TestEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("aweblog", "1.0.0", "json", &buf)

	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
