// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHCLogAdapterLevels(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	adapted := HCLogAdapter(New("bridge", DEBUG, NewConsoleSink(buffer, false)))

	adapted.Trace("trace line")
	adapted.Debug("debug line")
	adapted.Info("info line")
	adapted.Warn("warn line")
	adapted.Error("error line")

	logs := buffer.String()
	assert.Contains(t, logs, " - bridge - DEBUG - trace line")
	assert.Contains(t, logs, " - bridge - DEBUG - debug line")
	assert.Contains(t, logs, " - bridge - INFO - info line")
	assert.Contains(t, logs, " - bridge - WARNING - warn line")
	assert.Contains(t, logs, " - bridge - ERROR - error line")
}

func TestHCLogAdapterRendersPairs(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	adapted := HCLogAdapter(New("bridge", DEBUG, NewConsoleSink(buffer, false)))

	adapted.Info("order filled", "symbol", "BTCUSDT", "qty", 3)
	assert.Contains(t, buffer.String(), " - bridge - INFO - order filled: symbol=BTCUSDT qty=3")

	buffer.Reset()
	withImplied := adapted.With("side", "long")
	withImplied.Warn("partial fill", "qty", 1)
	assert.Contains(t, buffer.String(), " - bridge - WARNING - partial fill: side=long qty=1")
	assert.Equal(t, []any{"side", "long"}, withImplied.ImpliedArgs())
}

func TestHCLogAdapterLevelMapping(t *testing.T) {
	t.Parallel()

	log := New("bridge", INFO, NewConsoleSink(bytes.NewBuffer(nil), false))
	adapted := HCLogAdapter(log)

	assert.Equal(t, hclog.Info, adapted.GetLevel())
	assert.True(t, adapted.IsInfo())
	assert.False(t, adapted.IsDebug())

	adapted.SetLevel(hclog.Warn)
	assert.Equal(t, WARNING, log.Level())
	assert.Equal(t, hclog.Warn, adapted.GetLevel())
	assert.True(t, adapted.IsWarn())
	assert.False(t, adapted.IsInfo())
}

func TestHCLogAdapterNamed(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	adapted := HCLogAdapter(New("bridge", INFO, NewConsoleSink(buffer, false)))

	named := adapted.Named("child")
	require.Equal(t, "bridge.child", named.Name())

	named.Info("named line")
	assert.Contains(t, buffer.String(), " - bridge.child - INFO - named line")
}

func TestHCLogAdapterStandardLogger(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	adapted := HCLogAdapter(New("bridge", INFO, NewConsoleSink(buffer, false)))

	stdLogger := adapted.StandardLogger(nil)
	stdLogger.Println("line from the standard library")

	assert.Contains(t, buffer.String(), " - bridge - INFO - line from the standard library")
}
