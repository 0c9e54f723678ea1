package debug

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })
	return logs
}

func TestLogAny(t *testing.T) {
	logs := observe(t)
	LogAny("fields", []string{"a", "b"})
	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "fields", entries[0].Message)
	require.Equal(t, []any{"a", "b"}, entries[0].ContextMap()["value"])
}

func TestLogfStringer(t *testing.T) {
	logs := observe(t)
	Logf("n=%s\n", stringer("one"))
	require.Equal(t, []string{"n=one"}, messages(logs))
}

func TestSetLoggerWhileLogging(t *testing.T) {
	logs := observe(t)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Logf("tick %d", j)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				SetLogger(Logger())
			}
		}()
	}
	wg.Wait()
	require.Len(t, logs.All(), 400)
}

func TestSetLoggerNil(t *testing.T) {
	observe(t)
	SetLogger(nil)
	require.NotNil(t, Logger())
}

type stringer string

func (s stringer) String() string { return string(s) }

func messages(logs *observer.ObservedLogs) []string {
	var res []string
	for _, e := range logs.All() {
		res = append(res, e.Message)
	}
	return res
}
