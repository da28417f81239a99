package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
)

const testLogLevel int8 = 0

func TestGetReturnsSameInstance(t *testing.T) {
	first := Get(testLogLevel, Discard())
	if first == nil {
		t.Fatal("Get should return a non-nil logger")
	}
	if second := Get(-1); second != first {
		t.Error("Get should ignore arguments after the first call")
	}
}

func TestGetReturnsNoopWhenUninitialised(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	if got := Get(testLogLevel); got != &defaultNoopLogger {
		t.Error("Get should fall back to the no-op logger")
	}
}

func TestWithLogger(t *testing.T) {
	lgr := Get(testLogLevel, Discard())
	ctx := WithLogger(context.Background(), lgr)
	if got := ctx.Value(loggerContextKey{}); got != lgr {
		t.Fatal("WithLogger should store the logger")
	}
	if again := WithLogger(ctx, lgr); again != ctx {
		t.Error("WithLogger should return the same context for the same logger")
	}

	other := logr.Discard()
	replaced := WithLogger(ctx, &other)
	if replaced.Value(loggerContextKey{}) != &other {
		t.Error("WithLogger should replace a different logger")
	}
}

func TestFromContext(t *testing.T) {
	lgr := Get(testLogLevel, Discard())
	if got := FromContext(context.Background()); got != lgr {
		t.Error("FromContext should fall back to the global logger")
	}

	other := logr.Discard()
	if got := FromContext(WithLogger(context.Background(), &other)); got != &other {
		t.Error("FromContext should prefer the context logger")
	}

	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()
	if got := FromContext(context.Background()); got != &defaultNoopLogger {
		t.Error("FromContext should return the no-op logger when nothing is set")
	}
}

func TestSyncWithoutLogger(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sync panicked: %v", r)
		}
	}()
	Sync()
}

func TestGetGlobalLogger(t *testing.T) {
	orig := globalLogrLogger
	defer func() { globalLogrLogger = orig }()

	mock := logr.Discard()
	globalLogrLogger = &mock
	if GetGlobalLogger() != &mock {
		t.Error("GetGlobalLogger should return the global logger")
	}
	globalLogrLogger = nil
	if GetGlobalLogger() != &defaultNoopLogger {
		t.Error("GetGlobalLogger should return the no-op logger when unset")
	}
	if GetNoopLogger() != &defaultNoopLogger {
		t.Error("GetNoopLogger should return the no-op logger")
	}
}

func TestWithValuesReturnsCopy(t *testing.T) {
	lgr := Get(testLogLevel, Discard())
	if got := WithValues(lgr, InputKey, "city"); got == lgr {
		t.Error("WithValues should return a new logger")
	}
	if got := WithValues(lgr); got == lgr {
		t.Error("WithValues without values should still return a new logger")
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "suggest.log")
	sink, closeFn, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, err := sink.Write([]byte("first\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	closeFn()
	closeFn()

	sink, closeFn, err = OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_, _ = sink.Write([]byte("second\n"))
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "first\nsecond" {
		t.Errorf("log file = %q", got)
	}
}

func TestOpenFileRejectsEmptyPath(t *testing.T) {
	if _, _, err := OpenFile(""); err == nil {
		t.Error("OpenFile should reject an empty path")
	}
}

func TestDiscardSwallowsWrites(t *testing.T) {
	n, err := Discard().Write([]byte("dropped"))
	if err != nil || n != len("dropped") {
		t.Errorf("Discard().Write = %d, %v", n, err)
	}
}
