package middleware

import (
	"io"
	"testing"

	"github.com/chybatronik/goAccountFinder/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter(io.Discard, "debug", "goAccountFinder", "test")
}

// testDone is closed when the test ends
func testDone(t *testing.T) <-chan struct{} {
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	return done
}
