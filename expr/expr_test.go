package expr

import "testing"

// recordingLogger captures warnings emitted by the package during a test.
type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *recordingLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *recordingLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.warnings = append(l.warnings, msg)
}
func (l *recordingLogger) Error(msg string, keysAndValues ...interface{}) {}
func (l *recordingLogger) Fatal(msg string, keysAndValues ...interface{}) {}

func captureWarnings(t *testing.T) *recordingLogger {
	t.Helper()
	rec := &recordingLogger{}
	prev := logger
	logger = rec
	t.Cleanup(func() {
		logger = prev
	})
	return rec
}
