package sonartel

import "go.uber.org/zap"

// Logger is the structured-logging facade every component accepts
// through Collaborators rather than reaching for a package-global
// logger (spec §2 ambient logging section; grounded on the teacher's
// verbose-int plumbing in main.go/file.go, generalized to zap's leveled,
// structured logger since verbosity ints don't carry fields).
type Logger = *zap.Logger

// NewDiscardLogger returns a logger that drops everything, for callers
// that don't want diagnostics (tests, library embedding).
func NewDiscardLogger() Logger {
	return zap.NewNop()
}

// NewDevelopmentLogger returns a human-readable console logger, used by
// the CLI by default.
func NewDevelopmentLogger() (Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	l, err := cfg.Build()
	if err != nil {
		return nil, IOError(err)
	}
	return l, nil
}
