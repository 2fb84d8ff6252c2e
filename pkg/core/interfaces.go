package core

// Logger interface for raytracer logging.
// *logrus.Logger and *logrus.Entry both satisfy it.
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
