package feature

import (
	"github.com/hexforge/mapgen/internal/logging"
)

// RandomGeneratorInterface defines the interface for random number generation.
type RandomGeneratorInterface interface {
	Intn(n int) int
	Float64() float64
}

// LoggerInterface abstracts logging operations for dependency injection.
type LoggerInterface interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) LoggerInterface
}

// DefaultLoggerWrapper wraps the internal logging package.
type DefaultLoggerWrapper struct{}

// NewDefaultLoggerWrapper creates a new default logger wrapper.
func NewDefaultLoggerWrapper() LoggerInterface {
	return &DefaultLoggerWrapper{}
}

func (l *DefaultLoggerWrapper) Debug(msg string, keysAndValues ...interface{}) {
	logger := logging.GetLogger()
	logger.Debug(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Info(msg string, keysAndValues ...interface{}) {
	logger := logging.GetLogger()
	logger.Info(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Warn(msg string, keysAndValues ...interface{}) {
	logger := logging.GetLogger()
	logger.Warn(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) Error(msg string, keysAndValues ...interface{}) {
	logger := logging.GetLogger()
	logger.Error(msg, keysAndValues...)
}

func (l *DefaultLoggerWrapper) With(keysAndValues ...interface{}) LoggerInterface {
	// For now, return self for simplicity
	return l
}
