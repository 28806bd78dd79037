package logger

// NoOp is a logger that discards all messages. Useful in tests.
type NoOp struct{}

// NewNoOp creates a new no-op logger.
func NewNoOp() Interface {
	return &NoOp{}
}

// Debug does nothing.
func (l *NoOp) Debug(_ string, _ ...any) {}

// Info does nothing.
func (l *NoOp) Info(_ string, _ ...any) {}

// Warn does nothing.
func (l *NoOp) Warn(_ string, _ ...any) {}

// Error does nothing.
func (l *NoOp) Error(_ string, _ ...any) {}

// Fatal does nothing.
func (l *NoOp) Fatal(_ string, _ ...any) {}

// With returns the same no-op logger.
func (l *NoOp) With(_ ...any) Interface { return l }

// Sync does nothing.
func (l *NoOp) Sync() error { return nil }
