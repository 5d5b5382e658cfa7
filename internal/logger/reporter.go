package logger

import "context"

// Reporter is the default failure sink: it logs every reported error as a
// server fault. Deployments wanting a different observability stack inject
// their own model.Reporter instead.
type Reporter struct {
	logger *Logger
}

// NewReporter creates a Reporter writing to l.
func NewReporter(l *Logger) *Reporter {
	return &Reporter{logger: l}
}

// Report logs err. It never fails and never panics.
func (r *Reporter) Report(_ context.Context, err error) {
	r.logger.Error("unanticipated failure", "error", err.Error())
}
