package agents

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Mailer delivers generated reports. Delivery is best-effort; callers log
// failures and continue.
type Mailer interface {
	SendReport(ctx context.Context, recipient, subject, body string) error
}

// LogMailer is the default delivery backend: it records the send instead of
// talking to a mail provider.
type LogMailer struct{}

func (LogMailer) SendReport(ctx context.Context, recipient, subject, body string) error {
	hlog.Infof("LogMailer: report %q for %s (%d bytes)", subject, recipient, len(body))
	return nil
}
