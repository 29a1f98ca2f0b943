package monitoring

import (
	"fmt"

	"github.com/getsentry/sentry-go"
)

func InitSentry(dsn, env, version string) error {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          "clinical-site@" + version,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

// CaptureError reports err with extra context. Without a configured client it is a no-op.
func CaptureError(err error, context map[string]interface{}) {
	hub := sentry.CurrentHub()
	if hub == nil || hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range context {
			scope.SetExtra(k, v)
		}
		hub.CaptureException(err)
	})
}
