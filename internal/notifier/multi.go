package notifier

import (
	"context"
	"errors"

	"github.com/mauv0809/riverwatch/internal/war"
)

// Multi fans every notification out to all of its notifiers. A failing notifier does not
// stop the others; the errors are joined.
type Multi []Notifier

var _ Notifier = Multi(nil)

func (m Multi) SendScanSummary(ctx context.Context, result *war.ReconcileResult, dryRun bool) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.SendScanSummary(ctx, result, dryRun))
	}
	return errors.Join(errs...)
}

func (m Multi) SendImportSummary(ctx context.Context, result *war.ImportResult, status string, dryRun bool) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.SendImportSummary(ctx, result, status, dryRun))
	}
	return errors.Join(errs...)
}
