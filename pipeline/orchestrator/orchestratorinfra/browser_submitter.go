package orchestratorinfra

import (
	"context"

	"github.com/autocareer/autocareer/internal/automation/submit"
	"github.com/autocareer/autocareer/pipeline/orchestrator"
	"github.com/autocareer/autocareer/pkg/logx"
)

// BrowserSubmitter runs each submission in a fresh Playwright session so
// one hung page cannot poison the next attempt
type BrowserSubmitter struct {
	controller *submit.Controller
	newDriver  func() (submit.Driver, error)
}

// NewBrowserSubmitter creates a submitter backed by real browser sessions
func NewBrowserSubmitter(controller *submit.Controller) *BrowserSubmitter {
	return &BrowserSubmitter{
		controller: controller,
		newDriver: func() (submit.Driver, error) {
			return submit.NewPlaywrightDriver()
		},
	}
}

// NewBrowserSubmitterWithDriver creates a submitter using a custom driver
// factory
func NewBrowserSubmitterWithDriver(controller *submit.Controller, newDriver func() (submit.Driver, error)) *BrowserSubmitter {
	return &BrowserSubmitter{
		controller: controller,
		newDriver:  newDriver,
	}
}

// Submit opens a browser session, runs the submission attempt, and tears
// the session down
func (b *BrowserSubmitter) Submit(ctx context.Context, req submit.Request) (submit.Result, error) {
	driver, err := b.newDriver()
	if err != nil {
		return submit.Result{Status: submit.StatusFailed}, orchestrator.ErrBrowserFailed().WithCause(err)
	}
	defer func() {
		if err := driver.Close(); err != nil {
			logx.Warnf("Failed to close browser session: %v", err)
		}
	}()

	return b.controller.Run(ctx, driver, req)
}
