// Package submit executes the final, safety-gated step of the pipeline:
// opening an application form in a real browser, filling the resolved
// fields, capturing evidence, and optionally clicking submit.
package submit

import (
	"context"
	"fmt"
	"time"

	"github.com/autocareer/autocareer/internal/automation/fields"
	"github.com/autocareer/autocareer/pkg/fsx"
	"github.com/autocareer/autocareer/pkg/logx"
)

// State tracks the controller's progress through one attempt
type State string

const (
	StateIdle           State = "idle"
	StateNavigated      State = "navigated"
	StateFieldsResolved State = "fields_resolved"
	StateFilled         State = "filled"
	StateCaptured       State = "captured"
	StateSubmitted      State = "submitted"
	StateDryRunComplete State = "dry_run_complete"
	StateErrored        State = "errored"
)

// Status is the terminal outcome of a submission attempt
type Status string

const (
	StatusSubmitted      Status = "submitted"
	StatusDryRun         Status = "dry_run"
	StatusAborted        Status = "aborted"
	StatusManualRequired Status = "manual_required"
	StatusFailed         Status = "failed"
)

// submitSelectors is the fallback chain tried in order when clicking
// the form's submit control
var submitSelectors = []string{
	"button[type='submit']",
	"input[type='submit']",
	"button:has-text('Submit')",
	"button:has-text('Apply')",
	"button:has-text('Send')",
}

// Request describes one submission attempt
type Request struct {
	JobURL string
	// Values maps semantic roles to the text that should land in them
	Values map[fields.Role]string
	// DryRun stops after evidence capture without touching submit
	DryRun bool
	// ScreenshotKey names the stored screenshot; empty derives one from
	// the timestamp
	ScreenshotKey string
	// Gate overrides the default confirmation gate; used by callers that
	// need to expose cancellation
	Gate *ConfirmationGate
}

// Result reports what a submission attempt did. FieldsDetected counts the
// fillable inputs found on the page; FieldsBound counts the roles matched
// to one of them, so a detected/bound gap flags inputs the resolver could
// not place.
type Result struct {
	Status         Status        `json:"status"`
	FieldsDetected int           `json:"fields_detected"`
	FieldsBound    int           `json:"fields_bound"`
	FieldsFilled   int           `json:"fields_filled"`
	Undetected     []fields.Role `json:"undetected,omitempty"`
	ScreenshotPath string        `json:"screenshot_path,omitempty"`
	SubmitSelector string        `json:"submit_selector,omitempty"`
}

// Controller walks one browser session through navigate, resolve, fill,
// capture, and gated submit
type Controller struct {
	resolver *fields.Resolver
	fs       fsx.FileSystem
	delay    time.Duration
	clock    Clock

	state State
}

// NewController creates a submission controller. Screenshots are written
// through fs; delay configures the confirmation window.
func NewController(resolver *fields.Resolver, fs fsx.FileSystem, delay time.Duration) *Controller {
	return &Controller{
		resolver: resolver,
		fs:       fs,
		delay:    delay,
		state:    StateIdle,
	}
}

// State returns the controller's current position in the attempt
func (c *Controller) State() State { return c.state }

// Run executes one attempt against driver. The driver's lifecycle belongs
// to the caller. Every terminal path returns a Result; the error is
// non-nil only for StatusFailed.
func (c *Controller) Run(ctx context.Context, driver Driver, req Request) (Result, error) {
	c.state = StateIdle
	result := Result{Status: StatusFailed}

	if req.JobURL == "" {
		c.state = StateErrored
		return result, fmt.Errorf("submission requires a navigable job url")
	}

	if err := driver.Navigate(ctx, req.JobURL); err != nil {
		c.state = StateErrored
		return result, err
	}
	c.state = StateNavigated

	available, err := driver.DiscoverFields(ctx)
	if err != nil {
		c.state = StateErrored
		return result, err
	}

	resolution := c.resolver.Resolve(available, req.Values)
	c.state = StateFieldsResolved
	result.FieldsDetected = len(available)
	result.FieldsBound = resolution.Bound()
	result.Undetected = resolution.Undetected

	if resolution.Bound() == 0 {
		// Nothing recognizable to fill; a human has to take over
		result.Status = StatusManualRequired
		return result, nil
	}

	for _, binding := range resolution.Bindings {
		if err := driver.Fill(ctx, binding.Field.Selector, binding.Value); err != nil {
			logx.Warnf("submit: fill %s (%s) failed: %v", binding.Role, binding.Field.Selector, err)
			continue
		}
		result.FieldsFilled++
	}
	c.state = StateFilled

	path, err := c.capture(ctx, driver, req.ScreenshotKey)
	if err != nil {
		// Evidence is mandatory before any click
		c.state = StateErrored
		return result, err
	}
	c.state = StateCaptured
	result.ScreenshotPath = path

	if req.DryRun {
		c.state = StateDryRunComplete
		result.Status = StatusDryRun
		return result, nil
	}

	gate := req.Gate
	if gate == nil {
		gate = NewConfirmationGate(c.delay, c.clock)
	}
	if !gate.Wait(ctx) {
		result.Status = StatusAborted
		return result, nil
	}

	selector, err := driver.ClickFirst(ctx, submitSelectors)
	if err != nil {
		logx.Warnf("submit: no submit control found on %s: %v", req.JobURL, err)
		result.Status = StatusManualRequired
		return result, nil
	}
	c.state = StateSubmitted
	result.Status = StatusSubmitted
	result.SubmitSelector = selector
	return result, nil
}

// capture screenshots the page and persists it through the filesystem
func (c *Controller) capture(ctx context.Context, driver Driver, key string) (string, error) {
	shot, err := driver.Screenshot(ctx)
	if err != nil {
		return "", err
	}

	if key == "" {
		key = fmt.Sprintf("submission-%d.png", time.Now().UnixNano())
	}
	path := c.fs.Join("screenshots", key)
	if err := c.fs.WriteFile(ctx, path, shot); err != nil {
		return "", fmt.Errorf("store screenshot: %w", err)
	}
	return path, nil
}
