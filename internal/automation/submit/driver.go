package submit

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/autocareer/autocareer/internal/automation/fields"
)

// Driver abstracts the browser session behind the submission controller
// so the state machine is testable without a real browser
type Driver interface {
	Navigate(ctx context.Context, url string) error
	DiscoverFields(ctx context.Context) ([]fields.FormField, error)
	Fill(ctx context.Context, selector, value string) error
	Screenshot(ctx context.Context) ([]byte, error)
	// ClickFirst clicks the first visible element among selectors and
	// returns the selector that matched
	ClickFirst(ctx context.Context, selectors []string) (string, error)
	Close() error
}

// PlaywrightDriver drives a Chromium page through Playwright
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

// NewPlaywrightDriver launches a headless Chromium session
func NewPlaywrightDriver() (*PlaywrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return &PlaywrightDriver{pw: pw, browser: browser, page: page}, nil
}

// Navigate loads url and waits for the DOM to settle
func (d *PlaywrightDriver) Navigate(_ context.Context, url string) error {
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	})
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// DiscoverFields enumerates fillable inputs and textareas on the page
func (d *PlaywrightDriver) DiscoverFields(_ context.Context) ([]fields.FormField, error) {
	locator := d.page.Locator("input, textarea")
	count, err := locator.Count()
	if err != nil {
		return nil, fmt.Errorf("enumerate form fields: %w", err)
	}

	discovered := make([]fields.FormField, 0, count)
	for i := 0; i < count; i++ {
		el := locator.Nth(i)

		tag, err := el.Evaluate("el => el.tagName.toLowerCase()", nil)
		if err != nil {
			continue
		}
		tagName, _ := tag.(string)

		field := fields.FormField{
			Tag:         tagName,
			Type:        attr(el, "type"),
			Name:        attr(el, "name"),
			ID:          attr(el, "id"),
			Placeholder: attr(el, "placeholder"),
		}

		// Skip inputs the pipeline can never fill
		switch field.Type {
		case "hidden", "submit", "button", "checkbox", "radio", "file":
			continue
		}

		field.Selector = selectorFor(tagName, field, i)
		if field.ID != "" {
			if label, err := d.page.Locator(fmt.Sprintf("label[for=%q]", field.ID)).First().TextContent(playwright.LocatorTextContentOptions{
				Timeout: playwright.Float(200),
			}); err == nil {
				field.Label = strings.TrimSpace(label)
			}
		}

		discovered = append(discovered, field)
	}
	return discovered, nil
}

// Fill types value into the element at selector
func (d *PlaywrightDriver) Fill(_ context.Context, selector, value string) error {
	if err := d.page.Locator(selector).First().Fill(value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

// Screenshot captures the full page as PNG bytes
func (d *PlaywrightDriver) Screenshot(_ context.Context) ([]byte, error) {
	shot, err := d.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return shot, nil
}

// ClickFirst tries each selector in order and clicks the first visible one
func (d *PlaywrightDriver) ClickFirst(_ context.Context, selectors []string) (string, error) {
	for _, sel := range selectors {
		el := d.page.Locator(sel).First()
		visible, err := el.IsVisible()
		if err != nil || !visible {
			continue
		}
		if err := el.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(5000),
		}); err != nil {
			continue
		}
		return sel, nil
	}
	return "", fmt.Errorf("no clickable element among %d selectors", len(selectors))
}

// Close tears down the page, browser, and driver process
func (d *PlaywrightDriver) Close() error {
	var firstErr error
	if d.page != nil {
		if err := d.page.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if d.browser != nil {
		if err := d.browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func attr(el playwright.Locator, name string) string {
	v, err := el.GetAttribute(name)
	if err != nil {
		return ""
	}
	return v
}

// selectorFor builds a stable selector, preferring id then name and
// falling back to positional nth
func selectorFor(tag string, field fields.FormField, index int) string {
	if field.ID != "" {
		return "#" + field.ID
	}
	if field.Name != "" {
		return fmt.Sprintf("%s[name=%q]", tag, field.Name)
	}
	return fmt.Sprintf("%s >> nth=%d", "input, textarea", index)
}
