package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Structural locators for the stats page controls. The filter bar is the
// first section on the page; pagination lives in the results section.
var locators = map[Control]string{
	ControlSeason:     `section:nth-of-type(1) > div > div > div:nth-child(1) label select`,
	ControlSeasonType: `section:nth-of-type(1) > div > div > div:nth-child(2) label select`,
	ControlPageSelect: `section:nth-of-type(2) div[class*="Pagination_content"] select`,
	ControlNext:       `button[aria-label="Next"]`,
}

// chromeBackend drives a headless Chrome tab through chromedp.
type chromeBackend struct {
	browserCtx context.Context
	timing     Timing
}

func newChromeBackend(browserCtx context.Context, timing Timing) *chromeBackend {
	return &chromeBackend{
		browserCtx: browserCtx,
		timing:     timing.withDefaults(),
	}
}

func (b *chromeBackend) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := context.WithTimeout(b.browserCtx, 30*time.Second)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (b *chromeBackend) Lookup(ctx context.Context, control Control) (bool, error) {
	js := fmt.Sprintf(`document.querySelector(%q) !== null`, locators[control])

	var found bool
	if err := b.run(ctx, chromedp.Evaluate(js, &found)); err != nil {
		return false, fmt.Errorf("lookup %s control: %w", control, err)
	}
	return found, nil
}

func (b *chromeBackend) SelectByText(ctx context.Context, control Control, value string) error {
	// Native select controls on the target site re-render content off the
	// change event, so the selection must dispatch one explicitly.
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		for (const opt of el.options) {
			if (opt.text.trim() === %q) {
				el.value = opt.value;
				el.dispatchEvent(new Event('change', { bubbles: true }));
				return true;
			}
		}
		return false;
	})()`, locators[control], value)

	var ok bool
	if err := b.run(ctx, chromedp.Evaluate(js, &ok)); err != nil {
		return fmt.Errorf("select %q on %s control: %w", value, control, err)
	}
	if !ok {
		return fmt.Errorf("select %q on %s control: option not present", value, control)
	}
	return nil
}

func (b *chromeBackend) SelectState(ctx context.Context, control Control) (SelectState, error) {
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return { current: 0, total: 0 };
		const selected = el.options[el.selectedIndex];
		return {
			current: parseInt(selected ? selected.text.trim() : "0", 10) || 0,
			total: el.options.length,
		};
	})()`, locators[control])

	var state struct {
		Current int `json:"current"`
		Total   int `json:"total"`
	}
	if err := b.run(ctx, chromedp.Evaluate(js, &state)); err != nil {
		return SelectState{}, fmt.Errorf("read %s control state: %w", control, err)
	}
	return SelectState{Current: state.Current, Total: state.Total}, nil
}

func (b *chromeBackend) Disabled(ctx context.Context, control Control) (bool, error) {
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return true;
		return el.disabled || (el.className || "").includes("disabled");
	})()`, locators[control])

	var disabled bool
	if err := b.run(ctx, chromedp.Evaluate(js, &disabled)); err != nil {
		return false, fmt.Errorf("read %s control disabled state: %w", control, err)
	}
	return disabled, nil
}

func (b *chromeBackend) Click(ctx context.Context, control Control) error {
	runCtx, cancel := context.WithTimeout(b.browserCtx, 10*time.Second)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.Click(locators[control], chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s control: %w", control, err)
	}
	return nil
}

func (b *chromeBackend) PageSource(ctx context.Context) (string, error) {
	var html string
	if err := b.run(ctx, chromedp.OuterHTML(`html`, &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read page source: %w", err)
	}
	return html, nil
}

// Settle polls the rendered table until its row count holds steady across
// two consecutive probes, bounded by the settle timeout. Timing out is not
// an error: the page is read as-is, matching the site's lack of any stable
// "loading complete" signal.
func (b *chromeBackend) Settle(ctx context.Context) error {
	deadline := time.Now().Add(b.timing.SettleTimeout)
	last := -1

	for time.Now().Before(deadline) {
		var rows int
		if err := b.run(ctx, chromedp.Evaluate(`document.querySelectorAll("table tr").length`, &rows)); err != nil {
			return fmt.Errorf("settle probe: %w", err)
		}
		if rows > 0 && rows == last {
			return nil
		}
		last = rows

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.timing.PollInterval):
		}
	}
	return nil
}

func (b *chromeBackend) Close() error {
	return nil
}

func (b *chromeBackend) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(b.browserCtx, 10*time.Second)
	defer cancel()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return chromedp.Run(runCtx, actions...)
}
