package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/core"
)

// profileArgs keep a reused Chrome profile from looking automated.
var profileArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--no-first-run",
	"--no-default-browser-check",
}

// BrowserFetcher renders pages in a real browser. Every Fetch launches its
// own browser and releases it before returning.
type BrowserFetcher struct {
	opts    core.BrowserOptions
	timeout time.Duration
	log     *zap.Logger

	// profileDir resolves the local Chrome profile; replaced in tests.
	profileDir func() (string, error)
}

// NewBrowser creates a BrowserFetcher for the given engine options.
func NewBrowser(opts core.BrowserOptions, timeout time.Duration, log *zap.Logger) *BrowserFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &BrowserFetcher{
		opts:       opts,
		timeout:    timeout,
		log:        log,
		profileDir: LocalChromeProfile,
	}
}

// Fetch navigates to url and returns the rendered document.
func (b *BrowserFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	if err := core.ValidateURL(url); err != nil {
		return nil, err
	}

	waitUntil, err := waitState(b.opts.WaitFor)
	if err != nil {
		return nil, err
	}

	// Resolve the profile before launching anything so a missing profile
	// costs no browser startup.
	var userDataDir string
	if b.opts.UseProfile {
		if b.opts.Engine == core.EngineChromium {
			userDataDir, err = b.profileDir()
			if err != nil {
				return nil, core.FetchError(err, "Chrome user data directory not found, cannot use user profile (retry with use_user_profile=false)")
			}
			b.log.Info("using Chrome user profile", zap.String("dir", userDataDir))
		} else {
			b.log.Warn("user profile is only supported for chromium, ignoring",
				zap.String("engine", b.opts.Engine))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, core.FetchError(err, "request cancelled before browser launch")
	}

	b.log.Info("fetching URL with browser",
		zap.String("url", url),
		zap.String("engine", b.opts.Engine),
		zap.Bool("headless", b.opts.Headless),
		zap.String("wait_for", b.opts.WaitFor),
		zap.Bool("use_profile", userDataDir != ""),
	)

	html, status, err := b.render(url, userDataDir, waitUntil)
	if err != nil {
		b.log.Error("browser fetch failed", zap.String("url", url), zap.Error(err))
		return nil, core.FetchError(err, "Playwright error while fetching %s", url)
	}

	b.log.Info("fetched URL with browser", zap.String("url", url), zap.Int("bytes", len(html)))

	return &core.FetchResult{
		URL:        url,
		StatusCode: status,
		HTML:       html,
	}, nil
}

// render owns the driver, browser and page for one navigation. Deferred
// closes run page first, then the browser or context, then the driver.
func (b *BrowserFetcher) render(url, userDataDir string, waitUntil *playwright.WaitUntilState) (string, int, error) {
	pw, err := playwright.Run()
	if err != nil {
		return "", 0, fmt.Errorf("starting playwright driver: %w", err)
	}
	defer b.release("driver", pw.Stop)

	launcher, err := engine(pw, b.opts.Engine)
	if err != nil {
		return "", 0, err
	}

	var page playwright.Page
	if userDataDir != "" {
		bctx, err := launcher.LaunchPersistentContext(userDataDir, playwright.BrowserTypeLaunchPersistentContextOptions{
			Headless: playwright.Bool(b.opts.Headless),
			Channel:  playwright.String("chrome"),
			Args:     profileArgs,
		})
		if err != nil {
			return "", 0, fmt.Errorf("launching persistent context: %w", err)
		}
		defer b.release("context", func() error { return bctx.Close() })

		page, err = bctx.NewPage()
		if err != nil {
			return "", 0, fmt.Errorf("opening page: %w", err)
		}
	} else {
		browser, err := launcher.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(b.opts.Headless),
		})
		if err != nil {
			return "", 0, fmt.Errorf("launching %s: %w", b.opts.Engine, err)
		}
		defer b.release("browser", func() error { return browser.Close() })

		bctx, err := browser.NewContext()
		if err != nil {
			return "", 0, fmt.Errorf("creating browser context: %w", err)
		}
		page, err = bctx.NewPage()
		if err != nil {
			return "", 0, fmt.Errorf("opening page: %w", err)
		}
	}
	defer b.release("page", func() error { return page.Close() })

	b.log.Debug("navigating", zap.String("url", url))
	resp, err := page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(b.timeout.Milliseconds())),
		WaitUntil: waitUntil,
	})
	if err != nil {
		return "", 0, fmt.Errorf("navigating to %s: %w", url, err)
	}

	html, err := page.Content()
	if err != nil {
		return "", 0, fmt.Errorf("reading page content: %w", err)
	}

	status := 0
	if resp != nil {
		status = resp.Status()
	}
	return html, status, nil
}

func (b *BrowserFetcher) release(what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		b.log.Debug("closing "+what, zap.Error(err))
	}
}

func engine(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case core.EngineChromium:
		return pw.Chromium, nil
	case core.EngineFirefox:
		return pw.Firefox, nil
	case core.EngineWebKit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unknown browser type: %s", name)
	}
}

func waitState(name string) (*playwright.WaitUntilState, error) {
	switch name {
	case core.WaitLoad:
		return playwright.WaitUntilStateLoad, nil
	case core.WaitDOMContentLoaded:
		return playwright.WaitUntilStateDomcontentloaded, nil
	case core.WaitNetworkIdle:
		return playwright.WaitUntilStateNetworkidle, nil
	default:
		return nil, core.FetchError(nil, "unknown wait strategy: %s", name)
	}
}
