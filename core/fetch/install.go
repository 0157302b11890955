package fetch

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// InstallBrowsers downloads the Playwright driver and the given engines.
func InstallBrowsers(engines []string, verbose bool, log *zap.Logger) error {
	log.Info("installing Playwright driver and browsers", zap.Strings("engines", engines))
	err := playwright.Install(&playwright.RunOptions{
		Browsers: engines,
		Verbose:  verbose,
	})
	if err != nil {
		return fmt.Errorf("installing Playwright browsers: %w", err)
	}
	log.Info("Playwright installation complete")
	return nil
}

// DriverInstalled reports whether the Playwright driver is present.
func DriverInstalled() bool {
	driver, err := playwright.NewDriver(&playwright.RunOptions{
		SkipInstallBrowsers: true,
		Verbose:             false,
	})
	if err != nil {
		return false
	}
	// --version fails when the driver binary is missing.
	return driver.Command("--version").Run() == nil
}
