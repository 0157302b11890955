package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/fetch"
)

var (
	flagInstallVerbose bool
	flagInstallCheck   bool
)

var installCmd = &cobra.Command{
	Use:   "install-browsers [engine...]",
	Short: "Download the Playwright driver and browsers used by --fetch-method playwright",
	Long: `Install-browsers downloads the Playwright driver and the requested browser
engines (chromium by default).

Examples:
  html2md install-browsers
  html2md install-browsers chromium firefox webkit
  html2md install-browsers --check`,
	ValidArgs: []string{core.EngineChromium, core.EngineFirefox, core.EngineWebKit},
	Args:      cobra.OnlyValidArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagInstallCheck {
			if fetch.DriverInstalled() {
				fmt.Fprintln(cmd.OutOrStdout(), "Playwright driver is installed")
				return nil
			}
			return errors.New("playwright driver is not installed, run: html2md install-browsers")
		}

		engines := args
		if len(engines) == 0 {
			engines = []string{core.EngineChromium}
		}
		if err := fetch.InstallBrowsers(engines, flagInstallVerbose, appLog.Named("install")); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Installed: %v\n", engines)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the html2md version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "html2md %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(installCmd, versionCmd)

	installCmd.Flags().BoolVar(&flagInstallVerbose, "verbose", false, "Show installer output")
	installCmd.Flags().BoolVar(&flagInstallCheck, "check", false, "Only report whether the driver is installed")
}
