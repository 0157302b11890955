package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/cache"
	"github.com/gaurav-prasanna/html2md/core/output"
	"github.com/gaurav-prasanna/html2md/core/render"
)

// Flag variables.
var (
	flagImages         bool
	flagTables         bool
	flagLinks          bool
	flagTimeout        time.Duration
	flagMaxSize        int64
	flagFetchMethod    string
	flagBrowser        string
	flagHeadless       bool
	flagWaitFor        string
	flagUseProfile     bool
	flagReturnSummary  bool
	flagMaxTokens      int
	flagSectionID      string
	flagSectionHeading string
	flagJSON           bool
	flagOutputDir      string
)

var convertCmd = &cobra.Command{
	Use:   "convert <url>",
	Short: "Convert one URL to Markdown and print the result",
	Long: `Convert runs the same pipeline as the html_to_markdown tool on one URL and
prints the tool's response. Documents over --max-tokens are summarized and
their full Markdown is saved under --temp-dir.

Examples:
  html2md convert https://example.com
  html2md convert https://example.com/docs --section-heading Installation
  html2md convert https://spa.example.com --fetch-method playwright --wait-for load
  html2md convert https://example.com --json --output-dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()

	// Content toggles.
	f.BoolVar(&flagImages, "include-images", true, "Keep images")
	f.BoolVar(&flagTables, "include-tables", true, "Keep tables")
	f.BoolVar(&flagLinks, "include-links", true, "Keep links (off keeps only their text)")

	// Fetching.
	f.DurationVar(&flagTimeout, "timeout", core.DefaultTimeout, "Fetch timeout (5s-120s)")
	f.Int64Var(&flagMaxSize, "max-size", core.DefaultMaxSize, "Maximum download size in bytes")
	f.StringVar(&flagFetchMethod, "fetch-method", string(core.MethodFetch), "fetch or playwright")
	f.StringVar(&flagBrowser, "browser", core.EngineChromium, "Browser engine: chromium, firefox, webkit")
	f.BoolVar(&flagHeadless, "headless", true, "Run the browser without a window")
	f.StringVar(&flagWaitFor, "wait-for", core.WaitNetworkIdle, "load, domcontentloaded or networkidle")
	f.BoolVar(&flagUseProfile, "use-user-profile", false, "Reuse the local Chrome profile (chromium only)")

	// Size handling.
	f.BoolVar(&flagReturnSummary, "return-summary", false, "Always return a summary")
	f.IntVar(&flagMaxTokens, "max-tokens", core.DefaultMaxTokens, "Token budget before summarizing")
	f.StringVar(&flagSectionID, "section-id", "", "Return only the section with this HTML id")
	f.StringVar(&flagSectionHeading, "section-heading", "", "Return only the section under this heading")

	// Output.
	f.BoolVar(&flagJSON, "json", false, "Print structured JSON instead of text")
	f.StringVar(&flagOutputDir, "output-dir", "", "Write the result to a file named after the URL in this directory")
}

func convertRequest(rawURL string) core.Request {
	req := core.DefaultRequest(rawURL)
	req.Toggles = core.Toggles{Images: flagImages, Tables: flagTables, Links: flagLinks}
	req.Timeout = flagTimeout
	req.MaxSize = flagMaxSize
	req.Method = core.FetchMethod(flagFetchMethod)
	req.Browser = core.BrowserOptions{
		Engine:     flagBrowser,
		Headless:   flagHeadless,
		WaitFor:    flagWaitFor,
		UseProfile: flagUseProfile,
	}
	req.ReturnSummary = flagReturnSummary
	req.MaxTokens = flagMaxTokens
	req.SectionID = flagSectionID
	req.SectionHeading = flagSectionHeading
	return req
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, log := appCfg, appLog

	req := convertRequest(args[0])
	if err := req.Validate(); err != nil {
		return errors.New(render.Error(err))
	}

	conv, err := newConverter(cfg, cache.New(log.Named("cache")), log, nil)
	if err != nil {
		return err
	}

	resp, err := conv.Convert(cmd.Context(), req)
	if err != nil {
		return errors.New(render.Error(err))
	}

	data, ext := []byte(render.Text(resp)), ".md"
	if flagJSON {
		if data, err = render.JSON(resp); err != nil {
			return err
		}
		ext = ".json"
	}

	if flagOutputDir == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.WriteForURL(req.URL, data, ext)
	if err != nil {
		return err
	}
	log.Info("result written", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}
