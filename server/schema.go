package server

import "github.com/gaurav-prasanna/html2md/core"

// ToolName is the single tool this server exposes.
const ToolName = "html_to_markdown"

const toolDescription = "Convert HTML from a URL to clean Markdown format. " +
	"Preserves tables, images, and links while removing unnecessary elements " +
	"like scripts, styles, navigation, headers, and footers. " +
	"Perfect for reducing HTML size for AI context. " +
	"Large documents are returned as a summary with a table of contents; " +
	"use section_id or section_heading to fetch one section."

func boolProp(description string, def bool) map[string]any {
	return map[string]any{"type": "boolean", "description": description, "default": def}
}

func intProp(description string, def, min, max int64) map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": description,
		"default":     def,
		"minimum":     min,
		"maximum":     max,
	}
}

func enumProp(description, def string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "default": def, "enum": values}
}

// inputSchema is the JSON schema published for html_to_markdown.
func inputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "URL of the webpage to convert to Markdown",
			},
			"include_images": boolProp("Whether to include images in the Markdown output", true),
			"include_tables": boolProp("Whether to include tables in the Markdown output", true),
			"include_links":  boolProp("Whether to include links in the Markdown output", true),
			"timeout": intProp("Request timeout in seconds",
				int64(core.DefaultTimeout.Seconds()), int64(core.MinTimeout.Seconds()), int64(core.MaxTimeout.Seconds())),
			"max_size": intProp("Maximum content size in bytes",
				core.DefaultMaxSize, core.MinMaxSize, core.MaxMaxSize),
			"use_cache": boolProp("Whether to use cached results if available", false),
			"cache_ttl": intProp("Cache time-to-live in seconds",
				int64(core.DefaultCacheTTL.Seconds()), int64(core.MinCacheTTL.Seconds()), int64(core.MaxCacheTTL.Seconds())),
			"fetch_method": enumProp("Method to fetch HTML: 'fetch' for plain HTTP, 'playwright' for JavaScript-rendered pages",
				string(core.MethodFetch), string(core.MethodFetch), string(core.MethodPlaywright)),
			"browser_type": enumProp("Browser engine used with fetch_method=playwright",
				core.EngineChromium, core.EngineChromium, core.EngineFirefox, core.EngineWebKit),
			"headless": boolProp("Run the browser without a window (playwright only)", true),
			"wait_for": enumProp("When to consider the page loaded (playwright only)",
				core.WaitNetworkIdle, core.WaitLoad, core.WaitDOMContentLoaded, core.WaitNetworkIdle),
			"use_user_profile": boolProp("Reuse the local Chrome profile for its cookies and sessions (chromium only)", false),
			"return_summary":   boolProp("Return a summary even when the document fits in max_tokens", false),
			"max_tokens": intProp("Token budget before a summary is returned instead of the full document",
				core.DefaultMaxTokens, core.MinMaxTokens, core.MaxMaxTokens),
			"section_id": map[string]any{
				"type":        "string",
				"description": "Extract only the section with this HTML id (e.g. 'installation'). Mutually exclusive with section_heading",
			},
			"section_heading": map[string]any{
				"type":        "string",
				"description": "Extract only the section under the heading containing this text. Mutually exclusive with section_id",
			},
		},
		"required": []string{"url"},
	}
}
