// Package mdreport converts report-style Markdown into a self-contained HTML
// page, with optional PDF export through headless Chrome.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := mdreport.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdreport.Input{
//	    Markdown: "# Q3 Report\n\n_Generated 2024_\n\n**Total: $5**",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.html", result.HTML, 0644)
//
// # Supported Markdown
//
// The renderer understands a fixed set of line-oriented blocks:
//
//   - "# " and "## " headings
//   - a meta line wrapped in underscores (_Generated 2024_)
//   - a "---" horizontal rule
//   - a line of one or more images (![alt](src))
//   - pipe tables, where cells reading "Yes" get class "cell-yes"
//   - "- " lists and "1. " lists with one level of nested ordered items
//   - paragraphs with **bold** spans
//
// Anything else is skipped. Content that was dropped, such as a one-line
// table, is reported in ConvertResult.Diagnostics.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := mdreport.NewConverter(
//	    mdreport.WithTitle("Quarterly Report"),
//	    mdreport.WithStyle("default"),
//	    mdreport.WithAssetPath("/path/to/custom/assets"),
//	    mdreport.WithLogger(logrus.StandardLogger()),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, mdreport.Input{
//	    Markdown:  content,
//	    SourceDir: "/path/to/markdown", // for relative image paths in PDFs
//	    CSS:       "main.page { max-width: 60rem; }",
//	    PDF:       true,
//	    Page:      &mdreport.PageSettings{Size: mdreport.PageSizeA4},
//	})
//
// # Custom Assets
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── default.css
//	└── templates/
//	    └── document.html
//
// Missing files fall back to the embedded ones.
//
// # Browser Requirements
//
// PDF export requires Chrome/Chromium. The go-rod library downloads a managed
// Chromium on first run (~/.cache/rod/browser/) unless WithBrowserBin points
// at an installed one. Containers usually also need WithNoSandbox(true).
package mdreport
