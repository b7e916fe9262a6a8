package chat

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

const reportShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Benchmark Report</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; }
</style>
</head>
<body>
<h1>Benchmark Report</h1>
%s
</body>
</html>`

// handleReport renders the benchmark markdown summary as HTML
func (s *Server) handleReport(c echo.Context) error {
	if s.reportPath == "" {
		return echo.NewHTTPError(http.StatusNotFound, "no benchmark report configured")
	}

	raw, err := os.ReadFile(s.reportPath)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "benchmark report not found, run the benchmark first")
	}

	return c.HTML(http.StatusOK, renderMarkdown(raw))
}

func renderMarkdown(raw []byte) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(raw)

	opts := html.RendererOptions{Flags: html.CommonFlags}
	renderer := html.NewRenderer(opts)
	rendered := markdown.Render(doc, renderer)

	sanitized := bluemonday.UGCPolicy().SanitizeBytes(rendered)
	return fmt.Sprintf(reportShell, sanitized)
}
