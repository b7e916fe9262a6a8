package loader

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
)

// DefaultTopics is the tech-ecosystem corpus: big tech, the AI and chip
// cluster, hardware, enterprise, and a set of well-known acquisition targets
// that make ownership questions answerable
func DefaultTopics() []string {
	return []string{
		"Apple Inc.",
		"Microsoft Corporation",
		"Google",
		"Amazon (company)",
		"Meta Platforms",

		"Nvidia",
		"AMD",
		"Intel",
		"Taiwan Semiconductor Manufacturing Company",
		"OpenAI",
		"Anthropic",
		"DeepMind",

		"Tesla, Inc.",
		"SpaceX",
		"Samsung Electronics",
		"Sony Group",
		"Qualcomm",
		"Arm Holdings",

		"Oracle Corporation",
		"IBM",
		"Salesforce",
		"Adobe Inc.",
		"Netflix",
		"Uber",
		"Airbnb",

		"LinkedIn",
		"GitHub",
		"Instagram",
		"WhatsApp",
		"YouTube",
	}
}

const wikipediaBaseURL = "https://en.wikipedia.org/api/rest_v1/page/html"

// WikipediaDownloader fetches article HTML from the Wikipedia REST API,
// strips it down to paragraph text and writes one .txt file per topic.
// Failed topics are logged and skipped.
type WikipediaDownloader struct {
	baseURL    string
	outputDir  string
	delay      time.Duration
	httpClient *http.Client
	logger     log.Logger
}

// DownloadOption configures the WikipediaDownloader
type DownloadOption func(*WikipediaDownloader)

// WithBaseURL overrides the API endpoint
func WithBaseURL(u string) DownloadOption {
	return func(d *WikipediaDownloader) {
		d.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithDelay sets the pause between page fetches
func WithDelay(delay time.Duration) DownloadOption {
	return func(d *WikipediaDownloader) {
		d.delay = delay
	}
}

// WithDownloadLogger sets the logger
func WithDownloadLogger(logger log.Logger) DownloadOption {
	return func(d *WikipediaDownloader) {
		d.logger = logger
	}
}

// NewWikipediaDownloader creates a downloader writing into outputDir
func NewWikipediaDownloader(outputDir string, opts ...DownloadOption) *WikipediaDownloader {
	d := &WikipediaDownloader{
		baseURL:    wikipediaBaseURL,
		outputDir:  outputDir,
		delay:      time.Second,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run downloads every topic. Returns the number of files written; a topic
// failure does not abort the run.
func (d *WikipediaDownloader) Run(ctx context.Context, topics []string) (int, error) {
	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	written := 0
	for i, topic := range topics {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		text, err := d.fetch(ctx, topic)
		if err != nil {
			d.logger.Warn("skipping %q: %v", topic, err)
			continue
		}

		path := filepath.Join(d.outputDir, topicFilename(topic))
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written++
		d.logger.Info("saved %s (%d bytes)", filepath.Base(path), len(text))

		if d.delay > 0 && i < len(topics)-1 {
			select {
			case <-time.After(d.delay):
			case <-ctx.Done():
				return written, ctx.Err()
			}
		}
	}
	return written, nil
}

func (d *WikipediaDownloader) fetch(ctx context.Context, topic string) (string, error) {
	u := d.baseURL + "/" + url.PathEscape(strings.ReplaceAll(topic, " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}
	text := extractArticleText(doc)
	if text == "" {
		return "", fmt.Errorf("page had no paragraph text")
	}
	return text, nil
}

// extractArticleText keeps paragraph text and drops citations, infoboxes
// and navigation markup
func extractArticleText(doc *goquery.Document) string {
	doc.Find("sup.reference, .mw-ref, style, table").Remove()

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

func topicFilename(topic string) string {
	name := strings.ReplaceAll(topic, " ", "_")
	name = strings.ReplaceAll(name, ",", "")
	name = strings.ReplaceAll(name, "/", "")
	return name + ".txt"
}
