package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"

	"hrassist/internal/contextutil"
	"hrassist/internal/storage"
)

const fetchTimeout = 30 * time.Second

// Some sites reject requests without a browser user agent.
const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Elements whose text is navigation or styling noise, not document content.
var skipElements = map[string]struct{}{
	"script": {},
	"style":  {},
	"nav":    {},
	"header": {},
	"footer": {},
	"aside":  {},
}

// Extractor turns a source into plain text. CSV sources are the exception:
// they extract row-wise via Entities so each row survives as its own chunk.
type Extractor struct {
	client *http.Client
}

func NewExtractor() *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Extract returns the plain text of a source. Lines are trimmed and blank
// lines dropped so chunking sees consistent input across formats.
func (e *Extractor) Extract(ctx context.Context, src Source) (string, error) {
	switch src.Type {
	case SourceURL:
		return e.fetchURL(ctx, src.Path)
	case SourceFile:
		switch storage.ParseFileType(filepath.Ext(src.Path)) {
		case storage.FileTypePDF:
			return extractPDF(ctx, src.Path)
		case storage.FileTypeHTML:
			return extractHTMLFile(src.Path)
		case storage.FileTypeCSV:
			return "", fmt.Errorf("csv source %s extracts row-wise, use Entities", src.Path)
		default:
			return extractTXT(src.Path)
		}
	}
	return "", fmt.Errorf("unsupported source type %q", src.Type)
}

func (e *Extractor) fetchURL(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return htmlToText(resp.Body)
}

func extractTXT(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return normalizeLines(string(data)), nil
}

func extractHTMLFile(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return htmlToText(file)
}

// htmlToText extracts the visible text of an HTML document, skipping
// script/style/navigation elements. The document title, when present,
// becomes a "Title: ..." first line so it stays searchable after chunking.
func htmlToText(r io.Reader) (string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var title string
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := skipElements[n.Data]; skip {
				return
			}
			if n.Data == "title" {
				if title == "" {
					title = strings.TrimSpace(nodeText(n))
				}
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	text := normalizeLines(sb.String())
	if title != "" {
		if text == "" {
			return "Title: " + title, nil
		}
		return "Title: " + title + "\n\n" + text, nil
	}
	return text, nil
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func extractPDF(ctx context.Context, filePath string) (string, error) {
	file, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", filePath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	logger := contextutil.LoggerFromContext(ctx)
	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.WarnContext(ctx, "failed to extract pdf page", "path", filePath, "page", i, "error", err)
			continue
		}
		if cleaned := normalizeLines(text); cleaned != "" {
			pages = append(pages, cleaned)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

// normalizeLines trims every line and drops blank ones.
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// sourceFilename names a source for chunk metadata: the base name for
// files, the last path segment (or host) for URLs.
func sourceFilename(src Source) string {
	if src.Type == SourceURL {
		u, err := url.Parse(src.Path)
		if err != nil {
			return src.Path
		}
		base := path.Base(u.Path)
		if base == "." || base == "/" || base == "" {
			return u.Host
		}
		return base
	}
	return filepath.Base(src.Path)
}
