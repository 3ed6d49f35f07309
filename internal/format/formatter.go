package format

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Formatter renders a verified answer plus its source references into the
// final string a channel adapter delivers.
type Formatter interface {
	Format(answer string, sources []SourceRef) string
}

// ForPlatform returns the rendering strategy for a platform.
func ForPlatform(p Platform) Formatter {
	switch p {
	case PlatformWeb:
		return &webFormatter{markdown: newMarkdown()}
	case PlatformSlack:
		return &slackFormatter{}
	case PlatformEmail:
		return &emailFormatter{markdown: newMarkdown()}
	default:
		return &universalFormatter{}
	}
}

// Renderers show at most this many citations; the full deduplicated list
// still travels in the answer contract.
const maxRenderedSources = 3

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	doubleStarPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	extraBlankPattern = regexp.MustCompile(`\n{3,}`)
)

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
}

func renderMarkdown(md goldmark.Markdown, content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return strings.TrimSpace(buf.String())
}

type webFormatter struct {
	markdown goldmark.Markdown
}

func (f *webFormatter) Format(answer string, sources []SourceRef) string {
	out := renderMarkdown(f.markdown, strings.TrimSpace(answer))
	if len(sources) == 0 {
		return out
	}
	var b strings.Builder
	b.WriteString(out)
	b.WriteString("\n\n<h3>\U0001F4DA Reference Documents</h3>\n<ul>\n")
	for _, ref := range capSources(sources) {
		fmt.Fprintf(&b, "<li><a href=%q target=\"_blank\">%s</a></li>\n", ref.URL, displayName(ref.Filename))
	}
	b.WriteString("</ul>")
	return b.String()
}

type slackFormatter struct{}

func (f *slackFormatter) Format(answer string, sources []SourceRef) string {
	out := htmlTagPattern.ReplaceAllString(answer, "")
	out = doubleStarPattern.ReplaceAllString(out, "*$1*")
	out = strings.TrimSpace(extraBlankPattern.ReplaceAllString(out, "\n\n"))
	if len(sources) == 0 {
		return out
	}
	var b strings.Builder
	b.WriteString(out)
	b.WriteString("\n\n\U0001F4DA *Reference Documents*")
	for _, ref := range capSources(sources) {
		fmt.Fprintf(&b, "\n  • <%s|%s>", ref.URL, displayName(ref.Filename))
	}
	return b.String()
}

type emailFormatter struct {
	markdown goldmark.Markdown
}

func (f *emailFormatter) Format(answer string, sources []SourceRef) string {
	out := renderMarkdown(f.markdown, strings.TrimSpace(answer))
	if len(sources) == 0 {
		return out
	}
	var b strings.Builder
	b.WriteString(out)
	b.WriteString("\n\n<h3>Reference Documents:</h3>\n<ul>\n")
	for _, ref := range capSources(sources) {
		fmt.Fprintf(&b, "<li><a href=%q>%s</a></li>\n", ref.URL, displayName(ref.Filename))
	}
	b.WriteString("</ul>")
	return b.String()
}

type universalFormatter struct{}

func (f *universalFormatter) Format(answer string, sources []SourceRef) string {
	out := strings.TrimSpace(extraBlankPattern.ReplaceAllString(answer, "\n\n"))
	if len(sources) == 0 {
		return out
	}
	var b strings.Builder
	b.WriteString(out)
	b.WriteString("\n\n\U0001F4DA Reference Documents")
	for _, ref := range capSources(sources) {
		fmt.Fprintf(&b, "\n• %s: %s", displayName(ref.Filename), ref.URL)
	}
	return b.String()
}

func capSources(sources []SourceRef) []SourceRef {
	if len(sources) > maxRenderedSources {
		return sources[:maxRenderedSources]
	}
	return sources
}
