package service

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = newContentPolicy()
)

// RenderMarkdown converts markdown to sanitized HTML; standalone video links become players.
func RenderMarkdown(content string) (string, error) {
	prepared, embeds := extractVideoEmbeds(content)

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(prepared), &buf); err != nil {
		return "", err
	}
	rendered := injectVideoEmbeds(buf.String(), embeds)
	return sanitizer.Sanitize(rendered), nil
}

const summaryLimit = 120

func summarizeContent(markdown string) string {
	replacer := strings.NewReplacer(
		"#", " ",
		"*", " ",
		"`", " ",
		"_", " ",
		">", " ",
		"[", " ",
		"]", " ",
		"(", " ",
		")", " ",
	)
	plain := replacer.Replace(markdown)
	plain = strings.Join(strings.Fields(plain), " ")
	if plain == "" {
		return ""
	}

	if utf8.RuneCountInString(plain) <= summaryLimit {
		return plain
	}

	runes := []rune(plain)
	return string(runes[:summaryLimit]) + "…"
}
