package service

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// 独占一行的视频链接会被渲染为 iframe 播放器
var (
	embedSrcPattern = regexp.MustCompile(
		`^https://(?:www\.youtube-nocookie\.com/embed/|player\.vimeo\.com/video/|player\.bilibili\.com/player\.html\?)`,
	)
	youtubeTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)
	orderedListPattern = regexp.MustCompile(`^\d+\.\s+`)
)

type videoEmbed struct {
	Provider string
	Source   string
	EmbedURL string
}

// newContentPolicy extends the UGC policy with iframes limited to known players.
func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("class", "data-provider", "data-source").OnElements("div")
	policy.AllowAttrs("src").Matching(embedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy").OnElements("iframe")
	return policy
}

// extractVideoEmbeds 将独占一行的视频链接替换为占位符，返回替换后的 markdown 与占位符映射
func extractVideoEmbeds(markdown string) (string, map[string]videoEmbed) {
	if strings.TrimSpace(markdown) == "" {
		return markdown, nil
	}

	lines := strings.Split(markdown, "\n")
	embeds := make(map[string]videoEmbed)
	fence := ""

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if marker := fenceMarker(trimmed); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case strings.HasPrefix(trimmed, fence):
				fence = ""
			}
			continue
		}
		if fence != "" || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") || !embedCandidate(trimmed) {
			continue
		}

		embed, ok := parseVideoURL(strings.Trim(trimmed, "<>"))
		if !ok {
			continue
		}
		token := fmt.Sprintf("sitecmsvideo%dembed", len(embeds))
		embeds[token] = embed
		lines[i] = token
	}

	if len(embeds) == 0 {
		return markdown, nil
	}
	return strings.Join(lines, "\n"), embeds
}

func fenceMarker(line string) string {
	for _, marker := range []string{"```", "~~~"} {
		if strings.HasPrefix(line, marker) {
			return marker
		}
	}
	return ""
}

func embedCandidate(line string) bool {
	if line == "" || strings.ContainsAny(line, " \t") {
		return false
	}
	if strings.HasPrefix(line, ">") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "+") {
		return false
	}
	return !orderedListPattern.MatchString(line)
}

// injectVideoEmbeds swaps rendered placeholders for player markup.
func injectVideoEmbeds(rendered string, embeds map[string]videoEmbed) string {
	for token, embed := range embeds {
		markup := embed.html()
		rendered = strings.ReplaceAll(rendered, "<p>"+token+"</p>", markup)
		rendered = strings.ReplaceAll(rendered, token, markup)
	}
	return rendered
}

func parseVideoURL(raw string) (videoEmbed, bool) {
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return videoEmbed{}, false
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "youtu.be" || hostMatches(host, "youtube.com"):
		return youtubeEmbed(parsed, raw)
	case hostMatches(host, "vimeo.com"):
		return vimeoEmbed(parsed, raw)
	case hostMatches(host, "bilibili.com"):
		return bilibiliEmbed(parsed, raw)
	}
	return videoEmbed{}, false
}

func youtubeEmbed(u *url.URL, source string) (videoEmbed, bool) {
	path := strings.Trim(u.Path, "/")
	var id string
	if strings.EqualFold(u.Hostname(), "youtu.be") {
		id = path
	} else {
		switch {
		case path == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"), strings.HasPrefix(path, "embed/"), strings.HasPrefix(path, "live/"):
			_, id, _ = strings.Cut(path, "/")
		}
	}
	id, _, _ = strings.Cut(id, "/")
	if id == "" {
		return videoEmbed{}, false
	}

	params := url.Values{}
	params.Set("rel", "0")
	params.Set("playsinline", "1")
	start := u.Query().Get("start")
	if start == "" {
		start = u.Query().Get("t")
	}
	if seconds := youtubeSeconds(start); seconds > 0 {
		params.Set("start", strconv.Itoa(seconds))
	}

	return videoEmbed{
		Provider: "youtube",
		Source:   source,
		EmbedURL: "https://www.youtube-nocookie.com/embed/" + url.PathEscape(id) + "?" + params.Encode(),
	}, true
}

// youtubeSeconds 支持 90 与 1h2m3s 两种写法
func youtubeSeconds(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return max(seconds, 0)
	}

	total := 0
	for _, match := range youtubeTimePattern.FindAllStringSubmatch(value, -1) {
		n, _ := strconv.Atoi(match[1])
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func vimeoEmbed(u *url.URL, source string) (videoEmbed, bool) {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := segments[len(segments)-1]
	if id == "" || strings.Trim(id, "0123456789") != "" {
		return videoEmbed{}, false
	}
	return videoEmbed{
		Provider: "vimeo",
		Source:   source,
		EmbedURL: "https://player.vimeo.com/video/" + id,
	}, true
}

func bilibiliEmbed(u *url.URL, source string) (videoEmbed, bool) {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] != "video" || segments[1] == "" {
		return videoEmbed{}, false
	}

	id := segments[1]
	params := url.Values{}
	switch lower := strings.ToLower(id); {
	case strings.HasPrefix(lower, "bv"):
		params.Set("bvid", id)
	case strings.HasPrefix(lower, "av"):
		params.Set("aid", strings.TrimPrefix(lower, "av"))
	default:
		return videoEmbed{}, false
	}
	page := 1
	if p, err := strconv.Atoi(u.Query().Get("p")); err == nil && p > 0 {
		page = p
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("autoplay", "0")

	return videoEmbed{
		Provider: "bilibili",
		Source:   source,
		EmbedURL: "https://player.bilibili.com/player.html?" + params.Encode(),
	}, true
}

func (e videoEmbed) html() string {
	return fmt.Sprintf(
		`<div class="video-embed" data-provider="%s" data-source="%s">`+
			`<iframe src="%s" title="%s video player" loading="lazy" allow="encrypted-media; picture-in-picture; web-share" allowfullscreen frameborder="0" referrerpolicy="strict-origin-when-cross-origin"></iframe>`+
			`</div>`,
		html.EscapeString(e.Provider),
		html.EscapeString(e.Source),
		html.EscapeString(e.EmbedURL),
		html.EscapeString(e.Provider),
	)
}

func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
