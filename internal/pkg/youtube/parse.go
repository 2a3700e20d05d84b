package youtube

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	durationRegex = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)
	videoIDRegex  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ParseDuration 解析 ISO-8601 时长（如 PT1H2M3S），返回秒数
func ParseDuration(s string) (int, bool) {
	m := durationRegex.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, false
	}
	units := []int{24 * 3600, 3600, 60, 1}
	total := 0
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, false
		}
		total += n * unit
	}
	return total, true
}

// ExtractVideoID 支持 watch?v=、youtu.be/、/shorts/、/embed/ 链接以及裸 id
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if videoIDRegex.MatchString(raw) {
		return raw, true
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			id = v
			break
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 && (parts[0] == "shorts" || parts[0] == "embed" || parts[0] == "live") {
			id = parts[1]
		}
	}

	if !videoIDRegex.MatchString(id) {
		return "", false
	}
	return id, true
}

// WatchURL 短视频保留 /shorts/ 形式，分类器依赖该路径
func WatchURL(id string, short bool) string {
	if short {
		return "https://www.youtube.com/shorts/" + id
	}
	return "https://www.youtube.com/watch?v=" + id
}

// BestThumbnail 依次取 maxres、standard、high、medium、default
func BestThumbnail(thumbs map[string]Thumbnail) string {
	for _, key := range []string{"maxres", "standard", "high", "medium", "default"} {
		if t, ok := thumbs[key]; ok && t.URL != "" {
			return t.URL
		}
	}
	return ""
}
