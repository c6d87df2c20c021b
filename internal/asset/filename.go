package asset

import (
	"mime"
	"net/url"
	"regexp"
	"strings"
)

const fallbackRemoteName = "remote-video.mp4"

// DeriveFilename picks the display name of a downloaded video: the
// Content-Disposition filename, then the last path segment of the link, then
// a fixed fallback. The result is not sanitized.
func DeriveFilename(contentDisposition, link string) string {
	if name := dispositionFilename(contentDisposition); name != "" {
		return name
	}
	if name := lastPathSegment(link); name != "" {
		return name
	}
	return fallbackRemoteName
}

func dispositionFilename(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		// servers often send unquoted names with spaces
		if m := looseFilename.FindStringSubmatch(header); m != nil {
			return strings.TrimSpace(m[1])
		}
		return ""
	}
	return strings.TrimSpace(params["filename"])
}

var looseFilename = regexp.MustCompile(`(?i)filename\s*=\s*"?([^";]+)"?`)

func lastPathSegment(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	segments := strings.Split(u.Path, "/")
	return segments[len(segments)-1]
}
