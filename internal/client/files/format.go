package files

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count in base-1024 units, rounded to two
// decimals with trailing zeros dropped: 0 → "0 Bytes", 1536 → "1.5 KB",
// 1048576 → "1 MB".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i < 0 {
		i = 0
	}
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	v := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatRelativeTime renders how long ago t was, with floor semantics:
// under a minute "just now", then minutes, hours, days, and past a week the
// absolute date.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	secs := int(diff.Seconds())
	if secs < 60 {
		return "just now"
	}
	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("%d min%s ago", mins, plural(mins))
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	}
	return t.Format("1/2/2006")
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// mimePrefixTypes maps MIME prefixes and fragments to a display category.
// Checked before the extension table; MIME wins when both are known.
func mimeType(mime string) string {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return "Image"
	case strings.HasPrefix(mime, "video/"):
		return "Video"
	case strings.HasPrefix(mime, "audio/"):
		return "Audio"
	case mime == "application/pdf":
		return "PDF"
	case strings.Contains(mime, "word"), strings.Contains(mime, "document"):
		return "Document"
	case strings.Contains(mime, "sheet"), strings.Contains(mime, "excel"):
		return "Spreadsheet"
	case strings.Contains(mime, "text/"):
		return "Text"
	}
	return ""
}

var extensionTypes = map[string]string{
	"pdf":  "PDF",
	"doc":  "Document",
	"docx": "Document",
	"txt":  "Text",
	"jpg":  "Image",
	"jpeg": "Image",
	"png":  "Image",
	"gif":  "Image",
	"svg":  "Image",
	"mp4":  "Video",
	"avi":  "Video",
	"mov":  "Video",
	"mp3":  "Audio",
	"wav":  "Audio",
	"xls":  "Spreadsheet",
	"xlsx": "Spreadsheet",
	"csv":  "Spreadsheet",
	"zip":  "Archive",
	"rar":  "Archive",
	"json": "Data",
	"xml":  "Data",
}

// FileType returns a display category for a file. A known MIME type takes
// precedence over the extension; unknown files are just "File".
func FileType(fileName, mime string) string {
	if mime != "" {
		if t := mimeType(mime); t != "" {
			return t
		}
	}

	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return "File"
	}
	ext := strings.ToLower(fileName[idx+1:])
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return "File"
}
