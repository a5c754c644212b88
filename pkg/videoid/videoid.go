// Package videoid pulls YouTube video identifiers out of the URL shapes the
// platform hands out.
package videoid

import "regexp"

// pattern matches the leftmost recognised marker followed by the identifier.
// The identifier ends at the first character outside [A-Za-z0-9_-].
var pattern = regexp.MustCompile(`(?:/embed/|/v/|/watch\?v=|youtu\.be/|/shorts/)([A-Za-z0-9_-]+)`)

// Extract returns the video identifier found in raw.
//
// Accepted shapes:
//
//	https://www.youtube.com/watch?v=<id>
//	https://youtu.be/<id>
//	https://www.youtube.com/embed/<id>
//	https://www.youtube.com/v/<id>?version=3
//	https://www.youtube.com/shorts/<id>
//
// The second result is false when none of the markers is present.
func Extract(raw string) (string, bool) {
	m := pattern.FindStringSubmatch(raw)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}
