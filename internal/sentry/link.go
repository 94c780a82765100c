package sentry

import "strings"

// nextCursor extracts the cursor of the Link entry marked rel="next" with
// results="true". It reports false when there is no further page.
func nextCursor(link string) (string, bool) {
	for _, entry := range strings.Split(link, ",") {
		if !strings.Contains(entry, `rel="next"`) || !strings.Contains(entry, `results="true"`) {
			continue
		}
		for _, segment := range strings.Split(entry, ";") {
			segment = strings.TrimSpace(segment)
			if strings.HasPrefix(segment, "cursor=") {
				return strings.Trim(strings.TrimPrefix(segment, "cursor="), `"`), true
			}
		}
	}
	return "", false
}
