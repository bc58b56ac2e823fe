package utils

import "github.com/microcosm-cc/bluemonday"

var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// SanitizeTitle strips all markup from a post title.
func SanitizeTitle(input string) string {
	return strictPolicy.Sanitize(input)
}

// SanitizeContent cleans post content, keeping user-generated-content safe HTML.
func SanitizeContent(input string) string {
	return ugcPolicy.Sanitize(input)
}
