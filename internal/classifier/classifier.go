// Package classifier decides which platform a URL token belongs to and
// extracts URL tokens from free-form message text.
package classifier

import (
	"strings"

	"telegram-report-bot/internal/models"
)

// trailingCutset is stripped from both ends of a URL token so that
// punctuation glued onto a pasted link never becomes part of the URL.
const trailingCutset = ".,;\"'<>"

// Detect classifies a single token. It is total over any string: tokens
// matching no known hostname fall through to PlatformOther. Matching is
// case-insensitive substring containment, checked in fixed order.
func Detect(token string) models.Platform {
	lower := strings.ToLower(token)
	switch {
	case strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be"):
		return models.PlatformYouTube
	case strings.Contains(lower, "instagram.com") || strings.Contains(lower, "instagr.am"):
		return models.PlatformInstagram
	case strings.Contains(lower, "facebook.com") || strings.Contains(lower, "fb.watch"):
		return models.PlatformFacebook
	default:
		return models.PlatformOther
	}
}

// ExtractURLs splits text on whitespace and returns the tokens that carry
// an http:// or https:// scheme, trimmed of surrounding punctuation.
func ExtractURLs(text string) []string {
	var urls []string
	for _, token := range strings.Fields(text) {
		if !strings.Contains(token, "http://") && !strings.Contains(token, "https://") {
			continue
		}
		url := strings.Trim(token, trailingCutset)
		if url == "" {
			continue
		}
		urls = append(urls, url)
	}
	return urls
}
