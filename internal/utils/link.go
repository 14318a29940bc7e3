package utils

import (
	"net/url"
	"strings"
)

// BuildLinkURL returns the canonical trackable URL for a link token.
func BuildLinkURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + LinkPathPrefix + token
}

// ExtractLinkToken normalizes a referral link argument to its bare token.
// Clients send either the full trackable URL or the token itself.
func ExtractLinkToken(link string) string {
	link = strings.TrimSpace(link)
	if idx := strings.LastIndex(link, LinkPathPrefix); idx != -1 {
		link = link[idx+len(LinkPathPrefix):]
	}
	return strings.Trim(link, "/")
}

// BuildEmbedCode returns the script tag third-party pages paste to embed a
// program's widget.
func BuildEmbedCode(apiBaseURL, linkURL string) string {
	return `<script src="` + strings.TrimRight(apiBaseURL, "/") + `/api/widget.js?link=` + url.QueryEscape(linkURL) + `"></script>`
}
