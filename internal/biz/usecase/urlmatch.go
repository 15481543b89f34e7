package usecase

import (
	"encoding/xml"
	"html"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"'()（），。；、]+`)

// MatchURLs extracts candidate URLs from message text in first-occurrence
// order. Pattern matching only, no validation side effects.
func MatchURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// FirstURL returns the first URL in the text, if any
func FirstURL(text string) (string, bool) {
	if m := urlPattern.FindString(text); m != "" {
		return m, true
	}
	return "", false
}

// shareCard mirrors the XML card shape chat hosts use for shared links
type shareCard struct {
	AppMsg struct {
		URL string `xml:"url"`
	} `xml:"appmsg"`
}

var cardURLPattern = regexp.MustCompile(`<url>(.*?)</url>`)

// ExtractSharedURL pulls the link out of an XML share card
// (<msg><appmsg><url>…</url></appmsg></msg>). Falls back to a regex when
// the card is not well-formed XML, which third-party cards often aren't.
func ExtractSharedURL(content string) (string, bool) {
	if !looksLikeShareCard(content) {
		return "", false
	}

	// Drop a leading XML declaration
	if strings.HasPrefix(content, "<?xml") {
		if idx := strings.Index(content, "<msg>"); idx >= 0 {
			content = content[idx:]
		}
	}
	// Some hosts deliver the appmsg fragment without the root node
	if !strings.HasPrefix(content, "<msg") && strings.Contains(content, "<appmsg") {
		content = "<msg>" + content + "</msg>"
	}

	var card shareCard
	if err := xml.Unmarshal([]byte(content), &card); err == nil {
		if u := strings.TrimSpace(card.AppMsg.URL); u != "" {
			return html.UnescapeString(u), true
		}
	}

	if m := cardURLPattern.FindStringSubmatch(content); len(m) == 2 {
		if u := strings.TrimSpace(m[1]); u != "" {
			return html.UnescapeString(u), true
		}
	}

	return "", false
}

func looksLikeShareCard(content string) bool {
	if strings.HasPrefix(content, "<?xml") {
		return true
	}
	if strings.HasPrefix(content, "<msg>") && strings.Contains(content, "<appmsg") {
		return true
	}
	return strings.Contains(content, "<appmsg") && strings.Contains(content, "<url>")
}

// StripMention removes a leading "@name " prefix from group messages
func StripMention(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "@") {
		return text
	}
	parts := strings.SplitN(text, " ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
