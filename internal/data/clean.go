package data

import "regexp"

// Patterns stripped from extracted text before caching: markdown images and
// empty links, ad markers, reading-time metadata, separator lines, and
// excess whitespace. The reader proxy returns markdown-flavored text.
var (
	mdImagePattern   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	imageTagPattern  = regexp.MustCompile(`(?i)\[(图片|image|img|picture)\]`)
	emptyLinkPattern = regexp.MustCompile(`\[\]\([^)]*\)|\[[^\]]+\]\(\s*\)`)
	readMetaPattern  = regexp.MustCompile(`(本文字数：\d+，)?阅读时长[:：]?.*?分钟|字数[:：]\d+`)
	separatorPattern = regexp.MustCompile(`\*\s*\*\s*\*|-{3,}|_{3,}`)
	adPattern        = regexp.MustCompile(`(?i)广告\s*[.。]?|赞助内容|sponsored content|advertisement|promoted content|推广信息|\[广告\]|【广告】`)
	boldPattern      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern    = regexp.MustCompile(`\*([^*]+)\*`)
	codePattern      = regexp.MustCompile("`([^`]+)`")
	blankPattern     = regexp.MustCompile(`\n{3,}`)
	spacesPattern    = regexp.MustCompile(`[ \t]{2,}`)
	edgePattern      = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
)

// CleanContent strips noise from extracted page text while keeping the prose
func CleanContent(content string) string {
	content = mdImagePattern.ReplaceAllString(content, "")
	content = imageTagPattern.ReplaceAllString(content, "")
	content = emptyLinkPattern.ReplaceAllString(content, "")
	content = readMetaPattern.ReplaceAllString(content, "")
	content = separatorPattern.ReplaceAllString(content, "")
	content = adPattern.ReplaceAllString(content, "")

	// Drop markdown emphasis but keep the text
	content = boldPattern.ReplaceAllString(content, "$1")
	content = italicPattern.ReplaceAllString(content, "$1")
	content = codePattern.ReplaceAllString(content, "$1")

	content = edgePattern.ReplaceAllString(content, "")
	content = spacesPattern.ReplaceAllString(content, " ")
	content = blankPattern.ReplaceAllString(content, "\n\n")

	return content
}
