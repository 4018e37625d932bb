package main

import (
	"regexp"
	"strings"
)

// Patterns for the HTML pipeline. Application order lives in htmlPipeline.
var (
	htmlCommentRe  = regexp.MustCompile(`<!--[\s\S]*?-->`)
	htmlDoctypeRe  = regexp.MustCompile(`(?i)<!doctype[^>]*>`)
	htmlTypeAttrRe = regexp.MustCompile(`(?i)\s+type=("text/(?:javascript|css)"|'text/(?:javascript|css)')`)
	htmlTagGapRe   = regexp.MustCompile(`>\s+<([a-zA-Z/])`)
)

// stripHTMLComments removes <!-- ... --> comments, spanning newlines.
func stripHTMLComments(s string) string {
	return htmlCommentRe.ReplaceAllString(s, "")
}

// normalizeDoctype rewrites any doctype declaration, whatever its casing or
// attribute set, to the canonical short form.
func normalizeDoctype(s string) string {
	return htmlDoctypeRe.ReplaceAllString(s, "<!doctype html>")
}

// dropRedundantTypeAttrs removes type="text/javascript" and type="text/css"
// attributes, case-insensitive, either quote style. Both are the defaults
// for their elements and carry no information.
func dropRedundantTypeAttrs(s string) string {
	return htmlTypeAttrRe.ReplaceAllString(s, "")
}

// mergeTagGaps removes whitespace between a closing > and a following <,
// but only when the character after < is a letter or a slash, i.e. when it
// actually opens or closes a tag. Stray angle-bracket-like text content
// keeps its spacing.
func mergeTagGaps(s string) string {
	return htmlTagGapRe.ReplaceAllString(s, "><$1")
}

// htmlPipeline returns the ordered HTML rule set. Type-attribute removal
// runs before whitespace collapse so a removed attribute never leaves a
// double space behind.
func htmlPipeline() pipeline {
	return pipeline{
		{"strip-comments", stripHTMLComments},
		{"normalize-doctype", normalizeDoctype},
		{"drop-type-attrs", dropRedundantTypeAttrs},
		{"collapse-whitespace", collapseWhitespace},
		{"merge-tag-gaps", mergeTagGaps},
		{"trim", strings.TrimSpace},
	}
}

// MinifyHTML returns shorter, markup-equivalent HTML. Same pass-through
// guarantee as MinifyCSS: it never fails on any input.
func MinifyHTML(src string) string {
	return htmlPipeline().run(src)
}
