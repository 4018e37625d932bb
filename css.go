package main

import (
	"regexp"
	"strings"
)

// Patterns for the CSS pipeline. Application order lives in cssPipeline.
var (
	cssCommentRe      = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	cssDelimiterRe    = regexp.MustCompile(`\s*([{};:,>])\s*`)
	cssZeroFracRe     = regexp.MustCompile(`([^0-9])0+\.`)
	cssZeroUnitRe     = regexp.MustCompile(`([: ])0(px|em|ex|cm|mm|in|pt|pc|%)`)
	cssHexColorRe     = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)
	cssTrailingSemiRe = regexp.MustCompile(`;+}`)
	cssEmptyRuleRe    = regexp.MustCompile(`[^{}]+\{\}`)
)

// stripCSSComments removes /* ... */ block comments, spanning newlines.
func stripCSSComments(s string) string {
	return cssCommentRe.ReplaceAllString(s, "")
}

// tightenDelimiters removes whitespace adjacent to the structural
// delimiters { } : ; , and >. Runs after collapseWhitespace, so at most one
// space exists on either side of a delimiter.
func tightenDelimiters(s string) string {
	return cssDelimiterRe.ReplaceAllString(s, "$1")
}

// shortenZeroFractions rewrites a leading-zero decimal fraction to its
// dot-leading form (0.5 -> .5) when the zero is preceded by a non-digit,
// so 10.5 is left alone.
func shortenZeroFractions(s string) string {
	return cssZeroFracRe.ReplaceAllString(s, "$1.")
}

// dropZeroUnits rewrites a zero value followed by a length or percent unit
// to a bare 0 when preceded by a colon or space. Zero is zero in any unit.
func dropZeroUnits(s string) string {
	return cssZeroUnitRe.ReplaceAllString(s, "${1}0")
}

// shortenHexColors collapses a 6-digit hex color to 3-digit form when each
// channel's two digits are identical (#aabbcc -> #abc). Colors without that
// redundancy pass through. RE2 has no backreferences, so the pair check is
// done on the match.
func shortenHexColors(s string) string {
	return cssHexColorRe.ReplaceAllStringFunc(s, func(m string) string {
		if m[1] == m[2] && m[3] == m[4] && m[5] == m[6] {
			return "#" + string(m[1]) + string(m[3]) + string(m[5])
		}
		return m
	})
}

// dropTrailingSemicolons removes semicolons immediately preceding a closing
// brace. The semicolon before } is always redundant.
func dropTrailingSemicolons(s string) string {
	return cssTrailingSemiRe.ReplaceAllString(s, "}")
}

// dropEmptyRules removes rules whose body is empty (selector{} -> nothing).
// Single pass: an at-rule block emptied by this removal is left alone.
func dropEmptyRules(s string) string {
	return cssEmptyRuleRe.ReplaceAllString(s, "")
}

// cssPipeline returns the ordered CSS rule set for the given level.
func cssPipeline(level MinifyLevel) pipeline {
	p := pipeline{
		{"strip-comments", stripCSSComments},
		{"collapse-whitespace", collapseWhitespace},
		{"tighten-delimiters", tightenDelimiters},
		{"shorten-zero-fractions", shortenZeroFractions},
		{"drop-zero-units", dropZeroUnits},
		{"shorten-hex-colors", shortenHexColors},
		{"drop-trailing-semicolons", dropTrailingSemicolons},
	}
	if level == LevelAggressive {
		p = append(p, rewriteRule{"drop-empty-rules", dropEmptyRules})
	}
	return append(p, rewriteRule{"trim", strings.TrimSpace})
}

// MinifyCSS returns semantically equivalent, shorter CSS. It never fails:
// unrecognized constructs pass through untouched. The rules do not inspect
// url(...) or quoted strings; whitespace inside them is collapsed like
// everything else. That is a known limitation of the text-rewriting
// approach, not something to fix with a CSS parser.
func MinifyCSS(src string, level MinifyLevel) string {
	return cssPipeline(level).run(src)
}
