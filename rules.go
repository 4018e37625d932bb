package main

import "regexp"

// rewriteRule is a single named text rewrite. Rules are total functions over
// strings: they never fail, they only return a (possibly identical) string.
// The name is used when testing rules in isolation and when tracing.
type rewriteRule struct {
	name  string
	apply func(string) string
}

// pipeline applies rules in declaration order. Order matters: later rules
// assume earlier ones already ran (whitespace collapse before delimiter
// tightening, delimiter tightening before trailing-semicolon removal).
type pipeline []rewriteRule

// run feeds the source through every rule in order.
func (p pipeline) run(src string) string {
	for _, rule := range p {
		src = rule.apply(src)
	}
	return src
}

// whitespaceRunRe matches any run of whitespace, including newlines and tabs.
// Shared by the CSS and HTML pipelines.
var whitespaceRunRe = regexp.MustCompile(`\s+`)

// collapseWhitespace reduces every whitespace run to a single space.
func collapseWhitespace(s string) string {
	return whitespaceRunRe.ReplaceAllString(s, " ")
}
