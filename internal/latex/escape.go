// Package latex prepares plain text for embedding in a LaTeX document.
//
// Escape protects the characters LaTeX treats as syntax. Convert additionally
// turns a small inline markup (*bold*, _italic_, `monospace`) into the
// matching text commands. ConvertValue applies Convert to every string of a
// decoded YAML tree.
package latex

import "strings"

// escaper replaces LaTeX special characters in a single left-to-right pass,
// so the backslash introduced by one replacement is never escaped again.
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// Escape returns text with every LaTeX special character replaced by a form
// that typesets as the literal glyph. Other characters, including non-ASCII
// ones, are copied unchanged.
func Escape(text string) string {
	return escaper.Replace(text)
}

// urlEscaper protects the characters hyperref cannot take verbatim inside
// \href and \url arguments. Braces and backslashes are percent-encoded.
var urlEscaper = strings.NewReplacer(
	`%`, `\%`,
	`#`, `\#`,
	`\`, `\%5C`,
	`{`, `\%7B`,
	`}`, `\%7D`,
)

// EscapeURL prepares a raw value for the URL argument of \href or \url.
// Unlike Escape it keeps _, ~, & and ^ as typed, since hyperref reads them
// literally there.
func EscapeURL(text string) string {
	return urlEscaper.Replace(text)
}
