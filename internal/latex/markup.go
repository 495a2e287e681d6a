package latex

import (
	"regexp"
	"strings"
)

// LaTeX commands emitted for each kind of markup span.
const (
	CommandBold      = "textbf"
	CommandItalic    = "textit"
	CommandMonospace = "texttt"
)

// markupRule pairs a delimiter pattern with the command wrapping its inner text.
// The first capture group of pattern is the inner text.
type markupRule struct {
	pattern *regexp.Regexp
	command string
}

// markupRules are tried in priority order. Each pattern is non-greedy and
// requires a non-empty inner text, so "**" or "__" never produce a span.
// "." does not match a newline: spans never cross lines.
var markupRules = []markupRule{
	{regexp.MustCompile(`\*\*(.+?)\*\*`), CommandBold},
	{regexp.MustCompile(`\*(.+?)\*`), CommandBold},
	{regexp.MustCompile(`_(.+?)_`), CommandItalic},
	{regexp.MustCompile("`(.+?)`"), CommandMonospace},
}

// span is a region of the input string. Literal spans have an empty command.
type span struct {
	start   int // byte offset into the input, inclusive
	end     int // byte offset into the input, exclusive
	command string
	inner   string
}

// Convert turns inline markup into LaTeX commands and escapes everything else.
//
//	*text* or **text**  ->  \textbf{text}
//	_text_              ->  \textit{text}
//	`text`              ->  \texttt{text}
//
// Rules run in the order above against the original string. A region
// consumed by one rule is never searched by a later one, and the inner
// text of a span is escaped but not scanned for further markup. Same-type
// nesting resolves leftmost-shortest: "*a *b* c*" yields
// \textbf{a }b\textbf{ c}.
//
// Unbalanced or empty delimiters stay literal. Convert never fails and is
// not idempotent: Convert(Convert(s)) escapes the backslashes that the
// first call produced.
func Convert(text string) string {
	if text == "" {
		return ""
	}

	spans := []span{{start: 0, end: len(text)}}
	for _, rule := range markupRules {
		spans = applyRule(text, spans, rule)
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for _, s := range spans {
		if s.command == "" {
			b.WriteString(Escape(text[s.start:s.end]))
			continue
		}
		writeCommand(&b, s.command, Escape(s.inner))
	}
	return b.String()
}

// applyRule searches every literal span for rule matches and splits it into
// literal and command spans. Command spans are passed through untouched.
func applyRule(text string, spans []span, rule markupRule) []span {
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.command != "" {
			out = append(out, s)
			continue
		}

		segment := text[s.start:s.end]
		matches := rule.pattern.FindAllStringSubmatchIndex(segment, -1)
		if len(matches) == 0 {
			out = append(out, s)
			continue
		}

		pos := 0
		for _, m := range matches {
			if m[0] > pos {
				out = append(out, span{start: s.start + pos, end: s.start + m[0]})
			}
			out = append(out, span{
				start:   s.start + m[0],
				end:     s.start + m[1],
				command: rule.command,
				inner:   segment[m[2]:m[3]],
			})
			pos = m[1]
		}
		if pos < len(segment) {
			out = append(out, span{start: s.start + pos, end: s.end})
		}
	}
	return out
}

// writeCommand writes \command{content}.
func writeCommand(b *strings.Builder, command, content string) {
	b.WriteByte('\\')
	b.WriteString(command)
	b.WriteByte('{')
	b.WriteString(content)
	b.WriteByte('}')
}
