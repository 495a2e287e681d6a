package resume

import "github.com/alnah/go-resume/internal/latex"

// ConvertMarkup turns *bold*, **bold**, _italic_ and `code` spans into
// \textbf, \textit and \texttt commands and escapes every other LaTeX
// special character. It is total: unbalanced markers are kept as text.
//
// ConvertMarkup is not idempotent. Its output contains LaTeX commands
// whose backslashes and braces are escaped again on a second pass.
func ConvertMarkup(text string) string {
	return latex.Convert(text)
}

// EscapeLaTeX escapes LaTeX special characters without interpreting markup.
func EscapeLaTeX(text string) string {
	return latex.Escape(text)
}
