package main

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

const maxWidth = 72

var keyword = makeFgStyle("211")

func makeFgStyle(color string) func(string) string {
	return termenv.Style{}.Foreground(termenv.ColorProfile().Color(color)).Styled
}

// paragraph re-wraps a block of text at maxWidth and indents it.
func paragraph(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = wordwrap.String(s, maxWidth)
	return indent.String(s, 2)
}
