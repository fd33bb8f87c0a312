package sexpr

import (
	"fmt"
)

// ParseError reports a malformed input together with the byte offset at
// which parsing failed. No partial tree is usable after a ParseError.
type ParseError struct {
	Msg    string
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at byte %d: %s", e.Offset, e.Msg)
}

// Parse builds a [Tree] from raw s-expression bytes in a single
// left-to-right scan. Whitespace between tokens is retained as the leading
// trivia of the following token, so [Tree.Bytes] reproduces the input
// exactly.
func Parse(data []byte) (*Tree, error) {
	t := NewTree()

	// Open lists, innermost last, paired with their '(' offsets.
	var (
		stack   []NodeID
		offsets []int
	)

	attach := func(id NodeID) {
		if len(stack) == 0 {
			t.roots = append(t.roots, id)

			return
		}

		t.AppendChild(stack[len(stack)-1], id)
	}

	i := 0
	for {
		lead := leadingTrivia(data[i:])
		i += len(lead)

		if i >= len(data) {
			if len(stack) > 0 {
				return nil, &ParseError{Offset: offsets[len(offsets)-1], Msg: "unclosed list"}
			}

			t.tail = lead

			return t, nil
		}

		switch c := data[i]; c {
		case '(':
			id := t.alloc(node{kind: KindList, lead: lead, parent: None})
			stack = append(stack, id)
			offsets = append(offsets, i)
			i++

		case ')':
			if len(stack) == 0 {
				return nil, &ParseError{Offset: i, Msg: "unexpected ')'"}
			}

			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			offsets = offsets[:len(offsets)-1]
			t.nodes[id].closeLead = lead
			attach(id)
			i++

		case '"':
			end, err := scanString(data, i)
			if err != nil {
				return nil, err
			}

			attach(t.alloc(node{kind: KindString, lead: lead, text: string(data[i:end]), parent: None}))
			i = end

		default:
			end := i
			for end < len(data) && !isDelimiter(data[end]) {
				end++
			}

			attach(t.alloc(node{kind: KindAtom, lead: lead, text: string(data[i:end]), parent: None}))
			i = end
		}
	}
}

// scanString returns the offset one past the closing quote of the string
// starting at data[start]. Escaped quotes do not terminate the string.
func scanString(data []byte, start int) (int, error) {
	for i := start + 1; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '"':
			return i + 1, nil
		}
	}

	return 0, &ParseError{Offset: start, Msg: "unterminated string"}
}

func leadingTrivia(data []byte) string {
	i := 0
	for i < len(data) && isSpace(data[i]) {
		i++
	}

	return string(data[:i])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || c == '(' || c == ')' || c == '"'
}
