package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const byteOrderMark = "\uFEFF"

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) isPunct(text string) bool {
	return t.is(tokPunct, text)
}

// lexError reports an unterminated literal or comment.
type lexError struct {
	line   int
	reason string
}

func (e *lexError) Error() string {
	return e.reason
}

type lexer struct {
	src  string
	pos  int
	line int
	toks []token
}

// tokenize splits ModuleRules source into tokens. Comments, preprocessor lines and
// whitespace are dropped.
func tokenize(src string) ([]token, error) {
	l := &lexer{src: src, line: 1}
	for {
		l.skipTrivia()
		if l.pos >= len(l.src) {
			l.toks = append(l.toks, token{kind: tokEOF, line: l.line})
			return l.toks, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) skipTrivia() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.pos++
		case c == '#' && l.atLineStart():
			l.skipLine()
		case strings.HasPrefix(l.src[l.pos:], "//"):
			l.skipLine()
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				// Leave it for next() to report.
				return
			}
			l.countLines(l.src[l.pos : l.pos+2+end+2])
			l.pos += 2 + end + 2
		case c == 0xEF && strings.HasPrefix(l.src[l.pos:], byteOrderMark):
			l.pos += len(byteOrderMark)
		default:
			return
		}
	}
}

func (l *lexer) atLineStart() bool {
	for i := l.pos - 1; i >= 0; i-- {
		switch l.src[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

func (l *lexer) skipLine() {
	end := strings.IndexByte(l.src[l.pos:], '\n')
	if end < 0 {
		l.pos = len(l.src)
		return
	}
	l.pos += end
}

func (l *lexer) countLines(s string) {
	l.line += strings.Count(s, "\n")
}

func (l *lexer) emit(kind tokenKind, text string, line int) {
	l.toks = append(l.toks, token{kind: kind, text: text, line: line})
}

func (l *lexer) next() error {
	c := l.src[l.pos]
	switch {
	case strings.HasPrefix(l.src[l.pos:], "/*"):
		return &lexError{line: l.line, reason: "unterminated block comment"}
	case c == '"':
		return l.lexString()
	case c == '@' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '"':
		return l.lexVerbatimString()
	case c == '\'':
		return l.lexChar()
	case c >= '0' && c <= '9':
		l.lexNumber()
		return nil
	case c == '_' || c == '@' || c >= utf8.RuneSelf || unicode.IsLetter(rune(c)):
		if l.lexIdent() {
			return nil
		}
	}
	l.emit(tokPunct, string(c), l.line)
	l.pos++
	return nil
}

func (l *lexer) lexIdent() bool {
	start := l.pos
	if l.src[l.pos] == '@' {
		l.pos++
	}
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.pos += size
	}
	text := strings.TrimPrefix(l.src[start:l.pos], "@")
	if text == "" {
		l.pos = start
		return false
	}
	l.emit(tokIdent, text, l.line)
	return true
}

func (l *lexer) lexNumber() {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '_' || unicode.IsLetter(rune(c)) {
			l.pos++
			continue
		}
		break
	}
	l.emit(tokNumber, l.src[start:l.pos], l.line)
}

func (l *lexer) lexString() error {
	line := l.line
	var b strings.Builder
	l.pos++
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			l.emit(tokString, b.String(), line)
			return nil
		case '\n':
			return &lexError{line: line, reason: "unterminated string literal"}
		case '\\':
			if l.pos+1 >= len(l.src) {
				return &lexError{line: line, reason: "unterminated string literal"}
			}
			b.WriteByte(unescape(l.src[l.pos+1]))
			l.pos += 2
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return &lexError{line: line, reason: "unterminated string literal"}
}

func (l *lexer) lexVerbatimString() error {
	line := l.line
	var b strings.Builder
	l.pos += 2
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '"' {
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '"' {
				b.WriteByte('"')
				l.pos += 2
				continue
			}
			l.pos++
			l.emit(tokString, b.String(), line)
			return nil
		}
		if c == '\n' {
			l.line++
		}
		b.WriteByte(c)
		l.pos++
	}
	return &lexError{line: line, reason: "unterminated verbatim string literal"}
}

func (l *lexer) lexChar() error {
	line := l.line
	i := l.pos + 1
	var value string
	switch {
	case i+1 < len(l.src) && l.src[i] == '\\':
		value = string(unescape(l.src[i+1]))
		i += 2
	case i < len(l.src) && l.src[i] != '\n' && l.src[i] != '\'':
		_, size := utf8.DecodeRuneInString(l.src[i:])
		value = l.src[i : i+size]
		i += size
	}
	if i >= len(l.src) || l.src[i] != '\'' {
		return &lexError{line: line, reason: "unterminated character literal"}
	}
	l.pos = i + 1
	l.emit(tokString, value, line)
	return nil
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return c
	}
}
