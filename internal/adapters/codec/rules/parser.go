package rules

import (
	"errors"

	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/zerr"
)

const moduleRulesBase = "ModuleRules"

// parser walks the token stream of a single ModuleRules file.
type parser struct {
	path string
	toks []token
	pos  int
}

// parse reads the one module declared in src.
func parse(path string, src []byte) (*domain.Descriptor, error) {
	toks, err := tokenize(string(src))
	if err != nil {
		var lexErr *lexError
		if errors.As(err, &lexErr) {
			return nil, malformed(path, lexErr.reason, lexErr.line)
		}
		return nil, malformed(path, err.Error(), 0)
	}

	p := &parser{path: path, toks: toks}
	if line, ok := p.balanced(); !ok {
		return nil, malformed(path, "unbalanced braces", line)
	}

	name, classBody, err := p.moduleClass()
	if err != nil {
		return nil, err
	}

	start, end, err := p.constructor(name, classBody)
	if err != nil {
		return nil, err
	}

	d := domain.NewDescriptor(name)
	d.Source = path
	p.pos = start
	if err := p.statements(d, end); err != nil {
		return nil, err
	}
	return d, nil
}

func malformed(path, reason string, line int) error {
	err := zerr.With(zerr.Wrap(domain.ErrMalformedDescriptor, reason), "path", path)
	if line > 0 {
		err = zerr.With(err, "line", line)
	}
	return err
}

func (p *parser) peek(offset int) token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

// balanced checks that every brace, bracket and parenthesis closes in order.
func (p *parser) balanced() (int, bool) {
	closers := map[string]string{"}": "{", "]": "[", ")": "("}
	var stack []token
	for _, t := range p.toks {
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "{", "[", "(":
			stack = append(stack, t)
		case "}", "]", ")":
			if len(stack) == 0 || stack[len(stack)-1].text != closers[t.text] {
				return t.line, false
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return stack[len(stack)-1].line, false
	}
	return 0, true
}

// matching returns the index of the token closing the group opened at i.
func (p *parser) matching(i int) int {
	open := p.toks[i].text
	var closeText string
	switch open {
	case "{":
		closeText = "}"
	case "[":
		closeText = "]"
	default:
		closeText = ")"
	}
	depth := 0
	for j := i; j < len(p.toks); j++ {
		switch {
		case p.toks[j].isPunct(open):
			depth++
		case p.toks[j].isPunct(closeText):
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(p.toks) - 1
}

// moduleClass locates the single class deriving from ModuleRules and returns its name
// and the index of its opening brace.
func (p *parser) moduleClass() (string, int, error) {
	var (
		name  string
		body  int
		count int
		line  int
	)
	for i := 0; i+3 < len(p.toks); i++ {
		if !p.toks[i].is(tokIdent, "class") || p.toks[i+1].kind != tokIdent || !p.toks[i+2].isPunct(":") {
			continue
		}
		base, next := p.dottedName(i + 3)
		if base != moduleRulesBase {
			continue
		}
		next = p.interfaces(next)
		if !p.toks[next].isPunct("{") {
			continue
		}
		count++
		if count == 1 {
			name, body = p.toks[i+1].text, next
			continue
		}
		line = p.toks[i].line
	}

	switch count {
	case 0:
		return "", 0, malformed(p.path, "missing module declaration", 0)
	case 1:
		return name, body, nil
	default:
		return "", 0, malformed(p.path, "multiple module declarations", line)
	}
}

// interfaces steps over `, IFoo, Ns.IBar` following the base class at i.
func (p *parser) interfaces(i int) int {
	for p.toks[i].isPunct(",") && p.toks[i+1].kind == tokIdent {
		_, i = p.dottedName(i + 1)
	}
	return i
}

// dottedName reads Ident(.Ident)* starting at i and returns its last segment and the
// index following it.
func (p *parser) dottedName(i int) (string, int) {
	var last string
	for i < len(p.toks) && p.toks[i].kind == tokIdent {
		last = p.toks[i].text
		i++
		if !p.toks[i].isPunct(".") || p.toks[i+1].kind != tokIdent {
			break
		}
		i++
	}
	return last, i
}

// constructor finds `Name(...) [: base(...)] { ... }` directly inside the class body and
// returns the token range of its body.
func (p *parser) constructor(name string, classBody int) (int, int, error) {
	classEnd := p.matching(classBody)
	depth := 0
	for i := classBody + 1; i < classEnd; i++ {
		t := p.toks[i]
		switch {
		case t.isPunct("{"):
			depth++
		case t.isPunct("}"):
			depth--
		case depth == 0 && t.is(tokIdent, name) && p.toks[i+1].isPunct("(") && !p.toks[i-1].is(tokIdent, "new"):
			j := p.matching(i+1) + 1
			if p.toks[j].isPunct(":") {
				if _, next := p.dottedName(j + 1); p.toks[next].isPunct("(") {
					j = p.matching(next) + 1
				}
			}
			if !p.toks[j].isPunct("{") {
				return 0, 0, malformed(p.path, "module constructor has no body", t.line)
			}
			return j + 1, p.matching(j), nil
		}
	}
	return 0, 0, malformed(p.path, "missing module constructor", p.toks[classBody].line)
}

// statements loads every unconditional declaration in [p.pos, end).
func (p *parser) statements(d *domain.Descriptor, end int) error {
	for p.pos < end {
		start := p.pos
		if p.declaration(d) {
			continue
		}
		p.pos = start
		if err := p.skipStatement(end); err != nil {
			return err
		}
	}
	return nil
}

// declaration consumes a property Add/AddRange call or a setting assignment.
// It reports false without side effects on the descriptor when the statement is
// anything else.
func (p *parser) declaration(d *domain.Descriptor) bool {
	if p.peek(0).is(tokIdent, "this") && p.peek(1).isPunct(".") {
		p.pos += 2
	}
	target := p.peek(0)
	if target.kind != tokIdent || isKeyword(target.text) {
		return false
	}
	p.pos++

	switch {
	case p.peek(0).isPunct(".") && p.peek(1).is(tokIdent, "Add") && p.peek(2).isPunct("("):
		p.pos += 3
		value := p.peek(0)
		if value.kind != tokString || !p.peek(1).isPunct(")") || !p.peek(2).isPunct(";") {
			return false
		}
		p.pos += 3
		d.Append(domain.Property(target.text), value.text)
		return true

	case p.peek(0).isPunct(".") && p.peek(1).is(tokIdent, "AddRange") && p.peek(2).isPunct("("):
		p.pos += 3
		values, ok := p.stringArray()
		if !ok || !p.peek(0).isPunct(")") || !p.peek(1).isPunct(";") {
			return false
		}
		p.pos += 2
		d.Append(domain.Property(target.text), values...)
		return true

	case p.peek(0).isPunct("="):
		p.pos++
		value, ok := p.scalar()
		if !ok || !p.peek(0).isPunct(";") {
			return false
		}
		p.pos++
		d.SetSetting(target.text, value)
		return true
	}
	return false
}

// stringArray reads `new string[] { "a", "b", }`, `new[] { ... }` or
// `new List<string> { ... }`. Elements that are not plain string literals are skipped.
func (p *parser) stringArray() ([]string, bool) {
	if !p.peek(0).is(tokIdent, "new") {
		return nil, false
	}
	p.pos++
	switch {
	case p.peek(0).is(tokIdent, "List") && p.peek(1).isPunct("<") &&
		p.peek(2).is(tokIdent, "string") && p.peek(3).isPunct(">"):
		p.pos += 4
		if p.peek(0).isPunct("(") && p.peek(1).isPunct(")") {
			p.pos += 2
		}
	default:
		if p.peek(0).is(tokIdent, "string") {
			p.pos++
		}
		if !p.peek(0).isPunct("[") || !p.peek(1).isPunct("]") {
			return nil, false
		}
		p.pos += 2
	}
	if !p.peek(0).isPunct("{") {
		return nil, false
	}
	end := p.matching(p.pos)
	p.pos++

	values := []string{}
	for p.pos < end {
		t := p.peek(0)
		if t.kind == tokString && (p.peek(1).isPunct(",") || p.pos+1 == end) {
			values = append(values, t.text)
			p.pos++
		} else {
			p.skipElement(end)
		}
		if p.peek(0).isPunct(",") {
			p.pos++
		}
	}
	p.pos = end + 1
	return values, true
}

// skipElement advances to the next `,` at nesting depth zero or to end.
func (p *parser) skipElement(end int) {
	for p.pos < end && !p.peek(0).isPunct(",") {
		switch t := p.peek(0); {
		case t.isPunct("(") || t.isPunct("[") || t.isPunct("{"):
			p.pos = p.matching(p.pos) + 1
		default:
			p.pos++
		}
	}
}

// scalar reads a string, number, boolean or dotted enum reference.
// Enum references keep their last segment.
func (p *parser) scalar() (string, bool) {
	t := p.peek(0)
	switch {
	case t.kind == tokString:
		p.pos++
		return t.text, true
	case t.kind == tokNumber:
		p.pos++
		return t.text, true
	case t.isPunct("-") && p.peek(1).kind == tokNumber:
		p.pos += 2
		return "-" + p.toks[p.pos-1].text, true
	case t.kind == tokIdent && !isKeyword(t.text):
		last, next := p.dottedName(p.pos)
		p.pos = next
		return last, true
	}
	return "", false
}

// skipStatement steps over one statement, including any nested blocks.
func (p *parser) skipStatement(end int) error {
	t := p.peek(0)
	switch {
	case t.isPunct(";"):
		p.pos++
		return nil
	case t.isPunct("{"):
		p.pos = p.matching(p.pos) + 1
		return nil
	case t.kind == tokIdent:
		switch t.text {
		case "if", "while", "for", "foreach", "switch", "lock", "using", "fixed":
			p.pos++
			if p.peek(0).isPunct("(") {
				p.pos = p.matching(p.pos) + 1
			}
			if t.text == "switch" || p.pos >= end {
				return p.skipBlockOrStatement(end)
			}
			return p.skipStatement(end)
		case "else", "do", "try", "finally", "unsafe", "checked", "unchecked":
			p.pos++
			return p.skipStatement(end)
		case "catch":
			p.pos++
			if p.peek(0).isPunct("(") {
				p.pos = p.matching(p.pos) + 1
			}
			return p.skipStatement(end)
		}
	}
	return p.skipToSemicolon(end)
}

func (p *parser) skipBlockOrStatement(end int) error {
	if p.pos < end && p.peek(0).isPunct("{") {
		p.pos = p.matching(p.pos) + 1
		return nil
	}
	return p.skipToSemicolon(end)
}

// skipToSemicolon advances past the next `;` at nesting depth zero. A brace group that
// closes at depth zero and is not followed by an operator also ends the statement.
func (p *parser) skipToSemicolon(end int) error {
	line := p.peek(0).line
	for p.pos < end {
		t := p.peek(0)
		switch {
		case t.isPunct(";"):
			p.pos++
			return nil
		case t.isPunct("(") || t.isPunct("[") || t.isPunct("{"):
			closing := p.matching(p.pos)
			p.pos = closing + 1
			if t.isPunct("{") && p.pos < end && !continuesExpression(p.peek(0)) {
				return nil
			}
		default:
			p.pos++
		}
	}
	return malformed(p.path, "expected ';'", line)
}

func continuesExpression(t token) bool {
	if t.kind != tokPunct {
		return false
	}
	switch t.text {
	case ";", ")", ",", ".", "?", ":", "+", "-", "*", "/", "=", "<", ">", "|", "&", "!":
		return true
	}
	return false
}

func isKeyword(s string) bool {
	switch s {
	case "if", "else", "while", "for", "foreach", "do", "switch", "case", "default",
		"try", "catch", "finally", "return", "throw", "break", "continue",
		"new", "var", "using", "lock", "fixed", "unsafe", "checked", "unchecked",
		"string", "bool", "int", "float", "double", "null", "base", "this":
		return true
	}
	return false
}
