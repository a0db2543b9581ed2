package parser

import (
	"strings"

	"tagdoc/internal/model"
)

// Scanner walks the text token by token. It tracks the most recent /** */
// block and forgets it as soon as ordinary code appears, so only a block
// followed by whitespace, comments, annotations and modifiers binds to the
// declaration.
type Scanner struct{}

// Locate implements Locator.
func (Scanner) Locate(text string) (model.LocateResult, error) {
	s := &scanState{text: text, runStart: -1}
	if strings.HasPrefix(text, bom) {
		s.pos = len(bom)
	}
	return s.run()
}

const bom = "\uFEFF"

type scanState struct {
	text     string
	pos      int
	doc      *model.DocBlock
	runStart int  // first annotation/modifier of the pending declaration
	inStmt   bool // inside a package/import statement, until ';'
}

func (s *scanState) run() (model.LocateResult, error) {
	for s.pos < len(s.text) {
		c := s.text[s.pos]
		switch {
		case isSpace(c):
			s.pos++
		case strings.HasPrefix(s.text[s.pos:], "//"):
			s.skipLine()
		case strings.HasPrefix(s.text[s.pos:], "/*"):
			if err := s.comment(); err != nil {
				return model.LocateResult{}, err
			}
		case c == '"' || c == '\'':
			s.code()
			s.skipQuoted()
		case c == '@':
			if s.atKeyword("@interface") {
				return s.declaration(s.pos, "@interface"), nil
			}
			if err := s.annotation(); err != nil {
				return model.LocateResult{}, err
			}
		case isIdentStart(c):
			start := s.pos
			word := s.ident()
			if s.inStmt {
				continue
			}
			if word == "non" && strings.HasPrefix(s.text[s.pos:], "-sealed") {
				s.pos += len("-sealed")
				word = "non-sealed"
			}
			switch {
			case modifiers[word]:
				if s.runStart < 0 {
					s.runStart = start
				}
			case typeKeywords[word] && (word != "record" || s.followedByIdent()):
				return s.declaration(start, word), nil
			default:
				s.code()
				s.inStmt = true
			}
		default:
			if c == ';' {
				s.inStmt = false
			}
			s.code()
			s.pos++
		}
	}
	return model.LocateResult{}, model.ErrNoDeclarationFound
}

func (s *scanState) declaration(keywordAt int, keyword string) model.LocateResult {
	anchor := keywordAt
	if s.runStart >= 0 {
		anchor = s.runStart
	}
	return model.LocateResult{
		Block:   s.doc,
		Anchor:  model.Anchor(anchor),
		Keyword: keyword,
	}
}

// code drops any pending header: it is not adjacent to a declaration.
func (s *scanState) code() {
	s.doc = nil
	s.runStart = -1
}

func (s *scanState) skipLine() {
	if i := strings.IndexByte(s.text[s.pos:], '\n'); i >= 0 {
		s.pos += i + 1
		return
	}
	s.pos = len(s.text)
}

// comment consumes a block comment and records it when it is a doc block.
func (s *scanState) comment() error {
	start := s.pos
	i := strings.Index(s.text[start+2:], "*/")
	if i < 0 {
		return model.ErrMalformedBlock
	}
	end := start + 2 + i + 2
	s.pos = end
	raw := s.text[start:end]
	if strings.HasPrefix(raw, "/**") && raw != "/**/" {
		s.doc = &model.DocBlock{Start: start, End: end, Raw: raw}
		s.runStart = -1
	}
	return nil
}

// skipQuoted consumes a string, text block or char literal.
func (s *scanState) skipQuoted() {
	if strings.HasPrefix(s.text[s.pos:], `"""`) {
		if i := strings.Index(s.text[s.pos+3:], `"""`); i >= 0 {
			s.pos += 3 + i + 3
		} else {
			s.pos = len(s.text)
		}
		return
	}
	quote := s.text[s.pos]
	s.pos++
	for s.pos < len(s.text) {
		switch s.text[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case quote, '\n':
			s.pos++
			return
		}
		s.pos++
	}
	if s.pos > len(s.text) {
		s.pos = len(s.text)
	}
}

// annotation consumes "@Name.Qualified(args)". Annotations keep the pending
// header alive.
func (s *scanState) annotation() error {
	if !s.inStmt && s.runStart < 0 {
		s.runStart = s.pos
	}
	s.pos++
	s.skipSpaces()
	for s.pos < len(s.text) && isIdentStart(s.text[s.pos]) {
		s.ident()
		if s.pos < len(s.text) && s.text[s.pos] == '.' {
			s.pos++
			continue
		}
		break
	}
	save := s.pos
	s.skipSpaces()
	if s.pos >= len(s.text) || s.text[s.pos] != '(' {
		s.pos = save
		return nil
	}
	depth := 0
	for s.pos < len(s.text) {
		switch c := s.text[s.pos]; {
		case c == '(':
			depth++
			s.pos++
		case c == ')':
			depth--
			s.pos++
			if depth == 0 {
				return nil
			}
		case c == '"' || c == '\'':
			s.skipQuoted()
		case strings.HasPrefix(s.text[s.pos:], "//"):
			s.skipLine()
		case strings.HasPrefix(s.text[s.pos:], "/*"):
			i := strings.Index(s.text[s.pos+2:], "*/")
			if i < 0 {
				return model.ErrMalformedBlock
			}
			s.pos += 2 + i + 2
		default:
			s.pos++
		}
	}
	return nil
}

func (s *scanState) ident() string {
	start := s.pos
	for s.pos < len(s.text) && isIdentPart(s.text[s.pos]) {
		s.pos++
	}
	return s.text[start:s.pos]
}

func (s *scanState) skipSpaces() {
	for s.pos < len(s.text) && isSpace(s.text[s.pos]) {
		s.pos++
	}
}

// atKeyword reports whether kw starts at the current position as a whole word.
func (s *scanState) atKeyword(kw string) bool {
	rest := s.text[s.pos:]
	if !strings.HasPrefix(rest, kw) {
		return false
	}
	return len(rest) == len(kw) || !isIdentPart(rest[len(kw)])
}

// followedByIdent tells the contextual keyword "record" from an identifier.
func (s *scanState) followedByIdent() bool {
	i := s.pos
	for i < len(s.text) && isSpace(s.text[i]) {
		i++
	}
	return i > s.pos && i < len(s.text) && isIdentStart(s.text[i])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
