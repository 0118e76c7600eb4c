package compiler

// Options controls how a pattern is compiled.
type Options struct {
	// DotAll makes . match \n and \r as well.
	DotAll bool
}

// compiler holds the state of a single compilation.
// Nothing escapes it until the whole pattern has been accepted.
type compiler struct {
	src   string
	pos   int
	code  []Inst
	arena []byte
}

// Compile translates pattern into a Program.
// On failure it returns a *Error and no program.
func Compile(pattern string, opts Options) (*Program, error) {
	c := &compiler{
		src:   pattern,
		code:  make([]Inst, 0, len(pattern)+1),
		arena: []byte{0},
	}

	for c.pos < len(c.src) {
		if err := c.token(); err != nil {
			return nil, err
		}
	}
	c.code = append(c.code, Inst{Op: End})

	return &Program{
		Code:   c.code,
		Arena:  c.arena,
		DotAll: opts.DotAll,
		Source: pattern,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, opts Options) *Program {
	prog, err := Compile(pattern, opts)
	if err != nil {
		panic(err)
	}
	return prog
}

// token compiles one logical token starting at c.pos.
func (c *compiler) token() error {
	start := c.pos
	ch := c.src[c.pos]

	switch ch {
	case '^':
		return c.emit(start, Inst{Op: StartAnchor}, 1)
	case '$':
		return c.emit(start, Inst{Op: EndAnchor}, 1)
	case '.':
		return c.emit(start, Inst{Op: AnyChar}, 1)
	case '*', '+', '?':
		if !c.quantifiable() {
			return c.emit(start, Inst{Op: Literal, Char: ch}, 1)
		}
		return c.emit(start, Inst{Op: quantifierOp(ch)}, 1)
	case '\\':
		if c.pos+1 >= len(c.src) {
			return errorAt(ErrDanglingEscape, start, c.src)
		}
		next := c.src[c.pos+1]
		if op, ok := escapeOps[next]; ok {
			return c.emit(start, Inst{Op: op}, 2)
		}
		return c.emit(start, Inst{Op: Literal, Char: next}, 2)
	case '[':
		return c.class()
	default:
		return c.emit(start, Inst{Op: Literal, Char: ch}, 1)
	}
}

// class compiles a bracket expression into the arena.
func (c *compiler) class() error {
	start := c.pos
	i := c.pos + 1
	op := CharClass
	if i < len(c.src) && c.src[i] == '^' {
		op = NegatedCharClass
		i++
	}

	lo := len(c.arena)
	for {
		if i >= len(c.src) {
			return errorAt(ErrUnterminatedClass, start, c.src)
		}
		ch := c.src[i]
		if ch == ']' {
			break
		}
		if ch == '\\' {
			if i+1 >= len(c.src) {
				return errorAt(ErrDanglingEscape, i, c.src)
			}
			c.arena = append(c.arena, ch, c.src[i+1])
			i += 2
			continue
		}
		c.arena = append(c.arena, ch)
		i++
	}
	hi := len(c.arena)
	c.arena = append(c.arena, 0)
	if len(c.arena) > MaxClassBytes {
		return errorAt(ErrClassTooLarge, start, c.src)
	}

	return c.emit(start, Inst{Op: op, Lo: lo, Hi: hi}, i+1-start)
}

// emit appends an instruction and advances past width bytes of source.
// One slot is always kept free for the End sentinel.
func (c *compiler) emit(offset int, in Inst, width int) error {
	if len(c.code)+1 >= MaxInstructions {
		return errorAt(ErrPatternTooComplex, offset, c.src)
	}
	c.code = append(c.code, in)
	c.pos += width
	return nil
}

// quantifiable reports whether a quantifier at the current position has
// an instruction to modify.
func (c *compiler) quantifiable() bool {
	if len(c.code) == 0 {
		return false
	}
	prev := c.code[len(c.code)-1].Op
	return prev != StartAnchor && !prev.IsQuantifier()
}

func quantifierOp(ch byte) Opcode {
	switch ch {
	case '?':
		return ZeroOrOne
	case '*':
		return ZeroOrMore
	default:
		return OneOrMore
	}
}
