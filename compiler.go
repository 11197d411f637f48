package structread

import "fmt"

// compileScope tracks the positional name table for one frame being
// compiled: it maps names declared strictly earlier in this same
// Description to their physical opcode position, per the
// no-forward-references invariant (§3, §4.4). Anonymous opcodes (Seek)
// never enter the table, even if the user gave the field a name — Seek is
// unconditionally anonymous (§4.5).
type compileScope struct {
	index map[string]int
}

func newCompileScope() *compileScope {
	return &compileScope{index: make(map[string]int)}
}

// resolve looks up a (possibly dotted) reference against names declared so
// far in this scope, returning the positional index of the head and any
// residual field path.
func (s *compileScope) resolve(ref string) (index int, path []string, ok bool) {
	head, path := splitPath(ref)
	i, ok := s.index[head]
	return i, path, ok
}

// isAnonymous reports whether o is an opcode that produces no captured
// value (only Seek, currently) — per §4.3/§4.5, such opcodes still occupy a
// program slot but are never addressable and never appear in output.
func isAnonymous(o op) bool {
	_, ok := o.(opSeek)
	return ok
}

// Compile lowers a Description into an immutable, linear opcode Program,
// resolving every symbolic Var reference into a positional back-reference
// as it goes (§4.4). Compile accepts only a Description; CompileStruct is
// the entry point that returns an already-compiled *Program unchanged
// (idempotence, §4.4).
func Compile(desc Description) (*Program, error) {
	scope := newCompileScope()
	prog := &Program{compiled: true}

	for pos, field := range desc {
		if field.Name != "" {
			if _, exists := scope.index[field.Name]; exists {
				return nil, &ProgramError{Reason: fmt.Sprintf("duplicate field name %q", field.Name)}
			}
		}

		o, err := lower(field.Name, field.Reader, scope)
		if err != nil {
			return nil, err
		}

		prog.Ops = append(prog.Ops, o)
		prog.Names = append(prog.Names, field.Name)

		if field.Name != "" && !isAnonymous(o) {
			scope.index[field.Name] = pos
		}
	}

	return prog, nil
}

// lower converts one ReaderSpec into its op, recursively compiling nested
// structures and resolving Expr operands against scope.
func lower(fieldName string, spec ReaderSpec, scope *compileScope) (op, error) {
	switch s := spec.(type) {
	case UInt:
		return opInt{Signed: false, Bits: s.Bits, Order: s.Order}, nil

	case Int:
		return opInt{Signed: true, Bits: s.Bits, Order: s.Order}, nil

	case Float:
		return opFloat{Bits: s.Bits, Order: s.Order}, nil

	case Bytes:
		length, err := lowerExpr(fieldName, s.Length, scope)
		if err != nil {
			return nil, err
		}
		return opBytes{Length: length}, nil

	case Str:
		length, err := lowerExpr(fieldName, s.Length, scope)
		if err != nil {
			return nil, err
		}
		return opString{Length: length, Encoding: s.Encoding}, nil

	case Uvarint:
		return opVarint{}, nil

	case NestedDesc:
		sub, err := Compile(s.Description)
		if err != nil {
			return nil, err
		}
		return opNested{Program: sub}, nil

	case ListOf:
		count, err := lowerExpr(fieldName, s.Count, scope)
		if err != nil {
			return nil, err
		}
		elem, err := lower(fieldName, s.Element, scope)
		if err != nil {
			return nil, err
		}
		return opList{Count: count, Element: elem}, nil

	case Match:
		discrim, err := lowerExpr(fieldName, s.Discriminant, scope)
		if err != nil {
			return nil, err
		}
		branches := make([]op, len(s.Branches))
		for i, b := range s.Branches {
			bo, err := lower(fieldName, b, scope)
			if err != nil {
				return nil, err
			}
			branches[i] = bo
		}
		return opMatch{Discriminant: discrim, Branches: branches}, nil

	case PeekOf:
		inner, err := lower(fieldName, s.Inner, scope)
		if err != nil {
			return nil, err
		}
		return opPeek{Inner: inner}, nil

	case SeekTo:
		offset, err := lowerExpr(fieldName, s.Offset, scope)
		if err != nil {
			return nil, err
		}
		return opSeek{Offset: offset, Mode: s.Mode}, nil

	case Pos:
		return opPos{}, nil

	case Func:
		args := make([]source, len(s.Args))
		for i, a := range s.Args {
			src, err := lowerExpr(fieldName, a, scope)
			if err != nil {
				return nil, err
			}
			args[i] = src
		}
		return opFuncCall{Fn: s.Fn, Args: args}, nil

	case GroupOf:
		args := make([]source, len(s.Args))
		for i, a := range s.Args {
			src, err := lowerExpr(fieldName, a, scope)
			if err != nil {
				return nil, err
			}
			args[i] = src
		}
		return opGroup{Args: args}, nil

	default:
		return nil, &ProgramError{Reason: fmt.Sprintf("unknown reader spec %T", spec)}
	}
}

// lowerExpr resolves an Expr's Var reference (if any) against scope,
// compiles an inline spec (if any), or passes a literal through unchanged.
func lowerExpr(fieldName string, e Expr, scope *compileScope) (source, error) {
	switch e.kind {
	case exprLiteral:
		return litSource(e.literal), nil

	case exprVar:
		index, path, ok := scope.resolve(e.varName)
		if !ok {
			return source{}, &UnresolvedReferenceError{Field: fieldName, Reference: e.varName}
		}
		return refSource(index, path), nil

	case exprInline:
		o, err := lower(fieldName, e.inline, scope)
		if err != nil {
			return source{}, err
		}
		return inlineSource(o), nil

	default:
		return source{}, &ProgramError{Reason: "unknown expr kind"}
	}
}
