package structread

import "fmt"

// interp bundles the two pieces of state an executing program needs: the
// stream it reads from and the context it threads values through. It is
// cheap and local to one parse call — nothing about it is retained past
// Execute returning, so distinct parses on independent streams may run
// concurrently (§5).
type interp struct {
	stream *Stream
	ctx    *Context
}

// Execute interprets prog against stream using ctx, which must already have
// its initial frame pushed (NewContext does this). It returns the resulting
// keyed Record for prog's top frame.
func Execute(prog *Program, stream *Stream, ctx *Context) (*Record, error) {
	in := &interp{stream: stream, ctx: ctx}
	return runProgram(in, prog)
}

// runProgram executes every opcode in prog against the interpreter's
// current (already-pushed) frame, capturing each result in order, then
// builds the resulting Record, excluding anonymous slots (Seek).
func runProgram(in *interp, prog *Program) (*Record, error) {
	for i, o := range prog.Ops {
		name := prog.Names[i]
		v, err := in.exec(o, name)
		if err != nil {
			return nil, err
		}
		in.ctx.capture(v)
	}

	f := in.ctx.top()
	names := make([]string, 0, len(prog.Names))
	values := make([]any, 0, len(prog.Names))
	for i, o := range prog.Ops {
		if isAnonymous(o) {
			continue
		}
		names = append(names, prog.Names[i])
		values = append(values, f.values[i])
	}
	return NewRecord(names, values), nil
}

// exec runs a single opcode and returns its captured value (nil for
// anonymous opcodes). fieldName is used only to annotate errors; it is ""
// when o is being run as an inline source rather than a named program
// position.
func (in *interp) exec(o op, fieldName string) (any, error) {
	switch v := o.(type) {
	case opInt:
		order := in.ctx.DefaultByteOrder
		if v.Order != nil {
			order = *v.Order
		}
		offset := in.stream.Tell()
		var val any
		var err error
		if v.Signed {
			val, err = in.stream.ReadInt(v.Bits, order)
		} else {
			val, err = in.stream.ReadUint(v.Bits, order)
		}
		return val, annotate(err, fieldName, offset)

	case opFloat:
		order := in.ctx.DefaultFloatOrder
		if v.Order != nil {
			order = *v.Order
		}
		offset := in.stream.Tell()
		val, err := in.stream.ReadFloat(v.Bits, order)
		return val, annotate(err, fieldName, offset)

	case opBytes:
		n, err := v.Length.evalNonNegInt(in, fieldName)
		if err != nil {
			return nil, err
		}
		offset := in.stream.Tell()
		val, err := in.stream.ReadRawBytes(n, in.ctx.BytesAsHex)
		return val, annotate(err, fieldName, offset)

	case opString:
		n, err := v.Length.evalNonNegInt(in, fieldName)
		if err != nil {
			return nil, err
		}
		offset := in.stream.Tell()
		raw, err := in.stream.Read(n)
		if err != nil {
			return nil, annotate(err, fieldName, offset)
		}
		enc := v.Encoding
		if enc == "" {
			enc = in.ctx.DefaultEncoding
		}
		s, err := DecodeString(raw, enc)
		if err != nil {
			return nil, &DecodeError{Field: fieldName, Offset: offset, Encoding: enc, Err: err}
		}
		return s, nil

	case opVarint:
		offset := in.stream.Tell()
		val, err := in.stream.ReadVarint()
		return val, annotate(err, fieldName, offset)

	case opNested:
		in.ctx.pushFrame()
		rec, err := runProgram(in, v.Program)
		in.ctx.popFrame()
		if err != nil {
			return nil, err
		}
		return rec, nil

	case opList:
		count, err := v.Count.evalNonNegInt(in, fieldName)
		if err != nil {
			return nil, err
		}
		out := make(Tuple, 0, count)
		for i := 0; i < count; i++ {
			val, err := in.exec(v.Element, fieldName)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil

	case opMatch:
		offset := in.stream.Tell()
		d, err := v.Discriminant.evalInt(in, fieldName)
		if err != nil {
			return nil, err
		}
		if d < 0 || int(d) >= len(v.Branches) {
			return nil, &NoMatchError{Field: fieldName, Offset: offset, Discrim: d, NumBranches: len(v.Branches)}
		}
		return in.exec(v.Branches[d], fieldName)

	case opPeek:
		pos := in.stream.Tell()
		val, err := in.exec(v.Inner, fieldName)
		if serr := in.stream.Seek(pos, SeekAbsolute); serr != nil {
			if ise, ok := serr.(*InvalidSeekError); ok {
				ise.Field = fieldName
			}
			return nil, serr
		}
		if err != nil {
			return nil, err
		}
		return val, nil

	case opSeek:
		off, err := v.Offset.evalInt(in, fieldName)
		if err != nil {
			return nil, err
		}
		if err := in.stream.Seek(int(off), v.Mode); err != nil {
			if ise, ok := err.(*InvalidSeekError); ok {
				ise.Field = fieldName
			}
			return nil, err
		}
		return nil, nil

	case opPos:
		return in.stream.Tell(), nil

	case opFuncCall:
		args := make([]any, len(v.Args))
		for i, a := range v.Args {
			val, err := a.eval(in, fieldName)
			if err != nil {
				return nil, err
			}
			args[i] = val
		}
		offset := in.stream.Tell()
		ret, err := v.Fn(args)
		if err != nil {
			return nil, &CallbackError{Field: fieldName, Offset: offset, Err: err}
		}
		return ret, nil

	case opGroup:
		out := make(Tuple, len(v.Args))
		for i, a := range v.Args {
			val, err := a.eval(in, fieldName)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil

	default:
		return nil, &ProgramError{Reason: fmt.Sprintf("unknown opcode %T", o)}
	}
}

// annotate fills in the field name and offset on the typed errors that
// leave them blank at construction time (the Stream layer doesn't know
// which field it's serving).
func annotate(err error, field string, offset int) error {
	switch e := err.(type) {
	case nil:
		return nil
	case *UnexpectedEndError:
		e.Field = field
		return e
	case *MalformedVarintError:
		e.Field = field
		return e
	case *InvalidSeekError:
		e.Field = field
		return e
	default:
		return err
	}
}
