package listing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
)

func referencef(sei records.SEIndex, format string, args ...any) error {
	e := decodeerr.Newf(decodeerr.Reference, format, args...)
	e.Table = records.TableSE
	e.Ordinal = int(sei)
	return e
}

// scalarConstant formats a one-word value by its type. ok is false when
// the type is not a scalar; s is then the unsigned value.
func (p *printer) scalarConstant(typeSei records.SEIndex, v uint16) (s string, ok bool, err error) {
	for steps := 0; steps <= maxNesting; steps++ {
		if name, err := p.typeName(typeSei); err != nil {
			return "", false, err
		} else if name == "BOOLEAN" && v <= 1 {
			return [...]string{"FALSE", "TRUE"}[v], true, nil
		}
		_, c, err := p.g.UnderlyingType(typeSei)
		if err != nil {
			return "", false, err
		}
		switch c := c.(type) {
		case *records.EnumeratedCons:
			name, found, err := p.g.EnumName(typeSei, v)
			if err != nil {
				return "", false, err
			}
			if !found {
				name = strconv.Itoa(int(v))
			}
			return name, true, nil
		case *records.BasicCons:
			switch c.Code {
			case records.CodeCHAR:
				return charLiteral(v), true, nil
			case records.CodeINT:
				return signedOrNot(true, v), true, nil
			default:
				return signedOrNot(false, v), true, nil
			}
		case *records.SubrangeCons:
			_, under, err := p.g.UnderlyingType(c.RangeType)
			if err != nil {
				return "", false, err
			}
			if b, isBasic := under.(*records.BasicCons); isBasic && b.Code == records.CodeINT {
				return signedOrNot(c.Origin < 0, v), true, nil
			}
			typeSei = c.RangeType
		default:
			return signedOrNot(false, v), false, nil
		}
	}
	return "", false, referencef(typeSei, "subrange chain exceeds %d levels", maxNesting)
}

// typeName returns the name of a type identifier, or "" for a
// constructor.
func (p *printer) typeName(sei records.SEIndex) (string, error) {
	e, err := p.g.Entry(sei)
	if err != nil {
		return "", err
	}
	if id, ok := e.Body.(*records.Identifier); ok && id.IsType() {
		return p.g.HashString(id.Hash)
	}
	return "", nil
}

// longConstant formats a two-word value, signed when the type is a LONG
// INTEGER.
func (p *printer) longConstant(typeSei records.SEIndex, v uint32) (string, error) {
	if !typeSei.IsNull() {
		_, c, err := p.g.UnderlyingType(typeSei)
		if err != nil {
			return "", err
		}
		if l, ok := c.(*records.LongCons); ok {
			_, under, err := p.g.UnderlyingType(l.RangeType)
			if err != nil {
				return "", err
			}
			if b, ok := under.(*records.BasicCons); ok && b.Code == records.CodeINT {
				return strconv.FormatInt(int64(int32(v)), 10), nil
			}
		}
	}
	return strconv.FormatUint(uint64(v), 10), nil
}

func signedOrNot(signed bool, v uint16) string {
	if signed {
		return strconv.Itoa(int(int16(v)))
	}
	return strconv.Itoa(int(v))
}

// charLiteral spells a printable character as 'c and any other as its
// octal code followed by C.
func charLiteral(v uint16) string {
	if v > ' ' && v < 0x7F {
		return "'" + string(rune(v))
	}
	return fmt.Sprintf("%oC", v)
}

// quote doubles embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
