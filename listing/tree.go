package listing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
)

var binaryOps = map[records.NodeName]string{
	records.NodeOr:    "OR",
	records.NodeAnd:   "AND",
	records.NodeRelE:  "=",
	records.NodeRelN:  "#",
	records.NodeRelL:  "<",
	records.NodeRelGE: ">=",
	records.NodeRelG:  ">",
	records.NodeRelLE: "<=",
	records.NodeIn:    "IN",
	records.NodeNotIn: "NOT IN",
	records.NodePlus:  "+",
	records.NodeMinus: "-",
	records.NodeTimes: "*",
	records.NodeDiv:   "/",
	records.NodeMod:   "MOD",
}

var prefixOps = map[records.NodeName]string{
	records.NodeNot:    "NOT ",
	records.NodeUMinus: "-",
	records.NodeAddr:   "@",
}

var builtins = map[records.NodeName]string{
	records.NodeAll:       "ALL",
	records.NodeSize:      "SIZE",
	records.NodeFirst:     "FIRST",
	records.NodeLast:      "LAST",
	records.NodeLengthen:  "LONG",
	records.NodeShorten:   "SHORTEN",
	records.NodeAbs:       "ABS",
	records.NodeMin:       "MIN",
	records.NodeMax:       "MAX",
	records.NodePred:      "PRED",
	records.NodeSucc:      "SUCC",
	records.NodeArrayDesc: "DESCRIPTOR",
	records.NodeLength:    "LENGTH",
	records.NodeBase:      "BASE",
	records.NodeLoophole:  "LOOPHOLE",
	records.NodeNarrow:    "NARROW",
	records.NodeIsType:    "ISTYPE",
	records.NodeFloat:     "FLOAT",
	records.NodeNew:       "NEW",
	records.NodeTypeCode:  "CODE",
	records.NodeOrd:       "ORD",
	records.NodeVal:       "VAL",
}

// intervals maps interval nodes to their brackets.
var intervals = map[records.NodeName][2]string{
	records.NodeIntOO: {"(", ")"},
	records.NodeIntOC: {"(", "]"},
	records.NodeIntCO: {"[", ")"},
	records.NodeIntCC: {"[", "]"},
}

// expr renders a parse tree as an expression. A bare literal is
// formatted by hint when hint is not SENull.
func (p *printer) expr(st state, link records.TreeLink, hint records.SEIndex) (string, error) {
	switch l := link.(type) {
	case records.SubtreeLink:
		if l.Index.IsNull() {
			return "", nil
		}
		st, err := st.enter(records.TableTree, uint16(l.Index))
		if err != nil {
			return "", err
		}
		n, err := p.g.Node(l.Index)
		if err != nil {
			return "", err
		}
		return p.node(st, n, hint)
	case records.HashLink:
		return p.g.HashString(l.Index)
	case records.SymbolLink:
		return p.symbol(st, l.Index)
	case records.LiteralLink:
		return p.literal(l.Lit, hint)
	default:
		return "", fmt.Errorf("listing: unknown tree link %T", link)
	}
}

// symbol renders a resolved identifier by name and a constructor as an
// inline type.
func (p *printer) symbol(st state, sei records.SEIndex) (string, error) {
	e, err := p.g.Entry(sei)
	if err != nil {
		return "", err
	}
	if id, ok := e.Body.(*records.Identifier); ok {
		if id.IsType() {
			return p.qualifiedName(id)
		}
		return p.g.HashString(id.Hash)
	}
	return p.inlineType(st, sei)
}

func (p *printer) literal(lit records.LitRecord, hint records.SEIndex) (string, error) {
	switch l := lit.(type) {
	case records.WordLit:
		rec, err := p.g.Literal(l.Index)
		if err != nil {
			return "", err
		}
		switch v := rec.Value.(type) {
		case *records.ShortLiteral:
			if hint.IsNull() {
				return strconv.Itoa(int(v.Value)), nil
			}
			s, _, err := p.scalarConstant(hint, v.Value)
			return s, err
		case *records.LongLiteral:
			if u, ok := v.Uint32(); ok {
				return p.longConstant(hint, u)
			}
			ws := make([]string, len(v.Words))
			for i, w := range v.Words {
				ws[i] = strconv.Itoa(int(w))
			}
			return "[" + strings.Join(ws, ", ") + "]", nil
		}
		return "", fmt.Errorf("listing: unknown literal %T", rec.Value)
	case records.StringLit:
		s, err := p.g.StringText(l.Index)
		if err != nil {
			return "", err
		}
		return quote(s), nil
	default:
		return "", fmt.Errorf("listing: unknown literal link %T", lit)
	}
}

// operand renders a son, parenthesized when it is itself a binary
// expression.
func (p *printer) operand(st state, link records.TreeLink) (string, error) {
	s, err := p.expr(st, link, records.SENull)
	if err != nil {
		return "", err
	}
	if sub, ok := link.(records.SubtreeLink); ok && !sub.Index.IsNull() {
		n, err := p.g.Node(sub.Index)
		if err != nil {
			return "", err
		}
		if _, binary := binaryOps[n.Name]; binary {
			return "(" + s + ")", nil
		}
	}
	return s, nil
}

// sons renders every non-empty son.
func (p *printer) sons(st state, n *records.TreeNode) ([]string, error) {
	out := make([]string, 0, len(n.Sons))
	for _, son := range n.Sons {
		s, err := p.expr(st, son, records.SENull)
		if err != nil {
			return nil, err
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (p *printer) node(st state, n *records.TreeNode, hint records.SEIndex) (string, error) {
	if op, ok := binaryOps[n.Name]; ok {
		a, err := p.operand(st, n.Son(1))
		if err != nil {
			return "", err
		}
		b, err := p.operand(st, n.Son(2))
		if err != nil {
			return "", err
		}
		return a + " " + op + " " + b, nil
	}
	if op, ok := prefixOps[n.Name]; ok {
		a, err := p.operand(st, n.Son(1))
		return op + a, err
	}
	if kw, ok := builtins[n.Name]; ok {
		args, err := p.sons(st, n)
		return kw + "[" + strings.Join(args, ", ") + "]", err
	}
	if br, ok := intervals[n.Name]; ok {
		args, err := p.sons(st, n)
		return br[0] + strings.Join(args, "..") + br[1], err
	}

	switch n.Name {
	case records.NodeDot, records.NodeCDot, records.NodeDollar:
		sep := "."
		if n.Name == records.NodeDollar {
			sep = "$"
		}
		args, err := p.sons(st, n)
		return strings.Join(args, sep), err
	case records.NodeUpArrow:
		a, err := p.operand(st, n.Son(1))
		return a + "^", err
	case records.NodeList:
		args, err := p.sons(st, n)
		return strings.Join(args, ", "), err
	case records.NodeApply, records.NodeConstruct, records.NodeRowCons, records.NodeUnion, records.NodeIndex:
		head, err := p.expr(st, n.Son(1), records.SENull)
		if err != nil {
			return "", err
		}
		args, err := p.expr(st, n.Son(2), records.SENull)
		return head + "[" + args + "]", err
	case records.NodeNil:
		t, err := p.expr(st, n.Son(1), records.SENull)
		if t == "" {
			return "NIL", err
		}
		return "NIL[" + t + "]", err
	case records.NodeVoid, records.NodeNull:
		return "NULL", nil
	case records.NodeClit:
		if lit, ok := n.Son(1).(records.LiteralLink); ok {
			if wl, ok := lit.Lit.(records.WordLit); ok {
				rec, err := p.g.Literal(wl.Index)
				if err != nil {
					return "", err
				}
				if v, ok := rec.Value.(*records.ShortLiteral); ok {
					return charLiteral(v.Value), nil
				}
			}
		}
		return p.expr(st, n.Son(1), hint)
	case records.NodeLlit, records.NodeMwConst, records.NodeCast, records.NodeCheck,
		records.NodePad, records.NodeChop, records.NodeSafen:
		return p.expr(st, n.Son(1), hint)
	case records.NodeIfX:
		args := make([]string, 3)
		for i := range args {
			s, err := p.expr(st, n.Son(i+1), records.SENull)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return "IF " + args[0] + " THEN " + args[1] + " ELSE " + args[2], nil
	}

	args, err := p.sons(st, n)
	return n.Name.String() + "[" + strings.Join(args, ", ") + "]", err
}
