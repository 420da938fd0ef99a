package listing

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"rsc.io/diff"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/segtest"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
	"github.com/yokwe/mesa-emulator-unix-sub002/symtab"
)

// module is the listing of the segment built by newModule.
const module = `-- Foo.bcd

DIRECTORY
  Bar: FROM "Bar";

Foo = BEGIN
  R: TYPE = MACHINE DEPENDENT RECORD [
    a (0:0..7): INTEGER,
    b (0:8..15): CHARACTER];
  Ptr: TYPE = POINTER TO READONLY CHARACTER;
  Untyped: TYPE = POINTER;
  A: TYPE = PACKED ARRAY [0..9] OF CHARACTER;
  S: TYPE = [-1..1];
  Q: PROCEDURE [x: INTEGER] RETURNS [CHARACTER];
  k: INTEGER = 5;
  limit: INTEGER = 2 * (k + 1);
  c: CHARACTER = 'A;
  Mode: TYPE = MACHINE DEPENDENT {off(0), on(4), idle(5)};
  initial: Mode = on;
  V: TYPE = RECORD [
    tag: SELECT kind: Mode FROM
      off => [x: INTEGER],
      on, idle => [],
      ENDCASE];
  h: Bar.Handle;
END.
`

type fixture struct {
	seg      *segtest.Segment
	rCons    uint16
	arrCons  uint16
	loopCons uint16
	r        uint16
}

func record(ctx uint16, machineDep, argument bool) []uint16 {
	return segtest.Cons(segtest.ClassRecord, 0, 16,
		word.Pack(word.Flag(0, argument), word.Flag(2, machineDep), word.Field{First: 5, Last: 15, Value: ctx}))
}

// scope adds a simple context whose chain starts at the next se entry.
func scope(s *segtest.Segment) uint16 {
	return s.T("ctx").Add(segtest.Context(s.T("se").Next(), 0, segtest.CtxSimple, 0)...)
}

func newModule() *fixture {
	f := &fixture{seg: segtest.Standard()}
	s := f.seg
	se, ctx := s.T("se"), s.T("ctx")
	n := s.Names("Foo", "Foo.bcd", "Bar", "Bar.bcd", "Handle", "R", "a", "b", "Ptr", "Untyped",
		"A", "S", "Q", "x", "k", "limit", "c", "Mode", "off", "on", "idle", "initial", "V", "tag", "kind", "h")

	s.T("md").Add(segtest.MD(segtest.Stamp(0, 0, 0), n["Foo"], n["Foo.bcd"], 0, 0, 0)...)
	barMd := s.T("md").Add(segtest.MD(segtest.Stamp(0, 0, 0), n["Bar"], n["Bar.bcd"], 0, 0, 0)...)

	intCons := se.Add(segtest.Cons(segtest.ClassBasic, 1, 16)...)
	charCons := se.Add(segtest.Cons(segtest.ClassBasic, 2, 16)...)

	// interface Bar, included, exporting an opaque Handle
	handleCons := se.Add(segtest.Cons(segtest.ClassOpaque, 0, 0, 0)...)
	barCtx := ctx.Add(segtest.Context(se.Next(), 0, segtest.CtxIncluded, 0, segtest.Included(barMd, 0, true, true)...)...)
	handle := s.Chain(segtest.ID{Ctx: barCtx, Public: true, Type: segtest.TypeTYPE, Info: handleCons, Hash: n["Handle"]})[0]
	defCons := se.Add(segtest.Cons(segtest.ClassDefinition, 0, segtest.CtxWord(barCtx))...)
	dirCtx := scope(s)
	s.Chain(segtest.ID{Ctx: dirCtx, Type: defCons, Hash: n["Bar"]})
	s.DirectoryCtx = dirCtx

	rCtx := ctx.Next()
	f.rCons = se.Add(record(rCtx, true, false)...)
	scope(s)
	s.Chain(
		segtest.ID{Ctx: rCtx, Type: intCons, Value: 0, Info: 8, Hash: n["a"]},
		segtest.ID{Ctx: rCtx, Type: charCons, Value: 8, Info: 8, Hash: n["b"]},
	)

	ptrCons := se.Add(segtest.Cons(segtest.ClassRef, segtest.Flags(10), charCons)...)
	anyPtr := se.Add(segtest.Cons(segtest.ClassRef, 0, segtest.TypeANY)...)
	index := se.Add(segtest.Cons(segtest.ClassSubrange, 0, intCons, 0, 9)...)
	f.arrCons = se.Add(segtest.Cons(segtest.ClassArray, segtest.Flags(8), index, charCons)...)
	small := se.Add(segtest.Cons(segtest.ClassSubrange, 0, intCons, 0xFFFF, 2)...)

	inCtx := ctx.Next()
	in := se.Add(record(inCtx, false, true)...)
	scope(s)
	s.Chain(segtest.ID{Ctx: inCtx, Type: intCons, Hash: n["x"]})
	outCtx := ctx.Next()
	out := se.Add(record(outCtx, false, true)...)
	scope(s)
	s.Chain(segtest.ID{Ctx: outCtx, Type: charCons})
	procCons := se.Add(segtest.Cons(segtest.ClassTransfer, 0, in, out)...)

	modeCtx := ctx.Next()
	modeCons := se.Add(segtest.Cons(segtest.ClassEnumerated, segtest.Flags(9), segtest.CtxWord(modeCtx), 3)...)
	scope(s)
	s.Chain(
		segtest.ID{Ctx: modeCtx, Constant: true, Type: modeCons, Value: 0, Hash: n["off"]},
		segtest.ID{Ctx: modeCtx, Constant: true, Type: modeCons, Value: 4, Hash: n["on"]},
		segtest.ID{Ctx: modeCtx, Constant: true, Type: modeCons, Value: 5, Hash: n["idle"]},
	)

	// variant record; the tag field's type and the kind's type are
	// patched once the union and Mode exist
	vCtx := ctx.Next()
	vCons := se.Add(record(vCtx, false, false)...)
	scope(s)
	tagField := s.Chain(segtest.ID{Ctx: vCtx, Hash: n["tag"]})[0]
	armCtx := ctx.Next()
	armOff := se.Add(segtest.Cons(segtest.ClassRecord, 0, 16,
		word.Pack(word.Flag(4, true), word.Field{First: 5, Last: 15, Value: armCtx}), vCons)...)
	scope(s)
	s.Chain(segtest.ID{Ctx: armCtx, Type: intCons, Hash: n["x"]})
	armEmpty := se.Add(record(0, false, false)...)
	kind := s.Chain(segtest.ID{Hash: n["kind"]})[0]
	caseCtx := ctx.Next()
	unionCons := se.Add(segtest.Cons(segtest.ClassUnion, segtest.Flags(10), segtest.CtxWord(caseCtx), kind)...)
	scope(s)
	s.Chain(
		segtest.ID{Ctx: caseCtx, Type: segtest.TypeTYPE, Info: armOff, Value: 0, Hash: n["off"]},
		segtest.ID{Ctx: caseCtx, Type: segtest.TypeTYPE, Info: armEmpty, Value: 4, Hash: n["on"]},
		segtest.ID{Ctx: caseCtx, Type: segtest.TypeTYPE, Info: armEmpty, Value: 5, Hash: n["idle"]},
	)
	se.Words[tagField+1] = unionCons

	f.loopCons = se.Add(segtest.Cons(segtest.ClassLong, 0, se.Next())...)

	outer := ctx.Next()
	ids := s.Chain(
		segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: f.rCons, Hash: n["R"]},
		segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: ptrCons, Hash: n["Ptr"]},
		segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: anyPtr, Hash: n["Untyped"]},
		segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: f.arrCons, Hash: n["A"]},
		segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: small, Hash: n["S"]},
		segtest.ID{Ctx: outer, Constant: true, Type: procCons, Hash: n["Q"]},
		segtest.ID{Ctx: outer, Constant: true, Type: intCons, Value: 5, Hash: n["k"]},
		segtest.ID{Ctx: outer, Constant: true, Type: intCons, Hash: n["limit"]},
		segtest.ID{Ctx: outer, Constant: true, Type: charCons, Value: 'A', Hash: n["c"]},
		segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: modeCons, Hash: n["Mode"]},
		segtest.ID{Ctx: outer, Constant: true, Hash: n["initial"], Value: 4},
		segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: vCons, Hash: n["V"]},
		segtest.ID{Ctx: outer, Type: handle, Hash: n["h"]},
	)
	ctx.Add(segtest.Context(ids[0], 0, segtest.CtxNil, 0)...)
	s.OuterCtx = outer
	f.r = ids[0]
	k, limit, mode, initial := ids[6], ids[7], ids[9], ids[10]
	se.Words[kind+1] = mode
	se.Words[initial+1] = word.Pack(word.Flag(1, true), word.Field{First: 2, Last: 15, Value: mode})

	// limit = 2 * (k + 1)
	lit := s.T("lit")
	two, one := lit.Add(segtest.ShortLit(2)...), lit.Add(segtest.ShortLit(1)...)
	tree := s.T("tree")
	plus := tree.Add(segtest.Node(uint8(records.NodePlus), 0,
		segtest.TreeLink(segtest.LinkSymbol, k), segtest.WordLiteral(one))...)
	times := tree.Add(segtest.Node(uint8(records.NodeTimes), 0,
		segtest.WordLiteral(two), segtest.TreeLink(segtest.LinkSubtree, plus))...)
	s.T("ext").Add(segtest.Ext(0, limit, segtest.TreeLink(segtest.LinkSubtree, times))...)
	return f
}

func (f *fixture) decode(t *testing.T) *symtab.Graph {
	t.Helper()
	g, err := symtab.Decode(f.seg.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return g
}

func noVersions() Options {
	opts := DefaultOptions()
	opts.Versions = false
	return opts
}

func TestPrintModule(t *testing.T) {
	g := newModule().decode(t)
	var buf bytes.Buffer
	if err := PrintModule(&buf, g, noVersions()); err != nil {
		t.Fatalf("PrintModule: %v", err)
	}
	if got := buf.String(); got != module {
		t.Fatalf("PrintModule():\n%s", diff.Format(got, module))
	}
}

func TestPrintModuleIsRepeatable(t *testing.T) {
	g := newModule().decode(t)
	var first, second bytes.Buffer
	if err := PrintModule(&first, g, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if err := PrintModule(&second, g, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Fatalf("second listing differs:\n%s", diff.Format(second.String(), first.String()))
	}
	want := "-- Foo.bcd\n-- version 0#0#0, source 0#0#0\n\n"
	if !strings.HasPrefix(first.String(), want) {
		t.Errorf("listing = %q, want prefix %q", first.String(), want)
	}
}

func TestMinimalModule(t *testing.T) {
	s := segtest.Standard()
	n := s.Names("Foo", "T")
	intCons := s.T("se").Add(segtest.Cons(segtest.ClassBasic, 1, 16)...)
	outer := s.T("ctx").Next()
	ids := s.Chain(segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: intCons, Hash: n["T"]})
	s.T("ctx").Add(segtest.Context(ids[0], 0, segtest.CtxNil, 0)...)
	s.OuterCtx = outer
	s.T("md").Add(segtest.MD(segtest.Stamp(0, 0, 0), n["Foo"], 0, 0, 0, 0)...)

	g, err := symtab.Decode(s.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var buf bytes.Buffer
	if err := PrintModule(&buf, g, noVersions()); err != nil {
		t.Fatalf("PrintModule: %v", err)
	}
	want := "-- Foo\n\nFoo = BEGIN\n  T: TYPE = INTEGER;\nEND.\n"
	if got := buf.String(); got != want {
		t.Fatalf("PrintModule():\n%s", diff.Format(got, want))
	}
}

func TestPrintEntry(t *testing.T) {
	f := newModule()
	g := f.decode(t)
	var buf bytes.Buffer
	if err := PrintEntry(&buf, g, records.SEIndex(f.r), noVersions()); err != nil {
		t.Fatalf("PrintEntry: %v", err)
	}
	want := "R: TYPE = MACHINE DEPENDENT RECORD [\n  a (0:0..7): INTEGER,\n  b (0:8..15): CHARACTER];\n"
	if got := buf.String(); got != want {
		t.Fatalf("PrintEntry():\n%s", diff.Format(got, want))
	}
}

func TestTypeString(t *testing.T) {
	f := newModule()
	g := f.decode(t)

	tests := []struct {
		name string
		sei  uint16
		bits BitMode
		want string
	}{
		{"array", f.arrCons, BitsAuto, "PACKED ARRAY [0..9] OF CHARACTER"},
		{"named", f.r, BitsAuto, "R"},
		{"bits never", f.rCons, BitsNever, "MACHINE DEPENDENT RECORD [\n  a: INTEGER,\n  b: CHARACTER]"},
		{"any", segtest.TypeANY, BitsAuto, "ANY"},
		{"mode", segtest.TypeTYPE, BitsAuto, "TYPE"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := noVersions()
			opts.Bits = test.bits
			got, err := TypeString(g, records.SEIndex(test.sei), opts)
			if err != nil {
				t.Fatalf("TypeString: %v", err)
			}
			if got != test.want {
				t.Errorf("TypeString() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestCyclicTypeFails(t *testing.T) {
	f := newModule()
	g := f.decode(t)
	_, err := TypeString(g, records.SEIndex(f.loopCons), DefaultOptions())
	if !errors.Is(err, symtab.ErrReference) {
		t.Fatalf("TypeString(cycle) err = %v, want reference error", err)
	}
}

func TestCharLiteral(t *testing.T) {
	tests := map[uint16]string{
		'A':  "'A",
		'~':  "'~",
		' ':  "40C",
		0:    "0C",
		0x7F: "177C",
	}
	for v, want := range tests {
		if got := charLiteral(v); got != want {
			t.Errorf("charLiteral(%#x) = %q, want %q", v, got, want)
		}
	}
	if got := quote(`say "hi"`); got != `"say ""hi"""` {
		t.Errorf("quote = %s", got)
	}
}

func TestParseBitMode(t *testing.T) {
	for _, m := range []BitMode{BitsAuto, BitsAlways, BitsNever} {
		got, err := ParseBitMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseBitMode(%q) = %v, %v", m, got, err)
		}
	}
	if _, err := ParseBitMode("sometimes"); err == nil {
		t.Error("ParseBitMode(sometimes) succeeded")
	}
	var m BitMode
	if err := m.UnmarshalText([]byte("ALWAYS")); err != nil || m != BitsAlways {
		t.Errorf("UnmarshalText = %v, %v", m, err)
	}
}

// extended is the listing of the segment built by newExtended.
const extended = `-- Ext.bcd

Ext = BEGIN
  Size: PUBLIC TYPE = INTEGER ← 16;
  P: TYPE = RECORD [
    d: INTEGER ← 7,
    e: PUBLIC INTEGER];
  Q: TYPE = RECORD [
    f: PRIVATE INTEGER,
    g: INTEGER];
  S: TYPE = [0..9];
  first: INTEGER = FIRST[INTEGER];
  last: INTEGER = LAST[S];
  size: INTEGER = SIZE[P];
  big: LONG INTEGER = LONG[first];
  far: LONG INTEGER = 70000;
  neg: LONG INTEGER = -2;
  alias: INTEGER = Bar.x;
  all: ARRAY [0..9] OF INTEGER = ALL[0];
END.
`

// newExtended builds a module exercising defaults, visibility and the
// builtin forms of constant expressions.
func newExtended() *segtest.Segment {
	s := segtest.Standard()
	se, ctx := s.T("se"), s.T("ctx")
	n := s.Names("Ext", "Ext.bcd", "Size", "P", "d", "e", "Q", "f", "g", "S",
		"first", "last", "size", "big", "far", "neg", "alias", "all", "Bar", "x")
	s.T("md").Add(segtest.MD(segtest.Stamp(0, 0, 0), n["Ext"], n["Ext.bcd"], 0, 0, 0)...)

	intCons := se.Add(segtest.Cons(segtest.ClassBasic, 1, 16)...)
	longCons := se.Add(segtest.Cons(segtest.ClassLong, 0, intCons)...)
	small := se.Add(segtest.Cons(segtest.ClassSubrange, 0, intCons, 0, 9)...)
	arr := se.Add(segtest.Cons(segtest.ClassArray, 0, small, intCons)...)

	pCtx := ctx.Next()
	pCons := se.Add(record(pCtx, false, false)...)
	scope(s)
	pFields := s.Chain(
		segtest.ID{Ctx: pCtx, Type: intCons, Hash: n["d"]},
		segtest.ID{Ctx: pCtx, Public: true, Type: intCons, Hash: n["e"]},
	)

	// private fields: the unannotated default flips to PUBLIC
	qCtx := ctx.Next()
	qCons := se.Add(segtest.Cons(segtest.ClassRecord, segtest.Flags(12), 16, segtest.CtxWord(qCtx))...)
	scope(s)
	s.Chain(
		segtest.ID{Ctx: qCtx, Type: intCons, Hash: n["f"]},
		segtest.ID{Ctx: qCtx, Public: true, Type: intCons, Hash: n["g"]},
	)

	outer := ctx.Next()
	ids := s.Chain(
		segtest.ID{Ctx: outer, Public: true, Type: segtest.TypeTYPE, Info: intCons, Hash: n["Size"]},
		segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: pCons, Hash: n["P"]},
		segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: qCons, Hash: n["Q"]},
		segtest.ID{Ctx: outer, Type: segtest.TypeTYPE, Info: small, Hash: n["S"]},
		segtest.ID{Ctx: outer, Constant: true, Type: intCons, Hash: n["first"]},
		segtest.ID{Ctx: outer, Constant: true, Type: intCons, Hash: n["last"]},
		segtest.ID{Ctx: outer, Constant: true, Type: intCons, Hash: n["size"]},
		segtest.ID{Ctx: outer, Constant: true, Type: longCons, Hash: n["big"]},
		segtest.ID{Ctx: outer, Constant: true, Type: longCons, Hash: n["far"]},
		segtest.ID{Ctx: outer, Constant: true, Type: longCons, Hash: n["neg"]},
		segtest.ID{Ctx: outer, Constant: true, Type: intCons, Hash: n["alias"]},
		segtest.ID{Ctx: outer, Constant: true, Type: arr, Hash: n["all"]},
	)
	ctx.Add(segtest.Context(ids[0], 0, segtest.CtxNil, 0)...)
	s.OuterCtx = outer
	size, p, sType, first := ids[0], ids[1], ids[3], ids[4]

	lit := s.T("lit")
	zero := lit.Add(segtest.ShortLit(0)...)
	seven := lit.Add(segtest.ShortLit(7)...)
	sixteen := lit.Add(segtest.ShortLit(16)...)
	far := lit.Add(segtest.LongLit(0, 0x1170, 0x0001)...)
	neg := lit.Add(segtest.LongLit(0, 0xfffe, 0xffff)...)

	tree := s.T("tree")
	node := func(name records.NodeName, sons ...uint16) uint16 {
		return segtest.TreeLink(segtest.LinkSubtree, tree.Add(segtest.Node(uint8(name), 0, sons...)...))
	}
	symbol := func(sei uint16) uint16 { return segtest.TreeLink(segtest.LinkSymbol, sei) }

	ext := s.T("ext")
	const value, deflt = 0, 2
	ext.Add(segtest.Ext(deflt, size, segtest.WordLiteral(sixteen))...)
	ext.Add(segtest.Ext(deflt, pFields[0], segtest.WordLiteral(seven))...)
	ext.Add(segtest.Ext(value, ids[4], node(records.NodeFirst, symbol(intCons)))...)
	ext.Add(segtest.Ext(value, ids[5], node(records.NodeLast, symbol(sType)))...)
	ext.Add(segtest.Ext(value, ids[6], node(records.NodeSize, symbol(p)))...)
	ext.Add(segtest.Ext(value, ids[7], node(records.NodeLengthen, symbol(first)))...)
	ext.Add(segtest.Ext(value, ids[8], segtest.WordLiteral(far))...)
	ext.Add(segtest.Ext(value, ids[9], segtest.WordLiteral(neg))...)
	ext.Add(segtest.Ext(value, ids[10], node(records.NodeDot,
		segtest.TreeLink(segtest.LinkHash, n["Bar"]), segtest.TreeLink(segtest.LinkHash, n["x"])))...)
	ext.Add(segtest.Ext(value, ids[11], node(records.NodeAll, segtest.WordLiteral(zero)))...)
	return s
}

func TestPrintModuleDefaultsAndExpressions(t *testing.T) {
	g, err := symtab.Decode(newExtended().Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var buf bytes.Buffer
	if err := PrintModule(&buf, g, noVersions()); err != nil {
		t.Fatalf("PrintModule: %v", err)
	}
	if got := buf.String(); got != extended {
		t.Fatalf("PrintModule():\n%s", diff.Format(got, extended))
	}
}

func TestTypeStringClasses(t *testing.T) {
	s := segtest.Standard()
	se := s.T("se")
	n := s.Names("n")
	intCons := se.Add(segtest.Cons(segtest.ClassBasic, 1, 16)...)
	charCons := se.Add(segtest.Cons(segtest.ClassBasic, 2, 16)...)
	ref := func(to uint16, flags ...int) uint16 {
		return se.Add(segtest.Cons(segtest.ClassRef, segtest.Flags(flags...), to)...)
	}
	index := se.Add(segtest.Cons(segtest.ClassSubrange, 0, intCons, 0, 9)...)
	arr := se.Add(segtest.Cons(segtest.ClassArray, 0, index, charCons)...)
	tag := s.Chain(segtest.ID{Type: intCons, Hash: n["n"]})[0]
	base := ref(intCons, 9, 13)
	ptr := ref(intCons)

	tests := []struct {
		name string
		sei  uint16
		want string
	}{
		{"var", ref(intCons, 12), "VAR INTEGER"},
		{"var readonly", ref(intCons, 10, 12), "VAR READONLY INTEGER"},
		{"list", ref(intCons, 11), "LIST OF INTEGER"},
		{"ref", ref(intCons, 8), "REF INTEGER"},
		{"ref readonly", ref(intCons, 8, 10), "REF READONLY INTEGER"},
		{"ordered base pointer", base, "ORDERED BASE POINTER TO INTEGER"},
		{"base pointer", ref(intCons, 13), "BASE POINTER TO INTEGER"},
		{"readonly any", ref(segtest.TypeANY, 10), "POINTER TO READONLY ANY"},
		{"controlled sequence", se.Add(segtest.Cons(segtest.ClassSequence, segtest.Flags(8, 9), tag, charCons)...),
			"PACKED SEQUENCE n: INTEGER OF CHARACTER"},
		{"computed sequence", se.Add(segtest.Cons(segtest.ClassSequence, 0, tag, charCons)...),
			"SEQUENCE COMPUTED INTEGER OF CHARACTER"},
		{"relative", se.Add(segtest.Cons(segtest.ClassRelative, 0, base, ptr, ptr)...),
			"ORDERED BASE POINTER TO INTEGER RELATIVE POINTER TO INTEGER"},
		{"zone", se.Add(segtest.Cons(segtest.ClassZone, segtest.Flags(8))...), "ZONE"},
		{"uncounted zone", se.Add(segtest.Cons(segtest.ClassZone, 0)...), "UNCOUNTED ZONE"},
		{"descriptor", se.Add(segtest.Cons(segtest.ClassArrayDesc, segtest.Flags(9), arr)...),
			"DESCRIPTOR FOR READONLY ARRAY [0..9] OF CHARACTER"},
		{"empty subrange", se.Add(segtest.Cons(segtest.ClassSubrange, segtest.Flags(9), intCons, 0, 5)...), "[0..5)"},
	}

	g, err := symtab.Decode(s.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := TypeString(g, records.SEIndex(test.sei), DefaultOptions())
			if err != nil {
				t.Fatalf("TypeString: %v", err)
			}
			if got != test.want {
				t.Errorf("TypeString() = %q, want %q", got, test.want)
			}
		})
	}
}
