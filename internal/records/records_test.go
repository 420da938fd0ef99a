package records

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/segtest"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

func buf(ws ...uint16) *word.Buffer {
	return word.New(segtest.Bytes(ws...))
}

func TestDecodeHeader(t *testing.T) {
	seg := segtest.New()
	seg.Definitions = true
	seg.OuterCtx = 4
	seg.Stamps[0] = segtest.Stamp(1, 2, 0x12345678)
	seg.T("se").Add(1, 2, 3)

	h, err := DecodeHeader(word.New(seg.Bytes()))
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if !h.DefinitionsFile || h.OuterCtx != 4 {
		t.Errorf("header flags = %+v", h)
	}
	if want := (Stamp{Net: 1, Host: 2, Time: 0x12345678}); h.Version != want {
		t.Errorf("Version = %+v, want %+v", h.Version, want)
	}
	if h.SE.Offset != HeaderWords || h.SE.Size != 3 {
		t.Errorf("SE block = %v", h.SE)
	}
	if len(h.Blocks()) != 16 {
		t.Errorf("Blocks() = %d entries", len(h.Blocks()))
	}

	seg.VersionIdent = 8139
	if _, err := DecodeHeader(word.New(seg.Bytes())); !errors.Is(err, decodeerr.ErrFormat) {
		t.Errorf("wrong version = %v, want format error", err)
	}
}

func TestStringPoolCumulativeOffsets(t *testing.T) {
	pool, err := DecodeStringPool(buf(segtest.StringBody("abcdefghijklmnopqrst", 22)...))
	if err != nil {
		t.Fatalf("DecodeStringPool: %v", err)
	}
	cumulative := []uint16{5, 5, 9, 20}
	want := []string{"abcde", "", "fghi", "jklmnopqrst"}
	var prev uint16
	for i, ss := range cumulative {
		got, err := pool.Slice(prev, ss)
		if err != nil {
			t.Fatalf("Slice(%d, %d): %v", prev, ss, err)
		}
		if got != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got, want[i])
		}
		prev = ss
	}
	if _, err := pool.Slice(9, 21); !errors.Is(err, decodeerr.ErrBounds) {
		t.Errorf("Slice past length = %v", err)
	}
}

func TestStringPoolConsumesMaxLength(t *testing.T) {
	ws := append(segtest.StringBody("ab", 5), 0xffff)
	b := buf(ws...)
	sub, _ := b.Range(0, len(ws)-1)
	if _, err := DecodeStringPool(sub); err != nil {
		t.Fatalf("DecodeStringPool: %v", err)
	}
	if _, err := DecodeStringPool(b); !errors.Is(err, decodeerr.ErrFormat) {
		t.Errorf("trailing word = %v, want format error", err)
	}
	if _, err := DecodeStringPool(buf(6, 4, 0, 0)); !errors.Is(err, decodeerr.ErrFormat) {
		t.Errorf("length > maxLength = %v, want format error", err)
	}
}

func TestDecodeHT(t *testing.T) {
	r, err := DecodeHT(buf(word.Pack(word.Flag(0, true), word.Field{First: 3, Last: 15, Value: 7}), 42))
	if err != nil {
		t.Fatalf("DecodeHT: %v", err)
	}
	want := HTRecord{AnyInternal: true, Link: 7, SSIndex: 42}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("HT mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeContext(t *testing.T) {
	tests := []struct {
		name string
		ws   []uint16
		want ContextRecord
	}{
		{
			name: "simple",
			ws:   segtest.Context(10, 1, 0, 6),
			want: ContextRecord{SEList: 10, Level: 1, Extension: &SimpleCtx{CtxNew: 6}},
		},
		{
			name: "included",
			ws:   segtest.Context(12, 0, 1, 8, segtest.Included(5, 2, true, false)...),
			want: ContextRecord{SEList: 12, Extension: &IncludedCtx{
				Chain: 8, Copied: ClosureFull, Module: 5, Map: 2, Closed: true,
			}},
		},
		{
			name: "imported",
			ws:   segtest.Context(0, 0, 2, 4),
			want: ContextRecord{Extension: &ImportedCtx{IncludeLink: 4}},
		},
		{
			name: "nil",
			ws:   segtest.Context(0, 0, 3, 0),
			want: ContextRecord{Extension: &NilCtx{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buf(tt.ws...)
			got, err := DecodeContext(b)
			if err != nil {
				t.Fatalf("DecodeContext: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if b.Remaining() != 0 {
				t.Errorf("%d words left", b.Remaining())
			}
		})
	}
}

func TestDecodeIdentifier(t *testing.T) {
	id := segtest.ID{Public: true, Ctx: 3, Constant: true, Type: 1, Info: 9, Value: 0xfffe, Hash: 5, LinkTag: segtest.Linked, Link: 20}
	r, err := DecodeSE(buf(id.Words()...))
	if err != nil {
		t.Fatalf("DecodeSE: %v", err)
	}
	want := SERecord{Body: &Identifier{
		Public: true, IdCtx: 3, Constant: true, IdType: TypeTYPE, IdInfo: 9, IdValue: 0xfffe, Hash: 5,
		CtxLink: &LinkedLink{Link: 20},
	}}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if !r.Body.(*Identifier).IsType() {
		t.Errorf("IsType() = false")
	}

	for tag, want := range map[uint16]CtxLink{segtest.Terminal: TerminalLink{}, segtest.Sequential: SequentialLink{}} {
		r, err := DecodeSE(buf(segtest.ID{LinkTag: tag}.Words()...))
		if err != nil {
			t.Fatalf("DecodeSE(tag %d): %v", tag, err)
		}
		if got := r.Body.(*Identifier).CtxLink; got != want {
			t.Errorf("tag %d link = %#v", tag, got)
		}
	}

	bad := segtest.ID{LinkTag: 3}.Words()
	if _, err := DecodeSE(buf(bad...)); !errors.Is(err, decodeerr.ErrFormat) {
		t.Errorf("link tag 3 = %v, want format error", err)
	}
}

func TestDecodeConstructor(t *testing.T) {
	tests := []struct {
		name string
		ws   []uint16
		want Constructor
	}{
		{"mode", segtest.Cons(uint8(ClassMode), 0), &ModeCons{}},
		{"basic", segtest.Cons(uint8(ClassBasic), segtest.Flags(8)|uint8(CodeINT), 16), &BasicCons{Ordered: true, Code: CodeINT, Length: 16}},
		{"enumerated", segtest.Cons(uint8(ClassEnumerated), segtest.Flags(9), segtest.CtxWord(7), 3),
			&EnumeratedCons{MachineDep: true, ValueCtx: 7, NValues: 3}},
		{"record", segtest.Cons(uint8(ClassRecord), segtest.Flags(12), 32, word.Pack(word.Flag(2, true))|segtest.CtxWord(9)),
			&RecordCons{Hints: RecordHints{PrivateFields: true}, Length: 32, MachineDep: true, FieldCtx: 9}},
		{"linked record", segtest.Cons(uint8(ClassRecord), 0, 2, word.Pack(word.Flag(4, true))|segtest.CtxWord(9), 40),
			&RecordCons{Length: 2, FieldCtx: 9, Linked: true, LinkType: 40}},
		{"ref", segtest.Cons(uint8(ClassRef), segtest.Flags(10, 13), 2), &RefCons{ReadOnly: true, Basing: true, RefType: TypeANY}},
		{"array", segtest.Cons(uint8(ClassArray), segtest.Flags(8), 10, 12), &ArrayCons{Packed: true, IndexType: 10, ComponentType: 12}},
		{"arraydesc", segtest.Cons(uint8(ClassArrayDesc), segtest.Flags(9), 10), &ArrayDescCons{ReadOnly: true, DescribedType: 10}},
		{"transfer", segtest.Cons(uint8(ClassTransfer), 2<<4, 0, 14), &TransferCons{Mode: ModeSignal, TypeOut: 14}},
		{"definition", segtest.Cons(uint8(ClassDefinition), 0, segtest.CtxWord(2)), &DefinitionCons{DefCtx: 2}},
		{"union", segtest.Cons(uint8(ClassUnion), segtest.Flags(10), segtest.CtxWord(5), 30), &UnionCons{Controlled: true, CaseCtx: 5, TagSei: 30}},
		{"sequence", segtest.Cons(uint8(ClassSequence), segtest.Flags(9), 30, 3), &SequenceCons{Controlled: true, TagSei: 30, ComponentType: 3}},
		{"relative", segtest.Cons(uint8(ClassRelative), 0, 1, 2, 3), &RelativeCons{BaseType: 1, OffsetType: 2, ResultType: 3}},
		{"subrange", segtest.Cons(uint8(ClassSubrange), segtest.Flags(9), 4, 0xffff, 10), &SubrangeCons{Empty: true, RangeType: 4, Origin: -1, Range: 10}},
		{"long", segtest.Cons(uint8(ClassLong), 0, 4), &LongCons{RangeType: 4}},
		{"real", segtest.Cons(uint8(ClassReal), 0, 4), &RealCons{RangeType: 4}},
		{"opaque", segtest.Cons(uint8(ClassOpaque), segtest.Flags(8), 32, 0), &OpaqueCons{LengthKnown: true, Length: 32}},
		{"zone", segtest.Cons(uint8(ClassZone), segtest.Flags(8)), &ZoneCons{Counted: true}},
		{"any", segtest.Cons(uint8(ClassAny), 0), &AnyCons{}},
		{"nil", segtest.Cons(uint8(ClassNil), 0), &NilCons{}},
		{"bits", segtest.Cons(uint8(ClassBits), 0, 3), &BitsCons{Length: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buf(tt.ws...)
			r, err := DecodeSE(b)
			if err != nil {
				t.Fatalf("DecodeSE: %v", err)
			}
			if diff := cmp.Diff(tt.want, r.Body); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if c := r.Body.(Constructor); c.Class() != tt.want.Class() {
				t.Errorf("Class() = %v", c.Class())
			}
			if b.Remaining() != 0 {
				t.Errorf("%d words left", b.Remaining())
			}
		})
	}
}

func TestDecodeConstructorRejectsUnknownTags(t *testing.T) {
	tests := []struct {
		name string
		ws   []uint16
	}{
		{"class 20", segtest.Cons(20, 0, 0, 0, 0)},
		{"class 31", segtest.Cons(31, 0, 0, 0, 0)},
		{"transfer mode 7", segtest.Cons(uint8(ClassTransfer), 7<<4, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSE(buf(tt.ws...)); !errors.Is(err, decodeerr.ErrFormat) {
				t.Errorf("DecodeSE = %v, want format error", err)
			}
		})
	}
}

func TestDecodeConstructorKeepsSpareBits(t *testing.T) {
	tests := []struct {
		name string
		ws   []uint16
		want Constructor
	}{
		{"enumerated", segtest.Cons(uint8(ClassEnumerated), segtest.Flags(15), word.Pack(word.Field{First: 0, Last: 4, Value: 0x11})|segtest.CtxWord(7), 3),
			&EnumeratedCons{ValueCtx: 7, NValues: 3, Spare: 0x31}},
		{"ref", segtest.Cons(uint8(ClassRef), segtest.Flags(14, 15), 0x8000|2), &RefCons{RefType: TypeANY, Spare: 0xe}},
		{"array", segtest.Cons(uint8(ClassArray), segtest.Flags(9, 15), 0x4000|10, 0xc000|12),
			&ArrayCons{IndexType: 10, ComponentType: 12, Spare: 0x417}},
		{"transfer", segtest.Cons(uint8(ClassTransfer), segtest.Flags(15), 0x4000|6, 8), &TransferCons{TypeIn: 6, TypeOut: 8, Spare: 0b0001_01_00}},
		{"sequence", segtest.Cons(uint8(ClassSequence), segtest.Flags(11), 30, 0x8000|3), &SequenceCons{TagSei: 30, ComponentType: 3, Spare: 0b10000_00_10}},
		{"linked record", segtest.Cons(uint8(ClassRecord), 0, 2, word.Pack(word.Flag(4, true))|segtest.CtxWord(9), 0xc000|40),
			&RecordCons{Length: 2, FieldCtx: 9, Linked: true, LinkType: 40, Spare: 0b11}},
		{"any", segtest.Cons(uint8(ClassAny), 0x81), &AnyCons{Spare: 0x81}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DecodeSE(buf(tt.ws...))
			if err != nil {
				t.Fatalf("DecodeSE: %v", err)
			}
			if diff := cmp.Diff(tt.want, r.Body); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeBodyKeepsSpareBits(t *testing.T) {
	ws := segtest.Body(false, 3, 30, 12, 5, 2, true, 40, 44, 0, 0)
	ws[0] |= 0x4000
	ws[1] |= 0x8000
	ws[3] |= word.Pack(word.Field{First: 3, Last: 4, Value: 1})
	ws[6] |= 0x4000
	ws[9] |= 0xc000
	ws[10] |= word.Pack(word.Field{First: 5, Last: 7, Value: 5})

	r, err := DecodeBody(buf(ws...))
	if err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	want := BodyRecord{
		Link:     BodyLink{Index: 3},
		FirstSon: 30, Type: 12, Level: 2, LocalCtx: 5,
		Info:  &InternalBody{FrameSize: 8, Spare: 0b01_00},
		Kind:  &CallableBody{ID: 40, IOType: 44, Nesting: OuterNesting{}, Spare: 0b11_101},
		Spare: 0b1_10_00_01,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBody(t *testing.T) {
	t.Run("callable inner", func(t *testing.T) {
		b := buf(segtest.Body(true, 0, 30, 12, 5, 2, true, 40, 44, 1, 6)...)
		r, err := DecodeBody(b)
		if err != nil {
			t.Fatalf("DecodeBody: %v", err)
		}
		want := BodyRecord{
			Link:     BodyLink{Parent: true, Index: 0},
			FirstSon: 30, Type: 12, Level: 2, LocalCtx: 5,
			Info: &InternalBody{FrameSize: 8},
			Kind: &CallableBody{ID: 40, IOType: 44, Nesting: &InnerNesting{FrameOffset: 6}},
		}
		if diff := cmp.Diff(want, r); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("other", func(t *testing.T) {
		r, err := DecodeBody(buf(segtest.Body(false, 0, uint16(BTNull), 12, 5, 1, false, 0, 0, 0, 0)...))
		if err != nil {
			t.Fatalf("DecodeBody: %v", err)
		}
		if diff := cmp.Diff(&OtherBody{RelOffset: 4}, r.Kind); diff != "" {
			t.Errorf("kind mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("catch", func(t *testing.T) {
		r, err := DecodeBody(buf(segtest.Body(false, 0, 0, 0, 0, 0, true, 0, 0, 2, 3)...))
		if err != nil {
			t.Fatalf("DecodeBody: %v", err)
		}
		if diff := cmp.Diff(&CatchNesting{Index: 3}, r.Kind.(*CallableBody).Nesting); diff != "" {
			t.Errorf("nesting mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("unknown nesting", func(t *testing.T) {
		_, err := DecodeBody(buf(segtest.Body(false, 0, 0, 0, 0, 0, true, 0, 0, 3, 0)...))
		if !errors.Is(err, decodeerr.ErrFormat) {
			t.Errorf("nesting 3 = %v, want format error", err)
		}
	})
}

func TestDecodeTreeLink(t *testing.T) {
	tests := []struct {
		w    uint16
		want TreeLink
	}{
		{segtest.TreeLink(segtest.LinkSubtree, 0), SubtreeLink{Index: NullIndex}},
		{segtest.TreeLink(segtest.LinkSubtree, 9), SubtreeLink{Index: 9}},
		{segtest.TreeLink(segtest.LinkHash, 3), HashLink{Index: 3}},
		{segtest.TreeLink(segtest.LinkSymbol, 0x3fff), SymbolLink{Index: 0x3fff}},
		{segtest.WordLiteral(6), LiteralLink{Lit: WordLit{Index: 6}}},
		{segtest.StringLiteral(0x1ffe), LiteralLink{Lit: StringLit{Index: 0x1ffe}}},
	}
	for _, tt := range tests {
		got, err := DecodeTreeLink(tt.w)
		if err != nil {
			t.Fatalf("DecodeTreeLink(0x%04x): %v", tt.w, err)
		}
		if got != tt.want {
			t.Errorf("DecodeTreeLink(0x%04x) = %#v, want %#v", tt.w, got, tt.want)
		}
	}
	if !IsNullTree(NullTree) || IsNullTree(HashLink{}) {
		t.Errorf("IsNullTree mismatch")
	}
}

func TestDecodeTreeNode(t *testing.T) {
	ws := segtest.Node(uint8(NodePlus), 77, segtest.TreeLink(segtest.LinkSymbol, 4), segtest.WordLiteral(0))
	n, err := DecodeTreeNode(buf(ws...))
	if err != nil {
		t.Fatalf("DecodeTreeNode: %v", err)
	}
	want := TreeNode{Name: NodePlus, Info: 77, Sons: []TreeLink{SymbolLink{Index: 4}, LiteralLink{Lit: WordLit{}}}}
	if diff := cmp.Diff(want, n); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if n.Son(3) != NullTree || n.Son(1) != (SymbolLink{Index: 4}) {
		t.Errorf("Son() mismatch")
	}
	if NodePlus.String() != "plus" || NodeMerge.String() != "merge" {
		t.Errorf("node names misaligned: %s %s", NodePlus, NodeMerge)
	}

	bad := segtest.Node(250, 0)
	if _, err := DecodeTreeNode(buf(bad...)); !errors.Is(err, decodeerr.ErrFormat) {
		t.Errorf("node name 250 = %v, want format error", err)
	}
}

func TestDecodeLiterals(t *testing.T) {
	short, err := DecodeLT(buf(segtest.ShortLit(42)...))
	if err != nil {
		t.Fatalf("DecodeLT(short): %v", err)
	}
	if diff := cmp.Diff(LTRecord{Link: LTNull, Value: &ShortLiteral{Value: 42}}, short); diff != "" {
		t.Errorf("short mismatch (-want +got):\n%s", diff)
	}

	long, err := DecodeLT(buf(segtest.LongLit(3, 0x0000, 0x0001)...))
	if err != nil {
		t.Fatalf("DecodeLT(long): %v", err)
	}
	v, ok := long.Value.(*LongLiteral).Uint32()
	if !ok || v != 0x10000 {
		t.Errorf("long value = 0x%x, %v", v, ok)
	}

	if _, err := DecodeLT(buf(word.Pack(word.Field{First: 13, Last: 15, Value: 2}), 0)); !errors.Is(err, decodeerr.ErrFormat) {
		t.Errorf("literal kind 2 = %v, want format error", err)
	}

	master, err := DecodeST(buf(segtest.MasterString("hello")...))
	if err != nil {
		t.Fatalf("DecodeST(master): %v", err)
	}
	if got := master.Value.(*MasterString).Body.String(); got != "hello" {
		t.Errorf("master text = %q", got)
	}
	slave, err := DecodeST(buf(0x8000 | 5))
	if err != nil {
		t.Fatalf("DecodeST(slave): %v", err)
	}
	if diff := cmp.Diff(&SlaveString{Link: 5}, slave.Value); diff != "" {
		t.Errorf("slave mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeExt(t *testing.T) {
	r, err := DecodeExt(buf(segtest.Ext(2, 17, segtest.TreeLink(segtest.LinkSubtree, 6))...))
	if err != nil {
		t.Fatalf("DecodeExt: %v", err)
	}
	if diff := cmp.Diff(ExtRecord{Type: ExtDefault, Sei: 17, Tree: SubtreeLink{Index: 6}}, r); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, err := DecodeExt(buf(segtest.Ext(3, 0, 0)...)); !errors.Is(err, decodeerr.ErrFormat) {
		t.Errorf("extension type none = %v, want format error", err)
	}
}

func TestDecodeMD(t *testing.T) {
	r, err := DecodeMD(buf(segtest.MD(segtest.Stamp(0, 7, 100), 3, 4, 6, 2, 0xfffe)...))
	if err != nil {
		t.Fatalf("DecodeMD: %v", err)
	}
	want := MDRecord{Stamp: Stamp{Host: 7, Time: 100}, ModuleID: 3, FileID: 4, Ctx: 6, DefaultImport: 2, File: 0xfffe}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestStampString(t *testing.T) {
	// 1-Jan-1970 00:00:00 GMT
	s := Stamp{Net: 3, Host: 4, Time: 2177452800}
	if got, want := s.String(), "3#4#1-Jan-70 00:00:00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !(Stamp{}).IsNull() {
		t.Errorf("zero stamp not null")
	}
}
