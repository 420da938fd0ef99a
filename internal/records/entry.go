package records

import (
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/table"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/word"
)

// SERecord is a semantic entry: an identifier or a type constructor.
type SERecord struct {
	Mark3 bool
	Mark4 bool
	Body  SEBody
}

// SEBody is *Identifier or one of the Constructor variants.
type SEBody interface {
	references() []table.Ref
}

// Identifier binds a name in a context.
//
// When IdType is TypeTYPE the identifier names a type and IdInfo is the
// SEIndex of its definition. For record fields IdValue is the bit offset
// and IdInfo the bit length; for constants IdValue is the value.
type Identifier struct {
	Extended  bool
	Public    bool
	IdCtx     CTXIndex
	Immutable bool
	Constant  bool
	IdType    SEIndex
	IdInfo    uint16
	IdValue   uint16
	Hash      HTIndex
	LinkSpace bool
	CtxLink   CtxLink
}

// IsType reports whether the identifier names a type.
func (id *Identifier) IsType() bool { return id.IdType == TypeTYPE }

// CtxLink continues a context's entry chain:
// TerminalLink, SequentialLink or *LinkedLink.
type CtxLink interface {
	ctxLink()
}

// TerminalLink ends the chain.
type TerminalLink struct{}

// SequentialLink continues with the next entry in table order.
type SequentialLink struct{}

// LinkedLink continues at Link.
type LinkedLink struct {
	Link  SEIndex
	Spare uint16
}

func (TerminalLink) ctxLink()   {}
func (SequentialLink) ctxLink() {}
func (*LinkedLink) ctxLink()    {}

func (id *Identifier) references() []table.Ref {
	refs := []table.Ref{
		ctxRef("idCtx", id.IdCtx),
		seRef("idType", id.IdType),
		htRef("hash", id.Hash),
	}
	if id.IsType() {
		refs = append(refs, seRef("idInfo", SEIndex(id.IdInfo)))
	}
	if l, ok := id.CtxLink.(*LinkedLink); ok {
		refs = append(refs, seRef("link", l.Link))
	}
	return refs
}

// DecodeSE reads a semantic entry.
func DecodeSE(b *word.Buffer) (SERecord, error) {
	w0, err := b.Get16()
	if err != nil {
		return SERecord{}, err
	}
	r := SERecord{Mark3: word.Bit(w0, 0), Mark4: word.Bit(w0, 1)}
	if word.Bit(w0, 2) {
		r.Body, err = decodeConstructor(b, w0)
	} else {
		r.Body, err = decodeIdentifier(b, w0)
	}
	if err != nil {
		return SERecord{}, err
	}
	return r, nil
}

func decodeIdentifier(b *word.Buffer, w0 uint16) (*Identifier, error) {
	ws, err := b.Words(4)
	if err != nil {
		return nil, err
	}
	id := &Identifier{
		Extended:  word.Bit(w0, 3),
		Public:    word.Bit(w0, 4),
		IdCtx:     CTXIndex(word.Bits(w0, 5, 15)),
		Immutable: word.Bit(ws[0], 0),
		Constant:  word.Bit(ws[0], 1),
		IdType:    SEIndex(word.Bits(ws[0], 2, 15)),
		IdInfo:    ws[1],
		IdValue:   ws[2],
		Hash:      HTIndex(word.Bits(ws[3], 0, 12)),
		LinkSpace: word.Bit(ws[3], 13),
	}
	switch tag := word.Bits(ws[3], 14, 15); tag {
	case 0:
		id.CtxLink = TerminalLink{}
	case 1:
		id.CtxLink = SequentialLink{}
	case 2:
		w, err := b.Get16()
		if err != nil {
			return nil, err
		}
		id.CtxLink = &LinkedLink{Link: SEIndex(word.Bits(w, 2, 15)), Spare: word.Bits(w, 0, 1)}
	default:
		return nil, decodeerr.Formatf("unknown identifier link tag %d", tag)
	}
	return id, nil
}

// References lists the relative indexes held by the entry.
func (r *SERecord) References() []table.Ref {
	return r.Body.references()
}
