// Package listing prints the declarations of a decoded symbol segment as
// Mesa-like source text.
package listing

import (
	"io"
	"strings"

	"github.com/yokwe/mesa-emulator-unix-sub002/internal/decodeerr"
	"github.com/yokwe/mesa-emulator-unix-sub002/internal/records"
	"github.com/yokwe/mesa-emulator-unix-sub002/symtab"
)

// maxNesting bounds type and expression recursion so that cyclic
// entries fail instead of looping.
const maxNesting = 256

// state is the printing context passed down by value. Nested scopes get
// a modified copy; the caller's state is never changed.
type state struct {
	public  bool // visibility that goes unannotated
	bits    bool // annotate field bit positions
	flat    bool // keep records on one line
	depth   int  // indentation of continuation lines
	nesting int
}

func (s state) enter(tableName string, ordinal uint16) (state, error) {
	s.nesting++
	if s.nesting > maxNesting {
		e := decodeerr.Newf(decodeerr.Reference, "nesting exceeds %d levels", maxNesting)
		e.Table = tableName
		e.Ordinal = int(ordinal)
		return s, e
	}
	return s, nil
}

type printer struct {
	g    *symtab.Graph
	opts Options
	w    *writer
}

func newPrinter(g *symtab.Graph, opts Options) *printer {
	return &printer{g: g, opts: opts, w: newWriter(opts.Indent)}
}

func (p *printer) root() state {
	return state{public: p.g.Definitions(), bits: p.opts.Bits == BitsAlways}
}

// PrintModule writes the listing of the whole module to out. Nothing is
// written when a lookup fails.
func PrintModule(out io.Writer, g *symtab.Graph, opts Options) error {
	p := newPrinter(g, opts)
	if err := p.module(); err != nil {
		return err
	}
	_, err := io.WriteString(out, p.w.String())
	return err
}

// PrintEntry writes the declaration of one identifier.
func PrintEntry(out io.Writer, g *symtab.Graph, sei records.SEIndex, opts Options) error {
	p := newPrinter(g, opts)
	if err := p.declaration(p.root(), sei); err != nil {
		return err
	}
	p.w.write(";")
	p.w.line(0)
	_, err := io.WriteString(out, p.w.String())
	return err
}

// TypeString renders the type at sei.
func TypeString(g *symtab.Graph, sei records.SEIndex, opts Options) (string, error) {
	p := newPrinter(g, opts)
	if err := p.typeExpr(p.root(), sei); err != nil {
		return "", err
	}
	return p.w.String(), nil
}

func (p *printer) module() error {
	own, err := p.g.OwnModule()
	if err != nil {
		return err
	}
	name, err := p.g.HashString(own.ModuleID)
	if err != nil {
		return err
	}
	file, err := p.g.HashString(own.FileID)
	if err != nil {
		return err
	}
	if file == "" {
		file = name
	}

	h := p.g.Header()
	p.w.write("-- " + file)
	p.w.line(0)
	if p.opts.Versions {
		p.w.printf("-- version %s, source %s", h.Version, h.SourceVersion)
		p.w.line(0)
	}
	p.w.line(0)

	if err := p.directory(h.DirectoryCtx); err != nil {
		return err
	}

	p.w.printf("%s = BEGIN", name)
	entries, err := p.g.Entries(h.OuterCtx)
	if err != nil {
		return err
	}
	st := p.root()
	st.depth = 1
	for _, sei := range entries {
		p.w.line(1)
		if err := p.declaration(st, sei); err != nil {
			return err
		}
		p.w.write(";")
	}
	p.w.line(0)
	p.w.write("END.")
	p.w.line(0)
	return nil
}

// directory lists the interfaces the module includes, one per line.
func (p *printer) directory(ci records.CTXIndex) error {
	entries, err := p.g.Entries(ci)
	if err != nil || len(entries) == 0 {
		return err
	}
	p.w.write("DIRECTORY")
	for i, sei := range entries {
		p.w.line(1)
		id, err := p.g.Identifier(sei)
		if err != nil {
			return err
		}
		name, err := p.g.HashString(id.Hash)
		if err != nil {
			return err
		}
		p.w.write(name)
		file, err := p.interfaceFile(id)
		if err != nil {
			return err
		}
		if file != "" {
			p.w.write(": FROM " + quote(file))
		}
		if i < len(entries)-1 {
			p.w.write(",")
		} else {
			p.w.write(";")
		}
	}
	p.w.line(0)
	p.w.line(0)
	return nil
}

// interfaceFile returns the file a directory entry was read from, without
// its extension, or "" when the entry is not an included interface.
func (p *printer) interfaceFile(id *records.Identifier) (string, error) {
	if id.IdType.IsNull() {
		return "", nil
	}
	_, c, err := p.g.UnderlyingType(id.IdType)
	if err != nil {
		return "", err
	}
	def, ok := c.(*records.DefinitionCons)
	if !ok {
		return "", nil
	}
	mdi, err := p.g.ContextModule(def.DefCtx)
	if err != nil || mdi.IsOwn() {
		return "", err
	}
	md, err := p.g.Module(mdi)
	if err != nil {
		return "", err
	}
	file, err := p.g.HashString(md.FileID)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(file, ".bcd"), nil
}

// declaration prints "name: ..." for an identifier of the outer context.
func (p *printer) declaration(st state, sei records.SEIndex) error {
	id, err := p.g.Identifier(sei)
	if err != nil {
		return err
	}
	name, err := p.g.HashString(id.Hash)
	if err != nil {
		return err
	}
	p.w.write(name + ": " + visibility(st, id))

	if id.IsType() {
		return p.typeDeclaration(st, sei, id)
	}
	if id.Immutable && !id.Constant {
		p.w.write("READONLY ")
	}
	if err := p.typeExpr(st, id.IdType); err != nil {
		return err
	}

	ext, tree, err := p.g.FindExtension(sei)
	if err != nil {
		return err
	}
	switch ext {
	case records.ExtValue:
		return p.initializer(st, " = ", tree, id.IdType)
	case records.ExtForm:
		p.w.write(" = INLINE {...}")
	case records.ExtDefault:
		return p.initializer(st, " ← ", tree, id.IdType)
	default:
		if !id.Constant {
			return nil
		}
		v, ok, err := p.scalarConstant(id.IdType, id.IdValue)
		if err != nil {
			return err
		}
		if ok {
			p.w.write(" = " + v)
		}
	}
	return nil
}

func (p *printer) typeDeclaration(st state, sei records.SEIndex, id *records.Identifier) error {
	def := records.SEIndex(id.IdInfo)
	e, err := p.g.Entry(def)
	if err != nil {
		return err
	}
	if o, ok := e.Body.(*records.OpaqueCons); ok {
		p.w.write(opaque(o))
		return nil
	}
	p.w.write("TYPE = ")
	if err := p.typeExpr(st, def); err != nil {
		return err
	}
	ext, tree, err := p.g.FindExtension(sei)
	if err != nil || ext != records.ExtDefault {
		return err
	}
	return p.initializer(st, " ← ", tree, def)
}

func (p *printer) initializer(st state, sep string, tree records.TreeLink, hint records.SEIndex) error {
	s, err := p.expr(st, tree, hint)
	if err != nil {
		return err
	}
	if s != "" {
		p.w.write(sep + s)
	}
	return nil
}

func visibility(st state, id *records.Identifier) string {
	switch {
	case id.Public == st.public:
		return ""
	case id.Public:
		return "PUBLIC "
	default:
		return "PRIVATE "
	}
}
