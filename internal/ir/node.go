// Package ir defines the tree-shaped source/SSA node model consumed by the
// ssa package. It plays the role of the "IR library" collaborator described
// in the transform's design: node constructors, attribute queries, remake,
// and a generic pre-order visitor, but none of the SSA construction logic
// itself.
package ir

// Position marks a node's origin in source text. It is optional metadata,
// never inspected by the SSA pass itself.
type Position struct {
	Line   int
	Column int
}

// Base is embedded by every concrete node and carries source-independent
// attributes such as module_global_offset. Attrs is deliberately a bag of
// arbitrary values rather than a fixed struct, mirroring the attr_map used
// by the node model this pass was built against.
type Base struct {
	Pos   Position
	Attrs map[string]any
}

// HasAttr reports whether the node carries the named attribute.
func (b *Base) HasAttr(key string) bool {
	if b.Attrs == nil {
		return false
	}
	_, ok := b.Attrs[key]
	return ok
}

// Attr returns the named attribute, or nil if absent.
func (b *Base) Attr(key string) any {
	if b.Attrs == nil {
		return nil
	}
	return b.Attrs[key]
}

// SetAttr sets the named attribute.
func (b *Base) SetAttr(key string, val any) {
	if b.Attrs == nil {
		b.Attrs = make(map[string]any)
	}
	b.Attrs[key] = val
}

// AttrGlobalOffset is the well-known attribute key that classifies a
// variable as module-global. Its value is the storage offset assigned by
// the (out of scope) module-global variable table.
const AttrGlobalOffset = "module_global_offset"

// Node is the minimal capability every AST/SSA node has: attribute access
// and copy-attr support.
type Node interface {
	HasAttr(key string) bool
	Attr(key string) any
	SetAttr(key string, val any)
}

// CopyAttrs transfers all attributes from src onto dst, overwriting any
// attribute dst already carries under the same key. Used by the statement
// rewriter when it rebuilds a statement node so the rebuilt node keeps
// whatever attributes the original carried. Pos is not an attribute and is
// not copied.
func CopyAttrs(src, dst Node) {
	if s, ok := src.(interface{ attrMapForCopy() map[string]any }); ok {
		for k, v := range s.attrMapForCopy() {
			dst.SetAttr(k, v)
		}
	}
}

// attrMapForCopy exposes Base's raw attribute map to CopyAttrs without
// making it part of the public Node interface.
func (b *Base) attrMapForCopy() map[string]any { return b.Attrs }
