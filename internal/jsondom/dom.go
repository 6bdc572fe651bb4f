// Package jsondom is the typed JSON value tree. A document owns a single
// optional root value; every value belongs to exactly one document and, when
// not the root, to exactly one array or object of that document. Arrays and
// objects preserve insertion order; object member names are unique.
package jsondom

import (
	"strconv"
	"strings"

	"github.com/mehditeymorian/textkit/internal/jsoncommon"
)

// ValueKind tags the five JSON value kinds.
type ValueKind int

const (
	KindArray ValueKind = iota
	KindLiteral
	KindNumber
	KindObject
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindLiteral:
		return "literal"
	case KindNumber:
		return "number"
	case KindObject:
		return "object"
	case KindString:
		return "string"
	default:
		return "unsupported"
	}
}

// LiteralSubtype identifies one of the three JSON literals.
type LiteralSubtype int

const (
	LiteralFalse LiteralSubtype = iota
	LiteralNull
	LiteralTrue
)

// LiteralSubtypeOf maps a literal text to its subtype.
func LiteralSubtypeOf(text string) (LiteralSubtype, bool) {
	switch text {
	case "false":
		return LiteralFalse, true
	case "null":
		return LiteralNull, true
	case "true":
		return LiteralTrue, true
	default:
		return 0, false
	}
}

// NumberSubtype distinguishes integral from floating numbers.
type NumberSubtype int

const (
	NumberFloat NumberSubtype = iota
	NumberInt
)

func (t NumberSubtype) String() string {
	if t == NumberInt {
		return "int"
	}
	return "float"
}

// Member is a named value inside an object. The member owns its value; the
// name is the unescaped character sequence naming it.
type Member struct {
	owner *Value
	name  string
	value *Value
}

// Name returns the member's unescaped name.
func (m *Member) Name() string { return m.name }

// Value returns the member's value.
func (m *Member) Value() *Value { return m.value }

// Value is one node of the tree. The kind tag selects which parts of the
// struct are meaningful: text for scalars, items for arrays, members for
// objects.
type Value struct {
	doc    *Document
	parent *Value
	member *Member
	kind   ValueKind
	text   string

	literal LiteralSubtype
	number  NumberSubtype

	items   []*Value
	members []*Member
	index   map[string]*Member
}

// Kind returns the value's kind tag.
func (v *Value) Kind() ValueKind { return v.kind }

// Document returns the owning document; it never changes after creation.
func (v *Value) Document() *Document { return v.doc }

// Parent returns the containing array or object, nil for the root.
func (v *Value) Parent() *Value { return v.parent }

// Member returns the object member naming this value, if any.
func (v *Value) Member() *Member { return v.member }

// Text returns the value's textual representation; empty for arrays and
// objects.
func (v *Value) Text() string { return v.text }

// LiteralSubtype returns the literal's subtype; meaningful only for
// KindLiteral.
func (v *Value) LiteralSubtype() LiteralSubtype { return v.literal }

// NumberSubtype returns the number's subtype; meaningful only for
// KindNumber.
func (v *Value) NumberSubtype() NumberSubtype { return v.number }

// IsContainer reports whether the value is an array or object.
func (v *Value) IsContainer() bool { return v.kind == KindArray || v.kind == KindObject }

// ChildCount returns the number of items or members; zero for scalars.
func (v *Value) ChildCount() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// ChildAt returns the i-th item, or the i-th member's value for objects.
func (v *Value) ChildAt(i int) *Value {
	switch v.kind {
	case KindArray:
		return v.items[i]
	case KindObject:
		return v.members[i].value
	default:
		return nil
	}
}

// Append adds a value to an array. The value must belong to the same
// document and have no parent yet.
func (v *Value) Append(child *Value) error {
	if v.kind != KindArray {
		return domError(ErrUnsupportedValueType, "value of kind %s cannot hold array items", v.kind)
	}
	if err := child.assertAttachable(v.doc); err != nil {
		return err
	}
	child.parent = v
	v.items = append(v.items, child)
	return nil
}

// AppendMember adds a named value to an object. The name is stored as
// given; parsed input arrives with escapes already decoded by the lexer.
// A duplicate name is rejected.
func (v *Value) AppendMember(name string, child *Value) error {
	if v.kind != KindObject {
		return domError(ErrUnsupportedValueType, "value of kind %s cannot hold object members", v.kind)
	}
	if err := child.assertAttachable(v.doc); err != nil {
		return err
	}
	if _, ok := v.index[name]; ok {
		return domError(ErrDuplicateName, "duplicate name '%s'", name)
	}
	m := &Member{owner: v, name: name, value: child}
	child.parent = v
	child.member = m
	if v.index == nil {
		v.index = make(map[string]*Member)
	}
	v.index[name] = m
	v.members = append(v.members, m)
	return nil
}

// Find returns the value of the member with the given name, or nil.
func (v *Value) Find(name string) *Value {
	m := v.FindMember(name)
	if m == nil {
		return nil
	}
	return m.value
}

// FindMember returns the member with the given name, or nil.
func (v *Value) FindMember(name string) *Member {
	if v.kind != KindObject {
		return nil
	}
	return v.index[name]
}

// ContainsMember reports whether the object has a member with the name.
func (v *Value) ContainsMember(name string) bool { return v.FindMember(name) != nil }

// MemberAt returns the i-th member in insertion order.
func (v *Value) MemberAt(i int) *Member { return v.members[i] }

// Members returns the members in insertion order.
func (v *Value) Members() []*Member { return v.members }

// Items returns an array's values in insertion order.
func (v *Value) Items() []*Value { return v.items }

// Empty reports whether a container has no children.
func (v *Value) Empty() bool { return v.ChildCount() == 0 }

// Clear detaches and discards every descendant of a container, or resets a
// scalar's text.
func (v *Value) Clear() {
	switch v.kind {
	case KindArray:
		for _, c := range v.items {
			c.detach()
		}
		v.items = nil
	case KindObject:
		for _, m := range v.members {
			m.value.detach()
		}
		v.members = nil
		v.index = nil
	default:
		v.text = ""
	}
}

func (v *Value) detach() {
	v.parent = nil
	v.member = nil
}

func (v *Value) assertAttachable(doc *Document) error {
	if v.doc != doc {
		return domError(ErrDocumentIsNotSame, "value is referenced by other document")
	}
	if v.parent != nil {
		return domError(ErrParentIsNotNull, "value already has a parent")
	}
	return nil
}

// Equal compares two values shallowly: kind, text and member name, the way
// lockstep document iteration needs it.
func Equal(v1, v2 *Value) bool {
	if v1.kind != v2.kind || v1.text != v2.text {
		return false
	}
	switch {
	case v1.member == nil && v2.member == nil:
		return true
	case v1.member != nil && v2.member != nil:
		return v1.member.name == v2.member.name
	default:
		return false
	}
}

// Document owns the value tree through its root.
type Document struct {
	root *Value
}

// NewDocument returns an empty document.
func NewDocument() *Document { return &Document{} }

// Root returns the root value, nil for an empty document.
func (d *Document) Root() *Value { return d.root }

// SetRoot replaces the root. The previous root and its whole subtree are
// discarded. The value must belong to this document and have no parent.
func (d *Document) SetRoot(v *Value) error {
	if err := v.assertAttachable(d); err != nil {
		return err
	}
	d.Clear()
	d.root = v
	return nil
}

// TakeRoot detaches and returns the root, leaving the document empty.
func (d *Document) TakeRoot() *Value {
	r := d.root
	d.root = nil
	return r
}

// Clear discards the root and its subtree.
func (d *Document) Clear() {
	if d.root != nil {
		d.root.Clear()
		d.root = nil
	}
}

// CreateArray returns a new unattached array value.
func (d *Document) CreateArray() *Value {
	return &Value{doc: d, kind: KindArray}
}

// CreateObject returns a new unattached object value.
func (d *Document) CreateObject() *Value {
	return &Value{doc: d, kind: KindObject}
}

// CreateLiteral returns a new literal value; text must be one of "false",
// "null", "true".
func (d *Document) CreateLiteral(text string) (*Value, error) {
	sub, ok := LiteralSubtypeOf(text)
	if !ok {
		return nil, domError(ErrInvalidLiteral, "invalid literal value '%s'", text)
	}
	return &Value{doc: d, kind: KindLiteral, text: text, literal: sub}, nil
}

// CreateNumber returns a new number value from its canonical text and
// subtype.
func (d *Document) CreateNumber(text string, subtype NumberSubtype) *Value {
	return &Value{doc: d, kind: KindNumber, text: text, number: subtype}
}

// CreateNumberInt returns a new integer number value.
func (d *Document) CreateNumberInt(value int64) *Value {
	return d.CreateNumber(strconv.FormatInt(value, 10), NumberInt)
}

// CreateNumberInt32 returns a new integer number value from a 32-bit value.
func (d *Document) CreateNumberInt32(value int32) *Value {
	return d.CreateNumberInt(int64(value))
}

// CreateNumberFloat returns a new float number value. The text always
// carries '.', 'e' or 'E' so it reads back as a float; formatting does not
// depend on the ambient locale.
func (d *Document) CreateNumberFloat(value float64) *Value {
	return d.CreateNumber(FormatFloat(value), NumberFloat)
}

// FormatFloat renders a float in its shortest decimal form, guaranteed to
// contain '.', 'e' or 'E'.
func FormatFloat(value float64) string {
	s := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// CreateString returns a new string value holding text as given, the
// unescaped character sequence. The lexer delivers parsed strings already
// decoded, so no escape processing happens here.
func (d *Document) CreateString(text string) *Value {
	return &Value{doc: d, kind: KindString, text: text}
}

// CreateStringFromEscaped returns a new string value from a text still
// carrying JSON escape sequences, decoding them first. For direct API
// callers only; the parser path must not come through here.
func (d *Document) CreateStringFromEscaped(text string) *Value {
	return d.CreateString(jsoncommon.ToUnescaped(text))
}

// EqualDocuments reports whether two documents hold equal trees, comparing
// values and paths in lockstep iteration order.
func EqualDocuments(d1, d2 *Document) bool {
	it1, it2 := d1.Begin(), d2.Begin()
	for !it1.IsEnd() && !it2.IsEnd() {
		if !Equal(it1.Value(), it2.Value()) || !equalPaths(it1.Path(), it2.Path()) {
			return false
		}
		it1.Next()
		it2.Next()
	}
	return it1.IsEnd() && it2.IsEnd()
}

func equalPaths(p1, p2 []int) bool {
	if len(p1) != len(p2) {
		return false
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			return false
		}
	}
	return true
}
