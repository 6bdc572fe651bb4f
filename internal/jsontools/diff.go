package jsontools

import (
	"fmt"

	"github.com/mehditeymorian/textkit/internal/jsoncommon"
	"github.com/mehditeymorian/textkit/internal/jsondom"
	"github.com/mehditeymorian/textkit/internal/unicodex"
)

// DiffKind classifies one structural difference between two documents.
type DiffKind int

const (
	DiffCount DiffKind = iota
	DiffMemberName
	DiffPath
	DiffType
	DiffNumType
	DiffValue
)

func (k DiffKind) String() string {
	switch k {
	case DiffCount:
		return "count"
	case DiffMemberName:
		return "member_name"
	case DiffPath:
		return "path"
	case DiffType:
		return "type"
	case DiffNumType:
		return "numtype"
	case DiffValue:
		return "value"
	default:
		return "unknown"
	}
}

// DiffItem is one difference; the referenced values are borrowed from their
// documents and must not outlive them.
type DiffItem struct {
	Kind  DiffKind
	Left  *jsondom.Value
	Right *jsondom.Value
}

func (i DiffItem) String() string {
	return fmt.Sprintf("Kind: %s\nLeft value:\n\tlength: %d\n\ttext: %s\n\tencoded: %s\nRight value:\n\tlength: %d\n\ttext: %s\n\tencoded: %s",
		i.Kind,
		len(i.Left.Text()), i.Left.Text(), jsoncommon.ToEscaped(i.Left.Text(), true),
		len(i.Right.Text()), i.Right.Text(), jsoncommon.ToEscaped(i.Right.Text(), true))
}

// DocumentDiff is the ordered list of differences found.
type DocumentDiff struct {
	items []DiffItem
}

// Append records one difference.
func (d *DocumentDiff) Append(item DiffItem) { d.items = append(d.items, item) }

// HasDifferences reports whether any difference was found.
func (d *DocumentDiff) HasDifferences() bool { return len(d.items) > 0 }

// Items returns the differences in document order.
func (d *DocumentDiff) Items() []DiffItem { return d.items }

// DiffOptions tunes the comparison.
type DiffOptions struct {
	// CaseSensitive selects exact text and member-name comparison.
	CaseSensitive bool
	// CompareAll collects every difference instead of stopping after the
	// first differing pair.
	CompareAll bool
}

// DefaultDiffOptions compares case-sensitively and stops after the first
// differing pair.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{CaseSensitive: true}
}

// MakeDiff compares two documents with default options.
func MakeDiff(ldoc, rdoc *jsondom.Document) *DocumentDiff {
	return MakeDiffWith(ldoc, rdoc, DefaultDiffOptions())
}

// MakeDiffWith iterates both documents in lockstep and records typed
// differences per visited pair: kind, path, container child count, member
// name, text and number subtype, in that order. Iteration ends when either document ends.
func MakeDiffWith(ldoc, rdoc *jsondom.Document, options DiffOptions) *DocumentDiff {
	diff := &DocumentDiff{}
	lit, rit := ldoc.Begin(), rdoc.Begin()
	textsEqual := func(a, b string) bool {
		if options.CaseSensitive {
			return a == b
		}
		return unicodex.EqualCI(a, b)
	}
	for !lit.IsEnd() && !rit.IsEnd() && (!diff.HasDifferences() || options.CompareAll) {
		lv, rv := lit.Value(), rit.Value()
		if lv.Kind() != rv.Kind() {
			diff.Append(DiffItem{Kind: DiffType, Left: lv, Right: rv})
		}
		if !equalIntSlices(lit.Path(), rit.Path()) {
			diff.Append(DiffItem{Kind: DiffPath, Left: lv, Right: rv})
		}
		if lv.IsContainer() && rv.IsContainer() && lv.ChildCount() != rv.ChildCount() {
			diff.Append(DiffItem{Kind: DiffCount, Left: lv, Right: rv})
		}
		if lv.Member() != nil && rv.Member() != nil {
			if !textsEqual(lv.Member().Name(), rv.Member().Name()) {
				diff.Append(DiffItem{Kind: DiffMemberName, Left: lv, Right: rv})
			}
		}
		if !textsEqual(lv.Text(), rv.Text()) {
			diff.Append(DiffItem{Kind: DiffValue, Left: lv, Right: rv})
		}
		if lv.Kind() == jsondom.KindNumber && rv.Kind() == jsondom.KindNumber &&
			lv.NumberSubtype() != rv.NumberSubtype() {
			diff.Append(DiffItem{Kind: DiffNumType, Left: lv, Right: rv})
		}
		lit.Next()
		rit.Next()
	}
	return diff
}

func equalIntSlices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
