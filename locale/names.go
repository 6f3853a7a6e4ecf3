package locale

import (
	"cmp"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// nameEntry is a case-folded name and the index it stands for.
type nameEntry struct {
	folded string
	chars  int
	index  int
}

// nameTable matches names case-insensitively. Entries are ordered longest
// first, so that "März" wins over "Mär".
type nameTable struct {
	entries []nameEntry
}

// newNameTable builds a table from lists of names, in which the position of
// a name is the index it stands for.
func newNameTable(lists ...[]string) nameTable {
	fold := cases.Fold()
	seen := map[string]bool{}
	var entries []nameEntry
	for _, list := range lists {
		for i, name := range list {
			folded := fold.String(norm.NFC.String(name))
			if seen[folded] {
				continue
			}
			seen[folded] = true
			entries = append(entries, nameEntry{
				folded: folded,
				chars:  charCount(name),
				index:  i,
			})
		}
	}

	slices.SortStableFunc(entries, func(a, b nameEntry) int {
		return cmp.Compare(b.chars, a.chars)
	})
	return nameTable{entries: entries}
}

// match finds the longest name at the start of input. The comparison works
// on whole characters: the same number of characters as the name are taken
// from input, normalized, and case folded before being compared. Returns
// the index of the name and the number of bytes it spans in input.
func (t nameTable) match(input string) (int, int, bool) {
	fold := cases.Fold()
	for _, e := range t.entries {
		end, n := 0, 0
		for end < len(input) && n < e.chars {
			end += nextChar(input[end:])
			n++
		}
		if n < e.chars {
			continue
		}
		if fold.String(norm.NFC.String(input[:end])) == e.folded {
			return e.index, end, true
		}
	}
	return 0, 0, false
}

// nextChar returns the size in bytes of the first character of s, a starter
// followed by any combining marks.
func nextChar(s string) int {
	if i := norm.NFC.NextBoundaryInString(s, true); i > 0 {
		return i
	}
	return len(s)
}

// charCount returns the number of characters in s, as counted by nextChar.
func charCount(s string) int {
	n := 0
	for len(s) > 0 {
		s = s[nextChar(s):]
		n++
	}
	return n
}
