package headers

import (
	"iter"
	"net/http"
	"sort"
	"strings"
)

// Source is a caller-supplied header set. The variants are Map, Pairs,
// Header and Collection; the set is closed.
type Source interface {
	entries() iter.Seq2[string, string]
}

// Map is a plain name to value mapping, names kept verbatim
type Map map[string]string

// Pairs is an ordered list of name/value pairs, names kept verbatim.
// A later pair wins over an earlier one with the same name.
type Pairs [][2]string

// Header adapts a net/http header set. Names are lower-cased on the way out,
// like a fetch Headers object, and multiple values are joined with ", ".
type Header http.Header

// Collection is any entry iterator, names kept as yielded
type Collection iter.Seq2[string, string]

func (m Map) entries() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}

func (p Pairs) entries() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, kv := range p {
			if !yield(kv[0], kv[1]) {
				return
			}
		}
	}
}

func (h Header) entries() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for k, values := range h {
			if !yield(strings.ToLower(k), strings.Join(values, ", ")) {
				return
			}
		}
	}
}

func (c Collection) entries() iter.Seq2[string, string] {
	if c == nil {
		return func(func(string, string) bool) {}
	}
	return iter.Seq2[string, string](c)
}

// Normalize flattens any Source into a fresh map. A nil Source gives an empty map.
func Normalize(src Source) map[string]string {
	out := map[string]string{}
	if src == nil {
		return out
	}
	for k, v := range src.entries() {
		out[k] = v
	}
	return out
}

// Merge overlays caller headers on generated ones; the caller wins on an exact
// name match. Neither input is modified.
func Merge(generated, caller map[string]string) map[string]string {
	out := make(map[string]string, len(generated)+len(caller))
	for k, v := range generated {
		out[k] = v
	}
	for k, v := range caller {
		out[k] = v
	}
	return out
}

// Fold collapses names that differ only in case into their lower-case form.
// Generated names are always lower-case, so a spelling with upper-case letters
// came from the caller and takes precedence. Among several such spellings the
// lexically last one wins.
func Fold(m map[string]string) map[string]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(m))
	mixed := map[string]bool{}
	for _, k := range keys {
		lk := strings.ToLower(k)
		if k == lk && mixed[lk] {
			continue
		}
		out[lk] = m[k]
		if k != lk {
			mixed[lk] = true
		}
	}
	return out
}
