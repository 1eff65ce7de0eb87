package headers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("nil source", func(t *testing.T) {
		out := Normalize(nil)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("map keeps names", func(t *testing.T) {
		out := Normalize(Map{"Content-Type": "application/json", "accept": "*/*"})
		assert.Equal(t, map[string]string{"Content-Type": "application/json", "accept": "*/*"}, out)
	})

	t.Run("nil map", func(t *testing.T) {
		var m Map
		assert.Empty(t, Normalize(m))
	})

	t.Run("pairs, later wins", func(t *testing.T) {
		out := Normalize(Pairs{{"X-Token", "a"}, {"accept", "text/plain"}, {"X-Token", "b"}})
		assert.Equal(t, map[string]string{"X-Token": "b", "accept": "text/plain"}, out)
	})

	t.Run("http header lower-cases and joins", func(t *testing.T) {
		h := http.Header{}
		h.Set("Accept", "application/json")
		h.Add("X-Multi", "one")
		h.Add("X-Multi", "two")
		out := Normalize(Header(h))
		assert.Equal(t, map[string]string{"accept": "application/json", "x-multi": "one, two"}, out)
	})

	t.Run("collection", func(t *testing.T) {
		entries := func(yield func(string, string) bool) {
			if !yield("Referer", "https://example.com/") {
				return
			}
			yield("dnt", "1")
		}
		out := Normalize(Collection(entries))
		assert.Equal(t, map[string]string{"Referer": "https://example.com/", "dnt": "1"}, out)
	})

	t.Run("nil collection", func(t *testing.T) {
		var c Collection
		assert.Empty(t, Normalize(c))
	})

	t.Run("result is a copy", func(t *testing.T) {
		m := Map{"a": "1"}
		out := Normalize(m)
		out["a"] = "2"
		assert.Equal(t, "1", m["a"])
	})
}

func TestMerge(t *testing.T) {
	generated := map[string]string{"accept": "text/html", "user-agent": "ua"}
	caller := map[string]string{"accept": "application/json", "Content-Type": "application/json"}

	out := Merge(generated, caller)
	assert.Equal(t, map[string]string{
		"accept":       "application/json",
		"user-agent":   "ua",
		"Content-Type": "application/json",
	}, out)

	// inputs untouched
	assert.Equal(t, "text/html", generated["accept"])
	assert.Len(t, generated, 2)

	// no case folding on merge
	out = Merge(generated, map[string]string{"Accept": "application/json"})
	assert.Equal(t, "text/html", out["accept"])
	assert.Equal(t, "application/json", out["Accept"])

	assert.Empty(t, Merge(nil, nil))
}

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]string
		want map[string]string
	}{
		{
			name: "no collisions",
			in:   map[string]string{"accept": "a", "Content-Type": "b"},
			want: map[string]string{"accept": "a", "content-type": "b"},
		},
		{
			name: "mixed case wins over generated spelling",
			in:   map[string]string{"accept": "text/html", "Accept": "application/json"},
			want: map[string]string{"accept": "application/json"},
		},
		{
			name: "several caller spellings, last wins",
			in:   map[string]string{"ACCEPT": "one", "Accept": "two", "accept": "generated"},
			want: map[string]string{"accept": "two"},
		},
		{
			name: "empty",
			in:   map[string]string{},
			want: map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}
