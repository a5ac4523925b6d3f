package contentid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDDeterministic(t *testing.T) {
	t.Parallel()

	first := ID("https://host/a")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ID("https://host/a"))
	}
}

func TestIDShape(t *testing.T) {
	t.Parallel()

	for _, link := range []string{"", "https://host/a", "not a url at all", "企頻"} {
		id := ID(link)
		assert.Len(t, id, Length, "link %q", link)
		assert.True(t, Valid(id), "link %q produced %q", link, id)
	}
}

func TestIDKnownValue(t *testing.T) {
	t.Parallel()

	// md5("") = d41d8cd98f00b204e9800998ecf8427e
	assert.Equal(t, "d41d8cd98f", ID(""))
}

func TestIDDependsOnlyOnLink(t *testing.T) {
	t.Parallel()

	links := []string{"https://host/a", "https://host/b", "https://host/c"}
	forward := make(map[string]string)
	for _, l := range links {
		forward[l] = ID(l)
	}
	// Any permutation of inputs yields the same ids.
	for i := len(links) - 1; i >= 0; i-- {
		assert.Equal(t, forward[links[i]], ID(links[i]))
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Valid("d41d8cd98f"))
	assert.False(t, Valid("d41d8cd98"))   // too short
	assert.False(t, Valid("d41d8cd98f0")) // too long
	assert.False(t, Valid("D41D8CD98F"))  // uppercase
	assert.False(t, Valid("d41d8cd98z"))  // non-hex
}
