package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testFlags = New[[]string]("test.flags")
	testDefs  = New[map[string]string]("test.defs")
	testCount = New[int]("test.count")
)

func TestGetMaterializesZeroValue(t *testing.T) {
	c := NewCollection()
	flags := Get(c, testFlags)
	require.NotNil(t, flags)
	assert.Empty(t, *flags)
}

func TestGetReturnsStablePointer(t *testing.T) {
	c := NewCollection()
	a := Get(c, testCount)
	*a = 7
	b := Get(c, testCount)
	assert.Equal(t, 7, *b)
}

func TestExtendPreservesOrder(t *testing.T) {
	c := NewCollection()
	Extend(c, testFlags, "-O2")
	Extend(c, testFlags, "-Wall", "-Wextra")
	assert.Equal(t, []string{"-O2", "-Wall", "-Wextra"}, *Get(c, testFlags))
}

func TestCombineSequenceAppends(t *testing.T) {
	a := NewCollection()
	b := NewCollection()
	Extend(a, testFlags, "-O2")
	Extend(b, testFlags, "-g")
	a.Combine(b)
	assert.Equal(t, []string{"-O2", "-g"}, *Get(a, testFlags))
}

func TestCombineAssociativeOnSequences(t *testing.T) {
	left := NewCollection()
	Extend(left, testFlags, "a")
	mid := NewCollection()
	Extend(mid, testFlags, "b")
	right := NewCollection()
	Extend(right, testFlags, "c")

	// (left combine mid) combine right
	lm := NewCollection()
	Extend(lm, testFlags, "a")
	lm.Combine(mid)
	lm.Combine(right)

	// left combine (mid combine right)
	mr := NewCollection()
	Extend(mr, testFlags, "b")
	mr.Combine(right)
	lmr := NewCollection()
	Extend(lmr, testFlags, "a")
	lmr.Combine(mr)

	assert.Equal(t, *Get(lm, testFlags), *Get(lmr, testFlags))
	_ = left
}

func TestCombineMapFirstWriterWins(t *testing.T) {
	a := NewCollection()
	*Get(a, testDefs) = map[string]string{"DEBUG": "1"}
	b := NewCollection()
	*Get(b, testDefs) = map[string]string{"DEBUG": "0", "RELEASE": "1"}
	a.Combine(b)
	got := *Get(a, testDefs)
	assert.Equal(t, "1", got["DEBUG"], "first writer should win on conflicting keys")
	assert.Equal(t, "1", got["RELEASE"])
}

func TestCombineScalarReplaces(t *testing.T) {
	a := NewCollection()
	*Get(a, testCount) = 1
	b := NewCollection()
	*Get(b, testCount) = 2
	a.Combine(b)
	assert.Equal(t, 2, *Get(a, testCount))
}

func TestDeduplicateIsOrderPreservingAndIdempotent(t *testing.T) {
	c := NewCollection()
	Extend(c, testFlags, "-O2", "-Wall", "-O2", "-g", "-Wall")
	c.Deduplicate()
	assert.Equal(t, []string{"-O2", "-Wall", "-g"}, *Get(c, testFlags))
	c.Deduplicate()
	assert.Equal(t, []string{"-O2", "-Wall", "-g"}, *Get(c, testFlags))
}

func TestCombineCloneDoesNotAliasSource(t *testing.T) {
	a := NewCollection()
	Extend(a, testFlags, "-O2")
	b := NewCollection()
	b.Combine(a)
	Extend(b, testFlags, "-g")
	assert.Equal(t, []string{"-O2"}, *Get(a, testFlags), "combine must clone, not alias, a fresh cell")
	assert.Equal(t, []string{"-O2", "-g"}, *Get(b, testFlags))
}
