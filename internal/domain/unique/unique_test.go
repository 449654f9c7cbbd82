package unique

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// entry is a test element whose identity is its key; value is an
// attribute covered only by full equality.
type entry struct {
	key   string
	value string
}

func (e entry) SameAs(other entry) bool {
	return e.key == other.key
}

func (e entry) Equal(other entry) bool {
	return e == other
}

func TestList_Add_StoresElement(t *testing.T) {
	list := NewList[entry]("entry")

	err := list.Add(entry{key: "a", value: "1"})

	require.NoError(t, err)
	require.True(t, list.Contains(entry{key: "a"}))
	require.Equal(t, 1, list.Len())
}

func TestList_Add_RejectsIdentityDuplicate(t *testing.T) {
	list := NewList[entry]("entry")
	require.NoError(t, list.Add(entry{key: "a", value: "1"}))

	// Same identity, different attributes.
	err := list.Add(entry{key: "a", value: "2"})

	require.ErrorIs(t, err, ErrDuplicate)
	require.Equal(t, []entry{{key: "a", value: "1"}}, list.Elements())
}

func TestList_Contains_FalseForAbsent(t *testing.T) {
	list := NewList[entry]("entry")
	require.NoError(t, list.Add(entry{key: "a"}))

	require.False(t, list.Contains(entry{key: "b"}))
}

func TestList_Set_PreservesPosition(t *testing.T) {
	list := NewList[entry]("entry")
	require.NoError(t, list.Add(entry{key: "a"}))
	require.NoError(t, list.Add(entry{key: "b"}))
	require.NoError(t, list.Add(entry{key: "c"}))

	err := list.Set(entry{key: "b"}, entry{key: "b", value: "edited"})

	require.NoError(t, err)
	require.Equal(t, 3, list.Len())
	require.Equal(t, entry{key: "b", value: "edited"}, list.Elements()[1])
}

func TestList_Set_AllowsIdentityChange(t *testing.T) {
	list := NewList[entry]("entry")
	require.NoError(t, list.Add(entry{key: "a"}))

	err := list.Set(entry{key: "a"}, entry{key: "z"})

	require.NoError(t, err)
	require.True(t, list.Contains(entry{key: "z"}))
	require.False(t, list.Contains(entry{key: "a"}))
}

func TestList_Set_SelfReplaceSucceeds(t *testing.T) {
	list := NewList[entry]("entry")
	require.NoError(t, list.Add(entry{key: "a", value: "1"}))

	err := list.Set(entry{key: "a", value: "1"}, entry{key: "a", value: "1"})

	require.NoError(t, err)
	require.Equal(t, 1, list.Len())
}

func TestList_Set_RejectsCollisionWithOtherElement(t *testing.T) {
	list := NewList[entry]("entry")
	require.NoError(t, list.Add(entry{key: "a"}))
	require.NoError(t, list.Add(entry{key: "b"}))

	err := list.Set(entry{key: "a"}, entry{key: "b"})

	require.ErrorIs(t, err, ErrDuplicate)
}

func TestList_Set_ReturnsNotFoundForMissingTarget(t *testing.T) {
	list := NewList[entry]("entry")

	err := list.Set(entry{key: "a"}, entry{key: "b"})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestList_Remove_DeletesElement(t *testing.T) {
	list := NewList[entry]("entry")
	require.NoError(t, list.Add(entry{key: "a"}))
	require.NoError(t, list.Add(entry{key: "b"}))

	err := list.Remove(entry{key: "a"})

	require.NoError(t, err)
	require.False(t, list.Contains(entry{key: "a"}))
	require.Equal(t, []entry{{key: "b"}}, list.Elements())
}

func TestList_Remove_ReturnsNotFoundForAbsent(t *testing.T) {
	list := NewList[entry]("entry")

	err := list.Remove(entry{key: "a"})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestList_ReplaceAll_OverwritesContents(t *testing.T) {
	list := NewList[entry]("entry")
	require.NoError(t, list.Add(entry{key: "old"}))

	err := list.ReplaceAll([]entry{{key: "a"}, {key: "b"}})

	require.NoError(t, err)
	require.Equal(t, []entry{{key: "a"}, {key: "b"}}, list.Elements())
}

func TestList_ReplaceAll_RejectsInternalDuplicates(t *testing.T) {
	list := NewList[entry]("entry")
	require.NoError(t, list.Add(entry{key: "old"}))

	err := list.ReplaceAll([]entry{{key: "a"}, {key: "a", value: "other"}})

	require.ErrorIs(t, err, ErrDuplicate)
	// Failed replace leaves existing contents untouched.
	require.Equal(t, []entry{{key: "old"}}, list.Elements())
}

func TestList_ReplaceAll_DetachesFromInputSlice(t *testing.T) {
	list := NewList[entry]("entry")
	input := []entry{{key: "a"}}
	require.NoError(t, list.ReplaceAll(input))

	input[0] = entry{key: "mutated"}

	require.True(t, list.Contains(entry{key: "a"}))
}

func TestList_Sort_ReordersInPlace(t *testing.T) {
	list := NewList[entry]("entry")
	require.NoError(t, list.Add(entry{key: "c"}))
	require.NoError(t, list.Add(entry{key: "a"}))
	require.NoError(t, list.Add(entry{key: "b"}))

	list.Sort(func(a, b entry) bool { return a.key < b.key })

	require.Equal(t, []entry{{key: "a"}, {key: "b"}, {key: "c"}}, list.Elements())
}

func TestList_Equal_UsesFullValueEquality(t *testing.T) {
	a := NewList[entry]("entry")
	b := NewList[entry]("entry")
	require.NoError(t, a.Add(entry{key: "x", value: "1"}))
	require.NoError(t, b.Add(entry{key: "x", value: "2"}))

	// Same identities, different attributes: contains agrees, equality does not.
	require.True(t, a.Contains(entry{key: "x", value: "2"}))
	require.False(t, a.Equal(b))
}

func TestList_Equal_OrderSensitive(t *testing.T) {
	a := NewList[entry]("entry")
	b := NewList[entry]("entry")
	require.NoError(t, a.Add(entry{key: "x"}))
	require.NoError(t, a.Add(entry{key: "y"}))
	require.NoError(t, b.Add(entry{key: "y"}))
	require.NoError(t, b.Add(entry{key: "x"}))

	require.False(t, a.Equal(b))
}

// Property: after any sequence of adds and removes, Contains is true for
// exactly the elements added and not since removed, and the list never
// holds two elements with the same key.
func TestList_Property_ContainsTracksAddRemove(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		list := NewList[entry]("entry")
		live := make(map[string]bool)

		numOps := rapid.IntRange(1, 200).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			key := rapid.StringMatching(`[a-e]`).Draw(t, "key")
			op := rapid.IntRange(0, 1).Draw(t, "op")

			switch op {
			case 0:
				err := list.Add(entry{key: key, value: fmt.Sprint(i)})
				if live[key] {
					if err == nil {
						t.Fatalf("add accepted duplicate key %q", key)
					}
				} else if err != nil {
					t.Fatalf("add rejected fresh key %q: %v", key, err)
				}
				live[key] = true
			case 1:
				err := list.Remove(entry{key: key})
				if live[key] && err != nil {
					t.Fatalf("remove failed for live key %q: %v", key, err)
				}
				if !live[key] && err == nil {
					t.Fatalf("remove succeeded for absent key %q", key)
				}
				delete(live, key)
			}
		}

		count := 0
		for key, isLive := range live {
			if isLive {
				count++
			}
			if list.Contains(entry{key: key}) != isLive {
				t.Fatalf("contains(%q) = %v, want %v", key, !isLive, isLive)
			}
		}
		if list.Len() != count {
			t.Fatalf("len = %d, want %d", list.Len(), count)
		}
	})
}

// Property: Set preserves length and the replaced element's index.
func TestList_Property_SetPreservesSizeAndPosition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		list := NewList[entry]("entry")
		numElements := rapid.IntRange(1, 10).Draw(t, "numElements")
		for i := 0; i < numElements; i++ {
			require.NoError(t, list.Add(entry{key: fmt.Sprintf("k%d", i)}))
		}

		idx := rapid.IntRange(0, numElements-1).Draw(t, "idx")
		target := list.Elements()[idx]
		replacement := entry{key: target.key, value: "replaced"}

		require.NoError(t, list.Set(target, replacement))
		require.Equal(t, numElements, list.Len())
		require.Equal(t, replacement, list.Elements()[idx])
	})
}
