package machine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMapUnmapInvariants exercises a random sequence of map/unmap calls
// and checks that every currently mapped ID is unique and never also
// present on the free list (Testable property 1).
func TestMapUnmapInvariants(t *testing.T) {
	st := NewSegmentStore(nil)
	rng := rand.New(rand.NewSource(42))
	var live []uint32

	for i := 0; i < 500; i++ {
		if len(live) == 0 || rng.Intn(2) == 0 {
			id := st.Map(uint32(rng.Intn(8)))
			live = append(live, id)
		} else {
			idx := rng.Intn(len(live))
			id := live[idx]
			require.NoError(t, st.Unmap(id))
			live = append(live[:idx], live[idx+1:]...)
		}

		seen := make(map[uint32]bool)
		for _, id := range live {
			require.False(t, seen[id], "duplicate live id %d", id)
			seen[id] = true
			for _, free := range st.free {
				require.NotEqual(t, id, free, "id %d is both mapped and on the free list", id)
			}
		}
	}
}

func TestMapReturnsZeroFilledSegment(t *testing.T) {
	st := NewSegmentStore(nil)
	id := st.Map(4)
	require.NotEqual(t, uint32(0), id, "segment 0 is reserved for code")
	for offset := uint32(0); offset < 4; offset++ {
		value, err := st.Read(id, offset)
		require.NoError(t, err)
		require.Equal(t, Word(0), value)
	}
}

func TestMapUnmapReuseFreeList(t *testing.T) {
	// S6: map(1) -> id1; map(1) -> id2; unmap(id1); map(1) -> id3.
	// id3 == id1, id2 unchanged.
	st := NewSegmentStore(nil)
	id1 := st.Map(1)
	id2 := st.Map(1)
	require.NoError(t, st.Unmap(id1))
	id3 := st.Map(1)
	require.Equal(t, id1, id3)
	require.NotEqual(t, id2, id3)

	// id2 must still be readable and untouched.
	_, err := st.Read(id2, 0)
	require.NoError(t, err)
}

func TestUnmapThenAccessFaults(t *testing.T) {
	st := NewSegmentStore(nil)
	id := st.Map(1)
	require.NoError(t, st.Unmap(id))

	_, err := st.Read(id, 0)
	require.Error(t, err)
	var f *Fault
	require.ErrorAs(t, err, &f)
	require.Equal(t, FaultSegment, f.Kind)
}

func TestUnmapSegmentZeroFaults(t *testing.T) {
	st := NewSegmentStore([]Word{0})
	err := st.Unmap(0)
	require.Error(t, err)
}

func TestUnmapUnmappedFaults(t *testing.T) {
	st := NewSegmentStore(nil)
	err := st.Unmap(7)
	require.Error(t, err)
}

func TestReadWriteOutOfRangeFaults(t *testing.T) {
	st := NewSegmentStore(nil)
	id := st.Map(2)

	_, err := st.Read(id, 2)
	require.Error(t, err)

	err = st.Write(id, 2, 42)
	require.Error(t, err)
}

func TestReplaceZeroWithZeroIDIsNoop(t *testing.T) {
	st := NewSegmentStore([]Word{1, 2, 3})
	require.NoError(t, st.ReplaceZero(0))
	v, err := st.Read(0, 1)
	require.NoError(t, err)
	require.Equal(t, Word(2), v)
}

func TestReplaceZeroDeepCopies(t *testing.T) {
	st := NewSegmentStore([]Word{0xFF})
	src := st.Map(1)
	require.NoError(t, st.Write(src, 0, 99))

	require.NoError(t, st.ReplaceZero(src))
	v, err := st.Read(0, 0)
	require.NoError(t, err)
	require.Equal(t, Word(99), v)

	// Mutating the source afterward must not affect segment 0.
	require.NoError(t, st.Write(src, 0, 1000))
	v, err = st.Read(0, 0)
	require.NoError(t, err)
	require.Equal(t, Word(99), v)
}

func TestSegmentStatsTracksFreeList(t *testing.T) {
	st := NewSegmentStore(nil)
	id := st.Map(1)
	mapped, free := st.Stats()
	require.Equal(t, 2, mapped) // segment 0 + id
	require.Equal(t, 0, free)

	require.NoError(t, st.Unmap(id))
	mapped, free = st.Stats()
	require.Equal(t, 1, mapped)
	require.Equal(t, 1, free)
}
