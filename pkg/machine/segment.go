package machine

// Segment is a length-indexed, owned sequence of words. Segment 0 is
// always the currently-executing code segment.
type Segment struct {
	data []Word
}

func newSegment(n uint32) Segment {
	return Segment{data: make([]Word, n)}
}

// Len returns the number of words in the segment.
func (s Segment) Len() int {
	return len(s.data)
}

// clone returns a deep copy of s, used by replaceZero so that mutating
// the source segment after a LOADP does not affect the code segment it
// was copied into.
func (s Segment) clone() Segment {
	data := make([]Word, len(s.data))
	copy(data, s.data)
	return Segment{data: data}
}

// SegmentStore owns every memory segment belonging to a Machine. IDs are
// assigned densely from 0 upward; a LIFO free list of previously-unmapped
// IDs is consulted first so that map/unmap churn does not grow the
// backing index without bound.
//
// The free list is deliberately LIFO (a plain slice used as a stack):
// the most recently freed ID is the most likely to still be warm in
// whatever cache or allocator metadata backs the implementation.
type SegmentStore struct {
	segments []Segment
	mapped   []bool
	free     []uint32
}

// NewSegmentStore returns a store whose segment 0 holds code, a deep
// copy of the words in initial.
func NewSegmentStore(initial []Word) *SegmentStore {
	data := make([]Word, len(initial))
	copy(data, initial)
	return &SegmentStore{
		segments: []Segment{{data: data}},
		mapped:   []bool{true},
	}
}

// Map allocates a new segment of n words, all zero, and returns its ID.
// It pops the free list when non-empty; otherwise it mints a fresh ID
// equal to the number of segments ever created.
func (st *SegmentStore) Map(n uint32) uint32 {
	seg := newSegment(n)
	if len(st.free) > 0 {
		id := st.free[len(st.free)-1]
		st.free = st.free[:len(st.free)-1]
		st.segments[id] = seg
		st.mapped[id] = true
		return id
	}
	id := uint32(len(st.segments))
	st.segments = append(st.segments, seg)
	st.mapped = append(st.mapped, true)
	return id
}

// Unmap marks id unmapped and pushes it onto the free list. Unmapping
// segment 0, an out-of-range ID, or an already-unmapped ID faults.
func (st *SegmentStore) Unmap(id uint32) error {
	if id == 0 {
		return newFault(FaultSegment, "cannot unmap segment 0")
	}
	if !st.isMapped(id) {
		return newFault(FaultSegment, "unmap of unmapped segment %d", id)
	}
	st.mapped[id] = false
	st.segments[id] = Segment{}
	st.free = append(st.free, id)
	return nil
}

// Read returns the word at segment id, offset.
func (st *SegmentStore) Read(id, offset uint32) (Word, error) {
	seg, err := st.segmentFor(id)
	if err != nil {
		return 0, err
	}
	if offset >= uint32(seg.Len()) {
		return 0, newFault(FaultSegment, "read offset %d out of range for segment %d (len %d)", offset, id, seg.Len())
	}
	return seg.data[offset], nil
}

// Write sets the word at segment id, offset.
func (st *SegmentStore) Write(id, offset uint32, value Word) error {
	seg, err := st.segmentFor(id)
	if err != nil {
		return err
	}
	if offset >= uint32(seg.Len()) {
		return newFault(FaultSegment, "write offset %d out of range for segment %d (len %d)", offset, id, seg.Len())
	}
	st.segments[id].data[offset] = value
	return nil
}

// ReplaceZero atomically replaces the contents of segment 0 with a deep
// copy of segment id's contents. If id is 0, this is a no-op: segment 0
// is already its own contents. Segment id itself remains mapped and
// unchanged.
func (st *SegmentStore) ReplaceZero(id uint32) error {
	if id == 0 {
		return nil
	}
	seg, err := st.segmentFor(id)
	if err != nil {
		return err
	}
	st.segments[0] = seg.clone()
	return nil
}

// Stats reports the number of currently mapped segments and the number
// of IDs on the free list. It exists purely for observability and is
// never consulted by an operation handler.
func (st *SegmentStore) Stats() (mapped, free int) {
	for _, m := range st.mapped {
		if m {
			mapped++
		}
	}
	return mapped, len(st.free)
}

// CodeLen returns the current length of segment 0, used by the fetch
// bounds check in the execution loop.
func (st *SegmentStore) CodeLen() uint32 {
	return uint32(st.segments[0].Len())
}

// FetchCode returns the word at offset in segment 0.
func (st *SegmentStore) FetchCode(offset Word) (Word, error) {
	if offset >= st.CodeLen() {
		return 0, newFault(FaultFetch, "program counter %d out of bounds (code length %d)", offset, st.CodeLen())
	}
	return st.segments[0].data[offset], nil
}

func (st *SegmentStore) isMapped(id uint32) bool {
	return int(id) < len(st.mapped) && st.mapped[id]
}

func (st *SegmentStore) segmentFor(id uint32) (Segment, error) {
	if !st.isMapped(id) {
		return Segment{}, newFault(FaultSegment, "access to unmapped segment %d", id)
	}
	return st.segments[id], nil
}
