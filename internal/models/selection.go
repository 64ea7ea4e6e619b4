package models

// Selection is a wrapping cursor over a list of n entries, shared by the
// slash and autocomplete menus.
type Selection struct {
	index int
	size  int
}

// Reset points the selection at the first of size entries.
func (s *Selection) Reset(size int) {
	s.size = size
	s.index = 0
}

// Move shifts the cursor by delta, wrapping in both directions. Larger deltas
// (the ±5 group skip) wrap the same way as single steps.
func (s *Selection) Move(delta int) {
	if s.size == 0 {
		s.index = 0
		return
	}
	s.index = ((s.index+delta)%s.size + s.size) % s.size
}

// Set selects index i when it is in range.
func (s *Selection) Set(i int) bool {
	if i < 0 || i >= s.size {
		return false
	}
	s.index = i
	return true
}

// Index returns the selected position, or -1 when the list is empty.
func (s *Selection) Index() int {
	if s.size == 0 {
		return -1
	}
	return s.index
}

func (s *Selection) Size() int {
	return s.size
}
