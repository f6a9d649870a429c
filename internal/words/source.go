package words

// Source is a cursor over a word list. It implements game.WordSource and is
// owned by a single controller; it is not safe for concurrent use.
type Source struct {
	list []string
	idx  int
}

// NewSource starts a cursor at index 0. list must not be empty.
func NewSource(list []string) (*Source, error) {
	if len(list) == 0 {
		return nil, ErrEmpty
	}
	return &Source{list: list}, nil
}

func (s *Source) Current() string { return s.list[s.idx] }
func (s *Source) Index() int      { return s.idx }
func (s *Source) Len() int        { return len(s.list) }

// Advance moves to the next word, wrapping after the last.
func (s *Source) Advance() int {
	s.idx = (s.idx + 1) % len(s.list)
	return s.idx
}

// Seek jumps to i; an out-of-range i resets to 0.
func (s *Source) Seek(i int) int {
	if i < 0 || i >= len(s.list) {
		i = 0
	}
	s.idx = i
	return s.idx
}
