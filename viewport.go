package gridview

// tableScroll manages the body slot's viewport window over the derived
// rows: only rows in [offset, offset+maxVisible) are rendered. rows are a
// fixed one line high, so the window is pure index arithmetic.
type tableScroll struct {
	offset     int // first visible derived-row index
	maxVisible int // viewport height in data rows (excludes chrome)
}

func (s *tableScroll) scrollDown(n int, total int) {
	s.offset += n
	s.clamp(total)
}

func (s *tableScroll) scrollUp(n int) {
	s.offset -= n
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *tableScroll) pageDown(total int) { s.scrollDown(s.maxVisible, total) }
func (s *tableScroll) pageUp()            { s.scrollUp(s.maxVisible) }

func (s *tableScroll) clamp(total int) {
	if max := total - s.maxVisible; max > 0 {
		if s.offset > max {
			s.offset = max
		}
	} else {
		s.offset = 0
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// follow adjusts the offset so index stays inside the window.
func (s *tableScroll) follow(index, total int) {
	if index < s.offset {
		s.offset = index
	}
	if s.maxVisible > 0 && index >= s.offset+s.maxVisible {
		s.offset = index - s.maxVisible + 1
	}
	s.clamp(total)
}

// visible returns the window bounds [start, end) over total rows.
// a zero maxVisible means unsized yet: show everything.
func (s *tableScroll) visible(total int) (start, end int) {
	if s.maxVisible <= 0 {
		return 0, total
	}
	start = s.offset
	end = start + s.maxVisible
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return
}
