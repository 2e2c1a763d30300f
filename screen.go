// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

import "sort"

// Intensity distinguishes the four display/pen-detect states carried in
// bits 2-3 of a 3270 attribute byte. NonDisplay is kept as its own value
// (rather than folding it into a plain protected/intensified pair) because
// it is semantically distinct from "not intensified and not normal" --
// it is what makes a field a password field.
type Intensity int

const (
	Normal Intensity = iota
	PenDetectable
	Intensified
	NonDisplay
)

// Field is a contiguous run of cells beginning with an attribute byte. The
// attribute byte itself occupies Address and renders as a space; the
// field's data runs from Address+1 up to (but not including) the next
// field's Address, wrapping modulo the screen geometry.
type Field struct {
	Address   int
	Attribute byte
	Protected bool
	Numeric   bool
	Intensity Intensity
	Modified  bool
}

// Display reports whether this field's content should be shown to the
// user, i.e. it is not a NonDisplay (password) field.
func (f Field) Display() bool { return f.Intensity != NonDisplay }

// decodeAttribute splits a raw 3270 attribute byte into its component
// flags.
func decodeAttribute(attr byte) Field {
	intensity := Intensity((attr >> 2) & 0x03)
	return Field{
		Attribute: attr,
		Protected: attr&0x20 != 0,
		Numeric:   attr&0x10 != 0,
		Intensity: intensity,
		Modified:  attr&0x01 != 0,
	}
}

// Screen is the fixed-geometry display buffer the client maintains for a
// session: a cell/attribute buffer, an address-ordered field list, and a
// cursor position.
type Screen struct {
	Rows, Cols    int
	Cells         []rune
	Attributes    []byte
	Fields        []Field
	CursorAddress int
}

// NewScreen allocates a cleared screen of the given geometry.
func NewScreen(rows, cols int) *Screen {
	s := &Screen{Rows: rows, Cols: cols}
	s.Clear()
	return s
}

// Size returns rows*cols, the number of addressable cells.
func (s *Screen) Size() int { return s.Rows * s.Cols }

// Clear fills Cells with spaces, Attributes with zero, drops all fields,
// and resets the cursor to address 0.
func (s *Screen) Clear() {
	size := s.Size()
	s.Cells = make([]rune, size)
	for i := range s.Cells {
		s.Cells[i] = ' '
	}
	s.Attributes = make([]byte, size)
	s.Fields = nil
	s.CursorAddress = 0
}

// WriteChar sets the display character at addr (wrapping into range) and,
// if addr falls within an existing field, marks that field modified.
func (s *Screen) WriteChar(addr int, ch rune) {
	addr = wrap(addr, s.Size())
	if len(s.Cells) == 0 {
		return
	}
	s.Cells[addr] = ch
	if idx := s.fieldContaining(addr); idx >= 0 {
		s.Fields[idx].Modified = true
	}
}

// InsertField places a field record at addr (the attribute byte's cell),
// replacing any field already there, keeping Fields sorted by address.
// The cell at addr is set to a space -- the attribute byte itself never
// renders as a character.
func (s *Screen) InsertField(addr int, attr byte) {
	addr = wrap(addr, s.Size())
	fld := decodeAttribute(attr)
	fld.Address = addr

	if len(s.Cells) > addr {
		s.Cells[addr] = ' '
	}
	if len(s.Attributes) > addr {
		s.Attributes[addr] = attr
	}

	i := sort.Search(len(s.Fields), func(i int) bool {
		return s.Fields[i].Address >= addr
	})
	if i < len(s.Fields) && s.Fields[i].Address == addr {
		s.Fields[i] = fld
		return
	}
	s.Fields = append(s.Fields, Field{})
	copy(s.Fields[i+1:], s.Fields[i:])
	s.Fields[i] = fld
}

// fieldContaining returns the index into Fields of the field that owns
// addr, or -1 if addr is not covered by any field (an unformatted
// screen). Field extent wraps modulo the geometry: a field begun near the
// end of the buffer continues at address 0.
func (s *Screen) fieldContaining(addr int) int {
	if len(s.Fields) == 0 {
		return -1
	}
	n := len(s.Fields)
	i := sort.Search(n, func(i int) bool { return s.Fields[i].Address > addr })
	idx := i - 1
	if idx < 0 {
		idx = n - 1 // addr precedes every field's address; it belongs to the last (wrapping) field
	}
	return idx
}

// fieldEnd returns the last cell address (inclusive) belonging to the
// field at Fields[idx], wrapping modulo the geometry.
func (s *Screen) fieldEnd(idx int) int {
	size := s.Size()
	next := s.Fields[(idx+1)%len(s.Fields)].Address
	if len(s.Fields) == 1 || next == s.Fields[idx].Address {
		return wrap(s.Fields[idx].Address-1, size)
	}
	return wrap(next-1, size)
}

// MarkModified sets the Modified flag on the field at addr, if any. Used
// when the client (not the host) alters a cell inside a field.
func (s *Screen) MarkModified(addr int) {
	if idx := s.fieldContaining(addr); idx >= 0 {
		s.Fields[idx].Modified = true
	}
}

// ClearModified resets MDT on every field. Called after a non-Short-Read
// AID is transmitted.
func (s *Screen) ClearModified() {
	for i := range s.Fields {
		s.Fields[i].Modified = false
	}
}

// NextInputField returns the address one past the attribute byte of the
// next unprotected field strictly after from, wrapping around the
// geometry. It returns (0, false) if no unprotected field exists.
func (s *Screen) NextInputField(from int) (int, bool) {
	from = wrap(from, s.Size())
	n := len(s.Fields)
	for step := 1; step <= n; step++ {
		idx := s.fieldContaining(from)
		if idx < 0 {
			return 0, false
		}
		idx = (idx + 1) % n
		if !s.Fields[idx].Protected {
			return wrap(s.Fields[idx].Address+1, s.Size()), true
		}
		from = s.Fields[idx].Address
	}
	return 0, false
}

// PrevInputField returns the address one past the attribute byte of the
// nearest unprotected field searching backward from the field that
// contains from (that field included), wrapping around the geometry. It returns (0, false) if no unprotected field exists.
func (s *Screen) PrevInputField(from int) (int, bool) {
	from = wrap(from, s.Size())
	n := len(s.Fields)
	idx := s.fieldContaining(from)
	if idx < 0 {
		return 0, false
	}
	for step := 0; step < n; step++ {
		if !s.Fields[idx].Protected {
			return wrap(s.Fields[idx].Address+1, s.Size()), true
		}
		idx = (idx - 1 + n) % n
	}
	return 0, false
}

// IsPassword reports whether addr falls within a NonDisplay field.
func (s *Screen) IsPassword(addr int) bool {
	idx := s.fieldContaining(addr)
	if idx < 0 {
		return false
	}
	return s.Fields[idx].Intensity == NonDisplay
}

// fieldText returns the display-charset content of the field at idx,
// excluding the attribute byte itself.
func (s *Screen) fieldText(idx int) string {
	start := wrap(s.Fields[idx].Address+1, s.Size())
	end := s.fieldEnd(idx)
	var out []rune
	addr := start
	for {
		out = append(out, s.Cells[addr])
		if addr == end {
			break
		}
		addr = wrap(addr+1, s.Size())
	}
	return string(out)
}
