// Package mem provides a paged, sparsely-allocated cell store generalizing
// gothird's integer-cell memory core to an arbitrary element type. It backs
// collection.Array (cells of value.Value) and object's sorted properties
// table (cells of a property record).
package mem

import "fmt"

// DefaultPageSize provides a default for Cells.PageSize.
const DefaultPageSize = 255

// LimitError indicates that a memory operation, like Load or Stor, exceeded
// a configured Limit.
type LimitError struct {
	Addr uint
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", lim.Op, lim.Addr)
}

// Cells implements a paged, sparse sequence of T, addressed by uint offset.
// Pages are allocated lazily and may not all be the same size, though
// usually are in practice. The zero value of T stands in for an unallocated
// cell, mirroring gothird's implicit-zero semantics for unallocated memory.
type Cells[T any] struct {
	// PageSize specifies the length for newly allocated pages.
	PageSize uint

	// Limit specifies a limit, past which any Load or Stor should fail.
	Limit uint

	bases []uint
	pages [][]T
}

// Size returns an address one position higher than the last position
// allocated so far.
func (m *Cells[T]) Size() uint {
	if i := len(m.bases) - 1; i >= 0 {
		return m.bases[i] + uint(len(m.pages[i]))
	}
	return 0
}

func (m *Cells[T]) checkLimit(addr uint, op string) error {
	if maxSize := m.Limit; maxSize != 0 && addr > maxSize {
		return LimitError{addr, op}
	}
	return nil
}

func (m *Cells[T]) findPage(addr uint) int {
	i, j := 0, len(m.bases)
	for i < j {
		h := int(uint(i+j)>>1) + 1
		if h < len(m.bases) && m.bases[h] <= addr {
			i = h
		} else {
			j = h - 1
		}
	}
	return i
}

// Load returns the value at addr, or the zero value of T if addr falls in
// an unallocated page. Returns an error if addr exceeds Limit.
func (m *Cells[T]) Load(addr uint) (T, error) {
	var zero T
	if err := m.checkLimit(addr, "load"); err != nil {
		return zero, err
	}
	if m.PageSize == 0 || len(m.pages) == 0 {
		return zero, nil
	}

	pageID := m.findPage(addr)
	base := m.bases[pageID]
	page := m.pages[pageID]
	if i := int(addr) - int(base); 0 <= i && i < len(page) {
		return page[i], nil
	}
	return zero, nil
}

// LoadInto reads len(buf) cells from memory starting at addr, zeroing buf
// positions that fall in unallocated pages. Returns an error if Limit would
// be exceeded; no partial load is done.
func (m *Cells[T]) LoadInto(addr uint, buf []T) error {
	if len(buf) == 0 {
		return nil
	}

	end := addr + uint(len(buf))
	if err := m.checkLimit(end, "load"); err != nil {
		return err
	}

	for i := range buf {
		var zero T
		buf[i] = zero
	}

	if m.PageSize == 0 || len(m.pages) == 0 {
		return nil
	}

	for pageID := m.findPage(addr); addr < end && pageID < len(m.bases); pageID++ {
		base := m.bases[pageID]
		if base > end {
			break
		}

		off := addr
		skip := int(base) - int(off)
		if skip > 0 {
			if skip >= len(buf) {
				break
			}
			off += uint(skip)
			buf = buf[skip:]
		}

		page := m.pages[pageID]
		if pskip := int(off) - int(base); pskip > 0 {
			if pskip >= len(page) {
				continue
			}
			page = page[pskip:]
		}

		n := copy(buf, page)
		buf = buf[n:]
		addr = off + uint(n)
	}

	return nil
}

// Stor stores values starting at addr, allocating pages as necessary.
// Returns an error if Limit would be exceeded; no partial store is done.
func (m *Cells[T]) Stor(addr uint, values ...T) error {
	if len(values) == 0 {
		return nil
	}

	end := addr + uint(len(values))
	if err := m.checkLimit(end, "stor"); err != nil {
		return err
	}

	if m.PageSize == 0 {
		m.PageSize = DefaultPageSize
	}

	for pageID := m.findPage(addr); addr < end; pageID++ {
		base, page := m.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= uint(len(page)) {
				continue
			}
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		addr += uint(n)
	}

	return nil
}

// Truncate drops every cell at or past addr, shrinking or removing pages.
// Used by Array to implement length-changing operations.
func (m *Cells[T]) Truncate(addr uint) {
	pageID := m.findPage(addr)
	if pageID >= len(m.bases) {
		return
	}
	base := m.bases[pageID]
	if addr <= base {
		m.bases = m.bases[:pageID]
		m.pages = m.pages[:pageID]
		return
	}
	if i := addr - base; int(i) < len(m.pages[pageID]) {
		m.pages[pageID] = m.pages[pageID][:i]
	}
	m.bases = m.bases[:pageID+1]
	m.pages = m.pages[:pageID+1]
}

func (m *Cells[T]) allocPage(pageID int, addr uint) (base uint, page []T) {
	if pageID == len(m.bases) {
		base = addr / m.PageSize * m.PageSize
		size := m.PageSize
		if i := len(m.bases) - 1; i >= 0 {
			lastEnd := m.bases[i] + uint(len(m.pages[i]))
			if base < lastEnd {
				size -= lastEnd - base
				base = lastEnd
			}
		}
		page = make([]T, size)
		m.bases = append(m.bases, base)
		m.pages = append(m.pages, page)
		return base, page
	}

	base = m.bases[pageID]
	if addr < base {
		nextBase := base
		base = addr / m.PageSize * m.PageSize
		size := m.PageSize
		if gapSize := nextBase - base; size > gapSize {
			size = gapSize
		}
		page = make([]T, size)
		m.bases = append(m.bases, 0)
		m.pages = append(m.pages, nil)
		copy(m.bases[pageID+1:], m.bases[pageID:])
		copy(m.pages[pageID+1:], m.pages[pageID:])
		m.bases[pageID] = base
		m.pages[pageID] = page
		return base, page
	}

	return base, m.pages[pageID]
}

// Dump exposes internal page layout for testing.
type Dump[T any] struct {
	Bases []uint
	Pages [][]T
}

// Dump returns the current page layout, for test assertions.
func (m *Cells[T]) Dump() Dump[T] {
	return Dump[T]{Bases: m.bases, Pages: m.pages}
}
