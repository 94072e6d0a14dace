package hal

import "sync"

// MemoryDisplay is a FrameSink backed by an in-memory RGB565 buffer.
//
// The host window reads it through Snapshot while the render loop writes, so
// every access takes the lock.
type MemoryDisplay struct {
	mu     sync.Mutex
	width  int
	height int
	buf    []uint16

	// active address window, inclusive
	wx0, wy0, wx1, wy1 int
	cx, cy             int

	writes uint64
}

// NewMemoryDisplay returns a black width x height display.
func NewMemoryDisplay(width, height int) *MemoryDisplay {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &MemoryDisplay{
		width:  width,
		height: height,
		buf:    make([]uint16, width*height),
		wx1:    width - 1,
		wy1:    height - 1,
	}
}

func (d *MemoryDisplay) Width() int  { return d.width }
func (d *MemoryDisplay) Height() int { return d.height }

func (d *MemoryDisplay) SetAddrWindow(x0, y0, x1, y1 int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	d.wx0, d.wy0, d.wx1, d.wy1 = x0, y0, x1, y1
	d.cx, d.cy = x0, y0
}

func (d *MemoryDisplay) BeginWrite() {}
func (d *MemoryDisplay) EndWrite()   {}

func (d *MemoryDisplay) WritePixel(c uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.put(c)
}

func (d *MemoryDisplay) WritePixels(px []uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range px {
		d.put(c)
	}
}

// put stores c at the window cursor and advances it, wrapping inside the
// window like the panel's GRAM pointer. Off-screen cells are discarded.
func (d *MemoryDisplay) put(c uint16) {
	if d.cx >= 0 && d.cx < d.width && d.cy >= 0 && d.cy < d.height {
		d.buf[d.cy*d.width+d.cx] = c
	}
	d.writes++
	d.cx++
	if d.cx > d.wx1 {
		d.cx = d.wx0
		d.cy++
		if d.cy > d.wy1 {
			d.cy = d.wy0
		}
	}
}

func (d *MemoryDisplay) FillRect(x, y, w, h int, c uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()

	x0 := clampInt(x, 0, d.width)
	y0 := clampInt(y, 0, d.height)
	x1 := clampInt(x+w, 0, d.width)
	y1 := clampInt(y+h, 0, d.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for py := y0; py < y1; py++ {
		row := d.buf[py*d.width : (py+1)*d.width]
		for px := x0; px < x1; px++ {
			row[px] = c
		}
	}
	d.writes += uint64((x1 - x0) * (y1 - y0))
}

func (d *MemoryDisplay) FillScreen(c uint16) {
	d.FillRect(0, 0, d.width, d.height, c)
}

// Pixel returns the colour at (x, y), or 0 outside the display.
func (d *MemoryDisplay) Pixel(x, y int) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 0
	}
	return d.buf[y*d.width+x]
}

// Snapshot copies the frame into dst and returns the number of pixels copied.
func (d *MemoryDisplay) Snapshot(dst []uint16) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return copy(dst, d.buf)
}

// PixelWrites reports how many pixels have been written since creation.
func (d *MemoryDisplay) PixelWrites() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
