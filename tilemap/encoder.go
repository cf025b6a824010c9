package tilemap

// Encoder maps grid coordinates to a linear storage index. The order of
// indices is the order the renderer walks the map in.
type Encoder interface {
	Encode(c Coord) int
	Decode(i int) Coord
	// Len is the number of storage slots the encoding needs, which can be
	// larger than width*height.
	Len() int
}

// NewEncoderFunc builds an Encoder for a width x height grid.
type NewEncoderFunc func(width, height int) Encoder

// FlatEncoder stores rows one after the other.
type FlatEncoder struct {
	width, height int
}

// NewFlatEncoder returns a row-major encoder.
func NewFlatEncoder(width, height int) Encoder {
	return FlatEncoder{width: width, height: height}
}

func (e FlatEncoder) Encode(c Coord) int {
	return c.Y*e.width + c.X
}

func (e FlatEncoder) Decode(i int) Coord {
	return Coord{X: i % e.width, Y: i / e.width}
}

func (e FlatEncoder) Len() int {
	return e.width * e.height
}

// MortonEncoder interleaves the bits of x and y (Z-order curve), so cells
// that are close on the grid are close in storage.
type MortonEncoder struct {
	side int
}

// NewMortonEncoder returns a Z-order encoder. Storage is allocated for the
// smallest power-of-two square holding the grid.
func NewMortonEncoder(width, height int) Encoder {
	side := 1
	for side < width || side < height {
		side <<= 1
	}
	return MortonEncoder{side: side}
}

func (e MortonEncoder) Encode(c Coord) int {
	return int(spread(uint32(c.X)) | spread(uint32(c.Y))<<1)
}

func (e MortonEncoder) Decode(i int) Coord {
	return Coord{X: int(compact(uint32(i))), Y: int(compact(uint32(i) >> 1))}
}

func (e MortonEncoder) Len() int {
	return e.side * e.side
}

// spread moves the low 16 bits of v to the even bit positions.
func spread(v uint32) uint32 {
	v &= 0x0000FFFF
	v = (v | v<<8) & 0x00FF00FF
	v = (v | v<<4) & 0x0F0F0F0F
	v = (v | v<<2) & 0x33333333
	v = (v | v<<1) & 0x55555555
	return v
}

// compact is the inverse of spread.
func compact(v uint32) uint32 {
	v &= 0x55555555
	v = (v | v>>1) & 0x33333333
	v = (v | v>>2) & 0x0F0F0F0F
	v = (v | v>>4) & 0x00FF00FF
	v = (v | v>>8) & 0x0000FFFF
	return v
}
