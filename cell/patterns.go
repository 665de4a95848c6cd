package cell

// Named patterns. Each is placed away from the block's edges so that two
// generations (Step applied twice, as Next does) stay fully inside the
// region the bit kernel computes correctly.

// EmptySquare is the all-dead block.
func EmptySquare() Block { return Block(0) }

// Filled sets every cell alive, used to exercise the stitching identities:
// Center/Horizontal/Vertical of four/two copies of Filled reproduce Filled.
func Filled() Block { return Block(0xFFFFFFFFFFFFFFFF) }

// StillBlock is the 2x2 still life (distinct name from the Block type).
func StillBlock() Block {
	return Parse("........$" +
		"........$" +
		"..**....$" +
		"..**....$")
}

// Beehive is a six-cell still life.
func Beehive() Block {
	return Parse("........$" +
		"........$" +
		"...**...$" +
		"..*..*..$" +
		"...**...$")
}

// Loaf is a still life related to the beehive.
func Loaf() Block {
	return Parse("........$" +
		"........$" +
		"...**...$" +
		"..*..*..$" +
		"...*.*..$" +
		"....*...$")
}

// Boat is a five-cell still life.
func Boat() Block {
	return Parse("........$" +
		"........$" +
		"..**....$" +
		"..*.*...$" +
		"...*....$")
}

// Tub is a four-cell still life.
func Tub() Block {
	return Parse("........$" +
		"........$" +
		"...*....$" +
		"..*.*...$" +
		"...*....$")
}

// Blinker is a period-2 oscillator, horizontal phase.
func Blinker() Block {
	return Parse("........$" +
		"........$" +
		"..***...$")
}

// Toad is a period-2 oscillator.
func Toad() Block {
	return Parse("........$" +
		"........$" +
		"...***..$" +
		"..***...$")
}

// Beacon is a period-2 oscillator built from two diagonal blocks.
func Beacon() Block {
	return Parse("........$" +
		"........$" +
		"..**....$" +
		"..**....$" +
		"....**..$" +
		"....**..$")
}

// Glider is a period-4 spaceship that translates one cell south-east per
// period.
func Glider() Block {
	return Parse("........$" +
		"........$" +
		"...*....$" +
		"....*...$" +
		"..***...$")
}
