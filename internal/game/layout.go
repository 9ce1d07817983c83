package game

// minWindowHeight keeps room for the HUD and log panel on small boards.
const minWindowHeight = 480

// boardLayout maps between window pixels and tile coordinates.
type boardLayout struct {
	offX, offY    int // pixel offset of the board's top-left corner
	tile          int // tile edge in pixels
	width, height int // board size in tiles
}

func (l boardLayout) pixelWidth() int  { return l.width * l.tile }
func (l boardLayout) pixelHeight() int { return l.height * l.tile }

// tileAt converts a cursor position to tile coordinates. ok is false when the
// cursor is off the board.
func (l boardLayout) tileAt(px, py int) (x, y int, ok bool) {
	rx, ry := px-l.offX, py-l.offY
	if rx < 0 || ry < 0 || rx >= l.pixelWidth() || ry >= l.pixelHeight() {
		return 0, 0, false
	}
	return rx / l.tile, ry / l.tile, true
}

// origin returns the top-left pixel of tile (x, y).
func (l boardLayout) origin(x, y int) (float32, float32) {
	return float32(l.offX + x*l.tile), float32(l.offY + y*l.tile)
}

// centre returns the centre pixel of tile (x, y).
func (l boardLayout) centre(x, y int) (float32, float32) {
	ox, oy := l.origin(x, y)
	h := float32(l.tile) / 2
	return ox + h, oy + h
}
