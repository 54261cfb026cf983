package grid

// Label is what an agent perceives at a tile.
type Label uint8

const (
	LabelEmpty Label = iota
	LabelWall
	LabelPellet
	LabelTarget
	LabelOther
)

var labelNames = [...]string{
	LabelEmpty:  "EMPTY",
	LabelWall:   "WALL",
	LabelPellet: "PELLET",
	LabelTarget: "TARGET",
	LabelOther:  "OTHER",
}

func (l Label) String() string {
	if int(l) < len(labelNames) {
		return labelNames[l]
	}
	return "UNKNOWN"
}

// View is an immutable coordinate -> label snapshot. The zero View is empty.
type View struct {
	cells map[Coord]Label
}

// NewView copies cells into a new View.
func NewView(cells map[Coord]Label) View {
	cp := make(map[Coord]Label, len(cells))
	for c, l := range cells {
		cp[c] = l
	}
	return View{cells: cp}
}

// At returns the label at c and whether c was perceived.
func (v View) At(c Coord) (Label, bool) {
	l, ok := v.cells[c]
	return l, ok
}

// Len returns the number of perceived tiles.
func (v View) Len() int {
	return len(v.cells)
}

// Coords returns every perceived tile row-major.
func (v View) Coords() []Coord {
	out := make([]Coord, 0, len(v.cells))
	for c := range v.cells {
		out = append(out, c)
	}
	SortCoords(out)
	return out
}

// OpenAt reports whether c is perceived and not a wall.
func (v View) OpenAt(c Coord) bool {
	l, ok := v.cells[c]
	return ok && l != LabelWall
}
