package board

import (
	"errors"
	"strings"

	"github.com/BlackWLN/seafight/internal/dependencies/random"
)

// Size is the grid dimension; coordinates run 0..Size-1 on both axes
const Size = 10

// fleet is the classic complement: one battleship, two cruisers,
// three destroyers, four submarines
var fleet = []int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1}

// Cell is the state of a single grid cell
type Cell byte

const (
	CellEmpty Cell = iota
	CellShip
	CellHit
	CellMiss
)

// ShotResult is the outcome of applying a shot to a board
type ShotResult int

const (
	// ShotRepeat means the cell was already targeted or the
	// coordinates are out of range; the board is unchanged
	ShotRepeat ShotResult = iota
	ShotMiss
	ShotHit
	// ShotLose means the shot destroyed the last remaining ship cell
	ShotLose
)

func (r ShotResult) String() string {
	switch r {
	case ShotRepeat:
		return "repeat"
	case ShotMiss:
		return "miss"
	case ShotHit:
		return "hit"
	case ShotLose:
		return "lose"
	default:
		return "unknown"
	}
}

// ErrPlacementFailed is returned when random placement cannot fit the
// fleet after exhausting its retry budget
var ErrPlacementFailed = errors.New("could not place fleet on board")

// Board is one player's 10x10 grid with per-cell hit/miss bookkeeping
type Board struct {
	cells         [Size][Size]Cell
	shipCellsLeft int
}

// New creates an empty board with no ships placed
func New() *Board {
	return &Board{}
}

// ShipCellsLeft returns the number of ship cells not yet hit
func (b *Board) ShipCellsLeft() int {
	return b.shipCellsLeft
}

// Cell returns the state of the cell at (x, y), CellEmpty if out of range
func (b *Board) Cell(x, y int) Cell {
	if !inRange(x, y) {
		return CellEmpty
	}
	return b.cells[y][x]
}

// PlaceShip places a single ship of the given length with its bow at
// (x, y), extending right if horizontal or down otherwise. Ships may
// not overlap or touch, including diagonally.
func (b *Board) PlaceShip(x, y, length int, horizontal bool) error {
	dx, dy := 0, 1
	if horizontal {
		dx, dy = 1, 0
	}
	if !b.canPlace(x, y, dx, dy, length) {
		return ErrPlacementFailed
	}
	for i := 0; i < length; i++ {
		b.cells[y+i*dy][x+i*dx] = CellShip
	}
	b.shipCellsLeft += length
	return nil
}

// PlaceShipsRandomly clears the board and places the full fleet at
// random positions
func (b *Board) PlaceShipsRandomly(rnd random.Random) error {
	const maxBoardAttempts = 100
	const maxShipAttempts = 1000

	for attempt := 0; attempt < maxBoardAttempts; attempt++ {
		*b = Board{}
		if b.tryPlaceFleet(rnd, maxShipAttempts) {
			return nil
		}
	}
	*b = Board{}
	return ErrPlacementFailed
}

func (b *Board) tryPlaceFleet(rnd random.Random, maxShipAttempts int) bool {
	for _, length := range fleet {
		placed := false
		for i := 0; i < maxShipAttempts; i++ {
			x := rnd.Intn(Size)
			y := rnd.Intn(Size)
			horizontal := rnd.Intn(2) == 0
			if b.PlaceShip(x, y, length, horizontal) == nil {
				placed = true
				break
			}
		}
		if !placed {
			return false
		}
	}
	return true
}

// ProcessShot applies a shot at (x, y) and reports the outcome.
// Out-of-range coordinates and already-targeted cells yield ShotRepeat
// with no state change.
func (b *Board) ProcessShot(x, y int) ShotResult {
	if !inRange(x, y) {
		return ShotRepeat
	}
	switch b.cells[y][x] {
	case CellHit, CellMiss:
		return ShotRepeat
	case CellShip:
		b.cells[y][x] = CellHit
		b.shipCellsLeft--
		if b.shipCellsLeft == 0 {
			return ShotLose
		}
		return ShotHit
	default:
		b.cells[y][x] = CellMiss
		return ShotMiss
	}
}

// Render returns a text rendering of the board. Intact ship cells are
// shown only when revealShips is set; hits and misses always show.
func (b *Board) Render(revealShips bool) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < Size; x++ {
		sb.WriteByte('0' + byte(x))
		if x < Size-1 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\n')
	for y := 0; y < Size; y++ {
		sb.WriteByte(' ')
		sb.WriteByte('0' + byte(y))
		sb.WriteByte(' ')
		for x := 0; x < Size; x++ {
			switch b.cells[y][x] {
			case CellShip:
				if revealShips {
					sb.WriteByte('S')
				} else {
					sb.WriteByte('.')
				}
			case CellHit:
				sb.WriteByte('X')
			case CellMiss:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
			if x < Size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) canPlace(x, y, dx, dy, length int) bool {
	endX := x + (length-1)*dx
	endY := y + (length-1)*dy
	if !inRange(x, y) || !inRange(endX, endY) {
		return false
	}
	for i := 0; i < length; i++ {
		cx := x + i*dx
		cy := y + i*dy
		// The whole neighborhood must be free so ships never touch
		for ny := cy - 1; ny <= cy+1; ny++ {
			for nx := cx - 1; nx <= cx+1; nx++ {
				if inRange(nx, ny) && b.cells[ny][nx] == CellShip {
					return false
				}
			}
		}
	}
	return true
}

func inRange(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}
