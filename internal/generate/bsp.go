// Package generate builds complete levels procedurally.
//
// The BSP generator recursively partitions the level footprint into rooms,
// connects them with L-shaped corridors, and emits one placed object per
// occupied tile using the selected theme's meshes and materials. Generation
// is fully deterministic for a fixed seed.
package generate

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/morganbevy/editor/internal/level"
	"github.com/morganbevy/editor/internal/spatial"
)

// Params controls BSP generation.
type Params struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Depth         int    `json:"depth"`
	MinRoomSize   int    `json:"min_room_size"`
	MaxRoomSize   int    `json:"max_room_size"`
	CorridorWidth int    `json:"corridor_width"`
	Theme         string `json:"theme"`

	// Seed fixes the PRNG. Nil means derive from wall time.
	Seed *uint64 `json:"seed,omitempty"`
}

type tile uint8

const (
	tileEmpty tile = iota
	tileWall
	tileFloor
	tileDoor
	tileCorridor
)

type room struct {
	x, y, w, h int
}

type bspNode struct {
	bounds room
	left   *bspNode
	right  *bspNode
	room   *room
}

// Generator produces BSP levels. A Generator is single-use state per
// Generate call; the type exists so callers can hold one and reuse it.
type Generator struct {
	rng    *rand.Rand
	grid   [][]tile
	width  int
	height int
}

// NewGenerator creates a BSP level generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds a level from the given parameters.
func (g *Generator) Generate(p Params) (level.Level, error) {
	if err := validateParams(p); err != nil {
		return level.Level{}, err
	}
	theme, err := ThemeByID(p.Theme)
	if err != nil {
		return level.Level{}, err
	}

	seed := uint64(time.Now().Unix())
	if p.Seed != nil {
		seed = *p.Seed
	}
	g.rng = rand.New(rand.NewSource(int64(seed)))
	g.width = p.Width
	g.height = p.Height
	g.grid = make([][]tile, p.Height)
	for y := range g.grid {
		g.grid[y] = make([]tile, p.Width)
	}

	slog.Info("starting BSP generation",
		"width", p.Width, "height", p.Height, "depth", p.Depth, "seed", seed)

	root := g.subdivide(room{x: 0, y: 0, w: p.Width, h: p.Height}, p)
	g.placeRooms(root)
	g.carveCorridors(root, p)

	objects := g.gridToObjects(theme)

	lvl := level.Level{
		ID:               uuid.Must(uuid.NewV7()).String(),
		Name:             fmt.Sprintf("BSP Level %d", seed),
		Objects:          objects,
		Layers:           []string{"Walls", "Floors", "Doors", "Collision"},
		GenerationSeed:   &seed,
		GenerationParams: p,
		Bounds: spatial.BoundingBox{
			Max: [3]float32{float32(p.Width), float32(p.Depth), float32(p.Height)},
		},
	}

	slog.Info("BSP generation complete", "objects", len(lvl.Objects))
	return lvl, nil
}

func validateParams(p Params) error {
	if p.Width <= 0 || p.Height <= 0 || p.Depth <= 0 {
		return fmt.Errorf("level dimensions must be positive, got %dx%dx%d", p.Width, p.Height, p.Depth)
	}
	if p.MinRoomSize < 2 {
		return fmt.Errorf("min room size must be at least 2, got %d", p.MinRoomSize)
	}
	if p.MaxRoomSize < p.MinRoomSize {
		return fmt.Errorf("max room size %d is smaller than min room size %d", p.MaxRoomSize, p.MinRoomSize)
	}
	if p.CorridorWidth < 1 {
		return fmt.Errorf("corridor width must be at least 1, got %d", p.CorridorWidth)
	}
	if p.Width < p.MinRoomSize || p.Height < p.MinRoomSize {
		return fmt.Errorf("level %dx%d cannot fit a %d-tile room", p.Width, p.Height, p.MinRoomSize)
	}
	return nil
}

// subdivide recursively splits the region until pieces fit the room size
// window, preferring to cut across the longer axis.
func (g *Generator) subdivide(r room, p Params) *bspNode {
	node := &bspNode{bounds: r}

	if r.w <= p.MaxRoomSize && r.h <= p.MaxRoomSize {
		if r.w >= p.MinRoomSize && r.h >= p.MinRoomSize {
			rm := r
			node.room = &rm
		}
		return node
	}

	var splitHorizontal bool
	switch {
	case r.w > r.h:
		splitHorizontal = g.chance(0.2)
	case r.h > r.w:
		splitHorizontal = g.chance(0.8)
	default:
		splitHorizontal = g.chance(0.5)
	}

	if splitHorizontal && r.h >= p.MinRoomSize*2 {
		at := g.intRange(p.MinRoomSize, r.h-p.MinRoomSize)
		node.left = g.subdivide(room{x: r.x, y: r.y, w: r.w, h: at}, p)
		node.right = g.subdivide(room{x: r.x, y: r.y + at, w: r.w, h: r.h - at}, p)
	} else if !splitHorizontal && r.w >= p.MinRoomSize*2 {
		at := g.intRange(p.MinRoomSize, r.w-p.MinRoomSize)
		node.left = g.subdivide(room{x: r.x, y: r.y, w: at, h: r.h}, p)
		node.right = g.subdivide(room{x: r.x + at, y: r.y, w: r.w - at, h: r.h}, p)
	} else if r.w >= p.MinRoomSize && r.h >= p.MinRoomSize {
		rm := r
		node.room = &rm
	}
	return node
}

// placeRooms fills room interiors with floor and rings them with wall.
func (g *Generator) placeRooms(node *bspNode) {
	if node == nil {
		return
	}
	if r := node.room; r != nil {
		for y := r.y; y < r.y+r.h; y++ {
			for x := r.x; x < r.x+r.w; x++ {
				if !g.inBounds(x, y) {
					continue
				}
				g.grid[y][x] = tileFloor
			}
		}
		for y := r.y; y < r.y+r.h; y++ {
			for x := r.x; x < r.x+r.w; x++ {
				if !g.inBounds(x, y) {
					continue
				}
				onBorder := x == r.x || x == r.x+r.w-1 || y == r.y || y == r.y+r.h-1
				if onBorder {
					g.grid[y][x] = tileWall
				}
			}
		}
	}
	g.placeRooms(node.left)
	g.placeRooms(node.right)
}

// carveCorridors connects sibling subtrees bottom-up.
func (g *Generator) carveCorridors(node *bspNode, p Params) {
	if node == nil || node.left == nil || node.right == nil {
		return
	}
	g.carveCorridors(node.left, p)
	g.carveCorridors(node.right, p)

	a := findRoom(node.left)
	b := findRoom(node.right)
	if a == nil || b == nil {
		return
	}
	ax := g.intRange(a.x+1, a.x+a.w-2)
	ay := g.intRange(a.y+1, a.y+a.h-2)
	bx := g.intRange(b.x+1, b.x+b.w-2)
	by := g.intRange(b.y+1, b.y+b.h-2)
	g.carveL(ax, ay, bx, by, p.CorridorWidth)
}

func findRoom(node *bspNode) *room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if r := findRoom(node.left); r != nil {
		return r
	}
	return findRoom(node.right)
}

// carveL digs an L-shaped corridor between two points, corner chosen at
// random so long runs do not all bend the same way.
func (g *Generator) carveL(x1, y1, x2, y2, width int) {
	cornerX := x2
	if g.chance(0.5) {
		cornerX = x1
	}
	cornerY := y1
	if cornerX == x1 {
		cornerY = y2
	}

	startX, endX := min(x1, cornerX), max(x1, cornerX)
	for x := startX; x <= endX; x++ {
		for w := 0; w < width; w++ {
			y := y2 + w
			if cornerX == x1 {
				y = y1 + w
			}
			if g.inBounds(x, y) {
				g.grid[y][x] = tileCorridor
			}
		}
	}

	startY, endY := min(y1, cornerY), max(y1, cornerY)
	for y := startY; y <= endY; y++ {
		for w := 0; w < width; w++ {
			x := x1 + w
			if cornerX == x1 {
				x = x2 + w
			}
			if g.inBounds(x, y) {
				g.grid[y][x] = tileCorridor
			}
		}
	}
}

// gridToObjects emits one placed object per occupied tile.
func (g *Generator) gridToObjects(theme Theme) []level.GameObject {
	var objects []level.GameObject
	for y, row := range g.grid {
		for x, t := range row {
			switch t {
			case tileFloor:
				objects = append(objects, g.tileObject(theme, "floor", x, y,
					[3]float32{float32(x), 0, float32(y)}, [3]float32{1, 0.1, 1},
					"Floors", []string{"floor", theme.ID}, nil))
			case tileWall:
				objects = append(objects, g.tileObject(theme, "wall", x, y,
					[3]float32{float32(x), 1, float32(y)}, [3]float32{1, 2, 1},
					"Walls", []string{"wall", "collision", theme.ID}, nil))
			case tileCorridor:
				objects = append(objects, g.tileObject(theme, "corridor", x, y,
					[3]float32{float32(x), 0, float32(y)}, [3]float32{1, 0.1, 1},
					"Floors", []string{"corridor", theme.ID}, nil))
			case tileDoor:
				objects = append(objects, g.tileObject(theme, "door", x, y,
					[3]float32{float32(x), 1, float32(y)}, [3]float32{1, 2, 0.2},
					"Doors", []string{"door", "interactive", theme.ID},
					map[string]any{"interactive": true, "opens": "both"}))
			}
		}
	}
	return objects
}

func (g *Generator) tileObject(theme Theme, kind string, x, y int, pos, scale [3]float32, layer string, tags []string, metadata map[string]any) level.GameObject {
	def := theme.Tiles[kind]
	if metadata == nil {
		metadata = map[string]any{}
	}
	return level.GameObject{
		ID:   uuid.Must(uuid.NewV7()).String(),
		Name: fmt.Sprintf("%s_%d_%d", kind, x, y),
		Transform: level.Transform3D{
			Position: pos,
			Rotation: [4]float32{0, 0, 0, 1},
			Scale:    scale,
		},
		Material: def.Material,
		Mesh:     def.Mesh,
		Layer:    layer,
		Tags:     tags,
		Metadata: metadata,
	}
}

func (g *Generator) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// chance returns true with probability p.
func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

// intRange returns a uniform int in [lo, hi]. Degenerate ranges collapse to lo.
func (g *Generator) intRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}
