package level

import (
	"encoding/binary"
	"fmt"

	"github.com/foundrylabs/arenacore/internal/mathutil"
)

// CellSize is the world-space edge length of one grid cell.
const CellSize = 64.0

// Grid is a fixed-size, immutable-after-load block grid (spec §3 Level).
type Grid struct {
	Width, Height int
	blocks        []BlockType
	playerStarts  []int
}

// New constructs an empty (all-BlockEmpty) grid of the given size.
func New(width, height int) *Grid {
	return &Grid{Width: width, Height: height, blocks: make([]BlockType, width*height)}
}

// At returns the block type at (x,y); out-of-bounds reads return BlockWall,
// treating the outside of the level as solid.
func (g *Grid) At(x, y int) BlockType {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return BlockWall
	}
	return g.blocks[y*g.Width+x]
}

// Set writes a block type during level construction.
func (g *Grid) Set(x, y int, t BlockType) {
	g.blocks[y*g.Width+x] = t
	if t == BlockPlayerStart {
		g.playerStarts = append(g.playerStarts, y*g.Width+x)
	}
}

// PlayerStarts returns the grid indices of every player-start block,
// recorded at load time (spec §3 "Stores a list of player-start block
// indices for respawn").
func (g *Grid) PlayerStarts() []int { return g.playerStarts }

// OpenCells returns the grid indices of every empty (non-wall,
// non-player-start) cell, in row-major order. The level file format has no
// dedicated collectible-spawn-point block, so session construction draws
// fixed collectible spawn positions from this list the same way it draws
// respawn positions from PlayerStarts.
func (g *Grid) OpenCells() []int {
	var out []int
	for i, t := range g.blocks {
		if t == BlockEmpty {
			out = append(out, i)
		}
	}
	return out
}

// IndexPosition returns the world-space center of a block index.
func (g *Grid) IndexPosition(index int) mathutil.Vector2 {
	x := index % g.Width
	y := index / g.Width
	return mathutil.Vector2{
		X: (float64(x) + 0.5) * CellSize,
		Y: (float64(y) + 0.5) * CellSize,
	}
}

// Decode parses a level buffer: u16 width, u16 height, u8 blocks[w*h]
// row-major (spec §6 "Level file").
func Decode(data []byte) (*Grid, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("level: buffer too short for header")
	}
	width := int(binary.BigEndian.Uint16(data[0:2]))
	height := int(binary.BigEndian.Uint16(data[2:4]))
	want := 4 + width*height
	if len(data) < want {
		return nil, fmt.Errorf("level: buffer too short: have %d, want %d", len(data), want)
	}
	g := New(width, height)
	for i := 0; i < width*height; i++ {
		t := BlockType(data[4+i])
		x, y := i%width, i/width
		g.Set(x, y, t)
	}
	return g, nil
}

// Encode serializes the grid back to its byte-for-byte wire representation
// (spec §8 "A level loaded from a buffer re-serializes byte-for-byte").
func (g *Grid) Encode() []byte {
	out := make([]byte, 4+g.Width*g.Height)
	binary.BigEndian.PutUint16(out[0:2], uint16(g.Width))
	binary.BigEndian.PutUint16(out[2:4], uint16(g.Height))
	for i, t := range g.blocks {
		out[4+i] = byte(t)
	}
	return out
}
