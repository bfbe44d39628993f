// Package canvas renders the snake board into a raylib window.
package canvas

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// cellOp is one queued tile update.
type cellOp struct {
	c     snake.Coord
	color color.RGBA
}

// Renderer keeps the board in a render texture that survives between
// frames, so each tick only repaints the tiles that changed.
// Draw calls are queued and applied by Commit, which must run on the
// raylib thread between frames.
type Renderer struct {
	tile       int32
	background color.RGBA

	target    rl.RenderTexture2D
	loaded    bool
	width     int32
	height    int32
	resize    bool
	ops       []cellOp
	committed int
}

// NewRenderer creates a renderer drawing tile-pixel cells on background.
func NewRenderer(tile int, background core.Color) *Renderer {
	return &Renderer{
		tile:       int32(tile),
		background: toRGBA(background),
	}
}

// CreateSurface schedules a new render texture of the given size.
func (r *Renderer) CreateSurface(widthPx, heightPx int) {
	r.width, r.height = int32(widthPx), int32(heightPx)
	r.resize = true
	r.ops = r.ops[:0]
}

// DrawCell queues a filled tile.
func (r *Renderer) DrawCell(c snake.Coord, col core.Color) {
	r.ops = append(r.ops, cellOp{c: c, color: toRGBA(col)})
}

// ClearCell queues a tile in the background colour.
func (r *Renderer) ClearCell(c snake.Coord) {
	r.ops = append(r.ops, cellOp{c: c, color: r.background})
}

// Pending returns the number of queued tile updates.
func (r *Renderer) Pending() int { return len(r.ops) }

// Commit applies queued updates to the render texture.
func (r *Renderer) Commit() {
	if r.resize {
		if r.loaded {
			rl.UnloadRenderTexture(r.target)
		}
		r.target = rl.LoadRenderTexture(r.width, r.height)
		r.loaded = true
		r.resize = false

		rl.BeginTextureMode(r.target)
		rl.ClearBackground(r.background)
		rl.EndTextureMode()
	}
	if len(r.ops) == 0 || !r.loaded {
		return
	}

	rl.BeginTextureMode(r.target)
	for _, op := range r.ops {
		rl.DrawRectangle(int32(op.c.Col)*r.tile, int32(op.c.Row)*r.tile, r.tile, r.tile, op.color)
	}
	rl.EndTextureMode()

	r.committed += len(r.ops)
	r.ops = r.ops[:0]
}

// Draw blits the board texture with its top-left corner at (x, y).
func (r *Renderer) Draw(x, y int32) {
	if !r.loaded {
		return
	}
	// Render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(r.width), -float32(r.height))
	rl.DrawTextureRec(r.target.Texture, src, rl.NewVector2(float32(x), float32(y)), rl.White)
}

// Unload releases the render texture.
func (r *Renderer) Unload() {
	if r.loaded {
		rl.UnloadRenderTexture(r.target)
		r.loaded = false
	}
}

// toRGBA converts a palette colour to an opaque raylib colour.
func toRGBA(c core.Color) color.RGBA {
	red, green, blue := c.RGB()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}
