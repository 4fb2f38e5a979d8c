package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Sprite is a single entity to draw.
type Sprite struct {
	X, Y   float32
	Radius float32
	Tint   rl.Color
	Life   float32 // remaining fraction in [0, 1]
}

// SpriteRenderer draws entity sprites and reports them to a surface.
type SpriteRenderer struct {
	surface *Surface
}

// NewSpriteRenderer creates a sprite renderer counting into surface.
func NewSpriteRenderer(surface *Surface) *SpriteRenderer {
	return &SpriteRenderer{surface: surface}
}

// Draw renders all sprites, fading them out as their life runs down.
func (r *SpriteRenderer) Draw(sprites []Sprite) {
	for i := range sprites {
		sp := &sprites[i]

		life := sp.Life
		if life < 0 {
			life = 0
		} else if life > 1 {
			life = 1
		}

		color := sp.Tint
		color.A = uint8(float32(sp.Tint.A) * (0.25 + 0.75*life))

		size := sp.Radius
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircle(int32(sp.X), int32(sp.Y), size, color)
	}
	r.surface.CountCircles(len(sprites))
}
