package scroll

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Direction selects the axes a scroll container moves along.
type Direction uint8

// Scroll directions.
const (
	Vertical Direction = iota
	Horizontal
	Both
)

func (d Direction) vertical() bool   { return d == Vertical || d == Both }
func (d Direction) horizontal() bool { return d == Horizontal || d == Both }

// State is the phase of a Physics object.
type State uint8

// Physics states.
const (
	Idle State = iota
	Scrolling
	Decelerating
	Bouncing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scrolling:
		return "scrolling"
	case Decelerating:
		return "decelerating"
	case Bouncing:
		return "bouncing"
	default:
		return "unknown"
	}
}

// overscrollResistance scales input deltas while past an edge.
const overscrollResistance = 0.3

// Config tunes a Physics object.
type Config struct {
	Direction     Direction
	BounceEnabled bool
	// MaxOverscroll is the furthest the content may be dragged past an
	// edge, as a fraction of the viewport.
	MaxOverscroll float32
	// Friction is the velocity retained per 1/60 s of momentum.
	Friction float32
	// VelocityThreshold in px/s below which momentum stops.
	VelocityThreshold float32
	// BounceDuration in seconds.
	BounceDuration float32
	Ease           ease.TweenFunc
}

// DefaultConfig returns a vertical, bouncing configuration.
func DefaultConfig() Config {
	return Config{
		Direction:         Vertical,
		BounceEnabled:     true,
		MaxOverscroll:     0.3,
		Friction:          0.95,
		VelocityThreshold: 10,
		BounceDuration:    0.4,
		Ease:              ease.OutCubic,
	}
}

// NoBounce returns DefaultConfig with bouncing disabled.
func NoBounce() Config {
	c := DefaultConfig()
	c.BounceEnabled = false
	return c
}

// Physics is the scroll model of one container: offsets, momentum, and
// rubber-band overscroll that springs back to the nearest edge. Offsets are
// zero at the top-left and negative as content scrolls up or left.
type Physics struct {
	Config

	Offset   Vec
	Velocity Vec // px/s
	Viewport Vec
	Content  Vec

	state  State
	tweenX *gween.Tween
	tweenY *gween.Tween
	target Vec
}

// NewPhysics returns an idle Physics object.
func NewPhysics(cfg Config) *Physics {
	if cfg.Ease == nil {
		cfg.Ease = ease.OutCubic
	}
	return &Physics{Config: cfg}
}

// State returns the current phase.
func (p *Physics) State() State { return p.state }

// IsAnimating reports whether Tick still has work to do.
func (p *Physics) IsAnimating() bool { return p.state != Idle }

// SetExtents updates the viewport and content sizes.
func (p *Physics) SetExtents(viewport, content Vec) {
	p.Viewport, p.Content = viewport, content
}

// MinOffset is the most negative in-bounds offset per axis.
func (p *Physics) MinOffset() Vec {
	return Vec{X: minOffset(p.Viewport.X, p.Content.X), Y: minOffset(p.Viewport.Y, p.Content.Y)}
}

func minOffset(viewport, content float32) float32 {
	if s := content - viewport; s > 0 {
		return -s
	}
	return 0
}

func overscrolled(off, lo float32) bool { return off > 0 || off < lo }

// IsOverscrolling reports whether an active axis is past an edge.
func (p *Physics) IsOverscrolling() bool {
	lo := p.MinOffset()
	return (p.Direction.vertical() && overscrolled(p.Offset.Y, lo.Y)) ||
		(p.Direction.horizontal() && overscrolled(p.Offset.X, lo.X))
}

// Overscroll returns how far each axis is past its edge: positive at the
// top or left, negative at the bottom or right.
func (p *Physics) Overscroll() Vec {
	lo := p.MinOffset()
	return Vec{X: overscrollAmount(p.Offset.X, lo.X), Y: overscrollAmount(p.Offset.Y, lo.Y)}
}

func overscrollAmount(off, lo float32) float32 {
	switch {
	case off > 0:
		return off
	case off < lo:
		return off - lo
	default:
		return 0
	}
}

// ApplyDelta moves the content by a user input delta.
func (p *Physics) ApplyDelta(dx, dy float32) {
	p.state = Scrolling
	p.tweenX, p.tweenY = nil, nil
	lo := p.MinOffset()
	if p.Direction.vertical() {
		p.Offset.Y = p.step(p.Offset.Y, dy, lo.Y, p.Viewport.Y)
	}
	if p.Direction.horizontal() {
		p.Offset.X = p.step(p.Offset.X, dx, lo.X, p.Viewport.X)
	}
}

func (p *Physics) step(off, delta, lo, viewport float32) float32 {
	if !p.BounceEnabled {
		return clamp(off+delta, lo, 0)
	}
	if overscrolled(off, lo) {
		delta *= overscrollResistance
	}
	over := viewport * p.MaxOverscroll
	return clamp(off+delta, lo-over, over)
}

// Fling ends a gesture with a release velocity in px/s.
func (p *Physics) Fling(vx, vy float32) {
	p.Velocity = Vec{X: vx, Y: vy}
	p.EndGesture()
}

// EndGesture marks the end of user input. An overscrolled container starts
// bouncing back; otherwise it decelerates with its remaining velocity.
func (p *Physics) EndGesture() {
	p.state = Decelerating
	if p.BounceEnabled && p.IsOverscrolling() {
		p.startBounce()
	}
}

func (p *Physics) startBounce() {
	lo := p.MinOffset()
	p.Velocity = Vec{}
	p.tweenX, p.tweenY = nil, nil
	if p.Direction.vertical() && overscrolled(p.Offset.Y, lo.Y) {
		p.target.Y = edge(p.Offset.Y, lo.Y)
		p.tweenY = gween.New(p.Offset.Y, p.target.Y, p.BounceDuration, p.Ease)
	}
	if p.Direction.horizontal() && overscrolled(p.Offset.X, lo.X) {
		p.target.X = edge(p.Offset.X, lo.X)
		p.tweenX = gween.New(p.Offset.X, p.target.X, p.BounceDuration, p.Ease)
	}
	p.state = Bouncing
}

func edge(off, lo float32) float32 {
	if off > 0 {
		return 0
	}
	return lo
}

// Tick advances momentum and bounce by dt seconds. It returns false once the
// container is at rest.
func (p *Physics) Tick(dt float32) bool {
	switch p.state {
	case Scrolling:
		if p.BounceEnabled && p.IsOverscrolling() {
			p.startBounce()
		}
		return true

	case Decelerating:
		if p.Velocity != (Vec{}) {
			p.decelerate(dt)
		}
		if p.BounceEnabled && p.IsOverscrolling() {
			p.startBounce()
			return true
		}
		if p.Velocity != (Vec{}) {
			return true
		}
		p.state = Idle
		return false

	case Bouncing:
		active := false
		if p.tweenY != nil {
			v, done := p.tweenY.Update(dt)
			p.Offset.Y = v
			if done {
				p.Offset.Y, p.tweenY = p.target.Y, nil
			} else {
				active = true
			}
		}
		if p.tweenX != nil {
			v, done := p.tweenX.Update(dt)
			p.Offset.X = v
			if done {
				p.Offset.X, p.tweenX = p.target.X, nil
			} else {
				active = true
			}
		}
		if !active {
			p.state = Idle
		}
		return active
	}
	return false
}

func (p *Physics) decelerate(dt float32) {
	lo := p.MinOffset()
	if !p.Direction.vertical() {
		p.Velocity.Y = 0
	}
	if !p.Direction.horizontal() {
		p.Velocity.X = 0
	}
	p.Offset = p.Offset.Add(p.Velocity.Scale(dt))
	if !p.BounceEnabled {
		p.Offset.X = clamp(p.Offset.X, lo.X, 0)
		p.Offset.Y = clamp(p.Offset.Y, lo.Y, 0)
	}

	decay := math32.Pow(p.Friction, dt*60)
	p.Velocity = p.Velocity.Scale(decay)
	if math32.Abs(p.Velocity.X) < p.VelocityThreshold {
		p.Velocity.X = 0
	}
	if math32.Abs(p.Velocity.Y) < p.VelocityThreshold {
		p.Velocity.Y = 0
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}
