package ink

import (
	"math"

	"github.com/vellumnote/ink/internal/blend"
	istroke "github.com/vellumnote/ink/internal/stroke"
)

// Renderer turns finalized strokes into pixels. The engine uses one
// renderer for both the live preview and the committed surface so the two
// can never disagree about a stroke's appearance.
type Renderer interface {
	// DrawStroke renders a stroke onto the pixmap.
	DrawStroke(pixmap *Pixmap, stroke *Stroke) error
}

// toolStyle is one row of the brush strategy table: the geometric and
// compositing parameters that distinguish the tool variants. Everything
// else about rendering is shared.
type toolStyle struct {
	cap   istroke.Cap
	join  istroke.Join
	blend blend.Mode

	// nib holds the fixed nib angle in radians for directional tools.
	nib    float64
	nibbed bool
}

// styleFor returns the rendering parameters for a tool. ToolKind is a
// closed set; unknown values render as a pen.
func styleFor(kind ToolKind) toolStyle {
	switch kind {
	case ToolCalligraphy:
		return toolStyle{
			cap:    istroke.CapRound,
			join:   istroke.JoinRound,
			blend:  blend.Normal,
			nib:    calligraphyNibAngle,
			nibbed: true,
		}
	case ToolMarker:
		return toolStyle{
			cap:   istroke.CapRound,
			join:  istroke.JoinRound,
			blend: blend.Normal,
		}
	case ToolHighlighter:
		return toolStyle{
			cap:   istroke.CapSquare,
			join:  istroke.JoinMiter,
			blend: blend.Multiply,
		}
	default:
		return toolStyle{
			cap:   istroke.CapRound,
			join:  istroke.JoinRound,
			blend: blend.Normal,
		}
	}
}

// calligraphyNibAngle is the fixed nib orientation: -45 degrees, the
// classic right-handed italic hold.
const calligraphyNibAngle = -math.Pi / 4

// nibWidthFactor scales stroke width by the angle between the movement
// direction and the nib. Movement along the nib edge leaves a thin line,
// movement across it a broad one. The floor keeps the nib from vanishing
// entirely.
func nibWidthFactor(moveAngle, nibAngle float64) float64 {
	return 0.3 + 0.7*math.Abs(math.Sin(moveAngle-nibAngle))
}

// outlineRibs converts stroke points into outline ribs.
func outlineRibs(points []StrokePoint) []istroke.Rib {
	ribs := make([]istroke.Rib, len(points))
	for i, p := range points {
		ribs[i] = istroke.Rib{
			P:         istroke.Point{X: p.X, Y: p.Y},
			HalfWidth: p.Width / 2,
		}
	}
	return ribs
}

// strokeLoops builds the filled outline loops for a stroke.
func strokeLoops(s *Stroke) [][]istroke.Point {
	style := styleFor(s.Tool)
	return istroke.Loops(outlineRibs(s.Points), istroke.Options{
		Cap:  style.cap,
		Join: style.join,
	})
}
