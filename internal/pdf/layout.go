package pdf

// Anchor places a field on the rinde template: a fractional page position plus
// a fixed point offset. Keeping placement declarative means the layout can be
// tuned (and unit-tested) without touching the render loop.
type Anchor struct {
	XFrac float64
	YFrac float64
	DX    float64
	DY    float64
}

// Point resolves the anchor against a page of the given size, in points.
func (a Anchor) Point(pageW, pageH float64) (x, y float64) {
	return pageW*a.XFrac + a.DX, pageH*a.YFrac + a.DY
}

// rindeLayout maps overlay fields to their position on the template page.
// Offsets are hand-tuned against the printed form.
var rindeLayout = map[string]Anchor{
	"name":          {XFrac: 0.18, YFrac: 0.205, DX: 4, DY: 0},
	"birthdate":     {XFrac: 0.18, YFrac: 0.245, DX: 4, DY: 0},
	"age":           {XFrac: 0.56, YFrac: 0.245, DX: 6, DY: 0},
	"dni":           {XFrac: 0.18, YFrac: 0.285, DX: 4, DY: 0},
	"school":        {XFrac: 0.56, YFrac: 0.285, DX: 6, DY: 0},
	"current_belt":  {XFrac: 0.18, YFrac: 0.345, DX: 4, DY: 0},
	"current_grade": {XFrac: 0.56, YFrac: 0.345, DX: 6, DY: 0},
	"target_belt":   {XFrac: 0.18, YFrac: 0.385, DX: 4, DY: 0},
	"target_grade":  {XFrac: 0.56, YFrac: 0.385, DX: 6, DY: 0},
	"exam_date":     {XFrac: 0.68, YFrac: 0.12, DX: 0, DY: 0},
}
