package render

// Renderer is the stateful HPGL interpreter. It owns the plotter coordinate
// system, pen state, character geometry, and the Recorder that accumulates
// drawing primitives for later serialization. A Renderer is created by
// hpgl.Parser.StartPlot and destroyed by FinishPlot; it is not safe for
// concurrent use.
type Renderer struct {
	cfg *Config
	rec *Recorder

	rot                int
	p1abs, p2abs       [2]float64
	p1usr, p2usr       [2]float64
	charW, charH       float64
	charTiltTg         float64
	deviceM            Matrix
	userToHpglM        Matrix
	charToHpglM        Matrix

	penDown   bool
	curX, curY float64 // current point, absolute plotter units
	activePen int

	path []point // accumulated polyline, absolute plotter units

	// labelOverride is non-nil only while a LB command is being stroked; it
	// shadows the active pen's color/width for that nested drawing context.
	labelOverride *strokeStyle
}

type point struct{ X, Y float64 }

type strokeStyle struct {
	color     Color
	lineWidth float64 // mm
}

// NewRenderer creates a fresh Renderer over the given immutable config. It
// corresponds to HpglStreamParser.start_plot allocating a new canvas.
func NewRenderer(cfg *Config) *Renderer {
	r := &Renderer{cfg: cfg, rec: NewRecorder(cfg)}
	r.reset()
	return r
}

// reset implements the IN/DF full-reset semantics.
func (r *Renderer) reset() {
	r.rot = 0
	r.p1abs = [2]float64{0, 0}
	r.p2abs = [2]float64{r.cfg.PaperW / HPGLUnit, r.cfg.PaperH / HPGLUnit}
	r.p1usr = r.p1abs
	r.p2usr = r.p2abs

	r.charW = defaultCharWidthMM / HPGLUnit
	r.charH = defaultCharHeightMM / HPGLUnit
	r.charTiltTg = 0

	r.initAbsoluteCoordinates()
	r.updateUserTransform()
	r.updateCharTransform()

	r.path = nil
	r.curX, r.curY = 0, 0
	r.choosePen(0)
	r.penDown = false
}

// initAbsoluteCoordinates recomputes the device transform from rotation and
// paper size.
func (r *Renderer) initAbsoluteCoordinates() {
	r.deviceM = deviceTransform(r.rot, r.cfg.PaperW, r.cfg.PaperH)
}

func (r *Renderer) updateUserTransform() {
	m, err := userToHPGL(r.p1abs, r.p2abs, r.p1usr, r.p2usr)
	if err != nil {
		tracer().Errorf("%s", err)
		return
	}
	r.userToHpglM = m
}

func (r *Renderer) updateCharTransform() {
	r.charToHpglM = charToHPGL(r.charW, r.charH, r.charTiltTg)
}

func (r *Renderer) choosePen(pen int) {
	r.activePen = pen
}

func (r *Renderer) currentStroke() strokeStyle {
	if r.labelOverride != nil {
		return *r.labelOverride
	}
	pc := r.cfg.Pen(r.activePen)
	return strokeStyle{color: pc.Color, lineWidth: pc.LineWidth}
}

// rawPenDown flips the pen flag without touching the path, matching
// HpglRenderer.raw_pen_down.
func (r *Renderer) rawPenDown() {
	r.penDown = true
}

// rawPenUp flushes the accumulated path as a single stroked primitive if the
// pen was down, then clears the path while preserving the current point,
// matching HpglRenderer.raw_pen_up.
func (r *Renderer) rawPenUp() {
	if r.penDown && len(r.path) >= 2 {
		r.flushPath()
	}
	r.path = nil
	r.penDown = false
}

// rawMove either extends the path with line segments (pen down) or just
// relocates the current point (pen up), matching HpglRenderer.raw_move.
func (r *Renderer) rawMove(pts [][2]float64) {
	for _, p := range pts {
		if r.penDown {
			if len(r.path) == 0 {
				r.path = append(r.path, point{r.curX, r.curY})
			}
			r.path = append(r.path, point{p[0], p[1]})
		}
		r.curX, r.curY = p[0], p[1]
	}
}

// flushPath converts the accumulated absolute-plotter-unit path to
// device-space (mm) points and appends it to the recorder as one primitive.
func (r *Renderer) flushPath() {
	style := r.currentStroke()
	mmPts := make([]point, len(r.path))
	for i, p := range r.path {
		x, y := r.deviceM.Apply(p.X, p.Y)
		mmPts[i] = point{x, y}
	}
	r.rec.Add(Primitive{Color: style.color, LineWidthMM: style.lineWidth, Points: mmPts})
}

// pa applies the user->HPGL transform and forwards to rawMove, matching
// HpglRenderer.pa.
func (r *Renderer) pa(pts [][2]float64) {
	abs := make([][2]float64, len(pts))
	for i, p := range pts {
		x, y := r.userToHpglM.Apply(p[0], p[1])
		abs[i] = [2]float64{x, y}
	}
	r.rawMove(abs)
}

func (r *Renderer) pu(pts [][2]float64) {
	r.rawPenUp()
	r.pa(pts)
}

func (r *Renderer) pd(pts [][2]float64) {
	r.rawPenDown()
	r.pa(pts)
}

func (r *Renderer) ip(x1, y1, x2, y2 float64) {
	r.p1abs = [2]float64{x1, y1}
	r.p2abs = [2]float64{x2, y2}
	r.updateUserTransform()
}

func (r *Renderer) sc(xmin, xmax, ymin, ymax float64) {
	r.p1usr = [2]float64{xmin, ymin}
	r.p2usr = [2]float64{xmax, ymax}
	r.updateUserTransform()
}

// ro sets the rotation, mapping 90/180/270 exactly and logging, without
// changing state, on anything else.
func (r *Renderer) ro(angle int) {
	switch angle {
	case 0:
		r.rot = 0
	case 90:
		r.rot = 1
	case 180:
		r.rot = 2
	case 270:
		r.rot = 3
	default:
		tracer().Errorf("unsupported rotation angle %d, leaving rotation unchanged", angle)
		return
	}
	r.initAbsoluteCoordinates()
}

func (r *Renderer) si(widthCM, heightCM float64) {
	r.charW = widthCM * 10 / HPGLUnit
	r.charH = heightCM * 10 / HPGLUnit
	r.updateCharTransform()
}

func (r *Renderer) su(widthUsr, heightUsr float64) {
	wx, _ := r.userToHpglM.ApplyDistance(widthUsr, 0)
	_, hy := r.userToHpglM.ApplyDistance(0, heightUsr)
	r.charW = wx
	r.charH = hy
	r.updateCharTransform()
}

func (r *Renderer) sr(percentW, percentH float64) {
	r.charW = percentW * (r.p2abs[0] - r.p1abs[0]) * 0.01
	r.charH = percentH * (r.p2abs[1] - r.p1abs[1]) * 0.01
	r.updateCharTransform()
}

func (r *Renderer) sl(tiltTangent float64) {
	r.charTiltTg = tiltTangent
	r.updateCharTransform()
}

func (r *Renderer) sp(pen int) {
	r.choosePen(pen)
}
