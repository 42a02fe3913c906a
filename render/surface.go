package render

// Primitive is one stroked polyline, already in device-space millimeters
// (full paper, origin top-left), ready to be scaled into a PNG or PDF page.
type Primitive struct {
	Color       Color
	LineWidthMM float64
	Points      []point
}

// Recorder accumulates Primitives the way a resolution-independent recording
// surface accumulates drawing operations: geometry is captured once, in a
// device-independent unit (mm), and replayed at whatever resolution a
// backend needs at Save time.
type Recorder struct {
	cfg   *Config
	prims []Primitive
}

// Save renders the renderer's recorded primitives via its Recorder. It is
// the method hpgl.Parser.FinishPlot calls to serialize a completed plot.
func (r *Renderer) Save(filename string, format ImageFormat) error {
	return r.rec.Save(filename, format)
}

// NewRecorder creates an empty Recorder for the given config.
func NewRecorder(cfg *Config) *Recorder {
	return &Recorder{cfg: cfg}
}

// Add appends a finished stroke primitive.
func (r *Recorder) Add(p Primitive) {
	if len(p.Points) < 2 {
		return
	}
	r.prims = append(r.prims, p)
}

// Save renders every recorded primitive to filename using the requested
// backend, cropping to the config's draw extent and applying the
// background fill first.
func (r *Recorder) Save(filename string, format ImageFormat) error {
	switch format {
	case FormatPNG:
		return savePNG(filename, r.cfg, r.prims)
	case FormatPDF:
		return savePDF(filename, r.cfg, r.prims)
	default:
		return errInvalidArgs("SAVE", "unknown image format")
	}
}
