package render

import "github.com/fogleman/gg"

// savePNG rasterizes primitives onto a gg.Context sized to the config's
// cropped draw extent at the configured DPI, then writes a PNG file.
func savePNG(filename string, cfg *Config, prims []Primitive) error {
	cropX, cropY, drawW, drawH := cfg.drawExtent()
	dotPerMM := cfg.DPI / 25.4
	imgW := int(drawW * dotPerMM)
	imgH := int(drawH * dotPerMM)

	dc := gg.NewContext(imgW, imgH)
	dc.SetRGBA(cfg.Background.R, cfg.Background.G, cfg.Background.B, cfg.Background.A)
	dc.Clear()
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, p := range prims {
		dc.SetRGBA(p.Color.R, p.Color.G, p.Color.B, p.Color.A)
		dc.SetLineWidth(p.LineWidthMM * dotPerMM)
		for i, pt := range p.Points {
			x := (pt.X - cropX) * dotPerMM
			y := (pt.Y - cropY) * dotPerMM
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}

	return dc.SavePNG(filename)
}
