package render

// lb strokes a label (LB command) starting at the current point: text line
// width and color, when configured, shadow the active pen for the duration
// of the call and are restored afterwards.
func (r *Renderer) lb(text string) error {
	orgX, orgY := r.curX, r.curY
	charOrgX, charOrgY := orgX, orgY

	prevOverride := r.labelOverride
	r.labelOverride = r.textOverride()
	defer func() { r.labelOverride = prevOverride }()

	font := r.cfg.Text.Font

	for _, c := range text {
		switch c {
		case '\n':
			charOrgY -= r.charH * charStepY
			charOrgX = orgX
		case '\r':
			charOrgX = orgX
		default:
			if font != nil {
				if strokes, ok := font.GetPaths(c); ok {
					for _, s := range strokes {
						px, py := r.charToHpglM.Apply(s.X, s.Y)
						px += charOrgX
						py += charOrgY
						if s.PenDown {
							r.rawPenDown()
						} else {
							r.rawPenUp()
						}
						r.rawMove([][2]float64{{px, py}})
					}
				}
			}
			charOrgX += r.charW * charStepX
		}
		r.rawPenUp()
		r.rawMove([][2]float64{{charOrgX, charOrgY}})
	}
	return nil
}

// textOverride builds the strokeStyle LB should draw with, falling back to
// the active pen for whichever of color/line-width the config leaves unset.
func (r *Renderer) textOverride() *strokeStyle {
	if r.cfg.Text.LineWidth == nil && r.cfg.Text.Color == nil {
		return nil
	}
	base := r.cfg.Pen(r.activePen)
	style := strokeStyle{color: base.Color, lineWidth: base.LineWidth}
	if r.cfg.Text.LineWidth != nil {
		style.lineWidth = *r.cfg.Text.LineWidth
	}
	if r.cfg.Text.Color != nil {
		style.color = *r.cfg.Text.Color
	}
	return &style
}
