package render

// ProcessCommand dispatches one decoded HPGL command (opcode plus its
// already-parsed numeric/string arguments) to the matching Renderer method.
// It is the Go equivalent of HpglRenderer.process_command / handle_command:
// the hpgl package owns tokenizing and argument splitting, this package owns
// only command semantics.
//
// args holds the command's comma-separated arguments, already split and
// trimmed but not type-converted, so a single table can validate arity
// before committing to float/int parsing per opcode.
func (r *Renderer) ProcessCommand(opcode string, args []string) error {
	switch opcode {
	case "IN", "DF":
		if len(args) != 0 {
			return errInvalidArgs(opcode, "expects no arguments")
		}
		r.reset()
		return nil

	case "DT":
		// The special-terminator symbol is parser-level state; the
		// renderer has nothing to do with it.
		return nil

	case "IP":
		nums, err := parseFloats(opcode, args, 4)
		if err != nil {
			return err
		}
		r.ip(nums[0], nums[1], nums[2], nums[3])
		return nil

	case "SC":
		nums, err := parseFloats(opcode, args, 4)
		if err != nil {
			return err
		}
		r.sc(nums[0], nums[1], nums[2], nums[3])
		return nil

	case "RO":
		angle := 0
		if len(args) >= 1 {
			n, err := parseFloats(opcode, args, 1)
			if err != nil {
				return err
			}
			angle = int(n[0])
		}
		r.ro(angle)
		return nil

	case "IW":
		// Clip window: accepted and ignored, clipping is not implemented.
		// Still validated for arity: 0 args (clear) or 4 (xmin,ymin,xmax,ymax).
		if len(args) == 0 {
			return nil
		}
		if _, err := parseFloats(opcode, args, 4); err != nil {
			return err
		}
		return nil

	case "SI":
		nums, err := parseFloats(opcode, args, 2)
		if err != nil {
			return err
		}
		r.si(nums[0], nums[1])
		return nil

	case "SU":
		nums, err := parseFloats(opcode, args, 2)
		if err != nil {
			return err
		}
		r.su(nums[0], nums[1])
		return nil

	case "SR":
		nums, err := parseFloats(opcode, args, 2)
		if err != nil {
			return err
		}
		r.sr(nums[0], nums[1])
		return nil

	case "SL":
		if len(args) == 0 {
			r.sl(0)
			return nil
		}
		nums, err := parseFloats(opcode, args, 1)
		if err != nil {
			return err
		}
		r.sl(nums[0])
		return nil

	case "SP":
		nums, err := parseFloats(opcode, args, 1)
		if err != nil {
			return err
		}
		r.sp(int(nums[0]))
		return nil

	case "PU":
		pts, err := parsePointPairs(opcode, args)
		if err != nil {
			return err
		}
		r.pu(pts)
		return nil

	case "PD":
		pts, err := parsePointPairs(opcode, args)
		if err != nil {
			return err
		}
		r.pd(pts)
		return nil

	case "LB":
		// LB's single argument is the literal label text up to its
		// terminator; the hpgl package passes it through unsplit.
		if len(args) != 1 {
			return errInvalidArgs(opcode, "expects exactly one text argument")
		}
		return r.lb(args[0])

	default:
		return errUnknownOpcode(opcode)
	}
}
