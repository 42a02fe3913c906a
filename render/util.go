package render

import (
	"fmt"
	"strconv"
)

// parseFloats parses exactly want comma-split arguments as float64, failing
// with ErrInvalidArgs on arity or format mismatch.
func parseFloats(cmd string, args []string, want int) ([]float64, error) {
	if len(args) != want {
		return nil, errInvalidArgs(cmd, "wrong argument count")
	}
	out := make([]float64, want)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, errInvalidArgs(cmd, fmt.Sprintf("argument %d is not numeric: %s", i, a))
		}
		out[i] = v
	}
	return out, nil
}

// parsePointPairs parses an even-length argument list as a sequence of (x, y)
// coordinate pairs, as used by PA/PU/PD.
func parsePointPairs(cmd string, args []string) ([][2]float64, error) {
	if len(args)%2 != 0 {
		return nil, errInvalidArgs(cmd, "odd number of coordinate values")
	}
	pts := make([][2]float64, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, errInvalidArgs(cmd, "non-numeric x coordinate: "+args[i])
		}
		y, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, errInvalidArgs(cmd, "non-numeric y coordinate: "+args[i+1])
		}
		pts = append(pts, [2]float64{x, y})
	}
	return pts, nil
}
