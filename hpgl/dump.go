package hpgl

import "os"

// writeDump writes the raw HPGL command dump captured for one plot.
func writeDump(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}
