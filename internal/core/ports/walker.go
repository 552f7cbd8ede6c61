package ports

import "iter"

// Walker enumerates candidate files below a root directory.
type Walker interface {
	// WalkFiles yields every regular file under root, skipping ignored names.
	WalkFiles(root string, ignores []string) iter.Seq[string]
}
