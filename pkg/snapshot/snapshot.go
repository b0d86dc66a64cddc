// Package snapshot provides a generic scoped save-and-restore discipline
// for key/value stores. It backs the registry snapshot helpers but works
// against any store that can be read into a map and mutated per key, such
// as process environment variables.
package snapshot

// Scoped captures the current state of a key/value store and returns a
// restore function that puts the store back exactly as captured: mutated
// keys are rewritten, keys added after the capture are removed, and keys
// deleted after the capture are reinstated.
//
// The restore diffs against a fresh snapshot taken at restore time, so it
// reverts mutations made through any code path, not only through the
// caller's own accessors. Run it with defer so the restore executes even
// when the scoped body panics:
//
//	restore := snapshot.Scoped(snap, update, remove)
//	defer restore()
func Scoped[K comparable, V any](snap func() map[K]V, update func(K, V), remove func(K)) func() {
	original := snap()
	return func() {
		current := snap()
		for k := range current {
			if v, ok := original[k]; ok {
				update(k, v)
			} else {
				remove(k)
			}
		}
		for k, v := range original {
			if _, ok := current[k]; ok {
				continue
			}
			update(k, v)
		}
	}
}
