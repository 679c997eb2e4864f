package strand

// ForEach spawns one strand per item, each running fn(ctx, item) as its
// entry point, and returns the aggregated error once every item has
// been processed (grounded on the teacher's ForEach, which adapts items
// into error-only tasks and delegates to RunAll).
func ForEach[T any](k Kernel, items []T, fn func(ctx *Context, item T) error) error {
	if len(items) == 0 {
		return nil
	}
	entryPoints := make([]any, len(items))
	for i := range items {
		item := items[i]
		entryPoints[i] = Func(func(ctx *Context) (any, error) { return nil, fn(ctx, item) })
	}
	_, err := ExecuteAll(k, entryPoints)
	return err
}
