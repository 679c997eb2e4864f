package strand

// Map spawns one strand per item, each running fn(ctx, item) as its
// entry point, and returns the results in input order alongside the
// aggregated error (grounded on the teacher's Map, which adapts items
// into tasks and delegates to RunAll; here each item becomes a Func
// entry point and the call delegates to ExecuteAllOrdered).
func Map[T any](k Kernel, items []T, fn func(ctx *Context, item T) (any, error)) ([]any, error) {
	if len(items) == 0 {
		return nil, nil
	}
	entryPoints := make([]any, len(items))
	for i := range items {
		item := items[i]
		entryPoints[i] = Func(func(ctx *Context) (any, error) { return fn(ctx, item) })
	}
	return ExecuteAllOrdered(k, entryPoints)
}
