package settings

import "context"

type runKey struct{}

// IntoContext attaches the run settings to ctx.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the run settings attached to ctx, if any.
func FromContext(ctx context.Context) (*Run, bool) {
	r, ok := ctx.Value(runKey{}).(*Run)
	return r, ok && r != nil
}

// FromContextOrDefault returns the attached settings or NewCliParams.
func FromContextOrDefault(ctx context.Context) *Run {
	if r, ok := FromContext(ctx); ok {
		return r
	}
	return NewCliParams()
}

// Name describes the catalogue source for logs: the file path, "stdin" or
// "flags". Flags appended to a file or stdin do not change the name.
func (s SourceSettings) Name() string {
	switch {
	case s.Path != "":
		return s.Path
	case s.FromStdin:
		return "stdin"
	case s.FromFlags:
		return "flags"
	}
	return ""
}
