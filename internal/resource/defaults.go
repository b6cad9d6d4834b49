package resource

// Default returns v, or def when v is empty.
func Default(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
