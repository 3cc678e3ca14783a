package server

type limitQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// resolveLimit applies the default when no limit was sent and truncates
// anything above maxLimit.
func resolveLimit(requested, defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if requested > 0 {
		limit = requested
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if limit <= 0 {
		limit = 1
	}
	return limit
}
