package recap

// League is the upstream league metadata a recap is resolved against.
type League struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Year        int    `json:"year"`
	CurrentWeek int    `json:"current_week"`
}

// TargetWeek is the most recently completed week, or 0 if the season has
// not started.
func (l League) TargetWeek() int {
	if l.CurrentWeek <= 1 {
		return 0
	}
	return l.CurrentWeek - 1
}
