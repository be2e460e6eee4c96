package ai

// CourseOutline is the transient result of parsing generator output. It is
// validated, written to storage once, and discarded.
type CourseOutline struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Modules     []ModuleDraft `json:"modules"`
}

// ModuleDraft is an unpersisted module record. Order is 1-based; a draft
// with Order <= 0 gets its position in the list assigned during validation.
type ModuleDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Duration    string `json:"duration"`
}
