package domain

// Voice is one entry of a speech engine's voice listing. ID is what the
// engine accepts as its voice argument.
type Voice struct {
	ID       string
	Name     string
	Language string
}
