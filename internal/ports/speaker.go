package ports

// Speaker issues a spoken phrase without waiting for it to finish. It fails
// with domain.ErrSpeechUnavailable when no synthesis capability exists.
type Speaker interface {
	Speak(text string, voice string) error
}
