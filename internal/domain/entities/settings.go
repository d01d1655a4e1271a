package entities

// Preferences are the persisted display preferences and high score.
type Preferences struct {
	ShuffleQuestions bool
	ShuffleAnswers   bool
	HighScore        *int // nil until the first completed session
}

// NewPreferences returns preferences with default values.
func NewPreferences() Preferences {
	return Preferences{
		ShuffleQuestions: false,
		ShuffleAnswers:   true,
	}
}

// HasHighScore reports whether a high score has been stored.
func (p Preferences) HasHighScore() bool {
	return p.HighScore != nil
}
