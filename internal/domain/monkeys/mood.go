package monkeys

const (
	MoodMin = 0
	MoodMax = 100
)

func DefaultMood() Mood {
	return Mood{Happiness: 70, Loneliness: 20, Energy: 80}
}

func Clamp(v int) int {
	if v < MoodMin {
		return MoodMin
	}
	if v > MoodMax {
		return MoodMax
	}
	return v
}

func (m Mood) Clamped() Mood {
	return Mood{
		Happiness:  Clamp(m.Happiness),
		Loneliness: Clamp(m.Loneliness),
		Energy:     Clamp(m.Energy),
	}
}

// Adjust suma los deltas y recorta cada campo por separado a [0,100].
func (m Mood) Adjust(happiness, loneliness, energy int) Mood {
	return Mood{
		Happiness:  Clamp(m.Happiness + happiness),
		Loneliness: Clamp(m.Loneliness + loneliness),
		Energy:     Clamp(m.Energy + energy),
	}
}
