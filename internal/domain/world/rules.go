package world

import "time"

// Rules agrupa umbrales y probabilidades del tick. DefaultRules reproduce el juego en producción.
type Rules struct {
	InactiveAfter         time.Duration
	NotificationRetention time.Duration

	EnergyDecay      int
	LonelinessGrowth int
	HappinessDecay   int

	DailyChance float64

	TiredBelow       int
	TiredChance      float64
	TiredEnergyReset int

	LonelyAbove  int
	LonelyChance float64

	SadBelow  int
	SadChance float64

	SocialLonelinessAbove  int
	SocialChance           float64
	SocialLonelinessRelief int
	SocialHappinessBoost   int
}

func DefaultRules() Rules {
	return Rules{
		InactiveAfter:         30 * 24 * time.Hour,
		NotificationRetention: 7 * 24 * time.Hour,

		EnergyDecay:      2,
		LonelinessGrowth: 3,
		HappinessDecay:   1,

		DailyChance: 0.5,

		TiredBelow:       20,
		TiredChance:      0.3,
		TiredEnergyReset: 80,

		LonelyAbove:  70,
		LonelyChance: 0.3,

		SadBelow:  30,
		SadChance: 0.2,

		SocialLonelinessAbove:  50,
		SocialChance:           0.4,
		SocialLonelinessRelief: 20,
		SocialHappinessBoost:   10,
	}
}
