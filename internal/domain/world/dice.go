package world

import "math/rand/v2"

// Dice concentra toda la aleatoriedad del tick para que los tests puedan fijarla.
type Dice interface {
	// Chance devuelve true con probabilidad p.
	Chance(p float64) bool
	// Intn devuelve un entero uniforme en [0,n).
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type randDice struct {
	r *rand.Rand
}

// NewDice usa una fuente sembrada por el runtime.
func NewDice() Dice {
	return randDice{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededDice es reproducible; útil para `worker tick --seed`.
func NewSeededDice(seed uint64) Dice {
	return randDice{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (d randDice) Chance(p float64) bool { return d.r.Float64() < p }
func (d randDice) Intn(n int) int        { return d.r.IntN(n) }

func (d randDice) Shuffle(n int, swap func(i, j int)) { d.r.Shuffle(n, swap) }
