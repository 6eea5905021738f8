package wheel

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cloudstok/flash-roulette-backend/internal/config"
	"github.com/cloudstok/flash-roulette-backend/internal/model"
)

// Roller is the engine's only source of randomness. Swapping it for a seeded
// or fixed implementation makes every downstream computation deterministic.
type Roller interface {
	Draw() model.RoundOutcome
}

type Wheel struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func New(seed int64) *Wheel {
	return &Wheel{rnd: rand.New(rand.NewSource(seed))}
}

func NewWheel() *Wheel {
	return New(time.Now().UnixNano())
}

// Draw picks one of the 13 pockets uniformly and derives its color.
func (w *Wheel) Draw() model.RoundOutcome {
	w.mu.Lock()
	position := w.rnd.Intn(config.WheelSize) + config.MinPosition
	w.mu.Unlock()

	return model.RoundOutcome{
		Position: position,
		Color:    config.ColorOf(position),
	}
}
