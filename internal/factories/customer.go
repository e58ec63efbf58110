package factories

import (
	"math/rand"
	"time"

	"github.com/ckarenz/floorsim/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

var fake = faker.New()

type CustomerFactory struct{}

// CreateCustomer makes a guest standing at the entrance with a short
// preference list drawn from the menu.
func (cf *CustomerFactory) CreateCustomer(config *models.Config, rng *rand.Rand, entrance models.Location, now time.Time, menuTypes []string) *models.Customer {
	speed := config.CustomerSpeed
	if speed <= 0 {
		speed = 1.2
	}
	// small per-person variation so the floor does not move in lockstep
	speed *= 0.85 + rng.Float64()*0.3

	var preferred []string
	if len(menuTypes) > 0 {
		count := 1 + rng.Intn(2)
		for _, i := range rng.Perm(len(menuTypes)) {
			preferred = append(preferred, menuTypes[i])
			if len(preferred) == count {
				break
			}
		}
	}

	return &models.Customer{
		ID:             cuid.New(),
		Name:           fake.Person().Name(),
		State:          models.CustomerStateEntering,
		Location:       entrance,
		Speed:          speed,
		PreferredTypes: preferred,
		ArrivedAt:      now,
	}
}
