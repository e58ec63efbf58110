package factories

import (
	"github.com/ckarenz/floorsim/internal/models"
	"github.com/lucsky/cuid"
)

type StaffFactory struct{}

func (sf *StaffFactory) CreateWaiter(config *models.Config, post models.Location) *models.Waiter {
	speed := config.WaiterSpeed
	if speed <= 0 {
		speed = 1.6
	}
	return &models.Waiter{
		ID:       cuid.New(),
		Name:     fake.Person().Name(),
		State:    models.WaiterStateIdle,
		Location: post,
		Speed:    speed,
		IdlePost: post,
	}
}

func (sf *StaffFactory) CreateChef(config *models.Config, post models.Location) *models.Chef {
	speed := config.ChefSpeed
	if speed <= 0 {
		speed = 1.4
	}
	return &models.Chef{
		ID:       cuid.New(),
		Name:     fake.Person().Name(),
		State:    models.ChefStateIdle,
		Location: post,
		Speed:    speed,
		IdlePost: post,
	}
}
