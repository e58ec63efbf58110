package factories

import (
	"github.com/ckarenz/floorsim/internal/models"
	"github.com/lucsky/cuid"
)

type MenuFactory struct{}

// BuildMenu turns the configured dishes into menu items keyed by food
// type. The dish name is the food type everywhere downstream.
func (mf *MenuFactory) BuildMenu(config *models.Config) map[string]*models.MenuItem {
	menu := make(map[string]*models.MenuItem, len(config.MenuDishes))
	for _, dish := range config.MenuDishes {
		menu[dish.Name] = &models.MenuItem{
			ID:             cuid.New(),
			Name:           dish.Name,
			BasePrice:      dish.Price,
			PrepComplexity: dish.Complexity,
			StationKind:    dish.Station,
		}
	}
	return menu
}
