package simulator

import (
	"testing"
	"time"

	"github.com/ckarenz/floorsim/internal/eventbus"
	"github.com/ckarenz/floorsim/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestStaticPricingScalesWithComplexity(t *testing.T) {
	p := &StaticPricing{PriceMultiplier: 2, IngredientCostFactor: 0.5}
	dish := &models.MenuItem{Name: "ribeye", BasePrice: 20, PrepComplexity: 1.5}

	assert.InDelta(t, 40.0, p.Price(dish), 1e-9)
	assert.InDelta(t, 15.0, p.IngredientCost(dish), 1e-9, "20 * 0.5 * 1.5")
}

func TestStaticPricingDefaultsReplaceZeroConfig(t *testing.T) {
	p := NewStaticPricing(&models.Config{})
	dish := &models.MenuItem{Name: "margherita", BasePrice: 10, PrepComplexity: 1}

	assert.InDelta(t, 10.0, p.Price(dish), 1e-9)
	assert.InDelta(t, 3.5, p.IngredientCost(dish), 1e-9)
	assert.InDelta(t, 1.0, p.CookingSpeedMultiplier(), 1e-9)
}

func TestCookSpeedMultiplierShortensStationTime(t *testing.T) {
	cfg := testConfig()
	cfg.CookSpeedMultiplier = 2
	s := NewSimulator(cfg)
	s.initializeFloor()

	grill := s.findStationFor("ribeye")
	assert.Equal(t, 15*time.Second, s.cookDuration(grill), "upgraded kitchen cooks at double speed")
	assert.InDelta(t, 2.0, s.Pricing.CookingSpeedMultiplier(), 1e-9)
}

func TestDebitRefusesOverdraft(t *testing.T) {
	s := newTestSim()
	s.Funds = 10

	assert.False(t, s.debitFunds(10.01, "ingredient_purchase", "o1"))
	assert.Equal(t, 10.0, s.Funds, "refused debit leaves the till untouched")

	assert.True(t, s.debitFunds(10, "ingredient_purchase", "o1"))
	assert.Equal(t, 0.0, s.Funds)
}

func TestCreditAndDebitEmitFundsEvents(t *testing.T) {
	s := newTestSim()
	sub := s.Bus.Subscribe(eventbus.TypeFundsChanged)
	defer sub.Close()

	s.creditFunds(12.5, "order_payment", "o1")
	s.debitFunds(2.5, "ingredient_purchase", "o2")

	first := (<-sub.Events).Data.(FundsEvent)
	assert.Equal(t, 12.5, first.Delta)
	assert.Equal(t, s.Config.StartingFunds+12.5, first.Balance)

	second := (<-sub.Events).Data.(FundsEvent)
	assert.Equal(t, -2.5, second.Delta)
	assert.Equal(t, s.Funds, second.Balance)
}
