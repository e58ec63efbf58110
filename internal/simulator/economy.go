package simulator

import (
	"github.com/ckarenz/floorsim/internal/models"
)

// PricingEngine values dishes and kitchen equipment: what a customer
// pays, what the kitchen spends on ingredients to cook one, and how
// fast the installed equipment cooks relative to baseline.
type PricingEngine interface {
	Price(item *models.MenuItem) float64
	IngredientCost(item *models.MenuItem) float64
	CookingSpeedMultiplier() float64
}

// StaticPricing applies flat multipliers to the menu's base prices.
type StaticPricing struct {
	PriceMultiplier      float64
	IngredientCostFactor float64
	CookSpeedMultiplier  float64
}

func NewStaticPricing(cfg *models.Config) *StaticPricing {
	p := &StaticPricing{
		PriceMultiplier:      cfg.PriceMultiplier,
		IngredientCostFactor: cfg.IngredientCostFactor,
		CookSpeedMultiplier:  cfg.CookSpeedMultiplier,
	}
	if p.PriceMultiplier <= 0 {
		p.PriceMultiplier = 1.0
	}
	if p.IngredientCostFactor <= 0 {
		p.IngredientCostFactor = 0.35
	}
	if p.CookSpeedMultiplier <= 0 {
		p.CookSpeedMultiplier = 1.0
	}
	return p
}

// CookingSpeedMultiplier scales station cook times; values above one
// shorten them.
func (p *StaticPricing) CookingSpeedMultiplier() float64 {
	return p.CookSpeedMultiplier
}

func (p *StaticPricing) Price(item *models.MenuItem) float64 {
	if item == nil {
		return 0
	}
	return item.BasePrice * p.PriceMultiplier
}

// IngredientCost scales with preparation complexity so elaborate dishes
// cost the kitchen more per plate.
func (p *StaticPricing) IngredientCost(item *models.MenuItem) float64 {
	if item == nil {
		return 0
	}
	cost := item.BasePrice * p.IngredientCostFactor
	if item.PrepComplexity > 0 {
		cost *= item.PrepComplexity
	}
	return cost
}

// creditFunds adds takings to the till and records the change.
func (s *Simulator) creditFunds(amount float64, reason, orderID string) {
	if amount == 0 {
		return
	}
	s.Funds += amount
	s.emitFundsChanged(amount, reason, orderID)
}

// debitFunds spends from the till. It fails without side effects when
// the balance cannot cover the amount; the caller must cope.
func (s *Simulator) debitFunds(amount float64, reason, orderID string) bool {
	if amount > s.Funds {
		return false
	}
	if amount != 0 {
		s.Funds -= amount
		s.emitFundsChanged(-amount, reason, orderID)
	}
	return true
}
