package simulator

import (
	"testing"

	"github.com/ckarenz/floorsim/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCustomerRegistryArrivalOrder(t *testing.T) {
	r := NewCustomerRegistry()
	a := &models.Customer{ID: "a", State: models.CustomerStateWaitingForWaiter}
	b := &models.Customer{ID: "b", State: models.CustomerStateEating}
	c := &models.Customer{ID: "c", State: models.CustomerStateWaitingForWaiter}
	r.Add(a)
	r.Add(b)
	r.Add(c)

	all := r.All()
	assert.Equal(t, []*models.Customer{a, b, c}, all)

	waiting := r.InState(models.CustomerStateWaitingForWaiter)
	assert.Equal(t, []*models.Customer{a, c}, waiting, "longest-waiting first")
}

func TestCustomerRegistryRemoveMakesLookupsNil(t *testing.T) {
	r := NewCustomerRegistry()
	a := &models.Customer{ID: "a"}
	r.Add(a)
	assert.Equal(t, a, r.Get("a"))

	r.Remove("a")
	assert.Nil(t, r.Get("a"), "stale IDs resolve to nil, which validity checks rely on")
	assert.Equal(t, 0, r.Len())

	r.Remove("a") // idempotent
}

func TestCustomerRegistryIgnoresDuplicates(t *testing.T) {
	r := NewCustomerRegistry()
	a := &models.Customer{ID: "a"}
	r.Add(a)
	r.Add(a)
	r.Add(&models.Customer{}) // no ID

	assert.Equal(t, 1, r.Len())
}
