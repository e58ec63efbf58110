package simulator

import (
	"time"

	"github.com/ckarenz/floorsim/internal/models"
	"github.com/lucsky/cuid"
)

var testStart = time.Date(2026, time.March, 3, 18, 0, 0, 0, time.UTC)

func testConfig() *models.Config {
	return &models.Config{
		Seed:                 7,
		StartTime:            testStart,
		ServiceHours:         4 * time.Hour,
		TickInterval:         500 * time.Millisecond,
		NumTables:            12,
		NumWaiters:           3,
		NumChefs:             2,
		CounterCapacity:      5,
		FloorWidth:           30,
		FloorDepth:           20,
		ArrivalRate:          24,
		PeakHourFactor:       1.5,
		WeekendFactor:        1.2,
		CustomerPatience:     120 * time.Second,
		OrderTakingTime:      10 * time.Second,
		EatingTime:           90 * time.Second,
		CounterWaitTimeout:   30 * time.Second,
		MoveRetryMax:         5,
		MoveRetrySpacing:     2 * time.Second,
		BurnMargin:           60 * time.Second,
		NearbyWorkRadius:     6,
		WaiterSpeed:          1.6,
		ChefSpeed:            1.4,
		CustomerSpeed:        1.2,
		StartingFunds:        200,
		PriceMultiplier:      1,
		IngredientCostFactor: 0.35,
		CookSpeedMultiplier:  1,
		Stations:             models.DefaultStations(),
		MenuDishes:           models.DefaultMenuDishes(),
	}
}

func newTestSim() *Simulator {
	s := NewSimulator(testConfig())
	s.initializeFloor()
	return s
}

func (s *Simulator) advance(d time.Duration) {
	s.CurrentTime = s.CurrentTime.Add(d)
}

// seatCustomer places a customer at the given table, already waiting
// for a waiter with a fresh patience deadline.
func seatCustomer(s *Simulator, tableNumber int) *models.Customer {
	table := s.tableByNumber(tableNumber)
	c := &models.Customer{
		ID:               cuid.New(),
		Name:             "test guest",
		State:            models.CustomerStateWaitingForWaiter,
		Location:         table.Location,
		Speed:            s.Config.CustomerSpeed,
		TableNumber:      tableNumber,
		ArrivedAt:        s.CurrentTime,
		PatienceDeadline: s.CurrentTime.Add(s.Config.CustomerPatience),
	}
	table.Assign(c.ID)
	s.Customers.Add(c)
	return c
}

// placeOrder puts the customer in the waiting-for-food state with a
// pending order of the given type.
func placeOrder(s *Simulator, c *models.Customer, foodType string) *models.Order {
	item := s.menuItemByType(foodType)
	order := &models.Order{
		ID:         cuid.New(),
		CustomerID: c.ID,
		FoodType:   foodType,
		Price:      s.Pricing.Price(item),
		Status:     models.OrderStatusPending,
		PlacedAt:   s.CurrentTime,
	}
	c.CurrentOrder = order
	c.State = models.CustomerStateWaitingForFood
	return order
}

// readyPlate deposits a cooked plate for the order on the pass and
// marks the order ready for pickup.
func readyPlate(s *Simulator, order *models.Order) *models.FoodItem {
	item := &models.FoodItem{
		ID:           cuid.New(),
		FoodType:     order.FoodType,
		CookingState: models.FoodStateReady,
		OrderID:      order.ID,
	}
	s.Counter.Deposit(item)
	order.Status = models.OrderStatusReady
	return item
}

// blockedMover walks normally but reports every target unreachable,
// forcing the retry path.
type blockedMover struct {
	FloorMover
}

func (blockedMover) Reachable(models.Location) bool { return false }
