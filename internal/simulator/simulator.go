package simulator

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ckarenz/floorsim/internal/eventbus"
	"github.com/ckarenz/floorsim/internal/factories"
	"github.com/ckarenz/floorsim/internal/models"
	"github.com/ckarenz/floorsim/internal/output"
	"github.com/schollz/progressbar/v3"
)

// Simulator owns the whole floor: every agent, every shared resource,
// the till and the clock. Agents run cooperatively, one at a time, so a
// claim made during an agent's evaluation cannot be preempted within
// that same evaluation.
type Simulator struct {
	Config  *models.Config
	Mover   Mover
	Pricing PricingEngine

	Customers *CustomerRegistry
	Waiters   []*models.Waiter
	Chefs     []*models.Chef
	Tables    []*models.Table
	Stations  []*models.Station
	Counter   *models.PassCounter
	Menu      map[string]*models.MenuItem

	Funds  float64
	Served int
	Lost   int

	CurrentTime time.Time
	EndTime     time.Time
	Rng         *rand.Rand
	EventQueue  *models.EventQueue
	Bus         *eventbus.Bus

	Entrance models.Location

	output        OutputDestination
	store         *output.PostgresStore
	eventsCount   int
	lastShortfall time.Time
}

func NewSimulator(config *models.Config) *Simulator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := &Simulator{
		Config:      config,
		Mover:       &FloorMover{Width: config.FloorWidth, Depth: config.FloorDepth},
		Pricing:     NewStaticPricing(config),
		Customers:   NewCustomerRegistry(),
		Menu:        make(map[string]*models.MenuItem),
		Funds:       config.StartingFunds,
		CurrentTime: config.StartTime,
		EndTime:     config.StartTime.Add(config.ServiceHours),
		Rng:         rand.New(rand.NewSource(seed)),
		EventQueue:  models.NewEventQueue(),
		Bus:         eventbus.New(),
	}
	return sim
}

func (s *Simulator) initializeFloor() {
	menuFactory := &factories.MenuFactory{}
	floorFactory := &factories.FloorFactory{}
	staffFactory := &factories.StaffFactory{}

	s.Menu = menuFactory.BuildMenu(s.Config)
	s.Tables = floorFactory.LayoutTables(s.Config)
	s.Stations = floorFactory.LayoutStations(s.Config)
	s.Counter = models.NewPassCounter(floorFactory.CounterLocation(s.Config), s.Config.CounterCapacity)
	s.Entrance = floorFactory.EntranceLocation(s.Config)

	for i := 0; i < s.Config.NumWaiters; i++ {
		post := floorFactory.WaiterPost(s.Config, i)
		s.Waiters = append(s.Waiters, staffFactory.CreateWaiter(s.Config, post))
	}
	for i := 0; i < s.Config.NumChefs; i++ {
		post := floorFactory.ChefPost(s.Config, i)
		s.Chefs = append(s.Chefs, staffFactory.CreateChef(s.Config, post))
	}
}

// Run drives the service from start time to close. Bounded runs tick as
// fast as they can behind a progress bar; continuous runs pace the
// wall clock at one tick interval per tick.
func (s *Simulator) Run() {
	s.output = s.determineOutputDestination()
	defer func() {
		if closer, ok := s.output.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Printf("Error closing output: %v", err)
			}
		}
	}()

	if s.Config.Database.Enabled {
		store, err := output.NewPostgresStore(context.Background(), s.Config.Database)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v", err)
		}
		s.store = store
		defer s.store.Close()
	}

	if len(s.Tables) == 0 {
		s.initializeFloor()
	}
	resumed := false
	if s.Config.Resume && s.store != nil {
		snap, err := s.store.LatestSnapshot(context.Background())
		if err != nil {
			log.Fatalf("Failed to load snapshot: %v", err)
		}
		if snap != nil {
			s.RestoreSnapshot(snap)
			resumed = true
			log.Printf("Resumed service from snapshot taken at %s", snap.Time.Format(time.RFC3339))
		}
	}
	if !resumed {
		s.scheduleNextArrival()
		if s.store != nil && s.Config.SnapshotInterval > 0 {
			s.EventQueue.Enqueue(&models.Event{
				Time: s.CurrentTime.Add(s.Config.SnapshotInterval),
				Type: models.EventTakeSnapshot,
			})
		}
	}

	log.Printf("Service starts at %s, doors close at %s", s.CurrentTime.Format(time.RFC3339), s.EndTime.Format(time.RFC3339))

	if s.Config.Continuous {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		s.runContinuous(ctx)
		log.Printf("Service over: %d events, %d served, %d lost, %.2f in the till",
			s.eventsCount, s.Served, s.Lost, s.Funds)
		return
	}

	totalTicks := int(s.Config.ServiceHours / s.Config.TickInterval)
	bar := progressbar.NewOptions(totalTicks,
		progressbar.OptionSetDescription("simulating service"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("ticks"),
	)
	for s.CurrentTime.Before(s.EndTime) {
		s.Tick()
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	log.Printf("Service over: %d events, %d served, %d lost, %.2f in the till",
		s.eventsCount, s.Served, s.Lost, s.Funds)
}

// runContinuous paces the wall clock at one tick per interval until the
// context is cancelled, typically by SIGINT or SIGTERM, so the deferred
// sink and store closers still run on shutdown.
func (s *Simulator) runContinuous(ctx context.Context) {
	ticker := time.NewTicker(s.Config.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("Shutdown signal received, closing outputs")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick advances the world by one interval. Resources update first, then
// each agent gets one evaluation in a fixed order.
func (s *Simulator) Tick() {
	for _, event := range s.EventQueue.DueBefore(s.CurrentTime) {
		s.processEvent(event)
	}

	for _, station := range s.Stations {
		s.updateStation(station)
	}

	for _, c := range s.Customers.All() {
		s.updateCustomer(c)
	}
	for _, w := range s.Waiters {
		s.updateWaiter(w)
	}
	for _, c := range s.Chefs {
		s.updateChef(c)
	}

	s.pruneDepartedCustomers()
	s.CurrentTime = s.CurrentTime.Add(s.Config.TickInterval)
}

func (s *Simulator) processEvent(event *models.Event) {
	switch event.Type {
	case models.EventCustomerArrival:
		s.spawnCustomer()
		s.scheduleNextArrival()
	case models.EventTakeSnapshot:
		if s.store != nil {
			if err := s.store.SaveSnapshot(context.Background(), s.TakeSnapshot()); err != nil {
				log.Printf("Failed to save snapshot: %v", err)
			}
			s.EventQueue.Enqueue(&models.Event{
				Time: s.CurrentTime.Add(s.Config.SnapshotInterval),
				Type: models.EventTakeSnapshot,
			})
		}
	}
}

// updateStation advances cooking physics and reports ready plates.
func (s *Simulator) updateStation(station *models.Station) {
	before := make(map[string]string)
	for _, slot := range station.Slots {
		if slot.Food != nil {
			before[slot.Food.ID] = slot.Food.CookingState
		}
	}
	station.Update(s.CurrentTime, s.Config.BurnMargin)
	for _, slot := range station.Slots {
		if slot.Food == nil {
			continue
		}
		if before[slot.Food.ID] == models.FoodStateCooking && slot.Food.CookingState == models.FoodStateReady {
			s.emitKitchen(KitchenEvent{
				BaseEvent: NewBaseEvent("cooking_finished", s.CurrentTime),
				OrderID:   slot.Food.OrderID,
				FoodID:    slot.Food.ID,
				FoodType:  slot.Food.FoodType,
				StationID: station.ID,
			}, eventbus.TypeOrderReady)
		}
	}
}

func (s *Simulator) spawnCustomer() {
	customerFactory := &factories.CustomerFactory{}
	customer := customerFactory.CreateCustomer(s.Config, s.Rng, s.Entrance, s.CurrentTime, s.menuTypes())
	s.Customers.Add(customer)
	s.emitCustomer(CustomerVisitEvent{
		BaseEvent: s.customerBase("customer_arrived", customer),
	}, eventbus.TypeCustomerArrived)
}

// scheduleNextArrival draws an exponential interarrival gap from the
// configured hourly rate, scaled up during peak hours and weekends.
func (s *Simulator) scheduleNextArrival() {
	rate := s.Config.ArrivalRate
	hour := s.CurrentTime.Hour()
	if (hour >= 12 && hour < 14) || (hour >= 18 && hour < 21) {
		rate *= s.Config.PeakHourFactor
	}
	switch s.CurrentTime.Weekday() {
	case time.Friday, time.Saturday:
		rate *= s.Config.WeekendFactor
	}
	if rate <= 0 {
		rate = 1
	}
	gapSeconds := s.Rng.ExpFloat64() * 3600 / rate
	s.EventQueue.Enqueue(&models.Event{
		Time: s.CurrentTime.Add(time.Duration(gapSeconds * float64(time.Second))),
		Type: models.EventCustomerArrival,
	})
}

func (s *Simulator) menuTypes() []string {
	types := make([]string, 0, len(s.Menu))
	for _, dish := range s.Config.MenuDishes {
		if _, ok := s.Menu[dish.Name]; ok {
			types = append(types, dish.Name)
		}
	}
	return types
}

func (s *Simulator) pruneDepartedCustomers() {
	for _, c := range s.Customers.All() {
		if c.State != models.CustomerStateLeaving {
			continue
		}
		if c.Movement != nil {
			continue // still walking out
		}
		if c.TableNumber != 0 {
			if table := s.tableByNumber(c.TableNumber); table != nil {
				table.Release()
			}
		}
		s.Customers.Remove(c.ID)
	}
}

// findAvailableTable returns the closest free table to the entrance, or
// nil when the floor is full.
func (s *Simulator) findAvailableTable() *models.Table {
	var best *models.Table
	bestDist := 0.0
	for _, t := range s.Tables {
		if !t.Available() {
			continue
		}
		d := s.Entrance.DistanceTo(t.Location)
		if best == nil || d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// orderByID resolves an order through its owning customer. A nil result
// means the customer has left and the order with them.
func (s *Simulator) orderByID(orderID string) *models.Order {
	if orderID == "" {
		return nil
	}
	for _, c := range s.Customers.All() {
		if c.CurrentOrder != nil && c.CurrentOrder.ID == orderID {
			return c.CurrentOrder
		}
	}
	return nil
}

// platesOfType counts every plate of the given type already spoken for
// on the supply side: staged on the pass, sitting on a station, or in a
// chef's hands on the way there. One surplus plate anywhere in flight
// must not spawn another cook, so the duplicate-prevention rule weighs
// all of them against pending demand. A cooking plate is aliased by its
// chef, hence the dedup by ID.
func (s *Simulator) platesOfType(foodType string) int {
	seen := make(map[string]struct{})
	for _, station := range s.Stations {
		for _, slot := range station.Slots {
			if slot.Food != nil && slot.Food.FoodType == foodType {
				seen[slot.Food.ID] = struct{}{}
			}
		}
	}
	for _, c := range s.Chefs {
		if c.Food != nil && c.Food.FoodType == foodType {
			seen[c.Food.ID] = struct{}{}
		}
	}
	return s.Counter.CountByType(foodType) + len(seen)
}

// pendingOrdersOfType counts customers still waiting on an uncooked
// order of the given type. Food already being delivered does not count;
// its order has left the pending pool.
func (s *Simulator) pendingOrdersOfType(foodType string) int {
	n := 0
	for _, c := range s.Customers.InState(models.CustomerStateWaitingForFood) {
		if c.FoodInDelivery || c.CurrentOrder == nil {
			continue
		}
		if c.CurrentOrder.FoodType == foodType && c.CurrentOrder.Status == models.OrderStatusPending {
			n++
		}
	}
	return n
}

func (s *Simulator) customerBase(eventType string, c *models.Customer) BaseEvent {
	base := NewBaseEvent(eventType, s.CurrentTime)
	base.CustomerID = c.ID
	return base
}

// State transition helpers. Every transition is recorded on the agent
// state topic so the full machine is reconstructible from the stream.

func (s *Simulator) setCustomerState(c *models.Customer, state string) {
	if c.State == state {
		return
	}
	s.emitAgentState("customer", c.ID, c.State, state)
	c.State = state
}

func (s *Simulator) setWaiterState(w *models.Waiter, state string) {
	if w.State == state {
		return
	}
	s.emitAgentState("waiter", w.ID, w.State, state)
	w.State = state
}

func (s *Simulator) setChefState(c *models.Chef, state string) {
	if c.State == state {
		return
	}
	s.emitAgentState("chef", c.ID, c.State, state)
	c.State = state
}

// Emit helpers: serialize, write to the sink, mirror to postgres when
// enabled, and publish on the in-process bus.

func (s *Simulator) writeEvent(topic string, payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error serializing event: %v", err)
		return
	}
	s.eventsCount++
	if s.output != nil {
		if err := s.output.WriteMessage(topic, msg); err != nil {
			log.Printf("Failed to write message: %v", err)
		}
	}
	if s.store != nil {
		if err := s.store.WriteMessage(context.Background(), topic, msg); err != nil {
			log.Printf("Failed to store message: %v", err)
		}
	}
}

func (s *Simulator) emitCustomer(event CustomerVisitEvent, busType string) {
	s.writeEvent(TopicCustomerEvents, event)
	s.Bus.Publish(eventbus.Event{Type: busType, Time: s.CurrentTime, Data: event})
}

func (s *Simulator) emitOrder(event OrderLifecycleEvent, busType string) {
	s.writeEvent(TopicOrderEvents, event)
	s.Bus.Publish(eventbus.Event{Type: busType, Time: s.CurrentTime, Data: event})
}

func (s *Simulator) emitKitchen(event KitchenEvent, busType string) {
	s.writeEvent(TopicKitchenEvents, event)
	s.Bus.Publish(eventbus.Event{Type: busType, Time: s.CurrentTime, Data: event})
}

func (s *Simulator) emitService(event ServiceEvent, busType string) {
	s.writeEvent(TopicServiceEvents, event)
	s.Bus.Publish(eventbus.Event{Type: busType, Time: s.CurrentTime, Data: event})
}

func (s *Simulator) emitAgentState(kind, id, from, to string) {
	event := AgentStateEvent{
		BaseEvent: NewBaseEvent("state_changed", s.CurrentTime),
		AgentKind: kind,
		AgentID:   id,
		FromState: from,
		ToState:   to,
	}
	s.writeEvent(TopicAgentStateEvents, event)
	s.Bus.Publish(eventbus.Event{Type: eventbus.TypeStateChanged, Time: s.CurrentTime, Data: event})
}

func (s *Simulator) emitFundsChanged(delta float64, reason, orderID string) {
	event := FundsEvent{
		BaseEvent: NewBaseEvent("funds_changed", s.CurrentTime),
		OrderID:   orderID,
		Delta:     delta,
		Balance:   s.Funds,
		Reason:    reason,
	}
	s.writeEvent(TopicFundsEvents, event)
	s.Bus.Publish(eventbus.Event{Type: eventbus.TypeFundsChanged, Time: s.CurrentTime, Data: event})
}
