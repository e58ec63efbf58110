package simulator

import (
	"fmt"
	"log"
	"time"

	"github.com/xitongsys/parquet-go/schema"
)

// Output topics. Every serialized event lands on exactly one of these.
const (
	TopicCustomerEvents   = "customer_events"
	TopicOrderEvents      = "order_events"
	TopicKitchenEvents    = "kitchen_events"
	TopicServiceEvents    = "service_events"
	TopicAgentStateEvents = "agent_state_events"
	TopicFundsEvents      = "funds_events"
)

// BaseEvent is the common structure for all output events
type BaseEvent struct {
	Timestamp  int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType  string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	CustomerID string `json:"customerId,omitempty" parquet:"name=customerId,type=BYTE_ARRAY,convertedtype=UTF8"`
	WaiterID   string `json:"waiterId,omitempty" parquet:"name=waiterId,type=BYTE_ARRAY,convertedtype=UTF8"`
	ChefID     string `json:"chefId,omitempty" parquet:"name=chefId,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// CustomerVisitEvent covers arrivals, seatings and departures.
type CustomerVisitEvent struct {
	BaseEvent
	TableNumber int    `json:"tableNumber" parquet:"name=tableNumber,type=INT32"`
	Satisfied   bool   `json:"satisfied" parquet:"name=satisfied,type=BOOLEAN"`
	Reason      string `json:"reason,omitempty" parquet:"name=reason,type=BYTE_ARRAY,convertedtype=UTF8"`
	WaitedFor   int64  `json:"waitedForSeconds" parquet:"name=waitedForSeconds,type=INT64"`
}

// OrderLifecycleEvent tracks an order moving along its lifecycle.
type OrderLifecycleEvent struct {
	BaseEvent
	OrderID  string  `json:"orderId" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	FoodType string  `json:"foodType" parquet:"name=foodType,type=BYTE_ARRAY,convertedtype=UTF8"`
	Status   string  `json:"status" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
	Price    float64 `json:"price" parquet:"name=price,type=DOUBLE"`
}

// KitchenEvent covers cooking: starts, completions, burns, refusals.
type KitchenEvent struct {
	BaseEvent
	OrderID   string `json:"orderId,omitempty" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	FoodID    string `json:"foodId,omitempty" parquet:"name=foodId,type=BYTE_ARRAY,convertedtype=UTF8"`
	FoodType  string `json:"foodType" parquet:"name=foodType,type=BYTE_ARRAY,convertedtype=UTF8"`
	StationID string `json:"stationId,omitempty" parquet:"name=stationId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Detail    string `json:"detail,omitempty" parquet:"name=detail,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// ServiceEvent covers the waiter's legs: pickups, deliveries, failures.
type ServiceEvent struct {
	BaseEvent
	OrderID     string `json:"orderId,omitempty" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	FoodID      string `json:"foodId,omitempty" parquet:"name=foodId,type=BYTE_ARRAY,convertedtype=UTF8"`
	FoodType    string `json:"foodType,omitempty" parquet:"name=foodType,type=BYTE_ARRAY,convertedtype=UTF8"`
	TableNumber int    `json:"tableNumber" parquet:"name=tableNumber,type=INT32"`
	Detail      string `json:"detail,omitempty" parquet:"name=detail,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// AgentStateEvent records an agent's state machine transition.
type AgentStateEvent struct {
	BaseEvent
	AgentKind string `json:"agentKind" parquet:"name=agentKind,type=BYTE_ARRAY,convertedtype=UTF8"`
	AgentID   string `json:"agentId" parquet:"name=agentId,type=BYTE_ARRAY,convertedtype=UTF8"`
	FromState string `json:"fromState" parquet:"name=fromState,type=BYTE_ARRAY,convertedtype=UTF8"`
	ToState   string `json:"toState" parquet:"name=toState,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// FundsEvent records a change to the restaurant's balance.
type FundsEvent struct {
	BaseEvent
	OrderID string  `json:"orderId,omitempty" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Delta   float64 `json:"delta" parquet:"name=delta,type=DOUBLE"`
	Balance float64 `json:"balance" parquet:"name=balance,type=DOUBLE"`
	Reason  string  `json:"reason" parquet:"name=reason,type=BYTE_ARRAY,convertedtype=UTF8"`
}

func GetSchema(topic string) (*schema.SchemaHandler, error) {
	var sh *schema.SchemaHandler
	var err error

	switch topic {
	case TopicCustomerEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(CustomerVisitEvent))
	case TopicOrderEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(OrderLifecycleEvent))
	case TopicKitchenEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(KitchenEvent))
	case TopicServiceEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(ServiceEvent))
	case TopicAgentStateEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(AgentStateEvent))
	case TopicFundsEvents:
		sh, err = schema.NewSchemaHandlerFromStruct(new(FundsEvent))
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}

	if err != nil {
		log.Printf("Error creating schema for %s: %v", topic, err)
		return nil, fmt.Errorf("error creating schema for %s: %w", topic, err)
	}

	return sh, nil
}

func NewBaseEvent(eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		Timestamp: timestamp.Unix(),
		EventType: eventType,
	}
}
