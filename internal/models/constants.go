package models

const (
	OrderStatusNone          = "none"
	OrderStatusPending       = "pending"
	OrderStatusInPreparation = "in_preparation"
	OrderStatusReady         = "ready_for_pickup"
	OrderStatusInDelivery    = "in_delivery"
	OrderStatusFulfilled     = "fulfilled"

	CustomerStateEntering         = "entering"
	CustomerStateWaitingForWaiter = "waiting_for_waiter"
	CustomerStateOrdering         = "ordering"
	CustomerStateWaitingForFood   = "waiting_for_food"
	CustomerStateEating           = "eating"
	CustomerStateLeaving          = "leaving"

	WaiterStateIdle            = "idle"
	WaiterStateMovingToTable   = "moving_to_table"
	WaiterStateTakingOrder     = "taking_order"
	WaiterStateMovingToCounter = "moving_to_counter"
	WaiterStateWaitingForFood  = "waiting_for_food"
	WaiterStateDelivering      = "delivering_food"
	WaiterStateReturning       = "returning"

	ChefStateIdle            = "idle"
	ChefStateMovingToStation = "moving_to_station"
	ChefStateCooking         = "cooking"
	ChefStateMovingToCounter = "moving_to_counter"
	ChefStatePlacingFood     = "placing_food"

	FoodStateRaw     = "raw"
	FoodStateCooking = "cooking"
	FoodStateReady   = "ready"
	FoodStateBurnt   = "burnt"
)
