package enums

// OutboxEventType names the domain events persisted to the outbox table.
type OutboxEventType string

const (
	EventOrderCreated   OutboxEventType = "order.created"
	EventOrderDecided   OutboxEventType = "order.decided"
	EventOrderFulfilled OutboxEventType = "order.fulfilled"
)

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder OutboxAggregateType = "order"
)
