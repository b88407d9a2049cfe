package statemachine

import (
	"errors"

	"github.com/hermione06/cafeteria-management-system/models"
)

// Actor identifies who is attempting a transition
type Actor string

const (
	ActorOwner Actor = "owner" // the user who placed the order
	ActorStaff Actor = "staff"
	ActorAdmin Actor = "admin"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

// validTransitions is the authoritative state machine definition.
// Completed and cancelled are terminal: nothing leaves them.
var validTransitions = []Transition{
	// Staff or admin completes a pending order at the counter
	{From: models.StatusPending, To: models.StatusCompleted, Actor: ActorStaff},
	{From: models.StatusPending, To: models.StatusCompleted, Actor: ActorAdmin},
	// Staff, admin, or the owner can cancel a pending order
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorStaff},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorAdmin},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorOwner},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor Actor) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " to " + string(to) +
			" is not allowed for actor '" + string(actor) + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// ActorFor maps a caller role to its state machine actor for an order.
// Regular users only act as "owner" on their own orders.
func ActorFor(role models.UserRole, callerID, orderOwnerID uint) Actor {
	switch role {
	case models.RoleAdmin:
		return ActorAdmin
	case models.RoleStaff:
		return ActorStaff
	}
	if callerID == orderOwnerID {
		return ActorOwner
	}
	return Actor("none")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
