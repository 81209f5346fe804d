package models

import (
	"fmt"

	trackingdomain "github.com/ghuser/equiptrack/services/tracking/domain"
)

// Domain identifies one of the tracked equipment categories. Both share the
// same item/event/bulk lifecycle; only the permitted event types differ.
type Domain string

const (
	// DomainRadio covers handheld radio devices.
	DomainRadio Domain = "radio"
	// DomainInventory covers general inventory equipment.
	DomainInventory Domain = "inventory"
)

// EventType is a state-changing action recorded against an item.
type EventType string

const (
	EventIssued   EventType = "issued"
	EventReturned EventType = "returned"
	EventServiced EventType = "serviced"
)

// eventTypesByDomain is the per-domain set of permitted event types.
var eventTypesByDomain = map[Domain][]EventType{
	DomainRadio:     {EventIssued, EventReturned, EventServiced},
	DomainInventory: {EventIssued, EventReturned},
}

// ParseDomain validates s against the tracked equipment domains.
func ParseDomain(s string) (Domain, error) {
	d := Domain(s)
	if _, ok := eventTypesByDomain[d]; !ok {
		return "", fmt.Errorf("%w: %q", trackingdomain.ErrUnknownDomain, s)
	}
	return d, nil
}

// EventTypes returns the event types the domain permits.
func (d Domain) EventTypes() []EventType {
	return eventTypesByDomain[d]
}

// ParseEventType validates s against the domain's permitted event types.
func (d Domain) ParseEventType(s string) (EventType, error) {
	for _, t := range eventTypesByDomain[d] {
		if t == EventType(s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q for domain %q", trackingdomain.ErrUnknownEventType, s, d)
}

// String returns the underlying string value.
func (d Domain) String() string {
	return string(d)
}

// String returns the underlying string value.
func (t EventType) String() string {
	return string(t)
}
