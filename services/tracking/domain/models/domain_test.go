package models

import (
	"errors"
	"testing"

	trackingdomain "github.com/ghuser/equiptrack/services/tracking/domain"
)

func TestParseDomain(t *testing.T) {
	t.Run("radio", func(t *testing.T) {
		d, err := ParseDomain("radio")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d != DomainRadio {
			t.Fatalf("expected %v, got %v", DomainRadio, d)
		}
	})

	t.Run("inventory", func(t *testing.T) {
		d, err := ParseDomain("inventory")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d != DomainInventory {
			t.Fatalf("expected %v, got %v", DomainInventory, d)
		}
	})

	t.Run("unknown domain returns error", func(t *testing.T) {
		_, err := ParseDomain("vehicles")
		if !errors.Is(err, trackingdomain.ErrUnknownDomain) {
			t.Fatalf("expected ErrUnknownDomain, got %v", err)
		}
	})

	t.Run("empty string returns error", func(t *testing.T) {
		_, err := ParseDomain("")
		if !errors.Is(err, trackingdomain.ErrUnknownDomain) {
			t.Fatalf("expected ErrUnknownDomain, got %v", err)
		}
	})
}

func TestDomain_ParseEventType(t *testing.T) {
	tests := []struct {
		name    string
		domain  Domain
		input   string
		want    EventType
		wantErr bool
	}{
		{"radio issued", DomainRadio, "issued", EventIssued, false},
		{"radio returned", DomainRadio, "returned", EventReturned, false},
		{"radio serviced", DomainRadio, "serviced", EventServiced, false},
		{"inventory issued", DomainInventory, "issued", EventIssued, false},
		{"inventory returned", DomainInventory, "returned", EventReturned, false},
		{"inventory rejects serviced", DomainInventory, "serviced", "", true},
		{"radio rejects unknown", DomainRadio, "lost", "", true},
		{"radio rejects empty", DomainRadio, "", "", true},
		{"case sensitive", DomainRadio, "Issued", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.domain.ParseEventType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, trackingdomain.ErrUnknownEventType) {
					t.Fatalf("expected ErrUnknownEventType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDomain_EventTypes(t *testing.T) {
	if got := len(DomainRadio.EventTypes()); got != 3 {
		t.Fatalf("expected 3 radio event types, got %d", got)
	}
	if got := len(DomainInventory.EventTypes()); got != 2 {
		t.Fatalf("expected 2 inventory event types, got %d", got)
	}
	for _, et := range DomainInventory.EventTypes() {
		if et == EventServiced {
			t.Fatal("inventory must not permit serviced")
		}
	}
}
