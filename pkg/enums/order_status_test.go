package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
				t.Fatalf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if !OrderStatusDelivered.IsTerminal() {
		t.Fatalf("delivered should be terminal")
	}
	if !OrderStatusCancelled.IsTerminal() {
		t.Fatalf("cancelled should be terminal")
	}
	if OrderStatusPending.IsTerminal() {
		t.Fatalf("pending should not be terminal")
	}
	if OrderStatus("bogus").IsTerminal() {
		t.Fatalf("invalid status should not be terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("shipped")
	if err != nil {
		t.Fatalf("parse shipped: %v", err)
	}
	if status != OrderStatusShipped {
		t.Fatalf("got %s", status)
	}

	if _, err := ParseOrderStatus("SHIPPED"); err == nil {
		t.Fatalf("expected case-sensitive rejection")
	}
	if _, err := ParseOrderStatus("returned"); err == nil {
		t.Fatalf("expected rejection of unknown status")
	}
}
