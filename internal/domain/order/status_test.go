package order

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		channel Channel
		from    Status
		to      Status
		want    bool
	}{
		{ChannelManual, StatusPending, StatusPaid, true},
		{ChannelManual, StatusPending, StatusCancelled, true},
		{ChannelManual, StatusPending, StatusConfirmed, false},
		{ChannelStorefront, StatusPending, StatusConfirmed, true},
		{ChannelStorefront, StatusPending, StatusPaid, true},
		{ChannelStorefront, StatusConfirmed, StatusPreparing, true},
		{ChannelStorefront, StatusPreparing, StatusShipping, true},
		{ChannelStorefront, StatusShipping, StatusDelivered, true},
		{ChannelStorefront, StatusShipping, StatusCancelled, true},
		{ChannelStorefront, StatusConfirmed, StatusShipping, false},
		{ChannelStorefront, StatusPending, StatusDelivered, false},
		{ChannelManual, StatusPaid, StatusCancelled, false},
		{ChannelManual, StatusCancelled, StatusPending, false},
		{ChannelStorefront, StatusDelivered, StatusCancelled, false},
		{ChannelStorefront, StatusPaid, StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.channel, tc.from, tc.to); got != tc.want {
			t.Errorf("%s %s -> %s: expected %v, got %v", tc.channel, tc.from, tc.to, tc.want, got)
		}
	}
}

func TestTransitionTo(t *testing.T) {
	o := &Order{Channel: ChannelStorefront, Status: StatusPending}

	for _, next := range []Status{StatusConfirmed, StatusPreparing, StatusShipping, StatusDelivered} {
		if err := o.TransitionTo(next); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}
	if !o.Status.IsTerminal() {
		t.Fatalf("expected terminal status, got %s", o.Status)
	}
	if err := o.TransitionTo(StatusCancelled); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := o.TransitionTo(Status("LOST")); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
