package checkout

import (
	"sync"
	"testing"
)

func TestBeginPaymentSingleWinner(t *testing.T) {
	s := NewSession("sess-1")

	const attempts = 32
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		wins  = make(chan bool, attempts)
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			wins <- s.BeginPayment()
		}()
	}
	close(start)
	wg.Wait()
	close(wins)

	won := 0
	for w := range wins {
		if w {
			won++
		}
	}
	if won != 1 {
		t.Fatalf("latch taken %d times, want exactly once", won)
	}
}

func TestEndPayment(t *testing.T) {
	s := NewSession("sess-1")
	s.Step = StepPayment
	s.Delivery = Delivery{Address: "12 rue des Oliviers", Phone: "+33612345678", Email: "client@example.com"}

	if !s.BeginPayment() {
		t.Fatal("latch not free on a fresh session")
	}

	// Aborting releases the latch and touches nothing else.
	s.EndPayment(false)
	snap := s.Snapshot()
	if snap.InFlight {
		t.Fatal("latch still held after abort")
	}
	if snap.Step != StepPayment || snap.Delivery.Address == "" {
		t.Fatalf("abort must not reset the session: %+v", snap)
	}

	// A confirmed order resets the flow for the next purchase.
	if !s.BeginPayment() {
		t.Fatal("latch not reusable after abort")
	}
	s.EndPayment(true)
	snap = s.Snapshot()
	if snap.InFlight {
		t.Fatal("latch still held after confirm")
	}
	if snap.Step != StepCart {
		t.Fatalf("step = %v, want cart", snap.Step)
	}
	if snap.Delivery != (Delivery{}) {
		t.Fatalf("delivery not cleared: %+v", snap.Delivery)
	}
}

func TestApplyAndSnapshotConcurrent(t *testing.T) {
	s := NewSession("sess-1")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Apply(func(sess *Session) {
				sess.Delivery.Phone = "+3361234567"
			})
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	if got := s.Snapshot().Delivery.Phone; got != "+3361234567" {
		t.Fatalf("phone = %q after concurrent writes", got)
	}
}
