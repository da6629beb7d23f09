package checkout

import (
	"fmt"
	"sync"
)

// Step is the position in the linear checkout flow.
type Step int

const (
	StepCart Step = iota + 1
	StepDelivery
	StepPayment
)

func (s Step) String() string {
	switch s {
	case StepCart:
		return "cart"
	case StepDelivery:
		return "delivery"
	case StepPayment:
		return "payment"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentCash   PaymentMethod = "cash"
	PaymentStripe PaymentMethod = "stripe"
)

func ParsePaymentMethod(v string) (PaymentMethod, error) {
	switch PaymentMethod(v) {
	case PaymentCard, PaymentCash, PaymentStripe:
		return PaymentMethod(v), nil
	default:
		return "", fmt.Errorf("unknown payment method %q", v)
	}
}

type DeliveryTime string

const (
	DeliveryASAP      DeliveryTime = "asap"
	DeliveryScheduled DeliveryTime = "scheduled"
)

func ParseDeliveryTime(v string) (DeliveryTime, error) {
	switch DeliveryTime(v) {
	case DeliveryASAP, DeliveryScheduled:
		return DeliveryTime(v), nil
	default:
		return "", fmt.Errorf("unknown delivery time %q", v)
	}
}

// Delivery holds the customer contact block collected at step 2.
type Delivery struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Session is one customer's progress through the checkout flow. The
// pointer handed out by Manager.Get is shared by concurrent handlers;
// shared access goes through Snapshot, Apply and the payment latch, all
// serialized on the same mutex. Copies share that mutex.
type Session struct {
	ID            string        `json:"id"`
	Step          Step          `json:"step"`
	Delivery      Delivery      `json:"delivery"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	DeliveryTime  DeliveryTime  `json:"deliveryTime"`
	InFlight      bool          `json:"inFlight"`

	mu *sync.Mutex
}

// NewSession returns the initial state: cart review, cash-on-delivery,
// as-soon-as-possible delivery.
func NewSession(id string) Session {
	return Session{
		ID:            id,
		Step:          StepCart,
		PaymentMethod: PaymentCash,
		DeliveryTime:  DeliveryASAP,
		mu:            &sync.Mutex{},
	}
}

// Snapshot returns a consistent copy for lock-free reads.
func (s *Session) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s
}

// Apply runs fn with the session locked. fn must not call other Session
// methods.
func (s *Session) Apply(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// BeginPayment flips the in-flight latch in one step, so of two
// concurrent submissions exactly one proceeds. It reports false when a
// payment is already in progress.
func (s *Session) BeginPayment() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InFlight {
		return false
	}
	s.InFlight = true
	return true
}

// EndPayment releases the latch. After a confirmed order the session is
// also reset to the initial step for the next purchase.
func (s *Session) EndPayment(confirmed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InFlight = false
	if confirmed {
		s.Step = StepCart
		s.Delivery = Delivery{}
	}
}

// Manager keeps live sessions by id. The manager mutex guards only the
// map; each Session carries its own lock for field access.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating the initial state if needed.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := NewSession(id)
	m.sessions[id] = &s
	return &s
}

// Drop forgets a session.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
