package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClosed       = errors.New("event bus is closed")
	ErrCircuitOpen  = errors.New("circuit breaker is open")
	ErrUIToCoreFull = errors.New("UI to Core channel is full")
	ErrCoreToUIFull = errors.New("Core to UI channel is full")
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// Response carries the JSON result of a Request, or the error the host
// reported for it.
type Response struct {
	Data json.RawMessage
	Err  error
}

// Request - UI asks core to run a named host command
type Request struct {
	ID       string
	Command  string
	Payload  json.RawMessage
	Deadline time.Time
	reply    chan Response
}

func (r *Request) UIEvent() {}

// Reply answers the request. Only the first reply is delivered.
func (r *Request) Reply(data any, err error) {
	if r.reply == nil {
		return
	}
	resp := Response{Err: err}
	if err == nil && data != nil {
		raw, marshalErr := json.Marshal(data)
		if marshalErr != nil {
			resp.Err = fmt.Errorf("encode %s result: %w", r.Command, marshalErr)
		} else {
			resp.Data = raw
		}
	}
	select {
	case r.reply <- resp:
	default:
	}
}

// Decode unmarshals the request payload into v. An empty payload leaves v untouched.
func (r *Request) Decode(v any) error {
	if len(r.Payload) == 0 || string(r.Payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(r.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", r.Command, err)
	}
	return nil
}

// RemoteError is an error reported by the host for a request.
type RemoteError struct {
	Command string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// DirectoryChangedEvent - Core reports a new working directory
type DirectoryChangedEvent struct {
	Path string
}

func (e DirectoryChangedEvent) CoreEvent() {}

// TreeInvalidatedEvent - Core saw the contents of a listed directory change
type TreeInvalidatedEvent struct {
	Path string
}

func (e TreeInvalidatedEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e EventBusError) Unwrap() error {
	return e.Err
}

// CircuitBreakerState represents the state of circuit breaker
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitBreakerState) String() string {
	switch s {
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreaker implements circuit breaker pattern
type CircuitBreaker struct {
	mu              sync.Mutex
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitBreakerState
	now             func() time.Time
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
		now:          time.Now,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CircuitOpen && cb.now().Sub(cb.lastFailureTime) > cb.resetTimeout {
		cb.state = CircuitHalfOpen
	}
	return cb.state == CircuitOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount++
	cb.lastFailureTime = cb.now()

	if cb.failureCount >= cb.maxFailures || cb.state == CircuitHalfOpen {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	mu             sync.RWMutex
	closed         bool
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	done           chan struct{}
	callbackMu     sync.Mutex
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, 100),
		coreToUI:       make(chan CoreEvent, 100),
		done:           make(chan struct{}),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.callbackMu.Lock()
	defer eb.callbackMu.Unlock()
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}

	eb.circuitBreaker.RecordFailure()

	eb.callbackMu.Lock()
	callback := eb.errorCallback
	eb.callbackMu.Unlock()
	if callback != nil {
		callback(busError)
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToCore", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.uiToCore <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToCore", ErrUIToCoreFull)
		return ErrUIToCoreFull
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToUI", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.coreToUI <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToUI", ErrCoreToUIFull)
		return ErrCoreToUIFull
	}
}

// Invoke sends command to the core and waits for its reply. payload is
// encoded as JSON; the reply is returned undecoded.
func (eb *EventBus) Invoke(ctx context.Context, command string, payload any) (json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", command, err)
	}

	req := &Request{
		ID:      uuid.NewString(),
		Command: command,
		Payload: raw,
		reply:   make(chan Response, 1),
	}
	if deadline, ok := ctx.Deadline(); ok {
		req.Deadline = deadline
	}

	if err := eb.SendToCore(req); err != nil {
		return nil, err
	}

	select {
	case resp := <-req.reply:
		return resp.Data, resp.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-eb.done:
		return nil, ErrClosed
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

// Done is closed when the bus is closed.
func (eb *EventBus) Done() <-chan struct{} {
	return eb.done
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

// Close closes both channels. Further sends fail with ErrClosed.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.done)
	close(eb.uiToCore)
	close(eb.coreToUI)
}
