package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clockedin.io/application/controller/dto"
	"clockedin.io/infrastructure/network"
	"github.com/google/uuid"
)

const defaultMaxAttempts = 10

// AttendanceClient is the on-device submission pipeline. When the service is
// unreachable it parks submissions in the durable queue; Flush drains the
// queue in arrival order once connectivity returns.
type AttendanceClient struct {
	Network     *network.NetworkController
	AuthToken   string
	Store       QueueStore
	MaxAttempts int
}

func NewAttendanceClient(baseURL string, authToken string, store QueueStore) *AttendanceClient {
	return &AttendanceClient{
		Network:     &network.NetworkController{BaseUrl: baseURL},
		AuthToken:   authToken,
		Store:       store,
		MaxAttempts: defaultMaxAttempts,
	}
}

// SubmitResult reports how a submission was resolved: delivered with the
// service's response body, or queued for a later flush.
type SubmitResult struct {
	Queued         bool
	IdempotencyKey string
	StatusCode     int
	Response       []byte
}

func (c *AttendanceClient) authHeaders() *map[string]string {
	return &map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", c.AuthToken),
	}
}

// Reachable probes the service before a submit or flush is attempted.
func (c *AttendanceClient) Reachable() bool {
	_, statusCode, err := c.Network.Get("/ping", c.authHeaders())
	return err == nil && statusCode != nil && *statusCode == http.StatusOK
}

// Submit sends one submission, enqueueing it when the service cannot be
// reached. The idempotency key is fixed here, before the first attempt, so
// every retry of this event resolves to the same server-side record.
func (c *AttendanceClient) Submit(payload dto.VerifyAttendanceDTO) (*SubmitResult, error) {
	if payload.IdempotencyKey == nil || *payload.IdempotencyKey == "" {
		key := uuid.NewString()
		payload.IdempotencyKey = &key
	}

	if !c.Reachable() {
		return c.enqueue(payload)
	}

	response, statusCode, err := c.post(payload)
	if err != nil {
		return c.enqueue(payload)
	}
	return &SubmitResult{
		IdempotencyKey: *payload.IdempotencyKey,
		StatusCode:     *statusCode,
		Response:       *response,
	}, nil
}

func (c *AttendanceClient) enqueue(payload dto.VerifyAttendanceDTO) (*SubmitResult, error) {
	event := QueuedEvent{
		ID:         uuid.NewString(),
		Payload:    payload,
		Status:     EventStatusPending,
		EnqueuedAt: time.Now(),
	}
	if err := c.Store.Append(event); err != nil {
		return nil, err
	}
	return &SubmitResult{Queued: true, IdempotencyKey: *payload.IdempotencyKey}, nil
}

// Flush delivers queued submissions in arrival order. A transport failure or
// a 5xx answer stops the pass after charging the failed event an attempt; an
// event that exhausts its attempts is kept, marked terminal, and never
// retried again. An event leaves the queue only on a definitive answer.
func (c *AttendanceClient) Flush() error {
	events, err := c.Store.List()
	if err != nil {
		return err
	}
	for _, event := range events {
		if event.Status != EventStatusPending {
			continue
		}
		_, statusCode, err := c.post(event.Payload)
		if err != nil {
			if chargeErr := c.chargeAttempt(event); chargeErr != nil {
				return chargeErr
			}
			return err
		}
		// A 5xx means the service could not process the submission right
		// now; a later replay can still succeed once it recovers. The event
		// stays queued.
		if *statusCode >= http.StatusInternalServerError {
			if chargeErr := c.chargeAttempt(event); chargeErr != nil {
				return chargeErr
			}
			return fmt.Errorf("service answered %d for queued submission %s", *statusCode, event.ID)
		}
		// A 2xx is delivered and a 4xx rejection is a final answer;
		// replaying either cannot change the outcome.
		if err := c.Store.Remove(event.ID); err != nil {
			return err
		}
	}
	return nil
}

func (c *AttendanceClient) chargeAttempt(event QueuedEvent) error {
	now := time.Now()
	event.Attempts++
	event.LastTriedAt = &now
	if event.Attempts >= c.maxAttempts() {
		event.Status = EventStatusFailedPermanently
	}
	return c.Store.Update(event)
}

// StartSyncLoop flushes the queue on a fixed interval until stop is closed.
// A failed pass is abandoned and retried whole on the next tick; teardown
// never interrupts an in-flight attempt.
func (c *AttendanceClient) StartSyncLoop(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if c.Reachable() {
				c.Flush()
			}
		}
	}
}

// PendingQueueCount reports how many submissions still await delivery.
func (c *AttendanceClient) PendingQueueCount() (int, error) {
	events, err := c.Store.List()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, event := range events {
		if event.Status == EventStatusPending {
			count++
		}
	}
	return count, nil
}

// FailedEvents returns submissions that exhausted their retry budget, for the
// app to surface to the user.
func (c *AttendanceClient) FailedEvents() ([]QueuedEvent, error) {
	events, err := c.Store.List()
	if err != nil {
		return nil, err
	}
	failed := []QueuedEvent{}
	for _, event := range events {
		if event.Status == EventStatusFailedPermanently {
			failed = append(failed, event)
		}
	}
	return failed, nil
}

func (c *AttendanceClient) maxAttempts() int {
	if c.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return c.MaxAttempts
}

func (c *AttendanceClient) post(payload dto.VerifyAttendanceDTO) (*[]byte, *int, error) {
	return c.Network.Post("/api/v1/attendance/verify", c.authHeaders(), payload)
}

// DecodeOutcome parses a delivered submission's response body.
func DecodeOutcome(response []byte) (map[string]any, error) {
	var decoded map[string]any
	if err := json.Unmarshal(response, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
