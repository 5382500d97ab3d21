// Package workflow drives the registration of one user for one event:
// checking eligibility, collecting details, then payment, then submission.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/gdg-garage/reso-client/internal/catalog"
	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/gdg-garage/reso-client/internal/receipt"
	"golang.org/x/sync/errgroup"
)

type Phase int

const (
	Checking Phase = iota
	Closed
	AlreadyRegistered
	Details
	PaymentStep
	Submitted
)

func (p Phase) String() string {
	switch p {
	case Checking:
		return "checking"
	case Closed:
		return "closed"
	case AlreadyRegistered:
		return "already-registered"
	case Details:
		return "details"
	case PaymentStep:
		return "payment"
	case Submitted:
		return "submitted"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Landing is where a missing credential sends the user.
const Landing = "/"

// Redirect is returned when the workflow must hand control to another route
// instead of continuing.
type Redirect struct {
	To     string
	Reason string
}

func (r *Redirect) Error() string {
	return fmt.Sprintf("redirect to %s: %s", r.To, r.Reason)
}

// ErrWrongPhase is returned when a step is attempted out of order.
var ErrWrongPhase = errors.New("operation not allowed in current phase")

var ErrOffsite = errors.New("event is not registered through this platform")

// Credentials reports whether a credential is stored.
type Credentials interface {
	Credential() (string, bool)
}

// SubmitHook is called after the server accepts a registration.
type SubmitHook func(ctx context.Context, req models.RegisterRequest)

// Workflow is the state of one registration form. Instances share nothing.
type Workflow struct {
	schema   catalog.Schema
	creds    Credentials
	api      gateway.Requester
	onSubmit SubmitHook

	mu      sync.Mutex
	phase   Phase
	event   *models.EventDescriptor
	fee     models.Fee
	form    Form
	details details
	notices []string
}

type Option func(*Workflow)

func OnSubmitted(hook SubmitHook) Option {
	return func(w *Workflow) { w.onSubmit = hook }
}

func New(schema catalog.Schema, creds Credentials, api gateway.Requester, opts ...Option) (*Workflow, error) {
	if schema.Mode == catalog.Offsite {
		return nil, ErrOffsite
	}
	w := &Workflow{schema: schema, creds: creds, api: api, phase: Checking}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Workflow) Schema() catalog.Schema { return w.schema }

func (w *Workflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Event returns the event details reported by the duplicate check, if any.
func (w *Workflow) Event() *models.EventDescriptor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.event
}

// Fee is the registration fee to display on the payment step.
func (w *Workflow) Fee() models.Fee {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.event != nil && w.event.Fee != "" {
		return w.event.Fee
	}
	return w.fee
}

// Rules lists the event rules shown alongside the details step.
func (w *Workflow) Rules() []string {
	ev := w.Event()
	if ev == nil {
		return nil
	}
	return receipt.ParseRules(ev.Description)
}

// Form returns the details entered so far.
func (w *Workflow) Form() Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// Notices drains messages meant for a transient notification.
func (w *Workflow) Notices() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.notices
	w.notices = nil
	return out
}

// AfterSubmit is the route to show once the workflow is Submitted.
func (w *Workflow) AfterSubmit() string { return w.schema.AfterSubmit }

// Start runs the Checking phase. The status checks and the duplicate check
// run concurrently and all finish before a phase is chosen. A failed
// status check counts as open and a failed duplicate check as not
// registered. An existing registration is reported even when the event
// has since closed.
func (w *Workflow) Start(ctx context.Context) (Phase, error) {
	if _, ok := w.creds.Credential(); !ok {
		return w.Phase(), &Redirect{To: Landing, Reason: gateway.ErrNoCredential.Error()}
	}

	w.mu.Lock()
	w.phase = Checking
	w.mu.Unlock()

	var (
		closed     atomic.Bool
		registered bool
		noCred     bool
		check      models.CheckResponse
		notice     string
	)

	var g errgroup.Group
	for _, path := range w.schema.StatusPaths {
		path := path
		g.Go(func() error {
			var status models.StatusResponse
			if err := w.api.Do(ctx, http.MethodGet, path, nil, &status); err != nil {
				log.Printf("Error fetching registration status from %s: %v", path, err)
				return nil
			}
			if !status.RegistrationOpen {
				closed.Store(true)
			}
			return nil
		})
	}
	g.Go(func() error {
		path := "/users/check?event=" + url.QueryEscape(w.schema.ID)
		err := w.api.DoAuth(ctx, http.MethodGet, path, nil, &check)
		switch {
		case err == nil:
			registered = check.EventRegistered
		case errors.Is(err, gateway.ErrAlreadyRegistered):
			registered = true
		case errors.Is(err, gateway.ErrNoCredential):
			noCred = true
		default:
			notice = gateway.Message(err)
		}
		return nil
	})
	_ = g.Wait()

	if noCred {
		return w.Phase(), &Redirect{To: Landing, Reason: gateway.ErrNoCredential.Error()}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if check.EventDetails != nil {
		ev := *check.EventDetails
		w.event = &ev
	}
	w.fee = check.Fee
	if notice != "" {
		w.notices = append(w.notices, notice)
	}

	switch {
	case registered:
		w.phase = AlreadyRegistered
	case closed.Load() || w.schema.TeamAllotted:
		w.phase = Closed
	default:
		w.phase = Details
	}
	return w.phase, nil
}

// SubmitDetails validates the details locally and advances to Payment.
// Nothing is sent to the server.
func (w *Workflow) SubmitDetails(form Form) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase != Details {
		return fmt.Errorf("submit details while %s: %w", w.phase, ErrWrongPhase)
	}
	w.form = form

	d, err := validateDetails(w.schema, form)
	if err != nil {
		return err
	}
	w.details = d
	w.phase = PaymentStep
	return nil
}

// Back returns from Payment to Details keeping everything entered.
func (w *Workflow) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase != PaymentStep {
		return fmt.Errorf("back while %s: %w", w.phase, ErrWrongPhase)
	}
	w.phase = Details
	return nil
}

// Payload combines the validated details with p as sent to the server.
func (w *Workflow) Payload(p Payment) (models.RegisterRequest, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase != PaymentStep && w.phase != Submitted {
		return models.RegisterRequest{}, fmt.Errorf("payload while %s: %w", w.phase, ErrWrongPhase)
	}
	p, err := validatePayment(p)
	if err != nil {
		return models.RegisterRequest{}, err
	}
	return buildRequest(w.schema, w.details, p), nil
}

// SubmitPayment sends the registration. On success the workflow is
// Submitted and the server's message is returned. Any failure leaves it at
// Payment so the user can retry.
func (w *Workflow) SubmitPayment(ctx context.Context, p Payment) (string, error) {
	if w.Phase() != PaymentStep {
		return "", fmt.Errorf("submit payment while %s: %w", w.Phase(), ErrWrongPhase)
	}
	req, err := w.Payload(p)
	if err != nil {
		return "", err
	}

	var resp models.MessageResponse
	if err := w.api.DoAuth(ctx, http.MethodPost, "/users/register", req, &resp); err != nil {
		if errors.Is(err, gateway.ErrNoCredential) {
			return "", &Redirect{To: Landing, Reason: err.Error()}
		}
		return "", err
	}

	w.mu.Lock()
	w.phase = Submitted
	w.mu.Unlock()

	if w.onSubmit != nil {
		w.onSubmit(ctx, req)
	}
	return resp.Message, nil
}
