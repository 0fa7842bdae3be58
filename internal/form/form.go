// Package form governs the lifecycle of a resource modal: whether it is
// creating or editing, what the user has typed so far, and whether the
// current input is allowed to reach the backend at all.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/edvin/backupdesk/internal/backend"
	"github.com/edvin/backupdesk/internal/registry"
)

// State is the form's position in its lifecycle.
type State string

const (
	// StateIdle means the modal is closed.
	StateIdle State = "idle"
	// StateCreating means the modal is open with no existing resource.
	StateCreating State = "creating"
	// StateEditing means the modal is open over an existing resource.
	StateEditing State = "editing"
	// StateSubmitting means a backend call is in flight; further submits
	// are rejected until it completes.
	StateSubmitting State = "submitting"
)

var (
	ErrNotOpen        = errors.New("form is not open")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

var validate = validator.New()

// submission is the generic validity gate: submission is disabled unless
// the name is present and encoding produced a non-empty url.
type submission struct {
	Name string `validate:"required"`
	URL  string `validate:"required"`
}

// Controller tracks one resource form. The zero value is not usable;
// construct with New.
type Controller struct {
	state      State
	kind       registry.Kind
	resourceID int64
	name       string
	fields     registry.Fields
	lastError  string
}

func New() *Controller {
	return &Controller{state: StateIdle}
}

// BeginCreate opens the form in create mode for a kind.
func (c *Controller) BeginCreate(kind registry.Kind) {
	c.state = StateCreating
	c.kind = kind
	c.resourceID = 0
	c.name = ""
	c.fields = registry.Fields{}
	c.lastError = ""
}

// BeginEdit opens the form over an existing resource, pre-populating the
// typed fields from its stored url. Secret fields always start blank:
// leaving them blank on submit means "keep the existing value".
func (c *Controller) BeginEdit(id int64, kind registry.Kind, name, url string, login *string) {
	c.state = StateEditing
	c.kind = kind
	c.resourceID = id
	c.name = name
	var loginVal string
	if login != nil {
		loginVal = *login
	}
	c.fields = registry.Decode(kind, url, loginVal)
	c.lastError = ""
}

// Close returns the form to idle, discarding any typed state.
func (c *Controller) Close() {
	*c = Controller{state: StateIdle}
}

func (c *Controller) State() State        { return c.state }
func (c *Controller) Kind() registry.Kind { return c.kind }
func (c *Controller) ResourceID() int64   { return c.resourceID }
func (c *Controller) Name() string        { return c.name }
func (c *Controller) LastError() string   { return c.lastError }

// Editing reports whether the form is open over an existing resource.
func (c *Controller) Editing() bool {
	return c.resourceID != 0
}

func (c *Controller) SetName(name string) {
	c.name = name
}

// Fields returns a copy of the current field values.
func (c *Controller) Fields() registry.Fields {
	return c.fields
}

// EditFields applies an edit to the typed fields in place.
func (c *Controller) EditFields(edit func(*registry.Fields)) {
	edit(&c.fields)
}

// Validate checks the gate conditions for the current mode. A nil result
// means Submit may go to the backend.
func (c *Controller) Validate() error {
	if c.state == StateIdle {
		return ErrNotOpen
	}

	sub := submission{
		Name: strings.TrimSpace(c.name),
		URL:  registry.Encode(c.kind, c.fields).URL,
	}
	if err := validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Name":
				return errors.New("name is required")
			case "URL":
				missing := registry.MissingFields(c.kind, c.fields)
				return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
			}
		}
		return err
	}

	// Per-kind rules beyond the generic gate.
	if c.kind == registry.KindPostgres {
		if c.fields.Login == "" {
			return errors.New("login is required for postgres")
		}
		if !c.Editing() && c.fields.Password == "" {
			return errors.New("password is required when creating a postgres source")
		}
	}

	return nil
}

// CanSubmit reports whether the validity gate passes.
func (c *Controller) CanSubmit() bool {
	return c.Validate() == nil
}

// CreatePayload encodes the full credentials for a create submission.
func (c *Controller) CreatePayload() registry.Credentials {
	return registry.Encode(c.kind, c.fields)
}

// UpdatePayload encodes the sparse credentials for an edit submission,
// omitting secret fields the user left blank.
func (c *Controller) UpdatePayload() registry.CredentialsPatch {
	return registry.EncodeUpdate(c.kind, c.fields)
}

// Submit runs the validity gate and, if it passes, sends exactly one
// backend call. A second Submit while one is in flight is rejected
// without touching the network. On success the form closes; on failure
// it reopens in its previous mode carrying the error message.
func (c *Controller) Submit(ctx context.Context, send func(context.Context) backend.Response) (backend.Response, error) {
	switch c.state {
	case StateIdle:
		return backend.Response{}, ErrNotOpen
	case StateSubmitting:
		return backend.Response{}, ErrSubmitInFlight
	}

	if err := c.Validate(); err != nil {
		c.lastError = err.Error()
		return backend.Response{}, err
	}

	prev := c.state
	c.state = StateSubmitting

	resp := send(ctx)
	if resp.OK() {
		c.Close()
		return resp, nil
	}

	c.state = prev
	c.lastError = resp.ErrorMessage("submission failed")
	return resp, nil
}
