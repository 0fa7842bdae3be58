package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/edvin/backupdesk/internal/backend"
	"github.com/edvin/backupdesk/internal/form"
	"github.com/edvin/backupdesk/internal/registry"
)

// ErrConfirmationRequired is returned when a destructive action is
// attempted without the caller having confirmed it first.
var ErrConfirmationRequired = errors.New("confirmation required")

// ErrNotFound is returned when an action targets a resource absent from
// the view's current list.
var ErrNotFound = errors.New("resource not found")

// Resource is the view model shared by the source and destination
// screens. Secrets never appear here: the backend does not return them.
type Resource struct {
	ID    int64
	Name  string
	Kind  registry.Kind
	URL   string
	Login *string
}

// ResourceOps is the per-collection gateway surface the generic manager
// is parameterized by.
type ResourceOps interface {
	Family() registry.Family
	List(ctx context.Context) ([]Resource, backend.Response)
	Create(ctx context.Context, name string, kind registry.Kind, creds registry.Credentials) backend.Response
	Update(ctx context.Context, id int64, name *string, patch *registry.CredentialsPatch) backend.Response
	Delete(ctx context.Context, id int64) backend.Response
	TestConnection(ctx context.Context, id int64) backend.Response
}

// Manager drives one resource management screen: the fetched list, the
// modal form, and the actions on rows. The server's list is the single
// source of truth; every successful mutation triggers exactly one
// re-fetch and never a local mutation.
type Manager struct {
	ops      ResourceOps
	form     *form.Controller
	notifier Notifier
	items    []Resource
}

func NewManager(ops ResourceOps, notifier Notifier) *Manager {
	return &Manager{
		ops:      ops,
		form:     form.New(),
		notifier: notifier,
	}
}

// Items returns the rows from the last refresh.
func (m *Manager) Items() []Resource {
	return m.items
}

// Form exposes the modal form controller.
func (m *Manager) Form() *form.Controller {
	return m.form
}

// Refresh re-fetches the collection. On failure the view renders zero
// rows and surfaces the backend's detail.
func (m *Manager) Refresh(ctx context.Context) backend.Response {
	items, resp := m.ops.List(ctx)
	m.items = items
	if !resp.OK() {
		m.notifier.Notify(Notice{
			Message: resp.ErrorMessage(fmt.Sprintf("failed to list backup %ss", m.ops.Family())),
			Status:  resp.Status,
		})
	}
	return resp
}

// OpenCreate opens the modal in create mode for a kind.
func (m *Manager) OpenCreate(kind registry.Kind) error {
	if registry.FamilyOf(kind) != m.ops.Family() {
		return fmt.Errorf("kind %q is not a %s type", kind, m.ops.Family())
	}
	m.form.BeginCreate(kind)
	return nil
}

// OpenEdit opens the modal over a listed resource, with secrets blank.
func (m *Manager) OpenEdit(id int64) error {
	for _, item := range m.items {
		if item.ID == id {
			m.form.BeginEdit(item.ID, item.Kind, item.Name, item.URL, item.Login)
			return nil
		}
	}
	return ErrNotFound
}

// SubmitForm sends the open form to the backend: a create or an update
// depending on the form's mode. On success the collection is re-fetched
// once and a success notice carries the backend's message.
func (m *Manager) SubmitForm(ctx context.Context) error {
	name := m.form.Name()
	editing := m.form.Editing()
	id := m.form.ResourceID()

	resp, err := m.form.Submit(ctx, func(ctx context.Context) backend.Response {
		if editing {
			patch := m.form.UpdatePayload()
			return m.ops.Update(ctx, id, &name, &patch)
		}
		return m.ops.Create(ctx, name, m.form.Kind(), m.form.CreatePayload())
	})
	if err != nil {
		m.notifier.Notify(Notice{Message: err.Error(), Status: 400})
		return err
	}

	if resp.OK() {
		m.notifier.Notify(Notice{Message: resp.Message, Status: resp.Status})
		m.Refresh(ctx)
		return nil
	}

	m.notifier.Notify(Notice{
		Message: resp.ErrorMessage("submission failed"),
		Status:  resp.Status,
	})
	return nil
}

// Delete removes a resource. The confirmed flag is the caller-side
// confirmation policy: nothing is sent without it.
func (m *Manager) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	resp := m.ops.Delete(ctx, id)
	if resp.OK() {
		m.notifier.Notify(Notice{Message: resp.Message, Status: resp.Status})
		m.Refresh(ctx)
		return nil
	}

	m.notifier.Notify(Notice{
		Message: resp.ErrorMessage(fmt.Sprintf("failed to delete backup %s", m.ops.Family())),
		Status:  resp.Status,
	})
	return nil
}

// TestConnection asks the backend to probe a resource and surfaces the
// outcome as a notice. The result travels only through the normalized
// status, never an error.
func (m *Manager) TestConnection(ctx context.Context, id int64) backend.Response {
	resp := m.ops.TestConnection(ctx, id)
	if resp.OK() {
		m.notifier.Notify(Notice{Message: resp.Message, Status: resp.Status})
	} else {
		m.notifier.Notify(Notice{
			Message: resp.ErrorMessage("connection test failed"),
			Status:  resp.Status,
		})
	}
	return resp
}

// SourceOps adapts the gateway's backup-source calls to ResourceOps.
type SourceOps struct {
	Client *backend.Client
}

func (SourceOps) Family() registry.Family { return registry.FamilySource }

func (o SourceOps) List(ctx context.Context) ([]Resource, backend.Response) {
	sources, resp := o.Client.ListSources(ctx)
	items := make([]Resource, 0, len(sources))
	for _, s := range sources {
		items = append(items, Resource{
			ID:    s.ID,
			Name:  s.Name,
			Kind:  registry.Kind(s.SourceType),
			URL:   s.URL,
			Login: s.Login,
		})
	}
	return items, resp
}

func (o SourceOps) Create(ctx context.Context, name string, kind registry.Kind, creds registry.Credentials) backend.Response {
	return o.Client.CreateSource(ctx, name, kind, creds)
}

func (o SourceOps) Update(ctx context.Context, id int64, name *string, patch *registry.CredentialsPatch) backend.Response {
	return o.Client.UpdateSource(ctx, id, name, patch)
}

func (o SourceOps) Delete(ctx context.Context, id int64) backend.Response {
	return o.Client.DeleteSource(ctx, id)
}

func (o SourceOps) TestConnection(ctx context.Context, id int64) backend.Response {
	return o.Client.TestSourceConnection(ctx, id)
}

// DestinationOps adapts the gateway's backup-destination calls.
type DestinationOps struct {
	Client *backend.Client
}

func (DestinationOps) Family() registry.Family { return registry.FamilyDestination }

func (o DestinationOps) List(ctx context.Context) ([]Resource, backend.Response) {
	destinations, resp := o.Client.ListDestinations(ctx)
	items := make([]Resource, 0, len(destinations))
	for _, d := range destinations {
		items = append(items, Resource{
			ID:    d.ID,
			Name:  d.Name,
			Kind:  registry.Kind(d.DestinationType),
			URL:   d.URL,
			Login: d.Login,
		})
	}
	return items, resp
}

func (o DestinationOps) Create(ctx context.Context, name string, kind registry.Kind, creds registry.Credentials) backend.Response {
	return o.Client.CreateDestination(ctx, name, kind, creds)
}

func (o DestinationOps) Update(ctx context.Context, id int64, name *string, patch *registry.CredentialsPatch) backend.Response {
	return o.Client.UpdateDestination(ctx, id, name, patch)
}

func (o DestinationOps) Delete(ctx context.Context, id int64) backend.Response {
	return o.Client.DeleteDestination(ctx, id)
}

func (o DestinationOps) TestConnection(ctx context.Context, id int64) backend.Response {
	return o.Client.TestDestinationConnection(ctx, id)
}
