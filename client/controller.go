// Package client drives the save / update / delete flow against the bioportal
// API and keeps the session and view in step with each reply.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	model "github.com/stenstromen/bioportal/model"
)

type Controller struct {
	transport Transport
	view      View
	msgs      Messages
	log       *slog.Logger

	session Session

	mu    sync.Mutex
	state State
}

type Option func(*Controller)

func WithMessages(m Messages) Option {
	return func(c *Controller) { c.msgs = m }
}

// WithLogger sets the diagnostic logger. Without it logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func New(t Transport, v View, opts ...Option) *Controller {
	c := &Controller{
		transport: t,
		view:      v,
		msgs:      English,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Session() *Session { return &c.session }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SaveToken stores token under label. A blank label becomes "default". On
// success the session takes the returned id and the view moves to the
// dashboard. The returned error has already been shown to the user.
func (c *Controller) SaveToken(ctx context.Context, token, label string) error {
	const op = "save-token"

	req := model.SaveRequest{
		Token: strings.TrimSpace(token),
		Label: strings.TrimSpace(label),
	}
	if req.Label == "" {
		req.Label = model.DefaultLabel
	}

	c.view.SetStatus(RegionSave, c.msgs.Saving)
	reply, err := c.transport.Post(ctx, model.SaveTokenPath, req)
	if err != nil {
		c.view.SetStatus(RegionSave, c.msgs.ConnectionError)
		return c.transportFailure(op, err)
	}

	if !reply.Response.OK || reply.Response.ID == nil {
		appErr := c.applicationFailure(op, reply)
		c.view.SetStatus(RegionSave, c.msgs.SaveError+appErr.Message)
		return appErr
	}

	id := *reply.Response.ID
	c.session.setTokenID(id)
	c.view.SetStatus(RegionSave, c.msgs.Saved)
	c.view.ShowTokenID(id)

	c.mu.Lock()
	transition := c.state == StateSetup
	c.state = StateDashboard
	c.mu.Unlock()
	if transition {
		c.view.ShowDashboard()
	}

	c.log.DebugContext(ctx, "token saved", slog.Int64("id", id))
	return nil
}

// UpdateBio sends newBio verbatim for the session's token.
func (c *Controller) UpdateBio(ctx context.Context, newBio string) error {
	const op = "update-bio"

	id, ok := c.session.TokenID()
	if !ok {
		c.view.SetStatus(RegionUpdate, c.msgs.NoSession)
		return ErrNoSession
	}

	c.view.SetStatus(RegionUpdate, c.msgs.Updating)
	reply, err := c.transport.Post(ctx, model.UpdateBioPath, model.UpdateRequest{ID: id, NewBio: newBio})
	if err != nil {
		c.view.SetStatus(RegionUpdate, c.msgs.ConnectionError)
		return c.transportFailure(op, err)
	}

	if !reply.Response.OK {
		appErr := c.applicationFailure(op, reply)
		c.view.SetStatus(RegionUpdate, c.msgs.UpdateError+appErr.Message)
		return appErr
	}

	c.view.SetStatus(RegionUpdate, c.msgs.Updated)
	c.view.SetCurrentBio(newBio)
	return nil
}

// DeleteToken asks for confirmation, deletes the session's token and reloads.
// Declining is not an error.
func (c *Controller) DeleteToken(ctx context.Context) error {
	const op = "delete-token"

	id, ok := c.session.TokenID()
	if !ok {
		c.view.Alert(c.msgs.NoSession)
		return ErrNoSession
	}

	if !c.view.Confirm(c.msgs.DeleteConfirm) {
		c.log.DebugContext(ctx, "delete declined", slog.Int64("id", id))
		return nil
	}

	reply, err := c.transport.Post(ctx, model.DeleteTokenPath, model.DeleteRequest{ID: id})
	if err != nil {
		c.view.Alert(c.msgs.DeleteError)
		return c.transportFailure(op, err)
	}

	if !reply.Response.OK {
		appErr := c.applicationFailure(op, reply)
		c.view.Alert(c.msgs.DeleteFailed)
		return appErr
	}

	c.view.Alert(c.msgs.Deleted)
	c.Reload()
	return nil
}

// Reload discards the session and returns the view to the setup step.
func (c *Controller) Reload() {
	c.session.Reset()
	c.mu.Lock()
	c.state = StateSetup
	c.mu.Unlock()
	c.view.Reload()
}

func (c *Controller) transportFailure(op string, err error) error {
	c.log.Error("request failed", slog.String("op", op), slog.String("err", err.Error()))
	return &TransportError{Op: op, Err: err}
}

func (c *Controller) applicationFailure(op string, reply Reply) *ApplicationError {
	body := reply.Body
	if len(body) == 0 {
		body, _ = json.Marshal(reply.Response)
	}
	msg := reply.Response.Error
	if msg == "" {
		msg = string(body)
	}
	c.log.Warn("request rejected",
		slog.String("op", op),
		slog.Bool("ok", reply.Response.OK),
		slog.String("error", reply.Response.Error),
		slog.String("body", string(body)))
	return &ApplicationError{Op: op, Message: msg, Body: body}
}

// IsTransport reports whether err came from a failed round trip.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
