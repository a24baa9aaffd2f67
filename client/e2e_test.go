package client_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stenstromen/bioportal/api"
	"github.com/stenstromen/bioportal/client"
	"github.com/stenstromen/bioportal/db"
	"github.com/stenstromen/bioportal/secret"
	"github.com/stenstromen/bioportal/upstream"
)

type pageView struct {
	dashboard bool
	tokenID   int64
	bio       string
	status    map[client.Region]string
	alerts    []string
	answer    bool
}

func (p *pageView) SetStatus(r client.Region, text string) { p.status[r] = text }
func (p *pageView) ShowDashboard()                         { p.dashboard = true }
func (p *pageView) ShowTokenID(id int64)                   { p.tokenID = id }
func (p *pageView) SetCurrentBio(bio string)               { p.bio = bio }
func (p *pageView) Confirm(string) bool                    { return p.answer }
func (p *pageView) Alert(text string)                      { p.alerts = append(p.alerts, text) }
func (p *pageView) Reload() {
	p.dashboard, p.tokenID, p.bio = false, 0, ""
	p.status = make(map[client.Region]string)
}

func TestAgainstServer(t *testing.T) {
	sealer, err := secret.NewFromHex("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	if err != nil {
		t.Fatalf("NewFromHex() failed: %v", err)
	}
	srv := httptest.NewServer(api.Handlers(api.Config{
		Store:      db.NewMemory(),
		Sealer:     sealer,
		Upstream:   upstream.New(""),
		SessionKey: []byte("e2e-session-key"),
	}))
	defer srv.Close()

	tr, err := client.NewHTTPTransport(srv.URL)
	if err != nil {
		t.Fatalf("NewHTTPTransport() failed: %v", err)
	}
	view := &pageView{status: make(map[client.Region]string), answer: true}
	c := client.New(tr, view)
	ctx := context.Background()

	// Empty token is sent as-is and the backend rejects it.
	err = c.SaveToken(ctx, "   ", "")
	var appErr *client.ApplicationError
	if !errors.As(err, &appErr) || appErr.Message != "token required" {
		t.Fatalf("SaveToken(blank) = %v", err)
	}
	if c.State() != client.StateSetup || view.status[client.RegionSave] != client.English.SaveError+"token required" {
		t.Fatalf("after rejected save: state=%v status=%q", c.State(), view.status[client.RegionSave])
	}

	if err := c.SaveToken(ctx, " ghp_live ", ""); err != nil {
		t.Fatalf("SaveToken() failed: %v", err)
	}
	id, ok := c.Session().TokenID()
	if !ok || id != 1 || !view.dashboard || view.tokenID != 1 {
		t.Fatalf("after save: id=%d ok=%v view=%+v", id, ok, view)
	}

	if err := c.UpdateBio(ctx, "hello"); err != nil {
		t.Fatalf("UpdateBio() failed: %v", err)
	}
	if view.bio != "hello" {
		t.Fatalf("bio = %q", view.bio)
	}

	if err := c.DeleteToken(ctx); err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}
	if _, ok := c.Session().TokenID(); ok || view.dashboard || c.State() != client.StateSetup {
		t.Fatal("delete did not reload")
	}

	if err := c.UpdateBio(ctx, "again"); !errors.Is(err, client.ErrNoSession) {
		t.Fatalf("UpdateBio() after reload = %v", err)
	}
}
