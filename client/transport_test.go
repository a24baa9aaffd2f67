package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPTransportPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		b, _ := io.ReadAll(r.Body)
		if string(b) != `{"id":3}` {
			t.Errorf("body = %s", b)
		}
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"ok":false,"error":"forbidden"}`))
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(srv.URL + "/")
	if err != nil {
		t.Fatalf("NewHTTPTransport() failed: %v", err)
	}
	reply, err := tr.Post(context.Background(), "/api/delete-token", map[string]int{"id": 3})
	if err != nil {
		t.Fatalf("Post() failed: %v", err)
	}
	if reply.Response.OK || reply.Response.Error != "forbidden" {
		t.Fatalf("reply = %+v", reply.Response)
	}
	if string(reply.Body) != `{"ok":false,"error":"forbidden"}` {
		t.Fatalf("body = %s", reply.Body)
	}
}

func TestHTTPTransportNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	tr, _ := NewHTTPTransport(srv.URL)
	_, err := tr.Post(context.Background(), "/api/save-token", struct{}{})
	if err == nil {
		t.Fatal("Post() accepted a non-JSON body")
	}
	if !strings.Contains(err.Error(), "content type text/html") {
		t.Fatalf("error = %v, want the response media type", err)
	}
}

func TestHTTPTransportIgnoresMediaTypeForJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`{"ok":true,"id":5}`))
	}))
	defer srv.Close()

	tr, _ := NewHTTPTransport(srv.URL)
	reply, err := tr.Post(context.Background(), "/api/save-token", struct{}{})
	if err != nil {
		t.Fatalf("Post() failed: %v", err)
	}
	if !reply.Response.OK || reply.Response.ID == nil || *reply.Response.ID != 5 {
		t.Fatalf("reply = %+v", reply.Response)
	}
}

func TestHTTPTransportKeepsCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/set" {
			http.SetCookie(w, &http.Cookie{Name: "s", Value: "1", Path: "/"})
			w.Write([]byte(`{"ok":true}`))
			return
		}
		if _, err := r.Cookie("s"); err != nil {
			w.Write([]byte(`{"ok":false,"error":"no cookie"}`))
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr, _ := NewHTTPTransport(srv.URL)
	ctx := context.Background()
	if _, err := tr.Post(ctx, "/set", nil); err != nil {
		t.Fatalf("Post(/set) failed: %v", err)
	}
	reply, err := tr.Post(ctx, "/check", nil)
	if err != nil {
		t.Fatalf("Post(/check) failed: %v", err)
	}
	if !reply.Response.OK {
		t.Fatalf("cookie not sent back: %s", reply.Body)
	}
}

func TestHTTPTransportConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(NewHTTPTransportWithClient(url, http.DefaultClient), newRecordingView())
	if err := c.SaveToken(context.Background(), "tok", ""); !IsTransport(err) {
		t.Fatalf("error = %v, want transport error", err)
	}
}
