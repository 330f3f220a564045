package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

type stubStore struct {
	data     map[string]domain.Session
	ttls     map[string]time.Duration
	deleted  []string
	getErr   error
	saveErr  error
	deleteFn func(id string) error
}

func newStubStore() *stubStore {
	return &stubStore{data: map[string]domain.Session{}, ttls: map[string]time.Duration{}}
}

func (s *stubStore) Get(_ context.Context, id string) (*domain.Session, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	sess, ok := s.data[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *stubStore) Save(_ context.Context, id string, sess domain.Session, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[id] = sess
	s.ttls[id] = ttl
	return nil
}

func (s *stubStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	if s.deleteFn != nil {
		return s.deleteFn(id)
	}
	delete(s.data, id)
	return nil
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestSave_MintsIdentifierWhenMissing(t *testing.T) {
	store := newStubStore()
	m := NewManager(store, Options{})
	m.newID = func() string { return "sid-1" }

	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/sessions/", nil))
	if err := m.Save(c, domain.Session{FirebaseUID: "u1", Username: "Alice"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if store.data["sid-1"].FirebaseUID != "u1" {
		t.Fatalf("session not stored under minted id: %+v", store.data)
	}
	if store.ttls["sid-1"] != DefaultTTL {
		t.Fatalf("expected default ttl, got %s", store.ttls["sid-1"])
	}
	ck := responseCookie(t, rec, DefaultCookieName)
	if ck.Value != "sid-1" || !ck.HttpOnly || ck.MaxAge != int(DefaultTTL/time.Second) {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
}

func TestSave_ReusesRequestIdentifier(t *testing.T) {
	store := newStubStore()
	store.data["existing"] = domain.Session{FirebaseUID: "old"}
	m := NewManager(store, Options{CookieName: "sid", TTL: time.Hour, Secure: true})
	m.newID = func() string {
		t.Fatalf("no identifier should be minted")
		return ""
	}

	req := httptest.NewRequest(http.MethodPost, "/sessions/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "existing"})
	c, rec := newContext(req)

	if err := m.Save(c, domain.Session{FirebaseUID: "new"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.data["existing"].FirebaseUID != "new" {
		t.Fatalf("session not replaced: %+v", store.data["existing"])
	}
	if ck := responseCookie(t, rec, "sid"); !ck.Secure {
		t.Fatalf("expected secure cookie")
	}
}

func TestSave_ReplacesUnknownIdentifier(t *testing.T) {
	store := newStubStore()
	m := NewManager(store, Options{})
	m.newID = func() string { return "server-issued" }

	req := httptest.NewRequest(http.MethodPost, "/sessions/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "planted-by-client"})
	c, rec := newContext(req)

	if err := m.Save(c, domain.Session{FirebaseUID: "u1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := store.data["planted-by-client"]; ok {
		t.Fatalf("session must not be stored under a client-chosen id")
	}
	if store.data["server-issued"].FirebaseUID != "u1" {
		t.Fatalf("session not stored under minted id: %+v", store.data)
	}
	if ck := responseCookie(t, rec, DefaultCookieName); ck.Value != "server-issued" {
		t.Fatalf("cookie must carry the minted id, got %q", ck.Value)
	}
}

func TestSave_LookupFailure(t *testing.T) {
	store := newStubStore()
	store.getErr = errors.New("connection refused")
	m := NewManager(store, Options{})

	req := httptest.NewRequest(http.MethodPost, "/sessions/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "sid-1"})
	c, rec := newContext(req)

	if err := m.Save(c, domain.Session{FirebaseUID: "u1"}); err == nil {
		t.Fatalf("expected error")
	}
	if len(store.data) != 0 || len(rec.Result().Cookies()) != 0 {
		t.Fatalf("nothing may be written when the lookup fails")
	}
}

func TestSave_StoreFailure(t *testing.T) {
	store := newStubStore()
	store.saveErr = errors.New("connection refused")
	m := NewManager(store, Options{})

	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/sessions/", nil))
	if err := m.Save(c, domain.Session{FirebaseUID: "u1"}); err == nil {
		t.Fatalf("expected error")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("cookie must not be set when the store fails")
	}
}

func TestLoad(t *testing.T) {
	store := newStubStore()
	store.data["sid-1"] = domain.Session{FirebaseUID: "u1"}
	m := NewManager(store, Options{})

	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := m.Load(c); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound without cookie, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "sid-1"})
	c, _ = newContext(req)
	sess, err := m.Load(c)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !sess.Authenticated() {
		t.Fatalf("expected authenticated session")
	}
}

func TestFlush(t *testing.T) {
	t.Run("without cookie", func(t *testing.T) {
		store := newStubStore()
		m := NewManager(store, Options{})
		c, _ := newContext(httptest.NewRequest(http.MethodPost, "/logout/", nil))
		if err := m.Flush(c); err != nil {
			t.Fatalf("Flush: %v", err)
		}
		if len(store.deleted) != 0 {
			t.Fatalf("store must not be touched")
		}
	})

	t.Run("deletes and expires cookie", func(t *testing.T) {
		store := newStubStore()
		store.data["sid-1"] = domain.Session{FirebaseUID: "u1"}
		m := NewManager(store, Options{})
		req := httptest.NewRequest(http.MethodPost, "/logout/", nil)
		req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "sid-1"})
		c, rec := newContext(req)

		if err := m.Flush(c); err != nil {
			t.Fatalf("Flush: %v", err)
		}
		if _, ok := store.data["sid-1"]; ok {
			t.Fatalf("session not deleted")
		}
		if ck := responseCookie(t, rec, DefaultCookieName); ck.MaxAge >= 0 {
			t.Fatalf("expected expired cookie, got MaxAge %d", ck.MaxAge)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		store := newStubStore()
		store.deleteFn = func(string) error { return errors.New("redis down") }
		m := NewManager(store, Options{})
		req := httptest.NewRequest(http.MethodPost, "/logout/", nil)
		req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "sid-1"})
		c, _ := newContext(req)

		if err := m.Flush(c); err == nil {
			t.Fatalf("expected error")
		}
	})
}
