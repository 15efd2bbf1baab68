package services

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/shared"
	internaltest "github.com/dren-arifi/isrcfind/internal/testing"
)

func TestCredentialStore(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newStore := func() (*internaltest.MemStore, *CredentialStore) {
		mem := internaltest.NewMemStore()
		creds := NewCredentialStore(mem)
		creds.now = func() time.Time { return now }
		return mem, creds
	}

	t.Run("Save and Load", func(t *testing.T) {
		_, creds := newStore()

		in := models.Credentials{
			ClientID:     "id",
			ClientSecret: "secret",
			ExpiresAt:    now.Add(time.Hour).UnixMilli(),
		}
		if err := creds.Save(in); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		out, err := creds.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if out != in {
			t.Errorf("Loaded %+v, want %+v", out, in)
		}
	})

	t.Run("Save rejects blank fields", func(t *testing.T) {
		_, creds := newStore()

		err := creds.Save(models.Credentials{ClientID: "id"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Save rejects past expiry", func(t *testing.T) {
		_, creds := newStore()

		err := creds.Save(models.Credentials{
			ClientID:     "id",
			ClientSecret: "secret",
			ExpiresAt:    now.Add(-time.Minute).UnixMilli(),
		})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Load without credentials", func(t *testing.T) {
		_, creds := newStore()

		_, err := creds.Load()
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("Expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Load purges expired credentials", func(t *testing.T) {
		mem, creds := newStore()

		in := models.Credentials{
			ClientID:     "id",
			ClientSecret: "secret",
			ExpiresAt:    now.Add(time.Hour).UnixMilli(),
		}
		if err := creds.Save(in); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := mem.Set(tokenKey, `{"access_token":"tok"}`); err != nil {
			t.Fatal(err)
		}

		creds.now = func() time.Time { return now.Add(2 * time.Hour) }

		_, err := creds.Load()
		if !errors.Is(err, shared.ErrCredentialsExpired) {
			t.Fatalf("Expected ErrCredentialsExpired, got %v", err)
		}

		if _, ok := mem.Values[credentialsKey]; ok {
			t.Error("Expired credentials were not purged")
		}
		if _, ok := mem.Values[tokenKey]; ok {
			t.Error("Cached token was not purged with its credentials")
		}

		_, err = creds.Load()
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("Expected ErrMissingCredentials after purge, got %v", err)
		}
	})

	t.Run("Zero expiry never expires", func(t *testing.T) {
		_, creds := newStore()

		in := models.Credentials{ClientID: "id", ClientSecret: "secret"}
		if err := creds.Save(in); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		creds.now = func() time.Time { return now.Add(1000 * time.Hour) }
		if _, err := creds.Load(); err != nil {
			t.Errorf("Load failed: %v", err)
		}
	})
}

func TestTokenManager(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	saveCreds := func(t *testing.T, creds *CredentialStore) {
		t.Helper()
		err := creds.Save(models.Credentials{ClientID: "client", ClientSecret: "hush"})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	t.Run("Exchanges credentials for a token", func(t *testing.T) {
		var gotAuth, gotBody, gotContentType string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			if err := r.ParseForm(); err != nil {
				t.Errorf("ParseForm failed: %v", err)
			}
			gotBody = r.PostForm.Encode()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"abc123","token_type":"Bearer","expires_in":3600}`))
		}))
		defer srv.Close()

		mem := internaltest.NewMemStore()
		creds := NewCredentialStore(mem)
		saveCreds(t, creds)

		mgr := NewTokenManager(mem, creds, srv.URL)
		mgr.now = func() time.Time { return now }

		token, err := mgr.Token(context.Background())
		if err != nil {
			t.Fatalf("Token failed: %v", err)
		}

		if token.AccessToken != "abc123" {
			t.Errorf("AccessToken = %q, want abc123", token.AccessToken)
		}

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("client:hush"))
		if gotAuth != wantAuth {
			t.Errorf("Authorization = %q, want %q", gotAuth, wantAuth)
		}
		if gotContentType != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", gotContentType)
		}
		if gotBody != "grant_type=client_credentials" {
			t.Errorf("Body = %q, want grant_type=client_credentials", gotBody)
		}

		wantExpiry := now.Add(3600*time.Second - 30*time.Second)
		if !token.Expiry.Equal(wantExpiry) {
			t.Errorf("Expiry = %v, want %v", token.Expiry, wantExpiry)
		}
	})

	t.Run("Serves cached token without a request", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write([]byte(`{"access_token":"fresh","expires_in":3600}`))
		}))
		defer srv.Close()

		mem := internaltest.NewMemStore()
		creds := NewCredentialStore(mem)
		saveCreds(t, creds)

		mgr := NewTokenManager(mem, creds, srv.URL)
		mgr.now = func() time.Time { return now }

		cached := &oauth2.Token{AccessToken: "cached", Expiry: now.Add(time.Minute)}
		if err := mem.SetJSON(tokenKey, cached); err != nil {
			t.Fatal(err)
		}

		token, err := mgr.Token(context.Background())
		if err != nil {
			t.Fatalf("Token failed: %v", err)
		}
		if token.AccessToken != "cached" {
			t.Errorf("AccessToken = %q, want cached", token.AccessToken)
		}
		if calls != 0 {
			t.Errorf("Token endpoint was called %d times, want 0", calls)
		}
	})

	t.Run("Refreshes an expired cached token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"access_token":"fresh","expires_in":3600}`))
		}))
		defer srv.Close()

		mem := internaltest.NewMemStore()
		creds := NewCredentialStore(mem)
		saveCreds(t, creds)

		mgr := NewTokenManager(mem, creds, srv.URL)
		mgr.now = func() time.Time { return now }

		stale := &oauth2.Token{AccessToken: "stale", Expiry: now.Add(-time.Second)}
		if err := mem.SetJSON(tokenKey, stale); err != nil {
			t.Fatal(err)
		}

		token, err := mgr.Token(context.Background())
		if err != nil {
			t.Fatalf("Token failed: %v", err)
		}
		if token.AccessToken != "fresh" {
			t.Errorf("AccessToken = %q, want fresh", token.AccessToken)
		}

		var persisted oauth2.Token
		if found, err := mem.GetJSON(tokenKey, &persisted); err != nil || !found {
			t.Fatalf("Persisted token missing (found=%v, err=%v)", found, err)
		}
		if persisted.AccessToken != "fresh" {
			t.Errorf("Persisted AccessToken = %q, want fresh", persisted.AccessToken)
		}
	})

	t.Run("Missing credentials", func(t *testing.T) {
		mem := internaltest.NewMemStore()
		mgr := NewTokenManager(mem, NewCredentialStore(mem), "http://127.0.0.1:0")

		_, err := mgr.Token(context.Background())
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("Expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Provider rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_client","error_description":"Invalid client"}`))
		}))
		defer srv.Close()

		mem := internaltest.NewMemStore()
		creds := NewCredentialStore(mem)
		saveCreds(t, creds)

		mgr := NewTokenManager(mem, creds, srv.URL)

		_, err := mgr.Token(context.Background())
		if !errors.Is(err, shared.ErrProvider) {
			t.Errorf("Expected ErrProvider, got %v", err)
		}
	})

	t.Run("Provider rejection with non-JSON body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>Bad Gateway</html>`))
		}))
		defer srv.Close()

		mem := internaltest.NewMemStore()
		creds := NewCredentialStore(mem)
		saveCreds(t, creds)

		mgr := NewTokenManager(mem, creds, srv.URL)

		_, err := mgr.Token(context.Background())
		if !errors.Is(err, shared.ErrProvider) {
			t.Errorf("Expected ErrProvider, got %v", err)
		}
	})

	t.Run("Timeout", func(t *testing.T) {
		mem := internaltest.NewMemStore()
		creds := NewCredentialStore(mem)
		saveCreds(t, creds)

		mgr := NewTokenManager(mem, creds, "http://127.0.0.1:0")
		mgr.client = &http.Client{
			Transport: internaltest.NewMockRoundTripper(nil, context.DeadlineExceeded),
		}

		_, err := mgr.Token(context.Background())
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("Expected ErrTimeout, got %v", err)
		}
	})

	t.Run("Empty access token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"expires_in":3600}`))
		}))
		defer srv.Close()

		mem := internaltest.NewMemStore()
		creds := NewCredentialStore(mem)
		saveCreds(t, creds)

		mgr := NewTokenManager(mem, creds, srv.URL)

		_, err := mgr.Token(context.Background())
		if !errors.Is(err, shared.ErrProvider) {
			t.Errorf("Expected ErrProvider, got %v", err)
		}
	})

	t.Run("Invalidate drops the cache", func(t *testing.T) {
		mem := internaltest.NewMemStore()
		mgr := NewTokenManager(mem, NewCredentialStore(mem), "")

		if err := mem.Set(tokenKey, `{"access_token":"tok"}`); err != nil {
			t.Fatal(err)
		}
		if err := mgr.Invalidate(); err != nil {
			t.Fatalf("Invalidate failed: %v", err)
		}
		if _, ok := mem.Values[tokenKey]; ok {
			t.Error("Token survived Invalidate")
		}
	})
}
