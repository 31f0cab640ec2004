package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const testSecret = "dev-secret-change-in-production-32bytes"

func TestRequireAdmin_NoHeader_Returns401(t *testing.T) {
	mw := RequireAdmin(SecretBytes(testSecret))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/api/contacts", nil)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON body, got Content-Type %q", ct)
	}
}

func TestRequireAdmin_InvalidToken_Returns401(t *testing.T) {
	mw := RequireAdmin(SecretBytes(testSecret))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	for _, h := range []string{"Bearer invalid.token", "Basic abc", "Bearer ", "token"} {
		req := httptest.NewRequest("GET", "/api/contacts", nil)
		req.Header.Set("Authorization", h)
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%q: expected 401, got %d", h, rec.Code)
		}
	}
}

// TestRequireAdmin_NonAdminSubject_Returns401 verifies a validly signed token
// for another subject is refused.
func TestRequireAdmin_NonAdminSubject_Returns401(t *testing.T) {
	secret := SecretBytes(testSecret)
	mw := RequireAdmin(secret)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/api/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+CreateToken("visitor", secret))
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdmin_ValidToken_CallsNextWithSubject(t *testing.T) {
	secret := SecretBytes(testSecret)
	mw := RequireAdmin(secret)

	var gotSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("DELETE", "/api/contacts/1", nil)
	req.Header.Set("Authorization", "bearer "+CreateToken(AdminSubject, secret))
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if gotSubject != AdminSubject {
		t.Errorf("expected subject=%s, got %q", AdminSubject, gotSubject)
	}
}

func TestRequireAdmin_WrongSecret_Returns401(t *testing.T) {
	mw := RequireAdmin(SecretBytes(testSecret))
	token := CreateToken(AdminSubject, SecretBytes("some-other-secret"))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/api/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestOpen_SetsDevSubject(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := SubjectFromContext(r.Context())
		if !ok {
			t.Error("subject not in context")
			return
		}
		if subject != DevSubject {
			t.Errorf("expected %q, got %q", DevSubject, subject)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/contacts", nil)
	rec := httptest.NewRecorder()
	Open(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	secret := SecretBytes(testSecret)
	got, err := VerifyToken(CreateToken(AdminSubject, secret), secret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != AdminSubject {
		t.Errorf("expected %q, got %q", AdminSubject, got)
	}
}

func TestVerifyToken_Tampered(t *testing.T) {
	secret := SecretBytes(testSecret)
	token := CreateToken("visitor", secret)
	// swap the payload for "admin" but keep the visitor signature
	forged := CreateToken(AdminSubject, secret)[:len("YWRtaW4=")] + token[len("dmlzaXRvcg=="):]
	if _, err := VerifyToken(forged, secret); err == nil {
		t.Error("expected forged token to be rejected")
	}
}

func TestSecretBytes_PadsShortSecrets(t *testing.T) {
	if got := len(SecretBytes("short")); got != 32 {
		t.Errorf("expected 32 bytes, got %d", got)
	}
	long := "this-secret-is-definitely-longer-than-32-bytes"
	if got := string(SecretBytes(long)); got != long {
		t.Errorf("long secret should be kept as is")
	}
}
