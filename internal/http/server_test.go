package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gamevault/internal/audit"
	"gamevault/internal/auth"
	"gamevault/internal/config"
	gvhttp "gamevault/internal/http"
	"gamevault/internal/domain/user"
	"gamevault/internal/repository"
	"gamevault/internal/repository/sqlite"
	"gamevault/pkg/password"
	"gamevault/pkg/rbac"
	"gamevault/pkg/rbac/presets"
)

const testPassword = "password123"

func newTestServer(t *testing.T) *gvhttp.Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:         "0",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Session: config.SessionConfig{
			TTL:        time.Hour,
			CookieName: "gv_session",
		},
		Security: config.SecurityConfig{BcryptCost: password.MinCost},
		App:      config.AppConfig{PageSize: 2},
	}

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	hasher, err := password.NewHasher(password.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}

	seedUser(t, store, hasher, "admin", presets.RoleAdmin)
	seedUser(t, store, hasher, "editor", presets.RoleEditor)
	seedUser(t, store, hasher, "viewer", presets.RoleViewer)

	sessions := auth.NewManager(cfg.Session.TTL)
	t.Cleanup(sessions.Stop)

	return gvhttp.NewServer(&gvhttp.ServerDependencies{
		Config:   cfg,
		Store:    store,
		Sessions: sessions,
		Checker:  rbac.MustNew(presets.Collection()),
		Hasher:   hasher,
		Audit:    audit.New(io.Discard),
	})
}

func seedUser(t *testing.T, store repository.Store, hasher *password.Hasher, username string, role rbac.Role) {
	t.Helper()
	hash, err := hasher.Hash(testPassword)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if _, err := store.Users().Create(context.Background(), user.CreateUserInput{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}

func doJSON(s *gvhttp.Server, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, s *gvhttp.Server, username string) *http.Cookie {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, testPassword)
	rec := doJSON(s, http.MethodPost, "/login", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login as %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == "gv_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func errorField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not JSON: %s", rec.Body.String())
	}
	msg, _ := body["error"].(string)
	return msg
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}
}

func TestRedirectTargetsAreServed(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodGet, "/login", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /login = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "POST /login") {
		t.Fatalf("GET /login body = %s", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	browserRec := httptest.NewRecorder()
	s.Echo().ServeHTTP(browserRec, req)
	if browserRec.Code != http.StatusSeeOther {
		t.Fatalf("anonymous browser GET / = %d, want 303", browserRec.Code)
	}
	if loc := browserRec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}

	cookie := login(t, s, "viewer")
	rec = doJSON(s, http.MethodGet, "/", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated GET / = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("GET / body = %s", rec.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	s := newTestServer(t)

	cookie := login(t, s, "admin")
	if !cookie.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}

	rec := doJSON(s, http.MethodGet, "/me", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("/me = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"username":"admin"`) {
		t.Fatalf("/me body = %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatal("/me must not expose the password hash")
	}
}

// Wrong password, unknown username and empty credentials must be
// indistinguishable from the outside.
func TestLoginFailuresAreUniform(t *testing.T) {
	s := newTestServer(t)

	cases := []string{
		`{"username":"admin","password":"wrongpassword"}`,
		`{"username":"nosuchuser","password":"wrongpassword"}`,
		`{"username":"","password":""}`,
	}

	var statuses []int
	var messages []string
	for _, body := range cases {
		rec := doJSON(s, http.MethodPost, "/login", body, nil)
		statuses = append(statuses, rec.Code)
		messages = append(messages, errorField(t, rec))
	}

	for i := range cases {
		if statuses[i] != http.StatusUnauthorized {
			t.Errorf("case %d: status = %d, want 401", i, statuses[i])
		}
		if messages[i] != messages[0] {
			t.Errorf("case %d: message %q differs from %q", i, messages[i], messages[0])
		}
	}
}

func TestLoginWhileAuthenticatedRedirects(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s, "viewer")

	rec := doJSON(s, http.MethodPost, "/login", `{"username":"admin","password":"password123"}`, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("Location = %q, want /", loc)
	}
}

func TestAnonymousAccess(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodGet, "/games", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous API request = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	req.Header.Set("Accept", "text/html")
	htmlRec := httptest.NewRecorder()
	s.Echo().ServeHTTP(htmlRec, req)
	if htmlRec.Code != http.StatusSeeOther {
		t.Fatalf("anonymous browser request = %d, want 303", htmlRec.Code)
	}
	if loc := htmlRec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}
}

func TestViewerIsReadOnly(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s, "viewer")

	if rec := doJSON(s, http.MethodGet, "/games", "", cookie); rec.Code != http.StatusOK {
		t.Fatalf("viewer GET /games = %d", rec.Code)
	}
	if rec := doJSON(s, http.MethodPost, "/games", `{}`, cookie); rec.Code != http.StatusForbidden {
		t.Fatalf("viewer POST /games = %d, want 403", rec.Code)
	}
	if rec := doJSON(s, http.MethodDelete, "/games/1", "", cookie); rec.Code != http.StatusForbidden {
		t.Fatalf("viewer DELETE /games/1 = %d, want 403", rec.Code)
	}
	if rec := doJSON(s, http.MethodGet, "/users", "", cookie); rec.Code != http.StatusForbidden {
		t.Fatalf("viewer GET /users = %d, want 403", rec.Code)
	}
}

func TestEditorGameLifecycle(t *testing.T) {
	s := newTestServer(t)
	editorCookie := login(t, s, "editor")

	createBody := `{"title":"Super Mario Kart","release_date":"1992-08-21","manufacturer":"Nintendo","genre":"Racing","platform":"Super Nintendo","score":9,"inventory":1}`
	rec := doJSON(s, http.MethodPost, "/games", createBody, editorCookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil || created.ID == 0 {
		t.Fatalf("create response: %s", rec.Body.String())
	}

	path := fmt.Sprintf("/games/%d", created.ID)

	rec = doJSON(s, http.MethodPut, path, `{"score":10}`, editorCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"score":10`) {
		t.Fatalf("update should return the fresh record: %s", rec.Body.String())
	}

	// Deletion is admin-only.
	if rec := doJSON(s, http.MethodDelete, path, "", editorCookie); rec.Code != http.StatusForbidden {
		t.Fatalf("editor delete = %d, want 403", rec.Code)
	}

	adminCookie := login(t, s, "admin")
	if rec := doJSON(s, http.MethodDelete, path, "", adminCookie); rec.Code != http.StatusOK {
		t.Fatalf("admin delete = %d", rec.Code)
	}
	if rec := doJSON(s, http.MethodGet, path, "", adminCookie); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", rec.Code)
	}
}

func TestGameValidation(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s, "editor")

	rec := doJSON(s, http.MethodPost, "/games", `{"title":"","release_date":"1992","manufacturer":"N","platform":"SNES"}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty title = %d, want 400", rec.Code)
	}

	rec = doJSON(s, http.MethodPost, "/games", `{"title":"Ok","release_date":"1992","manufacturer":"N","platform":"SNES","score":11}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("score 11 = %d, want 400", rec.Code)
	}

	// Unknown fields are rejected, not ignored.
	rec = doJSON(s, http.MethodPost, "/games", `{"title":"Ok","release_date":"1992","manufacturer":"N","platform":"SNES","bogus":true}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field = %d, want 400", rec.Code)
	}

	rec = doJSON(s, http.MethodPut, "/games/1", `{}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty update = %d, want 400", rec.Code)
	}
}

func TestGamePlatformPagination(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s, "editor")

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"title":"Game %d","release_date":"1992","manufacturer":"Nintendo","platform":"Super Nintendo"}`, i)
		if rec := doJSON(s, http.MethodPost, "/games", body, cookie); rec.Code != http.StatusCreated {
			t.Fatalf("seed game %d: %d", i, rec.Code)
		}
	}

	// Page size is 2 in the test config.
	rec := doJSON(s, http.MethodGet, "/games?platform=Super+Nintendo&page=2", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("paginated list = %d", rec.Code)
	}

	var page struct {
		Items      []json.RawMessage `json:"items"`
		Page       int               `json:"page"`
		Total      int               `json:"total"`
		TotalPages int               `json:"total_pages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 || page.Page != 2 || len(page.Items) != 1 {
		t.Fatalf("pagination = %+v", page)
	}
}

func TestConsoleSerialConflict(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s, "editor")

	body := `{"name":"Super Famicom","model":"SHVC-001","release_date":"1990-11-21","manufacturer":"Nintendo","serial_number_console":"SN-001"}`
	if rec := doJSON(s, http.MethodPost, "/consoles", body, cookie); rec.Code != http.StatusCreated {
		t.Fatalf("first create = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(s, http.MethodPost, "/consoles", body, cookie); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate serial = %d, want 409", rec.Code)
	}
}

func TestAdminUserManagement(t *testing.T) {
	s := newTestServer(t)
	adminCookie := login(t, s, "admin")

	rec := doJSON(s, http.MethodPost, "/users", `{"username":"newbie","password":"password123","role":"viewer"}`, adminCookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user = %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil || created.ID == 0 {
		t.Fatalf("create user response: %s", rec.Body.String())
	}

	rec = doJSON(s, http.MethodPost, "/users", `{"username":"newbie","password":"password123","role":"viewer"}`, adminCookie)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username = %d, want 409", rec.Code)
	}

	rec = doJSON(s, http.MethodPost, "/users", `{"username":"badrole","password":"password123","role":"root"}`, adminCookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid role = %d, want 400", rec.Code)
	}

	// The new user's session is revoked when their role changes.
	newbieCookie := login(t, s, "newbie")
	rec = doJSON(s, http.MethodPut, fmt.Sprintf("/users/%d/role", created.ID), `{"role":"editor"}`, adminCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("role change = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(s, http.MethodGet, "/me", "", newbieCookie); rec.Code != http.StatusUnauthorized {
		t.Fatalf("stale session after role change = %d, want 401", rec.Code)
	}

	rec = doJSON(s, http.MethodPut, "/users/1/role", `{"role":"viewer"}`, adminCookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self role change = %d, want 400", rec.Code)
	}
	rec = doJSON(s, http.MethodDelete, "/users/1", "", adminCookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self delete = %d, want 400", rec.Code)
	}

	rec = doJSON(s, http.MethodDelete, fmt.Sprintf("/users/%d", created.ID), "", adminCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete user = %d", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s, "viewer")

	rec := doJSON(s, http.MethodPost, "/logout", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout = %d", rec.Code)
	}

	if rec := doJSON(s, http.MethodGet, "/me", "", cookie); rec.Code != http.StatusUnauthorized {
		t.Fatalf("request after logout = %d, want 401", rec.Code)
	}

	// Idempotent without a session.
	if rec := doJSON(s, http.MethodPost, "/logout", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("logout without session = %d, want 200", rec.Code)
	}
}
