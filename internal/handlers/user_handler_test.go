package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnuragSingh2101/backend/internal/middleware"
	"github.com/AnuragSingh2101/backend/internal/models"
)

func newUserFixture() (*UserHandler, *fakeUserRepo, *fakeVideoRepo, *fakeMediaService) {
	users := newFakeUserRepo()
	videos := newFakeVideoRepo()
	mediaSvc := &fakeMediaService{}
	h := NewUserHandler(users, videos, mediaSvc, "test-secret", "1h")
	return h, users, videos, mediaSvc
}

func seedUser(t *testing.T, users *fakeUserRepo, username, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := &models.User{
		Username: username,
		Email:    email,
		FullName: "Test User",
		Password: string(hash),
	}
	if err := users.CreateUser(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatal(err)
		}
	}
	for field, filename := range files {
		fw, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte("file-content")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestRegister(t *testing.T) {
	h, users, _, mediaSvc := newUserFixture()
	e := testEcho()

	req := multipartRequest(t, map[string]string{
		"fullName": "New User",
		"email":    "new@example.com",
		"username": "NewUser",
		"password": "password123",
	}, map[string]string{"avatar": "avatar.png"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if len(users.users) != 1 {
		t.Fatalf("got %d users, want 1", len(users.users))
	}
	for _, u := range users.users {
		if u.Username != "newuser" {
			t.Errorf("username = %q, want lowercased %q", u.Username, "newuser")
		}
		if u.Avatar == "" {
			t.Error("avatar URL was not set")
		}
		if u.Password == "password123" {
			t.Error("password was stored in plain text")
		}
	}
	if mediaSvc.uploads != 1 {
		t.Errorf("uploads = %d, want 1", mediaSvc.uploads)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	h, _, _, _ := newUserFixture()
	e := testEcho()

	req := multipartRequest(t, map[string]string{
		"fullName": "No Email",
		"username": "noemail",
		"password": "password123",
	}, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	if err == nil {
		t.Fatal("expected an error for missing fields")
	}
	if got := statusOfError(t, err); got != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h, users, _, _ := newUserFixture()
	seedUser(t, users, "taken", "taken@example.com", "password123")
	e := testEcho()

	req := multipartRequest(t, map[string]string{
		"fullName": "Copy Cat",
		"email":    "taken@example.com",
		"username": "copycat",
		"password": "password123",
	}, map[string]string{"avatar": "avatar.png"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	if err == nil {
		t.Fatal("expected a conflict error")
	}
	if got := statusOfError(t, err); got != http.StatusConflict {
		t.Errorf("status = %d, want %d", got, http.StatusConflict)
	}
}

func TestLogin(t *testing.T) {
	h, users, _, _ := newUserFixture()
	seedUser(t, users, "loginuser", "login@example.com", "password123")
	e := testEcho()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"by email", `{"email":"login@example.com","password":"password123"}`, http.StatusOK},
		{"by username", `{"username":"loginuser","password":"password123"}`, http.StatusOK},
		{"wrong password", `{"email":"login@example.com","password":"wrongpass1"}`, http.StatusUnauthorized},
		{"unknown user", `{"email":"ghost@example.com","password":"password123"}`, http.StatusNotFound},
		{"no identifier", `{"password":"password123"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(e, http.MethodPost, "/", tt.body, nil)
			err := h.Login(c)

			if tt.wantStatus == http.StatusOK {
				if err != nil {
					t.Fatalf("Login failed: %v", err)
				}
				cookieFound := false
				for _, cookie := range rec.Result().Cookies() {
					if cookie.Name == middleware.AccessTokenCookie && cookie.Value != "" {
						cookieFound = true
						if !cookie.HttpOnly {
							t.Error("session cookie is not HttpOnly")
						}
					}
				}
				if !cookieFound {
					t.Error("session cookie was not set")
				}
				resp := decodeResponse(t, rec)
				data := resp.Data.(map[string]interface{})
				if data["accessToken"] == "" {
					t.Error("accessToken missing from response body")
				}
				return
			}

			if err == nil {
				t.Fatal("expected an error")
			}
			if got := statusOfError(t, err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h, users, _, _ := newUserFixture()
	user := seedUser(t, users, "leaver", "leaver@example.com", "password123")

	c, rec := newTestContext(testEcho(), http.MethodPost, "/", "", &user.ID)
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.AccessTokenCookie && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie was not cleared")
	}
}

func TestCurrentUser(t *testing.T) {
	h, users, _, _ := newUserFixture()
	user := seedUser(t, users, "me", "me@example.com", "password123")

	c, rec := newTestContext(testEcho(), http.MethodGet, "/", "", &user.ID)
	if err := h.CurrentUser(c); err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["username"] != "me" {
		t.Errorf("username = %v, want %q", data["username"], "me")
	}
	if _, leaked := data["password"]; leaked {
		t.Error("password hash leaked into the response")
	}
}

func TestWatchHistory(t *testing.T) {
	h, users, videos, _ := newUserFixture()
	ctx := context.Background()
	user := seedUser(t, users, "binger", "binge@example.com", "password123")

	video := &models.Video{Title: "seen", Owner: primitive.NewObjectID(), IsPublished: true}
	if err := videos.CreateVideo(ctx, video); err != nil {
		t.Fatal(err)
	}
	if err := users.AddVideoToWatchHistory(ctx, user.ID, video.ID); err != nil {
		t.Fatal(err)
	}

	c, rec := newTestContext(testEcho(), http.MethodGet, "/", "", &user.ID)
	if err := h.WatchHistory(c); err != nil {
		t.Fatalf("WatchHistory failed: %v", err)
	}

	resp := decodeResponse(t, rec)
	list := resp.Data.([]interface{})
	if len(list) != 1 {
		t.Fatalf("got %d videos, want 1", len(list))
	}
}
