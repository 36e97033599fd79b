package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/chatter/pkg/chatter/auth"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if err := auth.RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators failed: %v", err)
	}
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/users", auth.AuthMiddleware(db)))
	return r
}

func createUser(t *testing.T, db *gorm.DB, name, email string, isAdmin bool) (models.User, string) {
	hash, err := auth.HashPassword("Str0ngP@ss!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	user := models.User{Name: name, Email: email, PasswordHash: hash, IsAdmin: isAdmin}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	return user, token
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		buf = bytes.NewBuffer(jsonBody)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestListUsersAnyAuthenticated(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	createUser(t, db, "Admin", "admin@example.com", true)
	_, token := createUser(t, db, "Plain", "plain@example.com", false)

	resp := doRequest(t, router, "GET", "/users", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var users []UserResponse
	json.Unmarshal(resp.Body.Bytes(), &users)
	if len(users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(users))
	}
}

func TestListUsersUnauthenticated(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	resp := doRequest(t, router, "GET", "/users", nil, "")
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestUpdateUserAsAdmin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	_, adminToken := createUser(t, db, "Admin", "admin@example.com", true)
	target, _ := createUser(t, db, "Target", "target@example.com", false)

	name := "Renamed"
	promote := true
	resp := doRequest(t, router, "PUT", fmt.Sprintf("/users/%d", target.ID), UpdateUserRequest{
		Name:    &name,
		IsAdmin: &promote,
	}, adminToken)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated models.User
	db.First(&updated, target.ID)
	if updated.Name != "Renamed" {
		t.Errorf("Expected name Renamed, got %s", updated.Name)
	}
	if !updated.IsAdmin {
		t.Error("Expected user to be promoted to admin")
	}
}

func TestUpdateUserPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	_, adminToken := createUser(t, db, "Admin", "admin@example.com", true)
	target, _ := createUser(t, db, "Target", "target@example.com", false)

	password := "N3wP@ssw0rd!"
	resp := doRequest(t, router, "PUT", fmt.Sprintf("/users/%d", target.ID), UpdateUserRequest{
		Password: &password,
	}, adminToken)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated models.User
	db.First(&updated, target.ID)
	if !auth.CheckPassword("N3wP@ssw0rd!", updated.PasswordHash) {
		t.Error("Expected new password to verify against stored hash")
	}
	if auth.CheckPassword("Str0ngP@ss!", updated.PasswordHash) {
		t.Error("Expected old password to stop verifying")
	}
}

func TestUpdateUserWeakPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	_, adminToken := createUser(t, db, "Admin", "admin@example.com", true)
	target, _ := createUser(t, db, "Target", "target@example.com", false)

	password := "weak"
	resp := doRequest(t, router, "PUT", fmt.Sprintf("/users/%d", target.ID), UpdateUserRequest{
		Password: &password,
	}, adminToken)

	// Admin-driven password changes run through the same strength gate
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}
}

func TestUpdateUserEmptyBody(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	_, adminToken := createUser(t, db, "Admin", "admin@example.com", true)
	target, _ := createUser(t, db, "Target", "target@example.com", false)

	resp := doRequest(t, router, "PUT", fmt.Sprintf("/users/%d", target.ID), UpdateUserRequest{}, adminToken)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	_, adminToken := createUser(t, db, "Admin", "admin@example.com", true)
	target, _ := createUser(t, db, "Target", "target@example.com", false)

	email := "admin@example.com"
	resp := doRequest(t, router, "PUT", fmt.Sprintf("/users/%d", target.ID), UpdateUserRequest{
		Email: &email,
	}, adminToken)

	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", resp.Code)
	}
}

func TestUpdateUserAsNonAdmin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	user, token := createUser(t, db, "Plain", "plain@example.com", false)
	other, _ := createUser(t, db, "Other", "other@example.com", false)

	name := "Hacked"
	resp := doRequest(t, router, "PUT", fmt.Sprintf("/users/%d", other.ID), UpdateUserRequest{Name: &name}, token)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", resp.Code)
	}

	// Not even on themselves: self-service is limited to the password endpoint
	resp = doRequest(t, router, "PUT", fmt.Sprintf("/users/%d", user.ID), UpdateUserRequest{Name: &name}, token)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for self-update, got %d", resp.Code)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	_, adminToken := createUser(t, db, "Admin", "admin@example.com", true)

	name := "Ghost"
	resp := doRequest(t, router, "PUT", "/users/9999", UpdateUserRequest{Name: &name}, adminToken)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	_, adminToken := createUser(t, db, "Admin", "admin@example.com", true)
	target, _ := createUser(t, db, "Target", "target@example.com", false)
	member, _ := createUser(t, db, "Member", "member@example.com", false)

	group := models.Group{Name: "Target's Group", OwnerID: target.ID}
	db.Create(&group)
	db.Create(&models.GroupMembership{GroupID: group.ID, UserID: member.ID})
	db.Create(&models.Message{GroupID: group.ID, UserID: member.ID, Content: "hello"})

	resp := doRequest(t, router, "DELETE", fmt.Sprintf("/users/%d", target.ID), nil, adminToken)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var userCount, groupCount, membershipCount, messageCount int64
	db.Model(&models.User{}).Where("id = ?", target.ID).Count(&userCount)
	db.Model(&models.Group{}).Where("id = ?", group.ID).Count(&groupCount)
	db.Model(&models.GroupMembership{}).Where("group_id = ?", group.ID).Count(&membershipCount)
	db.Model(&models.Message{}).Where("group_id = ?", group.ID).Count(&messageCount)

	if userCount != 0 || groupCount != 0 || membershipCount != 0 || messageCount != 0 {
		t.Errorf("Expected cascade delete, got user=%d group=%d membership=%d message=%d",
			userCount, groupCount, membershipCount, messageCount)
	}
}

func TestDeleteUserAsNonAdmin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	_, token := createUser(t, db, "Plain", "plain@example.com", false)
	other, _ := createUser(t, db, "Other", "other@example.com", false)

	resp := doRequest(t, router, "DELETE", fmt.Sprintf("/users/%d", other.ID), nil, token)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", resp.Code)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	_, adminToken := createUser(t, db, "Admin", "admin@example.com", true)

	resp := doRequest(t, router, "DELETE", "/users/9999", nil, adminToken)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}
