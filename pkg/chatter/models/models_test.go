package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return db
}

func TestAutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	err := AutoMigrate(db)
	if err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	// Verify tables exist by checking if we can query them
	tables := []string{"users", "groups", "group_memberships", "messages"}
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestUserModel(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	user := User{
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
	}

	result := db.Create(&user)
	if result.Error != nil {
		t.Fatalf("Failed to create user: %v", result.Error)
	}

	if user.ID == 0 {
		t.Error("Expected user ID to be set after create")
	}

	if user.IsAdmin {
		t.Error("Expected new user to be non-admin by default")
	}

	// Test unique email constraint
	user2 := User{
		Name:         "Another User",
		Email:        "test@example.com",
		PasswordHash: "another_hash",
	}
	result = db.Create(&user2)
	if result.Error == nil {
		t.Error("Expected error when creating user with duplicate email")
	}
}

func TestGroupAndMembership(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	owner := User{Name: "Owner", Email: "owner@example.com", PasswordHash: "hash"}
	db.Create(&owner)
	member := User{Name: "Member", Email: "member@example.com", PasswordHash: "hash"}
	db.Create(&member)

	group := Group{Name: "Test Group", OwnerID: owner.ID}
	db.Create(&group)

	membership := GroupMembership{GroupID: group.ID, UserID: member.ID}
	result := db.Create(&membership)
	if result.Error != nil {
		t.Fatalf("Failed to create membership: %v", result.Error)
	}

	// Verify relationship
	var loadedGroup Group
	db.Preload("Members").Preload("Owner").First(&loadedGroup, group.ID)
	if len(loadedGroup.Members) != 1 {
		t.Errorf("Expected 1 membership, got %d", len(loadedGroup.Members))
	}
	if loadedGroup.Owner.Email != "owner@example.com" {
		t.Errorf("Expected owner email owner@example.com, got %s", loadedGroup.Owner.Email)
	}
}

func TestMembershipPairUniqueness(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	user := User{Name: "Test", Email: "test@example.com", PasswordHash: "hash"}
	db.Create(&user)
	group := Group{Name: "Test Group", OwnerID: user.ID}
	db.Create(&group)

	first := GroupMembership{GroupID: group.ID, UserID: user.ID}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("Failed to create membership: %v", err)
	}

	duplicate := GroupMembership{GroupID: group.ID, UserID: user.ID}
	if err := db.Create(&duplicate).Error; err == nil {
		t.Error("Expected error when creating duplicate membership pair")
	}
}

func TestMessageModel(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	user := User{Name: "Author", Email: "author@example.com", PasswordHash: "hash"}
	db.Create(&user)
	group := Group{Name: "Test Group", OwnerID: user.ID}
	db.Create(&group)

	message := Message{
		GroupID: group.ID,
		UserID:  user.ID,
		Content: "hello world",
	}
	result := db.Create(&message)
	if result.Error != nil {
		t.Fatalf("Failed to create message: %v", result.Error)
	}

	if message.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set on create")
	}

	var loadedMessage Message
	db.Preload("Author").First(&loadedMessage, message.ID)
	if loadedMessage.Author.Email != "author@example.com" {
		t.Errorf("Expected author email author@example.com, got %s", loadedMessage.Author.Email)
	}
}
