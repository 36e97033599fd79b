package messages

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/chatter/pkg/chatter/auth"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"github.com/mikepea/chatter/pkg/chatter/policy"
	"gorm.io/gorm"
)

// Handler handles message-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new messages handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateMessageRequest represents the request to post a message
type CreateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// AuthorResponse represents a message author in API responses
type AuthorResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID        uint           `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	Author    AuthorResponse `json:"author"`
}

// List returns all messages of a group, oldest first (owner, admin or member)
// @Summary List group messages
// @Description Get all messages posted to a group, oldest first
// @Tags messages
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} MessageResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/messages [get]
func (h *Handler) List(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := h.db.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	if !policy.CanAccessGroupMessages(identity, policy.Group{ID: group.ID, OwnerID: group.OwnerID},
		h.isMember(group.ID, identity.ID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var msgs []models.Message
	if err := h.db.Preload("Author").Where("group_id = ?", group.ID).
		Order("created_at ASC").Find(&msgs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	responses := make([]MessageResponse, len(msgs))
	for i, msg := range msgs {
		responses[i] = MessageResponse{
			ID:        msg.ID,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
			Author: AuthorResponse{
				ID:    msg.Author.ID,
				Name:  msg.Author.Name,
				Email: msg.Author.Email,
			},
		}
	}

	c.JSON(http.StatusOK, responses)
}

// Create posts a message to a group (owner, admin or member)
// @Summary Post a message
// @Description Post a message to a group; content is trimmed and must be non-empty
// @Tags messages
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param request body CreateMessageRequest true "Message content"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} map[string]string "Empty content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id}/messages [post]
func (h *Handler) Create(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must specify the content"})
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must specify the content"})
		return
	}

	var group models.Group
	if err := h.db.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	identity, _ := auth.CurrentIdentity(c)
	if !policy.CanAccessGroupMessages(identity, policy.Group{ID: group.ID, OwnerID: group.OwnerID},
		h.isMember(group.ID, identity.ID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	msg := models.Message{
		GroupID: group.ID,
		UserID:  identity.ID,
		Content: content,
	}
	if err := h.db.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add message"})
		return
	}

	var user models.User
	h.db.First(&user, identity.ID)

	c.JSON(http.StatusCreated, MessageResponse{
		ID:        msg.ID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
		Author: AuthorResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

// isMember reports whether a membership row exists for the pair
func (h *Handler) isMember(groupID, userID uint) bool {
	var count int64
	h.db.Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).Count(&count)
	return count > 0
}

// RegisterRoutes registers message routes on the groups router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/messages", h.List)
	rg.POST("/:id/messages", h.Create)
}
