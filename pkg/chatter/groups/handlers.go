package groups

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/chatter/pkg/chatter/auth"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"github.com/mikepea/chatter/pkg/chatter/policy"
	"gorm.io/gorm"
)

// Handler handles group-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=128"`
}

// OwnerResponse represents a group's owner in API responses
type OwnerResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID      uint           `json:"id"`
	Name    string         `json:"name"`
	OwnerID uint           `json:"owner_id"`
	Owner   *OwnerResponse `json:"owner,omitempty"`
}

// List returns the groups the current user owns; admins see every group
// @Summary List owned groups
// @Description Get the groups owned by the current user (all groups for an admin)
// @Tags groups
// @Produce json
// @Success 200 {array} GroupResponse
// @Security BearerAuth
// @Router /groups [get]
func (h *Handler) List(c *gin.Context) {
	identity, _ := auth.CurrentIdentity(c)

	query := h.db.Preload("Owner").Order("id ASC")
	if ownerID, all := policy.OwnedGroupsScope(identity); !all {
		query = query.Where("owner_id = ?", ownerID)
	}

	var groups []models.Group
	if err := query.Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	responses := make([]GroupResponse, len(groups))
	for i, group := range groups {
		responses[i] = GroupResponse{
			ID:      group.ID,
			Name:    group.Name,
			OwnerID: group.OwnerID,
			Owner: &OwnerResponse{
				ID:    group.Owner.ID,
				Name:  group.Owner.Name,
				Email: group.Owner.Email,
			},
		}
	}

	c.JSON(http.StatusOK, responses)
}

// Create creates a new group owned by the current user
// @Summary Create a group
// @Description Create a new group with the current user as owner
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group details"
// @Success 201 {object} GroupResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /groups [post]
func (h *Handler) Create(c *gin.Context) {
	identity, _ := auth.CurrentIdentity(c)

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !policy.CanCreateGroup(identity) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	group := models.Group{
		Name:    req.Name,
		OwnerID: identity.ID,
	}
	if err := h.db.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, GroupResponse{
		ID:      group.ID,
		Name:    group.Name,
		OwnerID: group.OwnerID,
	})
}

// Delete deletes a group with its memberships and messages (owner or admin)
// @Summary Delete a group
// @Description Delete a group; cascades to memberships and messages (owner or admin)
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]string "Group deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
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
	if !policy.CanDeleteGroup(identity, policy.Group{ID: group.ID, OwnerID: group.OwnerID}) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}

// ListMemberGroups returns the groups the current user is a member of.
// Always self-scoped: admins see their own memberships only.
// @Summary List member groups
// @Description Get the groups the current user is a member of
// @Tags groups
// @Produce json
// @Success 200 {array} GroupResponse
// @Security BearerAuth
// @Router /groups/memberships [get]
func (h *Handler) ListMemberGroups(c *gin.Context) {
	identity, _ := auth.CurrentIdentity(c)
	if !policy.CanListMemberGroups(identity) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var memberships []models.GroupMembership
	if err := h.db.Preload("Group").
		Where("user_id = ?", policy.MemberGroupsScope(identity)).
		Order("id ASC").Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	responses := make([]GroupResponse, len(memberships))
	for i, m := range memberships {
		responses[i] = GroupResponse{
			ID:      m.Group.ID,
			Name:    m.Group.Name,
			OwnerID: m.Group.OwnerID,
		}
	}

	c.JSON(http.StatusOK, responses)
}

// isMember reports whether a membership row exists for the pair
func (h *Handler) isMember(groupID, userID uint) bool {
	var count int64
	h.db.Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).Count(&count)
	return count > 0
}

// RegisterRoutes registers group routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/memberships", h.ListMemberGroups)
	rg.DELETE("/:id", h.Delete)
}
