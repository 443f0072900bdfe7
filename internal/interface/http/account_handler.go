package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/internal/application"
	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/pkg/response"
)

type AccountHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.Service, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type accountResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAccountResponse(a entity.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAccountList(accounts []entity.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out
}

type createdResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type searchQuery struct {
	Name string `form:"name"`
}

// List GET /api/users
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err, "Failed to fetch users")
		return
	}
	response.Success(c, http.StatusOK, toAccountList(accounts))
}

// Create POST /api/users {name, email, password}
func (h *AccountHandler) Create(c *gin.Context) {
	id, err := h.Svc.Create(c.Request.Context(), bindPayload(c, h.Logger))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to create user")
		return
	}
	accountsCreated.Add(1)
	response.Success(c, http.StatusCreated, createdResponse{ID: id, Message: "User created successfully"})
}

// Get GET /api/users/:id
func (h *AccountHandler) Get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to fetch user")
		return
	}
	response.Success(c, http.StatusOK, toAccountResponse(*a))
}

// Update PUT /api/users/:id {name, email}
func (h *AccountHandler) Update(c *gin.Context) {
	if err := h.Svc.Update(c.Request.Context(), c.Param("id"), bindPayload(c, h.Logger)); err != nil {
		respondError(c, h.Logger, err, "Failed to update user")
		return
	}
	response.Success(c, http.StatusOK, messageResponse{Message: "User updated successfully"})
}

// Delete DELETE /api/users/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err, "Failed to delete user")
		return
	}
	accountsDeleted.Add(1)
	response.Success(c, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// Search GET /api/users/search?name=
func (h *AccountHandler) Search(c *gin.Context) {
	var q searchQuery
	_ = c.ShouldBindQuery(&q)
	accounts, err := h.Svc.Search(c.Request.Context(), q.Name)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to search users")
		return
	}
	response.Success(c, http.StatusOK, toAccountList(accounts))
}
