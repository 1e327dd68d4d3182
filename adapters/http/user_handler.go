package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	userUC "github.com/khoahotran/rentredi/internal/application/usecase/user"
	"github.com/khoahotran/rentredi/pkg/apperror"
	"github.com/khoahotran/rentredi/pkg/logger"
)

type UserHandler struct {
	createUserUseCase *userUC.CreateUserUseCase
	listUsersUseCase  *userUC.ListUsersUseCase
	getUserUseCase    *userUC.GetUserUseCase
	updateUserUseCase *userUC.UpdateUserUseCase
	deleteUserUseCase *userUC.DeleteUserUseCase
	logger            logger.Logger
}

func NewUserHandler(
	createUC *userUC.CreateUserUseCase,
	listUC *userUC.ListUsersUseCase,
	getUC *userUC.GetUserUseCase,
	updateUC *userUC.UpdateUserUseCase,
	deleteUC *userUC.DeleteUserUseCase,
	log logger.Logger,
) *UserHandler {
	return &UserHandler{
		createUserUseCase: createUC,
		listUsersUseCase:  listUC,
		getUserUseCase:    getUC,
		updateUserUseCase: updateUC,
		deleteUserUseCase: deleteUC,
		logger:            log,
	}
}

// bindJSON decodes the body into obj. An empty body leaves obj untouched.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return apperror.NewInvalidInput("invalid request data", err)
	}
	return nil
}

func userNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: msgUserNotFound})
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	output, err := h.createUserUseCase.Execute(c.Request.Context(), userUC.CreateUserInput{
		Name:    req.Name,
		ZipCode: string(req.ZipCode),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, output.User)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	output, err := h.listUsersUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.Users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	output, err := h.getUserUseCase.Execute(c.Request.Context(), userUC.GetUserInput{UserID: c.Param("id")})
	if err != nil {
		c.Error(err)
		return
	}
	if !output.Found {
		userNotFound(c)
		return
	}
	c.JSON(http.StatusOK, output.User)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	output, err := h.updateUserUseCase.Execute(c.Request.Context(), userUC.UpdateUserInput{
		UserID:  c.Param("id"),
		Name:    req.Name,
		ZipCode: string(req.ZipCode),
	})
	if err != nil {
		c.Error(err)
		return
	}
	if !output.Found {
		userNotFound(c)
		return
	}
	c.JSON(http.StatusOK, output.User)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")
	output, err := h.deleteUserUseCase.Execute(c.Request.Context(), userUC.DeleteUserInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	if !output.Deleted {
		h.logger.Debug("Delete of unknown user", zap.String("user_id", userID))
		userNotFound(c)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: msgUserDeleted})
}
