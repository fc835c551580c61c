package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

type registeredUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterUser handles POST /api/v1/user/register.
func (s *Server) RegisterUser(c echo.Context) error {
	var req registerUserRequest
	if err := s.validator.Bind(c, "RegisterUserRequest", &req, false); err != nil {
		return err
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(userID, user.Profile{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}, req.Password)
	if err != nil {
		return err
	}
	if err = s.handlers.RegisterUser.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "User created successfully", registeredUserResponse{
		ID:    userID.String(),
		Name:  req.Name,
		Email: user.NormalizeEmail(req.Email),
	})
}

// ListUsers handles GET /api/v1/user/all-users.
func (s *Server) ListUsers(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	q, err := queries.NewListUsersQuery(id, c.QueryParams())
	if err != nil {
		return err
	}
	res, err := s.handlers.ListUsers.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	items := make([]userResponse, len(res.Data))
	for i, v := range res.Data {
		items[i] = newUserResponse(v)
	}
	data, err := project(items, res.Fields)
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "All users retrieved successfully", res.Meta, data)
}

// UpdateUser handles PATCH /api/v1/user/:userId.
func (s *Server) UpdateUser(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err = s.validator.Bind(c, "UpdateUserRequest", &req, false); err != nil {
		return err
	}
	patch, err := req.patch()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateUserCommand(userID, id, patch, req.Password)
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateUser.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User updated successfully", nil)
}
