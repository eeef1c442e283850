package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yamdb/yamdb-server/internal/api/dto"
	"github.com/yamdb/yamdb-server/internal/service"
	"github.com/yamdb/yamdb-server/internal/store"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Lists users ordered by id. Administrators only.",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Create user",
		Description:   "Creates a user. Administrators only.",
		Tags:          []string{"Users"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get own profile",
		Description: "Returns the authenticated user",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleGetMe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCurrentUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Update own profile",
		Description: "Updates the authenticated user. Only administrators may change their role.",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleUpdateMe)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{username}",
		Summary:     "Get user",
		Description: "Returns a user by username. Administrators only.",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{username}",
		Summary:     "Update user",
		Description: "Partially updates a user. Administrators only.",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteUser",
		Method:        http.MethodDelete,
		Path:          "/api/v1/users/{username}",
		Summary:       "Delete user",
		Description:   "Deletes a user with their reviews and comments. Administrators only.",
		Tags:          []string{"Users"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteUser)
}

// === DTOs ===

type ListUsersInput struct {
	Authorization string `header:"Authorization"`
	Search        string `query:"search" doc:"Username substring"`
	dto.PaginationParams
}

type ListUsersOutput struct {
	Body dto.ListResponse[dto.User]
}

type CreateUserInput struct {
	Authorization string `header:"Authorization"`
	Body          dto.CreateUserRequest
}

type UserOutput struct {
	Body dto.User
}

type MeInput struct {
	Authorization string `header:"Authorization"`
}

type UpdateMeInput struct {
	Authorization string `header:"Authorization"`
	Body          dto.UpdateUserRequest
}

type UserPathInput struct {
	Authorization string `header:"Authorization"`
	Username      string `path:"username" doc:"Username"`
}

type UpdateUserInput struct {
	Authorization string `header:"Authorization"`
	Username      string `path:"username" doc:"Username"`
	Body          dto.UpdateUserRequest
}

// NoContentOutput is returned by deletes.
type NoContentOutput struct{}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	users, err := s.services.Users.List(ctx, actor, store.UserFilter{Search: input.Search}, input.Page())
	if err != nil {
		return nil, err
	}

	return &ListUsersOutput{Body: dto.NewList(users, dto.NewUser)}, nil
}

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	u, err := s.services.Users.Create(ctx, actor, service.CreateUserRequest{
		Username:  input.Body.Username,
		Email:     input.Body.Email,
		Role:      input.Body.Role,
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
		Bio:       input.Body.Bio,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: dto.NewUser(u)}, nil
}

func (s *Server) handleGetMe(ctx context.Context, input *MeInput) (*UserOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	u, err := s.services.Users.Me(ctx, actor)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: dto.NewUser(u)}, nil
}

func (s *Server) handleUpdateMe(ctx context.Context, input *UpdateMeInput) (*UserOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	u, err := s.services.Users.UpdateMe(ctx, actor, updateUserRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: dto.NewUser(u)}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserPathInput) (*UserOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	u, err := s.services.Users.Get(ctx, actor, input.Username)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: dto.NewUser(u)}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	u, err := s.services.Users.Update(ctx, actor, input.Username, updateUserRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: dto.NewUser(u)}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *UserPathInput) (*NoContentOutput, error) {
	actor, err := s.resolveActor(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Users.Delete(ctx, actor, input.Username); err != nil {
		return nil, err
	}

	return &NoContentOutput{}, nil
}

func updateUserRequest(body dto.UpdateUserRequest) service.UpdateUserRequest {
	return service.UpdateUserRequest{
		Username:  body.Username,
		Email:     body.Email,
		Role:      body.Role,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Bio:       body.Bio,
	}
}
