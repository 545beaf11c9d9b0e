package content

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/helpinghands/ngo-backend/auth"
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/internal"
	"go.vocdoni.io/dvote/log"
)

// UserInfo is the external shape of an admin account, without the password.
type UserInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRequest contains the fields to create an admin account.
type UserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,mail"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserUpdateRequest contains the fields to update an admin account. The
// password is only changed if provided.
type UserUpdateRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,mail"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type UsersResult struct {
	Result
	Users []UserInfo `json:"users"`
}

type UserResult struct {
	Result
	User *UserInfo `json:"user,omitempty"`
}

func userInfo(u *db.User) *UserInfo {
	return &UserInfo{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// ListUsers returns every admin account.
func (s *Service) ListUsers() UsersResult {
	users, err := s.db.Users()
	if err != nil {
		return UsersResult{Result: storageFailure("cannot list users", err)}
	}
	infos := make([]UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, *userInfo(&users[i]))
	}
	return UsersResult{Result: succeed(""), Users: infos}
}

// UserByID returns the admin account with the given id.
func (s *Service) UserByID(id string) UserResult {
	user, err := s.db.User(id)
	if err != nil {
		return UserResult{Result: storageFailure("cannot get user", err)}
	}
	return UserResult{Result: succeed(""), User: userInfo(user)}
}

// CreateUser registers a new admin account. The email must not be in use.
func (s *Service) CreateUser(req UserRequest) UserResult {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = internal.NormalizeEmail(req.Email)
	if e := s.validate(&req); e != nil {
		return UserResult{Result: fail(*e)}
	}
	if _, err := s.db.UserByEmail(req.Email); err == nil {
		return UserResult{Result: fail(errors.ErrConflict)}
	} else if !stderrors.Is(err, db.ErrNotFound) {
		return UserResult{Result: storageFailure("cannot check user email", err)}
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Errorw(err, "cannot hash password")
		return UserResult{Result: fail(errors.ErrGenericInternalServerError)}
	}
	user := &db.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	}
	if _, err := s.db.SetUser(user); err != nil {
		return UserResult{Result: storageFailure("cannot create user", err)}
	}
	log.Infow("admin user created", "user", user.ID.Hex())
	return UserResult{Result: succeed("user created"), User: userInfo(user)}
}

// UpdateUser changes the name and email of an admin account and, if
// provided, its password.
func (s *Service) UpdateUser(id string, req UserUpdateRequest) UserResult {
	if e := requireID(id); e != nil {
		return UserResult{Result: fail(*e)}
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = internal.NormalizeEmail(req.Email)
	if e := s.validate(&req); e != nil {
		return UserResult{Result: fail(*e)}
	}
	user, err := s.db.User(id)
	if err != nil {
		return UserResult{Result: storageFailure("cannot get user", err)}
	}
	if req.Email != user.Email {
		if other, err := s.db.UserByEmail(req.Email); err == nil && other.ID != user.ID {
			return UserResult{Result: fail(errors.ErrConflict)}
		} else if err != nil && !stderrors.Is(err, db.ErrNotFound) {
			return UserResult{Result: storageFailure("cannot check user email", err)}
		}
	}
	user.Name = req.Name
	user.Email = req.Email
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			log.Errorw(err, "cannot hash password")
			return UserResult{Result: fail(errors.ErrGenericInternalServerError)}
		}
		user.Password = hash
	}
	if _, err := s.db.SetUser(user); err != nil {
		return UserResult{Result: storageFailure("cannot update user", err)}
	}
	return UserResult{Result: succeed("user updated"), User: userInfo(user)}
}

// DeleteUser removes the admin account with the given id.
func (s *Service) DeleteUser(id string) Result {
	if e := requireID(id); e != nil {
		return fail(*e)
	}
	if err := s.db.DelUser(id); err != nil {
		return storageFailure("cannot delete user", err)
	}
	log.Infow("admin user deleted", "user", id)
	return succeed("user deleted")
}
