package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

type RegisterInput struct {
	Firstname    string          `json:"firstname"`
	Lastname     string          `json:"lastname"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	MobileNumber string          `json:"mobile_number"`
	Password     string          `json:"password"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	Country      string          `json:"country"`
	ZipCode      string          `json:"zip_code"`
	Role         domain.UserRole `json:"role"`
}

// UpdateProfileInput carries the editable profile fields. Nil fields keep
// their current value.
type UpdateProfileInput struct {
	Email        *string `json:"email"`
	MobileNumber *string `json:"mobile_number"`
	Address      *string `json:"address"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

var userUniqueFields = map[string]string{
	"users_email_unique":         "email",
	"users_username_unique":      "username",
	"users_mobile_number_unique": "mobile_number",
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	logger.EnterMethod(ctx, "userService.Register", "username", in.Username, "role", in.Role)

	if err := validateRegistration(&in); err != nil {
		logger.ExitMethodWithError(ctx, "userService.Register", err, "reason", "validation")
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ExitMethodWithError(ctx, "userService.Register", err)
		return nil, err
	}

	user := &domain.User{
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Username:     in.Username,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		Country:      in.Country,
		ZipCode:      in.ZipCode,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		err = takenField(err)
		logger.ExitMethodWithError(ctx, "userService.Register", err)
		return nil, err
	}

	logger.ExitMethod(ctx, "userService.Register", "userID", user.ID)
	return user, nil
}

func validateRegistration(in *RegisterInput) error {
	v := &ValidationError{}

	in.Firstname = strings.TrimSpace(in.Firstname)
	in.Lastname = strings.TrimSpace(in.Lastname)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)
	in.Address = strings.TrimSpace(in.Address)

	checkVar(v, "firstname", in.Firstname, "required,alpha", "first name is required and may contain letters only")
	checkVar(v, "lastname", in.Lastname, "omitempty,alpha", "last name may contain letters only")
	checkVar(v, "username", in.Username, "required", "username is required")
	checkVar(v, "email", in.Email, "required,email", "a valid email is required")
	checkVar(v, "mobile_number", in.MobileNumber, "required,numeric,len=10", "mobile number must be 10 digits")
	checkVar(v, "address", in.Address, "required", "address is required")
	checkVar(v, "city", in.City, "omitempty,alpha", "city may contain letters only")
	checkVar(v, "state", in.State, "omitempty,alpha", "state may contain letters only")
	checkVar(v, "country", in.Country, "omitempty,alpha", "country may contain letters only")
	checkVar(v, "zip_code", in.ZipCode, "omitempty,numeric", "zip code must be numeric")
	checkPassword(v, "password", in.Password)
	if !in.Role.IsValid() {
		v.Add("role", "role must be owner, tenant or buyer")
	}
	return v.OrNil()
}

// takenField reports a duplicate email, username or mobile number as a
// validation error on that field.
func takenField(err error) error {
	if field, ok := uniqueField(err, userUniqueFields); ok {
		return fieldError(field, strings.ReplaceAll(field, "_", " ")+" is already registered")
	}
	return err
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound("user", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, in UpdateProfileInput) (*domain.User, error) {
	logger.EnterMethod(ctx, "userService.UpdateProfile", "userID", userID)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		err = notFound("user", err)
		logger.ExitMethodWithError(ctx, "userService.UpdateProfile", err)
		return nil, err
	}

	v := &ValidationError{}
	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
		checkVar(v, "email", user.Email, "required,email", "a valid email is required")
	}
	if in.MobileNumber != nil {
		user.MobileNumber = strings.TrimSpace(*in.MobileNumber)
		checkVar(v, "mobile_number", user.MobileNumber, "required,numeric,len=10", "mobile number must be 10 digits")
	}
	if in.Address != nil {
		user.Address = strings.TrimSpace(*in.Address)
		checkVar(v, "address", user.Address, "required", "address cannot be empty")
	}
	if err := v.OrNil(); err != nil {
		logger.ExitMethodWithError(ctx, "userService.UpdateProfile", err, "reason", "validation")
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		err = takenField(notFound("user", err))
		logger.ExitMethodWithError(ctx, "userService.UpdateProfile", err)
		return nil, err
	}

	logger.ExitMethod(ctx, "userService.UpdateProfile", "userID", userID)
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int32, in ChangePasswordInput) error {
	logger.EnterMethod(ctx, "userService.ChangePassword", "userID", userID)

	v := &ValidationError{}
	checkVar(v, "current_password", in.CurrentPassword, "required", "current password is required")
	checkPassword(v, "new_password", in.NewPassword)
	if in.ConfirmPassword != in.NewPassword {
		v.Add("confirm_password", "confirm password must match the new password")
	}
	if in.CurrentPassword != "" && in.NewPassword == in.CurrentPassword {
		v.Add("new_password", "new password must differ from the current password")
	}
	if err := v.OrNil(); err != nil {
		logger.ExitMethodWithError(ctx, "userService.ChangePassword", err, "reason", "validation")
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		err = notFound("user", err)
		logger.ExitMethodWithError(ctx, "userService.ChangePassword", err)
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			err = fieldError("current_password", "current password is incorrect")
		}
		logger.ExitMethodWithError(ctx, "userService.ChangePassword", err)
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.ExitMethodWithError(ctx, "userService.ChangePassword", err)
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		err = notFound("user", err)
		logger.ExitMethodWithError(ctx, "userService.ChangePassword", err)
		return err
	}

	logger.ExitMethod(ctx, "userService.ChangePassword", "userID", userID)
	return nil
}
