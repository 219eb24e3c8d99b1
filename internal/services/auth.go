package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/reviewhub/reviewhub/internal/models"
	"github.com/reviewhub/reviewhub/internal/utils"
	"github.com/reviewhub/reviewhub/pkg/response"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Role     string `json:"role" binding:"omitempty,oneof=reviewer submitter"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// AuthResult is what a successful register/login/refresh produces. The
// refresh token travels only in an HTTP-only cookie, never in a JSON body.
type AuthResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// Register creates a new account with a hashed password and issues tokens.
// A duplicate email fails with Conflict. Uniqueness is enforced by the email
// unique index rather than a read-before-write, so two concurrent
// registrations of the same email cannot both succeed.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResult, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := models.GlobalRoleSubmitter
	if req.Role != "" {
		role = models.GlobalRole(req.Role)
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("email already in use")
		}
		return nil, response.NewPersistence("failed to create account")
	}

	return s.issueTokens(&user)
}

// Login authenticates by email and password. Unknown email and wrong
// password yield the same error so responses carry no email-existence oracle.
func (s *AuthService) Login(req *LoginRequest) (*AuthResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthenticated("invalid credentials")
		}
		return nil, response.NewPersistence("failed to load account")
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, response.NewUnauthenticated("invalid credentials")
	}

	return s.issueTokens(&user)
}

// Refresh exchanges a valid refresh token for a new token pair. The old
// refresh token stays valid until its natural expiry; there is no server-side
// revocation.
func (s *AuthService) Refresh(refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, response.NewUnauthenticated("refresh token required")
	}

	claims, err := utils.ParseToken(refreshToken, utils.TokenKindRefresh)
	if err != nil {
		if err == utils.ErrTokenExpired {
			return nil, response.NewTokenExpired("refresh token expired")
		}
		return nil, response.NewTokenInvalid("invalid refresh token")
	}

	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthenticated("account no longer exists")
		}
		return nil, response.NewPersistence("failed to load account")
	}

	return s.issueTokens(&user)
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResult, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, response.NewPersistence("failed to load user")
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update; omitted fields are left
// unchanged.
func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, response.NewPersistence("failed to update profile")
		}
	}

	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return response.NewInvalidInput("current password is incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.db.Model(user).Update("password_hash", hash).Error; err != nil {
		return response.NewPersistence("failed to change password")
	}
	return nil
}
