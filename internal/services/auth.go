package services

import (
	"strings"

	"github.com/taskman/taskman/internal/config"
	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/internal/utils"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *UserSummary `json:"user"`
}

// Register creates a new account and returns a signed token.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, response.NewBadRequest("Please provide all required fields")
	}
	if len(req.Password) < 8 {
		return nil, response.NewBadRequest("Password must be at least 8 characters")
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !utils.ValidUsername(username) {
		return nil, response.NewBadRequest("Username must be 3-20 characters (letters, numbers, underscores)")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, response.NewBadRequest("User already exists with this email")
	}
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, response.NewBadRequest("Username is already taken")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     req.Name,
		Username: username,
		Email:    email,
		Password: hash,
		Avatar:   models.DefaultAvatar,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Username, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    summarizeUser(&user),
	}, nil
}

// Login authenticates by email and password. Both failure causes return
// the same message so accounts cannot be enumerated.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, response.NewBadRequest("Please provide email and password")
	}

	user, err := findUserByEmail(s.db, req.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewBadRequest("Invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewBadRequest("Invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    summarizeUser(user),
	}, nil
}

// CurrentUser returns the account behind an authenticated request.
func (s *AuthService) CurrentUser(userID uint) (*UserSummary, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}
	return summarizeUser(&user), nil
}
