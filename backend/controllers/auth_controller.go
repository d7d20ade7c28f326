package controllers

import (
	"errors"
	"strings"

	"marketplace/backend/apperr"
	"marketplace/backend/config"
	"marketplace/backend/dto"
	"marketplace/backend/models"
	"marketplace/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *utils.Logger
}

func NewAuthController(db *gorm.DB, cfg *config.Config, logger *utils.Logger) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Log: logger}
}

type authResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

type userSummary struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

func (ac *AuthController) respondWithToken(c *fiber.Ctx, status int, user *models.User) error {
	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.HandleError(c, ac.Log, err)
	}
	return utils.Success(c, status, authResponse{
		Token: token,
		User: userSummary{
			ID:       user.ID.String(),
			Username: user.Username(),
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}

// [+] Register godoc
// @Summary Register a new user
// @Description Creates a student or instructor account and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "User registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ac.Log, err)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := dto.Validate(req); err != nil {
		return utils.HandleError(c, ac.Log, err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.HandleError(c, ac.Log, err)
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.Role(req.Role),
	}
	if err := ac.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.HandleError(c, ac.Log, apperr.Conflict("email already registered"))
		}
		return utils.HandleError(c, ac.Log, err)
	}

	ac.Log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return ac.respondWithToken(c, fiber.StatusCreated, &user)
}

// [+] Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ac.Log, err)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := dto.Validate(req); err != nil {
		return utils.HandleError(c, ac.Log, err)
	}

	var user models.User
	if err := ac.DB.WithContext(c.UserContext()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.HandleError(c, ac.Log, err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	return ac.respondWithToken(c, fiber.StatusOK, &user)
}
