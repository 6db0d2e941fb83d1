package Controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"HomeSked/Models"
	"HomeSked/middleware"
)

const tokenLifetime = 30 * 24 * time.Hour

// AuthController handles registration, login and session endpoints
type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Register creates a user account. The first registered user becomes the
// household admin; everyone after that is a member.
// POST /api/auth/register
func (c *AuthController) Register(ctx *fiber.Ctx) error {
	var req Models.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "Username and a password of at least 6 characters are required",
		})
	}

	var userCount int64
	c.DB.Model(&Models.User{}).Count(&userCount)
	role := Models.RoleMember
	if userCount == 0 {
		role = Models.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to hash password",
			"message": err.Error(),
		})
	}

	user := Models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if result := c.DB.Create(&user); result.Error != nil {
		if strings.Contains(result.Error.Error(), "UNIQUE") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "Username already taken",
				"message": "A user with this username already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create user",
			"message": result.Error.Error(),
		})
	}

	return c.issueToken(ctx, &user)
}

// Login authenticates a user and issues a session token.
// POST /api/auth/login
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var req Models.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": "Username and password are required",
		})
	}

	var user Models.User
	result := c.DB.Where("username = ? COLLATE NOCASE", req.Username).First(&user)
	if result.Error != nil || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "Invalid credentials",
			"message": "Username or password is incorrect",
		})
	}

	return c.issueToken(ctx, &user)
}

// Logout clears the session cookie.
// POST /api/auth/logout
func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return ctx.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the authenticated user.
// GET /api/auth/me
func (c *AuthController) Me(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not Logged In.",
		})
	}
	return ctx.JSON(user)
}

// Users lists the household members, oldest first.
// GET /api/auth/users
func (c *AuthController) Users(ctx *fiber.Ctx) error {
	var users []Models.User
	if result := c.DB.Order("created_at").Find(&users); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": result.Error.Error(),
		})
	}
	return ctx.JSON(users)
}

func (c *AuthController) issueToken(ctx *fiber.Ctx, user *Models.User) error {
	claims := jwt.RegisteredClaims{
		Issuer:    strconv.FormatUint(uint64(user.ID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(middleware.SecretKey))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to sign token",
			"message": err.Error(),
		})
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(tokenLifetime),
		HTTPOnly: true,
	})

	return ctx.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
