package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"verdant_back_end/internal/config"
	"verdant_back_end/internal/models"
	"verdant_back_end/internal/store"
	"verdant_back_end/internal/utils"
)

// Mailer sends a one-time code to an address.
type Mailer interface {
	SendOTP(to, code string) error
}

// SMTPMailer is the production Mailer, backed by go-mail.
type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendOTP(to, code string) error {
	return utils.SendOTPEmail(m.cfg, to, code)
}

// AuthHandler serves registration, OTP and password login, and /me.
type AuthHandler struct {
	cfg    *config.Config
	users  *store.UserStore
	otps   store.OTPStore
	mailer Mailer
}

func NewAuthHandler(cfg *config.Config, users *store.UserStore, otps store.OTPStore, mailer Mailer) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users, otps: otps, mailer: mailer}
}

// Register creates an unverified account and dispatches a registration OTP.
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "status": http.StatusBadRequest})
		return
	}
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required", "status": http.StatusBadRequest})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error", "status": http.StatusInternalServerError})
		return
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    input.Email,
		Name:     input.Name,
		Phone:    input.Phone,
		Password: hash,
	}
	if err := h.users.Create(user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "account with this email already exists", "status": http.StatusConflict})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error", "status": http.StatusInternalServerError})
		return
	}

	h.dispatchOTP(c, user.Email, "account created, verify with the code sent to your email")
}

// SendOTPEmail dispatches a login OTP for an existing account.
func (h *AuthHandler) SendOTPEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required", "status": http.StatusBadRequest})
		return
	}

	if _, err := h.users.GetByEmail(input.Email); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "no account with this email", "status": http.StatusNotFound})
		return
	}

	h.dispatchOTP(c, input.Email, "OTP sent to your email")
}

// dispatchOTP generates and stores a code, then either emails it or, in demo
// mode, returns it inline as demoOTP.
func (h *AuthHandler) dispatchOTP(c *gin.Context, email, message string) {
	code, err := utils.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error", "status": http.StatusInternalServerError})
		return
	}
	if err := h.otps.Store(c.Request.Context(), email, code); err != nil {
		log.Printf("❌ OTP store failed for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error", "status": http.StatusInternalServerError})
		return
	}

	if h.cfg.DemoOTP {
		c.JSON(http.StatusOK, gin.H{"message": message, "demoOTP": code})
		return
	}

	if err := h.mailer.SendOTP(email, code); err != nil {
		log.Printf("❌ OTP email failed for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not send OTP email", "status": http.StatusInternalServerError})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Login authenticates with email and password and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "status": http.StatusBadRequest})
		return
	}

	user, err := h.users.GetByEmail(input.Email)
	if err != nil || !utils.VerifyPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password", "status": http.StatusUnauthorized})
		return
	}

	h.respondWithToken(c, user)
}

// VerifyOTP exchanges a valid code for a bearer token. With isRegistration
// set the account is also marked verified.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var input struct {
		Email          string `json:"email"`
		OTP            string `json:"otp"`
		IsRegistration bool   `json:"isRegistration"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.OTP == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and otp are required", "status": http.StatusBadRequest})
		return
	}

	ok, err := h.otps.Verify(c.Request.Context(), input.Email, input.OTP)
	if err != nil {
		log.Printf("❌ OTP verify failed for %s: %v", input.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error", "status": http.StatusInternalServerError})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired code", "status": http.StatusUnauthorized})
		return
	}

	user, err := h.users.GetByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "no account with this email", "status": http.StatusNotFound})
		return
	}

	if input.IsRegistration {
		_ = h.users.MarkVerified(input.Email)
		user.Verified = true
	}

	h.respondWithToken(c, user)
}

// Me returns the authenticated user; AuthRequired has already validated the
// bearer token and set user_id.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found", "status": http.StatusUnauthorized})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) respondWithToken(c *gin.Context, user models.User) {
	token, err := utils.GenerateToken(user, h.cfg.JWTSecret)
	if err != nil {
		log.Printf("❌ token generation failed for %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error", "status": http.StatusInternalServerError})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
