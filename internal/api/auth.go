package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ecocore/internal/domain"
	"ecocore/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

func (api *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Password: string(hashedPassword),
	}

	if err := api.Store.CreateUser(user); err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			writeError(w, http.StatusConflict, "Username already exists")
			return
		}
		api.Logger.Error("failed to create user", "error", err)
		writeError(w, http.StatusInternalServerError, "Error registering user")
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

func (api *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := api.Store.GetUserByUsername(req.Username)
	if err != nil {
		api.Logger.Error("failed to look up user", "error", err)
		writeError(w, http.StatusInternalServerError, "Error logging in")
		return
	}
	// Unknown user and wrong password produce the same response so usernames
	// cannot be enumerated.
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tokenString, err := api.signToken(user)
	if err != nil {
		api.Logger.Error("failed to sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "Error signing token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    user,
		Token:   tokenString,
	})
}

func (api *Server) signToken(user *domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Duration(api.Config.TokenTTLHours) * time.Hour).Unix(),
	})
	return token.SignedString([]byte(api.Config.JWTSecret))
}
