package auth

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"

	"cafepos/database"
	"cafepos/model"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler verifies credentials and returns a session token.
func LoginHandler(db *sqlx.DB, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var body loginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			http.Error(w, "Username and password are required", http.StatusBadRequest)
			return
		}

		user, err := database.GetUserByUsername(db, body.Username)
		if err != nil {
			http.Error(w, "Login failed", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}

		token, err := GenerateToken(secret, user)
		if err != nil {
			log.Printf("Failed to generate token for %s: %v", user.Username, err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": token,
			"user": map[string]interface{}{
				"id":       user.ID,
				"username": user.Username,
				"role":     user.Role,
			},
		})
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func ChangePasswordHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}
		var body changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if body.NewPassword == "" {
			http.Error(w, "New password is required", http.StatusBadRequest)
			return
		}

		user, err := database.GetUserByID(db, claims.UserID)
		if err != nil || user == nil {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.CurrentPassword)); err != nil {
			http.Error(w, "Current password is incorrect", http.StatusUnauthorized)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}
		if err := database.UpdatePassword(db, user.ID, string(hash)); err != nil {
			http.Error(w, "Failed to update password", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Password updated"})
	}
}

// SecurityQuestionHandler returns the stored recovery question for a user.
func SecurityQuestionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")
		if username == "" {
			http.Error(w, "Username is required", http.StatusBadRequest)
			return
		}
		user, err := database.GetUserByUsername(db, username)
		if err != nil {
			http.Error(w, "Failed to look up user", http.StatusInternalServerError)
			return
		}
		if user == nil || !user.SecurityQuestion.Valid || user.SecurityQuestion.String == "" {
			http.Error(w, "No security question on file", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"question": user.SecurityQuestion.String})
	}
}

type forgotRequest struct {
	Email          string `json:"email"`
	Username       string `json:"username"`
	SecurityAnswer string `json:"securityAnswer"`
}

// ForgotPasswordHandler creates a one-hour reset code. The user is found by
// email, or by username plus a matching security answer. This is an offline
// desktop app, so the code is returned in the response instead of mailed.
func ForgotPasswordHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var body forgotRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var user *model.User
		var err error
		switch {
		case body.Email != "":
			user, err = database.GetUserByEmail(db, strings.TrimSpace(strings.ToLower(body.Email)))
		case body.Username != "":
			user, err = database.GetUserByUsername(db, strings.TrimSpace(body.Username))
		default:
			http.Error(w, "Email or username is required", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, "Failed to look up user", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "No account found", http.StatusNotFound)
			return
		}

		if body.Username != "" && body.Email == "" {
			if !user.SecurityAnswer.Valid ||
				!strings.EqualFold(strings.TrimSpace(body.SecurityAnswer), strings.TrimSpace(user.SecurityAnswer.String)) {
				http.Error(w, "Security answer does not match", http.StatusUnauthorized)
				return
			}
		}

		code, err := generateResetCode()
		if err != nil {
			http.Error(w, "Failed to generate reset code", http.StatusInternalServerError)
			return
		}
		if err := database.CreatePasswordReset(db, user.ID, code); err != nil {
			http.Error(w, "Failed to create reset code", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"resetCode": code})
	}
}

type verifyResetRequest struct {
	ResetCode string `json:"resetCode"`
}

func VerifyResetHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var body verifyResetRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		reset, err := database.GetPasswordReset(db, body.ResetCode)
		if err != nil {
			http.Error(w, "Failed to verify reset code", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"valid": reset != nil})
	}
}

type resetPasswordRequest struct {
	ResetCode   string `json:"resetCode"`
	NewPassword string `json:"newPassword"`
}

// ResetPasswordHandler consumes a valid reset code and sets a new password.
func ResetPasswordHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var body resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if body.NewPassword == "" {
			http.Error(w, "New password is required", http.StatusBadRequest)
			return
		}
		reset, err := database.GetPasswordReset(db, body.ResetCode)
		if err != nil {
			http.Error(w, "Failed to verify reset code", http.StatusInternalServerError)
			return
		}
		if reset == nil {
			http.Error(w, "Invalid or expired reset code", http.StatusUnauthorized)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}
		if err := database.UpdatePassword(db, reset.UserID, string(hash)); err != nil {
			http.Error(w, "Failed to update password", http.StatusInternalServerError)
			return
		}
		if err := database.MarkResetUsed(db, reset.ID); err != nil {
			log.Printf("WARN: failed to mark reset %d used: %v", reset.ID, err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Password reset successful"})
	}
}

// generateResetCode returns a random 6-digit code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
