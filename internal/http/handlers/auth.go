package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	intconfig "meraai/internal/config"
	"meraai/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues and validates account credentials. The signing secret
// comes from configuration instead of a package global so tests can spin up
// isolated instances.
type AuthHandler struct {
	Secret string
	DB     *sql.DB
}

func (h AuthHandler) db() *sql.DB {
	if h.DB != nil {
		return h.DB
	}
	return intconfig.DB
}

// AuthUser is the user payload returned with a token.
type AuthUser struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		user         AuthUser
		passwordHash string
	)

	err := h.db().QueryRow(`
        SELECT id, name, email, phone, password_hash, role, status
        FROM users
        WHERE email = ?
    `, strings.TrimSpace(req.Email)).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&passwordHash,
		&user.Role,
		&user.Status,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong email or password"})
		} else {
			RespondError(c, http.StatusInternalServerError, "user lookup failed", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong email or password"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(h.Secret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "token signing failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || len(req.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "name, email and a password of 6+ characters are required", nil)
		return
	}

	var exists int
	if err := h.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, req.Email).Scan(&exists); err != nil {
		RespondError(c, http.StatusInternalServerError, "user check failed", err)
		return
	}
	if exists > 0 {
		RespondError(c, http.StatusBadRequest, "email already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "password hashing failed", err)
		return
	}

	res, err := h.db().Exec(`
        INSERT INTO users (name, email, phone, password_hash, role, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, 'user', 'active', NOW(), NOW())
    `, utils.NormalizeSpace(req.Name), strings.TrimSpace(req.Email), strings.TrimSpace(req.Phone), string(hash))
	if err != nil {
		// Two concurrent registrations can both pass the COUNT check;
		// the uniq_email key settles it. 1062 is ER_DUP_ENTRY.
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			RespondError(c, http.StatusBadRequest, "email already registered", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "user insert failed", err)
		return
	}

	id, _ := res.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user": gin.H{
			"id":     id,
			"name":   req.Name,
			"email":  req.Email,
			"phone":  req.Phone,
			"role":   "user",
			"status": "active",
		},
	})
}
