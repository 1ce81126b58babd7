package users

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	userstore "github.com/dalemusser/bloodconnect/internal/app/store/users"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	Avatar     string `json:"avatar" validate:"omitempty,url"`
	BloodGroup string `json:"bloodGroup" validate:"omitempty,bloodgroup"`
	District   string `json:"district" validate:"max=100"`
	Upazila    string `json:"upazila" validate:"max=100"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// Register handles POST /users/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if !h.ErrLog.DecodeAndValidate(w, r, &in) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "register user")
	defer cancel()

	u, err := userstore.New(h.DB).Create(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		Avatar:       in.Avatar,
		BloodGroup:   in.BloodGroup,
		District:     in.District,
		Upazila:      in.Upazila,
		PasswordHash: string(hash),
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		uierrors.Message(w, r, http.StatusConflict, "User already exists")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create user failed", err)
		return
	}

	h.Log.Info("user registered", zap.String("email", u.Email))
	h.AuditLog.UserRegistered(r, u.Email, u.Role)
	uierrors.JSON(w, r, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		UserID:  u.ID.Hex(),
	})
}
