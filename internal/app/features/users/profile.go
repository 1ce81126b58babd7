package users

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	userstore "github.com/dalemusser/bloodconnect/internal/app/store/users"
	"github.com/dalemusser/bloodconnect/internal/app/system/normalize"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetUser handles GET /users/{email}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := normalize.EmailParam(chi.URLParam(r, "email"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get user")
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.Message(w, r, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get user failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, u)
}

// GetRole handles GET /users/role/{email} and /users/{email}/role.
func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	email := normalize.EmailParam(chi.URLParam(r, "email"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get role")
	defer cancel()

	role, err := userstore.New(h.DB).GetRole(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.Message(w, r, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get role failed", err)
		return
	}
	uierrors.JSON(w, r, http.StatusOK, map[string]string{"role": role})
}

type profileRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	Avatar     *string `json:"avatar" validate:"omitempty,url"`
	BloodGroup *string `json:"bloodGroup" validate:"omitempty,bloodgroup"`
	District   *string `json:"district" validate:"omitempty,max=100"`
	Upazila    *string `json:"upazila" validate:"omitempty,max=100"`
}

// fields names the supplied profile fields, in a fixed order.
func (in profileRequest) fields() []string {
	var out []string
	for _, f := range []struct {
		name string
		v    *string
	}{
		{"name", in.Name},
		{"avatar", in.Avatar},
		{"bloodGroup", in.BloodGroup},
		{"district", in.District},
		{"upazila", in.Upazila},
	} {
		if f.v != nil {
			out = append(out, f.name)
		}
	}
	return out
}

// UpdateProfile handles PATCH /users/{email}. Only supplied fields change.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := normalize.EmailParam(chi.URLParam(r, "email"))

	var in profileRequest
	if !h.ErrLog.DecodeAndValidate(w, r, &in) {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update profile")
	defer cancel()

	err := userstore.New(h.DB).UpdateProfile(ctx, email, userstore.ProfileUpdate{
		Name:       in.Name,
		Avatar:     in.Avatar,
		BloodGroup: in.BloodGroup,
		District:   in.District,
		Upazila:    in.Upazila,
	})
	switch {
	case errors.Is(err, userstore.ErrNoFields):
		uierrors.Message(w, r, http.StatusBadRequest, "No profile fields to update")
	case errors.Is(err, mongo.ErrNoDocuments):
		uierrors.Message(w, r, http.StatusNotFound, "User not found")
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update profile failed", err)
	default:
		h.AuditLog.ProfileUpdated(r, email, in.fields())
		uierrors.Message(w, r, http.StatusOK, "Profile updated")
	}
}
