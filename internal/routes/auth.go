package routes

import (
	"context"
	"net/http"
	"strings"

	"github.com/askhub/askhub/internal/models"
)

type ctxKey int

const UserCtxKey ctxKey = iota

// AuthCtx resolves the bearer token, if any, and stores the user in the
// request context. Requests without a valid token just proceed anonymous.
func (routes *Routes) AuthCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := routes.db.UserByToken(r.Context(), token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EnforceAuth rejects requests that didn't authenticate in AuthCtx.
func (routes *Routes) EnforceAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(UserCtxKey).(*models.User); !ok {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(UserCtxKey).(*models.User)
	return user
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimPrefix(auth, prefix)
}

func (routes *Routes) PostSignup(w http.ResponseWriter, r *http.Request) AppError {
	var body struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Passwd string `json:"passwd"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	user := models.User{Name: body.Name, Email: body.Email}
	err := routes.db.CreateUser(r.Context(), &user, body.Passwd)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusCreated, user)
	return nil
}

func (routes *Routes) PostLogin(w http.ResponseWriter, r *http.Request) AppError {
	var body struct {
		Email  string `json:"email"`
		Passwd string `json:"passwd"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	token, err := routes.db.Login(r.Context(), body.Email, body.Passwd)
	if err != nil {
		// Don't leak whether the email or the password was wrong.
		return &ErrUnauthorized{Err: err}
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
	return nil
}

func (routes *Routes) PostSignout(w http.ResponseWriter, r *http.Request) AppError {
	if err := routes.db.Signout(r.Context(), bearerToken(r)); err != nil {
		return &ErrInternal{Err: err}
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
