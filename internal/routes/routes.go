package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/askhub/askhub/internal/db"
	"github.com/askhub/askhub/internal/forum"
	"github.com/askhub/askhub/internal/models"
)

type Routes struct {
	envConfig *models.EnvConfig
	db        *db.SharedDB
	forum     *forum.Forum
	logger    zerolog.Logger
}

func NewRouter(config *models.EnvConfig, sdb *db.SharedDB, f *forum.Forum, logger zerolog.Logger) chi.Router {
	routes := &Routes{
		envConfig: config,
		db:        sdb,
		forum:     f,
		logger:    logger,
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.URLHandler("url"))
	r.Use(hlog.MethodHandler("method"))
	r.Use(routes.AuthCtx)

	r.Post("/signup", routes.AppHandler(routes.PostSignup))
	r.Post("/login", routes.AppHandler(routes.PostLogin))
	r.With(routes.EnforceAuth).Post("/signout", routes.AppHandler(routes.PostSignout))

	r.Get("/users/{userID}", routes.AppHandler(routes.GetUser))
	r.Route("/questions", routes.QuestionsRouter)
	r.Route("/answers", routes.AnswersRouter)
	r.Route("/comments", routes.CommentsRouter)
	r.Route("/topics", routes.TopicsRouter)
	r.With(routes.EnforceAuth).Route("/notifications", routes.NotificationsRouter)
	return r
}

// AppError is what every handler returns. The concrete type picks the
// HTTP status; Cause is only logged, never sent to the client.
type AppError interface {
	Status() int
	Message() string
	Cause() error
}

type ErrNotFound struct {
	Thing string
	Err   error
}

func (e *ErrNotFound) Status() int { return http.StatusNotFound }
func (e *ErrNotFound) Message() string {
	if e.Thing == "" {
		return "Not found"
	}
	return e.Thing + " not found"
}
func (e *ErrNotFound) Cause() error { return e.Err }

type ErrForbidden struct {
	Err error
}

func (e *ErrForbidden) Status() int     { return http.StatusForbidden }
func (e *ErrForbidden) Message() string { return "Forbidden" }
func (e *ErrForbidden) Cause() error    { return e.Err }

type ErrBadRequest struct {
	Msg string
	Err error
}

func (e *ErrBadRequest) Status() int { return http.StatusBadRequest }
func (e *ErrBadRequest) Message() string {
	if e.Msg == "" {
		return "Bad request"
	}
	return e.Msg
}
func (e *ErrBadRequest) Cause() error { return e.Err }

type ErrUnauthorized struct {
	Err error
}

func (e *ErrUnauthorized) Status() int     { return http.StatusUnauthorized }
func (e *ErrUnauthorized) Message() string { return "Unauthorized" }
func (e *ErrUnauthorized) Cause() error    { return e.Err }

type ErrInternal struct {
	Msg string
	Err error
}

func (e *ErrInternal) Status() int { return http.StatusInternalServerError }
func (e *ErrInternal) Message() string {
	if e.Msg == "" {
		return "Internal server error"
	}
	return e.Msg
}
func (e *ErrInternal) Cause() error { return e.Err }

func (routes *Routes) AppHandler(handler func(w http.ResponseWriter, r *http.Request) AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appErr := handler(w, r)
		if appErr == nil {
			return
		}
		respondJSON(w, appErr.Status(), map[string]string{"error": appErr.Message()})
		hlog.FromRequest(r).
			Error().
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", appErr.Status()).
			Err(appErr.Cause()).
			Msg(appErr.Message())
	}
}

// toAppError maps the core error taxonomy onto HTTP statuses.
func toAppError(err error) AppError {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return &ErrNotFound{Err: err}
	case errors.Is(err, models.ErrForbidden):
		return &ErrForbidden{Err: err}
	case errors.Is(err, models.ErrInvalidFormat),
		errors.Is(err, models.ErrBadContentLen),
		errors.Is(err, models.ErrWeakPasswd),
		errors.Is(err, models.ErrEmailAlreadyUsed):
		return &ErrBadRequest{Msg: err.Error(), Err: err}
	}
	return &ErrInternal{Err: err}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v interface{}) AppError {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrBadRequest{Msg: "Malformed JSON body", Err: err}
	}
	return nil
}
