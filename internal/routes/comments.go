package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/askhub/askhub/internal/models"
)

func (routes *Routes) CommentsRouter(r chi.Router) {
	r.Get("/{targetKind}/{targetID}", routes.AppHandler(routes.GetComments))
	r.With(routes.EnforceAuth).Post("/{targetKind}/{targetID}", routes.AppHandler(routes.PostComment))
}

func targetFromURL(r *http.Request) (models.Target, AppError) {
	id, err := strconv.Atoi(chi.URLParam(r, "targetID"))
	if err != nil {
		return models.Target{}, &ErrBadRequest{Msg: "Invalid targetID", Err: err}
	}
	target, err := models.NewTarget(models.TargetKind(chi.URLParam(r, "targetKind")), id)
	if err != nil {
		return models.Target{}, &ErrBadRequest{Msg: "Invalid target kind", Err: err}
	}
	return target, nil
}

func (routes *Routes) GetComments(w http.ResponseWriter, r *http.Request) AppError {
	target, appErr := targetFromURL(r)
	if appErr != nil {
		return appErr
	}
	comments, err := routes.forum.Comments.ListByTarget(r.Context(), target)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, comments)
	return nil
}

func (routes *Routes) PostComment(w http.ResponseWriter, r *http.Request) AppError {
	target, appErr := targetFromURL(r)
	if appErr != nil {
		return appErr
	}
	var body struct {
		Content string `json:"content"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	comment, err := routes.forum.Comments.PostComment(r.Context(), currentUser(r).ID, target, body.Content)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusCreated, comment)
	return nil
}
