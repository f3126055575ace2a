package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (routes *Routes) TopicsRouter(r chi.Router) {
	r.Get("/", routes.AppHandler(routes.GetTopics))
	r.With(routes.EnforceAuth).Post("/", routes.AppHandler(routes.PostTopic))
}

func (routes *Routes) GetTopics(w http.ResponseWriter, r *http.Request) AppError {
	topics, err := routes.forum.Topics.ListTopics(r.Context())
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, topics)
	return nil
}

func (routes *Routes) PostTopic(w http.ResponseWriter, r *http.Request) AppError {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	topic, err := routes.forum.Topics.CreateTopic(r.Context(), body.Name, body.Description)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusCreated, topic)
	return nil
}
