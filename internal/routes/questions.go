package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/askhub/askhub/internal/models"
)

func (routes *Routes) QuestionsRouter(r chi.Router) {
	r.Get("/", routes.AppHandler(routes.GetQuestions))
	r.With(routes.EnforceAuth).Post("/", routes.AppHandler(routes.PostQuestion))
	r.Get("/{questionID}", routes.AppHandler(routes.GetQuestion))
	r.Get("/{questionID}/answers", routes.AppHandler(routes.GetAnswers))
	r.With(routes.EnforceAuth).Post("/{questionID}/answers", routes.AppHandler(routes.PostAnswer))
	r.With(routes.EnforceAuth).Post("/{questionID}/accept/{answerID}", routes.AppHandler(routes.PostAccept))
	r.Get("/{questionID}/votes", routes.AppHandler(routes.GetQuestionVotes))
	r.With(routes.EnforceAuth).Post("/{questionID}/vote", routes.AppHandler(routes.PostQuestionVote))
	r.With(routes.EnforceAuth).Delete("/{questionID}/vote", routes.AppHandler(routes.DeleteQuestionVote))
}

func urlParamInt(r *http.Request, name string) (int, AppError) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, &ErrBadRequest{Msg: "Invalid " + name, Err: err}
	}
	return v, nil
}

// pagination reads limit/offset query params, clamping limit to the
// configured page size.
func (routes *Routes) pagination(r *http.Request) (limit, offset int) {
	limit = routes.envConfig.PageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v < limit {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func (routes *Routes) GetQuestions(w http.ResponseWriter, r *http.Request) AppError {
	limit, offset := routes.pagination(r)
	var (
		questions []models.Question
		err       error
	)
	if query := r.URL.Query().Get("q"); query != "" {
		questions, err = routes.forum.Questions.Search(r.Context(), query, limit, offset)
	} else {
		questions, err = routes.forum.Questions.ListRecent(r.Context(), limit, offset)
	}
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, questions)
	return nil
}

func (routes *Routes) PostQuestion(w http.ResponseWriter, r *http.Request) AppError {
	var body struct {
		TopicID int    `json:"topic_id"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	question, err := routes.forum.Questions.PostQuestion(r.Context(), currentUser(r).ID, body.TopicID, body.Title, body.Content)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusCreated, question)
	return nil
}

func (routes *Routes) GetQuestion(w http.ResponseWriter, r *http.Request) AppError {
	id, appErr := urlParamInt(r, "questionID")
	if appErr != nil {
		return appErr
	}
	question, err := routes.forum.Questions.GetQuestion(r.Context(), id)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, question)
	return nil
}

func (routes *Routes) PostAccept(w http.ResponseWriter, r *http.Request) AppError {
	questionID, appErr := urlParamInt(r, "questionID")
	if appErr != nil {
		return appErr
	}
	answerID, appErr := urlParamInt(r, "answerID")
	if appErr != nil {
		return appErr
	}
	err := routes.forum.Acceptance.AcceptAnswer(r.Context(), questionID, answerID, currentUser(r).ID)
	if err != nil {
		return toAppError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (routes *Routes) GetQuestionVotes(w http.ResponseWriter, r *http.Request) AppError {
	id, appErr := urlParamInt(r, "questionID")
	if appErr != nil {
		return appErr
	}
	count, err := routes.forum.Votes.GetVoteCount(r.Context(), models.QuestionTarget(id))
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, map[string]int{"vote_count": count})
	return nil
}

func (routes *Routes) PostQuestionVote(w http.ResponseWriter, r *http.Request) AppError {
	id, appErr := urlParamInt(r, "questionID")
	if appErr != nil {
		return appErr
	}
	return routes.castVote(w, r, models.QuestionTarget(id))
}

func (routes *Routes) DeleteQuestionVote(w http.ResponseWriter, r *http.Request) AppError {
	id, appErr := urlParamInt(r, "questionID")
	if appErr != nil {
		return appErr
	}
	return routes.removeVote(w, r, models.QuestionTarget(id))
}

func (routes *Routes) castVote(w http.ResponseWriter, r *http.Request, target models.Target) AppError {
	var body struct {
		Polarity string `json:"polarity"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	polarity, err := models.ParsePolarity(body.Polarity)
	if err != nil {
		return toAppError(err)
	}
	count, err := routes.forum.Votes.CastVote(r.Context(), currentUser(r).ID, target, polarity)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, map[string]int{"vote_count": count})
	return nil
}

func (routes *Routes) removeVote(w http.ResponseWriter, r *http.Request, target models.Target) AppError {
	count, err := routes.forum.Votes.RemoveVote(r.Context(), currentUser(r).ID, target)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, map[string]int{"vote_count": count})
	return nil
}
