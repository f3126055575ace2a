package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/askhub/askhub/internal/models"
)

func (routes *Routes) AnswersRouter(r chi.Router) {
	r.With(routes.EnforceAuth).Put("/{answerID}", routes.AppHandler(routes.PutAnswer))
	r.With(routes.EnforceAuth).Delete("/{answerID}", routes.AppHandler(routes.DeleteAnswer))
	r.Get("/{answerID}/votes", routes.AppHandler(routes.GetAnswerVotes))
	r.With(routes.EnforceAuth).Post("/{answerID}/vote", routes.AppHandler(routes.PostAnswerVote))
	r.With(routes.EnforceAuth).Delete("/{answerID}/vote", routes.AppHandler(routes.DeleteAnswerVote))
}

func (routes *Routes) GetAnswers(w http.ResponseWriter, r *http.Request) AppError {
	questionID, appErr := urlParamInt(r, "questionID")
	if appErr != nil {
		return appErr
	}
	answers, err := routes.forum.Answers.ListByQuestion(r.Context(), questionID)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, answers)
	return nil
}

func (routes *Routes) PostAnswer(w http.ResponseWriter, r *http.Request) AppError {
	questionID, appErr := urlParamInt(r, "questionID")
	if appErr != nil {
		return appErr
	}
	var body struct {
		Content string `json:"content"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	answer, err := routes.forum.Answers.PostAnswer(r.Context(), currentUser(r).ID, questionID, body.Content)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusCreated, answer)
	return nil
}

func (routes *Routes) PutAnswer(w http.ResponseWriter, r *http.Request) AppError {
	answerID, appErr := urlParamInt(r, "answerID")
	if appErr != nil {
		return appErr
	}
	var body struct {
		Content string `json:"content"`
	}
	if appErr := decodeJSON(r, &body); appErr != nil {
		return appErr
	}
	err := routes.forum.Answers.UpdateAnswer(r.Context(), currentUser(r).ID, answerID, body.Content)
	if err != nil {
		return toAppError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (routes *Routes) DeleteAnswer(w http.ResponseWriter, r *http.Request) AppError {
	answerID, appErr := urlParamInt(r, "answerID")
	if appErr != nil {
		return appErr
	}
	err := routes.forum.Answers.DeleteAnswer(r.Context(), currentUser(r).ID, answerID)
	if err != nil {
		return toAppError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (routes *Routes) GetAnswerVotes(w http.ResponseWriter, r *http.Request) AppError {
	answerID, appErr := urlParamInt(r, "answerID")
	if appErr != nil {
		return appErr
	}
	count, err := routes.forum.Votes.GetVoteCount(r.Context(), models.AnswerTarget(answerID))
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, map[string]int{"vote_count": count})
	return nil
}

func (routes *Routes) PostAnswerVote(w http.ResponseWriter, r *http.Request) AppError {
	answerID, appErr := urlParamInt(r, "answerID")
	if appErr != nil {
		return appErr
	}
	return routes.castVote(w, r, models.AnswerTarget(answerID))
}

func (routes *Routes) DeleteAnswerVote(w http.ResponseWriter, r *http.Request) AppError {
	answerID, appErr := urlParamInt(r, "answerID")
	if appErr != nil {
		return appErr
	}
	return routes.removeVote(w, r, models.AnswerTarget(answerID))
}
