package routes

import (
	"net/http"
)

func (routes *Routes) GetUser(w http.ResponseWriter, r *http.Request) AppError {
	id, appErr := urlParamInt(r, "userID")
	if appErr != nil {
		return appErr
	}
	user, err := routes.db.GetUser(r.Context(), id)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, user)
	return nil
}
