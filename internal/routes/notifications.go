package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (routes *Routes) NotificationsRouter(r chi.Router) {
	r.Get("/", routes.AppHandler(routes.GetNotifications))
	r.Get("/unread_count", routes.AppHandler(routes.GetUnreadCount))
	r.Post("/{notifID}/read", routes.AppHandler(routes.PostMarkRead))
	r.Post("/read_all", routes.AppHandler(routes.PostMarkAllRead))
}

func (routes *Routes) GetNotifications(w http.ResponseWriter, r *http.Request) AppError {
	limit, _ := routes.pagination(r)
	notifs, err := routes.forum.Inbox.List(r.Context(), currentUser(r).ID, limit)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, notifs)
	return nil
}

func (routes *Routes) GetUnreadCount(w http.ResponseWriter, r *http.Request) AppError {
	count, err := routes.forum.Inbox.UnreadCount(r.Context(), currentUser(r).ID)
	if err != nil {
		return toAppError(err)
	}
	respondJSON(w, http.StatusOK, map[string]int{"unread_count": count})
	return nil
}

func (routes *Routes) PostMarkRead(w http.ResponseWriter, r *http.Request) AppError {
	notifID, appErr := urlParamInt(r, "notifID")
	if appErr != nil {
		return appErr
	}
	err := routes.forum.Inbox.MarkRead(r.Context(), currentUser(r).ID, notifID)
	if err != nil {
		return toAppError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (routes *Routes) PostMarkAllRead(w http.ResponseWriter, r *http.Request) AppError {
	err := routes.forum.Inbox.MarkAllRead(r.Context(), currentUser(r).ID)
	if err != nil {
		return toAppError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
