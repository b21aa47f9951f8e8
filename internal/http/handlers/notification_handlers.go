package handlers

import "net/http"

// GetNotificationsHandler godoc
// @Summary Pending notifications
// @Description Returns and removes the pending notifications of the session
// @Tags notifications
// @Produce json
// @Success 200 {array} notify.Notification
// @Router /notifications [get]
func GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := currentVisitor(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, delivered(v))
}
