package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/candidate-onboarding/internal/application/onboarding"
)

type NotificationHandler struct {
	list    app.ListNotifications
	markOne app.MarkNotificationRead
	markAll app.MarkAllNotificationsRead
}

func NewNotificationHandler(list app.ListNotifications, markOne app.MarkNotificationRead, markAll app.MarkAllNotificationsRead) *NotificationHandler {
	return &NotificationHandler{list: list, markOne: markOne, markAll: markAll}
}

func (h *NotificationHandler) List(c echo.Context) error {
	in := app.ListNotificationsInput{Role: c.QueryParam("role")}
	if err := echo.QueryParamsBinder(c).
		Int("page", &in.Page).
		Int("page_size", &in.PageSize).
		BindError(); err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "page and page_size must be integers")
	}

	out, err := h.list.Execute(c.Request().Context(), in)
	if err != nil {
		return writeUseCaseError(c, err, "failed to list notifications")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.markOne.Execute(c.Request().Context(), app.MarkNotificationReadInput{ID: c.Param("id")}); err != nil {
		return writeUseCaseError(c, err, "failed to mark notification read")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.markAll.Execute(c.Request().Context(), app.MarkAllNotificationsReadInput{Role: c.QueryParam("role")}); err != nil {
		return writeUseCaseError(c, err, "failed to mark notifications read")
	}
	return c.NoContent(http.StatusNoContent)
}
