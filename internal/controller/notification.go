package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gig-marketplace-api/internal/service"

	"github.com/labstack/echo"
)

type notificationRoutesHandler struct {
	notificationService service.Notification
}

func newNotificationRoutesHandler(outer *echo.Group, services *service.Services) *notificationRoutesHandler {
	h := &notificationRoutesHandler{notificationService: services.Notification}
	outer.GET("/notifications/stream", h.Stream)

	return h
}

// Streams hub events for the given username as server-sent events.
// Events published while nobody is connected are lost; the hire state
// itself is durable and can be read back from /bids/my.
// /notifications/stream
func (h *notificationRoutesHandler) Stream(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		if e := c.JSON(http.StatusUnauthorized, errorResponse{"Please provide your username"}); e != nil {
			return e
		}

		return nil
	}

	events, cancel, err := h.notificationService.Subscribe(c.Request().Context(), username)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			if e := c.JSON(http.StatusUnauthorized, errorResponse{"There is no user with given username"}); e != nil {
				return e
			}
		default:
			if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
				return e
			}
		}

		return err
	}
	defer cancel()

	resp := c.Response()
	resp.Header().Set("Content-Type", "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}

			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintf(resp, "data: %s\n\n", payload); err != nil {
				return err
			}
			resp.Flush()
		}
	}
}
