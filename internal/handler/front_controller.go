// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"goboard/internal/commands"
	"goboard/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// FrontController is the single entry point of the board: every request
// names a command and the dispatcher routes it. Rendering is one JSON
// envelope naming the view; redirects and streamed responses bypass it.
type FrontController struct {
	dispatcher *commands.Dispatcher
}

func NewFrontController(dispatcher *commands.Dispatcher) *FrontController {
	return &FrontController{dispatcher: dispatcher}
}

func (h *FrontController) Handle(c *gin.Context) {
	name := c.Query("command")
	if name == "" {
		name = c.PostForm("command")
	}

	result := h.dispatcher.Dispatch(c, name)
	if result.Handled {
		return
	}
	if result.Redirect != "" {
		c.Redirect(http.StatusSeeOther, result.Redirect)
		return
	}

	status := result.Status
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, httpdto.NewSuccessResponse(httpdto.ViewResponse{
		View: result.View,
		Data: result.Data,
	}))
}
