package commands

import "github.com/gin-gonic/gin"

// Handler executes one named command. Each handler reads its own inputs
// from the ambient request and returns an immutable Result; it never
// mutates shared request state.
type Handler interface {
	Execute(c *gin.Context) Result
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(c *gin.Context) Result

func (f HandlerFunc) Execute(c *gin.Context) Result { return f(c) }

// Result is what a command hands to the view layer: a view name, a data
// payload and a status. Redirect and Handled short-circuit rendering:
// Handled means the command already wrote the response (file streams and
// JSON endpoints).
type Result struct {
	View     string
	Status   int
	Redirect string
	Data     gin.H
	Handled  bool
}

func ViewResult(view string, status int, data gin.H) Result {
	return Result{View: view, Status: status, Data: data}
}

func RedirectResult(location string) Result {
	return Result{Redirect: location}
}
