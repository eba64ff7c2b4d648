package commands

import (
	"net/http"

	"goboard/internal/services"

	"github.com/gin-gonic/gin"
)

// SignupCommand registers a user and opens a session.
type SignupCommand struct {
	auth *services.AuthService
}

func NewSignupCommand(auth *services.AuthService) *SignupCommand {
	return &SignupCommand{auth: auth}
}

func (cmd *SignupCommand) Execute(c *gin.Context) Result {
	res, err := cmd.auth.Signup(c.Request.Context(), services.SignupInput{
		Username:    c.PostForm("username"),
		Password:    c.PostForm("password"),
		DisplayName: c.PostForm("displayName"),
	})
	if err != nil {
		return errorResult(ViewLogin, err)
	}
	return ViewResult(ViewBoardList, http.StatusOK, gin.H{"auth": res})
}

// LoginCommand authenticates a user and opens a session.
type LoginCommand struct {
	auth *services.AuthService
}

func NewLoginCommand(auth *services.AuthService) *LoginCommand {
	return &LoginCommand{auth: auth}
}

func (cmd *LoginCommand) Execute(c *gin.Context) Result {
	res, err := cmd.auth.Login(c.Request.Context(), services.LoginInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		return errorResult(ViewLogin, err)
	}
	return ViewResult(ViewBoardList, http.StatusOK, gin.H{"auth": res})
}

// LogoutCommand revokes the caller's session.
type LogoutCommand struct {
	auth *services.AuthService
}

func NewLogoutCommand(auth *services.AuthService) *LogoutCommand {
	return &LogoutCommand{auth: auth}
}

func (cmd *LogoutCommand) Execute(c *gin.Context) Result {
	sessionID, ok := services.SessionIDFromContext(c.Request.Context())
	if !ok {
		return loginRequired()
	}
	if err := cmd.auth.Logout(c.Request.Context(), sessionID.String()); err != nil {
		return errorResult(ViewBoardList, err)
	}
	return RedirectResult("/front?command=boardList")
}
