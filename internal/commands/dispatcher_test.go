package commands

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/front", nil)
	return c
}

func TestDispatcherRoutesKnownCommands(t *testing.T) {
	fallback := HandlerFunc(func(c *gin.Context) Result {
		return ViewResult("board/list", http.StatusOK, gin.H{"source": "fallback"})
	})
	d := NewDispatcher(fallback)
	d.Register("boardView", HandlerFunc(func(c *gin.Context) Result {
		return ViewResult("board/view", http.StatusOK, gin.H{"source": "view"})
	}))

	h, known := d.Resolve("boardView")
	assert.True(t, known)
	result := h.Execute(testContext(t))
	assert.Equal(t, "board/view", result.View)

	_, known = d.Resolve("noSuchCommand")
	assert.False(t, known)
}

func TestDispatcherUnknownCommandFallsBack(t *testing.T) {
	fallback := HandlerFunc(func(c *gin.Context) Result {
		return ViewResult("board/list", http.StatusOK, gin.H{"posts": []string{}})
	})
	d := NewDispatcher(fallback)

	result := d.Dispatch(testContext(t), "mystery")

	assert.Equal(t, "board/list", result.View)
	require.NotNil(t, result.Data)
	assert.Equal(t, "unknown command: mystery", result.Data["message"])
	// The fallback's own payload survives alongside the message.
	assert.Contains(t, result.Data, "posts")
}

func TestDispatcherUnknownCommandWithNilData(t *testing.T) {
	fallback := HandlerFunc(func(c *gin.Context) Result {
		return Result{View: "board/list", Status: http.StatusOK}
	})
	d := NewDispatcher(fallback)

	result := d.Dispatch(testContext(t), "bogus")
	require.NotNil(t, result.Data)
	assert.Equal(t, "unknown command: bogus", result.Data["message"])
}

func TestDispatcherKnownCommandKeepsDataUntouched(t *testing.T) {
	d := NewDispatcher(HandlerFunc(func(c *gin.Context) Result {
		return Result{View: "board/list"}
	}))
	d.Register("boardList", HandlerFunc(func(c *gin.Context) Result {
		return ViewResult("board/list", http.StatusOK, gin.H{"page": 1})
	}))

	result := d.Dispatch(testContext(t), "boardList")
	assert.NotContains(t, result.Data, "message")
}

func TestRedirectResult(t *testing.T) {
	r := RedirectResult("/front?command=boardList")
	assert.Equal(t, "/front?command=boardList", r.Redirect)
	assert.Empty(t, r.View)
	assert.False(t, r.Handled)
}
