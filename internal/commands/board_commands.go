package commands

import (
	"net/http"
	"strconv"

	"goboard/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// View names handed to the rendering collaborator.
const (
	ViewBoardList  = "board/list"
	ViewBoardView  = "board/view"
	ViewBoardWrite = "board/write"
	ViewLogin      = "auth/login"
)

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	return services.UserIDFromContext(c.Request.Context())
}

func loginRequired() Result {
	return ViewResult(ViewLogin, http.StatusUnauthorized, gin.H{"error": "login required"})
}

func errorResult(view string, err error) Result {
	return ViewResult(view, services.HTTPStatus(err), gin.H{"error": err.Error()})
}

// BoardListCommand renders the paginated, searchable post listing. It is
// also the dispatcher fallback for unknown command names.
type BoardListCommand struct {
	boards *services.BoardService
}

func NewBoardListCommand(boards *services.BoardService) *BoardListCommand {
	return &BoardListCommand{boards: boards}
}

func (cmd *BoardListCommand) Execute(c *gin.Context) Result {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	query := c.Query("q")

	items, total, err := cmd.boards.List(c.Request.Context(), query, page, limit)
	if err != nil {
		return errorResult(ViewBoardList, err)
	}

	return ViewResult(ViewBoardList, http.StatusOK, gin.H{
		"boards": items,
		"total":  total,
		"page":   page,
		"limit":  limit,
		"query":  query,
	})
}

// BoardWriteCommand renders the empty post form.
type BoardWriteCommand struct{}

func NewBoardWriteCommand() *BoardWriteCommand { return &BoardWriteCommand{} }

func (cmd *BoardWriteCommand) Execute(c *gin.Context) Result {
	if _, ok := currentUser(c); !ok {
		return loginRequired()
	}
	return ViewResult(ViewBoardWrite, http.StatusOK, nil)
}

// BoardInsertCommand creates a post and ingests any submitted files. The
// post is kept even when some or all attachments fail; failures come back
// as a banner on the form rather than an error page.
type BoardInsertCommand struct {
	boards  *services.BoardService
	uploads *services.UploadService
}

func NewBoardInsertCommand(boards *services.BoardService, uploads *services.UploadService) *BoardInsertCommand {
	return &BoardInsertCommand{boards: boards, uploads: uploads}
}

func (cmd *BoardInsertCommand) Execute(c *gin.Context) Result {
	userID, ok := currentUser(c)
	if !ok {
		return loginRequired()
	}

	title := c.PostForm("title")
	content := c.PostForm("content")

	b, err := cmd.boards.Create(c.Request.Context(), userID, title, content)
	if err != nil {
		return ViewResult(ViewBoardWrite, services.HTTPStatus(err), gin.H{
			"error":   err.Error(),
			"title":   title,
			"content": content,
		})
	}

	result := cmd.uploads.Ingest(c.Request.Context(), b.ID, formParts(c))
	if len(result.Failures) > 0 {
		return ViewResult(ViewBoardWrite, http.StatusOK, gin.H{
			"board":  b,
			"upload": result,
		})
	}

	return RedirectResult("/front?command=boardList")
}

// BoardViewCommand renders one post with its attachments.
type BoardViewCommand struct {
	boards *services.BoardService
}

func NewBoardViewCommand(boards *services.BoardService) *BoardViewCommand {
	return &BoardViewCommand{boards: boards}
}

func (cmd *BoardViewCommand) Execute(c *gin.Context) Result {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return ViewResult(ViewBoardList, http.StatusBadRequest, gin.H{"error": "invalid board id"})
	}

	b, files, err := cmd.boards.Get(c.Request.Context(), id)
	if err != nil {
		return errorResult(ViewBoardList, err)
	}

	return ViewResult(ViewBoardView, http.StatusOK, gin.H{
		"board":       b,
		"attachments": files,
	})
}

// BoardUpdateCommand edits a post and ingests newly submitted files.
type BoardUpdateCommand struct {
	boards  *services.BoardService
	uploads *services.UploadService
}

func NewBoardUpdateCommand(boards *services.BoardService, uploads *services.UploadService) *BoardUpdateCommand {
	return &BoardUpdateCommand{boards: boards, uploads: uploads}
}

func (cmd *BoardUpdateCommand) Execute(c *gin.Context) Result {
	userID, ok := currentUser(c)
	if !ok {
		return loginRequired()
	}

	id, err := uuid.Parse(c.PostForm("id"))
	if err != nil {
		return ViewResult(ViewBoardList, http.StatusBadRequest, gin.H{"error": "invalid board id"})
	}

	title := c.PostForm("title")
	content := c.PostForm("content")

	if err := cmd.boards.Update(c.Request.Context(), id, userID, title, content); err != nil {
		return errorResult(ViewBoardView, err)
	}

	result := cmd.uploads.Ingest(c.Request.Context(), id, formParts(c))
	if len(result.Failures) > 0 {
		return ViewResult(ViewBoardWrite, http.StatusOK, gin.H{
			"board_id": id,
			"upload":   result,
		})
	}

	return RedirectResult("/front?command=boardView&id=" + id.String())
}

// BoardDeleteCommand removes a post, its attachments included. The form
// must confirm the deletion explicitly.
type BoardDeleteCommand struct {
	boards *services.BoardService
}

func NewBoardDeleteCommand(boards *services.BoardService) *BoardDeleteCommand {
	return &BoardDeleteCommand{boards: boards}
}

func (cmd *BoardDeleteCommand) Execute(c *gin.Context) Result {
	userID, ok := currentUser(c)
	if !ok {
		return loginRequired()
	}

	if c.PostForm("confirm") != "true" {
		return ViewResult(ViewBoardView, http.StatusBadRequest, gin.H{"error": "deletion not confirmed"})
	}

	id, err := uuid.Parse(c.PostForm("id"))
	if err != nil {
		return ViewResult(ViewBoardList, http.StatusBadRequest, gin.H{"error": "invalid board id"})
	}

	if err := cmd.boards.Delete(c.Request.Context(), id, userID); err != nil {
		return errorResult(ViewBoardView, err)
	}

	return RedirectResult("/front?command=boardList")
}

// formParts pulls the attachment slots out of the multipart form. A
// request without a multipart body simply has no parts.
func formParts(c *gin.Context) []services.Part {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return services.PartsFromHeaders(form.File["files"])
}
