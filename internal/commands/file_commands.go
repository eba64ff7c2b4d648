package commands

import (
	"errors"
	"net/http"
	"strconv"

	"goboard/internal/services"
	board_errors "goboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FileUploadCommand attaches files to an existing post outside the
// insert/update flow.
type FileUploadCommand struct {
	boards  *services.BoardService
	uploads *services.UploadService
}

func NewFileUploadCommand(boards *services.BoardService, uploads *services.UploadService) *FileUploadCommand {
	return &FileUploadCommand{boards: boards, uploads: uploads}
}

func (cmd *FileUploadCommand) Execute(c *gin.Context) Result {
	userID, ok := currentUser(c)
	if !ok {
		return loginRequired()
	}

	boardID, err := uuid.Parse(c.PostForm("boardId"))
	if err != nil {
		return ViewResult(ViewBoardWrite, http.StatusBadRequest, gin.H{"error": "board id is required"})
	}

	b, _, err := cmd.boards.Get(c.Request.Context(), boardID)
	if err != nil {
		return errorResult(ViewBoardWrite, err)
	}
	if b.AuthorID != userID {
		return errorResult(ViewBoardWrite, board_errors.ErrForbidden)
	}

	result := cmd.uploads.Ingest(c.Request.Context(), boardID, formParts(c))
	return ViewResult(ViewBoardWrite, http.StatusOK, gin.H{
		"board_id": boardID,
		"upload":   result,
	})
}

// FileDownloadCommand streams an attachment back to the client. Security
// refusals stay generic; the log carries the path detail.
type FileDownloadCommand struct {
	downloads *services.DownloadService
}

func NewFileDownloadCommand(downloads *services.DownloadService) *FileDownloadCommand {
	return &FileDownloadCommand{downloads: downloads}
}

func (cmd *FileDownloadCommand) Execute(c *gin.Context) Result {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return ViewResult(ViewBoardView, http.StatusBadRequest, gin.H{"error": "invalid file id"})
	}

	d, err := cmd.downloads.Open(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, board_errors.ErrSecurityViolation) {
			return ViewResult(ViewBoardView, http.StatusForbidden, gin.H{"error": "file not available"})
		}
		return errorResult(ViewBoardView, err)
	}
	defer d.File.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Length", strconv.FormatInt(d.Attachment.SizeBytes, 10))
	c.Header("Content-Disposition", services.ContentDisposition(d.Attachment.OriginalName))
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	if err := cmd.downloads.Stream(c.Writer, d); err != nil {
		// Headers are out; all that is left is to stop.
		_ = c.Error(err)
	}

	return Result{Handled: true}
}

// FileDeleteCommand removes a single attachment and answers with a JSON
// payload for asynchronous form handling.
type FileDeleteCommand struct {
	attachments *services.AttachmentService
}

func NewFileDeleteCommand(attachments *services.AttachmentService) *FileDeleteCommand {
	return &FileDeleteCommand{attachments: attachments}
}

func (cmd *FileDeleteCommand) Execute(c *gin.Context) Result {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "login required"})
		return Result{Handled: true}
	}

	fileID, err := uuid.Parse(c.PostForm("fileId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid file id"})
		return Result{Handled: true}
	}

	if err := cmd.attachments.Delete(c.Request.Context(), fileID, userID); err != nil {
		message := err.Error()
		if errors.Is(err, board_errors.ErrSecurityViolation) {
			message = "file not available"
		}
		c.JSON(services.HTTPStatus(err), gin.H{"success": false, "message": message})
		return Result{Handled: true}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "file deleted"})
	return Result{Handled: true}
}
