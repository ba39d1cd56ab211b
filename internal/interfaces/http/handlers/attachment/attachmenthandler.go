package attachment

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/attachment/usecases"
	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type AttachmentHandler struct {
	uploadUC usecases.UploadAttachmentExecutor
	logger   logger.Interface
}

func NewAttachmentHandler(uploadUC usecases.UploadAttachmentExecutor) *AttachmentHandler {
	return &AttachmentHandler{
		uploadUC: uploadUC,
		logger:   logger.NewLogger(),
	}
}

// Upload handles POST /attachments. The file comes in as multipart form
// data under the "file" field, with optional ticket_id and message_id
// fields when the upload targets an existing ticket.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file is required"))
		return
	}

	if fileHeader.Size > constants.MaxAttachmentSize {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file exceeds the maximum allowed size"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Warnw("failed to open uploaded file", "error", err, "file_name", fileHeader.Filename)
		utils.ErrorResponseWithError(c, errors.NewValidationError("unable to read uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxAttachmentSize+1))
	if err != nil {
		h.logger.Warnw("failed to read uploaded file", "error", err, "file_name", fileHeader.Filename)
		utils.ErrorResponseWithError(c, errors.NewValidationError("unable to read uploaded file"))
		return
	}

	cmd := usecases.UploadAttachmentCommand{
		Actor:       actor,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}

	if ticketID, parseErr := parseOptionalUint(c.PostForm("ticket_id")); parseErr != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid ticket_id"))
		return
	} else if ticketID != nil {
		cmd.TicketID = *ticketID
	}

	messageID, parseErr := parseOptionalUint(c.PostForm("message_id"))
	if parseErr != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid message_id"))
		return
	}
	cmd.MessageID = messageID

	result, err := h.uploadUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment uploaded successfully")
}

func parseOptionalUint(raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, strconv.ErrSyntax
	}
	v := uint(id)
	return &v, nil
}
