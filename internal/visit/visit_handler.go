package visit

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Yadlapure/health-care/internal/identity"
	"github.com/Yadlapure/health-care/internal/middleware"
	"github.com/Yadlapure/health-care/internal/shared/apperror"
	"github.com/Yadlapure/health-care/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxImageBytes     = 10 << 20
	maxPrescriptions  = 10
	imageField        = "img"
	prescriptionField = "prescription_images"
)

var errImageTooLarge = apperror.New(apperror.CodeInvalidInput, "image exceeds 10MB", http.StatusRequestEntityTooLarge)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("visit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("visit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("visit request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bindError(c *gin.Context, op string, err error) {
	h.logger.Warn("http "+op+" validation failed", zap.Error(err))
	response.Invalid(c, err)
}

func actorFrom(c *gin.Context) Actor {
	return Actor{
		UserID: c.GetString(middleware.CtxUserID),
		Role:   identity.Role(c.GetString(middleware.CtxRole)),
	}
}

func (h *Handler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "assign visit", err)
		return
	}

	resp, err := h.service.Assign(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Unassign(c *gin.Context) {
	var req UnassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "unassign visit", err)
		return
	}

	resp, err := h.service.Unassign(c.Request.Context(), req.VisitID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Extend(c *gin.Context) {
	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "extend visit", err)
		return
	}

	resp, err := h.service.Extend(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CheckInOut(c *gin.Context) {
	var req CheckInOutRequest
	if err := c.ShouldBind(&req); err != nil {
		h.bindError(c, "check in/out", err)
		return
	}

	fh, err := c.FormFile(imageField)
	if err != nil {
		h.bindError(c, "check in/out", err)
		return
	}
	img, err := readUpload(fh)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.CheckInOut(c.Request.Context(), actorFrom(c), req, img)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateVitals(c *gin.Context) {
	var req VitalsRequest
	if err := c.ShouldBind(&req); err != nil {
		h.bindError(c, "update vitals", err)
		return
	}

	var uploads []Upload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File[prescriptionField]
		if len(files) > maxPrescriptions {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid input", "too many prescription images")
			return
		}
		for _, fh := range files {
			u, err := readUpload(fh)
			if err != nil {
				h.writeServiceError(c, err)
				return
			}
			uploads = append(uploads, u)
		}
	}

	resp, err := h.service.UpdateVitals(c.Request.Context(), actorFrom(c), req, uploads)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.ListVisits(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	visitID := c.Param("visit_id")
	h.logger.Debug("http get visit", zap.String("visit_id", visitID))

	resp, err := h.service.GetByID(c.Request.Context(), actorFrom(c), visitID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ImageURLs(c *gin.Context) {
	var req ImageURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "image urls", err)
		return
	}

	resp, err := h.service.ImageURLs(c.Request.Context(), actorFrom(c), req.Keys)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func readUpload(fh *multipart.FileHeader) (Upload, error) {
	if fh.Size > maxImageBytes {
		return Upload{}, errImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return Upload{}, apperror.Wrap(err, apperror.CodeInvalidInput, "unreadable image", http.StatusBadRequest)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return Upload{}, apperror.Wrap(err, apperror.CodeInvalidInput, "unreadable image", http.StatusBadRequest)
	}
	if len(data) > maxImageBytes {
		return Upload{}, errImageTooLarge
	}
	return Upload{Filename: fh.Filename, Data: data}, nil
}
