package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kng194/kng-rnd/internal/dto"
	"github.com/kng194/kng-rnd/internal/service"
	"github.com/kng194/kng-rnd/pkg/response"
)

// CrewHandler 成员模块 HTTP 处理器
type CrewHandler struct {
	crewSvc       service.CrewService
	photoSvc      service.PhotoService
	maxPhotoBytes int64
}

// NewCrewHandler 创建 CrewHandler
func NewCrewHandler(crewSvc service.CrewService, photoSvc service.PhotoService, maxPhotoBytes int64) *CrewHandler {
	return &CrewHandler{crewSvc: crewSvc, photoSvc: photoSvc, maxPhotoBytes: maxPhotoBytes}
}

// List 成员列表
// GET /api/v1/crews?q=
func (h *CrewHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "Parameter tidak valid")
		return
	}

	result, err := h.crewSvc.List(c.Request.Context(), q.Q)
	if err != nil {
		h.handleCrewError(c, err)
		return
	}

	response.OK(c, result)
}

// Get 成员详情
// GET /api/v1/crews/:id
func (h *CrewHandler) Get(c *gin.Context) {
	result, err := h.crewSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCrewError(c, err)
		return
	}

	response.OK(c, result)
}

// FormDefaults 新建表单默认值
// GET /api/v1/crews/form-defaults
func (h *CrewHandler) FormDefaults(c *gin.Context) {
	response.OK(c, h.crewSvc.FormDefaults())
}

// Create 新建成员
// POST /api/v1/crews
func (h *CrewHandler) Create(c *gin.Context) {
	var req dto.SaveCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Parameter tidak valid")
		return
	}
	req.ID = ""

	result, err := h.crewSvc.Save(c.Request.Context(), &req)
	if err != nil {
		h.handleCrewError(c, err)
		return
	}

	response.Created(c, result)
}

// Update 编辑成员
// PUT /api/v1/crews/:id
func (h *CrewHandler) Update(c *gin.Context) {
	var req dto.SaveCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Parameter tidak valid")
		return
	}
	req.ID = c.Param("id")

	result, err := h.crewSvc.Save(c.Request.Context(), &req)
	if err != nil {
		h.handleCrewError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除成员，必须显式确认
// DELETE /api/v1/crews/:id?confirm=true
func (h *CrewHandler) Delete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		h.handleCrewError(c, service.ErrConfirmationRequired)
		return
	}

	result, err := h.crewSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCrewError(c, err)
		return
	}

	response.OK(c, result)
}

// UploadPhoto 上传成员照片，返回可写入 photo_url 的地址
// POST /api/v1/crews/photo (multipart, 字段 photo)
func (h *CrewHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		h.handleCrewError(c, service.ErrPhotoEmpty)
		return
	}
	if fh.Size > h.maxPhotoBytes {
		h.handleCrewError(c, service.ErrPhotoTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, 10001, "Berkas tidak dapat dibaca")
		return
	}
	defer f.Close()

	// 多读一个字节，交给 Service 判断是否超限
	data, err := io.ReadAll(io.LimitReader(f, h.maxPhotoBytes+1))
	if err != nil {
		response.BadRequest(c, 10001, "Berkas tidak dapat dibaca")
		return
	}

	result, err := h.photoSvc.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		h.handleCrewError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *CrewHandler) handleCrewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCrewNotFound):
		response.NotFound(c, 21001, "Anggota tidak ditemukan")
	case errors.Is(err, service.ErrCrewInvalid):
		response.BadRequest(c, 21002, "Data anggota tidak lengkap atau tidak valid")
	case errors.Is(err, service.ErrConfirmationRequired):
		response.PreconditionRequired(c, 21003, "Konfirmasi diperlukan untuk menghapus anggota")
	case errors.Is(err, service.ErrPhotoEmpty):
		response.BadRequest(c, 24001, "Pilih foto terlebih dahulu")
	case errors.Is(err, service.ErrPhotoInvalidType):
		response.BadRequest(c, 24002, "Hanya berkas gambar yang didukung")
	case errors.Is(err, service.ErrPhotoTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, 24003, "Ukuran foto melebihi batas")
	case errors.Is(err, service.ErrPhotoUpload):
		response.Error(c, http.StatusBadGateway, 24004, "Gagal mengunggah foto")
	default:
		response.InternalError(c)
	}
}
