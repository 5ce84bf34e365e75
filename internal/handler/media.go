package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateCollection godoc
// @Summary Создать коллекцию
// @Tags collections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body CreateCollectionRequest true "Имя коллекции"
// @Success 200 {object} CollectionResponse
// @Router /collections [post]
func (h *Handler) CreateCollection(c *gin.Context) {
	var input CreateCollectionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	collection, err := h.media.CreateCollection(c.Request.Context(), currentUser(c).TelegramID, input.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollectionResponse(collection))
}

// GetMyCollections godoc
// @Summary Коллекции текущего пользователя
// @Tags collections
// @Security BearerAuth
// @Produce json
// @Param offset query int false "offset" default(0)
// @Param limit query int false "limit (без него отдаются все коллекции)"
// @Success 200 {array} CollectionResponse
// @Router /collections/my [get]
func (h *Handler) GetMyCollections(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var limit *int
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = &parsed
	}

	collections, err := h.media.GetUserCollections(c.Request.Context(), currentUser(c).TelegramID, offset, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		resp = append(resp, toCollectionResponse(&collection))
	}
	c.JSON(http.StatusOK, resp)
}

// GetCollection godoc
// @Summary Коллекция с медиа-блоками
// @Tags collections
// @Security BearerAuth
// @Produce json
// @Param id path string true "id коллекции"
// @Param offset query int false "offset по блокам" default(0)
// @Param limit query int false "limit по блокам"
// @Success 200 {object} CollectionResponse
// @Failure 404 {object} ErrorMessage
// @Router /collections/{id} [get]
func (h *Handler) GetCollection(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection id"})
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var limit *int
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = &parsed
	}

	collection, err := h.media.GetCollection(c.Request.Context(), collectionID, offset, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollectionResponse(collection))
}

// DeleteCollection godoc
// @Summary Удалить коллекцию
// @Tags collections
// @Security BearerAuth
// @Produce json
// @Param id path string true "id коллекции"
// @Success 200 {object} BaseResponse
// @Failure 404 {object} ErrorMessage
// @Router /collections/{id} [delete]
func (h *Handler) DeleteCollection(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection id"})
		return
	}

	if err := h.media.DeleteCollection(c.Request.Context(), collectionID, currentUser(c).TelegramID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, BaseResponse{Message: "Коллекция успешно удалена"})
}

// UpdateCollectionName godoc
// @Summary Переименовать коллекцию
// @Tags collections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "id коллекции"
// @Param input body UpdateCollectionNameRequest true "Новое имя"
// @Success 200 {object} BaseResponse
// @Failure 404 {object} ErrorMessage
// @Router /collections/{id} [patch]
func (h *Handler) UpdateCollectionName(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection id"})
		return
	}
	var input UpdateCollectionNameRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := h.media.UpdateCollectionName(c.Request.Context(), collectionID, currentUser(c).TelegramID, input.Name); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, BaseResponse{Message: "Имя коллекции изменено"})
}

// SendMedia godoc
// @Summary Прикрепить медиа-блок (фото + видео) к коллекции
// @Tags collections
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "id коллекции"
// @Param photo formData file true "фото"
// @Param video formData file true "видео"
// @Success 200 {object} MediaBlockResponse
// @Router /collections/{id}/media_blocks [post]
func (h *Handler) SendMedia(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection id"})
		return
	}

	photo, err := readFormFile(c, "photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo"})
		return
	}
	video, err := readFormFile(c, "video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing video"})
		return
	}

	block, err := h.media.AddMediaBlock(c.Request.Context(), collectionID, currentUser(c).TelegramID, photo, video)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMediaBlockResponse(block))
}

// PatchMediaBlock godoc
// @Summary Заменить фото и/или видео медиа-блока
// @Tags collections
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param block_id path string true "id блока"
// @Param photo formData file false "новое фото"
// @Param video formData file false "новое видео"
// @Success 200 {object} BaseResponse
// @Failure 404 {object} ErrorMessage
// @Router /collections/media_blocks/{block_id} [patch]
func (h *Handler) PatchMediaBlock(c *gin.Context) {
	blockID, err := uuid.Parse(c.Param("block_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block id"})
		return
	}

	// Оба файла опциональны: меняется только то, что прислали
	photo, _ := readFormFile(c, "photo")
	video, _ := readFormFile(c, "video")

	if err := h.media.PatchMediaBlock(c.Request.Context(), blockID, currentUser(c).TelegramID, photo, video); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, BaseResponse{Message: "Данные медиа-блока обновлены"})
}

// DeleteMediaBlock godoc
// @Summary Удалить медиа-блок
// @Tags collections
// @Security BearerAuth
// @Produce json
// @Param block_id path string true "id блока"
// @Success 200 {object} BaseResponse
// @Failure 404 {object} ErrorMessage
// @Router /collections/media_blocks/{block_id} [delete]
func (h *Handler) DeleteMediaBlock(c *gin.Context) {
	blockID, err := uuid.Parse(c.Param("block_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block id"})
		return
	}

	if err := h.media.DeleteMediaBlock(c.Request.Context(), blockID, currentUser(c).TelegramID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, BaseResponse{Message: "Блок успешно удален"})
}

// GetCollectionBlocks godoc
// @Summary Только медиа-блоки коллекции
// @Tags collections
// @Security BearerAuth
// @Produce json
// @Param id path string true "id коллекции"
// @Success 200 {array} MediaBlockResponse
// @Router /collections/{id}/only_blocks [get]
func (h *Handler) GetCollectionBlocks(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection id"})
		return
	}

	blocks, err := h.media.GetCollectionMediaBlocks(c.Request.Context(), collectionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]MediaBlockResponse, 0, len(blocks))
	for _, block := range blocks {
		resp = append(resp, toMediaBlockResponse(&block))
	}
	c.JSON(http.StatusOK, resp)
}

func readFormFile(c *gin.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	var src multipart.File
	src, err = fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
