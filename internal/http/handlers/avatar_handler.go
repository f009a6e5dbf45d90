package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
	"github.com/ignatzorin/skillswap-backend/internal/storage"
)

// Разрешённые типы файлов для загрузки
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Разрешённые расширения файлов
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AvatarHandler управляет загрузкой и выдачей аватаров.
type AvatarHandler struct {
	users   *repository.UserRepository
	storage *storage.AvatarStorage
}

// NewAvatarHandler создаёт новый хэндлер.
func NewAvatarHandler(users *repository.UserRepository, storage *storage.AvatarStorage) *AvatarHandler {
	return &AvatarHandler{users: users, storage: storage}
}

// Upload обрабатывает POST /profile/avatar.
func (h *AvatarHandler) Upload(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "поле file обязательно")
		return
	}

	if file.Size == 0 {
		common.RespondBadRequest(c, "файл не может быть пустым")
		return
	}

	// Валидация расширения файла
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		common.RespondBadRequest(c,
			fmt.Sprintf("неподдерживаемый формат файла. Разрешены: %s", strings.Join(extensionList(), ", ")))
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondInternalError(c, err.Error())
		return
	}
	defer src.Close()

	// Читаем первые 512 байт для проверки магических байтов
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		common.RespondBadRequest(c, "не удалось прочитать файл")
		return
	}

	// Проверяем магические байты (реальный тип файла)
	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown {
		common.RespondBadRequest(c, "не удалось определить тип файла. Разрешены только изображения")
		return
	}

	contentType := kind.MIME.Value
	if !allowedMimeTypes[contentType] {
		common.RespondBadRequest(c,
			fmt.Sprintf("неподдерживаемый тип файла (%s). Разрешены только изображения", contentType))
		return
	}

	// Расширение должно соответствовать реальному типу файла
	expectedExt := "." + kind.Extension
	if ext != expectedExt && !(ext == ".jpg" && expectedExt == ".jpeg") && !(ext == ".jpeg" && expectedExt == ".jpg") {
		common.RespondBadRequest(c,
			fmt.Sprintf("расширение файла (%s) не соответствует реальному типу (%s)", ext, expectedExt))
		return
	}

	// Сбрасываем позицию файла для сохранения
	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			common.RespondInternalError(c, "не удалось сбросить позицию файла")
			return
		}
	}

	// Старый аватар удаляем после успешной записи нового
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondInternalError(c, "")
		return
	}
	oldPath := user.AvatarPath

	relativePath, _, err := h.storage.Save(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		common.RespondInternalError(c, err.Error())
		return
	}

	avatarPath := filepath.ToSlash(relativePath)
	if err := h.users.SetAvatar(c.Request.Context(), userID, avatarPath); err != nil {
		common.RespondInternalError(c, "не удалось сохранить аватар")
		return
	}

	if oldPath != nil && *oldPath != "" {
		_ = h.storage.Delete(c.Request.Context(), *oldPath)
	}

	c.JSON(http.StatusCreated, gin.H{"avatar_path": avatarPath})
}

// Get обрабатывает GET /users/:id/avatar.
func (h *AvatarHandler) Get(c *gin.Context) {
	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			common.RespondNotFound(c, "пользователь не найден")
			return
		}
		common.RespondInternalError(c, "")
		return
	}

	if user.AvatarPath == nil || *user.AvatarPath == "" {
		common.RespondNotFound(c, "аватар не найден")
		return
	}

	f, err := h.storage.Open(c.Request.Context(), *user.AvatarPath)
	if err != nil {
		common.RespondNotFound(c, "аватар не найден")
		return
	}
	defer f.Close()

	if _, err := io.Copy(c.Writer, f); err != nil {
		// Заголовки могли уже уйти клиенту, лишь фиксируем обрыв
		c.Abort()
	}
}

// extensionList возвращает список разрешённых расширений.
func extensionList() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	return exts
}
