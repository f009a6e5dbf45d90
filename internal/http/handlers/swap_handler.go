package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	domainrepo "github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/swap"
	"github.com/ignatzorin/skillswap-backend/internal/watch"
)

// SwapHandler предоставляет HTTP слой для запросов на обмен.
type SwapHandler struct {
	create    *swap.CreateRequestUseCase
	respond   *swap.RespondUseCase
	cancel    *swap.CancelRequestUseCase
	complete  *swap.CompleteSwapUseCase
	list      *swap.ListRequestsUseCase
	swaps     domainrepo.SwapRepository
	snapshots *service.SnapshotService
}

// NewSwapHandler создаёт хэндлер.
func NewSwapHandler(
	create *swap.CreateRequestUseCase,
	respond *swap.RespondUseCase,
	cancel *swap.CancelRequestUseCase,
	complete *swap.CompleteSwapUseCase,
	list *swap.ListRequestsUseCase,
	swaps domainrepo.SwapRepository,
	snapshots *service.SnapshotService,
) *SwapHandler {
	return &SwapHandler{
		create:    create,
		respond:   respond,
		cancel:    cancel,
		complete:  complete,
		list:      list,
		swaps:     swaps,
		snapshots: snapshots,
	}
}

// Create обрабатывает POST /swaps.
func (h *SwapHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateSwapRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор получателя")
		return
	}
	offeredID, err := uuid.Parse(req.OfferedSkillID)
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор предлагаемого навыка")
		return
	}
	requestedID, err := uuid.Parse(req.RequestedSkillID)
	if err != nil {
		common.RespondBadRequest(c, "неверный идентификатор запрашиваемого навыка")
		return
	}

	result, err := h.create.Execute(c.Request.Context(), swap.CreateRequestInput{
		RequesterID:      userID,
		RecipientID:      recipientID,
		OfferedSkillID:   offeredID,
		RequestedSkillID: requestedID,
		Message:          req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.snapshots.RefreshAsync(watch.CollectionSwaps)
	c.JSON(http.StatusCreated, toSwapModel(result))
}

// Get обрабатывает GET /swaps/:id. Запрос виден только его участникам.
func (h *SwapHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	swapID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.swaps.FindByID(c.Request.Context(), swapID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !result.IsParticipant(userID) {
		respondError(c, apperror.ErrNotAParticipant)
		return
	}

	c.JSON(http.StatusOK, toSwapModel(result))
}

// List обрабатывает GET /swaps?role=sent|received|all.
func (h *SwapHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	role := c.DefaultQuery("role", string(domainrepo.SwapRoleAll))

	results, err := h.list.Execute(c.Request.Context(), userID, domainrepo.SwapRole(role))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*models.SwapRequest, 0, len(results))
	for _, r := range results {
		out = append(out, toSwapModel(r))
	}

	c.JSON(http.StatusOK, out)
}

// Respond обрабатывает POST /swaps/:id/respond.
func (h *SwapHandler) Respond(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	swapID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.RespondSwapRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.respond.Execute(c.Request.Context(), swapID, userID, swap.Decision(req.Decision))
	if err != nil {
		respondError(c, err)
		return
	}

	h.snapshots.RefreshAsync(watch.CollectionSwaps)
	c.JSON(http.StatusOK, toSwapModel(result))
}

// Cancel обрабатывает POST /swaps/:id/cancel.
func (h *SwapHandler) Cancel(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	swapID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.cancel.Execute(c.Request.Context(), swapID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.snapshots.RefreshAsync(watch.CollectionSwaps)
	c.JSON(http.StatusOK, toSwapModel(result))
}

// Complete обрабатывает POST /swaps/:id/complete.
// Завершение требует оценки партнёра в том же запросе.
func (h *SwapHandler) Complete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	swapID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.CompleteSwapRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var comment *string
	if req.Comment != "" {
		comment = &req.Comment
	}

	result, err := h.complete.Execute(c.Request.Context(), swap.CompleteSwapInput{
		SwapID:  swapID,
		ActorID: userID,
		Score:   req.Score,
		Comment: comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// Завершение меняет и рейтинг контрагента, обновляем оба снимка.
	h.snapshots.RefreshAsync(watch.CollectionSwaps, watch.CollectionUsers)
	c.JSON(http.StatusOK, toSwapModel(result))
}

// toSwapModel переводит доменную сущность в сериализуемую модель.
func toSwapModel(e *entity.SwapRequest) *models.SwapRequest {
	return &models.SwapRequest{
		ID:               e.ID,
		RequesterID:      e.RequesterID,
		RecipientID:      e.RecipientID,
		OfferedSkillID:   e.OfferedSkillID,
		RequestedSkillID: e.RequestedSkillID,
		Message:          e.Message,
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
