package swap_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/usecase/swap"
)

type mockSwapRepository struct {
	mu    sync.Mutex
	swaps []*entity.SwapRequest
}

func newMockSwapRepository() *mockSwapRepository {
	return &mockSwapRepository{}
}

func (m *mockSwapRepository) Create(ctx context.Context, s *entity.SwapRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.swaps = append(m.swaps, &copied)
	return nil
}

func (m *mockSwapRepository) Update(ctx context.Context, s *entity.SwapRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.swaps {
		if existing.ID == s.ID {
			copied := *s
			m.swaps[i] = &copied
			return nil
		}
	}
	return apperror.ErrSwapNotFound
}

func (m *mockSwapRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.swaps {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockSwapRepository) ListForUser(ctx context.Context, userID uuid.UUID, role repository.SwapRole) ([]*entity.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*entity.SwapRequest
	for _, s := range m.swaps {
		match := false
		switch role {
		case repository.SwapRoleSent:
			match = s.RequesterID == userID
		case repository.SwapRoleReceived:
			match = s.RecipientID == userID
		case repository.SwapRoleAll:
			match = s.RequesterID == userID || s.RecipientID == userID
		}
		if match {
			copied := *s
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type mockSkillRepository struct {
	skills map[uuid.UUID]*entity.Skill
}

func newMockSkillRepository() *mockSkillRepository {
	return &mockSkillRepository{skills: make(map[uuid.UUID]*entity.Skill)}
}

func (m *mockSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error) {
	if s, ok := m.skills[id]; ok {
		return s, nil
	}
	return nil, nil
}

func (m *mockSkillRepository) CountActiveOffered(ctx context.Context, ownerID uuid.UUID) (int, error) {
	count := 0
	for _, s := range m.skills {
		if s.OwnerID == ownerID && s.IsActive && s.IsOffered() {
			count++
		}
	}
	return count, nil
}

func (m *mockSkillRepository) add(ownerID uuid.UUID, title string, direction valueobject.SkillDirection) *entity.Skill {
	s := &entity.Skill{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Category:  "Programming",
		Level:     valueobject.SkillLevelIntermediate,
		Direction: direction,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	m.skills[s.ID] = s
	return s
}

type mockFeedbackRepository struct {
	feedback []*models.Feedback
}

func newMockFeedbackRepository() *mockFeedbackRepository {
	return &mockFeedbackRepository{}
}

func (m *mockFeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	f.ID = uuid.New()
	f.CreatedAt = time.Now()
	copied := *f
	m.feedback = append(m.feedback, &copied)
	return nil
}

func (m *mockFeedbackRepository) FindBySwapAndRater(ctx context.Context, swapID, raterID uuid.UUID) (*models.Feedback, error) {
	for _, f := range m.feedback {
		if f.SwapID == swapID && f.RaterID == raterID {
			return f, nil
		}
	}
	return nil, nil
}

func (m *mockFeedbackRepository) ListByRatee(ctx context.Context, rateeID uuid.UUID) ([]models.Feedback, error) {
	var result []models.Feedback
	for _, f := range m.feedback {
		if f.RateeID == rateeID {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockFeedbackRepository) AverageScore(ctx context.Context, rateeID uuid.UUID) (float64, int, error) {
	sum, count := 0, 0
	for _, f := range m.feedback {
		if f.RateeID == rateeID {
			sum += f.Score
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type mockRatingUpdater struct {
	ratings    map[uuid.UUID]float64
	counts     map[uuid.UUID]int
	totalSwaps map[uuid.UUID]int
}

func newMockRatingUpdater() *mockRatingUpdater {
	return &mockRatingUpdater{
		ratings:    make(map[uuid.UUID]float64),
		counts:     make(map[uuid.UUID]int),
		totalSwaps: make(map[uuid.UUID]int),
	}
}

func (m *mockRatingUpdater) UpdateRating(ctx context.Context, userID uuid.UUID, rating float64, count int) error {
	m.ratings[userID] = rating
	m.counts[userID] = count
	return nil
}

func (m *mockRatingUpdater) IncrementTotalSwaps(ctx context.Context, userID uuid.UUID) error {
	m.totalSwaps[userID]++
	return nil
}

func createPendingSwap(t *testing.T, swapRepo *mockSwapRepository, skillRepo *mockSkillRepository, requesterID, recipientID uuid.UUID) *entity.SwapRequest {
	t.Helper()

	offered := skillRepo.add(requesterID, "React Development", valueobject.SkillDirectionOffered)
	requested := skillRepo.add(recipientID, "Guitar Playing", valueobject.SkillDirectionOffered)

	uc := swap.NewCreateRequestUseCase(swapRepo, skillRepo, nil)
	created, err := uc.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID:      requesterID,
		RecipientID:      recipientID,
		OfferedSkillID:   offered.ID,
		RequestedSkillID: requested.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return created
}

func TestCreateRequest_Success(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()

	requesterID := uuid.New()
	recipientID := uuid.New()

	created := createPendingSwap(t, swapRepo, skillRepo, requesterID, recipientID)

	if created.Status != valueobject.SwapStatusPending {
		t.Errorf("expected status pending, got %s", created.Status)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt on a new request")
	}
}

func TestCreateRequest_SelfSwap(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()
	uc := swap.NewCreateRequestUseCase(swapRepo, skillRepo, nil)

	userID := uuid.New()
	offered := skillRepo.add(userID, "Python Programming", valueobject.SkillDirectionOffered)

	_, err := uc.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID:      userID,
		RecipientID:      userID,
		OfferedSkillID:   offered.ID,
		RequestedSkillID: offered.ID,
	})
	if err == nil {
		t.Fatal("expected error for self swap")
	}
	if !apperror.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateRequest_InvalidSkillOwnership(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()
	uc := swap.NewCreateRequestUseCase(swapRepo, skillRepo, nil)

	requesterID := uuid.New()
	recipientID := uuid.New()
	stranger := uuid.New()

	// Предлагаемый навык принадлежит третьему пользователю, а не инициатору.
	offered := skillRepo.add(stranger, "Digital Photography", valueobject.SkillDirectionOffered)
	requested := skillRepo.add(recipientID, "Yoga Instruction", valueobject.SkillDirectionOffered)

	_, err := uc.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID:      requesterID,
		RecipientID:      recipientID,
		OfferedSkillID:   offered.ID,
		RequestedSkillID: requested.ID,
	})
	if err == nil {
		t.Fatal("expected error for foreign offered skill")
	}

	// Запись не должна быть сохранена.
	all, _ := swapRepo.ListForUser(context.Background(), requesterID, repository.SwapRoleAll)
	if len(all) != 0 {
		t.Errorf("expected no persisted requests, got %d", len(all))
	}
}

func TestCreateRequest_NoOfferedSkills(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()
	uc := swap.NewCreateRequestUseCase(swapRepo, skillRepo, nil)

	requesterID := uuid.New()
	recipientID := uuid.New()

	// У инициатора только wanted-навык, активных offered нет.
	offered := skillRepo.add(requesterID, "Spanish Language", valueobject.SkillDirectionWanted)
	requested := skillRepo.add(recipientID, "Guitar Playing", valueobject.SkillDirectionOffered)

	_, err := uc.Execute(context.Background(), swap.CreateRequestInput{
		RequesterID:      requesterID,
		RecipientID:      recipientID,
		OfferedSkillID:   offered.ID,
		RequestedSkillID: requested.ID,
	})
	if err == nil {
		t.Fatal("expected error when requester has no active offered skills")
	}
}

func TestRespond_AcceptByRecipient(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()

	requesterID := uuid.New()
	recipientID := uuid.New()
	created := createPendingSwap(t, swapRepo, skillRepo, requesterID, recipientID)

	uc := swap.NewRespondUseCase(swapRepo, nil)
	updated, err := uc.Execute(context.Background(), created.ID, recipientID, swap.DecisionAccept)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Status != valueobject.SwapStatusAccepted {
		t.Errorf("expected status accepted, got %s", updated.Status)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Errorf("expected updatedAt to move forward")
	}
}

func TestRespond_NotRecipient(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()

	requesterID := uuid.New()
	recipientID := uuid.New()
	created := createPendingSwap(t, swapRepo, skillRepo, requesterID, recipientID)

	uc := swap.NewRespondUseCase(swapRepo, nil)
	_, err := uc.Execute(context.Background(), created.ID, requesterID, swap.DecisionAccept)
	if err == nil {
		t.Fatal("expected error when actor is not the recipient")
	}
	if !apperror.IsForbidden(err) {
		t.Errorf("expected forbidden error, got %v", err)
	}

	// Состояние не меняется при неудачном переходе.
	stored, _ := swapRepo.FindByID(context.Background(), created.ID)
	if stored.Status != valueobject.SwapStatusPending {
		t.Errorf("expected status to remain pending, got %s", stored.Status)
	}
}

func TestRespond_InvalidTransition(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()

	requesterID := uuid.New()
	recipientID := uuid.New()
	created := createPendingSwap(t, swapRepo, skillRepo, requesterID, recipientID)

	uc := swap.NewRespondUseCase(swapRepo, nil)
	if _, err := uc.Execute(context.Background(), created.ID, recipientID, swap.DecisionDecline); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Повторное решение по терминальному запросу.
	_, err := uc.Execute(context.Background(), created.ID, recipientID, swap.DecisionAccept)
	if err == nil {
		t.Fatal("expected error for transition out of terminal status")
	}
	if !apperror.IsConflict(err) {
		t.Errorf("expected conflict error, got %v", err)
	}

	stored, _ := swapRepo.FindByID(context.Background(), created.ID)
	if stored.Status != valueobject.SwapStatusDeclined {
		t.Errorf("expected status to remain declined, got %s", stored.Status)
	}
}

func TestCancel_ByRequesterOnly(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()

	requesterID := uuid.New()
	recipientID := uuid.New()
	created := createPendingSwap(t, swapRepo, skillRepo, requesterID, recipientID)

	uc := swap.NewCancelRequestUseCase(swapRepo, nil)

	if _, err := uc.Execute(context.Background(), created.ID, recipientID); err == nil {
		t.Fatal("expected error when recipient tries to cancel")
	}

	updated, err := uc.Execute(context.Background(), created.ID, requesterID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != valueobject.SwapStatusCancelled {
		t.Errorf("expected status cancelled, got %s", updated.Status)
	}
}

func TestComplete_FullScenario(t *testing.T) {
	// Пользователь A предлагает Guitar, пользователь B предлагает React.
	// B отправляет запрос, A принимает, одна из сторон завершает с оценкой 5.
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()
	feedbackRepo := newMockFeedbackRepository()
	users := newMockRatingUpdater()

	userA := uuid.New()
	userB := uuid.New()

	created := createPendingSwap(t, swapRepo, skillRepo, userB, userA)

	respond := swap.NewRespondUseCase(swapRepo, nil)
	if _, err := respond.Execute(context.Background(), created.ID, userA, swap.DecisionAccept); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	complete := swap.NewCompleteSwapUseCase(swapRepo, feedbackRepo, users, nil)
	updated, err := complete.Execute(context.Background(), swap.CompleteSwapInput{
		SwapID:  created.ID,
		ActorID: userA,
		Score:   5,
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if updated.Status != valueobject.SwapStatusCompleted {
		t.Errorf("expected status completed, got %s", updated.Status)
	}

	// Оценку получает контрагент завершившего (userB).
	if got := users.ratings[userB]; got != 5.0 {
		t.Errorf("expected counterpart rating 5.0, got %f", got)
	}
	if users.totalSwaps[userA] != 1 || users.totalSwaps[userB] != 1 {
		t.Errorf("expected total swaps incremented for both participants")
	}
}

func TestComplete_RatingIsMeanOfScores(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()
	feedbackRepo := newMockFeedbackRepository()
	users := newMockRatingUpdater()

	ratee := uuid.New()
	scores := []int{5, 3, 4}

	complete := swap.NewCompleteSwapUseCase(swapRepo, feedbackRepo, users, nil)
	respond := swap.NewRespondUseCase(swapRepo, nil)

	for _, score := range scores {
		rater := uuid.New()
		created := createPendingSwap(t, swapRepo, skillRepo, rater, ratee)
		if _, err := respond.Execute(context.Background(), created.ID, ratee, swap.DecisionAccept); err != nil {
			t.Fatalf("accept failed: %v", err)
		}
		if _, err := complete.Execute(context.Background(), swap.CompleteSwapInput{
			SwapID:  created.ID,
			ActorID: rater,
			Score:   score,
		}); err != nil {
			t.Fatalf("complete failed: %v", err)
		}
	}

	want := (5.0 + 3.0 + 4.0) / 3.0
	got := users.ratings[ratee]
	if got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected rating %f, got %f", want, got)
	}
	if users.counts[ratee] != 3 {
		t.Errorf("expected 3 feedback records, got %d", users.counts[ratee])
	}
}

func TestComplete_RequiresAcceptedStatus(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()
	feedbackRepo := newMockFeedbackRepository()
	users := newMockRatingUpdater()

	requesterID := uuid.New()
	recipientID := uuid.New()
	created := createPendingSwap(t, swapRepo, skillRepo, requesterID, recipientID)

	uc := swap.NewCompleteSwapUseCase(swapRepo, feedbackRepo, users, nil)
	_, err := uc.Execute(context.Background(), swap.CompleteSwapInput{
		SwapID:  created.ID,
		ActorID: requesterID,
		Score:   4,
	})
	if err == nil {
		t.Fatal("expected error for completing a pending request")
	}

	// Ни отзыв, ни рейтинг не должны быть записаны.
	if len(feedbackRepo.feedback) != 0 {
		t.Errorf("expected no feedback records, got %d", len(feedbackRepo.feedback))
	}
	if len(users.ratings) != 0 {
		t.Errorf("expected no rating updates")
	}
}

func TestComplete_NotAParticipant(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()
	feedbackRepo := newMockFeedbackRepository()
	users := newMockRatingUpdater()

	requesterID := uuid.New()
	recipientID := uuid.New()
	created := createPendingSwap(t, swapRepo, skillRepo, requesterID, recipientID)

	respond := swap.NewRespondUseCase(swapRepo, nil)
	if _, err := respond.Execute(context.Background(), created.ID, recipientID, swap.DecisionAccept); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	uc := swap.NewCompleteSwapUseCase(swapRepo, feedbackRepo, users, nil)
	_, err := uc.Execute(context.Background(), swap.CompleteSwapInput{
		SwapID:  created.ID,
		ActorID: uuid.New(),
		Score:   4,
	})
	if err == nil {
		t.Fatal("expected error for a stranger completing the swap")
	}
	if !apperror.IsForbidden(err) {
		t.Errorf("expected forbidden error, got %v", err)
	}
}

func TestListRequests_RolesAndOrdering(t *testing.T) {
	swapRepo := newMockSwapRepository()
	skillRepo := newMockSkillRepository()

	userA := uuid.New()
	userB := uuid.New()
	userC := uuid.New()

	first := createPendingSwap(t, swapRepo, skillRepo, userA, userB)
	second := createPendingSwap(t, swapRepo, skillRepo, userC, userA)

	uc := swap.NewListRequestsUseCase(swapRepo)

	sent, err := uc.Execute(context.Background(), userA, repository.SwapRoleSent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sent) != 1 || sent[0].ID != first.ID {
		t.Errorf("expected exactly the sent request")
	}

	received, err := uc.Execute(context.Background(), userA, repository.SwapRoleReceived)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(received) != 1 || received[0].ID != second.ID {
		t.Errorf("expected exactly the received request")
	}

	all, err := uc.Execute(context.Background(), userA, repository.SwapRoleAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(all))
	}
	if all[0].CreatedAt.Before(all[1].CreatedAt) {
		t.Errorf("expected newest-first ordering")
	}

	// Повторный вызов без записей между ними возвращает идентичный результат.
	again, err := uc.Execute(context.Background(), userA, repository.SwapRoleAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again) != len(all) {
		t.Fatalf("expected identical result size")
	}
	for i := range all {
		if all[i].ID != again[i].ID {
			t.Errorf("expected identical ordering at index %d", i)
		}
	}
}

func TestListRequests_InvalidRole(t *testing.T) {
	uc := swap.NewListRequestsUseCase(newMockSwapRepository())
	if _, err := uc.Execute(context.Background(), uuid.New(), repository.SwapRole("inbox")); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
