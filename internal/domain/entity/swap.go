package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type SwapRequest struct {
	ID               uuid.UUID
	RequesterID      uuid.UUID
	RecipientID      uuid.UUID
	OfferedSkillID   uuid.UUID
	RequestedSkillID uuid.UUID
	Message          *string
	Status           valueobject.SwapStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewSwapRequest(requesterID, recipientID, offeredSkillID, requestedSkillID uuid.UUID, message *string) (*SwapRequest, error) {
	if requesterID == recipientID {
		return nil, apperror.ErrSelfSwap
	}

	now := time.Now()
	return &SwapRequest{
		ID:               uuid.New(),
		RequesterID:      requesterID,
		RecipientID:      recipientID,
		OfferedSkillID:   offeredSkillID,
		RequestedSkillID: requestedSkillID,
		Message:          message,
		Status:           valueobject.SwapStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (s *SwapRequest) Accept(actorID uuid.UUID) error {
	if actorID != s.RecipientID {
		return apperror.ErrNotAuthorized
	}
	if !s.Status.CanTransitionTo(valueobject.SwapStatusAccepted) {
		return apperror.ErrInvalidTransition
	}
	s.Status = valueobject.SwapStatusAccepted
	s.UpdatedAt = time.Now()
	return nil
}

func (s *SwapRequest) Decline(actorID uuid.UUID) error {
	if actorID != s.RecipientID {
		return apperror.ErrNotAuthorized
	}
	if !s.Status.CanTransitionTo(valueobject.SwapStatusDeclined) {
		return apperror.ErrInvalidTransition
	}
	s.Status = valueobject.SwapStatusDeclined
	s.UpdatedAt = time.Now()
	return nil
}

func (s *SwapRequest) Cancel(actorID uuid.UUID) error {
	if actorID != s.RequesterID {
		return apperror.ErrNotAuthorized
	}
	if !s.Status.CanTransitionTo(valueobject.SwapStatusCancelled) {
		return apperror.ErrInvalidTransition
	}
	s.Status = valueobject.SwapStatusCancelled
	s.UpdatedAt = time.Now()
	return nil
}

// Complete переводит принятый обмен в завершённый. Допускается любым участником.
func (s *SwapRequest) Complete(actorID uuid.UUID) error {
	if !s.IsParticipant(actorID) {
		return apperror.ErrNotAParticipant
	}
	if !s.Status.CanTransitionTo(valueobject.SwapStatusCompleted) {
		return apperror.ErrInvalidTransition
	}
	s.Status = valueobject.SwapStatusCompleted
	s.UpdatedAt = time.Now()
	return nil
}

func (s *SwapRequest) IsParticipant(userID uuid.UUID) bool {
	return s.RequesterID == userID || s.RecipientID == userID
}

// Counterpart возвращает второго участника обмена относительно userID.
func (s *SwapRequest) Counterpart(userID uuid.UUID) (uuid.UUID, error) {
	switch userID {
	case s.RequesterID:
		return s.RecipientID, nil
	case s.RecipientID:
		return s.RequesterID, nil
	}
	return uuid.Nil, apperror.ErrNotAParticipant
}

func (s *SwapRequest) IsPending() bool {
	return s.Status == valueobject.SwapStatusPending
}

func (s *SwapRequest) IsAccepted() bool {
	return s.Status == valueobject.SwapStatusAccepted
}
