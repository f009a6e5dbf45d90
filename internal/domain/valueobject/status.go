package valueobject

import "github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"

type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusAccepted  SwapStatus = "accepted"
	SwapStatusDeclined  SwapStatus = "declined"
	SwapStatusCompleted SwapStatus = "completed"
	SwapStatusCancelled SwapStatus = "cancelled"
)

func (s SwapStatus) IsValid() bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusDeclined, SwapStatusCompleted, SwapStatusCancelled:
		return true
	}
	return false
}

// IsTerminal сообщает, запрещены ли дальнейшие переходы из статуса.
func (s SwapStatus) IsTerminal() bool {
	switch s {
	case SwapStatusDeclined, SwapStatusCompleted, SwapStatusCancelled:
		return true
	}
	return false
}

func (s SwapStatus) CanTransitionTo(newStatus SwapStatus) bool {
	transitions := map[SwapStatus][]SwapStatus{
		SwapStatusPending:   {SwapStatusAccepted, SwapStatusDeclined, SwapStatusCancelled},
		SwapStatusAccepted:  {SwapStatusCompleted},
		SwapStatusDeclined:  {},
		SwapStatusCompleted: {},
		SwapStatusCancelled: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewSwapStatus(status string) (SwapStatus, error) {
	s := SwapStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус запроса на обмен")
	}
	return s, nil
}

type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "Beginner"
	SkillLevelIntermediate SkillLevel = "Intermediate"
	SkillLevelAdvanced     SkillLevel = "Advanced"
	SkillLevelExpert       SkillLevel = "Expert"
)

func (l SkillLevel) IsValid() bool {
	switch l {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert:
		return true
	}
	return false
}

// Rank возвращает порядковый номер уровня для сравнения.
func (l SkillLevel) Rank() int {
	switch l {
	case SkillLevelBeginner:
		return 0
	case SkillLevelIntermediate:
		return 1
	case SkillLevelAdvanced:
		return 2
	case SkillLevelExpert:
		return 3
	}
	return -1
}

func NewSkillLevel(level string) (SkillLevel, error) {
	l := SkillLevel(level)
	if !l.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный уровень навыка")
	}
	return l, nil
}

type SkillDirection string

const (
	SkillDirectionOffered SkillDirection = "offered"
	SkillDirectionWanted  SkillDirection = "wanted"
)

func (d SkillDirection) IsValid() bool {
	switch d {
	case SkillDirectionOffered, SkillDirectionWanted:
		return true
	}
	return false
}

func NewSkillDirection(direction string) (SkillDirection, error) {
	d := SkillDirection(direction)
	if !d.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "направление навыка должно быть offered или wanted")
	}
	return d, nil
}
