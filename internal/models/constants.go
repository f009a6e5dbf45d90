package models

// SwapStatus константы статусов запросов на обмен
const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusDeclined  = "declined"
	SwapStatusCompleted = "completed"
	SwapStatusCancelled = "cancelled"
)

// SkillLevel константы уровней владения навыком (упорядочены по возрастанию)
const (
	SkillLevelBeginner     = "Beginner"
	SkillLevelIntermediate = "Intermediate"
	SkillLevelAdvanced     = "Advanced"
	SkillLevelExpert       = "Expert"
)

// SkillDirection константы направления объявления
const (
	SkillDirectionOffered = "offered"
	SkillDirectionWanted  = "wanted"
)

// ValidSwapStatuses список валидных статусов запросов
var ValidSwapStatuses = map[string]struct{}{
	SwapStatusPending:   {},
	SwapStatusAccepted:  {},
	SwapStatusDeclined:  {},
	SwapStatusCompleted: {},
	SwapStatusCancelled: {},
}

// ValidSkillLevels список валидных уровней
var ValidSkillLevels = map[string]struct{}{
	SkillLevelBeginner:     {},
	SkillLevelIntermediate: {},
	SkillLevelAdvanced:     {},
	SkillLevelExpert:       {},
}

// ValidSkillDirections список валидных направлений
var ValidSkillDirections = map[string]struct{}{
	SkillDirectionOffered: {},
	SkillDirectionWanted:  {},
}

// Availability константы окон доступности пользователя
const (
	AvailabilityWeekends = "Weekends"
	AvailabilityEvenings = "Evenings"
	AvailabilityWeekdays = "Weekdays"
	AvailabilityFlexible = "Flexible"
)

// ValidAvailability список валидных окон доступности
var ValidAvailability = map[string]struct{}{
	AvailabilityWeekends: {},
	AvailabilityEvenings: {},
	AvailabilityWeekdays: {},
	AvailabilityFlexible: {},
}
