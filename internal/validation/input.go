package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinDisplayNameLength = 2
	MaxDisplayNameLength = 100
	MinSkillTitleLength = 2
	MaxSkillTitleLength = 100
	MaxSkillDescriptionLength = 2000
	MaxTagLength = 50
	MaxTagsCount = 10
	MaxLocationLength = 100
	MaxCommentLength = 1000
	MinFeedbackScore = 1
	MaxFeedbackScore = 5
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	// Базовая проверка формата
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email должен содержать символ @")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("доменная часть email должна содержать точку")
	}

	// Проверка на валидные символы в локальной части
	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	// Проверка на валидные символы в доменной части
	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateDisplayName проверяет отображаемое имя.
func ValidateDisplayName(displayName string) error {
	if displayName == "" {
		return fmt.Errorf("отображаемое имя обязательно")
	}

	displayName = strings.TrimSpace(displayName)

	// Проверка длины
	if err := ValidateLength("отображаемое имя", displayName, MinDisplayNameLength, MaxDisplayNameLength); err != nil {
		return err
	}

	// Проверка на недопустимые символы (только буквы, цифры, пробелы и некоторые спецсимволы)
	displayNameRegex := regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ0-9\s\-_.,!?()]+$`)
	if !displayNameRegex.MatchString(displayName) {
		return fmt.Errorf("отображаемое имя содержит недопустимые символы")
	}

	return nil
}

// ValidateSkillTitle проверяет название навыка.
func ValidateSkillTitle(title string) error {
	if title == "" {
		return fmt.Errorf("название навыка обязательно")
	}

	title = strings.TrimSpace(title)

	if err := ValidateLength("название навыка", title, MinSkillTitleLength, MaxSkillTitleLength); err != nil {
		return err
	}

	return nil
}

// ValidateSkillDescription проверяет описание навыка.
func ValidateSkillDescription(description string) error {
	if description != "" {
		description = strings.TrimSpace(description)
		if err := ValidateLength("описание навыка", description, 0, MaxSkillDescriptionLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTags проверяет массив тегов навыка.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTagsCount {
		return fmt.Errorf("количество тегов не может превышать %d", MaxTagsCount)
	}

	seen := make(map[string]bool)
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return fmt.Errorf("тег не может быть пустым")
		}

		// Проверка длины тега
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return fmt.Errorf("тег не может быть длиннее %d символов", MaxTagLength)
		}

		// Проверка на дубликаты (без учета регистра)
		tagLower := strings.ToLower(tag)
		if seen[tagLower] {
			return fmt.Errorf("тег '%s' указан дважды", tag)
		}
		seen[tagLower] = true
	}

	return nil
}

// ValidateLocation проверяет местоположение.
func ValidateLocation(location *string) error {
	if location != nil && *location != "" {
		loc := strings.TrimSpace(*location)
		if err := ValidateLength("местоположение", loc, 0, MaxLocationLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFeedbackScore проверяет оценку обмена.
func ValidateFeedbackScore(score int) error {
	if score < MinFeedbackScore || score > MaxFeedbackScore {
		return fmt.Errorf("оценка должна быть от %d до %d", MinFeedbackScore, MaxFeedbackScore)
	}
	return nil
}

// ValidateFeedbackComment проверяет комментарий к оценке.
func ValidateFeedbackComment(comment string) error {
	if comment != "" {
		comment = strings.TrimSpace(comment)
		if err := ValidateLength("комментарий", comment, 0, MaxCommentLength); err != nil {
			return err
		}
	}
	return nil
}
