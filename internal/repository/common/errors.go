package common

import "errors"

// Общие ошибки для всех репозиториев
var (
	// ErrAlreadyExists возвращается при нарушении уникального ограничения.
	ErrAlreadyExists = errors.New("entity already exists")
)
