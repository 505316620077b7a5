package remote

import (
	"errors"
	"fmt"
)

// ErrNotFound — на аккаунте нет снапшота. Это не ошибка транспорта:
// новый аккаунт или бэкап никогда не выполнялся. Только этот исход
// переводит согласование на путь посева предустановленных категорий.
var ErrNotFound = errors.New("backup record not found")

// Reason — класс отказа удалённой операции. Политика повторов у всех
// классов одна (решает вызывающий), различаются только сообщения.
type Reason int

const (
	ReasonOther Reason = iota
	ReasonNetwork
	ReasonNotAuthenticated
	ReasonQuota
	ReasonPermission
)

// Failure — типизированный отказ удалённой операции с готовым
// сообщением для пользователя.
type Failure struct {
	Reason  Reason
	Message string
}

func (f *Failure) Error() string { return f.Message }

func failure(reason Reason, detail string) *Failure {
	var msg string
	switch reason {
	case ReasonNetwork:
		msg = "Cannot reach the backup service. Check your internet connection."
	case ReasonNotAuthenticated:
		msg = "Not signed in to the backup account. Sign in and try again."
	case ReasonQuota:
		msg = "Backup storage quota exceeded."
	case ReasonPermission:
		msg = "No permission to access the backup account."
	default:
		msg = fmt.Sprintf("Backup service error: %s", detail)
	}
	return &Failure{Reason: reason, Message: msg}
}

// classifyStatus сводит HTTP-статус к классу отказа.
func classifyStatus(code int, detail string) *Failure {
	switch code {
	case 401:
		return failure(ReasonNotAuthenticated, detail)
	case 403:
		return failure(ReasonPermission, detail)
	case 507:
		return failure(ReasonQuota, detail)
	default:
		return failure(ReasonOther, detail)
	}
}
