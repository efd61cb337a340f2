package apperrors

import "github.com/pkg/errors"

// Классификация ошибок движка согласования и оргструктуры.
// NotFound/Forbidden/InvalidState завершают операцию и показываются
// пользователю; Conflict можно повторить с актуальной версией записи;
// Corrupt означает несогласованные данные и требует вмешательства оператора.
var (
	ErrNotFound     = errors.New("запись не найдена")
	ErrForbidden    = errors.New("операция недоступна")
	ErrInvalidState = errors.New("недопустимое состояние")
	ErrConflict     = errors.New("запись была изменена параллельно, повторите операцию")
	ErrCorrupt      = errors.New("данные повреждены")
)

func NotFoundf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

func Forbiddenf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrForbidden, format, args...)
}

func InvalidStatef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidState, format, args...)
}

func Conflictf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConflict, format, args...)
}

func Corruptf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCorrupt, format, args...)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}
