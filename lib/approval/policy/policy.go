package approvalpolicy

import (
	"site-tools-backend/lib/apperrors"
	"site-tools-backend/models"
	approvalapimodels "site-tools-backend/models/api/approval"

	"github.com/pkg/errors"
)

// Provider отвечает на вопросы финансовой политики: укладывается ли сумма
// в лимит роли, какой минимальный уровень согласования нужен сумме и
// требуется ли эскалация. Таблица лимитов собирается один раз при старте
// и дальше не меняется.
type Provider interface {
	CanApprove(role models.UserRole, category models.ApprovalCategory, amount int64) bool
	RequiredLevel(category models.ApprovalCategory, amount int64) (models.UserRole, error)
	ShouldEscalate(role models.UserRole, category models.ApprovalCategory, amount int64) bool
	Check(role models.UserRole, category models.ApprovalCategory, amount int64) (approvalapimodels.PolicyCheckView, error)
	LimitFor(role models.UserRole, category models.ApprovalCategory) models.Limit
}

var Instance Provider

func NewHandler(table Table) {
	Instance = impl{
		table: table,
	}
}

type impl struct {
	table Table
}

func (i impl) LimitFor(role models.UserRole, category models.ApprovalCategory) models.Limit {
	level, exist := i.table.level(role)
	if !exist {
		// роль вне таблицы лимитов — нулевой лимит
		return models.Limit{}
	}
	return level.limitFor(category)
}

func (i impl) CanApprove(role models.UserRole, category models.ApprovalCategory, amount int64) bool {
	level, exist := i.table.level(role)
	if !exist {
		// роль вне таблицы лимитов не согласует ничего
		return false
	}
	return level.limitFor(category).Allows(amount)
}

// RequiredLevel — самая младшая роль, лимита которой достаточно для суммы
func (i impl) RequiredLevel(category models.ApprovalCategory, amount int64) (models.UserRole, error) {
	for _, level := range i.table.levels {
		if level.limitFor(category).Allows(amount) {
			return level.Role, nil
		}
	}
	return "", apperrors.InvalidStatef("сумма %v не покрывается ни одним уровнем согласования", amount)
}

func (i impl) ShouldEscalate(role models.UserRole, category models.ApprovalCategory, amount int64) bool {
	return !i.CanApprove(role, category, amount)
}

func (i impl) Check(role models.UserRole, category models.ApprovalCategory, amount int64) (approvalapimodels.PolicyCheckView, error) {
	requiredRole, err := i.RequiredLevel(category, amount)
	if err != nil {
		return approvalapimodels.PolicyCheckView{}, err
	}
	canApprove := i.CanApprove(role, category, amount)
	return approvalapimodels.PolicyCheckView{
		CanApprove:     canApprove,
		RequiredRole:   requiredRole,
		ShouldEscalate: !canApprove,
	}, nil
}

// Table — уровни согласования от младшего к старшему
type Table struct {
	levels []Level
}

type Level struct {
	Role       models.UserRole
	Default    models.Limit
	ByCategory map[models.ApprovalCategory]models.Limit
}

func (l Level) limitFor(category models.ApprovalCategory) models.Limit {
	if limit, exist := l.ByCategory[category]; exist {
		return limit
	}
	return l.Default
}

func (t Table) level(role models.UserRole) (Level, bool) {
	for _, level := range t.levels {
		if level.Role == role {
			return level, true
		}
	}
	return Level{}, false
}

// NewTable проверяет монотонность лимитов: каждый следующий уровень
// покрывает не меньше предыдущего по каждой категории
func NewTable(levels []Level) (Table, error) {
	if len(levels) == 0 {
		return Table{}, errors.New("таблица лимитов пуста")
	}
	last := levels[len(levels)-1]
	if !last.Default.IsUnlimited() {
		return Table{}, errors.Errorf("лимит старшего уровня (%v) должен быть безлимитным", last.Role)
	}
	categories := []models.ApprovalCategory{
		models.CategoryEquipment, models.CategoryMaterials,
		models.CategorySubcontract, models.CategoryGeneral,
	}
	for idx := 1; idx < len(levels); idx++ {
		prev, current := levels[idx-1], levels[idx]
		for _, category := range categories {
			if !current.limitFor(category).AtLeast(prev.limitFor(category)) {
				return Table{}, errors.Errorf("лимит роли %v по категории %v ниже лимита роли %v", current.Role, category, prev.Role)
			}
		}
	}
	return Table{levels: levels}, nil
}

// DefaultTable — лимиты по умолчанию, применяются если в конфигурации
// не задано иное
func DefaultTable() Table {
	table, err := NewTable([]Level{
		{Role: models.ZoneManagerRole, Default: models.LimitOf(1000)},
		{Role: models.SiteManagerRole, Default: models.LimitOf(3000)},
		{Role: models.ProjectManagerRole, Default: models.LimitOf(5000)},
		{Role: models.AreaManagerRole, Default: models.LimitOf(20000)},
		{Role: models.FinanceManagerRole, Default: models.LimitOf(50000)},
		{Role: models.PmoRole, Default: models.Unlimited()},
	})
	if err != nil {
		panic(err.Error())
	}
	return table
}
