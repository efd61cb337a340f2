package models

// Статус заявки на согласование целиком
type ApprovalRequestStatus string

const (
	ARStatusPending   ApprovalRequestStatus = "PENDING"
	ARStatusApproved  ApprovalRequestStatus = "APPROVED"
	ARStatusRejected  ApprovalRequestStatus = "REJECTED"
	ARStatusCancelled ApprovalRequestStatus = "CANCELLED"
)

var arStatusHumanName = map[ApprovalRequestStatus]string{
	ARStatusPending:   "На согласовании",
	ARStatusApproved:  "Согласована",
	ARStatusRejected:  "Отклонена",
	ARStatusCancelled: "Отменена",
}

func (s ApprovalRequestStatus) ToHuman() string {
	if human, exist := arStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// терминальная заявка не может быть изменена никакой операцией
func (s ApprovalRequestStatus) IsTerminal() bool {
	return s == ARStatusApproved || s == ARStatusRejected || s == ARStatusCancelled
}

// Статус отдельного этапа согласования
type ApprovalStepStatus string

const (
	AStepPending  ApprovalStepStatus = "PENDING"
	AStepApproved ApprovalStepStatus = "APPROVED"
	AStepRejected ApprovalStepStatus = "REJECTED"
)

var aStepHumanName = map[ApprovalStepStatus]string{
	AStepPending:  "Ожидает решения",
	AStepApproved: "Согласован",
	AStepRejected: "Отклонён",
}

func (s ApprovalStepStatus) ToHuman() string {
	if human, exist := aStepHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ApprovalStepStatus) IsDecided() bool {
	return s == AStepApproved || s == AStepRejected
}

// Решение по этапу
type ApprovalDecision string

const (
	DecisionApprove ApprovalDecision = "APPROVE"
	DecisionReject  ApprovalDecision = "REJECT"
)

func (d ApprovalDecision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Финансовая категория заявки
type ApprovalCategory string

const (
	CategoryEquipment   ApprovalCategory = "equipment"
	CategoryMaterials   ApprovalCategory = "materials"
	CategorySubcontract ApprovalCategory = "subcontract"
	CategoryGeneral     ApprovalCategory = "general"
)

var categoryHumanName = map[ApprovalCategory]string{
	CategoryEquipment:   "Оборудование",
	CategoryMaterials:   "Материалы",
	CategorySubcontract: "Субподряд",
	CategoryGeneral:     "Прочие расходы",
}

func (c ApprovalCategory) ToHuman() string {
	if human, exist := categoryHumanName[c]; exist {
		return human
	}
	return string(c)
}

func (c ApprovalCategory) IsValid() bool {
	_, exist := categoryHumanName[c]
	return exist
}

// Тип заявки. Тип жёстко задаёт последовательность ролей в цепочке
// согласования: состав и порядок этапов фиксируются при создании заявки
// и не меняются до её завершения.
type ApprovalRequestType string

const (
	ARTypeBudgetChange      ApprovalRequestType = "budget-change"
	ARTypeEquipmentPurchase ApprovalRequestType = "equipment-purchase"
	ARTypeContractPayment   ApprovalRequestType = "contract-payment"
	ARTypeExtraWork         ApprovalRequestType = "extra-work"
)

var arTypeHumanName = map[ApprovalRequestType]string{
	ARTypeBudgetChange:      "Изменение бюджета",
	ARTypeEquipmentPurchase: "Закупка оборудования",
	ARTypeContractPayment:   "Оплата по договору",
	ARTypeExtraWork:         "Дополнительные работы",
}

var arTypeRoleChain = map[ApprovalRequestType][]UserRole{
	ARTypeBudgetChange:      {SiteManagerRole, ProjectManagerRole, FinanceManagerRole},
	ARTypeEquipmentPurchase: {ProjectManagerRole, AreaManagerRole, FinanceManagerRole},
	ARTypeContractPayment:   {ProjectManagerRole, FinanceManagerRole, PmoRole},
	ARTypeExtraWork:         {SiteManagerRole, ProjectManagerRole},
}

func (t ApprovalRequestType) ToHuman() string {
	if human, exist := arTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t ApprovalRequestType) IsValid() bool {
	_, exist := arTypeRoleChain[t]
	return exist
}

// RoleChain возвращает копию последовательности ролей по этапам
func (t ApprovalRequestType) RoleChain() []UserRole {
	chain, exist := arTypeRoleChain[t]
	if !exist {
		return nil
	}
	result := make([]UserRole, len(chain))
	copy(result, chain)
	return result
}
