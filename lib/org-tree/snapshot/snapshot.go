package orgtreesnapshot

import (
	"site-tools-backend/lib/apperrors"
	dbmodels "site-tools-backend/models/db"
)

// защита от незамеченного цикла в дереве: обход глубже этого предела
// прерывается с ошибкой Corrupt вместо бесконечной рекурсии
const maxTreeDepth = 64

// Snapshot — неизменяемый срез оргструктуры пространства. Все операции
// обхода — чистые функции над срезом, их можно вызывать из любого числа
// горутин без синхронизации.
type Snapshot struct {
	units    map[string]dbmodels.OrgUnit
	children map[string][]string
}

func NewSnapshot(list []dbmodels.OrgUnit) (*Snapshot, error) {
	s := &Snapshot{
		units:    make(map[string]dbmodels.OrgUnit, len(list)),
		children: map[string][]string{},
	}
	for _, unit := range list {
		s.units[unit.ID] = unit
	}
	for _, unit := range list {
		if unit.ParentID == nil {
			continue
		}
		if _, exist := s.units[*unit.ParentID]; !exist {
			return nil, apperrors.Corruptf("родительское подразделение %v не найдено в срезе (подразделение %v)", *unit.ParentID, unit.ID)
		}
		s.children[*unit.ParentID] = append(s.children[*unit.ParentID], unit.ID)
	}
	return s, nil
}

// AllIDs — идентификаторы всех подразделений среза
func (s *Snapshot) AllIDs() map[string]bool {
	result := make(map[string]bool, len(s.units))
	for id := range s.units {
		result[id] = true
	}
	return result
}

func (s *Snapshot) Get(unitID string) (dbmodels.OrgUnit, error) {
	unit, exist := s.units[unitID]
	if !exist {
		return dbmodels.OrgUnit{}, apperrors.NotFoundf("подразделение %v не найдено", unitID)
	}
	return unit, nil
}

// GetSubtreeIDs возвращает идентификатор корня и всех его потомков
func (s *Snapshot) GetSubtreeIDs(rootID string) (map[string]bool, error) {
	if _, exist := s.units[rootID]; !exist {
		return nil, apperrors.NotFoundf("подразделение %v не найдено", rootID)
	}
	result := map[string]bool{}
	type frame struct {
		id    string
		depth int
	}
	queue := []frame{{id: rootID}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.depth > maxTreeDepth {
			return nil, apperrors.Corruptf("превышена максимальная глубина дерева на подразделении %v", current.id)
		}
		if result[current.id] {
			return nil, apperrors.Corruptf("обнаружен цикл в дереве на подразделении %v", current.id)
		}
		result[current.id] = true
		for _, childID := range s.children[current.id] {
			queue = append(queue, frame{id: childID, depth: current.depth + 1})
		}
	}
	return result, nil
}

// GetAncestors возвращает путь от корня леса до подразделения,
// не включая само подразделение
func (s *Snapshot) GetAncestors(unitID string) ([]dbmodels.OrgUnit, error) {
	unit, exist := s.units[unitID]
	if !exist {
		return nil, apperrors.NotFoundf("подразделение %v не найдено", unitID)
	}
	ancestors := []dbmodels.OrgUnit{}
	for depth := 0; unit.ParentID != nil; depth++ {
		if depth > maxTreeDepth {
			return nil, apperrors.Corruptf("превышена максимальная глубина дерева на подразделении %v", unit.ID)
		}
		parent, exist := s.units[*unit.ParentID]
		if !exist {
			return nil, apperrors.Corruptf("родительское подразделение %v не найдено", *unit.ParentID)
		}
		ancestors = append(ancestors, parent)
		unit = parent
	}
	// разворачиваем: путь идёт от корня вниз
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}
	return ancestors, nil
}

// GetPath — путь от корня до подразделения включительно
func (s *Snapshot) GetPath(unitID string) ([]dbmodels.OrgUnit, error) {
	ancestors, err := s.GetAncestors(unitID)
	if err != nil {
		return nil, err
	}
	return append(ancestors, s.units[unitID]), nil
}

// WithinScope: true, если candidateID совпадает с корнем скоупа
// или входит в его поддерево
func (s *Snapshot) WithinScope(candidateID, scopeRootID string) (bool, error) {
	if candidateID == scopeRootID {
		if _, exist := s.units[candidateID]; !exist {
			return false, apperrors.NotFoundf("подразделение %v не найдено", candidateID)
		}
		return true, nil
	}
	subtree, err := s.GetSubtreeIDs(scopeRootID)
	if err != nil {
		return false, err
	}
	return subtree[candidateID], nil
}
