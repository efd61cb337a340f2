package xlsexport

import (
	"bytes"

	dbmodels "site-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportApprovalRegistry(list []dbmodels.ApprovalRequest) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var registryHeaders = []string{"Название", "Тип", "Категория", "Сумма", "Подразделение", "Инициатор", "Статус", "Текущий этап", "Дата создания"}

func (i impl) ExportApprovalRegistry(list []dbmodels.ApprovalRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, registryHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeRegistryData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Заявки")
	return f.WriteToBuffer()
}

func writeRegistryData(f *excelize.File, sheet string, list []dbmodels.ApprovalRequest, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(registryHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Название"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Title); err != nil {
			return row, err
		}

		// "Тип"
		col++
		if err := writeColumn(f, sheet, col, row, item.Type.ToHuman()); err != nil {
			return row, err
		}

		// "Категория"
		col++
		if err := writeColumn(f, sheet, col, row, item.Category.ToHuman()); err != nil {
			return row, err
		}

		// "Сумма"
		col++
		if err := writeColumn(f, sheet, col, row, item.Amount); err != nil {
			return row, err
		}

		// "Подразделение"
		col++
		if item.OrgUnit != nil {
			if err := writeColumn(f, sheet, col, row, item.OrgUnit.Name); err != nil {
				return row, err
			}
		}

		// "Инициатор"
		col++
		if item.Initiator != nil {
			if err := writeColumn(f, sheet, col, row, item.Initiator.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Текущий этап"
		col++
		_, step := item.GetCurrentStep()
		if step != nil {
			if err := writeColumn(f, sheet, col, row, step.RequiredRole.ToHuman()); err != nil {
				return row, err
			}
		}

		// "Дата создания"
		col++
		if !item.CreatedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
