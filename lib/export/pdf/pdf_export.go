package pdfexport

import (
	"bytes"
	"fmt"

	dbmodels "site-tools-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateApprovalSheet формирует печатный лист согласования заявки
// с историей решений по этапам.
func GenerateApprovalSheet(req dbmodels.ApprovalRequest, history []dbmodels.ApprovalHistory) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateApprovalSheet panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 10, "Лист согласования", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	_, lineHt := pdf.GetFontSize()
	lineHt += 2
	writeField(pdf, lineHt, "Заявка", req.Title)
	writeField(pdf, lineHt, "Тип", req.Type.ToHuman())
	writeField(pdf, lineHt, "Категория", req.Category.ToHuman())
	writeField(pdf, lineHt, "Сумма", fmt.Sprintf("%d ₽", req.Amount))
	if req.OrgUnit != nil {
		writeField(pdf, lineHt, "Подразделение", req.OrgUnit.Name)
	}
	if req.Initiator != nil {
		writeField(pdf, lineHt, "Инициатор", req.Initiator.GetFullName())
	}
	writeField(pdf, lineHt, "Дата создания", req.CreatedAt.Format("02.01.2006 15:04"))
	writeField(pdf, lineHt, "Статус", req.Status.ToHuman())
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, lineHt, "Этапы согласования", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, step := range req.Steps {
		approver := ""
		if step.Approver != nil {
			approver = step.Approver.GetFullName()
		}
		decidedAt := ""
		if step.DecidedAt != nil {
			decidedAt = step.DecidedAt.Format("02.01.2006 15:04")
		}
		line := fmt.Sprintf("%d. %s — %s", step.StepIndex+1, step.RequiredRole.ToHuman(), step.Status.ToHuman())
		if approver != "" {
			line = fmt.Sprintf("%s (%s, %s)", line, approver, decidedAt)
		}
		pdf.CellFormat(0, lineHt, line, "", 1, "L", false, 0, "")
		if step.Comment != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.CellFormat(0, lineHt, fmt.Sprintf("    Комментарий: %s", step.Comment), "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 11)
		}
	}
	pdf.Ln(6)

	if len(history) != 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, lineHt, "История решений", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, rec := range history {
			approver := ""
			if rec.Approver != nil {
				approver = rec.Approver.GetFullName()
			}
			line := fmt.Sprintf("%s — %s", rec.CreatedAt.Format("02.01.2006 15:04"), rec.Changes.Description)
			if approver != "" {
				line = fmt.Sprintf("%s (%s)", line, approver)
			}
			pdf.CellFormat(0, lineHt, line, "", 1, "L", false, 0, "")
			if rec.Comment != "" {
				pdf.CellFormat(0, lineHt, fmt.Sprintf("    Комментарий: %s", rec.Comment), "", 1, "L", false, 0, "")
			}
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeField(pdf *fpdf.Fpdf, lineHt float64, name, value string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(50, lineHt, name+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, lineHt, value, "", 1, "L", false, 0, "")
}
