package dbmodels

import filesapimodels "site-tools-backend/models/api/files"

type FileStorage struct {
	BaseSpaceModel
	Name        string
	RequestID   string `gorm:"type:varchar(36);index"`
	Type        FileType
	ContentType string
}

func (f FileStorage) ToModel() filesapimodels.FileView {
	return filesapimodels.FileView{
		ID:          f.ID,
		Name:        f.Name,
		RequestID:   f.RequestID,
		SpaceID:     f.SpaceID,
		ContentType: f.ContentType,
	}
}

type FileType string

const (
	RequestInvoice  FileType = "request_invoice"
	RequestEstimate FileType = "request_estimate"
	RequestContract FileType = "request_contract"
	RequestPhoto    FileType = "request_photo"
	CompanyLogo     FileType = "company_logo"
)

type UploadFileInfo struct {
	SpaceID        string
	RequestID      string
	FileName       string
	FileType       FileType
	ContentType    string
	IsUniqueByName bool
}
