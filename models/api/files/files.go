package filesapimodels

type FileView struct {
	ID          string `json:"id"`           // Идентификатор файла
	Name        string `json:"name"`         // Имя файла
	RequestID   string `json:"request_id"`   // Заявка, к которой приложен файл
	SpaceID     string `json:"space_id"`     // Пространство
	ContentType string `json:"content_type"` // Тип содержимого
}
