package entity

type DocumentType string

const (
	DocumentCPF      DocumentType = "CPF"
	DocumentRG       DocumentType = "RG"
	DocumentPassport DocumentType = "PASSAPORTE"
)

type Visitor struct {
	ID           int64        `json:"id"`
	Name         string       `json:"nomeCompleto"`
	DocumentType DocumentType `json:"tipoDocumento"`
	Document     string       `json:"numeroDocumento"`
	Phone        string       `json:"telefone"`
	BirthDate    string       `json:"dataNascimento"`
	HostID       int64        `json:"idColaborador"`
	Reason       string       `json:"motivoVisita"`
	Active       bool         `json:"ativo"`
}
