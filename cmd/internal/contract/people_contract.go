package contract

type CreateVisitorRequest struct {
	Name         string `json:"nomeCompleto" validate:"required,min=3,max=120"`
	DocumentType string `json:"tipoDocumento" validate:"required,oneof=CPF RG PASSAPORTE"`
	Document     string `json:"numeroDocumento" validate:"required,max=20"`
	Phone        string `json:"telefone" validate:"required,digits,max=15"`
	BirthDate    string `json:"dataNascimento" validate:"omitempty,datetime=2006-01-02"`
	HostID       int64  `json:"idColaborador" validate:"required,min=1"`
	Reason       string `json:"motivoVisita" validate:"required,min=3,max=255"`
}

type OccupantRequest struct {
	Name     string `json:"nome" validate:"required,min=2,max=120"`
	Document string `json:"documento" validate:"omitempty,max=20"`
}

type EntryRequest struct {
	Matricula string            `json:"matricula" validate:"required,min=1,max=20"`
	GateID    int64             `json:"idPortaria" validate:"omitempty,min=1"`
	Occupants []OccupantRequest `json:"ocupantes" validate:"omitempty,max=10,dive"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required,min=1,max=120"`
	Password string `json:"senha" validate:"required,password"`
}

type LoginResponse struct {
	Role string `json:"role"`
}

type ChatResponse struct {
	Answer string `json:"resposta"`
}
