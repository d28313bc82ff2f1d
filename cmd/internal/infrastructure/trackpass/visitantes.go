package trackpass

import (
	"context"
	"net/http"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/utils"
)

type VisitorInput struct {
	Name         string
	DocumentType entity.DocumentType
	Document     string
	Phone        string
	BirthDate    string
	HostID       int64
	Reason       string
}

type visitorPayload struct {
	Name         string `json:"nomeCompleto"`
	DocumentType string `json:"tipoDocumento"`
	Document     string `json:"numeroDocumento"`
	Phone        string `json:"telefone"`
	BirthDate    string `json:"dataNascimento,omitempty"`
	HostID       int64  `json:"idColaborador,omitempty"`
	Reason       string `json:"motivoVisita,omitempty"`
}

func (c *Client) ListVisitors(ctx context.Context) ([]entity.Visitor, error) {
	return getList(ctx, c, "/visitantes", nil, decodeVisitor)
}

// CreateVisitor always sends the unmasked document number and phone,
// whatever shape the input came in.
func (c *Client) CreateVisitor(ctx context.Context, in VisitorInput) (entity.Visitor, error) {
	payload := &visitorPayload{
		Name:         in.Name,
		DocumentType: string(in.DocumentType),
		Document:     utils.UnmaskDocument(in.DocumentType, in.Document),
		Phone:        utils.UnmaskPhone(in.Phone),
		BirthDate:    in.BirthDate,
		HostID:       in.HostID,
		Reason:       in.Reason,
	}

	f, ok, err := c.send(ctx, http.MethodPost, "/visitantes", nil, payload)
	if err != nil {
		return entity.Visitor{}, err
	}

	created := entity.Visitor{
		Name:         payload.Name,
		DocumentType: in.DocumentType,
		Document:     payload.Document,
		Phone:        payload.Phone,
		BirthDate:    payload.BirthDate,
		HostID:       payload.HostID,
		Reason:       payload.Reason,
		Active:       true,
	}
	if ok {
		created = applyVisitor(f, created)
	}
	return created, nil
}
