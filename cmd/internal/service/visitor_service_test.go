package service

import (
	"context"
	"testing"
	"trackpass/cmd/internal/contract"
	"trackpass/cmd/internal/domain/entity"
	"trackpass/cmd/internal/infrastructure/trackpass"
	"trackpass/cmd/internal/utils/apierror"
	"trackpass/cmd/internal/utils/validators"
)

type fakeVisitorClient struct {
	counter
	sent trackpass.VisitorInput
}

func (f *fakeVisitorClient) ListVisitors(ctx context.Context) ([]entity.Visitor, error) {
	return []entity.Visitor{
		{ID: 1, Name: "Carlos Prado", DocumentType: entity.DocumentRG, Document: "123456789", Phone: "1133334444"},
	}, nil
}

func (f *fakeVisitorClient) CreateVisitor(ctx context.Context, in trackpass.VisitorInput) (entity.Visitor, error) {
	f.hit("create")
	f.sent = in
	return entity.Visitor{ID: 2, Name: in.Name, DocumentType: in.DocumentType, Document: in.Document, Phone: in.Phone, Active: true}, nil
}

func visitorRequest(docType, document, phone string) *contract.CreateVisitorRequest {
	return &contract.CreateVisitorRequest{
		Name:         "Maria Souza",
		DocumentType: docType,
		Document:     document,
		Phone:        phone,
		HostID:       42,
		Reason:       "Reunião",
	}
}

func TestCreateVisitorUnmasks(t *testing.T) {
	client := &fakeVisitorClient{}
	s := NewVisitorService(testContext(t), client, nil, validators.New())

	created, err := s.Create(context.Background(), visitorRequest("CPF", "529.982.247-25", "(11) 98765-4321"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if client.sent.Document != "52998224725" || client.sent.Phone != "11987654321" {
		t.Errorf("backend got %+v", client.sent)
	}
	if created.Document != "529.982.247-25" || created.Phone != "(11) 98765-4321" {
		t.Errorf("response should be masked: %+v", created)
	}
	if v, ok := s.Visitors.Find("2"); !ok || v.Document != "52998224725" {
		t.Errorf("stored visitor = %+v", v)
	}
}

func TestCreateVisitorRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		req  *contract.CreateVisitorRequest
	}{
		{"bad cpf", visitorRequest("CPF", "529.982.247-24", "11987654321")},
		{"repeated cpf", visitorRequest("CPF", "111.111.111-11", "11987654321")},
		{"short rg", visitorRequest("RG", "12.345.678", "11987654321")},
		{"long passport", visitorRequest("PASSAPORTE", "AB12345678", "11987654321")},
		{"short phone", visitorRequest("RG", "12.345.678-9", "98765-432")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeVisitorClient{}
			s := NewVisitorService(testContext(t), client, nil, validators.New())

			_, err := s.Create(context.Background(), tt.req)
			if apierror.KindOf(err) != apierror.KindPrecondition {
				t.Errorf("Create() error = %v, want a precondition error", err)
			}
			if client.get("create") != 0 {
				t.Error("invalid visitor reached the backend")
			}
		})
	}
}

func TestVisitorListMasks(t *testing.T) {
	s := NewVisitorService(testContext(t), &fakeVisitorClient{}, nil, validators.New())

	list, err := s.List(context.Background(), "carlos")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Document != "12.345.678-9" || list[0].Phone != "(11) 3333-4444" {
		t.Errorf("List() = %+v", list)
	}
	if v, _ := s.Visitors.Find("1"); v.Document != "123456789" {
		t.Error("masking must not leak into the store")
	}
}
