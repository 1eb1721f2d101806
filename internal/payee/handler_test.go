package payee

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Niiaks/pixcode/internal/brcode"
	"github.com/Niiaks/pixcode/internal/model"
	"github.com/Niiaks/pixcode/internal/pix"
	"github.com/Niiaks/pixcode/pkg/types"
)

type stubPayeeRepo struct {
	payees map[uuid.UUID]*model.Payee
	err    error
}

func (s *stubPayeeRepo) GetPayee(ctx context.Context, id uuid.UUID) (*model.Payee, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.payees[id]
	if !ok {
		return nil, ErrPayeeNotFound
	}
	return p, nil
}

func newTestRouter(repo PayeeRepository) http.Handler {
	h := NewPayeeHandler(NewPayeeService(repo, brcode.NewBRCodeService(nil)))
	r := chi.NewRouter()
	r.Get("/payees/{payeeID}", h.GetPayee)
	r.Post("/payees/{payeeID}/brcodes", h.GenerateBRCode)
	return r
}

func TestGeneratePayeeBRCode(t *testing.T) {
	id := uuid.New()
	repo := &stubPayeeRepo{payees: map[uuid.UUID]*model.Payee{
		id: {ID: id, PixKey: "123e4567-e12b-12d1-a456-426655440000", KeyType: "random", Name: "TEST", City: "TESTCITY"},
	}}

	req := httptest.NewRequest(http.MethodPost, "/payees/"+id.String()+"/brcodes", strings.NewReader(`{"amount":"1.00"}`))
	rec := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res types.BRCodeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := "00020101021126580014br.gov.bcb.pix0136123e4567-e12b-12d1-a456-42665544000052040000530398654041.005802BR5904TEST6008TESTCITY62070503***630466EB"
	if res.Payload != want {
		t.Fatalf("unexpected payload %s", res.Payload)
	}
}

func TestGeneratePayeeBRCodeEmptyBody(t *testing.T) {
	id := uuid.New()
	repo := &stubPayeeRepo{payees: map[uuid.UUID]*model.Payee{
		id: {ID: id, PixKey: "pagamentos@loja.com.br", KeyType: "email", Name: "Loja do Zé", City: "Recife"},
	}}

	req := httptest.NewRequest(http.MethodPost, "/payees/"+id.String()+"/brcodes", nil)
	rec := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res types.BRCodeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Amount != "" {
		t.Fatalf("expected open amount, got %q", res.Amount)
	}
	if err := pix.Verify(res.Payload); err != nil {
		t.Fatalf("payload does not verify: %v", err)
	}
}

func TestPayeeHandlerErrors(t *testing.T) {
	known := uuid.New()
	badKey := uuid.New()
	repo := &stubPayeeRepo{payees: map[uuid.UUID]*model.Payee{
		known:  {ID: known, PixKey: "12345678909", KeyType: "cpf", Name: "A", City: "B"},
		badKey: {ID: badKey, PixKey: "123", KeyType: "cpf", Name: "A", City: "B"},
	}}

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		repo     PayeeRepository
		wantCode int
	}{
		{"invalid id", http.MethodPost, "/payees/not-a-uuid/brcodes", `{}`, repo, http.StatusBadRequest},
		{"unknown payee", http.MethodPost, "/payees/" + uuid.New().String() + "/brcodes", `{}`, repo, http.StatusNotFound},
		{"unknown payee profile", http.MethodGet, "/payees/" + uuid.New().String(), "", repo, http.StatusNotFound},
		{"bad amount", http.MethodPost, "/payees/" + known.String() + "/brcodes", `{"amount":"0"}`, repo, http.StatusUnprocessableEntity},
		{"stored key invalid", http.MethodPost, "/payees/" + badKey.String() + "/brcodes", `{}`, repo, http.StatusUnprocessableEntity},
		{"bad json", http.MethodPost, "/payees/" + known.String() + "/brcodes", `{"amount":`, repo, http.StatusBadRequest},
		{"repository failure", http.MethodPost, "/payees/" + known.String() + "/brcodes", `{}`, &stubPayeeRepo{err: errors.New("connection reset")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newTestRouter(tt.repo).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetPayee(t *testing.T) {
	id := uuid.New()
	repo := &stubPayeeRepo{payees: map[uuid.UUID]*model.Payee{
		id: {ID: id, PixKey: "12345678909", KeyType: "cpf", Name: "Fulano", City: "Natal"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/payees/"+id.String(), nil)
	rec := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var p model.Payee
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if p.ID != id || p.Name != "Fulano" {
		t.Fatalf("unexpected payee %+v", p)
	}
}
