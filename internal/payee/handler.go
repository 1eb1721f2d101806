package payee

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Niiaks/pixcode/internal/brcode"
	"github.com/Niiaks/pixcode/internal/middleware"
	"github.com/Niiaks/pixcode/internal/response"
	"github.com/Niiaks/pixcode/pkg/types"
)

type PayeeHandler struct {
	service *PayeeService
}

func NewPayeeHandler(service *PayeeService) *PayeeHandler {
	return &PayeeHandler{
		service: service,
	}
}

var validate = validator.New()

func (ph *PayeeHandler) GetPayee(w http.ResponseWriter, r *http.Request) {
	id, ok := ph.payeeID(w, r)
	if !ok {
		return
	}

	p, err := ph.service.GetPayee(r.Context(), id)
	if err != nil {
		ph.writeError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (ph *PayeeHandler) GenerateBRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	logger := middleware.GetLogger(ctx)
	logger.Info().Msg("Received request to generate payee BR Code")

	id, ok := ph.payeeID(w, r)
	if !ok {
		return
	}

	var req types.PayeeBRCodeRequest
	// An empty body asks for an open-amount code.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Error().Err(err).Msg("Failed to decode payee BR Code request")
		response.Error(w, r, http.StatusBadRequest, "invalid request payload", "")
		return
	}

	if err := validate.Struct(&req); err != nil {
		logger.Error().Err(err).Msg("Validation error on payee BR Code request")
		response.Error(w, r, http.StatusBadRequest, "validation error: "+err.Error(), "")
		return
	}

	res, err := ph.service.GenerateBRCode(ctx, id, &req)
	if err != nil {
		ph.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, res)
	logger.Info().Str("payee_id", id.String()).Msg("Payee BR Code generated successfully")
}

func (ph *PayeeHandler) payeeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "payeeID"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid payee id", "payee_id")
		return uuid.Nil, false
	}
	return id, true
}

func (ph *PayeeHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrPayeeNotFound) {
		response.Error(w, r, http.StatusNotFound, err.Error(), "payee_id")
		return
	}
	brcode.WriteError(w, r, err)
}
