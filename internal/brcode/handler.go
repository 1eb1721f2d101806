package brcode

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Niiaks/pixcode/internal/middleware"
	"github.com/Niiaks/pixcode/internal/pix"
	"github.com/Niiaks/pixcode/internal/response"
	"github.com/Niiaks/pixcode/pkg/types"
)

type BRCodeHandler struct {
	service *BRCodeService
}

func NewBRCodeHandler(service *BRCodeService) *BRCodeHandler {
	return &BRCodeHandler{
		service: service,
	}
}

var validate = validator.New()

func (h *BRCodeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	logger := middleware.GetLogger(ctx)
	logger.Info().Msg("Received request to generate BR Code")

	var req types.GenerateBRCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error().Err(err).Msg("Failed to decode BR Code request")
		response.Error(w, r, http.StatusBadRequest, "invalid request payload", "")
		return
	}

	if err := validate.Struct(&req); err != nil {
		logger.Error().Err(err).Msg("Validation error on BR Code request")
		response.Error(w, r, http.StatusBadRequest, "validation error: "+err.Error(), "")
		return
	}

	keyType, err := pix.ParseKeyType(req.KeyType)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	res, err := h.service.Generate(ctx, pix.PaymentRequest{
		Key:            req.Key,
		KeyType:        keyType,
		MerchantName:   req.MerchantName,
		MerchantCity:   req.MerchantCity,
		Amount:         req.Amount,
		ReferenceLabel: req.ReferenceLabel,
	}, req.IncludeImage)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, res)
	logger.Info().Msg("BR Code generated successfully")
}

// WriteError maps pix validation failures to 422 with the offending field and
// anything else to 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := middleware.GetLogger(r.Context())

	var verr *pix.ValidationError
	if errors.As(err, &verr) {
		logger.Warn().Err(err).Str("field", verr.Field).Msg("BR Code request rejected")
		response.Error(w, r, http.StatusUnprocessableEntity, verr.Message, verr.Field)
		return
	}

	logger.Error().Stack().Err(err).Msg("Failed to generate BR Code")
	response.Error(w, r, http.StatusInternalServerError, "failed to generate BR Code", "")
}
