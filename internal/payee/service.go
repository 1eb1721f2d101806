package payee

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Niiaks/pixcode/internal/brcode"
	"github.com/Niiaks/pixcode/internal/middleware"
	"github.com/Niiaks/pixcode/internal/model"
	"github.com/Niiaks/pixcode/internal/pix"
	"github.com/Niiaks/pixcode/pkg/types"
)

type PayeeService struct {
	repo    PayeeRepository
	brcodes *brcode.BRCodeService
}

func NewPayeeService(repo PayeeRepository, brcodes *brcode.BRCodeService) *PayeeService {
	return &PayeeService{
		repo:    repo,
		brcodes: brcodes,
	}
}

func (ps *PayeeService) GetPayee(ctx context.Context, id uuid.UUID) (*model.Payee, error) {
	p, err := ps.repo.GetPayee(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPayeeNotFound) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to load payee %s", id)
	}
	return p, nil
}

// GenerateBRCode builds a payload for the stored payee with the caller's
// amount and reference label.
func (ps *PayeeService) GenerateBRCode(ctx context.Context, id uuid.UUID, req *types.PayeeBRCodeRequest) (*types.BRCodeResponse, error) {
	logger := middleware.GetLogger(ctx)

	p, err := ps.GetPayee(ctx, id)
	if err != nil {
		return nil, err
	}

	keyType, err := pix.ParseKeyType(p.KeyType)
	if err != nil {
		logger.Error().Str("payee_id", id.String()).Str("key_type", p.KeyType).Msg("Stored payee has an unsupported key type")
		return nil, err
	}

	return ps.brcodes.Generate(ctx, pix.PaymentRequest{
		Key:            p.PixKey,
		KeyType:        keyType,
		MerchantName:   p.Name,
		MerchantCity:   p.City,
		Amount:         req.Amount,
		ReferenceLabel: req.ReferenceLabel,
	}, req.IncludeImage)
}
