package brcode

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Niiaks/pixcode/internal/middleware"
	"github.com/Niiaks/pixcode/internal/pix"
	"github.com/Niiaks/pixcode/internal/render"
	"github.com/Niiaks/pixcode/pkg/types"
)

type BRCodeService struct {
	renderer render.Renderer
}

func NewBRCodeService(renderer render.Renderer) *BRCodeService {
	return &BRCodeService{
		renderer: renderer,
	}
}

// Generate builds the payload for req and, when includeImage is set, renders
// it as a PNG data URL. Validation failures are returned as *pix.ValidationError.
func (s *BRCodeService) Generate(ctx context.Context, req pix.PaymentRequest, includeImage bool) (*types.BRCodeResponse, error) {
	logger := middleware.GetLogger(ctx)

	clean, err := req.Sanitize()
	if err != nil {
		return nil, err
	}

	payload := pix.Assemble(clean)
	if err := pix.Verify(payload); err != nil {
		return nil, errors.Wrap(err, "generated payload failed verification")
	}

	res := &types.BRCodeResponse{
		Payload:      payload,
		KeyType:      clean.KeyType.String(),
		MerchantName: clean.MerchantName,
		MerchantCity: clean.MerchantCity,
		Amount:       clean.Amount,
	}

	if includeImage {
		if s.renderer == nil {
			return nil, errors.New("no barcode renderer configured")
		}
		png, err := s.renderer.Render(payload)
		if err != nil {
			return nil, errors.Wrap(err, "failed to render barcode")
		}
		res.Image = render.DataURL(png)
	}

	logger.Debug().
		Str("key_type", res.KeyType).
		Bool("has_amount", res.Amount != "").
		Int("payload_len", len(payload)).
		Msg("BR Code generated")

	return res, nil
}
