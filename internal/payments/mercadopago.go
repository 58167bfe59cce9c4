package payments

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/drivebook/car-rental-api/internal/models"
)

// Provider generates a Mercado Pago checkout link for a confirmed booking.
// Nil when MP_ACCESS_TOKEN is not set; confirmation then simply skips the link.
type Provider struct {
	prefs preference.Client
}

func NewProvider(accessToken string) (*Provider, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Provider{prefs: preference.NewClient(cfg)}, nil
}

func (p *Provider) CheckoutLink(ctx context.Context, b *models.Booking, itemTitle string) (string, error) {
	resource, err := p.prefs.Create(ctx, preference.Request{
		ExternalReference: b.ID,
		Items: []preference.ItemRequest{
			{
				ID:        b.CatalogItemID,
				Title:     itemTitle,
				Quantity:  1,
				UnitPrice: b.TotalPrice,
			},
		},
	})
	if err != nil {
		return "", err
	}

	return resource.InitPoint, nil
}
