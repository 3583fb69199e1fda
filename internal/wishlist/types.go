package wishlist

import (
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ItemDTO is a saved product as returned by the data API.
type ItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	UserEmail  string          `json:"userEmail"`
	ProductID  uuid.UUID       `json:"productId"`
	Title      string          `json:"title"`
	SavedPrice decimal.Decimal `json:"savedPrice"`
	Image      string          `json:"image"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type CreateItemInput struct {
	UserEmail  string          `json:"userEmail" validate:"required,email"`
	ProductID  uuid.UUID       `json:"productId" validate:"required"`
	Title      string          `json:"title" validate:"required,max=200"`
	SavedPrice decimal.Decimal `json:"savedPrice"`
	Image      string          `json:"image"`
}

func mapItemDTO(m models.WishlistItem) ItemDTO {
	return ItemDTO{
		ID:         m.ID,
		UserEmail:  m.UserEmail,
		ProductID:  m.ProductID,
		Title:      m.Title,
		SavedPrice: m.SavedPrice,
		Image:      m.Image,
		CreatedAt:  m.CreatedAt,
	}
}
