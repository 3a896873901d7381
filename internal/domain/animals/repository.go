package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	// UpdateSale guarda a solo si el sale_status almacenado sigue siendo from.
	// Devuelve ErrNotFound si no existe y ErrSaleConflict si otro cambio ganó.
	UpdateSale(ctx context.Context, a Animal, from SaleStatus) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Animal, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Animal, error)

	// FindByIdentification busca por arete dentro del hato de un dueño.
	// Devuelve ErrNotFound si no existe.
	FindByIdentification(ctx context.Context, ownerID, identificationNumber string) (Animal, error)

	// ListForSale devuelve animales con sale_status = en_venta de cualquier dueño.
	ListForSale(ctx context.Context) ([]Animal, error)
}
