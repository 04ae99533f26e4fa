package profile

import (
	"context"

	"github.com/autocareer/autocareer/pkg/kernel"
)

type Repository interface {
	// Create creates a new profile
	Create(ctx context.Context, p *Profile) error

	// Update updates an existing profile
	Update(ctx context.Context, id kernel.ProfileID, p *Profile) error

	// GetByID retrieves a profile by ID
	GetByID(ctx context.Context, id kernel.ProfileID) (*Profile, error)

	// List retrieves all profiles with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Profile], error)

	// UpdateEmbedding stores a freshly generated narrative embedding
	UpdateEmbedding(ctx context.Context, id kernel.ProfileID, embedding kernel.Embedding) error

	// Delete deletes a profile by ID
	Delete(ctx context.Context, id kernel.ProfileID) error
}
