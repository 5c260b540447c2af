package addressrepo

import (
	"context"
	"errors"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/domain/model/location"
	"pharmadispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GORM address repository.
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// Add saves a new address to the database.
func (r *GormAddressRepository) Add(ctx context.Context, aggregate *location.Address) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing address to the database.
func (r *GormAddressRepository) Update(ctx context.Context, aggregate *location.Address) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AddressDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Get retrieves an address by ID.
func (r *GormAddressRepository) Get(ctx context.Context, id kernel.UUID) (*location.Address, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AddressDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("address", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForCustomer retrieves every address owned by the customer.
func (r *GormAddressRepository) GetAllForCustomer(
	ctx context.Context,
	customerID kernel.UUID,
) ([]*location.Address, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AddressDTO
	err := r.db.WithContext(ctx).
		Order("label").
		Find(&dtos, "customer_id = ?", customerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	addresses := make([]*location.Address, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, aggregate)
	}
	return addresses, nil
}
