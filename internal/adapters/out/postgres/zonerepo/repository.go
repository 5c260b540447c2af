package zonerepo

import (
	"context"
	"errors"

	"pharmadispatch/internal/core/domain/model/dispatch"
	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormZoneRepository implements ZoneRepository using GORM.
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GORM zone repository.
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// Add saves a new zone to the database.
func (r *GormZoneRepository) Add(ctx context.Context, aggregate *dispatch.Zone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing zone to the database.
func (r *GormZoneRepository) Update(ctx context.Context, aggregate *dispatch.Zone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ZoneDTO{}).
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

// Get retrieves a zone by ID.
func (r *GormZoneRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Zone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ZoneDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("zone", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every zone currently accepting dispatch.
func (r *GormZoneRepository) GetAllActive(ctx context.Context) ([]*dispatch.Zone, error) {
	var dtos []ZoneDTO
	err := r.db.WithContext(ctx).Order("name").Find(&dtos, "active").Error
	if err != nil {
		return nil, err
	}

	zones := make([]*dispatch.Zone, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		zones = append(zones, aggregate)
	}
	return zones, nil
}
