package allocation

import (
	"errors"

	"gorm.io/gorm"

	"fundadmin/models"
)

// Repository is the data access the allocation engine needs. It is the
// only place the engine touches the database.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCall(id uint) (*models.CapitalCall, error) {
	var call models.CapitalCall
	if err := r.db.First(&call, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, err
	}
	return &call, nil
}

func (r *Repository) GetStructure(id uint) (*models.Structure, error) {
	var structure models.Structure
	if err := r.db.First(&structure, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStructureNotFound
		}
		return nil, err
	}
	return &structure, nil
}

// ListInvestorRecords returns the raw commitment records of a structure in
// ascending id order, the order AggregateRoster relies on.
func (r *Repository) ListInvestorRecords(structureID uint) ([]models.StructureInvestor, error) {
	var rows []models.StructureInvestor
	if err := r.db.Where("structure_id = ?", structureID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) ListAllocations(callID uint) ([]models.Allocation, error) {
	var rows []models.Allocation
	if err := r.db.Where("call_id = ?", callID).Order("investor_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) CountAllocations(callID uint) (int64, error) {
	var n int64
	if err := r.db.Model(&models.Allocation{}).Where("call_id = ?", callID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
