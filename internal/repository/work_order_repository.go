package repository

import (
	"github.com/andestrack/field-service-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkOrderRepository is a GORM implementation of WorkOrderRepository
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new WorkOrderRepository
func NewWorkOrderRepository(db *gorm.DB) WorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// CreateExpanded persists a work order, its seeded days and day-task links,
// and the same-day dependency rows in one transaction. Dependency seeds are
// resolved against the link IDs assigned during the insert: a row is created
// on every day where both the dependent and the prerequisite link exist.
func (r *GormWorkOrderRepository) CreateExpanded(wo *models.WorkOrder, seeds []DaySeed, deps []DependencySeed) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(wo).Error; err != nil {
			return err
		}

		for i := range seeds {
			day := &seeds[i].Day
			day.WorkOrderID = wo.ID
			if err := tx.Create(day).Error; err != nil {
				return err
			}

			// Link IDs keyed by originating service task template,
			// for same-day dependency resolution below.
			linkBySTT := make(map[uint64]uint64, len(seeds[i].Links))
			for j := range seeds[i].Links {
				link := &seeds[i].Links[j]
				link.WorkOrderDayID = day.ID
				if err := tx.Create(link).Error; err != nil {
					return err
				}
				if link.ServiceTaskTemplateID != nil {
					linkBySTT[*link.ServiceTaskTemplateID] = link.ID
				}
			}

			for _, dep := range deps {
				dependentLink, okDep := linkBySTT[dep.DependentSTT]
				prerequisiteLink, okPre := linkBySTT[dep.PrerequisiteSTT]
				if !okDep || !okPre {
					continue
				}
				row := models.WorkOrderDayTaskDependency{
					WorkOrderDayID: day.ID,
					DependentID:    dependentLink,
					PrerequisiteID: prerequisiteLink,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// FindByID finds a work order by ID with optional preloading
func (r *GormWorkOrderRepository) FindByID(id uint64, preload ...string) (*models.WorkOrder, error) {
	var wo models.WorkOrder
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&wo, id).Error; err != nil {
		return nil, err
	}

	return &wo, nil
}

// List retrieves work orders with filtering and pagination
func (r *GormWorkOrderRepository) List(filter WorkOrderFilter) ([]models.WorkOrder, int64, error) {
	var workOrders []models.WorkOrder

	query := r.db.Model(&models.WorkOrder{})

	if filter.CustomerID != nil {
		query = query.Where("work_orders.customer_id = ?", *filter.CustomerID)
	}
	if filter.FaenaID != nil {
		query = query.Where("work_orders.faena_id = ?", *filter.FaenaID)
	}
	if filter.Status != nil {
		query = query.Where("work_orders.status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("work_orders.end_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("work_orders.start_date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("work_orders.start_date DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Customer").Preload("Faena").Find(&workOrders).Error; err != nil {
		return nil, 0, err
	}

	return workOrders, total, nil
}

// Update updates a work order
func (r *GormWorkOrderRepository) Update(wo *models.WorkOrder) error {
	return r.db.Save(wo).Error
}

// DeleteCascade removes the work order with its days, day links, day
// dependencies, assignments, task instances and field responses.
func (r *GormWorkOrderRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var dayIDs []uint64
		if err := tx.Model(&models.WorkOrderDay{}).
			Where("work_order_id = ?", id).
			Pluck("id", &dayIDs).Error; err != nil {
			return err
		}

		if len(dayIDs) > 0 {
			var instanceIDs []uint64
			if err := tx.Model(&models.TaskInstance{}).
				Where("work_order_day_id IN ?", dayIDs).
				Pluck("id", &instanceIDs).Error; err != nil {
				return err
			}
			if len(instanceIDs) > 0 {
				if err := tx.Where("task_instance_id IN ?", instanceIDs).
					Delete(&models.FieldResponse{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", instanceIDs).
					Delete(&models.TaskInstance{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("work_order_day_id IN ?", dayIDs).
				Delete(&models.WorkOrderDayTaskDependency{}).Error; err != nil {
				return err
			}
			if err := tx.Where("work_order_day_id IN ?", dayIDs).
				Delete(&models.WorkOrderDayTaskTemplate{}).Error; err != nil {
				return err
			}
			if err := tx.Where("work_order_day_id IN ?", dayIDs).
				Delete(&models.WorkOrderDayService{}).Error; err != nil {
				return err
			}
			if err := tx.Where("work_order_day_id IN ?", dayIDs).
				Delete(&models.DayAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("work_order_id = ?", id).
				Delete(&models.WorkOrderDay{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.WorkOrder{}, id).Error
	})
}

// FindDayByID finds a work order day by ID
func (r *GormWorkOrderRepository) FindDayByID(id uint64) (*models.WorkOrderDay, error) {
	var day models.WorkOrderDay
	if err := r.db.First(&day, id).Error; err != nil {
		return nil, err
	}
	return &day, nil
}

// ListDays lists a work order's days in day-number order
func (r *GormWorkOrderRepository) ListDays(workOrderID uint64) ([]models.WorkOrderDay, error) {
	var days []models.WorkOrderDay
	err := r.db.Where("work_order_id = ?", workOrderID).
		Order("work_order_days.day_number ASC").Find(&days).Error
	return days, err
}

// UpdateDay updates a work order day
func (r *GormWorkOrderRepository) UpdateDay(day *models.WorkOrderDay) error {
	return r.db.Save(day).Error
}

// AssignUsers adds day assignments, reviving soft-deleted ones
func (r *GormWorkOrderRepository) AssignUsers(dayID uint64, userIDs []uint64) error {
	assignments := make([]models.DayAssignment, len(userIDs))

	for i, userID := range userIDs {
		assignments[i] = models.DayAssignment{
			WorkOrderDayID: dayID,
			UserID:         userID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "work_order_day_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted_at": gorm.Expr("NULL")}),
		}).
		Create(&assignments).Error
}

// UnassignUsers removes day assignments; task instances are untouched
func (r *GormWorkOrderRepository) UnassignUsers(dayID uint64, userIDs []uint64) error {
	return r.db.Where("work_order_day_id = ? AND user_id IN ?", dayID, userIDs).
		Delete(&models.DayAssignment{}).Error
}

// ListAssignments lists the workers assigned to a day
func (r *GormWorkOrderRepository) ListAssignments(dayID uint64) ([]models.DayAssignment, error) {
	var assignments []models.DayAssignment
	err := r.db.Where("work_order_day_id = ?", dayID).
		Preload("User").Find(&assignments).Error
	return assignments, err
}
