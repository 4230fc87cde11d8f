package repository

import (
	"github.com/andestrack/field-service-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInstanceRepository is a GORM implementation of InstanceRepository
type GormInstanceRepository struct {
	db *gorm.DB
}

// NewInstanceRepository creates a new InstanceRepository
func NewInstanceRepository(db *gorm.DB) InstanceRepository {
	return &GormInstanceRepository{db: db}
}

func (r *GormInstanceRepository) Create(instance *models.TaskInstance) error {
	return r.db.Create(instance).Error
}

func (r *GormInstanceRepository) FindByID(id uint64, preload ...string) (*models.TaskInstance, error) {
	var instance models.TaskInstance
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&instance, id).Error; err != nil {
		return nil, err
	}

	return &instance, nil
}

// FindByRoutineOrigin looks up the instance for (day, user) with the given
// routine origin. The day+user index narrows the scan; the origin foreign
// keys pin the exact tuple.
func (r *GormInstanceRepository) FindByRoutineOrigin(dayID, userID, dayServiceID, serviceTaskTemplateID uint64) (*models.TaskInstance, error) {
	var instance models.TaskInstance
	err := r.db.
		Where("work_order_day_id = ? AND user_id = ?", dayID, userID).
		Where("work_order_day_service_id = ? AND service_task_template_id = ?", dayServiceID, serviceTaskTemplateID).
		First(&instance).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// FindByStandaloneOrigin looks up the instance for (day, user) with the given
// standalone origin.
func (r *GormInstanceRepository) FindByStandaloneOrigin(dayID, userID, dayTaskTemplateID uint64) (*models.TaskInstance, error) {
	var instance models.TaskInstance
	err := r.db.
		Where("work_order_day_id = ? AND user_id = ?", dayID, userID).
		Where("work_order_day_task_template_id = ?", dayTaskTemplateID).
		First(&instance).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

func (r *GormInstanceRepository) ListByDay(dayID uint64) ([]models.TaskInstance, error) {
	var instances []models.TaskInstance
	err := r.db.Where("work_order_day_id = ?", dayID).
		Preload("User").Find(&instances).Error
	return instances, err
}

func (r *GormInstanceRepository) ListByDayAndUser(dayID, userID uint64) ([]models.TaskInstance, error) {
	var instances []models.TaskInstance
	err := r.db.Where("work_order_day_id = ? AND user_id = ?", dayID, userID).
		Find(&instances).Error
	return instances, err
}

func (r *GormInstanceRepository) ListByUser(userID uint64, page, limit int) ([]models.TaskInstance, int64, error) {
	var instances []models.TaskInstance

	query := r.db.Model(&models.TaskInstance{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("task_instances.created_at DESC")
	if page > 0 && limit > 0 {
		listQuery = listQuery.Offset((page - 1) * limit).Limit(limit)
	}
	if err := listQuery.Find(&instances).Error; err != nil {
		return nil, 0, err
	}

	return instances, total, nil
}

func (r *GormInstanceRepository) Update(instance *models.TaskInstance) error {
	return r.db.Save(instance).Error
}

// CountOrphanedByDayService counts instances under a day-service link that
// are completed or carry recorded field responses. Reported when the link is
// deactivated so callers can flag historical work under an inactive link.
func (r *GormInstanceRepository) CountOrphanedByDayService(dayServiceID uint64) (int64, error) {
	var count int64
	responseSubQuery := r.db.Model(&models.FieldResponse{}).
		Select("1").
		Where("field_responses.task_instance_id = task_instances.id")
	err := r.db.Model(&models.TaskInstance{}).
		Where("work_order_day_service_id = ?", dayServiceID).
		Where("status = ? OR EXISTS (?)", models.InstanceStatusCompleted, responseSubQuery).
		Count(&count).Error
	return count, err
}

// CountOrphanedByDayTaskTemplate is the standalone-link counterpart of
// CountOrphanedByDayService.
func (r *GormInstanceRepository) CountOrphanedByDayTaskTemplate(dayTaskTemplateID uint64) (int64, error) {
	var count int64
	responseSubQuery := r.db.Model(&models.FieldResponse{}).
		Select("1").
		Where("field_responses.task_instance_id = task_instances.id")
	err := r.db.Model(&models.TaskInstance{}).
		Where("work_order_day_task_template_id = ?", dayTaskTemplateID).
		Where("status = ? OR EXISTS (?)", models.InstanceStatusCompleted, responseSubQuery).
		Count(&count).Error
	return count, err
}

// SaveResponse upserts one field response per (instance, field).
func (r *GormInstanceRepository) SaveResponse(response *models.FieldResponse) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_instance_id"}, {Name: "field_template_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(response).Error
}

func (r *GormInstanceRepository) FindResponse(instanceID, fieldTemplateID uint64) (*models.FieldResponse, error) {
	var response models.FieldResponse
	if err := r.db.Where("task_instance_id = ? AND field_template_id = ?", instanceID, fieldTemplateID).
		First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *GormInstanceRepository) ListResponses(instanceID uint64) ([]models.FieldResponse, error) {
	var responses []models.FieldResponse
	err := r.db.Where("task_instance_id = ?", instanceID).
		Preload("FieldTemplate").Find(&responses).Error
	return responses, err
}
