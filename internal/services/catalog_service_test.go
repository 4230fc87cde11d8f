package services

import (
	"testing"

	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*CatalogService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Service{},
		&models.ServiceTaskTemplate{},
		&models.ServiceTaskDependency{},
		&models.TaskTemplate{},
		&models.FieldTemplate{},
		&models.LookupEntity{},
		&models.LookupOption{},
		&models.FieldResponse{},
	))

	return NewCatalogService(repository.NewCatalogRepository(db)), db
}

func addField(t *testing.T, svc *CatalogService, templateID uint64, label string) *models.FieldTemplate {
	field, err := svc.CreateFieldTemplate(CreateFieldTemplateInput{
		TaskTemplateID: templateID,
		Label:          label,
		FieldType:      models.FieldTypeText,
	})
	require.NoError(t, err)
	return field
}

func TestFieldOrderCompaction(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	template, err := svc.CreateTaskTemplate("Pump check", "")
	require.NoError(t, err)

	a := addField(t, svc, template.ID, "Pressure")
	b := addField(t, svc, template.ID, "Temperature")
	c := addField(t, svc, template.ID, "Vibration")
	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)
	assert.Equal(t, 2, c.Order)

	require.NoError(t, svc.DeleteFieldTemplate(b.ID))

	fields, err := svc.ListFieldTemplates(template.ID)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "Pressure", fields[0].Label)
	assert.Equal(t, 0, fields[0].Order)
	assert.Equal(t, "Vibration", fields[1].Label)
	assert.Equal(t, 1, fields[1].Order)
}

func TestCreateFieldTemplateValidation(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	template, err := svc.CreateTaskTemplate("Checklist", "")
	require.NoError(t, err)

	_, err = svc.CreateFieldTemplate(CreateFieldTemplateInput{
		TaskTemplateID: template.ID,
		Label:          "Bad type",
		FieldType:      models.FieldType("slider"),
	})
	assert.ErrorIs(t, err, ErrInvalidFieldType)

	_, err = svc.CreateFieldTemplate(CreateFieldTemplateInput{
		TaskTemplateID: template.ID,
		Label:          "Pick one",
		FieldType:      models.FieldTypeSelect,
	})
	assert.ErrorIs(t, err, ErrLookupEntityRequired)

	_, err = svc.CreateFieldTemplate(CreateFieldTemplateInput{
		TaskTemplateID: template.ID,
		Label:          "Reading",
		FieldType:      models.FieldTypeNumber,
		ValueSchema:    `{"type": not-json}`,
	})
	assert.ErrorIs(t, err, ErrInvalidFieldSchema)

	entity, err := svc.CreateLookupEntity("Shift")
	require.NoError(t, err)
	field, err := svc.CreateFieldTemplate(CreateFieldTemplateInput{
		TaskTemplateID: template.ID,
		Label:          "Shift",
		FieldType:      models.FieldTypeSelect,
		LookupEntityID: &entity.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, field.Order)
}

func TestLookupOptionCompaction(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	entity, err := svc.CreateLookupEntity("Severity")
	require.NoError(t, err)

	low, err := svc.AddLookupOption(entity.ID, "Low")
	require.NoError(t, err)
	mid, err := svc.AddLookupOption(entity.ID, "Medium")
	require.NoError(t, err)
	high, err := svc.AddLookupOption(entity.ID, "High")
	require.NoError(t, err)
	assert.Equal(t, 0, low.Order)
	assert.Equal(t, 1, mid.Order)
	assert.Equal(t, 2, high.Order)

	require.NoError(t, svc.DeleteLookupOption(mid.ID))

	reloaded, err := svc.GetLookupEntity(entity.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Options, 2)
	assert.Equal(t, "Low", reloaded.Options[0].Value)
	assert.Equal(t, 0, reloaded.Options[0].Order)
	assert.Equal(t, "High", reloaded.Options[1].Value)
	assert.Equal(t, 1, reloaded.Options[1].Order)
}

func TestDeleteLookupEntityClearsFieldReferences(t *testing.T) {
	svc, db := setupCatalogTest(t)

	template, err := svc.CreateTaskTemplate("Survey", "")
	require.NoError(t, err)
	entity, err := svc.CreateLookupEntity("Crew")
	require.NoError(t, err)
	field, err := svc.CreateFieldTemplate(CreateFieldTemplateInput{
		TaskTemplateID: template.ID,
		Label:          "Crew",
		FieldType:      models.FieldTypeSelect,
		LookupEntityID: &entity.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLookupEntity(entity.ID))

	var reloaded models.FieldTemplate
	require.NoError(t, db.First(&reloaded, field.ID).Error)
	assert.Nil(t, reloaded.LookupEntityID)
}

func TestServiceNameRequired(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	_, err := svc.CreateService("   ", "")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.CreateTaskTemplate("", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestDeleteTaskTemplateCleansServiceLinks(t *testing.T) {
	svc, db := setupCatalogTest(t)

	service, err := svc.CreateService("Ventilation", "")
	require.NoError(t, err)
	first, err := svc.CreateTaskTemplate("Measure airflow", "")
	require.NoError(t, err)
	second, err := svc.CreateTaskTemplate("Inspect fans", "")
	require.NoError(t, err)

	linkA := &models.ServiceTaskTemplate{ServiceID: service.ID, TaskTemplateID: first.ID, Order: 0, IsActive: true}
	linkB := &models.ServiceTaskTemplate{ServiceID: service.ID, TaskTemplateID: second.ID, Order: 1, IsActive: true}
	require.NoError(t, db.Create(linkA).Error)
	require.NoError(t, db.Create(linkB).Error)
	require.NoError(t, db.Create(&models.ServiceTaskDependency{
		ServiceID:      service.ID,
		DependentID:    linkB.ID,
		PrerequisiteID: linkA.ID,
	}).Error)

	require.NoError(t, svc.DeleteTaskTemplate(first.ID))

	var linkCount, depCount int64
	require.NoError(t, db.Model(&models.ServiceTaskTemplate{}).Where("service_id = ?", service.ID).Count(&linkCount).Error)
	require.NoError(t, db.Model(&models.ServiceTaskDependency{}).Where("service_id = ?", service.ID).Count(&depCount).Error)
	assert.Equal(t, int64(1), linkCount)
	assert.Zero(t, depCount)

	// The surviving link is re-numbered to the front.
	var survivor models.ServiceTaskTemplate
	require.NoError(t, db.First(&survivor, linkB.ID).Error)
	assert.Equal(t, 0, survivor.Order)
}
