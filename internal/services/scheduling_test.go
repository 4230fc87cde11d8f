package services

import (
	"context"
	"testing"
	"time"

	"github.com/andestrack/field-service-api/internal/events"
	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SchedulingSuite exercises the scheduling engine end to end over an
// in-memory database: work order expansion, applicability resolution,
// idempotent materialization, linkage management and dependency checking.
type SchedulingSuite struct {
	suite.Suite

	db           *gorm.DB
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	catalogRepo  repository.CatalogRepository
	woRepo       repository.WorkOrderRepository
	linkRepo     repository.LinkRepository
	instanceRepo repository.InstanceRepository

	materializer *MaterializerService
	linkage      *LinkageService
	workOrders   *WorkOrderService
	instances    *InstanceService
	catalog      *CatalogService

	ctx      context.Context
	customer *models.Customer
	faena    *models.Faena
}

func TestSchedulingSuite(t *testing.T) {
	suite.Run(t, new(SchedulingSuite))
}

func (s *SchedulingSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	s.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Faena{},
		&models.Service{},
		&models.ServiceTaskTemplate{},
		&models.ServiceTaskDependency{},
		&models.TaskTemplate{},
		&models.FieldTemplate{},
		&models.LookupEntity{},
		&models.LookupOption{},
		&models.WorkOrder{},
		&models.WorkOrderDay{},
		&models.DayAssignment{},
		&models.WorkOrderDayService{},
		&models.WorkOrderDayTaskTemplate{},
		&models.WorkOrderDayTaskDependency{},
		&models.TaskInstance{},
		&models.FieldResponse{},
	))

	s.db = db
	s.userRepo = repository.NewUserRepository(db)
	s.customerRepo = repository.NewCustomerRepository(db)
	s.catalogRepo = repository.NewCatalogRepository(db)
	s.woRepo = repository.NewWorkOrderRepository(db)
	s.linkRepo = repository.NewLinkRepository(db)
	s.instanceRepo = repository.NewInstanceRepository(db)

	publisher := events.NewPublisher("", "")

	s.materializer = NewMaterializerService(s.woRepo, s.linkRepo, s.catalogRepo, s.instanceRepo, s.userRepo, publisher)
	s.linkage = NewLinkageService(s.woRepo, s.linkRepo, s.catalogRepo, s.instanceRepo, s.materializer)
	s.workOrders = NewWorkOrderService(s.woRepo, s.customerRepo, s.catalogRepo, s.userRepo, s.materializer, publisher)
	s.instances = NewInstanceService(s.instanceRepo, s.linkRepo, s.catalogRepo, publisher)
	s.catalog = NewCatalogService(s.catalogRepo)

	s.ctx = context.Background()

	s.customer = &models.Customer{Name: "Minera Andes"}
	s.Require().NoError(s.customerRepo.Create(s.customer))
	s.faena = &models.Faena{CustomerID: s.customer.ID, Name: "Faena Norte"}
	s.Require().NoError(s.customerRepo.CreateFaena(s.faena))
}

func (s *SchedulingSuite) createWorker(username string) *models.User {
	user := &models.User{Username: username, PasswordHash: "hashed", Role: models.RoleWorker}
	s.Require().NoError(s.userRepo.Create(user))
	return user
}

func (s *SchedulingSuite) createService(name string) *models.Service {
	service := &models.Service{Name: name}
	s.Require().NoError(s.db.Create(service).Error)
	return service
}

func (s *SchedulingSuite) createTemplate(name string) *models.TaskTemplate {
	template := &models.TaskTemplate{Name: name}
	s.Require().NoError(s.db.Create(template).Error)
	return template
}

func (s *SchedulingSuite) addRoutine(serviceID, templateID uint64, dayNumber *int) *models.ServiceTaskTemplate {
	link, err := s.linkage.AddTaskTemplateToService(s.ctx, serviceID, templateID, nil, true, dayNumber)
	s.Require().NoError(err)
	return link
}

func (s *SchedulingSuite) createWorkOrder(serviceID *uint64, days int) *models.WorkOrder {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	wo, err := s.workOrders.CreateWorkOrder(s.ctx, CreateWorkOrderInput{
		CustomerID: s.customer.ID,
		FaenaID:    s.faena.ID,
		ServiceID:  serviceID,
		Name:       "Inspection campaign",
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, days-1),
	})
	s.Require().NoError(err)
	return wo
}

func (s *SchedulingSuite) countInstances(dayID, userID uint64) int {
	list, err := s.instanceRepo.ListByDayAndUser(dayID, userID)
	s.Require().NoError(err)
	return len(list)
}

func (s *SchedulingSuite) TestExpansionSeedsContiguousDaysAndLinks() {
	service := s.createService("Drilling QA")
	template := s.createTemplate("Daily rig check")
	stt := s.addRoutine(service.ID, template.ID, nil)

	wo := s.createWorkOrder(&service.ID, 3)

	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)
	s.Require().Len(days, 3)

	for i, day := range days {
		s.Equal(i+1, day.DayNumber)
		expected := time.Date(2026, 3, 2+i, 0, 0, 0, 0, time.UTC)
		s.True(day.DayDate.Equal(expected), "day %d date %v", i+1, day.DayDate)

		links, err := s.linkRepo.ListDayTaskTemplates(day.ID, true)
		s.Require().NoError(err)
		s.Require().Len(links, 1)
		s.Equal(template.ID, links[0].TaskTemplateID)
		s.Require().NotNil(links[0].ServiceTaskTemplateID)
		s.Equal(stt.ID, *links[0].ServiceTaskTemplateID)
		s.True(links[0].IsRequired)
	}

	// Expansion never creates task instances; those wait for assignment.
	var instanceCount int64
	s.Require().NoError(s.db.Model(&models.TaskInstance{}).Count(&instanceCount).Error)
	s.Zero(instanceCount)
}

func (s *SchedulingSuite) TestExpansionTargetsDayNumber() {
	service := s.createService("Commissioning")
	template := s.createTemplate("Final signoff")
	dayTwo := 2
	s.addRoutine(service.ID, template.ID, &dayTwo)

	wo := s.createWorkOrder(&service.ID, 3)

	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)

	for _, day := range days {
		links, err := s.linkRepo.ListDayTaskTemplates(day.ID, true)
		s.Require().NoError(err)
		if day.DayNumber == 2 {
			s.Len(links, 1)
		} else {
			s.Empty(links)
		}
	}
}

func (s *SchedulingSuite) TestExpansionValidation() {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := s.workOrders.CreateWorkOrder(s.ctx, CreateWorkOrderInput{
		CustomerID: s.customer.ID,
		FaenaID:    s.faena.ID,
		Name:       "Backwards",
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, -1),
	})
	s.ErrorIs(err, ErrInvalidDateRange)

	other := &models.Customer{Name: "Other"}
	s.Require().NoError(s.customerRepo.Create(other))

	_, err = s.workOrders.CreateWorkOrder(s.ctx, CreateWorkOrderInput{
		CustomerID: other.ID,
		FaenaID:    s.faena.ID,
		Name:       "Wrong site",
		StartDate:  start,
		EndDate:    start,
	})
	s.ErrorIs(err, ErrFaenaCustomerMismatch)

	below := 0
	_, err = s.workOrders.CreateWorkOrder(s.ctx, CreateWorkOrderInput{
		CustomerID:     s.customer.ID,
		FaenaID:        s.faena.ID,
		Name:           "Nobody",
		StartDate:      start,
		EndDate:        start,
		RequiredPeople: &below,
	})
	s.ErrorIs(err, ErrRequiredPeopleBelowOne)
}

func (s *SchedulingSuite) TestAssignmentMaterializesExactlyOnce() {
	service := s.createService("Maintenance")
	template := s.createTemplate("Lubrication round")
	s.addRoutine(service.ID, template.ID, nil)

	wo := s.createWorkOrder(&service.ID, 1)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)
	day := days[0]

	worker := s.createWorker("w1")

	s.Require().NoError(s.workOrders.AssignUsers(s.ctx, AssignUsersInput{
		DayID:   day.ID,
		UserIDs: []uint64{worker.ID},
	}))
	s.Equal(1, s.countInstances(day.ID, worker.ID))

	// Re-assignment is a no-op: no duplicate instance appears.
	s.Require().NoError(s.workOrders.AssignUsers(s.ctx, AssignUsersInput{
		DayID:   day.ID,
		UserIDs: []uint64{worker.ID},
	}))
	s.Equal(1, s.countInstances(day.ID, worker.ID))

	// Direct re-materialization is equally idempotent.
	s.Require().NoError(s.materializer.MaterializeForUser(s.ctx, day.ID, worker.ID, nil))
	s.Equal(1, s.countInstances(day.ID, worker.ID))
}

func (s *SchedulingSuite) TestApplicabilityFiltersByDayNumber() {
	service := s.createService("Survey")
	everyDay := s.createTemplate("Site walk")
	lastDay := s.createTemplate("Handover report")
	s.addRoutine(service.ID, everyDay.ID, nil)
	dayTwo := 2
	s.addRoutine(service.ID, lastDay.ID, &dayTwo)

	wo := s.createWorkOrder(nil, 2)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)

	for _, day := range days {
		_, err := s.linkage.AddServiceToDay(s.ctx, day.ID, service.ID, nil)
		s.Require().NoError(err)
	}

	tasksDayOne, err := s.workOrders.GetApplicableTasksForDay(days[0].ID)
	s.Require().NoError(err)
	s.Require().Len(tasksDayOne.Routine, 1)
	s.Equal(everyDay.ID, tasksDayOne.Routine[0].TaskTemplateID)

	tasksDayTwo, err := s.workOrders.GetApplicableTasksForDay(days[1].ID)
	s.Require().NoError(err)
	s.Len(tasksDayTwo.Routine, 2)
}

func (s *SchedulingSuite) TestDependencyRules() {
	service := s.createService("Blasting")
	a := s.addRoutine(service.ID, s.createTemplate("Clear area").ID, nil)
	b := s.addRoutine(service.ID, s.createTemplate("Charge holes").ID, nil)

	_, err := s.linkage.CreateServiceTaskDependency(CreateDependencyInput{
		ServiceID:      service.ID,
		DependentID:    b.ID,
		PrerequisiteID: a.ID,
	})
	s.Require().NoError(err)

	// The reverse edge closes a cycle and must be rejected.
	_, err = s.linkage.CreateServiceTaskDependency(CreateDependencyInput{
		ServiceID:      service.ID,
		DependentID:    a.ID,
		PrerequisiteID: b.ID,
	})
	s.ErrorIs(err, ErrCycleDetected)

	_, err = s.linkage.CreateServiceTaskDependency(CreateDependencyInput{
		ServiceID:      service.ID,
		DependentID:    a.ID,
		PrerequisiteID: a.ID,
	})
	s.ErrorIs(err, ErrSelfDependency)

	_, err = s.linkage.CreateServiceTaskDependency(CreateDependencyInput{
		ServiceID:      service.ID,
		DependentID:    b.ID,
		PrerequisiteID: a.ID,
	})
	s.ErrorIs(err, ErrDuplicateDependency)

	otherService := s.createService("Hauling")
	foreign := s.addRoutine(otherService.ID, s.createTemplate("Load trucks").ID, nil)
	_, err = s.linkage.CreateServiceTaskDependency(CreateDependencyInput{
		ServiceID:      service.ID,
		DependentID:    b.ID,
		PrerequisiteID: foreign.ID,
	})
	s.ErrorIs(err, ErrCrossServiceDependency)

	// The edge set is unchanged after every rejection.
	deps, err := s.linkage.ListServiceTaskDependencies(service.ID)
	s.Require().NoError(err)
	s.Len(deps, 1)
}

func (s *SchedulingSuite) TestRemoveServiceReportsOrphanedWork() {
	service := s.createService("Sampling")
	template := s.createTemplate("Collect samples")
	s.addRoutine(service.ID, template.ID, nil)

	wo := s.createWorkOrder(nil, 1)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)
	day := days[0]

	link, err := s.linkage.AddServiceToDay(s.ctx, day.ID, service.ID, nil)
	s.Require().NoError(err)

	worker := s.createWorker("w2")
	s.Require().NoError(s.workOrders.AssignUsers(s.ctx, AssignUsersInput{
		DayID:   day.ID,
		UserIDs: []uint64{worker.ID},
	}))

	list, err := s.instanceRepo.ListByDayAndUser(day.ID, worker.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)

	_, err = s.instances.CompleteInstance(s.ctx, list[0].ID, worker.ID)
	s.Require().NoError(err)

	orphaned, err := s.linkage.RemoveServiceFromDay(link.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), orphaned)

	// Deactivation preserves the completed instance untouched.
	kept, err := s.instanceRepo.FindByID(list[0].ID)
	s.Require().NoError(err)
	s.Equal(models.InstanceStatusCompleted, kept.Status)

	// Re-adding reactivates the same link without duplicating instances.
	relinked, err := s.linkage.AddServiceToDay(s.ctx, day.ID, service.ID, nil)
	s.Require().NoError(err)
	s.Equal(link.ID, relinked.ID)
	s.True(relinked.IsActive)
	s.Equal(1, s.countInstances(day.ID, worker.ID))
}

func (s *SchedulingSuite) TestDuplicateActiveServiceLinkRejected() {
	service := s.createService("Cleanup")
	wo := s.createWorkOrder(nil, 1)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)

	_, err = s.linkage.AddServiceToDay(s.ctx, days[0].ID, service.ID, nil)
	s.Require().NoError(err)

	_, err = s.linkage.AddServiceToDay(s.ctx, days[0].ID, service.ID, nil)
	s.ErrorIs(err, ErrDuplicateServiceLink)
}

func (s *SchedulingSuite) TestLenientPartialReorder() {
	wo := s.createWorkOrder(nil, 1)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)
	day := days[0]

	first, err := s.linkage.AddTaskTemplateToDay(s.ctx, day.ID, s.createTemplate("One").ID, nil, false)
	s.Require().NoError(err)
	second, err := s.linkage.AddTaskTemplateToDay(s.ctx, day.ID, s.createTemplate("Two").ID, nil, false)
	s.Require().NoError(err)
	third, err := s.linkage.AddTaskTemplateToDay(s.ctx, day.ID, s.createTemplate("Three").ID, nil, false)
	s.Require().NoError(err)

	s.Equal(0, first.Order)
	s.Equal(1, second.Order)
	s.Equal(2, third.Order)

	// A partial list reorders only the supplied links; unknown ids are
	// skipped without error.
	s.Require().NoError(s.linkage.ReorderTaskTemplates(day.ID, []uint64{third.ID, second.ID, 99999}))

	reThird, err := s.linkRepo.FindDayTaskTemplateByID(third.ID)
	s.Require().NoError(err)
	s.Equal(0, reThird.Order)

	reSecond, err := s.linkRepo.FindDayTaskTemplateByID(second.ID)
	s.Require().NoError(err)
	s.Equal(1, reSecond.Order)

	reFirst, err := s.linkRepo.FindDayTaskTemplateByID(first.ID)
	s.Require().NoError(err)
	s.Equal(0, reFirst.Order)
}

func (s *SchedulingSuite) TestInstanceLabelIsSnapshot() {
	template := s.createTemplate("Original name")

	wo := s.createWorkOrder(nil, 1)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)
	day := days[0]

	_, err = s.linkage.AddTaskTemplateToDay(s.ctx, day.ID, template.ID, nil, false)
	s.Require().NoError(err)

	worker := s.createWorker("w3")
	s.Require().NoError(s.workOrders.AssignUsers(s.ctx, AssignUsersInput{
		DayID:   day.ID,
		UserIDs: []uint64{worker.ID},
	}))

	_, err = s.catalog.UpdateTaskTemplate(template.ID, "Renamed", "")
	s.Require().NoError(err)

	list, err := s.instanceRepo.ListByDayAndUser(day.ID, worker.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Original name", list[0].InstanceLabel)

	// A worker assigned after the rename snapshots the new name.
	later := s.createWorker("w4")
	s.Require().NoError(s.workOrders.AssignUsers(s.ctx, AssignUsersInput{
		DayID:   day.ID,
		UserIDs: []uint64{later.ID},
	}))
	laterList, err := s.instanceRepo.ListByDayAndUser(day.ID, later.ID)
	s.Require().NoError(err)
	s.Require().Len(laterList, 1)
	s.Equal("Renamed", laterList[0].InstanceLabel)
}

func (s *SchedulingSuite) TestNewRoutineTemplateBackfillsLinkedDays() {
	service := s.createService("Inspection")
	s.addRoutine(service.ID, s.createTemplate("Walkthrough").ID, nil)

	wo := s.createWorkOrder(nil, 1)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)
	day := days[0]

	_, err = s.linkage.AddServiceToDay(s.ctx, day.ID, service.ID, nil)
	s.Require().NoError(err)

	worker := s.createWorker("w5")
	s.Require().NoError(s.workOrders.AssignUsers(s.ctx, AssignUsersInput{
		DayID:   day.ID,
		UserIDs: []uint64{worker.ID},
	}))
	s.Equal(1, s.countInstances(day.ID, worker.ID))

	// Adding a routine template to the service backfills the linked day.
	s.addRoutine(service.ID, s.createTemplate("Photo log").ID, nil)
	s.Equal(2, s.countInstances(day.ID, worker.ID))
}

func (s *SchedulingSuite) TestCompleteRequiresAnsweredRequiredFields() {
	template := s.createTemplate("Gas measurement")
	field, err := s.catalog.CreateFieldTemplate(CreateFieldTemplateInput{
		TaskTemplateID: template.ID,
		Label:          "CO2 ppm",
		FieldType:      models.FieldTypeNumber,
		IsRequired:     true,
		ValueSchema:    `{"type":"number"}`,
	})
	s.Require().NoError(err)

	wo := s.createWorkOrder(nil, 1)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)
	day := days[0]

	_, err = s.linkage.AddTaskTemplateToDay(s.ctx, day.ID, template.ID, nil, true)
	s.Require().NoError(err)

	worker := s.createWorker("w6")
	s.Require().NoError(s.workOrders.AssignUsers(s.ctx, AssignUsersInput{
		DayID:   day.ID,
		UserIDs: []uint64{worker.ID},
	}))

	list, err := s.instanceRepo.ListByDayAndUser(day.ID, worker.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	instance := list[0]

	_, err = s.instances.CompleteInstance(s.ctx, instance.ID, worker.ID)
	s.ErrorIs(err, ErrMissingRequiredFields)

	// Another worker cannot touch the instance.
	intruder := s.createWorker("w7")
	_, err = s.instances.SaveFieldResponse(instance.ID, intruder.ID, field.ID, "12")
	s.ErrorIs(err, ErrNotInstanceOwner)

	// A value violating the field schema is rejected.
	_, err = s.instances.SaveFieldResponse(instance.ID, worker.ID, field.ID, `"high"`)
	s.Error(err)

	_, err = s.instances.SaveFieldResponse(instance.ID, worker.ID, field.ID, "412.5")
	s.Require().NoError(err)

	completed, err := s.instances.CompleteInstance(s.ctx, instance.ID, worker.ID)
	s.Require().NoError(err)
	s.Equal(models.InstanceStatusCompleted, completed.Status)
	s.NotNil(completed.CompletedAt)

	_, err = s.instances.CompleteInstance(s.ctx, instance.ID, worker.ID)
	s.ErrorIs(err, ErrInstanceAlreadyCompleted)

	reopened, err := s.instances.ReopenInstance(instance.ID, worker.ID)
	s.Require().NoError(err)
	s.Equal(models.InstanceStatusDraft, reopened.Status)
	s.Nil(reopened.CompletedAt)
}

func (s *SchedulingSuite) TestWorkOrderDeleteCascades() {
	service := s.createService("Teardown")
	s.addRoutine(service.ID, s.createTemplate("Dismantle").ID, nil)

	wo := s.createWorkOrder(&service.ID, 2)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)

	worker := s.createWorker("w8")
	s.Require().NoError(s.workOrders.AssignUsers(s.ctx, AssignUsersInput{
		DayID:   days[0].ID,
		UserIDs: []uint64{worker.ID},
	}))

	_, err = s.workOrders.UpdateStatus(wo.ID, models.WorkOrderStatusInProgress)
	s.Require().NoError(err)
	s.ErrorIs(s.workOrders.DeleteWorkOrder(wo.ID), ErrWorkOrderNotDeletable)

	_, err = s.workOrders.UpdateStatus(wo.ID, models.WorkOrderStatusCancelled)
	s.Require().NoError(err)
	s.Require().NoError(s.workOrders.DeleteWorkOrder(wo.ID))

	var dayCount, instanceCount, linkCount int64
	s.Require().NoError(s.db.Model(&models.WorkOrderDay{}).Where("work_order_id = ?", wo.ID).Count(&dayCount).Error)
	s.Require().NoError(s.db.Model(&models.TaskInstance{}).Count(&instanceCount).Error)
	s.Require().NoError(s.db.Model(&models.WorkOrderDayTaskTemplate{}).Count(&linkCount).Error)
	s.Zero(dayCount)
	s.Zero(instanceCount)
	s.Zero(linkCount)
}

func (s *SchedulingSuite) TestVanishedTemplateSkipsTuple() {
	template := s.createTemplate("Ephemeral")

	wo := s.createWorkOrder(nil, 1)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)
	day := days[0]

	_, err = s.linkage.AddTaskTemplateToDay(s.ctx, day.ID, template.ID, nil, false)
	s.Require().NoError(err)

	// Hard-delete the template out from under the link; materialization
	// must skip the tuple without failing.
	s.Require().NoError(s.db.Unscoped().Delete(&models.TaskTemplate{}, template.ID).Error)

	worker := s.createWorker("w9")
	s.Require().NoError(s.workOrders.AssignUsers(s.ctx, AssignUsersInput{
		DayID:   day.ID,
		UserIDs: []uint64{worker.ID},
	}))
	s.Equal(0, s.countInstances(day.ID, worker.ID))
}

func (s *SchedulingSuite) TestExpansionSeedsSameDayDependencies() {
	service := s.createService("Shotcrete")
	a := s.addRoutine(service.ID, s.createTemplate("Prepare surface").ID, nil)
	b := s.addRoutine(service.ID, s.createTemplate("Spray").ID, nil)

	_, err := s.linkage.CreateServiceTaskDependency(CreateDependencyInput{
		ServiceID:      service.ID,
		DependentID:    b.ID,
		PrerequisiteID: a.ID,
	})
	s.Require().NoError(err)

	wo := s.createWorkOrder(&service.ID, 2)
	days, err := s.workOrders.ListDays(wo.ID)
	s.Require().NoError(err)

	for _, day := range days {
		deps, err := s.linkRepo.ListDayDependencies(day.ID)
		s.Require().NoError(err)
		s.Require().Len(deps, 1)

		dependent, err := s.linkRepo.FindDayTaskTemplateByID(deps[0].DependentID)
		s.Require().NoError(err)
		s.Equal(day.ID, dependent.WorkOrderDayID)
		s.Require().NotNil(dependent.ServiceTaskTemplateID)
		s.Equal(b.ID, *dependent.ServiceTaskTemplateID)
	}
}
