package repository

import (
	"time"

	"github.com/andestrack/field-service-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ids []uint64) (int64, error)
}

// CustomerRepository defines the interface for customer and faena data access
type CustomerRepository interface {
	Create(customer *models.Customer) error
	FindByID(id uint64) (*models.Customer, error)
	List(page, limit int) ([]models.Customer, int64, error)
	Update(customer *models.Customer) error
	Delete(id uint64) error

	CreateFaena(faena *models.Faena) error
	FindFaenaByID(id uint64) (*models.Faena, error)
	ListFaenas(customerID uint64) ([]models.Faena, error)
	UpdateFaena(faena *models.Faena) error
	DeleteFaena(id uint64) error
}

// CatalogRepository defines the interface for services, task templates, field
// templates and lookup data access
type CatalogRepository interface {
	CreateService(service *models.Service) error
	FindServiceByID(id uint64) (*models.Service, error)
	ListServices() ([]models.Service, error)
	UpdateService(service *models.Service) error

	CreateTaskTemplate(template *models.TaskTemplate) error
	FindTaskTemplateByID(id uint64) (*models.TaskTemplate, error)
	ListTaskTemplates() ([]models.TaskTemplate, error)
	UpdateTaskTemplate(template *models.TaskTemplate) error

	// DeleteTaskTemplate removes the template, its field templates, its
	// service links and their dependency edges, then compacts the order of
	// the remaining links per service.
	DeleteTaskTemplate(id uint64) error

	CreateFieldTemplate(field *models.FieldTemplate) error
	FindFieldTemplateByID(id uint64) (*models.FieldTemplate, error)
	ListFieldTemplates(taskTemplateID uint64) ([]models.FieldTemplate, error)
	UpdateFieldTemplate(field *models.FieldTemplate) error
	CountFieldTemplates(taskTemplateID uint64) (int64, error)

	// DeleteFieldTemplate removes the field and re-numbers the remaining
	// siblings to a contiguous 0-based order.
	DeleteFieldTemplate(id uint64) error

	CreateLookupEntity(entity *models.LookupEntity) error
	FindLookupEntityByID(id uint64) (*models.LookupEntity, error)
	CreateLookupOption(option *models.LookupOption) error
	CountLookupOptions(lookupEntityID uint64) (int64, error)

	// DeleteLookupEntity removes the entity with its options and clears
	// field template references to it.
	DeleteLookupEntity(id uint64) error

	// DeleteLookupOption removes one option and compacts sibling order.
	DeleteLookupOption(id uint64) error

	CreateServiceTaskTemplate(link *models.ServiceTaskTemplate) error
	FindServiceTaskTemplateByID(id uint64) (*models.ServiceTaskTemplate, error)
	ListServiceTaskTemplates(serviceID uint64, activeOnly bool) ([]models.ServiceTaskTemplate, error)
	UpdateServiceTaskTemplate(link *models.ServiceTaskTemplate) error
	CountActiveServiceTaskTemplates(serviceID uint64) (int64, error)

	// DeleteServiceTaskTemplate removes one service-task link with the
	// dependency edges touching it, then compacts sibling order.
	DeleteServiceTaskTemplate(id uint64) error

	CreateDependency(dep *models.ServiceTaskDependency) error
	FindDependencyByID(id uint64) (*models.ServiceTaskDependency, error)
	ListDependencies(serviceID uint64) ([]models.ServiceTaskDependency, error)
	DependencyExists(serviceID, dependentID, prerequisiteID uint64) (bool, error)
	DeleteDependency(id uint64) error
}

// DaySeed describes one day of a work-order expansion together with the
// day-task links to seed on it. Link rows get their WorkOrderDayID filled in
// when the day is persisted.
type DaySeed struct {
	Day   models.WorkOrderDay
	Links []models.WorkOrderDayTaskTemplate
}

// DependencySeed is a service-level dependency edge to materialize on every
// day where both endpoints were seeded.
type DependencySeed struct {
	DependentSTT    uint64
	PrerequisiteSTT uint64
}

// WorkOrderFilter holds filtering options for listing work orders
type WorkOrderFilter struct {
	CustomerID *uint64
	FaenaID    *uint64
	Status     *models.WorkOrderStatus
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// WorkOrderRepository defines the interface for work order and day data access
type WorkOrderRepository interface {
	// CreateExpanded persists a work order, its seeded days and links, and
	// the same-day dependency rows in one transaction.
	CreateExpanded(wo *models.WorkOrder, seeds []DaySeed, deps []DependencySeed) error

	FindByID(id uint64, preload ...string) (*models.WorkOrder, error)
	List(filter WorkOrderFilter) ([]models.WorkOrder, int64, error)
	Update(wo *models.WorkOrder) error

	// DeleteCascade removes the work order with its days, day links, day
	// dependencies, assignments, task instances and field responses.
	DeleteCascade(id uint64) error

	FindDayByID(id uint64) (*models.WorkOrderDay, error)
	ListDays(workOrderID uint64) ([]models.WorkOrderDay, error)
	UpdateDay(day *models.WorkOrderDay) error

	// AssignUsers adds day assignments, reviving soft-deleted ones
	AssignUsers(dayID uint64, userIDs []uint64) error

	// UnassignUsers removes day assignments; task instances are untouched
	UnassignUsers(dayID uint64, userIDs []uint64) error

	ListAssignments(dayID uint64) ([]models.DayAssignment, error)
}

// LinkRepository defines the interface for day-level link data access
type LinkRepository interface {
	CreateDayService(link *models.WorkOrderDayService) error
	FindDayServiceByID(id uint64) (*models.WorkOrderDayService, error)

	// FindDayService finds the link for (day, service) regardless of its
	// active flag
	FindDayService(dayID, serviceID uint64) (*models.WorkOrderDayService, error)

	ListDayServices(dayID uint64, activeOnly bool) ([]models.WorkOrderDayService, error)

	// ListDayServicesByService lists the day-service links referencing a
	// service across all work orders, with days preloaded
	ListDayServicesByService(serviceID uint64, activeOnly bool) ([]models.WorkOrderDayService, error)
	UpdateDayService(link *models.WorkOrderDayService) error
	CountActiveDayServices(dayID uint64) (int64, error)

	CreateDayTaskTemplate(link *models.WorkOrderDayTaskTemplate) error
	FindDayTaskTemplateByID(id uint64) (*models.WorkOrderDayTaskTemplate, error)
	FindDayTaskTemplate(dayID, taskTemplateID uint64) (*models.WorkOrderDayTaskTemplate, error)
	ListDayTaskTemplates(dayID uint64, activeOnly bool) ([]models.WorkOrderDayTaskTemplate, error)
	UpdateDayTaskTemplate(link *models.WorkOrderDayTaskTemplate) error
	CountActiveDayTaskTemplates(dayID uint64) (int64, error)

	ListDayDependencies(dayID uint64) ([]models.WorkOrderDayTaskDependency, error)
}

// InstanceRepository defines the interface for task instance data access
type InstanceRepository interface {
	Create(instance *models.TaskInstance) error
	FindByID(id uint64, preload ...string) (*models.TaskInstance, error)

	// FindByRoutineOrigin looks up the instance for (day, user) with the
	// given routine origin, or gorm.ErrRecordNotFound
	FindByRoutineOrigin(dayID, userID, dayServiceID, serviceTaskTemplateID uint64) (*models.TaskInstance, error)

	// FindByStandaloneOrigin looks up the instance for (day, user) with the
	// given standalone origin, or gorm.ErrRecordNotFound
	FindByStandaloneOrigin(dayID, userID, dayTaskTemplateID uint64) (*models.TaskInstance, error)

	ListByDay(dayID uint64) ([]models.TaskInstance, error)
	ListByDayAndUser(dayID, userID uint64) ([]models.TaskInstance, error)
	ListByUser(userID uint64, page, limit int) ([]models.TaskInstance, int64, error)
	Update(instance *models.TaskInstance) error

	// CountOrphanedByDayService counts instances under a day-service link
	// that are completed or carry recorded field responses
	CountOrphanedByDayService(dayServiceID uint64) (int64, error)

	// CountOrphanedByDayTaskTemplate is the standalone-link counterpart
	CountOrphanedByDayTaskTemplate(dayTaskTemplateID uint64) (int64, error)

	SaveResponse(response *models.FieldResponse) error
	FindResponse(instanceID, fieldTemplateID uint64) (*models.FieldResponse, error)
	ListResponses(instanceID uint64) ([]models.FieldResponse, error)
}
