package projects_testing

import (
	"errors"
	"sort"
	"sync"
	"time"

	projects_models "agencyops/internal/features/projects/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories used by service and controller tests. They copy
// records in and out so callers never share memory with the store, and
// FailWith makes every call of a repository fail.

type InMemoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]projects_models.Project
	FailWith error

	// AfterGet runs once, after the next GetProjectByID and outside the lock,
	// so a test can slip a concurrent write between a read and an update.
	AfterGet func(projectID uuid.UUID)
}

func NewInMemoryProjectRepository() *InMemoryProjectRepository {
	return &InMemoryProjectRepository{projects: map[uuid.UUID]projects_models.Project{}}
}

func (r *InMemoryProjectRepository) CreateProject(project *projects_models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	r.projects[project.ID] = copyProject(project)
	return nil
}

func (r *InMemoryProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := r.getProjectByID(projectID)

	if hook := r.AfterGet; hook != nil && err == nil {
		r.AfterGet = nil
		hook(projectID)
	}

	return project, err
}

func (r *InMemoryProjectRepository) getProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	project, ok := r.projects[projectID]
	if !ok {
		return nil, nil
	}

	found := copyProject(&project)
	return &found, nil
}

func (r *InMemoryProjectRepository) GetAllProjects() ([]*projects_models.Project, error) {
	return r.list(func(*projects_models.Project) bool { return true })
}

func (r *InMemoryProjectRepository) GetProjectsByClientID(clientID uuid.UUID) ([]*projects_models.Project, error) {
	return r.list(func(project *projects_models.Project) bool {
		return project.IsOwnedByClient(clientID)
	})
}

func (r *InMemoryProjectRepository) UpdateProject(project *projects_models.Project, columns ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	stored, ok := r.projects[project.ID]
	if !ok {
		return nil
	}

	update := copyProject(project)
	for _, column := range columns {
		switch column {
		case "title":
			stored.Title = update.Title
		case "description":
			stored.Description = update.Description
		case "requirements_raw":
			stored.Requirements = update.Requirements
		case "budget":
			stored.Budget = update.Budget
		case "deadline":
			stored.Deadline = update.Deadline
		case "status":
			stored.Status = update.Status
		case "priority":
			stored.Priority = update.Priority
		case "client_id":
			stored.ClientID = update.ClientID
		case "assigned_at":
			stored.AssignedAt = update.AssignedAt
		case "updated_at":
			stored.UpdatedAt = update.UpdatedAt
		default:
			return errors.New("unknown project column: " + column)
		}
	}

	r.projects[project.ID] = stored
	return nil
}

func (r *InMemoryProjectRepository) UpdateProjectProgress(projectID uuid.UUID, progress int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	project, ok := r.projects[projectID]
	if !ok {
		return nil
	}

	project.Progress = progress
	project.UpdatedAt = time.Now().UTC()
	r.projects[projectID] = project

	return nil
}

// SetStoredProgress overwrites the cached percentage, simulating a stale value.
func (r *InMemoryProjectRepository) SetStoredProgress(projectID uuid.UUID, progress int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	project := r.projects[projectID]
	project.Progress = progress
	r.projects[projectID] = project
}

func (r *InMemoryProjectRepository) list(
	match func(project *projects_models.Project) bool,
) ([]*projects_models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	projects := []*projects_models.Project{}
	for _, project := range r.projects {
		if match(&project) {
			found := copyProject(&project)
			projects = append(projects, &found)
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	return projects, nil
}

func copyProject(project *projects_models.Project) projects_models.Project {
	copied := *project
	copied.Requirements = append([]string{}, project.Requirements...)

	return copied
}

type InMemoryMilestoneRepository struct {
	mu         sync.RWMutex
	milestones map[uuid.UUID]projects_models.Milestone
	FailWith   error
}

func NewInMemoryMilestoneRepository() *InMemoryMilestoneRepository {
	return &InMemoryMilestoneRepository{milestones: map[uuid.UUID]projects_models.Milestone{}}
}

func (r *InMemoryMilestoneRepository) CreateMilestones(milestones []*projects_models.Milestone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	for _, milestone := range milestones {
		if milestone.ID == uuid.Nil {
			milestone.ID = uuid.New()
		}

		r.milestones[milestone.ID] = *milestone
	}

	return nil
}

func (r *InMemoryMilestoneRepository) CreateMilestone(milestone *projects_models.Milestone) error {
	return r.CreateMilestones([]*projects_models.Milestone{milestone})
}

func (r *InMemoryMilestoneRepository) GetMilestoneByID(milestoneID uuid.UUID) (*projects_models.Milestone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	milestone, ok := r.milestones[milestoneID]
	if !ok {
		return nil, nil
	}

	return &milestone, nil
}

func (r *InMemoryMilestoneRepository) GetMilestonesByProjectID(
	projectID uuid.UUID,
) ([]*projects_models.Milestone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	milestones := []*projects_models.Milestone{}
	for _, milestone := range r.milestones {
		if milestone.ProjectID == projectID {
			found := milestone
			milestones = append(milestones, &found)
		}
	}

	sort.Slice(milestones, func(i, j int) bool {
		return milestones[i].OrderIndex < milestones[j].OrderIndex
	})

	return milestones, nil
}

func (r *InMemoryMilestoneRepository) CountMilestonesByProjectID(projectID uuid.UUID) (int, error) {
	milestones, err := r.GetMilestonesByProjectID(projectID)
	return len(milestones), err
}

func (r *InMemoryMilestoneRepository) UpdateMilestone(milestone *projects_models.Milestone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	r.milestones[milestone.ID] = *milestone
	return nil
}

type InMemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]projects_models.Payment
	FailWith error
}

func NewInMemoryPaymentRepository() *InMemoryPaymentRepository {
	return &InMemoryPaymentRepository{payments: map[uuid.UUID]projects_models.Payment{}}
}

func (r *InMemoryPaymentRepository) CreatePayment(payment *projects_models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	r.payments[payment.ProjectID] = *payment
	return nil
}

func (r *InMemoryPaymentRepository) GetPaymentByProjectID(projectID uuid.UUID) (*projects_models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	payment, ok := r.payments[projectID]
	if !ok {
		return nil, nil
	}

	return &payment, nil
}

func (r *InMemoryPaymentRepository) UpdatePayment(payment *projects_models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	r.payments[payment.ProjectID] = *payment
	return nil
}

func (r *InMemoryPaymentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.payments)
}

// InMemoryTeamRepository enforces the (project, member) uniqueness the
// database index provides, returning gorm.ErrDuplicatedKey.
type InMemoryTeamRepository struct {
	mu       sync.RWMutex
	members  []projects_models.TeamMember
	FailWith error

	// HideExisting makes GetTeamMember report no row, simulating a
	// concurrent writer that inserted between the check and the insert.
	HideExisting bool
}

func NewInMemoryTeamRepository() *InMemoryTeamRepository {
	return &InMemoryTeamRepository{}
}

func (r *InMemoryTeamRepository) CreateTeamMember(member *projects_models.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	for _, existing := range r.members {
		if existing.ProjectID == member.ProjectID && existing.MemberID == member.MemberID {
			return gorm.ErrDuplicatedKey
		}
	}

	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	r.members = append(r.members, *member)
	return nil
}

func (r *InMemoryTeamRepository) GetTeamMember(projectID, memberID uuid.UUID) (*projects_models.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	if r.HideExisting {
		return nil, nil
	}

	for _, member := range r.members {
		if member.ProjectID == projectID && member.MemberID == memberID {
			found := member
			return &found, nil
		}
	}

	return nil, nil
}

func (r *InMemoryTeamRepository) GetTeamMembers(projectID uuid.UUID) ([]*projects_models.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	members := []*projects_models.TeamMember{}
	for _, member := range r.members {
		if member.ProjectID == projectID {
			found := member
			members = append(members, &found)
		}
	}

	return members, nil
}

func (r *InMemoryTeamRepository) DeleteTeamMember(projectID, memberID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	kept := r.members[:0]
	for _, member := range r.members {
		if member.ProjectID != projectID || member.MemberID != memberID {
			kept = append(kept, member)
		}
	}

	r.members = kept
	return nil
}

type InMemoryProjectCache struct {
	mu       sync.RWMutex
	projects map[string]projects_models.Project
}

func NewInMemoryProjectCache() *InMemoryProjectCache {
	return &InMemoryProjectCache{projects: map[string]projects_models.Project{}}
}

func (c *InMemoryProjectCache) Get(key string) *projects_models.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()

	project, ok := c.projects[key]
	if !ok {
		return nil
	}

	found := copyProject(&project)
	return &found
}

func (c *InMemoryProjectCache) Set(key string, project *projects_models.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.projects[key] = copyProject(project)
}

func (c *InMemoryProjectCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.projects, key)
}

func (c *InMemoryProjectCache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.projects[key]
	return ok
}
