// Package operations serves tasks, projects and meetings.
package operations

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/bizmanager/internal"
	operationsDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/operations"
	"github.com/frahmantamala/bizmanager/internal/resource"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/transport"
)

type (
	TaskService    = resource.Service[*operationsDatamodel.Task, storage.TaskFilter]
	TaskHandler    = resource.Handler[*operationsDatamodel.Task, storage.TaskFilter, CreateTaskDTO]
	ProjectService = resource.Service[*operationsDatamodel.Project, storage.ProjectFilter]
	ProjectHandler = resource.Handler[*operationsDatamodel.Project, storage.ProjectFilter, CreateProjectDTO]
	MeetingService = resource.Service[*operationsDatamodel.Meeting, storage.MeetingFilter]
	MeetingHandler = resource.Handler[*operationsDatamodel.Meeting, storage.MeetingFilter, CreateMeetingDTO]
)

// NewTaskService checks that assignedTo names an employee and teamId and
// projectId name records of the caller.
func NewTaskService(store storage.TaskStore, employees storage.EmployeeStore, teams storage.TeamStore, projects storage.ProjectStore, bus resource.Publisher, logger *slog.Logger) *TaskService {
	return resource.NewService("task", resource.Store[*operationsDatamodel.Task, storage.TaskFilter]{
		Get:    store.GetTask,
		List:   store.ListTasks,
		Create: store.CreateTask,
		Update: store.UpdateTask,
		Delete: store.DeleteTask,
		Owner:  resource.DirectOwner[*operationsDatamodel.Task],
		ID:     func(t *operationsDatamodel.Task) int64 { return t.ID },
		Links: func(t *operationsDatamodel.Task) []resource.Link {
			return []resource.Link{
				resource.LinkTo("assignedTo", t.AssignedTo, employees.GetEmployee),
				resource.LinkTo("teamId", t.TeamID, teams.GetTeam),
				resource.LinkTo("projectId", t.ProjectID, projects.GetProject),
			}
		},
	}, bus, logger)
}

func NewTaskHandler(base *transport.BaseHandler, service *TaskService) *TaskHandler {
	return resource.NewHandler(base, service, resource.Binding[*operationsDatamodel.Task, storage.TaskFilter, CreateTaskDTO]{
		Name:   "Task",
		Build:  (*CreateTaskDTO).ToDataModel,
		Filter: taskFilter,
	})
}

func taskFilter(h *transport.BaseHandler, r *http.Request) (storage.TaskFilter, *internal.AppError) {
	var (
		filter storage.TaskFilter
		appErr *internal.AppError
	)
	if filter.AssignedTo, appErr = h.QueryInt(r, "assignedTo"); appErr != nil {
		return filter, appErr
	}
	if filter.TeamID, appErr = h.QueryInt(r, "teamId"); appErr != nil {
		return filter, appErr
	}
	filter.ProjectID, appErr = h.QueryInt(r, "projectId")
	return filter, appErr
}

func NewProjectService(store storage.ProjectStore, teams storage.TeamStore, bus resource.Publisher, logger *slog.Logger) *ProjectService {
	return resource.NewService("project", resource.Store[*operationsDatamodel.Project, storage.ProjectFilter]{
		Get:    store.GetProject,
		List:   store.ListProjects,
		Create: store.CreateProject,
		Update: store.UpdateProject,
		Delete: store.DeleteProject,
		Owner:  resource.DirectOwner[*operationsDatamodel.Project],
		ID:     func(p *operationsDatamodel.Project) int64 { return p.ID },
		Links: func(p *operationsDatamodel.Project) []resource.Link {
			return []resource.Link{resource.LinkTo("teamId", p.TeamID, teams.GetTeam)}
		},
	}, bus, logger)
}

func NewProjectHandler(base *transport.BaseHandler, service *ProjectService) *ProjectHandler {
	return resource.NewHandler(base, service, resource.Binding[*operationsDatamodel.Project, storage.ProjectFilter, CreateProjectDTO]{
		Name:  "Project",
		Build: (*CreateProjectDTO).ToDataModel,
		Filter: func(h *transport.BaseHandler, r *http.Request) (storage.ProjectFilter, *internal.AppError) {
			teamID, appErr := h.QueryInt(r, "teamId")
			return storage.ProjectFilter{TeamID: teamID}, appErr
		},
	})
}

func NewMeetingService(store storage.MeetingStore, teams storage.TeamStore, projects storage.ProjectStore, bus resource.Publisher, logger *slog.Logger) *MeetingService {
	return resource.NewService("meeting", resource.Store[*operationsDatamodel.Meeting, storage.MeetingFilter]{
		Get:    store.GetMeeting,
		List:   store.ListMeetings,
		Create: store.CreateMeeting,
		Update: store.UpdateMeeting,
		Delete: store.DeleteMeeting,
		Owner:  resource.DirectOwner[*operationsDatamodel.Meeting],
		ID:     func(m *operationsDatamodel.Meeting) int64 { return m.ID },
		Links: func(m *operationsDatamodel.Meeting) []resource.Link {
			return []resource.Link{
				resource.LinkTo("teamId", m.TeamID, teams.GetTeam),
				resource.LinkTo("projectId", m.ProjectID, projects.GetProject),
			}
		},
	}, bus, logger)
}

func NewMeetingHandler(base *transport.BaseHandler, service *MeetingService) *MeetingHandler {
	return resource.NewHandler(base, service, resource.Binding[*operationsDatamodel.Meeting, storage.MeetingFilter, CreateMeetingDTO]{
		Name:  "Meeting",
		Build: (*CreateMeetingDTO).ToDataModel,
		Filter: func(h *transport.BaseHandler, r *http.Request) (storage.MeetingFilter, *internal.AppError) {
			var filter storage.MeetingFilter
			var appErr *internal.AppError
			if filter.TeamID, appErr = h.QueryInt(r, "teamId"); appErr != nil {
				return filter, appErr
			}
			filter.ProjectID, appErr = h.QueryInt(r, "projectId")
			return filter, appErr
		},
	})
}
