package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

// The task tools share one fate: the Capacities API has no task endpoints.
// Each tool still fully validates its declared input shape before declining,
// so malformed requests surface as validation errors instead of being
// silently swallowed by the unsupported response.

const taskUnsupportedReason = "the Capacities API has no task endpoints; " +
	"track tasks inside entities via save_to_daily_note or save_weblink instead"

// listTaskStatuses are the accepted list_tasks status values.
var listTaskStatuses = []string{"open", "completed", "all"}

// updateTaskStatuses are the accepted update_task status values.
var updateTaskStatuses = []string{"open", "completed"}

// ListTasksTool handles the list_tasks MCP tool.
type ListTasksTool struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewListTasksTool creates a ListTasksTool.
func NewListTasksTool(logger *slog.Logger) *ListTasksTool {
	return &ListTasksTool{logger: logger.With("tool", "list_tasks"), now: time.Now}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription(
			"List tasks in a Capacities space. The Capacities API does not expose tasks; "+
				"the tool validates the filters and reports the capability as unsupported.",
		),
		mcp.WithString("spaceId",
			mcp.Description("Space UUID. Echoed back; no remote call is made."),
		),
		mcp.WithString("status",
			mcp.Description("Task status filter."),
			mcp.Enum(listTaskStatuses...),
		),
		mcp.WithString("date",
			mcp.Description("Single date filter: YYYY-MM-DD or \"yesterday\"."),
		),
		mcp.WithString("dateFrom",
			mcp.Description("Range start: YYYY-MM-DD or \"yesterday\". Requires dateTo."),
		),
		mcp.WithString("dateTo",
			mcp.Description("Range end: YYYY-MM-DD or \"yesterday\". Requires dateFrom."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// Handle validates the filter set, then declares the capability unsupported.
func (t *ListTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := trimmedArg(req, "status")
	if status != "" && !contains(listTaskStatuses, status) {
		return errorResult("list_tasks", domain.NewValidationError(
			"status must be one of: open, completed, all",
			"Use a declared status value or omit the filter.",
		)), nil
	}

	dates, err := normalizeDateFilters(
		req.GetString("date", ""),
		req.GetString("dateFrom", ""),
		req.GetString("dateTo", ""),
		t.now(),
	)
	if err != nil {
		return errorResult("list_tasks", err), nil
	}

	request := map[string]any{}
	if spaceID := trimmedArg(req, "spaceId"); spaceID != "" {
		request["spaceId"] = spaceID
	}
	if status != "" {
		request["status"] = status
	}
	dates.addTo(request)

	return unsupportedResult("list_tasks", taskUnsupportedReason, request, nil), nil
}

// CreateTaskTool handles the create_task MCP tool.
type CreateTaskTool struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewCreateTaskTool creates a CreateTaskTool.
func NewCreateTaskTool(logger *slog.Logger) *CreateTaskTool {
	return &CreateTaskTool{logger: logger.With("tool", "create_task"), now: time.Now}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription(
			"Create a task. The Capacities API does not expose task creation; "+
				"the tool validates the input and reports the capability as unsupported.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title. Must be non-empty after trimming."),
		),
		mcp.WithString("spaceId",
			mcp.Description("Space UUID. Echoed back; no remote call is made."),
		),
		mcp.WithString("description",
			mcp.Description("Task description."),
		),
		mcp.WithString("dueDate",
			mcp.Description("Due date: YYYY-MM-DD or \"yesterday\"."),
		),
	)
}

// Handle validates and normalizes the task shape, then declares the
// capability unsupported, echoing the normalized request.
func (t *CreateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := trimmedArg(req, "title")
	if title == "" {
		return errorResult("create_task", domain.NewValidationError(
			"title is required and must be non-empty",
			"Pass a non-empty task title.",
		)), nil
	}

	request := map[string]any{"title": title}
	if spaceID := trimmedArg(req, "spaceId"); spaceID != "" {
		request["spaceId"] = spaceID
	}
	if desc := trimmedArg(req, "description"); desc != "" {
		request["description"] = desc
	}
	if due := trimmedArg(req, "dueDate"); due != "" {
		normalized, err := domain.NormalizeDate(due, t.now())
		if err != nil {
			return errorResult("create_task", err), nil
		}
		request["dueDate"] = normalized
	}

	return unsupportedResult("create_task", taskUnsupportedReason, request, nil), nil
}

// UpdateTaskTool handles the update_task MCP tool.
type UpdateTaskTool struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewUpdateTaskTool creates an UpdateTaskTool.
func NewUpdateTaskTool(logger *slog.Logger) *UpdateTaskTool {
	return &UpdateTaskTool{logger: logger.With("tool", "update_task"), now: time.Now}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task",
		mcp.WithDescription(
			"Update a task. Requires at least one field to change; a no-op update is a "+
				"malformed request. The Capacities API does not expose task updates; the tool "+
				"validates the input and reports the capability as unsupported.",
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("Identifier of the task to update."),
		),
		mcp.WithString("spaceId",
			mcp.Description("Space UUID. Echoed back; no remote call is made."),
		),
		mcp.WithString("title",
			mcp.Description("New task title."),
		),
		mcp.WithString("description",
			mcp.Description("New description. Pass null to clear it."),
		),
		mcp.WithString("dueDate",
			mcp.Description("New due date: YYYY-MM-DD or \"yesterday\". Pass null to clear it."),
		),
		mcp.WithString("status",
			mcp.Description("New task status."),
			mcp.Enum(updateTaskStatuses...),
		),
	)
}

// Handle validates the update shape: taskId present, at least one updatable
// field supplied, enum and date fields well-formed. description and dueDate
// are nullable: an explicit JSON null means "clear the field" and counts
// as a supplied update.
func (t *UpdateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := trimmedArg(req, "taskId")
	if taskID == "" {
		return errorResult("update_task", domain.NewValidationError(
			"taskId is required",
			"Pass the id of the task to update.",
		)), nil
	}

	request := map[string]any{"taskId": taskID}
	if spaceID := trimmedArg(req, "spaceId"); spaceID != "" {
		request["spaceId"] = spaceID
	}

	fields := 0
	if title := trimmedArg(req, "title"); title != "" {
		request["title"] = title
		fields++
	}
	if hasArg(req, "description") {
		if desc, ok := req.GetArguments()["description"].(string); ok {
			request["description"] = desc
		} else {
			request["description"] = nil
		}
		fields++
	}
	if hasArg(req, "dueDate") {
		if due, ok := req.GetArguments()["dueDate"].(string); ok {
			normalized, err := domain.NormalizeDate(due, t.now())
			if err != nil {
				return errorResult("update_task", err), nil
			}
			request["dueDate"] = normalized
		} else {
			request["dueDate"] = nil
		}
		fields++
	}
	if status := trimmedArg(req, "status"); status != "" {
		if !contains(updateTaskStatuses, status) {
			return errorResult("update_task", domain.NewValidationError(
				"status must be one of: open, completed",
				"Use a declared status value or omit the field.",
			)), nil
		}
		request["status"] = status
		fields++
	}

	if fields == 0 {
		return errorResult("update_task", domain.NewValidationError(
			"update_task requires at least one of: title, description, dueDate, status",
			"Supply at least one field to change; a no-op update is not a valid request.",
		)), nil
	}

	return unsupportedResult("update_task", taskUnsupportedReason, request, nil), nil
}

// CompleteTaskTool handles the complete_task MCP tool.
type CompleteTaskTool struct {
	logger *slog.Logger
}

// NewCompleteTaskTool creates a CompleteTaskTool.
func NewCompleteTaskTool(logger *slog.Logger) *CompleteTaskTool {
	return &CompleteTaskTool{logger: logger.With("tool", "complete_task")}
}

// Definition returns the MCP tool definition for registration.
func (t *CompleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_task",
		mcp.WithDescription(
			"Mark a task completed (or reopen it with completed=false). The Capacities API "+
				"does not expose tasks; the tool validates the input and reports the capability "+
				"as unsupported.",
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("Identifier of the task to complete."),
		),
		mcp.WithString("spaceId",
			mcp.Description("Space UUID. Echoed back; no remote call is made."),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Completion flag. Defaults to true when omitted."),
		),
	)
}

// Handle validates the input, defaults the completion flag to true, and
// declares the capability unsupported.
func (t *CompleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := trimmedArg(req, "taskId")
	if taskID == "" {
		return errorResult("complete_task", domain.NewValidationError(
			"taskId is required",
			"Pass the id of the task to complete.",
		)), nil
	}

	request := map[string]any{
		"taskId":    taskID,
		"completed": boolArg(req, "completed", true),
	}
	if spaceID := trimmedArg(req, "spaceId"); spaceID != "" {
		request["spaceId"] = spaceID
	}

	return unsupportedResult("complete_task", taskUnsupportedReason, request, nil), nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
