package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/daybookhq/daybook/internal/client"
)

func boolPtr(b bool) *bool {
	return &b
}

// registerTools registers all MCP tools with the server using go-sdk.
// The SDK infers each InputSchema from the handler's input struct type.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "start_activity",
		Description: "Start a new activity on the timeline. Ends any ongoing activity first (one thing at a time), unless allow_parallel is set. Tag the activity with a matter's tags to attribute the time to that matter.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Start Activity",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleStartActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "end_activity",
		Description: "End the ongoing activity, optionally with a closing note. Returns the closed activity with its duration. If nothing is running this reports that instead of failing.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "End Activity",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleEndActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "daily_timeline",
		Description: "List the activities recorded on a day (YYYY-MM-DD, defaults to today), in start order.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Daily Timeline",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, handleDailyTimeline)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "current_activities",
		Description: "List the activities running right now, highest priority first.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Current Activities",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, handleCurrentActivities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_matter",
		Description: "Register an important matter for today with a time budget in minutes. Activities sharing a tag with the matter count toward the budget.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Create Important Matter",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleCreateMatter)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_matters",
		Description: "List the important matters of a day (YYYY-MM-DD, defaults to today) with invested time and completion rate.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "List Matters",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, handleListMatters)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "start_matter_work",
		Description: "Start an activity pre-tagged with a matter's tags so the time is attributed to it. matter_id is required.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Start Matter Work",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleStartMatterWork)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "end_matter_work",
		Description: "End the ongoing activity and report the matter's fresh completion rate. matter_id is required.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "End Matter Work",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleEndMatterWork)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_goal",
		Description: "Register a long-term goal. Optional: target_value (numeric finish line), target_date (YYYY-MM-DD), tags.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Create Goal",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleCreateGoal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_goals",
		Description: "List long-term goals with their progress. Completed goals are hidden unless include_completed is true.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "List Goals",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, handleListGoals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_goal_progress",
		Description: "Record a new absolute progress value on a goal (e.g. current_value: 5 after reading the fifth book). Also appends a progress log entry.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Update Goal Progress",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleUpdateGoalProgress)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "goal_history",
		Description: "List the progress log of a goal, most recent first.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Goal History",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, handleGoalHistory)
}

// StartActivityInput is the input for the start_activity tool
type StartActivityInput struct {
	Content       string   `json:"content" jsonschema:"what the user is starting to do"`
	Tags          []string `json:"tags,omitempty" jsonschema:"tags for matter attribution"`
	TargetMinutes *float64 `json:"target_minutes,omitempty" jsonschema:"planned duration in minutes"`
	AllowParallel bool     `json:"allow_parallel,omitempty" jsonschema:"run alongside other activities instead of ending them"`
	Priority      int      `json:"priority,omitempty" jsonschema:"display priority, higher first"`
}

func handleStartActivity(ctx context.Context, req *mcp.CallToolRequest, input StartActivityInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	r := client.StartActivityRequest{
		Content:       input.Content,
		Tags:          input.Tags,
		AllowParallel: input.AllowParallel,
		Priority:      input.Priority,
	}
	if input.TargetMinutes != nil {
		seconds := *input.TargetMinutes * 60
		r.TargetDuration = &seconds
	}

	activity, err := apiClient.StartActivity(r)
	if err != nil {
		return errorResult(err), nil, nil
	}
	result, err := textResult(activity)
	return result, nil, err
}

// EndActivityInput is the input for the end_activity tool
type EndActivityInput struct {
	Note string `json:"note,omitempty" jsonschema:"closing note appended to the activity"`
}

func handleEndActivity(ctx context.Context, req *mcp.CallToolRequest, input EndActivityInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	activity, err := apiClient.EndActivity(input.Note)
	if err != nil {
		if client.IsNotFound(err) {
			result, terr := textResult(map[string]string{"status": "no ongoing activity"})
			return result, nil, terr
		}
		return errorResult(err), nil, nil
	}
	result, err := textResult(activity)
	return result, nil, err
}

// DateInput is the input for day-scoped listing tools
type DateInput struct {
	Date string `json:"date,omitempty" jsonschema:"day in YYYY-MM-DD form, defaults to today"`
}

func handleDailyTimeline(ctx context.Context, req *mcp.CallToolRequest, input DateInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	records, err := apiClient.DailyTimeline(input.Date)
	if err != nil {
		return errorResult(err), nil, nil
	}
	result, err := textResult(map[string]interface{}{"activities": records, "count": len(records)})
	return result, nil, err
}

// EmptyInput is the input for tools that take no arguments
type EmptyInput struct{}

func handleCurrentActivities(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	records, err := apiClient.CurrentActivities()
	if err != nil {
		return errorResult(err), nil, nil
	}
	result, err := textResult(map[string]interface{}{"activities": records, "count": len(records)})
	return result, nil, err
}

// CreateMatterInput is the input for the create_matter tool
type CreateMatterInput struct {
	Title         string   `json:"title" jsonschema:"short title of the matter"`
	TargetMinutes float64  `json:"target_minutes" jsonschema:"time budget in minutes"`
	Tags          []string `json:"tags,omitempty" jsonschema:"tags used for attributing activity time"`
	Description   string   `json:"description,omitempty" jsonschema:"longer description"`
}

func handleCreateMatter(ctx context.Context, req *mcp.CallToolRequest, input CreateMatterInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	matter, err := apiClient.CreateMatter(client.CreateMatterRequest{
		Content:       input.Title,
		TargetMinutes: input.TargetMinutes,
		Tags:          input.Tags,
		Description:   input.Description,
	})
	if err != nil {
		return errorResult(err), nil, nil
	}
	result, err := textResult(matter)
	return result, nil, err
}

func handleListMatters(ctx context.Context, req *mcp.CallToolRequest, input DateInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	matters, err := apiClient.DailyMatters(input.Date)
	if err != nil {
		return errorResult(err), nil, nil
	}
	result, err := textResult(map[string]interface{}{"matters": matters, "count": len(matters)})
	return result, nil, err
}

// MatterWorkInput is the input for the matter work tools
type MatterWorkInput struct {
	MatterID string `json:"matter_id" jsonschema:"ID of the matter"`
	Note     string `json:"note,omitempty" jsonschema:"activity content or closing note"`
}

func handleStartMatterWork(ctx context.Context, req *mcp.CallToolRequest, input MatterWorkInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	activity, err := apiClient.StartMatterActivity(input.MatterID, input.Note)
	if err != nil {
		return errorResult(err), nil, nil
	}
	result, err := textResult(activity)
	return result, nil, err
}

func handleEndMatterWork(ctx context.Context, req *mcp.CallToolRequest, input MatterWorkInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	ended, err := apiClient.EndMatterActivity(input.MatterID, input.Note)
	if err != nil {
		if client.IsNotFound(err) {
			result, terr := textResult(map[string]string{"status": "no ongoing activity, or matter not found"})
			return result, nil, terr
		}
		return errorResult(err), nil, nil
	}
	result, err := textResult(ended)
	return result, nil, err
}

// CreateGoalInput is the input for the create_goal tool
type CreateGoalInput struct {
	Title       string   `json:"title" jsonschema:"short title of the goal"`
	Description string   `json:"description,omitempty" jsonschema:"longer description"`
	TargetValue *float64 `json:"target_value,omitempty" jsonschema:"numeric finish line, e.g. 12 for twelve books"`
	TargetDate  string   `json:"target_date,omitempty" jsonschema:"deadline in YYYY-MM-DD form"`
	Tags        []string `json:"tags,omitempty"`
}

func handleCreateGoal(ctx context.Context, req *mcp.CallToolRequest, input CreateGoalInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	goal, err := apiClient.CreateGoal(client.CreateGoalRequest{
		Content:     input.Title,
		Description: input.Description,
		TargetValue: input.TargetValue,
		TargetDate:  input.TargetDate,
		Tags:        input.Tags,
	})
	if err != nil {
		return errorResult(err), nil, nil
	}
	result, err := textResult(goal)
	return result, nil, err
}

// ListGoalsInput is the input for the list_goals tool
type ListGoalsInput struct {
	IncludeCompleted bool `json:"include_completed,omitempty" jsonschema:"also list goals that reached their target"`
}

func handleListGoals(ctx context.Context, req *mcp.CallToolRequest, input ListGoalsInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	goals, err := apiClient.ListGoals(input.IncludeCompleted)
	if err != nil {
		return errorResult(err), nil, nil
	}
	result, err := textResult(map[string]interface{}{"goals": goals, "count": len(goals)})
	return result, nil, err
}

// GoalProgressInput is the input for the update_goal_progress tool
type GoalProgressInput struct {
	GoalID       string  `json:"goal_id" jsonschema:"ID of the goal"`
	CurrentValue float64 `json:"current_value" jsonschema:"new absolute progress value"`
	Note         string  `json:"note,omitempty" jsonschema:"note stored in the progress log"`
}

func handleUpdateGoalProgress(ctx context.Context, req *mcp.CallToolRequest, input GoalProgressInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	updated, err := apiClient.UpdateGoalProgress(input.GoalID, input.CurrentValue, input.Note)
	if err != nil {
		return errorResult(err), nil, nil
	}
	result, err := textResult(updated)
	return result, nil, err
}

// GoalIDInput is the input for the goal_history tool
type GoalIDInput struct {
	GoalID string `json:"goal_id" jsonschema:"ID of the goal"`
}

func handleGoalHistory(ctx context.Context, req *mcp.CallToolRequest, input GoalIDInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	entries, err := apiClient.GoalHistory(input.GoalID)
	if err != nil {
		return errorResult(err), nil, nil
	}
	result, err := textResult(map[string]interface{}{"entries": entries, "count": len(entries)})
	return result, nil, err
}
