package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/seasonplan/internal/client"
	"github.com/groblegark/seasonplan/internal/model"
	"github.com/groblegark/seasonplan/internal/planner"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Work with a season's tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <season-id>",
	Short: "Add a task to a season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, _ := cmd.Flags().GetString("order")
		name, _ := cmd.Flags().GetString("name")
		lead, _ := cmd.Flags().GetInt("lead")
		responsible, _ := cmd.Flags().GetStringSlice("responsible")
		after, _ := cmd.Flags().GetStringSlice("after")
		remarks, _ := cmd.Flags().GetString("remarks")

		task, err := planClient.CreateTask(cmd.Context(), args[0], &client.CreateTaskRequest{
			Order:          order,
			Name:           name,
			LeadTime:       lead,
			Responsible:    responsible,
			PrecedingTasks: after,
			Remarks:        remarks,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(task)
			return nil
		}
		fmt.Printf("created task %s (%s)\n", task.ID, task.Order)
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <season-id> <task-id>",
	Short: "Show one task in detail",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := planClient.FetchSeason(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, t := range snap.Tasks {
			if t.ID == args[1] || t.Order == args[1] {
				if jsonOutput {
					printJSON(t)
					return nil
				}
				printTaskDetail(t)
				return nil
			}
		}
		return fmt.Errorf("task %q not found in season %s", args[1], args[0])
	},
}

// sessionActor builds the model actor from the global flags.
func sessionActor() (model.Actor, error) {
	role, err := model.ParseRole(actorRole)
	if err != nil {
		return model.Actor{}, err
	}
	return model.Actor{Name: actorName, Role: role, Department: actorDept}, nil
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <season-id> <task-id>",
	Short: "Edit a task's remarks or completion date",
	Long: `Edit a task's remarks or completion date.

Setting --done marks the task completed. Edits are checked locally first
(season open, task actionable, department responsible) so denials report
a reason without a round trip, then the server re-validates and returns
the updated plan.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		seasonID, taskRef := args[0], args[1]

		actor, err := sessionActor()
		if err != nil {
			return err
		}

		session := planner.NewSession(planClient, actor)
		if err := session.Load(cmd.Context(), seasonID); err != nil {
			return err
		}

		// Accept an order code in place of a task ID.
		taskID := taskRef
		if _, ok := session.Task(taskRef); !ok {
			found := false
			for _, t := range session.Tasks() {
				if t.Order == taskRef {
					taskID = t.ID
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("task %q not found in season %s", taskRef, seasonID)
			}
		}

		var req planner.EditRequest
		if cmd.Flags().Changed("remarks") {
			remarks, _ := cmd.Flags().GetString("remarks")
			req.Remarks = &remarks
		}
		if cmd.Flags().Changed("done") {
			doneStr, _ := cmd.Flags().GetString("done")
			var completion time.Time
			if doneStr == "" || doneStr == "today" {
				completion = time.Now().UTC()
			} else {
				completion, err = time.Parse("2006-01-02", doneStr)
				if err != nil {
					return fmt.Errorf("invalid --done date %q (want YYYY-MM-DD): %w", doneStr, err)
				}
			}
			req.ActualCompletion = &completion
		}
		if clear, _ := cmd.Flags().GetBool("clear-done"); clear {
			req.ClearCompletion = true
		}

		out := session.ProposeEdit(cmd.Context(), taskID, req)
		switch out.Kind {
		case planner.OutcomeApplied:
			if jsonOutput {
				printJSON(map[string]any{"outcome": out.Kind, "message": out.Message, "tasks": session.Tasks()})
				return nil
			}
			fmt.Println(out.Message)
			if t, ok := session.Task(taskID); ok {
				printTaskDetail(t)
			}
			return nil
		case planner.OutcomeDenied:
			return fmt.Errorf("edit denied (%s): %s", out.Reason, out.Message)
		case planner.OutcomeRejected:
			return fmt.Errorf("edit rejected: %s", out.Message)
		default:
			return fmt.Errorf("edit failed: %s", out.Message)
		}
	},
}

func init() {
	taskAddCmd.Flags().String("order", "", "order code (A, B, ..., AA)")
	taskAddCmd.Flags().String("name", "", "task name")
	taskAddCmd.Flags().Int("lead", 0, "lead time in days")
	taskAddCmd.Flags().StringSlice("responsible", nil, "responsible departments")
	taskAddCmd.Flags().StringSlice("after", nil, "preceding task order codes")
	taskAddCmd.Flags().String("remarks", "", "initial remarks")
	_ = taskAddCmd.MarkFlagRequired("order")
	_ = taskAddCmd.MarkFlagRequired("name")

	taskEditCmd.Flags().String("remarks", "", "replace the task's remarks")
	taskEditCmd.Flags().String("done", "", "completion date (YYYY-MM-DD, or 'today')")
	taskEditCmd.Flags().Bool("clear-done", false, "remove the completion date")
	taskEditCmd.Flags().Lookup("done").NoOptDefVal = "today"

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskEditCmd)
}
