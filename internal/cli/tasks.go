package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/jrsteele09/go-taskassign/tasks"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "View and update assigned tasks",
	}
	cmd.AddCommand(
		a.newTasksListCmd(),
		a.newTasksShowCmd(),
		a.newTasksCreateCmd(),
		a.newTasksCompleteCmd(),
	)
	return cmd
}

func (a *app) newTasksListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks (or all tasks with --all)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return userMessage(err)
			}

			var (
				list []tasks.Task
				err  error
			)
			if all {
				list, err = a.tasks.ListAll(cmd.Context())
			} else {
				list, err = a.tasks.ListMine(cmd.Context())
			}
			if err != nil {
				return userMessage(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tASSIGNED TO\tSTATUS")
			for _, task := range list {
				status := "open"
				if task.Completed {
					status = "completed"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", task.ID, task.Title, task.AssignedTo, status)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every task (admin only)")
	return cmd
}

func (a *app) newTasksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return userMessage(err)
			}
			task, err := a.tasks.Get(cmd.Context(), args[0])
			if err != nil {
				return userMessage(err)
			}
			printTask(cmd, task)
			return nil
		},
	}
}

func (a *app) newTasksCreateCmd() *cobra.Command {
	var (
		assignTo    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a task and assign it to a user (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return userMessage(err)
			}
			task, err := a.tasks.Create(cmd.Context(), args[0], description, assignTo)
			if err != nil {
				return userMessage(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", task.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&assignTo, "assign", "", "user ID of the assignee")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	_ = cmd.MarkFlagRequired("assign")
	return cmd
}

func (a *app) newTasksCompleteCmd() *cobra.Command {
	var (
		note       string
		imagePaths []string
	)

	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task complete, with an optional note and photo evidence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return userMessage(err)
			}

			images := make([]tasks.Image, 0, len(imagePaths))
			for _, path := range imagePaths {
				f, err := os.Open(path)
				if err != nil {
					return errors.Wrapf(err, "[tasks complete] open image %s", path)
				}
				defer f.Close()
				images = append(images, tasks.Image{Name: filepath.Base(path), Reader: f})
			}

			task, err := a.tasks.Complete(cmd.Context(), args[0], note, images)
			if err != nil {
				return userMessage(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s completed\n", task.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "completion note")
	cmd.Flags().StringArrayVar(&imagePaths, "image", nil, "path to an evidence photo (repeatable)")
	return cmd
}

func printTask(cmd *cobra.Command, task tasks.Task) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %s\n", task.ID)
	fmt.Fprintf(out, "Title:       %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", task.Description)
	}
	fmt.Fprintf(out, "Assigned to: %s\n", task.AssignedTo)
	if task.Completed {
		fmt.Fprintf(out, "Status:      completed\n")
		if task.Note != "" {
			fmt.Fprintf(out, "Note:        %s\n", task.Note)
		}
		for _, image := range task.Images {
			fmt.Fprintf(out, "Image:       %s\n", image)
		}
	} else {
		fmt.Fprintf(out, "Status:      open\n")
	}
}
