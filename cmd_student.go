package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/blogem/campus-admin/models"
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage student records",
}

var addForm models.AddStudentRequest

var studentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a student",
	Example: `  campus-admin student add --name "Jane Doe" --student-id CS-101 \
    --department "Computer Science" --email jane@campus.edu`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, a *app) models.Response {
			return a.services.Students.AddStudent(ctx, addForm)
		})
	},
}

var studentGetCmd = &cobra.Command{
	Use:   "get [student-id]",
	Short: "Show one student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, a *app) models.Response {
			return a.services.Students.GetStudent(ctx, args[0])
		})
	},
}

var studentUpdateCmd = &cobra.Command{
	Use:   "update [student-id] [field] [new-value]",
	Short: "Change name, department, email or is_active of a student",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, a *app) models.Response {
			return a.services.Students.UpdateStudent(ctx, models.UpdateStudentRequest{
				StudentID: args[0],
				Field:     args[1],
				NewValue:  args[2],
			})
		})
	},
}

var studentDeleteCmd = &cobra.Command{
	Use:   "delete [student-id]",
	Short: "Delete a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, a *app) models.Response {
			return a.services.Students.DeleteStudent(ctx, args[0])
		})
	},
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all students",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, a *app) models.Response {
			return a.services.Students.ListStudents(ctx)
		})
	},
}

var studentActivityCmd = &cobra.Command{
	Use:   "activity [student-id]",
	Short: "Show the change history of a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, a *app) models.Response {
			return a.services.Students.StudentActivity(ctx, args[0])
		})
	},
}

func init() {
	flags := studentAddCmd.Flags()
	flags.StringVar(&addForm.Name, "name", "", "full name")
	flags.StringVar(&addForm.StudentID, "student-id", "", "external student identifier")
	flags.StringVar(&addForm.Department, "department", "", "department name")
	flags.StringVar(&addForm.Email, "email", "", "email address")

	studentCmd.AddCommand(studentAddCmd, studentGetCmd, studentUpdateCmd, studentDeleteCmd, studentListCmd, studentActivityCmd)
}
