package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/blogem/campus-admin/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Campus statistics",
}

var recentLimit int

var statsTotalCmd = &cobra.Command{
	Use:   "total",
	Short: "Total, active and inactive student counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, a *app) models.Response {
			return a.services.Analytics.TotalStudents(ctx)
		})
	},
}

var statsDepartmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Student counts per department",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, a *app) models.Response {
			return a.services.Analytics.StudentsByDepartment(ctx)
		})
	},
}

var statsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Most recently added students",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, a *app) models.Response {
			return a.services.Analytics.RecentStudents(ctx, recentLimit)
		})
	},
}

var statsActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Students with record activity in the last 7 days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, func(ctx context.Context, a *app) models.Response {
			return a.services.Analytics.ActiveStudentsLastWeek(ctx)
		})
	},
}

func init() {
	statsRecentCmd.Flags().IntVar(&recentLimit, "limit", models.DefaultRecentLimit, "number of students (1-100)")

	statsCmd.AddCommand(statsTotalCmd, statsDepartmentsCmd, statsRecentCmd, statsActiveCmd)
}
