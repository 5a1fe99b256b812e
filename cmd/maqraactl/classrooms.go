// Classroom list and lifecycle commands.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maqraa/maqraa.go/pkg/api"
	"github.com/maqraa/maqraa.go/pkg/models"
)

var (
	classroomName        string
	classroomDescription string
	classroomStatus      string
)

var classroomsCmd = &cobra.Command{
	Use:   "classrooms",
	Short: "List and manage classrooms",
	RunE:  runClassroomsList,
}

var classroomsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a classroom",
	RunE:  runClassroomsAdd,
}

var classroomsUpdateCmd = &cobra.Command{
	Use:   "update <classroom-id>",
	Short: "Edit a classroom's name, description, or status",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassroomsUpdate,
}

func init() {
	classroomsAddCmd.Flags().StringVar(&classroomName, "name", "", "classroom name (required)")
	classroomsAddCmd.Flags().StringVar(&classroomDescription, "description", "", "classroom description")
	_ = classroomsAddCmd.MarkFlagRequired("name")

	classroomsUpdateCmd.Flags().StringVar(&classroomName, "name", "", "new name")
	classroomsUpdateCmd.Flags().StringVar(&classroomDescription, "description", "", "new description")
	classroomsUpdateCmd.Flags().StringVar(&classroomStatus, "status", "", "new status")

	classroomsCmd.AddCommand(classroomsAddCmd)
	classroomsCmd.AddCommand(classroomsUpdateCmd)
}

func runClassroomsList(cmd *cobra.Command, args []string) error {
	classes, err := session.Classrooms(cmd.Context(), flagForce)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(classes)
	}
	rows := make([]string, 0, len(classes))
	for _, c := range classes {
		rows = append(rows, cells(
			c.ID.String(),
			truncate(c.Name, 40),
			c.Status,
			strconv.Itoa(c.StudentsCount),
		))
	}
	table(cells("ID", "NAME", "STATUS", "STUDENTS"), rows)
	fmt.Printf("Total: %d classroom(s)\n", len(classes))
	return nil
}

func runClassroomsAdd(cmd *cobra.Command, args []string) error {
	return session.CreateClassroom(cmd.Context(), api.NewClassroom{
		Name:        classroomName,
		Description: classroomDescription,
	})
}

func runClassroomsUpdate(cmd *cobra.Command, args []string) error {
	return session.UpdateClassroom(cmd.Context(), models.ClassroomID(args[0]), api.ClassroomUpdate{
		Name:        classroomName,
		Description: classroomDescription,
		Status:      classroomStatus,
	})
}
