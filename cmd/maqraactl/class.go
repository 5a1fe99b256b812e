// Per-classroom tab commands, one subcommand per dashboard tab plus the
// tab-scoped mutations.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maqraa/maqraa.go/pkg/api"
	"github.com/maqraa/maqraa.go/pkg/models"
)

var (
	itemName        string
	itemDescription string
	itemURL         string
	noteMsg         string
)

var classCmd = &cobra.Command{
	Use:   "class",
	Short: "Inspect and manage one classroom's tabs",
}

var classHomeCmd = &cobra.Command{
	Use:   "home <classroom-id>",
	Short: "Show a classroom's summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := session.ClassHome(cmd.Context(), models.ClassroomID(args[0]), flagForce)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(home)
		}
		fmt.Printf("%s (%s)\n%s\n", home.Name, home.Status, home.Description)
		return nil
	},
}

var classStudentsCmd = &cobra.Command{
	Use:   "students <classroom-id>",
	Short: "List a classroom's enrolled students",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		students, err := session.ClassStudents(cmd.Context(), models.ClassroomID(args[0]), flagForce)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(students)
		}
		rows := make([]string, 0, len(students))
		for _, s := range students {
			rows = append(rows, cells(s.ID.String(), truncate(s.Name, 32), s.Email, s.Status))
		}
		table(cells("ID", "NAME", "EMAIL", "STATUS"), rows)
		return nil
	},
}

var classStudentRemoveCmd = &cobra.Command{
	Use:   "student-remove <classroom-id> <student-id>",
	Short: "Unenroll a student from a classroom",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.RemoveClassStudent(cmd.Context(), models.ClassroomID(args[0]), models.StudentID(args[1]))
	},
}

var classFilesCmd = &cobra.Command{
	Use:   "files <classroom-id>",
	Short: "List a classroom's documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := session.ClassFiles(cmd.Context(), models.ClassroomID(args[0]), flagForce)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(files)
		}
		rows := make([]string, 0, len(files))
		for _, f := range files {
			rows = append(rows, cells(f.ID.String(), truncate(f.Name, 40), f.Date.Format("2006-01-02")))
		}
		table(cells("ID", "NAME", "DATE"), rows)
		return nil
	},
}

var classFileAddCmd = &cobra.Command{
	Use:   "file-add <classroom-id>",
	Short: "Attach a document to a classroom",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.AddClassFile(cmd.Context(), models.ClassroomID(args[0]), api.NewFile{
			Name:        itemName,
			Description: itemDescription,
			URL:         itemURL,
		})
	},
}

var classFileDeleteCmd = &cobra.Command{
	Use:   "file-delete <classroom-id> <file-id>",
	Short: "Remove a document from a classroom",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.DeleteClassFile(cmd.Context(), models.ClassroomID(args[0]), models.FileID(args[1]))
	},
}

var classTasksCmd = &cobra.Command{
	Use:   "tasks <classroom-id>",
	Short: "List a classroom's assignments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := session.ClassTasks(cmd.Context(), models.ClassroomID(args[0]), flagForce)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(tasks)
		}
		rows := make([]string, 0, len(tasks))
		for _, t := range tasks {
			rows = append(rows, cells(t.ID.String(), truncate(t.Name, 40), t.AddedAt.Format("2006-01-02")))
		}
		table(cells("ID", "NAME", "ADDED"), rows)
		return nil
	},
}

var classTaskAddCmd = &cobra.Command{
	Use:   "task-add <classroom-id>",
	Short: "Assign a task to a classroom",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.AddClassTask(cmd.Context(), models.ClassroomID(args[0]), api.NewTask{
			Name:        itemName,
			Description: itemDescription,
			URL:         itemURL,
		})
	},
}

var classTaskDeleteCmd = &cobra.Command{
	Use:   "task-delete <classroom-id> <task-id>",
	Short: "Remove a task from a classroom",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.DeleteClassTask(cmd.Context(), models.ClassroomID(args[0]), models.TaskID(args[1]))
	},
}

var classSubmissionsCmd = &cobra.Command{
	Use:   "submissions <classroom-id>",
	Short: "List submissions received per task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subs, err := session.ClassSubmissions(cmd.Context(), models.ClassroomID(args[0]), flagForce)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(subs)
		}
		for _, ts := range subs {
			fmt.Printf("%s (%d submission(s))\n", ts.Name, len(ts.Submissions))
			for _, sub := range ts.Submissions {
				fmt.Printf("  %s: %s\n", sub.Student.Name, sub.Solution)
			}
		}
		return nil
	},
}

var classNotesCmd = &cobra.Command{
	Use:   "notes <classroom-id>",
	Short: "List a classroom's announcements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := session.ClassNotes(cmd.Context(), models.ClassroomID(args[0]), flagForce)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(notes)
		}
		for _, n := range notes {
			fmt.Printf("%s\t%s\n", n.ID, n.Msg)
		}
		return nil
	},
}

var classNoteAddCmd = &cobra.Command{
	Use:   "note-add <classroom-id>",
	Short: "Post an announcement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.AddClassNote(cmd.Context(), models.ClassroomID(args[0]), noteMsg)
	},
}

var classNoteDeleteCmd = &cobra.Command{
	Use:   "note-delete <classroom-id> <note-id>",
	Short: "Remove an announcement",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.DeleteClassNote(cmd.Context(), models.ClassroomID(args[0]), models.NoteID(args[1]))
	},
}

var classVideosCmd = &cobra.Command{
	Use:   "videos <classroom-id>",
	Short: "List a classroom's lecture recordings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videos, err := session.ClassVideos(cmd.Context(), models.ClassroomID(args[0]), flagForce)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(videos)
		}
		rows := make([]string, 0, len(videos))
		for _, v := range videos {
			rows = append(rows, cells(v.ID.String(), truncate(v.Name, 40), v.UploadedAt.Format("2006-01-02")))
		}
		table(cells("ID", "NAME", "UPLOADED"), rows)
		return nil
	},
}

var classVideoDeleteCmd = &cobra.Command{
	Use:   "video-delete <classroom-id> <video-id>",
	Short: "Remove a lecture recording",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.DeleteClassVideo(cmd.Context(), models.ClassroomID(args[0]), models.VideoID(args[1]))
	},
}

func init() {
	for _, c := range []*cobra.Command{classFileAddCmd, classTaskAddCmd} {
		c.Flags().StringVar(&itemName, "name", "", "name (required)")
		c.Flags().StringVar(&itemDescription, "description", "", "description")
		c.Flags().StringVar(&itemURL, "url", "", "link")
		_ = c.MarkFlagRequired("name")
	}
	classNoteAddCmd.Flags().StringVar(&noteMsg, "msg", "", "announcement text (required)")
	_ = classNoteAddCmd.MarkFlagRequired("msg")

	classCmd.AddCommand(classHomeCmd)
	classCmd.AddCommand(classStudentsCmd)
	classCmd.AddCommand(classStudentRemoveCmd)
	classCmd.AddCommand(classFilesCmd)
	classCmd.AddCommand(classFileAddCmd)
	classCmd.AddCommand(classFileDeleteCmd)
	classCmd.AddCommand(classTasksCmd)
	classCmd.AddCommand(classTaskAddCmd)
	classCmd.AddCommand(classTaskDeleteCmd)
	classCmd.AddCommand(classSubmissionsCmd)
	classCmd.AddCommand(classNotesCmd)
	classCmd.AddCommand(classNoteAddCmd)
	classCmd.AddCommand(classNoteDeleteCmd)
	classCmd.AddCommand(classVideosCmd)
	classCmd.AddCommand(classVideoDeleteCmd)
}
