package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"feedbackManagement/internal/auth"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

func (a *app) purgeNotificationsCmd() *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:     "purge-notifications",
		Short:   "Delete every notification of a user",
		GroupID: "data",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return errors.New("--user is required")
			}
			d, err := a.open()
			if err != nil {
				return err
			}
			defer d.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()
			n, err := a.service(d).PurgeNotifications(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PURGED %d notification(s) for user %d\n", n, userID)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	return cmd
}

func (a *app) exportPDFCmd() *cobra.Command {
	var (
		employeeID int64
		outPath    string
	)
	cmd := &cobra.Command{
		Use:     "export-pdf",
		Short:   "Write an employee's feedback report as PDF",
		GroupID: "data",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if employeeID <= 0 {
				return errors.New("--employee is required")
			}
			d, err := a.open()
			if err != nil {
				return err
			}
			defer d.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()
			emp, err := repository.NewUserRepository(d).GetByID(ctx, employeeID)
			if err != nil {
				return err
			}
			if emp == nil {
				return fmt.Errorf("user %d not found", employeeID)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := a.service(d).ExportFeedbackPDF(ctx, auth.IdentityOf(emp), f); err != nil {
				_ = f.Close()
				_ = os.Remove(outPath)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "WROTE %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().Int64Var(&employeeID, "employee", 0, "employee user id")
	cmd.Flags().StringVar(&outPath, "out", "feedback_report.pdf", "output file")
	return cmd
}

func (a *app) showFeedbackCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:     "show-feedback <id>",
		Short:   "Render a feedback item and its comments",
		GroupID: "data",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid feedback id %q", args[0])
			}
			d, err := a.open()
			if err != nil {
				return err
			}
			defer d.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()
			st := repository.New(d)
			fb, err := st.Feedback.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if fb == nil {
				return fmt.Errorf("feedback %d not found", id)
			}
			mgr, err := st.Users.GetByID(ctx, fb.ManagerID)
			if err != nil {
				return err
			}
			emp, err := st.Users.GetByID(ctx, fb.EmployeeID)
			if err != nil {
				return err
			}
			comments, err := st.Comments.ListByFeedback(ctx, fb.ID)
			if err != nil {
				return err
			}

			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
			if err != nil {
				return err
			}
			out, err := r.Render(feedbackMarkdown(fb, nameOf(mgr), nameOf(emp), comments))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "wrap width")
	return cmd
}

func nameOf(u *models.User) string {
	if u == nil {
		return "(deleted user)"
	}
	return u.Name
}

func feedbackMarkdown(f *models.Feedback, manager, employee string, comments []models.Comment) string {
	var b strings.Builder
	status := "pending"
	if f.Acknowledged {
		status = "acknowledged"
	}
	fmt.Fprintf(&b, "# Feedback #%d\n\n", f.ID)
	fmt.Fprintf(&b, "%s for %s, %s (%s, %s)\n\n", manager, employee, f.CreatedAt.Format("2006-01-02"), f.Sentiment, status)
	if len(f.Tags) > 0 {
		names := make([]string, 0, len(f.Tags))
		for _, t := range f.Tags {
			names = append(names, "`"+t.Name+"`")
		}
		fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(names, " "))
	}
	fmt.Fprintf(&b, "## Strengths\n\n%s\n\n## Areas to improve\n\n%s\n\n", f.Strengths, f.AreasToImprove)
	fmt.Fprintf(&b, "## Comments (%d)\n\n", len(comments))
	if len(comments) == 0 {
		b.WriteString("_No comments yet._\n")
	}
	for _, c := range comments {
		fmt.Fprintf(&b, "**%s**, %s\n\n%s\n\n", c.AuthorName, c.CreatedAt.Format("2006-01-02 15:04"), c.Content)
	}
	return b.String()
}
