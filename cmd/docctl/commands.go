package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document for classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := newAPIClient(apiURL).Upload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("accepted %s as %s\n", doc.Filename, doc.ID)
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := newAPIClient(apiURL).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(doc)
		},
	}
}

func listCmd() *cobra.Command {
	var (
		status   string
		category string
		priority string
		limit    int
		offset   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := newAPIClient(apiURL).List(cmd.Context(), status, category, priority, limit, offset)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Println("no documents")
				return nil
			}
			printDocumentTable(docs)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (uploaded, processing, classified, failed)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority (High, Medium, Low)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum documents to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "documents to skip")
	return cmd
}

func classifyCmd() *cobra.Command {
	var (
		filename string
		fromFile string
	)

	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify text without storing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			if fromFile != "" {
				raw, err := os.ReadFile(fromFile)
				if err != nil {
					return fmt.Errorf("read %s: %w", fromFile, err)
				}
				text = string(raw)
				if filename == "" {
					filename = fromFile
				}
			}
			if text == "" && filename == "" {
				return fmt.Errorf("provide text, --file or --filename")
			}

			verdict, err := newAPIClient(apiURL).Classify(cmd.Context(), text, filename)
			if err != nil {
				return err
			}
			return printJSON(verdict)
		},
	}

	cmd.Flags().StringVar(&filename, "filename", "", "filename hint for the degraded path")
	cmd.Flags().StringVar(&fromFile, "file", "", "read the text from a local file")
	return cmd
}

func correctCmd() *cobra.Command {
	var (
		category string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "correct <id>",
		Short: "Override a document's category or priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if category == "" && priority == "" {
				return fmt.Errorf("provide --category or --priority")
			}
			doc, err := newAPIClient(apiURL).Correct(cmd.Context(), args[0], category, priority)
			if err != nil {
				return err
			}
			return printJSON(doc)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority (High, Medium, Low)")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document and its stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient(apiURL).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show document counts by status, category and priority",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := newAPIClient(apiURL).Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
}

func printDocumentTable(docs []domain.Document) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILENAME\tSTATUS\tCATEGORY\tPRIORITY\tCREATED")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			doc.ID,
			doc.Filename,
			doc.Status,
			emptyDash(string(doc.Category)),
			emptyDash(string(doc.Priority)),
			doc.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

func emptyDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printJSON(payload any) error {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
