package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/accrue-app/accrue/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage transaction categories",
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesEditCmd())
	cmd.AddCommand(categoriesArchiveCmd())
	cmd.AddCommand(categoriesRestoreCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			all, _ := cmd.Flags().GetBool("all")
			categories, err := eng.ListCategories(ctx, all)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDIRECTION\tICON\tARCHIVED")
			for _, category := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n",
					category.ID, category.Name, category.Direction,
					category.Icon, category.IsArchived)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Bool("all", false, "include archived categories")
	return cmd
}

func categoriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			direction, _ := cmd.Flags().GetString("direction")
			icon, _ := cmd.Flags().GetString("icon")

			category, err := eng.CreateCategory(ctx, model.CategoryFields{
				Name:      args[0],
				Direction: model.CategoryDirection(direction),
				Icon:      icon,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created category %d: %s (%s)\n", category.ID, category.Name, category.Direction)
			return nil
		},
	}
	cmd.Flags().String("direction", "expense", "direction (income, expense, both)")
	cmd.Flags().String("icon", "", "display icon")
	return cmd
}

func categoriesEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID NAME",
		Short: "Replace a category's fields",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, closeLedger, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer closeLedger()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			direction, _ := cmd.Flags().GetString("direction")
			icon, _ := cmd.Flags().GetString("icon")

			category, err := eng.UpdateCategory(ctx, id, model.CategoryFields{
				Name:      args[1],
				Direction: model.CategoryDirection(direction),
				Icon:      icon,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Updated category %d: %s\n", category.ID, category.Name)
			return nil
		},
	}
	cmd.Flags().String("direction", "expense", "direction (income, expense, both)")
	cmd.Flags().String("icon", "", "display icon")
	return cmd
}

func categoriesArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a category",
		Args:  cobra.ExactArgs(1),
		RunE:  setCategoryArchivedRunE(true),
	}
}

func categoriesRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Restore an archived category",
		Args:  cobra.ExactArgs(1),
		RunE:  setCategoryArchivedRunE(false),
	}
}

func setCategoryArchivedRunE(archived bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, closeLedger, err := initLedger(ctx)
		if err != nil {
			return err
		}
		defer closeLedger()

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := eng.SetCategoryArchived(ctx, id, archived); err != nil {
			return err
		}
		state := "archived"
		if !archived {
			state = "restored"
		}
		fmt.Printf("Category %d %s\n", id, state)
		return nil
	}
}
