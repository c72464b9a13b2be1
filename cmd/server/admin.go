package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/anonto42/yatube/backend/internal/validators"
	"github.com/anonto42/yatube/backend/pkg/logger"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			if err := repositories.AutoMigrate(db.WithContext(cmd.Context())); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Get().Info("Schema is up to date")
			return nil
		})
	},
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <slug> <title>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		rules, _ := cmd.Flags().GetString("rules")

		return withDB(func(db *gorm.DB) error {
			group, err := groupService(db).CreateGroup(cmd.Context(), models.CreateGroupRequest{
				Slug:        args[0],
				Title:       args[1],
				Description: description,
				Rules:       rules,
			})
			if err != nil {
				return err
			}
			logger.Get().Info("Group created", zap.Uint("id", group.ID), zap.String("slug", group.Slug))
			return nil
		})
	},
}

var groupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List groups",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			groups, err := groupService(db).ListGroups(cmd.Context())
			if err != nil {
				return err
			}
			renderGroups(cmd.OutOrStdout(), groups)
			return nil
		})
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a group and every post filed under it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			if err := groupService(db).DeleteGroup(cmd.Context(), args[0]); err != nil {
				return err
			}
			logger.Get().Info("Group deleted", zap.String("slug", args[0]))
			return nil
		})
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user with their posts, comments and follows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			users := services.NewUserService(repositories.NewPostgresUserRepository(db), validators.NewValidator())
			if err := users.DeleteUserByUsername(cmd.Context(), args[0]); err != nil {
				return err
			}
			logger.Get().Info("User deleted", zap.String("username", args[0]))
			return nil
		})
	},
}

func init() {
	groupCreateCmd.Flags().String("description", "", "group description")
	groupCreateCmd.Flags().String("rules", "", "group rules")
	groupCmd.AddCommand(groupCreateCmd, groupListCmd, groupDeleteCmd)
	userCmd.AddCommand(userDeleteCmd)
}

func withDB(fn func(db *gorm.DB) error) error {
	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer db.CloseDB()
	return fn(db.Postgres)
}

func groupService(db *gorm.DB) *services.GroupService {
	return services.NewGroupService(repositories.NewPostgresGroupRepository(db), validators.NewValidator())
}

func renderGroups(w io.Writer, groups []models.Group) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Slug", "Title"})
	for _, g := range groups {
		table.Append([]string{strconv.FormatUint(uint64(g.ID), 10), g.Slug, g.Title})
	}
	table.Render()
}
