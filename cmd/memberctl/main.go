package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sindigo/sindigo/internal/config"
	"github.com/sindigo/sindigo/internal/migration"
	"github.com/sindigo/sindigo/internal/model"
	"github.com/sindigo/sindigo/internal/repository"
)

var (
	dbConnString string
	unitFlag     string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Database connection string (defaults to the DB_* environment)")

	grantCmd.Flags().StringVarP(&unitFlag, "unit", "u", "", "Unit id (required for resident memberships)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(grantCmd)
	rootCmd.AddCommand(revokeCmd)
	rootCmd.AddCommand(listCmd)
}

var rootCmd = &cobra.Command{
	Use:   "memberctl",
	Short: "memberctl administers organization memberships",
	Long:  `memberctl grants, revokes and lists the memberships the authorization core enforces.`,
}

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"migrate"},
	Short:   "Initialize the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := migration.Open(connString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		migrator := migration.NewMigrator(db)
		if err := migrator.InitializeSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}

		fmt.Println("Schema initialized successfully")
	},
}

var grantCmd = &cobra.Command{
	Use:   "grant [user-id] [org-id] [role]",
	Short: "Grant an active membership",
	Long:  `Grant an active membership in an organization. Residents require --unit.`,
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			log.Fatalf("Invalid user id: %v", err)
		}
		orgID, err := uuid.Parse(args[1])
		if err != nil {
			log.Fatalf("Invalid organization id: %v", err)
		}
		role := model.Role(args[2])
		if !role.Valid() || role == model.RolePlatformAdmin {
			log.Fatalf("Invalid role %q", args[2])
		}

		var unitID *uuid.UUID
		if unitFlag != "" {
			id, err := uuid.Parse(unitFlag)
			if err != nil {
				log.Fatalf("Invalid unit id: %v", err)
			}
			unitID = &id
		}
		if role == model.RoleResident && unitID == nil {
			log.Fatal("Resident memberships require --unit")
		}

		memberships := openMembershipRepo()
		membership := &model.Membership{
			UserID:         userID,
			OrganizationID: orgID,
			UnitID:         unitID,
			Role:           role,
			IsActive:       true,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := memberships.Create(ctx, membership); err != nil {
			log.Fatalf("Failed to grant membership: %v", err)
		}

		fmt.Printf("Granted %s in %s to %s (membership %s)\n", role, orgID, userID, membership.ID)
	},
}

var revokeCmd = &cobra.Command{
	Use:   "revoke [org-id] [membership-id]",
	Short: "Deactivate a membership within an organization",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		orgID, err := uuid.Parse(args[0])
		if err != nil {
			log.Fatalf("Invalid organization id: %v", err)
		}
		membershipID, err := uuid.Parse(args[1])
		if err != nil {
			log.Fatalf("Invalid membership id: %v", err)
		}

		memberships := openMembershipRepo()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := memberships.Deactivate(ctx, orgID, membershipID); err != nil {
			log.Fatalf("Failed to revoke membership: %v", err)
		}

		fmt.Println("Membership deactivated")
	},
}

var listCmd = &cobra.Command{
	Use:   "list [org-id]",
	Short: "List an organization's active memberships",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		orgID, err := uuid.Parse(args[0])
		if err != nil {
			log.Fatalf("Invalid organization id: %v", err)
		}

		memberships := openMembershipRepo()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rows, err := memberships.FindByOrganization(ctx, orgID)
		if err != nil {
			log.Fatalf("Failed to list memberships: %v", err)
		}

		fmt.Printf("Found %d active memberships\n", len(rows))
		for _, m := range rows {
			unit := "-"
			if m.UnitID != nil {
				unit = m.UnitID.String()
			}
			fmt.Printf("  %s  user=%s  role=%s  unit=%s\n", m.ID, m.UserID, m.Role, unit)
		}
	},
}

func connString() string {
	if dbConnString != "" {
		return dbConnString
	}
	return config.Load().DSN()
}

func openMembershipRepo() *repository.MembershipRepository {
	db, err := gorm.Open(postgres.Open(connString()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return repository.NewMembershipRepository(db)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
