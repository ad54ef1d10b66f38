package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dangerclosesec/tabbedjournal/internal/auth"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	seedOrgName   string
	seedOrgOwner  string
	seedTwoStage  bool
	userUsername  string
	userEmail     string
	userPassword  string
	userSuperuser bool
)

func init() {
	seedOrgCmd.Flags().StringVar(&seedOrgName, "name", "", "Organization name")
	seedOrgCmd.Flags().StringVar(&seedOrgOwner, "owner", "", "Username of the owner")
	seedOrgCmd.Flags().BoolVar(&seedTwoStage, "two-stage", true, "Require moderator review of entries")
	seedOrgCmd.MarkFlagRequired("name")
	seedOrgCmd.MarkFlagRequired("owner")

	createUserCmd.Flags().StringVar(&userUsername, "username", "", "Username")
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	createUserCmd.Flags().StringVar(&userPassword, "password", "", "Password")
	createUserCmd.Flags().BoolVar(&userSuperuser, "superuser", false, "Grant superuser rights")
	createUserCmd.MarkFlagRequired("username")
	createUserCmd.MarkFlagRequired("password")
}

// services is the slice of the service graph the CLI needs.
type services struct {
	users    repository.UserRepositoryIface
	orgs     repository.OrganizationRepositoryIface
	graph    *service.MembershipGraph
	identity *service.IdentityService
	tabs     *service.TabService
	tx       repository.TransactorIface
}

func newServices(db *gorm.DB) *services {
	users := repository.NewUserRepository(db)
	orgs := repository.NewOrganizationRepository(db)
	memberships := repository.NewMembershipRepository(db)
	tx := repository.NewTransactor(db)

	graph := service.NewMembershipGraph(memberships, service.NewOrgCache(service.CacheConfig{TTL: cfg.Cache.TTL, Size: cfg.Cache.Size}, nil))
	authz := service.NewAuthzService(graph, users, service.NewAuditLogService(repository.NewAuditLogRepository(db)), nil)
	identity := service.NewIdentityService(users, repository.NewUserFactorRepository(db), orgs, memberships, tx,
		auth.NewPasswordHasher(), auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod))

	return &services{
		users:    users,
		orgs:     orgs,
		graph:    graph,
		identity: identity,
		tabs:     service.NewTabService(repository.NewTabRepository(db), graph, authz),
		tx:       tx,
	}
}

var seedOrgCmd = &cobra.Command{
	Use:   "seed-org",
	Short: "Create an organization owned by an existing user",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		s := newServices(db)
		ctx := cmd.Context()

		owner, err := s.identity.FindByUsername(ctx, seedOrgOwner)
		if err != nil {
			return fmt.Errorf("finding owner %q: %w", seedOrgOwner, err)
		}

		org := &model.Organization{
			Name:             strings.TrimSpace(seedOrgName),
			OwnerID:          owner.ID,
			RequiresTwoStage: seedTwoStage,
		}
		err = s.tx.Transaction(ctx, func(ctx context.Context) error {
			if err := s.orgs.Create(ctx, org); err != nil {
				return err
			}
			if _, _, err := s.graph.Join(ctx, &model.Membership{
				UserID:         owner.ID,
				OrganizationID: org.ID,
				Role:           model.RoleOwner,
			}); err != nil {
				return err
			}
			_, err := s.tabs.EnsureDefault(ctx, org.ID, owner.ID)
			return err
		})
		if err != nil {
			return fmt.Errorf("seeding organization: %w", err)
		}

		fmt.Printf("Created organization %s (%s) owned by %s\n", org.Name, org.ID, owner.Username)
		return nil
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an account with a password",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		s := newServices(db)
		ctx := cmd.Context()

		user, err := s.identity.Register(ctx, service.RegisterInput{
			Username: userUsername,
			Email:    userEmail,
			Password: userPassword,
		})
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		if userSuperuser {
			user.IsSuperuser = true
			if err := s.users.Update(ctx, user); err != nil {
				return fmt.Errorf("granting superuser: %w", err)
			}
		}

		fmt.Printf("Created user %s (%s)\n", user.Username, user.ID)
		return nil
	},
}
