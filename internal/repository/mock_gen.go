// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./repository.go -destination=../mocks/mock_transactor.go -package=mocks TransactorIface
//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./user_factor.go -destination=../mocks/mock_user_factor_repository.go -package=mocks UserFactorRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./membership.go -destination=../mocks/mock_membership_repository.go -package=mocks MembershipRepositoryIface
//go:generate mockgen -source=./invite.go -destination=../mocks/mock_invite_repository.go -package=mocks InviteRepositoryIface
//go:generate mockgen -source=./entry.go -destination=../mocks/mock_entry_repository.go -package=mocks EntryRepositoryIface
//go:generate mockgen -source=./tab.go -destination=../mocks/mock_tab_repository.go -package=mocks TabRepositoryIface
//go:generate mockgen -source=./profile.go -destination=../mocks/mock_profile_repository.go -package=mocks ProfileRepositoryIface
//go:generate mockgen -source=./audit_log.go -destination=../mocks/mock_audit_log_repository.go -package=mocks AuditLogRepositoryIface
