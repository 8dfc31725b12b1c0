// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./membership.go -destination=../mocks/mock_membership_repository.go -package=mocks MembershipRepositoryIface
//go:generate mockgen -source=./unit.go -destination=../mocks/mock_unit_repository.go -package=mocks UnitRepositoryIface
//go:generate mockgen -source=./finance.go -destination=../mocks/mock_finance_repository.go -package=mocks FinancialRecordRepositoryIface
//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
