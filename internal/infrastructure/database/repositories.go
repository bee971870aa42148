package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/theodez1/revly-sub001/internal/adapter/repository"
	domainRepo "github.com/theodez1/revly-sub001/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Group       domainRepo.GroupRepository
	Membership  domainRepo.MembershipRepository
	JoinRequest domainRepo.JoinRequestRepository
	User        domainRepo.UserReader
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Group:       repository.NewGroupRepository(db, logger),
		Membership:  repository.NewMembershipRepository(db, logger),
		JoinRequest: repository.NewJoinRequestRepository(db, logger),
		User:        repository.NewUserReader(db, logger),
	}
}
