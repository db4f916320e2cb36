package repositories

import (
	"fmt"
	"time"

	"github.com/risewynn/qellum/app/models"
	"github.com/risewynn/qellum/pkg/cache"
	"github.com/risewynn/qellum/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// balanceCacheTTL bounds how stale a cached balance can get if an
// invalidation is lost.
const balanceCacheTTL = 5 * time.Minute

// BalanceCacheKey is the Redis key holding a user's cached profile.
func BalanceCacheKey(uid string) string {
	return fmt.Sprintf("user:%s:profile", uid)
}

// FindByUID looks up a user by their external identifier.
func (r *UserRepository) FindByUID(uid string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("uid = ?", uid).First(&user)
	return user, err
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByUIDCached is the read-through variant used by the dashboard's
// profile endpoint. The cache is invalidated on every ledger mutation.
func (r *UserRepository) FindByUIDCached(uid string) (models.User, error) {
	var user models.User
	err := orm.DB().
		Model(&models.User{}).
		Where("uid = ?", uid).
		Limit(1).
		Cache(BalanceCacheKey(uid), balanceCacheTTL, &user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// InvalidateBalance drops the user's cached profile so the next read
// sees the committed balance.
func (r *UserRepository) InvalidateBalance(uid string) {
	cache.Forget(BalanceCacheKey(uid)) //nolint:errcheck
}
