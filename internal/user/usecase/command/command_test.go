package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/VCL-tt/BK-VenComp/internal/user/domain"
	"github.com/VCL-tt/BK-VenComp/internal/user/repository"
	"github.com/VCL-tt/BK-VenComp/pkg/mailer"
)

func setupRepo(t *testing.T) domain.UserRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewGormUserRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func register(t *testing.T, repo domain.UserRepository, username, email, password string) *domain.User {
	t.Helper()

	user, err := NewRegisterHandler(repo).Handle(RegisterCommand{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := setupRepo(t)

	user := register(t, repo, "alice", "alice@example.com", "secret1")

	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "secret1", user.Password)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := setupRepo(t)
	register(t, repo, "alice", "alice@example.com", "secret1")

	_, err := NewRegisterHandler(repo).Handle(RegisterCommand{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestRegister_ShortPassword(t *testing.T) {
	repo := setupRepo(t)

	_, err := NewRegisterHandler(repo).Handle(RegisterCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "abc",
	})
	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	repo := setupRepo(t)
	register(t, repo, "alice", "alice@example.com", "secret1")

	result, err := NewLoginHandler(repo).Handle(LoginCommand{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := setupRepo(t)
	register(t, repo, "alice", "alice@example.com", "secret1")

	_, err := NewLoginHandler(repo).Handle(LoginCommand{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownUserLooksLikeBadCredentials(t *testing.T) {
	repo := setupRepo(t)

	_, err := NewLoginHandler(repo).Handle(LoginCommand{Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	repo := setupRepo(t)
	user := register(t, repo, "alice", "alice@example.com", "secret1")

	_, err := NewToggleActiveHandler(repo).Handle(ToggleActiveCommand{UserID: user.ID, Active: false})
	require.NoError(t, err)

	_, err = NewLoginHandler(repo).Handle(LoginCommand{Username: "alice", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestPasswordReset_RoundTrip(t *testing.T) {
	repo := setupRepo(t)
	register(t, repo, "alice", "alice@example.com", "secret1")

	err := NewRequestPasswordResetHandler(repo, mailer.LogMailer{}).
		Handle(RequestPasswordResetCommand{Email: "alice@example.com"})
	require.NoError(t, err)

	token, err := repo.FindResetCode("alice@example.com")
	require.NoError(t, err)
	assert.Len(t, token.Code, 6)

	err = NewResetPasswordHandler(repo).Handle(ResetPasswordCommand{
		Email:       "alice@example.com",
		Code:        token.Code,
		NewPassword: "newsecret",
	})
	require.NoError(t, err)

	// New password works, the code is consumed.
	_, err = NewLoginHandler(repo).Handle(LoginCommand{Username: "alice", Password: "newsecret"})
	assert.NoError(t, err)

	err = NewResetPasswordHandler(repo).Handle(ResetPasswordCommand{
		Email:       "alice@example.com",
		Code:        token.Code,
		NewPassword: "another1",
	})
	assert.ErrorIs(t, err, domain.ErrResetCodeInvalid)
}

func TestPasswordReset_WrongCode(t *testing.T) {
	repo := setupRepo(t)
	register(t, repo, "alice", "alice@example.com", "secret1")

	err := NewRequestPasswordResetHandler(repo, mailer.LogMailer{}).
		Handle(RequestPasswordResetCommand{Email: "alice@example.com"})
	require.NoError(t, err)

	err = NewResetPasswordHandler(repo).Handle(ResetPasswordCommand{
		Email:       "alice@example.com",
		Code:        "000000x",
		NewPassword: "newsecret",
	})
	assert.ErrorIs(t, err, domain.ErrResetCodeInvalid)
}

func TestPasswordReset_ExpiredCode(t *testing.T) {
	repo := setupRepo(t)
	register(t, repo, "alice", "alice@example.com", "secret1")

	require.NoError(t, repo.ReplaceResetCode("alice@example.com", "123456", time.Now().Add(-time.Minute)))

	err := NewResetPasswordHandler(repo).Handle(ResetPasswordCommand{
		Email:       "alice@example.com",
		Code:        "123456",
		NewPassword: "newsecret",
	})
	assert.ErrorIs(t, err, domain.ErrResetCodeInvalid)
}

func TestPasswordReset_UnknownEmailDoesNotLeak(t *testing.T) {
	repo := setupRepo(t)

	err := NewRequestPasswordResetHandler(repo, mailer.LogMailer{}).
		Handle(RequestPasswordResetCommand{Email: "ghost@example.com"})
	assert.NoError(t, err)
}

func TestChangeRole_InvalidRole(t *testing.T) {
	repo := setupRepo(t)
	user := register(t, repo, "alice", "alice@example.com", "secret1")

	_, err := NewChangeRoleHandler(repo).Handle(ChangeRoleCommand{UserID: user.ID, Role: "root"})
	assert.Error(t, err)
}

func TestChangeRole_Promotes(t *testing.T) {
	repo := setupRepo(t)
	user := register(t, repo, "alice", "alice@example.com", "secret1")

	updated, err := NewChangeRoleHandler(repo).Handle(ChangeRoleCommand{UserID: user.ID, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())
}

func TestDeleteUser_SoftDeletesRow(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	repo := repository.NewGormUserRepository(db)
	require.NoError(t, repo.AutoMigrate())

	alice := register(t, repo, "alice", "alice@example.com", "secret1")

	require.NoError(t, NewDeleteUserHandler(repo).Handle(DeleteUserCommand{
		UserID:   alice.ID,
		CallerID: alice.ID,
	}))

	_, err = repo.FindByID(alice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The row stays behind for its comments, orders and favorites.
	var kept int64
	require.NoError(t, db.Unscoped().Model(&domain.User{}).
		Where("id = ?", alice.ID).Count(&kept).Error)
	assert.EqualValues(t, 1, kept)
}

func TestUpdateUser_OtherUsersRejected(t *testing.T) {
	repo := setupRepo(t)
	alice := register(t, repo, "alice", "alice@example.com", "secret1")
	bob := register(t, repo, "bob", "bob@example.com", "secret1")

	_, err := NewUpdateUserHandler(repo).Handle(UpdateUserCommand{
		UserID:   alice.ID,
		Username: "hijacked",
		CallerID: bob.ID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
