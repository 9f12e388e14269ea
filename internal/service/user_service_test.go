package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/security"
	"context"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo 内存实现，按 id 自增
type fakeUserRepo struct {
	users     map[uint64]*model.User
	nextID    uint64
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*model.User), nextID: 1}
}

func (f *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByAccount(_ context.Context, account string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == account || u.Email == account {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetAllUsers(_ context.Context) ([]*model.User, error) {
	result := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		result = append(result, u)
	}
	return result, nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uint64, passwordHash string) error {
	if u, ok := f.users[id]; ok {
		u.Password = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id uint64, nickname, bio, avatar string) error {
	if u, ok := f.users[id]; ok {
		u.Nickname = nickname
		u.Bio = bio
		u.Avatar = avatar
	}
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id uint64) (int64, error) {
	if _, ok := f.users[id]; !ok {
		return 0, nil
	}
	delete(f.users, id)
	return 1, nil
}

func registerUser(t *testing.T, svc UserService, username, email, password string) *dto.LoginResultDTO {
	t.Helper()
	result, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return result
}

func TestRegister(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	result := registerUser(t, svc, "alice", "alice@example.com", "secret1")
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)
	assert.Contains(t, result.User.Avatar, "dicebear.com")

	// 返回的 token 可被验证
	claims, err := security.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegister_FieldsEmpty(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	_, err := svc.Register(context.Background(), &dto.RegisterDTO{Username: "a"})
	assert.ErrorIs(t, err, ErrRegisterFieldsEmpty)
}

func TestRegister_Duplicate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	registerUser(t, svc, "alice", "alice@example.com", "secret1")

	_, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "alice", Email: "other@example.com", Password: "x",
	})
	assert.ErrorIs(t, err, ErrUsernameExist)

	_, err = svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "bob", Email: "alice@example.com", Password: "x",
	})
	assert.ErrorIs(t, err, ErrEmailExist)
}

func TestRegister_DuplicateRace(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	// 唯一索引兜底按冲突的索引区分文案
	repo.createErr = &mysql.MySQLError{
		Number: 1062, Message: "Duplicate entry 'alice@example.com' for key 'users.idx_email'",
	}
	_, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "alice", Email: "alice@example.com", Password: "x",
	})
	assert.ErrorIs(t, err, ErrEmailExist)

	repo.createErr = &mysql.MySQLError{
		Number: 1062, Message: "Duplicate entry 'alice' for key 'users.idx_username'",
	}
	_, err = svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "alice", Email: "alice@example.com", Password: "x",
	})
	assert.ErrorIs(t, err, ErrUsernameExist)
}

func TestLogout_BlacklistTTLMatchesTokenLifetime(t *testing.T) {
	saved := config.Cfg
	config.Cfg = &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 168}}
	defer func() { config.Cfg = saved }()

	svc := NewUserService(newFakeUserRepo())
	impl := svc.(*UserServiceImpl)

	var gotKey string
	var gotTTL time.Duration
	impl.blacklist = func(_ context.Context, key string, _ interface{}, expiration time.Duration) error {
		gotKey = key
		gotTTL = expiration
		return nil
	}

	result := registerUser(t, svc, "alice", "alice@example.com", "secret1")
	require.NoError(t, svc.Logout(context.Background(), result.Token))

	signature, err := security.ExtractSignature(result.Token)
	require.NoError(t, err)
	assert.Equal(t, signature, gotKey)
	// 黑名单保留时间跟随配置的 token 有效期，而非固定 24 小时
	assert.Equal(t, 168*time.Hour, gotTTL)
	assert.Equal(t, security.TokenTTL(), gotTTL)
}

func TestLogin(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	registerUser(t, svc, "alice", "alice@example.com", "secret1")

	// 用户名或邮箱都可以登录
	result, err := svc.Login(context.Background(), &dto.LoginDTO{Account: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	result, err = svc.Login(context.Background(), &dto.LoginDTO{Account: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)
}

func TestLogin_ConstantError(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	registerUser(t, svc, "alice", "alice@example.com", "secret1")

	// 账号不存在与密码错误返回同一个错误
	_, errNoUser := svc.Login(context.Background(), &dto.LoginDTO{Account: "nobody", Password: "x"})
	_, errBadPass := svc.Login(context.Background(), &dto.LoginDTO{Account: "alice", Password: "wrong"})
	assert.ErrorIs(t, errNoUser, ErrLoginFailed)
	assert.ErrorIs(t, errBadPass, ErrLoginFailed)
	assert.Equal(t, errNoUser, errBadPass)
}

func TestUpdatePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	registerUser(t, svc, "alice", "alice@example.com", "secret1")

	err := svc.UpdatePassword(context.Background(), 1, &dto.ChangePasswordDTO{
		OldPassword: "secret1",
		NewPassword: "short",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	err = svc.UpdatePassword(context.Background(), 1, &dto.ChangePasswordDTO{
		OldPassword: "wrong",
		NewPassword: "newsecret",
	})
	assert.ErrorIs(t, err, ErrOldPasswordIncorrect)

	err = svc.UpdatePassword(context.Background(), 1, &dto.ChangePasswordDTO{
		OldPassword: "secret1",
		NewPassword: "newsecret",
	})
	require.NoError(t, err)

	// 旧密码失效，新密码可登录
	_, err = svc.Login(context.Background(), &dto.LoginDTO{Account: "alice", Password: "secret1"})
	assert.ErrorIs(t, err, ErrLoginFailed)
	_, err = svc.Login(context.Background(), &dto.LoginDTO{Account: "alice", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestUpdateProfile_Overwrites(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	registerUser(t, svc, "alice", "alice@example.com", "secret1")

	userDTO, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileDTO{
		Nickname: "Ally",
		Bio:      "hello",
		Avatar:   "http://example.com/a.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ally", userDTO.Nickname)

	// 只传 nickname 时其余字段被清空（整行覆盖语义）
	userDTO, err = svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileDTO{
		Nickname: "Ally2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ally2", userDTO.Nickname)
	assert.Empty(t, userDTO.Bio)
	assert.Empty(t, userDTO.Avatar)
}

func TestGetUserById_HidesEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	registerUser(t, svc, "alice", "alice@example.com", "secret1")

	userDTO, err := svc.GetUserById(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, userDTO.Email)

	// 本人信息接口返回邮箱
	userDTO, err = svc.GetUserInfo(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", userDTO.Email)
}

func TestDeleteUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	registerUser(t, svc, "alice", "alice@example.com", "secret1")

	require.NoError(t, svc.DeleteUser(context.Background(), 1))
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), 1), ErrUserNotFound)
}
