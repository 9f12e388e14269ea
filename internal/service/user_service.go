package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.LoginResultDTO, error)
	Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	GetUserById(ctx context.Context, id uint64) (*dto.UserDTO, error)
	GetAllUsers(ctx context.Context) ([]*dto.UserDTO, error)
	UpdatePassword(ctx context.Context, id uint64, changeDTO *dto.ChangePasswordDTO) error
	UpdateProfile(ctx context.Context, id uint64, profileDTO *dto.UpdateProfileDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserServiceImpl struct {
	userRepo  repository.UserRepo
	blacklist func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		blacklist: redis.SetWithExpiration,
	}
}

func toUserDTO(user *model.User) (*dto.UserDTO, error) {
	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	userDTO.ID = strconv.FormatUint(user.ID, 10)
	userDTO.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	return userDTO, nil
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.LoginResultDTO, error) {
	if regDTO.Username == "" || regDTO.Email == "" || regDTO.Password == "" {
		return nil, ErrRegisterFieldsEmpty
	}

	findUser, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return nil, err
	}
	if findUser != nil {
		return nil, ErrUsernameExist
	}

	findUser, err = s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return nil, err
	}
	if findUser != nil {
		return nil, ErrEmailExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: regDTO.Username,
		Email:    regDTO.Email,
		Password: passwordHash,
		Avatar:   util.DefaultAvatar(regDTO.Username),
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		// 与并发注册竞争时唯一索引兜底，按冲突的索引区分文案
		if isDuplicateError(err) {
			if strings.Contains(err.Error(), "idx_email") {
				return nil, ErrEmailExist
			}
			return nil, ErrUsernameExist
		}
		return nil, err
	}

	return s.buildLoginResult(user)
}

func (s *UserServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetUserByAccount(ctx, loginDTO.Account)
	if err != nil {
		return nil, err
	}
	// 账号不存在与密码错误返回同一文案，避免账号探测
	if user == nil {
		return nil, ErrLoginFailed
	}
	if err = security.CheckPasswordHash(loginDTO.Password, user.Password); err != nil {
		return nil, ErrLoginFailed
	}

	return s.buildLoginResult(user)
}

func (s *UserServiceImpl) buildLoginResult(user *model.User) (*dto.LoginResultDTO, error) {
	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{
		Token: token,
		User:  *userDTO,
	}, nil
}

// Logout 将 token 签名放入黑名单，保留时间与 token 有效期一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return s.blacklist(ctx, signature, true, security.TokenTTL())
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user)
}

// GetUserById 查看他人主页，不返回邮箱
func (s *UserServiceImpl) GetUserById(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}
	userDTO.Email = ""
	return userDTO, nil
}

func (s *UserServiceImpl) GetAllUsers(ctx context.Context) ([]*dto.UserDTO, error) {
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		userDTO, err := toUserDTO(user)
		if err != nil {
			return nil, err
		}
		userDTO.Email = ""
		result = append(result, userDTO)
	}
	return result, nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id uint64, changeDTO *dto.ChangePasswordDTO) error {
	if len(changeDTO.NewPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err = security.CheckPasswordHash(changeDTO.OldPassword, user.Password); err != nil {
		return ErrOldPasswordIncorrect
	}

	passwordHash, err := security.HashPassword(changeDTO.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, id, passwordHash)
}

// UpdateProfile 整行覆盖，未传字段写空
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint64, profileDTO *dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	err = s.userRepo.UpdateProfile(ctx, id, profileDTO.Nickname, profileDTO.Bio, profileDTO.Avatar)
	if err != nil {
		return nil, err
	}

	user, err = s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id uint64) error {
	affected, err := s.userRepo.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
