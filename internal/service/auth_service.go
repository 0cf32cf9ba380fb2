package service

import (
	"context"
	"errors"
	"escolavision_backend/internal/config"
	"escolavision_backend/internal/model"
	"escolavision_backend/internal/util"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// LoginResult login.php 成功时返回的用户资料
type LoginResult struct {
	ID           uint              `json:"id"`
	Nombre       string            `json:"nombre"`
	DNI          string            `json:"dni"`
	Tipo         model.TipoUsuario `json:"tipo"`
	IsOrientador int               `json:"is_orientador"`
	IDCentro     *uint             `json:"id_centro"`
	Token        string            `json:"token"`
}

type AuthService struct {
	UserRepo UsuarioRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo UsuarioRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Login usuario 是合法邮箱时按邮箱查找，否则按 DNI 查找
func (s *AuthService) Login(ctx context.Context, usuario, contrasena string) (*LoginResult, error) {
	usuario = strings.TrimSpace(usuario)
	contrasena = strings.TrimSpace(contrasena)

	var (
		user *model.Usuario
		err  error
	)
	if util.IsEmail(usuario) {
		user, err = s.UserRepo.FindOneByEmail(ctx, usuario)
	} else {
		user, err = s.UserRepo.FindOneByDNI(ctx, usuario)
	}
	if errors.Is(err, util.ErrNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if !CheckPassword(user.Contrasena, contrasena) {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{
		ID:       user.ID,
		Nombre:   user.Nombre,
		DNI:      user.DNI,
		Tipo:     user.TipoUsuario,
		IDCentro: user.IDCentro,
		Token:    token,
	}
	// 只有教师的 is_orientador 才有意义
	if user.TipoUsuario == model.Profesor {
		result.IsOrientador = user.IsOrientador
	}
	return result, nil
}

// CheckPassword 兼容旧系统以 $2y$ 为前缀的哈希
func CheckPassword(hash, password string) bool {
	if strings.HasPrefix(hash, "$2y$") {
		hash = "$2a$" + strings.TrimPrefix(hash, "$2y$")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
