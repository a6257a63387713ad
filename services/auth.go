package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	bcryptCost      = 10
	defaultTokenTTL = 30 * 24 * time.Hour
	tokenIssuer     = "amexan"
)

// Claims is the payload of the bearer tokens handed out by Login.
type Claims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	db       *gorm.DB
	notifier Notifier
	logger   *zap.Logger
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(db *gorm.DB, notifier Notifier, logger *zap.Logger, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{db: db, notifier: notifier, logger: logger, secret: []byte(secret), ttl: ttl}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// generateCode returns n random bytes, hex encoded.
func generateCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Register creates a customer or seller account and sends the verification link.
func (s *AuthService) Register(ctx context.Context, data models.RegisterData) (*models.User, error) {
	role := data.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !role.Valid() || role == models.RoleAdmin {
		return nil, invalid("role %q cannot be registered", data.Role)
	}
	email := strings.ToLower(strings.TrimSpace(data.Email))
	username := strings.TrimSpace(data.Username)
	if email == "" || username == "" {
		return nil, invalid("email and username are required")
	}
	if len(data.Password) < 8 {
		return nil, invalid("password must be at least 8 characters")
	}

	db := s.db.WithContext(ctx)
	var existing int64
	if err := db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: user with this email or username", ErrAlreadyExists)
	}

	hashed, err := hashPassword(data.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	token, err := generateCode(16)
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	user := models.User{
		Email:             email,
		Username:          username,
		Password:          hashed,
		FullName:          strings.TrimSpace(data.FullName),
		Phone:             strings.TrimSpace(data.Phone),
		Role:              role,
		IsActive:          true,
		IsVerified:        false,
		VerificationToken: &token,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user with this email or username", ErrAlreadyExists)
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", string(role)))
	notify(ctx, s.logger, s.notifier, Notification{
		Kind:  NotifyAccountCreated,
		Email: user.Email,
		Name:  user.Username,
		Token: token,
	})
	return &user, nil
}

// Login accepts a username or an email and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	identifier = strings.TrimSpace(identifier)
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
		}
		return "", nil, err
	}
	if err := comparePasswords(user.Password, password); err != nil {
		return "", nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("%w: account is disabled", ErrForbidden)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &user, nil
}

func (s *AuthService) issueToken(user models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken checks the signature and expiry of a bearer token.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}
	return claims, nil
}

// Authenticate resolves a bearer token to the current identity of an active account. The role
// is read from the database so demoted or deleted users lose access immediately.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (Identity, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return Identity{}, err
	}
	var user models.User
	if err := s.db.WithContext(ctx).Select("id", "role", "is_active").First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
		}
		return Identity{}, err
	}
	if !user.IsActive {
		return Identity{}, fmt.Errorf("%w: account is disabled", ErrUnauthorized)
	}
	return Identity{UserID: user.ID, Role: user.Role}, nil
}

func (s *AuthService) Me(ctx context.Context, caller Identity) (*models.User, error) {
	if err := authorize(caller, OpReadProfile); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, caller.UserID).Error; err != nil {
		return nil, lookupErr(err, "user", caller.UserID)
	}
	return &user, nil
}

// UpdateProfile changes a user's contact details. Users edit themselves; admins edit anyone.
func (s *AuthService) UpdateProfile(ctx context.Context, caller Identity, userID uint, data models.ProfileData) (*models.User, error) {
	if err := authorize(caller, OpUpdateProfile); err != nil {
		return nil, err
	}
	if caller.UserID != userID && !caller.Is(models.RoleAdmin) {
		return nil, fmt.Errorf("%w: cannot edit user %d", ErrForbidden, userID)
	}
	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, lookupErr(err, "user", userID)
	}

	changes := map[string]any{}
	if fullName := strings.TrimSpace(data.FullName); fullName != "" {
		user.FullName = fullName
		changes["full_name"] = fullName
	}
	if phone := strings.TrimSpace(data.Phone); phone != "" {
		user.Phone = phone
		changes["phone"] = phone
	}
	if len(changes) > 0 {
		if err := db.Model(&user).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return invalid("invalid or expired verification link")
	}
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("verification_token = ?", token).
		Updates(map[string]any{
			"is_verified":        true,
			"verification_token": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return invalid("invalid or expired verification link")
	}
	return nil
}

// ForgotPassword stores a fresh reset token and mails the reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user with this email", ErrNotFound)
		}
		return err
	}
	token, err := generateCode(16)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := db.Model(&user).Update("password_reset_token", token).Error; err != nil {
		return err
	}
	notify(ctx, s.logger, s.notifier, Notification{
		Kind:  NotifyPasswordReset,
		Email: user.Email,
		Name:  user.Username,
		Token: token,
	})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < 8 {
		return invalid("password must be at least 8 characters")
	}
	if strings.TrimSpace(token) == "" {
		return invalid("invalid or expired reset link")
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("password_reset_token = ?", token).
		Updates(map[string]any{
			"password":             hashed,
			"password_reset_token": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return invalid("invalid or expired reset link")
	}
	return nil
}

// EnsureDefaultAdmin creates the bootstrap admin account when no admin exists yet.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, email, username, password string) (bool, error) {
	db := s.db.WithContext(ctx)
	var admins int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error; err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}
	if email == "" || username == "" || password == "" {
		return false, errors.New("no admin account exists and no bootstrap credentials are configured")
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	admin := models.User{
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Username:   strings.TrimSpace(username),
		Password:   hashed,
		FullName:   "System Administrator",
		Role:       models.RoleAdmin,
		IsActive:   true,
		IsVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, err
	}
	s.logger.Info("default admin created", zap.Uint("user_id", admin.ID), zap.String("username", admin.Username))
	return true, nil
}
