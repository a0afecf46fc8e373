package services

import (
	"context"
	"fmt"
	"strings"

	"palette/dto"
	"palette/models"
	"palette/utils"

	"github.com/pquerna/otp/totp"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const totpIssuer = "palette"

type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

func (s *MemberService) SignUp(ctx context.Context, r dto.SignUpRequest) (*models.Member, error) {
	email := strings.ToLower(strings.TrimSpace(r.Email))
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Member{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	hash, err := utils.HashPassword(r.Password)
	if err != nil {
		return nil, err
	}
	member := models.NewMember(email, hash, strings.TrimSpace(r.Name), r.ProfileFileName)
	if err = s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, duplicate(err, ErrEmailTaken)
	}
	log.Infof("New member %d signed up", member.ID)
	return &member, nil
}

// Login checks the password, and the one-time code for members that enabled it
func (s *MemberService) Login(ctx context.Context, r dto.LoginRequest) (*models.Member, error) {
	member, err := s.FindByEmail(ctx, r.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(member.Password, r.Password) {
		return nil, ErrInvalidCredentials
	}
	if member.HasTotp() {
		if r.OTP == "" {
			return nil, ErrTotpRequired
		}
		if !totp.Validate(r.OTP, member.TotpSecret) {
			return nil, ErrInvalidCredentials
		}
	}
	return member, nil
}

func (s *MemberService) FindByID(ctx context.Context, id uint64) (*models.Member, error) {
	member := models.Member{}
	if err := s.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("member %d", id))
	}
	return &member, nil
}

func (s *MemberService) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	member := models.Member{}
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&member).Error
	if err != nil {
		return nil, notFound(err, "member "+email)
	}
	return &member, nil
}

// EnableTotp generates a new secret and returns the otpauth:// URL for authenticator apps
func (s *MemberService) EnableTotp(ctx context.Context, member *models.Member) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: member.Email,
	})
	if err != nil {
		return "", err
	}
	err = s.db.WithContext(ctx).Model(member).Update("totp_secret", key.Secret()).Error
	if err != nil {
		return "", err
	}
	return key.URL(), nil
}
