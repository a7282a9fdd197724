package service

import (
	"context"
	"fmt"

	"horizon_backend/internal/config"
	"horizon_backend/internal/model"
	"horizon_backend/internal/repository"
	"horizon_backend/internal/util"
	"horizon_backend/pkg/discord"
	"horizon_backend/pkg/logger"

	"go.uber.org/zap"
)

// AuthService runs the Discord OAuth2 login flow and mints the site JWT.
// The Discord member record is the source of truth for admin rights, read
// fresh on every login.
type AuthService struct {
	Cfg     *config.Config
	Discord *discord.Client
	Users   *repository.UserRepository
}

func NewAuthService(cfg *config.Config, client *discord.Client, users *repository.UserRepository) *AuthService {
	return &AuthService{Cfg: cfg, Discord: client, Users: users}
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthorizeURL is where the frontend sends the browser to start the flow.
func (s *AuthService) AuthorizeURL() string {
	d := s.Cfg.Discord
	return fmt.Sprintf("%s/oauth2/authorize?client_id=%s&redirect_uri=%s&response_type=code&scope=identify",
		d.APIBaseURL, d.ClientID, d.RedirectURI)
}

// Login exchanges the OAuth2 code, resolves the user's guild membership
// and returns a signed JWT plus the stored user snapshot.
func (s *AuthService) Login(ctx context.Context, code string) (*LoginResult, error) {
	token, err := s.Discord.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging oauth code: %w", err)
	}

	identity, err := s.Discord.CurrentUser(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetching discord profile: %w", err)
	}

	user := &model.User{
		ID:       identity.ID,
		Username: identity.Username,
		Avatar:   identity.Avatar,
		Language: DefaultLanguage,
	}

	// A user outside the guild can still log in; they just hold no role
	// and no admin rights.
	member, err := s.Discord.GuildMember(ctx, identity.ID)
	if err != nil {
		logger.Log.Warn("guild member lookup failed, continuing without roles",
			zap.String("userId", identity.ID), zap.Error(err))
	} else {
		s.applyRoles(ctx, user, member)
	}

	if err := s.Users.Upsert(user); err != nil {
		return nil, err
	}

	stored, err := s.Users.FindByID(user.ID)
	if err != nil {
		return nil, err
	}

	signed, err := util.GenerateJWT(stored, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("user logged in",
		zap.String("userId", stored.ID),
		zap.String("username", stored.Username),
		zap.Bool("isAdmin", stored.IsAdmin))

	return &LoginResult{Token: signed, User: stored}, nil
}

// applyRoles sets IsAdmin from the configured admin role IDs and picks the
// member's highest-positioned role for display.
func (s *AuthService) applyRoles(ctx context.Context, user *model.User, member *discord.GuildMember) {
	admin := make(map[string]bool, len(s.Cfg.Discord.AdminRoleIDs))
	for _, id := range s.Cfg.Discord.AdminRoleIDs {
		admin[id] = true
	}
	for _, id := range member.Roles {
		if admin[id] {
			user.IsAdmin = true
			break
		}
	}

	roles, err := s.Discord.GuildRoles(ctx)
	if err != nil {
		logger.Log.Warn("guild roles lookup failed", zap.Error(err))
		return
	}

	byID := make(map[string]discord.GuildRole, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}

	best := discord.GuildRole{Position: -1}
	for _, id := range member.Roles {
		if r, ok := byID[id]; ok && r.Position > best.Position {
			best = r
		}
	}
	if best.Position >= 0 {
		user.RoleName = best.Name
		user.RoleColor = fmt.Sprintf("#%06X", best.Color)
	}
}

// Me returns the stored user for the authenticated subject.
func (s *AuthService) Me(userID string) (*model.User, error) {
	return s.Users.FindByID(userID)
}

// SetLanguage persists the user's UI language choice.
func (s *AuthService) SetLanguage(userID, lang string) error {
	return s.Users.UpdateLanguage(userID, lang)
}
