package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"afisha/internal/domain"
	"afisha/internal/domain/entities"
	"afisha/internal/ports/input"
	"afisha/internal/ports/output"
)

var (
	_ input.SessionUseCase = (*SessionService)(nil)
	_ output.TokenSource   = (*SessionService)(nil)
)

// Client state keys of the session.
const (
	AuthUserKey     = "auth_user"
	AuthTokenKey    = "auth_token"
	SelectedCityKey = "selectedCity"
)

const (
	DefaultCity       = "Москва"
	MinPasswordLength = 6
)

// SessionService holds the signed-in user, persists it in the client state
// and announces every change on its bus (nil when signed out).
type SessionService struct {
	auth    output.AuthAPI
	users   output.UserAPI
	storage output.ClientStateStorage
	bus     output.Bus[*entities.AuthUser]
	logger  *slog.Logger

	mu   sync.RWMutex
	user *entities.AuthUser

	now func() time.Time
}

func NewSessionService(
	auth output.AuthAPI,
	users output.UserAPI,
	storage output.ClientStateStorage,
	bus output.Bus[*entities.AuthUser],
	logger *slog.Logger,
) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		auth:    auth,
		users:   users,
		storage: storage,
		bus:     bus,
		logger:  logger,
		now:     time.Now,
	}
}

// Restore reads the persisted session. A missing, corrupt or expired session
// leaves the user signed out.
func (s *SessionService) Restore(ctx context.Context) *entities.AuthUser {
	raw, found, err := s.storage.Get(ctx, AuthUserKey)
	if err != nil || !found || strings.TrimSpace(raw) == "" {
		return nil
	}
	var user entities.AuthUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil || (user.Email == "" && user.UID == "") {
		s.logger.Debug("stored session ignored", "error", err)
		return nil
	}
	if user.IDToken == "" {
		if token, ok, err := s.storage.Get(ctx, AuthTokenKey); err == nil && ok {
			user.IDToken = token
		}
	}
	if user.ExpiresAt.IsZero() {
		user.ExpiresAt = tokenExpiry(user.IDToken)
	}
	if user.Expired(s.now()) {
		s.logger.Info("stored session expired", "email", user.Email)
		s.clear(ctx)
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return s.Current()
}

// Current returns a copy of the signed-in user, or nil.
func (s *SessionService) Current() *entities.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the id token of the signed-in user.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.IDToken
}

func (s *SessionService) IsAdmin() bool {
	u := s.Current()
	return u != nil && u.Role == domain.RoleAdmin
}

// Subscribe registers handler for session changes. A signed-in user is
// delivered to handler right away.
func (s *SessionService) Subscribe(handler func(*entities.AuthUser)) func() {
	unsubscribe := s.bus.Subscribe(handler)
	if u := s.Current(); u != nil {
		handler(u)
	}
	return unsubscribe
}

func (s *SessionService) Login(ctx context.Context, email, password string) (*entities.AuthUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	creds, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	user := s.fromCredentials(creds)
	s.set(ctx, user)
	s.mergeProfile(ctx)
	return s.publish(), nil
}

func (s *SessionService) Register(ctx context.Context, email, password, name string) (*entities.AuthUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if len([]rune(password)) < MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	creds, err := s.auth.Register(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := s.fromCredentials(creds)
	user.Name = strings.TrimSpace(name)
	s.set(ctx, user)
	if user.Name != "" {
		if _, err := s.users.UpdateMe(ctx, entities.UserPatch{DisplayName: &user.Name}); err != nil {
			s.logger.Warn("display name not saved", "email", email, "error", err)
		}
	}
	return s.publish(), nil
}

func (s *SessionService) Logout(ctx context.Context) error {
	s.clear(ctx)
	s.bus.Publish(nil)
	return nil
}

func (s *SessionService) SendVerificationEmail(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return domain.ErrNotAuthenticated
	}
	return s.auth.SendVerificationEmail(ctx, token)
}

func (s *SessionService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.ErrEmailRequired
	}
	return s.auth.SendPasswordReset(ctx, email)
}

func (s *SessionService) ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) error {
	if len([]rune(newPassword)) < MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	return s.auth.ConfirmPasswordReset(ctx, strings.TrimSpace(oobCode), newPassword)
}

// RefreshProfile reloads the profile fields from the backend.
func (s *SessionService) RefreshProfile(ctx context.Context) (*entities.AuthUser, error) {
	if s.Current() == nil {
		return nil, domain.ErrNotAuthenticated
	}
	profile, err := s.users.GetMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh profile: %w", err)
	}
	s.applyProfile(ctx, profile)
	return s.publish(), nil
}

func (s *SessionService) UpdateProfile(ctx context.Context, patch entities.UserPatch) (*entities.AuthUser, error) {
	if s.Current() == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if patch.IsEmpty() {
		return s.Current(), nil
	}
	profile, err := s.users.UpdateMe(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.applyProfile(ctx, profile)
	return s.publish(), nil
}

// SelectedCity returns the persisted city filter, DefaultCity when none is set.
func (s *SessionService) SelectedCity(ctx context.Context) string {
	city, found, err := s.storage.Get(ctx, SelectedCityKey)
	if err != nil || !found || strings.TrimSpace(city) == "" {
		return DefaultCity
	}
	return city
}

func (s *SessionService) SelectCity(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		city = DefaultCity
	}
	if err := s.storage.Set(ctx, SelectedCityKey, city); err != nil {
		return fmt.Errorf("save city: %w", err)
	}
	return nil
}

func (s *SessionService) fromCredentials(creds *entities.Credentials) *entities.AuthUser {
	return &entities.AuthUser{
		UID:          creds.UID,
		Email:        creds.Email,
		IDToken:      creds.IDToken,
		RefreshToken: creds.RefreshToken,
		ExpiresAt:    tokenExpiry(creds.IDToken),
	}
}

// mergeProfile best-effort loads the profile after a login.
func (s *SessionService) mergeProfile(ctx context.Context) {
	profile, err := s.users.GetMe(ctx)
	if err != nil {
		s.logger.Debug("profile not loaded after login", "error", err)
		return
	}
	s.applyProfile(ctx, profile)
}

func (s *SessionService) applyProfile(ctx context.Context, profile *entities.User) {
	s.mu.Lock()
	if s.user == nil || profile == nil {
		s.mu.Unlock()
		return
	}
	u := *s.user
	if profile.DisplayName != "" {
		u.Name = profile.DisplayName
	}
	if profile.ProfileImage != "" {
		u.ProfileImage = profile.ProfileImage
	}
	if profile.Phone != "" {
		u.Phone = profile.Phone
	}
	if profile.Role != "" {
		u.Role = profile.Role
	}
	s.user = &u
	s.mu.Unlock()
	s.persist(ctx, &u)
}

func (s *SessionService) set(ctx context.Context, user *entities.AuthUser) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.persist(ctx, user)
}

func (s *SessionService) publish() *entities.AuthUser {
	u := s.Current()
	s.bus.Publish(u)
	return u
}

func (s *SessionService) persist(ctx context.Context, user *entities.AuthUser) {
	payload, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn("session not encoded", "error", err)
		return
	}
	if err := s.storage.Set(ctx, AuthUserKey, string(payload)); err != nil {
		s.logger.Warn("session not saved", "error", err)
	}
	if err := s.storage.Set(ctx, AuthTokenKey, user.IDToken); err != nil {
		s.logger.Warn("token not saved", "error", err)
	}
}

func (s *SessionService) clear(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	for _, key := range []string{AuthUserKey, AuthTokenKey} {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("session key not removed", "key", key, "error", err)
		}
	}
}

// tokenExpiry reads the exp claim of an id token without verifying it.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
