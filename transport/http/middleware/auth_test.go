package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"medibook/config"
	"medibook/infras/jwt"
	mailerMocks "medibook/infras/mailer/mocks"
	"medibook/infras/otel/mocks"
	appointmentMocks "medibook/internal/domains/appointment/mocks"
	appointmentService "medibook/internal/domains/appointment/service"
	authService "medibook/internal/domains/auth/service"
	doctorMocks "medibook/internal/domains/doctor/mocks"
	doctorService "medibook/internal/domains/doctor/service"
	appointmentHandler "medibook/internal/handlers/appointment"
	authHandler "medibook/internal/handlers/auth"
	doctorHandler "medibook/internal/handlers/doctor"
	"medibook/permissions"
	cacheMocks "medibook/shared/cache/mocks"
	"medibook/shared/constant"
	"medibook/shared/timezone"
	"medibook/transport/http/middleware"
	"medibook/transport/http/router"
)

type guardedEnv struct {
	mux             http.Handler
	jwt             jwt.JWT
	appointmentRepo *appointmentMocks.MockAppointment
	doctorRepo      *doctorMocks.MockDoctor
	cache           *cacheMocks.MockRedisCache
}

// newGuardedEnv mounts the production route tree behind the Auth and RBAC
// middleware, with the embedded permissions manifest and a real JWT service.
// The routes registered here are the ones the manifest patterns must match.
func newGuardedEnv(t *testing.T) guardedEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	appointmentRepo := appointmentMocks.NewMockAppointment(ctrl)
	doctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.PublicURL = "https://clinic.example"
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.BookingSecret = "test-booking-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60
	cfg.JWT.BookingExpireMin = 30

	jwtService := jwt.New(cfg)

	clock := func() time.Time {
		return time.Date(2026, 3, 15, 10, 30, 0, 0, timezone.GetLocation())
	}

	appointmentSvc := appointmentService.New(appointmentRepo, doctorRepo, cfg, mockCache, mockOtel, jwtService, mockMailer, clock)
	doctorSvc := doctorService.New(doctorRepo, cfg, mockCache, mockOtel, nil)
	authSvc := authService.New(cfg, mockOtel, jwtService)

	permissionData := permissions.Get()
	require.NotNil(t, permissionData, "embedded permissions manifest must decode")

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mockOtel, permissionData, cfg)

	mux := chi.NewRouter()
	mux.Use(authRole.Auth)
	mux.Use(authRole.RBAC)

	r := router.New(router.DomainHandlers{
		Doctor:      doctorHandler.New(doctorSvc, mockOtel),
		Appointment: appointmentHandler.New(appointmentSvc, doctorSvc, jwtService, cfg, mockOtel),
		Auth:        authHandler.New(authSvc, mockOtel),
	})
	r.SetupRoutes(mux)

	return guardedEnv{
		mux:             mux,
		jwt:             jwtService,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		cache:           mockCache,
	}
}

func (env guardedEnv) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	return rec
}

func (env guardedEnv) accessToken(t *testing.T, role string) string {
	t.Helper()

	pair, err := env.jwt.GenerateTokenPair("user-1", "someone@example.com", role)
	require.NoError(t, err)

	return pair.AccessToken
}

func TestAuth_BookingSurfaceSkipsAuthentication(t *testing.T) {
	env := newGuardedEnv(t)

	env.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	env.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	env.doctorRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := env.get(t, "/v1/appointments/form", "")

	assert.Equal(t, http.StatusOK, rec.Code, "booking form must be reachable without a token")
}

func TestAuth_BookingSubmitSkipsAuthentication(t *testing.T) {
	env := newGuardedEnv(t)

	// An empty submission is rejected by the booking workflow, not by the
	// auth guard: the outcome is the opaque redirect, never a 401.
	req := httptest.NewRequest(http.MethodPost, "/v1/appointments/", nil)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestAuth_AdminListingRequiresToken(t *testing.T) {
	env := newGuardedEnv(t)

	rec := env.get(t, "/v1/appointments/", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_AdminListingRejectsMalformedAndWrongTypeTokens(t *testing.T) {
	env := newGuardedEnv(t)

	rec := env.get(t, "/v1/appointments/", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	bookingToken, err := env.jwt.GenerateBookingToken()
	require.NoError(t, err)

	// A booking token is signed with a different secret and carries no
	// identity, it must never pass the access-token guard.
	rec = env.get(t, "/v1/appointments/", bookingToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRBAC_AdminListingForbiddenForNonAdminRole(t *testing.T) {
	env := newGuardedEnv(t)

	rec := env.get(t, "/v1/appointments/", env.accessToken(t, "patient"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRBAC_AdminListingAllowsAdminRole(t *testing.T) {
	env := newGuardedEnv(t)

	env.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	env.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	env.appointmentRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	env.appointmentRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := env.get(t, "/v1/appointments/", env.accessToken(t, "admin"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRBAC_MineAcceptsAnyAuthenticatedRole(t *testing.T) {
	env := newGuardedEnv(t)

	env.appointmentRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	rec := env.get(t, "/v1/appointments/mine", env.accessToken(t, "patient"))

	assert.Equal(t, http.StatusOK, rec.Code, "mine requires authentication, not a specific role")
}

func TestAuth_MineRequiresToken(t *testing.T) {
	env := newGuardedEnv(t)

	rec := env.get(t, "/v1/appointments/mine", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
