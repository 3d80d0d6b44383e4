package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	achievementMocks "github.com/KirkDiggler/lockup/internal/services/achievement/mocks"
	"github.com/KirkDiggler/lockup/internal/services/catalog"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	confinementMocks "github.com/KirkDiggler/lockup/internal/services/confinement/mocks"
	"github.com/KirkDiggler/lockup/internal/services/crime"
	crimeMocks "github.com/KirkDiggler/lockup/internal/services/crime/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	mockCrime        *crimeMocks.MockService
	mockConfinement  *confinementMocks.MockService
	mockAchievements *achievementMocks.MockService
	routes           http.Handler
	testTime         time.Time
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCrime = crimeMocks.NewMockService(s.ctrl)
	s.mockConfinement = confinementMocks.NewMockService(s.ctrl)
	s.mockAchievements = achievementMocks.NewMockService(s.ctrl)
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	cat, err := catalog.New(&catalog.Config{})
	s.Require().NoError(err)

	h, err := New(&Config{
		Crime:        s.mockCrime,
		Confinement:  s.mockConfinement,
		Achievements: s.mockAchievements,
		Catalog:      cat,
	})
	s.Require().NoError(err)
	s.routes = h.Routes()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.routes.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decode(rec *httptest.ResponseRecorder, into any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), into))
}

func (s *HandlerTestSuite) TestAttemptCrime_Success() {
	character := &models.Character{ID: "char-1", Money: 150, Version: 3}
	s.mockCrime.EXPECT().
		AttemptCrime(gomock.Any(), &crime.AttemptCrimeInput{CharacterID: "char-1", CrimeID: "shoplift"}).
		Return(&crime.AttemptCrimeOutput{
			Outcome:     crime.OutcomeSuccess,
			Roll:        12,
			Reward:      50,
			EnergySpent: 10,
			XPGained:    5,
			Character:   character,
		}, nil)

	rec := s.do(http.MethodPost, "/characters/char-1/crimes/shoplift/attempt", "")

	s.Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Header().Get("X-Request-ID"))

	var body attemptResponse
	s.decode(rec, &body)
	s.Equal(crime.OutcomeSuccess, body.Outcome)
	s.Equal(int64(50), body.Reward)
	s.Equal(int64(3), body.Character.Version)
	s.Nil(body.Confinement)
}

func (s *HandlerTestSuite) TestAttemptCrime_MapsEngineErrors() {
	tests := []struct {
		err       error
		status    int
		kind      string
		remaining int64
	}{
		{gameerr.NotFound("crime %s not found", "nope"), http.StatusNotFound, "not_found", 0},
		{gameerr.LevelTooLow(1, 5), http.StatusForbidden, "level_too_low", 0},
		{gameerr.Confined("jailed", 90*time.Second), http.StatusConflict, "confined", 90},
		{gameerr.OnCooldown("shoplift", 1500*time.Millisecond), http.StatusTooManyRequests, "on_cooldown", 2},
		{gameerr.InsufficientEnergy(2, 10), http.StatusConflict, "insufficient_energy", 0},
		{gameerr.Busy("char-1"), http.StatusServiceUnavailable, "busy", 0},
	}

	for _, tt := range tests {
		s.mockCrime.EXPECT().AttemptCrime(gomock.Any(), gomock.Any()).Return(nil, tt.err)

		rec := s.do(http.MethodPost, "/characters/char-1/crimes/shoplift/attempt", "")

		s.Equal(tt.status, rec.Code, tt.kind)
		var body errorResponse
		s.decode(rec, &body)
		s.Equal(tt.kind, body.Error)
		s.Equal(tt.remaining, body.RemainingSeconds, tt.kind)
	}
}

func (s *HandlerTestSuite) TestCooldown_SetsRetryAfter() {
	s.mockCrime.EXPECT().AttemptCrime(gomock.Any(), gomock.Any()).
		Return(nil, gameerr.OnCooldown("shoplift", 42*time.Second))

	rec := s.do(http.MethodPost, "/characters/char-1/crimes/shoplift/attempt", "")

	s.Equal("42", rec.Header().Get("Retry-After"))
}

func (s *HandlerTestSuite) TestEmptyCharacterID_IsBadRequest() {
	s.mockCrime.EXPECT().ListAvailability(gomock.Any(), gomock.Any()).
		Return(nil, crime.ErrEmptyCharacterID)

	rec := s.do(http.MethodGet, "/characters/char-1/crimes", "")

	s.Equal(http.StatusBadRequest, rec.Code)
	var body errorResponse
	s.decode(rec, &body)
	s.Equal("invalid", body.Error)
}

func (s *HandlerTestSuite) TestUnexpectedError_IsHidden() {
	s.mockCrime.EXPECT().AttemptCrime(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis: connection refused"))

	rec := s.do(http.MethodPost, "/characters/char-1/crimes/shoplift/attempt", "")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"error":"internal"}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestGetConfinement_Confined() {
	releaseAt := s.testTime.Add(5 * time.Minute)
	s.mockConfinement.EXPECT().
		GetStatus(gomock.Any(), &confinement.GetStatusInput{CharacterID: "char-1"}).
		Return(&confinement.GetStatusOutput{Status: &confinement.Status{
			State:            confinement.StateConfined,
			Type:             models.ConfinementTypeJail,
			RemainingSeconds: 300,
			ReleaseAt:        &releaseAt,
			EarlyReleaseCost: 750,
		}}, nil)

	rec := s.do(http.MethodGet, "/characters/char-1/confinement", "")

	s.Equal(http.StatusOK, rec.Code)
	var body confinement.Status
	s.decode(rec, &body)
	s.Equal(confinement.StateConfined, body.State)
	s.Equal(int64(300), body.RemainingSeconds)
	s.Equal(int64(750), body.EarlyReleaseCost)
}

func (s *HandlerTestSuite) TestGetConfinement_FreeOmitsDetails() {
	s.mockConfinement.EXPECT().GetStatus(gomock.Any(), gomock.Any()).
		Return(&confinement.GetStatusOutput{Status: &confinement.Status{State: confinement.StateFree}}, nil)

	rec := s.do(http.MethodGet, "/characters/char-1/confinement", "")

	s.JSONEq(`{"state":"free"}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestConfine_DecodesBody() {
	s.mockConfinement.EXPECT().
		Confine(gomock.Any(), &confinement.ConfineInput{
			CharacterID:     "char-1",
			Type:            models.ConfinementTypeHospital,
			DurationSeconds: 600,
			Reason:          "lost a fight",
		}).
		Return(&confinement.ConfineOutput{
			Confinement: &models.Confinement{Type: models.ConfinementTypeHospital},
			Character:   &models.Character{ID: "char-1"},
		}, nil)

	rec := s.do(http.MethodPost, "/characters/char-1/confinement",
		`{"type":"hospital","duration_seconds":600,"reason":"lost a fight"}`)

	s.Equal(http.StatusCreated, rec.Code)
}

func (s *HandlerTestSuite) TestConfine_MalformedBody() {
	rec := s.do(http.MethodPost, "/characters/char-1/confinement", `{"type":`)

	s.Equal(http.StatusBadRequest, rec.Code)
	var body errorResponse
	s.decode(rec, &body)
	s.Equal("invalid", body.Error)
}

func (s *HandlerTestSuite) TestPayEarlyRelease() {
	s.mockConfinement.EXPECT().
		PayEarlyRelease(gomock.Any(), &confinement.PayEarlyReleaseInput{CharacterID: "char-1"}).
		Return(&confinement.PayEarlyReleaseOutput{
			Cost:      300,
			NewMoney:  700,
			Released:  &models.Confinement{Type: models.ConfinementTypeJail},
			Character: &models.Character{ID: "char-1", Money: 700},
		}, nil)

	rec := s.do(http.MethodPost, "/characters/char-1/confinement/release", "")

	s.Equal(http.StatusOK, rec.Code)
	var body releaseResponse
	s.decode(rec, &body)
	s.Equal(int64(300), body.Cost)
	s.Equal(int64(700), body.NewMoney)
}

func (s *HandlerTestSuite) TestPayEarlyRelease_InsufficientFunds() {
	s.mockConfinement.EXPECT().PayEarlyRelease(gomock.Any(), gomock.Any()).
		Return(nil, gameerr.InsufficientFunds(10, 300))

	rec := s.do(http.MethodPost, "/characters/char-1/confinement/release", "")

	s.Equal(http.StatusPaymentRequired, rec.Code)
}

func (s *HandlerTestSuite) TestListAchievements() {
	s.mockAchievements.EXPECT().
		ListAchievements(gomock.Any(), &achievement.ListAchievementsInput{CharacterID: "char-1"}).
		Return(&achievement.ListAchievementsOutput{Achievements: []*achievement.AchievementStatus{
			{Key: "first_crime", Name: "First Crime", Unlocked: true, UnlockedAt: &s.testTime},
			{Key: "jailbird", Name: "Jailbird"},
		}}, nil)

	rec := s.do(http.MethodGet, "/characters/char-1/achievements", "")

	s.Equal(http.StatusOK, rec.Code)
	var body achievementsResponse
	s.decode(rec, &body)
	s.Require().Len(body.Achievements, 2)
	s.True(body.Achievements[0].Unlocked)
	s.False(body.Achievements[1].Unlocked)
}

func (s *HandlerTestSuite) TestListCrimes_UsesCatalog() {
	rec := s.do(http.MethodGet, "/crimes", "")

	s.Equal(http.StatusOK, rec.Code)
	var body crimesResponse
	s.decode(rec, &body)
	s.Len(body.Crimes, len(catalog.DefaultCrimes()))
}

func (s *HandlerTestSuite) TestListAvailability() {
	s.mockCrime.EXPECT().
		ListAvailability(gomock.Any(), &crime.ListAvailabilityInput{CharacterID: "char-1"}).
		Return(&crime.ListAvailabilityOutput{Crimes: []*crime.Availability{
			{Crime: &models.CrimeDefinition{ID: "shoplift"}, Blocker: gameerr.KindOnCooldown, CooldownRemainingSeconds: 20},
		}}, nil)

	rec := s.do(http.MethodGet, "/characters/char-1/crimes", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"blocker":"on_cooldown"`)
}

func (s *HandlerTestSuite) TestWrongMethod() {
	rec := s.do(http.MethodGet, "/characters/char-1/crimes/shoplift/attempt", "")

	s.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func (s *HandlerTestSuite) TestRequestID_IsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()

	s.routes.ServeHTTP(rec, req)

	s.Equal("abc-123", rec.Header().Get("X-Request-ID"))
}

func TestGetRequestID_Missing(t *testing.T) {
	if id := GetRequestID(context.Background()); id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil); err != ErrNilConfig {
		t.Fatalf("expected ErrNilConfig, got %v", err)
	}
	if _, err := New(&Config{}); err != ErrNilCrime {
		t.Fatalf("expected ErrNilCrime, got %v", err)
	}
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
