package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/models"
	characterRepo "github.com/KirkDiggler/lockup/internal/repositories/character"
	characterMocks "github.com/KirkDiggler/lockup/internal/repositories/character/mocks"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	achievementMocks "github.com/KirkDiggler/lockup/internal/services/achievement/mocks"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	confinementMocks "github.com/KirkDiggler/lockup/internal/services/confinement/mocks"
	"github.com/KirkDiggler/lockup/internal/services/events"
	eventsMocks "github.com/KirkDiggler/lockup/internal/services/events/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SweepTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	mockCharacterRepo *characterMocks.MockRepository
	mockConfinement   *confinementMocks.MockService
	mockAchievements  *achievementMocks.MockService
	mockEvents        *eventsMocks.MockService
	sweeper           *Sweeper
	ctx               context.Context
}

func (s *SweepTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCharacterRepo = characterMocks.NewMockRepository(s.mockCtrl)
	s.mockConfinement = confinementMocks.NewMockService(s.mockCtrl)
	s.mockAchievements = achievementMocks.NewMockService(s.mockCtrl)
	s.mockEvents = eventsMocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()

	var err error
	s.sweeper, err = New(&Config{
		CharacterRepo: s.mockCharacterRepo,
		Confinement:   s.mockConfinement,
		Achievements:  s.mockAchievements,
		Events:        s.mockEvents,
		Interval:      10 * time.Millisecond,
		Concurrency:   2,
	})
	s.Require().NoError(err)
}

func (s *SweepTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSweepSuite(t *testing.T) {
	suite.Run(t, new(SweepTestSuite))
}

func (s *SweepTestSuite) TestNew_ValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilCharacterRepo)
}

func (s *SweepTestSuite) TestRunOnce() {
	s.mockCharacterRepo.EXPECT().
		ListCharacterIDs(gomock.Any(), gomock.Any()).
		Return(&characterRepo.ListCharacterIDsOutput{CharacterIDs: []string{"expired", "free", "busy", "broken"}}, nil)

	s.mockConfinement.EXPECT().
		ReleaseExpired(gomock.Any(), &confinement.ReleaseExpiredInput{CharacterID: "expired"}).
		Return(&confinement.ReleaseExpiredOutput{
			Released: &models.Confinement{Type: models.ConfinementTypeJail},
			Unlocked: []string{"jailbird"},
		}, nil)

	s.mockConfinement.EXPECT().
		ReleaseExpired(gomock.Any(), &confinement.ReleaseExpiredInput{CharacterID: "free"}).
		Return(&confinement.ReleaseExpiredOutput{}, nil)
	s.mockAchievements.EXPECT().
		Evaluate(gomock.Any(), &achievement.EvaluateInput{CharacterID: "free"}).
		Return(&achievement.EvaluateOutput{Unlocked: []string{"big_earner"}}, nil)

	s.mockConfinement.EXPECT().
		ReleaseExpired(gomock.Any(), &confinement.ReleaseExpiredInput{CharacterID: "busy"}).
		Return(nil, gameerr.Busy("busy"))

	s.mockConfinement.EXPECT().
		ReleaseExpired(gomock.Any(), &confinement.ReleaseExpiredInput{CharacterID: "broken"}).
		Return(&confinement.ReleaseExpiredOutput{}, nil)
	s.mockAchievements.EXPECT().
		Evaluate(gomock.Any(), &achievement.EvaluateInput{CharacterID: "broken"}).
		Return(nil, errors.New("redis down"))

	out, err := s.sweeper.RunOnce(s.ctx)
	s.Require().NoError(err)
	// The release's own unlock counts alongside the free character's
	s.Equal(&RunOnceOutput{Checked: 4, Released: 1, Unlocked: 2, Skipped: 1, Failed: 1}, out)
}

func (s *SweepTestSuite) TestRunOnce_ListFailure() {
	s.mockCharacterRepo.EXPECT().
		ListCharacterIDs(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis down"))

	_, err := s.sweeper.RunOnce(s.ctx)
	s.Error(err)
}

func (s *SweepTestSuite) TestSeedCounters() {
	counts := map[models.ConfinementType]int64{
		models.ConfinementTypeHospital: 2,
		models.ConfinementTypeJail:     5,
	}

	s.mockCharacterRepo.EXPECT().
		CountConfined(gomock.Any(), gomock.Any()).
		Return(&characterRepo.CountConfinedOutput{Counts: counts}, nil)
	s.mockEvents.EXPECT().
		SeedConfinementCounts(gomock.Any(), &events.SeedConfinementCountsInput{Counts: counts})

	s.Require().NoError(s.sweeper.SeedCounters(s.ctx))
}

func (s *SweepTestSuite) TestRun_TicksUntilCancelled() {
	ctx, cancel := context.WithCancel(s.ctx)
	ticked := make(chan struct{}, 1)

	s.mockCharacterRepo.EXPECT().
		ListCharacterIDs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *characterRepo.ListCharacterIDsInput) (*characterRepo.ListCharacterIDsOutput, error) {
			select {
			case ticked <- struct{}{}:
			default:
			}
			return &characterRepo.ListCharacterIDsOutput{}, nil
		}).
		MinTimes(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.sweeper.Run(ctx)
	}()

	select {
	case <-ticked:
	case <-time.After(time.Second):
		s.Fail("sweep never ran")
	}

	cancel()
	<-done
}
