package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/clock/mocks"
	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/models"
	characterRepo "github.com/KirkDiggler/lockup/internal/repositories/character"
	characterMocks "github.com/KirkDiggler/lockup/internal/repositories/character/mocks"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	mockCharacterRepo *characterMocks.MockRepository
	mockClock         *mocks.MockClock
	ledger            *service
	ctx               context.Context

	testTime        time.Time
	testCharacterID string
	testCharacter   *models.Character
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCharacterRepo = characterMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testCharacterID = "test-character-id"
	s.testCharacter = &models.Character{
		ID:        s.testCharacterID,
		Name:      "Test Character",
		Energy:    20,
		MaxEnergy: 100,
		Money:     500,
		Level:     1,
		Version:   7,
	}

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	var err error
	s.ledger, err = New(&Config{
		CharacterRepo: s.mockCharacterRepo,
		Clock:         s.mockClock,
		LockTimeout:   50 * time.Millisecond,
	})
	s.Require().NoError(err)
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestNew_ValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Clock: s.mockClock})
	s.ErrorIs(err, ErrNilCharacterRepo)

	_, err = New(&Config{CharacterRepo: s.mockCharacterRepo})
	s.ErrorIs(err, ErrNilClock)
}

func (s *LedgerServiceTestSuite) TestEmptyCharacterID_IsInvalid() {
	_, err := s.ledger.Load(s.ctx, &LoadInput{})
	s.ErrorIs(err, gameerr.ErrInvalid)

	_, err = s.ledger.ApplyMutation(s.ctx, &ApplyMutationInput{
		Mutate: func(*models.Character) error { return nil },
	})
	s.ErrorIs(err, gameerr.ErrInvalid)
	s.Equal(gameerr.KindInvalid, gameerr.KindOf(err))
}

func (s *LedgerServiceTestSuite) TestLoad() {
	s.mockCharacterRepo.EXPECT().
		GetCharacter(gomock.Any(), &characterRepo.GetCharacterInput{CharacterID: s.testCharacterID}).
		Return(s.testCharacter, nil)

	out, err := s.ledger.Load(s.ctx, &LoadInput{CharacterID: s.testCharacterID})
	s.Require().NoError(err)
	s.Equal(s.testCharacter, out.Character)
}

func (s *LedgerServiceTestSuite) TestLoad_NotFound() {
	s.mockCharacterRepo.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		Return(nil, characterRepo.ErrCharacterNotFound)

	_, err := s.ledger.Load(s.ctx, &LoadInput{CharacterID: "missing"})
	s.ErrorIs(err, gameerr.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestApplyMutation_CommitsWithNextVersion() {
	s.mockCharacterRepo.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		Return(s.testCharacter, nil)

	s.mockCharacterRepo.EXPECT().
		SaveCharacter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *characterRepo.SaveCharacterInput) error {
			s.Equal(int64(7), input.ExpectedVersion)
			s.Equal(int64(8), input.Character.Version)
			s.Equal(10, input.Character.Energy)
			s.Equal(s.testTime, input.Character.UpdatedAt)
			return nil
		})

	out, err := s.ledger.ApplyMutation(s.ctx, &ApplyMutationInput{
		CharacterID: s.testCharacterID,
		Mutate: func(c *models.Character) error {
			c.Energy -= 10
			return nil
		},
	})
	s.Require().NoError(err)
	s.True(out.Changed)
	s.Equal(10, out.Character.Energy)
	s.Equal(20, out.Previous.Energy)

	// The snapshot handed out by the repository is never touched
	s.Equal(20, s.testCharacter.Energy)
}

func (s *LedgerServiceTestSuite) TestApplyMutation_ErrorDiscardsChanges() {
	s.mockCharacterRepo.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		Return(s.testCharacter, nil)
	// No SaveCharacter expected

	mutationErr := gameerr.InsufficientEnergy(20, 30)
	_, err := s.ledger.ApplyMutation(s.ctx, &ApplyMutationInput{
		CharacterID: s.testCharacterID,
		Mutate: func(c *models.Character) error {
			c.Money = 0
			return mutationErr
		},
	})
	s.ErrorIs(err, gameerr.ErrInsufficientEnergy)
	s.Equal(int64(500), s.testCharacter.Money)
}

func (s *LedgerServiceTestSuite) TestApplyMutation_NoChangeSkipsWrite() {
	s.mockCharacterRepo.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		Return(s.testCharacter, nil)

	out, err := s.ledger.ApplyMutation(s.ctx, &ApplyMutationInput{
		CharacterID: s.testCharacterID,
		Mutate: func(c *models.Character) error {
			c.Energy = 0
			return ErrNoChange
		},
	})
	s.Require().NoError(err)
	s.False(out.Changed)
	s.Equal(20, out.Character.Energy)
}

func (s *LedgerServiceTestSuite) TestApplyMutation_RejectsBrokenInvariants() {
	s.mockCharacterRepo.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		Return(s.testCharacter, nil)

	_, err := s.ledger.ApplyMutation(s.ctx, &ApplyMutationInput{
		CharacterID: s.testCharacterID,
		Mutate: func(c *models.Character) error {
			c.Energy = -1
			return nil
		},
	})
	s.Error(err)
	s.Empty(gameerr.KindOf(err))
}

func (s *LedgerServiceTestSuite) TestApplyMutation_VersionConflictIsBusy() {
	s.mockCharacterRepo.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		Return(s.testCharacter, nil)
	s.mockCharacterRepo.EXPECT().
		SaveCharacter(gomock.Any(), gomock.Any()).
		Return(characterRepo.ErrVersionConflict)

	_, err := s.ledger.ApplyMutation(s.ctx, &ApplyMutationInput{
		CharacterID: s.testCharacterID,
		Mutate: func(c *models.Character) error {
			c.Energy--
			return nil
		},
	})
	s.ErrorIs(err, gameerr.ErrBusy)
}

func (s *LedgerServiceTestSuite) TestApplyMutation_StorageErrorIsNotEngineError() {
	s.mockCharacterRepo.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	_, err := s.ledger.ApplyMutation(s.ctx, &ApplyMutationInput{
		CharacterID: s.testCharacterID,
		Mutate:      func(c *models.Character) error { return nil },
	})
	s.Error(err)
	s.Empty(gameerr.KindOf(err))
}

func (s *LedgerServiceTestSuite) TestApplyMutation_LockTimeoutIsBusy() {
	s.mockCharacterRepo.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		Return(s.testCharacter, nil)

	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = s.ledger.ApplyMutation(s.ctx, &ApplyMutationInput{
			CharacterID: s.testCharacterID,
			Mutate: func(c *models.Character) error {
				close(holding)
				<-release
				return ErrNoChange
			},
		})
	}()

	<-holding
	_, err := s.ledger.ApplyMutation(s.ctx, &ApplyMutationInput{
		CharacterID: s.testCharacterID,
		Mutate:      func(c *models.Character) error { return nil },
	})
	s.ErrorIs(err, gameerr.ErrBusy)

	close(release)
	<-done
	s.Equal(0, s.ledger.locks.size())
}

func (s *LedgerServiceTestSuite) TestApplyMutation_CancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.ledger.ApplyMutation(ctx, &ApplyMutationInput{
		CharacterID: s.testCharacterID,
		Mutate:      func(c *models.Character) error { return nil },
	})
	s.ErrorIs(err, context.Canceled)
}

// Runs against a real store so concurrent callers race for real
func TestApplyMutation_SerializesPerCharacter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo, err := characterRepo.NewRedis(&characterRepo.Config{RedisClient: client})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	err = repo.SaveCharacter(ctx, &characterRepo.SaveCharacterInput{
		Character: &models.Character{ID: "racer", Energy: 10, MaxEnergy: 10, Version: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	ledger, err := New(&Config{
		CharacterRepo: repo,
		Clock:         fixedClock{},
		LockTimeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.ApplyMutation(ctx, &ApplyMutationInput{
				CharacterID: "racer",
				Mutate: func(c *models.Character) error {
					if c.Energy < 10 {
						return gameerr.InsufficientEnergy(c.Energy, 10)
					}
					c.Energy -= 10
					return nil
				},
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, gameerr.ErrInsufficientEnergy), errors.Is(err, gameerr.ErrBusy):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly one success, got %d", succeeded)
	}
	if rejected != attempts-1 {
		t.Fatalf("expected %d rejections, got %d", attempts-1, rejected)
	}

	got, err := repo.GetCharacter(ctx, &characterRepo.GetCharacterInput{CharacterID: "racer"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Energy != 0 || got.Version != 2 {
		t.Fatalf("expected energy 0 at version 2, got energy %d version %d", got.Energy, got.Version)
	}
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
}
